package repository

import (
	"context"
	"time"

	"fieldbook/entities"
)

type CostRepository interface {
	Append(ctx context.Context, c *entities.CostRecord) error
	// ListByField returns costs with from <= CreatedAt < to; nil bounds are open.
	ListByField(ctx context.Context, fieldID uint, from, to *time.Time) ([]entities.CostRecord, error)
}
