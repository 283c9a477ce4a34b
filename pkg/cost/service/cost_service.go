package service

import (
	"context"
	"time"

	"fieldbook/entities"
)

type CostService interface {
	Append(ctx context.Context, c *entities.CostRecord) error
	List(ctx context.Context, fieldID uint, from, to *time.Time) ([]entities.CostRecord, error)
}
