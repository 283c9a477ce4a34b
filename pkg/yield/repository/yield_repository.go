package repository

import (
	"context"

	"fieldbook/entities"
)

// YieldRepository stores weighed harvests. Records are never changed.
type YieldRepository interface {
	Append(ctx context.Context, y *entities.YieldRecord) error
	FindByKey(ctx context.Context, key string) (*entities.YieldRecord, error)
	ListByField(ctx context.Context, fieldID uint) ([]entities.YieldRecord, error)
	ListAll(ctx context.Context) ([]entities.YieldRecord, error)
}
