package repository

import (
	"context"

	"fieldbook/entities"
)

// StatusRepository is the append-only store of status events. There is no
// update or delete.
type StatusRepository interface {
	Append(ctx context.Context, ev *entities.StatusEvent) error
	Latest(ctx context.Context, fieldID uint) (*entities.StatusEvent, error)
	ListByField(ctx context.Context, fieldID uint) ([]entities.StatusEvent, error)
	ListAll(ctx context.Context) ([]entities.StatusEvent, error)
	FindByHarvestKey(ctx context.Context, key string) (*entities.StatusEvent, error)
}
