package service

import (
	"context"

	"fieldbook/entities"
)

type StatusService interface {
	// Append stores ev, stamping CreatedAt with the current time when zero,
	// and returns the assigned event ID. Repeated statuses are valid history.
	Append(ctx context.Context, ev *entities.StatusEvent) (uint, error)
	// CurrentStatus reports the field's newest event; ok is false when the
	// field has no history.
	CurrentStatus(ctx context.Context, fieldID uint) (ev entities.StatusEvent, ok bool, err error)
	History(ctx context.Context, fieldID uint) ([]entities.StatusEvent, error)
	CurrentAll(ctx context.Context) (map[uint]entities.StatusEvent, error)
}
