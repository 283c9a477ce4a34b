package service

import (
	"context"

	"fieldbook/entities"
)

// Request is one harvest as reported by the operator. IdempotencyKey is an
// optional client token; resubmitting the same token never adds a second yield.
type Request struct {
	FieldID        uint    `json:"field_id"`
	Crop           string  `json:"crop"`
	Amount         float64 `json:"amount"`
	Moisture       float64 `json:"moisture"`
	IdempotencyKey string  `json:"idempotency_key"`
}

// Outcome reports which steps of a harvest were stored. Yield is set once
// step one succeeded, Status once step two did. Stale is non-nil when the
// field's cached crop label could not be updated.
type Outcome struct {
	Yield    *entities.YieldRecord `json:"yield,omitempty"`
	Status   *entities.StatusEvent `json:"status,omitempty"`
	Stale    error                 `json:"-"`
	Replayed bool                  `json:"replayed"`
}

type HarvestService interface {
	RecordHarvest(ctx context.Context, req Request) (Outcome, error)
	Yields(ctx context.Context, fieldID uint) ([]entities.YieldRecord, error)
	// Orphans lists yields with no matching harvested status event.
	// fieldID 0 scans every field.
	Orphans(ctx context.Context, fieldID uint) ([]entities.YieldRecord, error)
}
