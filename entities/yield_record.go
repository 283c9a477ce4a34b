package entities

import "time"

// YieldRecord is one weighed harvest. Amount is in tonnes, MoisturePct 0-100.
type YieldRecord struct {
	YieldID        uint      `gorm:"primaryKey" json:"yield_id"`
	FieldID        uint      `gorm:"index:idx_yield_field_time,priority:1" json:"field_id"`
	Crop           string    `gorm:"size:128" json:"crop"`
	Amount         float64   `json:"amount"`
	MoisturePct    float64   `json:"moisture_pct"`
	IdempotencyKey *string   `gorm:"size:64;uniqueIndex" json:"idempotency_key,omitempty"`
	CreatedAt      time.Time `gorm:"index:idx_yield_field_time,priority:2" json:"created_at"`
}
