package entities

import "time"

type FieldStatus string

const (
	StatusSown           FieldStatus = "sown"
	StatusHarvested      FieldStatus = "harvested"
	StatusReadyForSowing FieldStatus = "ready_for_sowing"
	StatusFallow         FieldStatus = "fallow"
	StatusPasture        FieldStatus = "pasture"
)

func (s FieldStatus) Valid() bool {
	switch s {
	case StatusSown, StatusHarvested, StatusReadyForSowing, StatusFallow, StatusPasture:
		return true
	}
	return false
}

// StatusEvent is one immutable entry in a field's status ledger. The current
// status of a field is its event with the latest CreatedAt; EventID breaks ties.
type StatusEvent struct {
	EventID       uint        `gorm:"primaryKey" json:"event_id"`
	FieldID       uint        `gorm:"index:idx_status_field_time,priority:1" json:"field_id"`
	Status        FieldStatus `gorm:"size:32;index" json:"status"`
	Crop          string      `gorm:"size:128" json:"crop"`
	Notes         string      `gorm:"type:text" json:"notes"`
	YieldAmount   *float64    `json:"yield_amount,omitempty"`
	YieldMoisture *float64    `json:"yield_moisture,omitempty"`
	HarvestKey    *string     `gorm:"size:64;uniqueIndex" json:"harvest_key,omitempty"`
	CreatedAt     time.Time   `gorm:"index:idx_status_field_time,priority:2" json:"created_at"`
}
