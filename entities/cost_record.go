package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type CostCategory string

const (
	CostSeed           CostCategory = "seed"
	CostFertilizer     CostCategory = "fertilizer"
	CostCropProtection CostCategory = "crop_protection"
	CostFuel           CostCategory = "fuel"
	CostLabour         CostCategory = "labour"
	CostServices       CostCategory = "services"
	CostOther          CostCategory = "other"
)

func (c CostCategory) Valid() bool {
	switch c {
	case CostSeed, CostFertilizer, CostCropProtection, CostFuel, CostLabour, CostServices, CostOther:
		return true
	}
	return false
}

// CostRecord is an append-only expense booked against a field.
type CostRecord struct {
	CostID    uint            `gorm:"primaryKey" json:"cost_id"`
	FieldID   uint            `gorm:"index:idx_cost_field_time,priority:1" json:"field_id"`
	Category  CostCategory    `gorm:"size:32" json:"category"`
	Amount    decimal.Decimal `gorm:"type:decimal(14,2)" json:"amount"`
	Notes     string          `gorm:"type:text" json:"notes"`
	CreatedAt time.Time       `gorm:"index:idx_cost_field_time,priority:2" json:"created_at"`
}
