package entities

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"fieldbook/pkg/geomath"
)

type SoilClass string

const (
	SoilSand      SoilClass = "sand"
	SoilLoamySand SoilClass = "loamy_sand"
	SoilLoam      SoilClass = "loam"
	SoilSilt      SoilClass = "silt"
	SoilClay      SoilClass = "clay"
	SoilPeat      SoilClass = "peat"
	SoilUnknown   SoilClass = "unknown"
)

func (s SoilClass) Valid() bool {
	switch s {
	case SoilSand, SoilLoamySand, SoilLoam, SoilSilt, SoilClay, SoilPeat, SoilUnknown:
		return true
	}
	return false
}

// Field is a land parcel. Its ring is fixed at creation; name, soil, notes,
// area and the denormalized CurrentCrop may change afterwards.
type Field struct {
	FieldID     uint                               `gorm:"primaryKey" json:"field_id"`
	Name        string                             `gorm:"size:255" json:"name"`
	AreaHa      decimal.Decimal                    `gorm:"type:decimal(12,4)" json:"area_ha"`
	Soil        SoilClass                          `gorm:"size:32" json:"soil"`
	CurrentCrop string                             `gorm:"size:128" json:"current_crop"` // cache of the latest harvested/sown crop
	Notes       string                             `gorm:"type:text" json:"notes"`
	Ring        datatypes.JSONSlice[geomath.Point] `json:"ring"`
	CentroidLat *float64                           `json:"centroid_lat"`
	CentroidLng *float64                           `json:"centroid_lng"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
