package service

import (
	"context"

	"github.com/shopspring/decimal"

	"fieldbook/entities"
	"fieldbook/pkg/geomath"
)

// Draft is a field as captured: a ring plus the attributes the operator typed.
type Draft struct {
	Name  string             `json:"name"`
	Soil  entities.SoilClass `json:"soil"`
	Notes string             `json:"notes"`
	Ring  []geomath.Point    `json:"ring"`
}

// Patch holds the user-editable attributes; nil members are left alone.
type Patch struct {
	Name   *string             `json:"name"`
	Soil   *entities.SoilClass `json:"soil"`
	Notes  *string             `json:"notes"`
	AreaHa *decimal.Decimal    `json:"area_ha"`
}

// Geometry is the derived shape of a ring, without persisting anything.
type Geometry struct {
	Ring     []geomath.Point `json:"ring"`
	AreaHa   decimal.Decimal `json:"area_ha"`
	Centroid *geomath.Point  `json:"centroid,omitempty"`
}

type FieldService interface {
	Preview(ring []geomath.Point) (Geometry, error)
	CreateFromRing(ctx context.Context, d Draft) (*entities.Field, error)
	Get(ctx context.Context, id uint) (*entities.Field, error)
	List(ctx context.Context) ([]entities.Field, error)
	Patch(ctx context.Context, id uint, p Patch) (*entities.Field, error)
	UpdateCrop(ctx context.Context, id uint, crop string) error
}
