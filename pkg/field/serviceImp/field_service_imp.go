package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"fieldbook/entities"
	"fieldbook/pkg/apperr"
	repo "fieldbook/pkg/field/repository"
	"fieldbook/pkg/field/service"
	"fieldbook/pkg/geomath"
	"fieldbook/pkg/logger"
	"fieldbook/pkg/metrics"
)

// areaPlaces is the precision area is stored with (1 m²).
const areaPlaces = 4

type Option func(*fieldSvc)

func WithAreaFunc(f geomath.AreaFunc) Option {
	return func(s *fieldSvc) {
		if f != nil {
			s.area = f
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option { return func(s *fieldSvc) { s.m = m } }

type fieldSvc struct {
	r    repo.FieldRepository
	area geomath.AreaFunc
	m    *metrics.Metrics
	log  *slog.Logger
}

func NewFieldService(r repo.FieldRepository, opts ...Option) service.FieldService {
	s := &fieldSvc{r: r, area: geomath.Area, log: logger.Module("field")}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *fieldSvc) Preview(ring []geomath.Point) (service.Geometry, error) {
	if geomath.DistinctCount(ring) < 3 {
		return service.Geometry{}, fmt.Errorf("%w: ring has %d distinct points", apperr.ErrInsufficientPoints, geomath.DistinctCount(ring))
	}
	for _, p := range ring {
		if p.Lat < -90 || p.Lat > 90 || p.Lng < -180 || p.Lng > 180 {
			return service.Geometry{}, fmt.Errorf("%w: point %v out of range", apperr.ErrInvalidInput, p)
		}
	}
	sealed := geomath.Close(ring)
	g := service.Geometry{
		Ring:   sealed,
		AreaHa: decimal.NewFromFloat(s.area(sealed)).Round(areaPlaces),
	}
	c, err := geomath.Centroid(sealed)
	switch {
	case err == nil:
		g.Centroid = &c
	case !errors.Is(err, apperr.ErrDegenerateGeometry):
		return service.Geometry{}, err
	}
	return g, nil
}

func (s *fieldSvc) CreateFromRing(ctx context.Context, d service.Draft) (*entities.Field, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperr.ErrInvalidInput)
	}
	soil := d.Soil
	if soil == "" {
		soil = entities.SoilUnknown
	}
	if !soil.Valid() {
		return nil, fmt.Errorf("%w: unknown soil class %q", apperr.ErrInvalidInput, soil)
	}
	g, err := s.Preview(d.Ring)
	if err != nil {
		return nil, err
	}

	f := &entities.Field{
		Name:   name,
		Soil:   soil,
		Notes:  d.Notes,
		Ring:   datatypes.JSONSlice[geomath.Point](g.Ring),
		AreaHa: g.AreaHa,
	}
	if g.Centroid != nil {
		lat, lng := g.Centroid.Lat, g.Centroid.Lng
		f.CentroidLat, f.CentroidLng = &lat, &lng
	}
	if err := s.r.Create(ctx, f); err != nil {
		s.log.WarnContext(ctx, "create failed", "name", name, "err", err)
		return nil, err
	}
	area, _ := g.AreaHa.Float64()
	s.m.FieldCreated(area)
	s.log.InfoContext(ctx, "field created", "field_id", f.FieldID, "area_ha", g.AreaHa.String(), "points", len(g.Ring)-1)
	return f, nil
}

func (s *fieldSvc) Get(ctx context.Context, id uint) (*entities.Field, error) {
	return s.r.FindByID(ctx, id)
}

func (s *fieldSvc) List(ctx context.Context) ([]entities.Field, error) {
	return s.r.List(ctx)
}

func (s *fieldSvc) Patch(ctx context.Context, id uint, p service.Patch) (*entities.Field, error) {
	f, err := s.r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", apperr.ErrInvalidInput)
		}
		f.Name = name
	}
	if p.Soil != nil {
		if !p.Soil.Valid() {
			return nil, fmt.Errorf("%w: unknown soil class %q", apperr.ErrInvalidInput, *p.Soil)
		}
		f.Soil = *p.Soil
	}
	if p.Notes != nil {
		f.Notes = *p.Notes
	}
	if p.AreaHa != nil {
		if p.AreaHa.IsNegative() {
			return nil, fmt.Errorf("%w: area must be >= 0", apperr.ErrInvalidInput)
		}
		f.AreaHa = p.AreaHa.Round(areaPlaces)
	}
	if err := s.r.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *fieldSvc) UpdateCrop(ctx context.Context, id uint, crop string) error {
	return s.r.UpdateCrop(ctx, id, strings.TrimSpace(crop))
}
