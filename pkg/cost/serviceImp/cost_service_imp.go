package serviceImp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fieldbook/entities"
	"fieldbook/pkg/apperr"
	repo "fieldbook/pkg/cost/repository"
	"fieldbook/pkg/cost/service"
	"fieldbook/pkg/metrics"
)

type costSvc struct {
	r   repo.CostRepository
	m   *metrics.Metrics
	now func() time.Time
}

func New(r repo.CostRepository, m *metrics.Metrics) service.CostService {
	return &costSvc{r: r, m: m, now: time.Now}
}

func (s *costSvc) Append(ctx context.Context, c *entities.CostRecord) error {
	if c == nil || c.FieldID == 0 {
		return fmt.Errorf("%w: field id is required", apperr.ErrInvalidInput)
	}
	c.Category = entities.CostCategory(strings.ToLower(strings.TrimSpace(string(c.Category))))
	if c.Category == "" {
		c.Category = entities.CostOther
	}
	if !c.Category.Valid() {
		return fmt.Errorf("%w: unknown cost category %q", apperr.ErrInvalidInput, c.Category)
	}
	if c.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must be >= 0", apperr.ErrInvalidInput)
	}
	c.Amount = c.Amount.Round(2)
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}
	if err := s.r.Append(ctx, c); err != nil {
		return err
	}
	s.m.Appended(metrics.StreamCost)
	return nil
}

func (s *costSvc) List(ctx context.Context, fieldID uint, from, to *time.Time) ([]entities.CostRecord, error) {
	if from != nil && to != nil && !from.Before(*to) {
		return nil, fmt.Errorf("%w: from must be before to", apperr.ErrInvalidInput)
	}
	return s.r.ListByField(ctx, fieldID, from, to)
}
