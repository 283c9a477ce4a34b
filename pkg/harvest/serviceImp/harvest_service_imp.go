package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"fieldbook/entities"
	"fieldbook/pkg/apperr"
	fieldsvc "fieldbook/pkg/field/service"
	"fieldbook/pkg/harvest/service"
	"fieldbook/pkg/logger"
	"fieldbook/pkg/metrics"
	statusrepo "fieldbook/pkg/status/repository"
	statussvc "fieldbook/pkg/status/service"
	yieldrepo "fieldbook/pkg/yield/repository"
)

var keyNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("fieldbook:harvest"))

// IdempotencyKey derives the stored key for a client token. The same field
// and token always give the same key.
func IdempotencyKey(fieldID uint, token string) string {
	name := strconv.FormatUint(uint64(fieldID), 10) + "/" + strings.TrimSpace(token)
	return uuid.NewSHA1(keyNamespace, []byte(name)).String()
}

// Deps are the collaborators a harvest touches.
type Deps struct {
	Yields  yieldrepo.YieldRepository
	Status  statussvc.StatusService
	Events  statusrepo.StatusRepository
	Fields  fieldsvc.FieldService
	Metrics *metrics.Metrics
	Now     func() time.Time
}

type harvestSvc struct {
	d   Deps
	log *slog.Logger
}

func NewHarvestService(d Deps) service.HarvestService {
	if d.Now == nil {
		d.Now = time.Now
	}
	return &harvestSvc{d: d, log: logger.Module("harvest")}
}

func validate(req service.Request) error {
	switch {
	case req.FieldID == 0:
		return fmt.Errorf("%w: field id is required", apperr.ErrInvalidInput)
	case strings.TrimSpace(req.Crop) == "":
		return fmt.Errorf("%w: crop is required", apperr.ErrInvalidInput)
	case math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) || req.Amount < 0:
		return fmt.Errorf("%w: amount must be a number >= 0", apperr.ErrInvalidInput)
	case math.IsNaN(req.Moisture) || req.Moisture < 0 || req.Moisture > 100:
		return fmt.Errorf("%w: moisture must be within 0-100", apperr.ErrInvalidInput)
	}
	return nil
}

// RecordHarvest stores the yield, then the harvested status event, then the
// field's crop label. The steps are not one transaction: each is keyed so a
// retry with the same IdempotencyKey resumes where the last attempt stopped.
func (s *harvestSvc) RecordHarvest(ctx context.Context, req service.Request) (service.Outcome, error) {
	if err := validate(req); err != nil {
		return service.Outcome{}, err
	}
	req.Crop = strings.TrimSpace(req.Crop)
	if _, err := s.d.Fields.Get(ctx, req.FieldID); err != nil {
		return service.Outcome{}, fmt.Errorf("record harvest: field %d: %w", req.FieldID, err)
	}
	log := s.log.With("field_id", req.FieldID, "crop", req.Crop)

	y, replayed, err := s.appendYield(ctx, req)
	if err != nil {
		s.d.Metrics.HarvestStepFailed(metrics.StepYield)
		log.WarnContext(ctx, "yield step failed", "err", err)
		return service.Outcome{}, fmt.Errorf("record harvest: yield: %w", err)
	}
	out := service.Outcome{Yield: y, Replayed: replayed}

	ev, err := s.appendHarvested(ctx, *y)
	if err != nil {
		s.d.Metrics.HarvestStepFailed(metrics.StepStatus)
		log.ErrorContext(ctx, "status step failed, yield left orphaned", "yield_id", y.YieldID, "err", err)
		return out, fmt.Errorf("record harvest: status: %w", err)
	}
	out.Status = ev

	if err := s.d.Fields.UpdateCrop(ctx, y.FieldID, y.Crop); err != nil {
		s.d.Metrics.HarvestStepFailed(metrics.StepCrop)
		out.Stale = fmt.Errorf("%w: field %d crop label: %w", apperr.ErrStaleDenormalizedState, y.FieldID, err)
		log.WarnContext(ctx, "crop label not updated", "err", err)
	}
	log.InfoContext(ctx, "harvest recorded", "yield_id", y.YieldID, "event_id", ev.EventID, "replayed", replayed)
	return out, nil
}

func (s *harvestSvc) appendYield(ctx context.Context, req service.Request) (*entities.YieldRecord, bool, error) {
	y := &entities.YieldRecord{
		FieldID:     req.FieldID,
		Crop:        req.Crop,
		Amount:      req.Amount,
		MoisturePct: req.Moisture,
		CreatedAt:   s.d.Now().UTC(),
	}
	if req.IdempotencyKey == "" {
		if err := s.d.Yields.Append(ctx, y); err != nil {
			return nil, false, err
		}
		s.d.Metrics.Appended(metrics.StreamYield)
		return y, false, nil
	}

	key := IdempotencyKey(req.FieldID, req.IdempotencyKey)
	if prev, err := s.findYield(ctx, key); err != nil || prev != nil {
		return prev, prev != nil, err
	}
	y.IdempotencyKey = &key
	if err := s.d.Yields.Append(ctx, y); err != nil {
		// a concurrent retry may have won the unique key
		if prev, ferr := s.findYield(ctx, key); ferr == nil && prev != nil {
			return prev, true, nil
		}
		return nil, false, err
	}
	s.d.Metrics.Appended(metrics.StreamYield)
	return y, false, nil
}

func (s *harvestSvc) findYield(ctx context.Context, key string) (*entities.YieldRecord, error) {
	y, err := s.d.Yields.FindByKey(ctx, key)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, nil
	}
	return y, err
}

// appendHarvested writes the status event for y unless one already carries
// its harvest key. The event is stamped no earlier than the yield or the
// field's current event, so it becomes the current status.
func (s *harvestSvc) appendHarvested(ctx context.Context, y entities.YieldRecord) (*entities.StatusEvent, error) {
	hk := HarvestKey(y)
	prev, err := s.d.Events.FindByHarvestKey(ctx, hk)
	switch {
	case err == nil:
		return prev, nil
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, err
	}

	at := s.d.Now().UTC()
	if y.CreatedAt.After(at) {
		at = y.CreatedAt
	}
	cur, ok, err := s.d.Status.CurrentStatus(ctx, y.FieldID)
	if err != nil {
		return nil, err
	}
	if ok && cur.CreatedAt.After(at) {
		at = cur.CreatedAt
	}

	amount, moisture := y.Amount, y.MoisturePct
	ev := &entities.StatusEvent{
		FieldID:       y.FieldID,
		Status:        entities.StatusHarvested,
		Crop:          y.Crop,
		YieldAmount:   &amount,
		YieldMoisture: &moisture,
		HarvestKey:    &hk,
		CreatedAt:     at,
	}
	if _, err := s.d.Status.Append(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *harvestSvc) Yields(ctx context.Context, fieldID uint) ([]entities.YieldRecord, error) {
	return s.d.Yields.ListByField(ctx, fieldID)
}

func (s *harvestSvc) Orphans(ctx context.Context, fieldID uint) ([]entities.YieldRecord, error) {
	var (
		ys  []entities.YieldRecord
		evs []entities.StatusEvent
		err error
	)
	if fieldID == 0 {
		if ys, err = s.d.Yields.ListAll(ctx); err != nil {
			return nil, err
		}
		evs, err = s.d.Events.ListAll(ctx)
	} else {
		if ys, err = s.d.Yields.ListByField(ctx, fieldID); err != nil {
			return nil, err
		}
		evs, err = s.d.Events.ListByField(ctx, fieldID)
	}
	if err != nil {
		return nil, err
	}
	return FindOrphans(ys, evs), nil
}
