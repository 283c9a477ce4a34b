package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"fieldbook/entities"
	"fieldbook/pkg/apperr"
	"fieldbook/pkg/logger"
	"fieldbook/pkg/metrics"
	"fieldbook/pkg/status/ledger"
	repo "fieldbook/pkg/status/repository"
	"fieldbook/pkg/status/service"
)

type Option func(*statusSvc)

// WithClock replaces time.Now for stamping events.
func WithClock(now func() time.Time) Option { return func(s *statusSvc) { s.now = now } }

func WithMetrics(m *metrics.Metrics) Option { return func(s *statusSvc) { s.m = m } }

// WithCacheTTL sets how long a cached current status is served before the
// store is asked again. Zero keeps entries until replaced.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *statusSvc) { s.ttl = ttl }
}

type statusSvc struct {
	r   repo.StatusRepository
	now func() time.Time
	m   *metrics.Metrics
	ttl time.Duration
	log *slog.Logger

	// mu serialises read-model updates so a slower append cannot overwrite a newer one.
	mu      sync.Mutex
	current *cache.Cache
	gen     map[uint]uint64 // appends seen per field, guards cache fills racing a write
}

func NewStatusService(r repo.StatusRepository, opts ...Option) service.StatusService {
	s := &statusSvc{r: r, now: time.Now, ttl: 5 * time.Minute, log: logger.Module("status")}
	for _, o := range opts {
		o(s)
	}
	// no janitor: expired entries are ignored by Get and replaced on the next write
	s.current = cache.New(s.ttl, 0)
	s.gen = make(map[uint]uint64)
	return s
}

func key(fieldID uint) string { return strconv.FormatUint(uint64(fieldID), 10) }

func (s *statusSvc) Append(ctx context.Context, ev *entities.StatusEvent) (uint, error) {
	if ev == nil {
		return 0, fmt.Errorf("%w: nil status event", apperr.ErrInvalidInput)
	}
	if ev.FieldID == 0 {
		return 0, fmt.Errorf("%w: field id is required", apperr.ErrInvalidInput)
	}
	if !ev.Status.Valid() {
		return 0, fmt.Errorf("%w: unknown status %q", apperr.ErrInvalidInput, ev.Status)
	}
	ev.Crop = strings.TrimSpace(ev.Crop)
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = s.now()
	}
	ev.CreatedAt = ev.CreatedAt.UTC()

	if err := s.r.Append(ctx, ev); err != nil {
		s.log.WarnContext(ctx, "append failed", "field_id", ev.FieldID, "status", ev.Status, "err", err)
		return 0, err
	}
	s.m.Appended(metrics.StreamStatus)
	s.observe(*ev)
	s.log.DebugContext(ctx, "status appended", "field_id", ev.FieldID, "event_id", ev.EventID, "status", ev.Status)
	return ev.EventID, nil
}

// observe folds a freshly stored event into the read model. A cached entry
// is only replaced by a newer event; without one we cannot tell whether a
// backdated event is current, so the store decides on the next read.
func (s *statusSvc) observe(ev entities.StatusEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen[ev.FieldID]++
	k := key(ev.FieldID)
	v, ok := s.current.Get(k)
	if !ok {
		return
	}
	if cur := v.(entities.StatusEvent); ledger.Newer(ev, cur) {
		s.current.SetDefault(k, ev)
	}
}

func (s *statusSvc) CurrentStatus(ctx context.Context, fieldID uint) (entities.StatusEvent, bool, error) {
	k := key(fieldID)
	if v, ok := s.current.Get(k); ok {
		s.m.CacheLookup(true)
		return v.(entities.StatusEvent), true, nil
	}
	s.m.CacheLookup(false)

	s.mu.Lock()
	seen := s.gen[fieldID]
	s.mu.Unlock()

	ev, err := s.r.Latest(ctx, fieldID)
	if errors.Is(err, apperr.ErrNotFound) {
		return entities.StatusEvent{}, false, nil
	}
	if err != nil {
		return entities.StatusEvent{}, false, err
	}

	s.mu.Lock()
	if s.gen[fieldID] == seen {
		s.current.SetDefault(k, *ev)
	}
	s.mu.Unlock()
	return *ev, true, nil
}

func (s *statusSvc) History(ctx context.Context, fieldID uint) ([]entities.StatusEvent, error) {
	list, err := s.r.ListByField(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	ledger.SortHistory(list)
	return list, nil
}

func (s *statusSvc) CurrentAll(ctx context.Context) (map[uint]entities.StatusEvent, error) {
	all, err := s.r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.CurrentByField(all), nil
}
