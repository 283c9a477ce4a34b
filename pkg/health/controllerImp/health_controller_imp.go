package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var appStart = time.Now()

type HealthCtrl struct {
	db *gorm.DB
}

func NewHealthCtrl(db *gorm.DB) *HealthCtrl { return &HealthCtrl{db: db} }

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

// Health pings the store and reports the ledger tables' reachability. It
// answers 503 when the store is down, since every write would fail.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	checks := map[string]check{"database": h.ping(ctx)}
	pool := map[string]int{}
	if checks["database"].OK {
		checks["ledger"] = h.ledger(ctx)
		if sqlDB, err := h.db.DB(); err == nil {
			st := sqlDB.Stats()
			pool["open"] = st.OpenConnections
			pool["in_use"] = st.InUse
		}
	}

	allOK := true
	for _, ch := range checks {
		allOK = allOK && ch.OK
	}
	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}
	resp := map[string]any{
		"status":     map[string]any{"ok": allOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks":     checks,
		"time":       time.Now().UTC().Format(time.RFC3339),
	}
	if h.db != nil {
		resp["driver"] = h.db.Dialector.Name()
		resp["pool"] = pool
	}
	return c.JSON(status, resp)
}

func (h *HealthCtrl) ping(ctx context.Context) check {
	if h.db == nil {
		return check{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}

func (h *HealthCtrl) ledger(ctx context.Context) check {
	for _, tbl := range []string{"status_events", "yield_records"} {
		if !h.db.WithContext(ctx).Migrator().HasTable(tbl) {
			return check{Err: "missing table " + tbl}
		}
	}
	return check{OK: true}
}
