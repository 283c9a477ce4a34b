package logger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormAdapter routes gorm logging into slog. SQL is logged at debug; slow
// queries and query errors at warn. Record-not-found is not an error here.
type GormAdapter struct {
	log  *slog.Logger
	slow time.Duration
}

func NewGormAdapter(l *slog.Logger, slow time.Duration) *GormAdapter {
	if l == nil {
		l = Module("database")
	}
	return &GormAdapter{log: l, slow: slow}
}

// LogMode is a no-op; the slog level decides what is emitted.
func (a *GormAdapter) LogMode(gormlogger.LogLevel) gormlogger.Interface { return a }

func (a *GormAdapter) Info(ctx context.Context, msg string, data ...any) {
	a.log.DebugContext(ctx, fmt.Sprintf(msg, data...))
}

func (a *GormAdapter) Warn(ctx context.Context, msg string, data ...any) {
	a.log.WarnContext(ctx, fmt.Sprintf(msg, data...))
}

func (a *GormAdapter) Error(ctx context.Context, msg string, data ...any) {
	a.log.ErrorContext(ctx, fmt.Sprintf(msg, data...))
}

func (a *GormAdapter) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		a.log.WarnContext(ctx, "query error", "sql", sql, "rows", rows, "ms", elapsed.Milliseconds(), "err", err)
	case a.slow > 0 && elapsed > a.slow:
		a.log.WarnContext(ctx, "slow query", "sql", sql, "rows", rows, "ms", elapsed.Milliseconds(), "threshold", a.slow)
	default:
		a.log.DebugContext(ctx, "sql", "sql", sql, "rows", rows, "ms", elapsed.Milliseconds())
	}
}
