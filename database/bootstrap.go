package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"fieldbook/config"
	"fieldbook/entities"
	"fieldbook/pkg/logger"
)

const legacyStatusTable = "field_statuses"

// Open connects to the configured store, migrates the schema and folds any
// legacy single-row status table into the ledger.
func Open(cfg config.AppConfig) (*gorm.DB, error) {
	log := logger.Module("database")
	gcfg := &gorm.Config{Logger: logger.NewGormAdapter(log, cfg.SlowQuery)}

	var dial gorm.Dialector
	switch strings.ToLower(cfg.DBDriver) {
	case "", "sqlite":
		dial = sqlite.Open(sqliteDSN(cfg.DBPath))
	case "mysql":
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("open mysql: DB_DSN is empty")
		}
		dial = mysql.Open(cfg.DBDSN)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dial, gcfg)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Info("database ready", "driver", dial.Name())
	return db, nil
}

// Migrate creates the tables and runs the one-off legacy status copy.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entities.Field{},
		&entities.StatusEvent{},
		&entities.YieldRecord{},
		&entities.CostRecord{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	if err := migrateLegacyFieldStatus(db); err != nil {
		return fmt.Errorf("migrate %s: %w", legacyStatusTable, err)
	}
	return nil
}

func sqliteDSN(path string) string {
	if path == "" {
		path = "fieldbook.db"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
}

// migrateLegacyFieldStatus copies the old mutable field_statuses table (one
// row per field, overwritten on change) into status_events and drops it.
// Each row becomes a single ledger event; history before it is gone anyway.
// Unknown statuses are skipped and timestamps are rewritten in UTC.
func migrateLegacyFieldStatus(db *gorm.DB) error {
	m := db.Migrator()
	if !m.HasTable(legacyStatusTable) {
		return nil
	}
	log := logger.Module("database")

	cols, err := m.ColumnTypes(legacyStatusTable)
	if err != nil {
		return fmt.Errorf("column types: %w", err)
	}
	oldCols := map[string]bool{}
	for _, c := range cols {
		oldCols[strings.ToLower(c.Name())] = true
	}
	if !oldCols["field_id"] || !oldCols["status"] {
		return fmt.Errorf("legacy table lacks field_id/status columns")
	}
	sel := func(name, fallback string) string {
		if oldCols[name] {
			return name
		}
		return fallback
	}
	ts := sel("updated_at", sel("created_at", "NULL"))

	return db.Transaction(func(tx *gorm.DB) error {
		rows, err := tx.Table(legacyStatusTable).
			Select(fmt.Sprintf("field_id, status, %s, %s, %s", sel("crop", "''"), sel("notes", "''"), ts)).
			Rows()
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		var events []entities.StatusEvent
		skipped := 0
		for rows.Next() {
			var (
				fieldID            uint
				status, crop, note sql.NullString
				at                 any
			)
			if err := rows.Scan(&fieldID, &status, &crop, &note, &at); err != nil {
				rows.Close()
				return err
			}
			st := entities.FieldStatus(strings.ToLower(strings.TrimSpace(status.String)))
			if !st.Valid() {
				if st != "" {
					log.Warn("legacy status skipped", "field_id", fieldID, "status", status.String)
				}
				skipped++
				continue
			}
			created, ok := legacyTime(at)
			if !ok {
				if at != nil {
					log.Warn("legacy timestamp unreadable, using now", "field_id", fieldID, "value", at)
				}
				created = now
			}
			events = append(events, entities.StatusEvent{
				FieldID:   fieldID,
				Status:    st,
				Crop:      strings.TrimSpace(crop.String),
				Notes:     note.String,
				CreatedAt: created,
			})
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		if len(events) > 0 {
			if err := tx.CreateInBatches(&events, 200).Error; err != nil {
				return err
			}
		}
		if err := tx.Migrator().DropTable(legacyStatusTable); err != nil {
			return err
		}
		log.Info("legacy statuses copied into ledger", "rows", len(events), "skipped", skipped)
		return nil
	})
}

var legacyLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// legacyTime reads a driver timestamp value as UTC. Values without a zone
// are taken to be UTC already, which is what CURRENT_TIMESTAMP wrote.
func legacyTime(v any) (time.Time, bool) {
	var s string
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), !t.IsZero()
	case string:
		s = t
	case []byte:
		s = string(t)
	default:
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range legacyLayouts {
		if p, err := time.Parse(layout, s); err == nil {
			return p.UTC(), true
		}
	}
	return time.Time{}, false
}
