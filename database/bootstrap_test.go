package database

import (
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fieldbook/config"
	"fieldbook/entities"
)

func TestOpen_SQLiteCreatesSchema(t *testing.T) {
	cfg := config.AppConfig{DBDriver: "sqlite", DBPath: filepath.Join(t.TempDir(), "fb.db")}
	db, err := Open(cfg)
	require.NoError(t, err)

	m := db.Migrator()
	for _, tbl := range []any{&entities.Field{}, &entities.StatusEvent{}, &entities.YieldRecord{}, &entities.CostRecord{}} {
		assert.True(t, m.HasTable(tbl))
	}
	assert.True(t, m.HasIndex(&entities.StatusEvent{}, "idx_status_field_time"))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(config.AppConfig{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestOpen_MySQLNeedsDSN(t *testing.T) {
	_, err := Open(config.AppConfig{DBDriver: "mysql"})
	assert.ErrorContains(t, err, "DB_DSN")
}

func TestMigrate_CopiesLegacyStatuses(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "legacy.db")), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE field_statuses (
		field_id INTEGER PRIMARY KEY,
		status TEXT,
		crop TEXT,
		updated_at DATETIME
	)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO field_statuses (field_id, status, crop, updated_at) VALUES
		(1, 'sown', 'wheat', '2024-04-02 08:00:00'),
		(2, 'fallow', '', '2024-03-01 08:00:00'),
		(3, '', '', '2024-03-01 08:00:00'),
		(4, ' Harvested ', 'rye', '2024-04-02T10:00:00+02:00'),
		(5, 'ploughed', '', '2024-03-01 08:00:00')`).Error)

	require.NoError(t, Migrate(db))

	assert.False(t, db.Migrator().HasTable(legacyStatusTable))

	var statuses []string
	require.NoError(t, db.Model(&entities.StatusEvent{}).Order("field_id").Pluck("status", &statuses).Error)
	assert.Equal(t, []string{"sown", "fallow", "harvested"}, statuses)

	var crops []string
	require.NoError(t, db.Model(&entities.StatusEvent{}).Where("field_id = ?", 1).Pluck("crop", &crops).Error)
	assert.Equal(t, []string{"wheat"}, crops)

	var moved entities.StatusEvent
	require.NoError(t, db.Where("field_id = ?", 4).First(&moved).Error)
	assert.True(t, moved.CreatedAt.Equal(time.Date(2024, 4, 2, 8, 0, 0, 0, time.UTC)), "got %v", moved.CreatedAt)

	// 09:00 UTC is later than the migrated 10:00+02:00 and must order after it
	later := entities.StatusEvent{FieldID: 4, Status: entities.StatusReadyForSowing,
		CreatedAt: time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC)}
	require.NoError(t, db.Create(&later).Error)
	var latest entities.StatusEvent
	require.NoError(t, db.Where("field_id = ?", 4).Order("created_at DESC, event_id DESC").First(&latest).Error)
	assert.Equal(t, entities.StatusReadyForSowing, latest.Status)

	// second run is a no-op once the legacy table is gone
	require.NoError(t, Migrate(db))
	var n int64
	db.Model(&entities.StatusEvent{}).Count(&n)
	assert.EqualValues(t, 4, n)
}

func TestLegacyTime(t *testing.T) {
	want := time.Date(2024, 4, 2, 8, 0, 0, 0, time.UTC)
	for _, v := range []any{
		"2024-04-02 08:00:00",
		"2024-04-02T10:00:00+02:00",
		[]byte("2024-04-02 09:00:00+01:00"),
		time.Date(2024, 4, 2, 10, 0, 0, 0, time.FixedZone("CEST", 2*3600)),
	} {
		got, ok := legacyTime(v)
		require.True(t, ok, "%v", v)
		assert.True(t, got.Equal(want), "%v -> %v", v, got)
		assert.Equal(t, time.UTC, got.Location())
	}
	_, ok := legacyTime("yesterday")
	assert.False(t, ok)
	_, ok = legacyTime(nil)
	assert.False(t, ok)
}
