package repositoryImp

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldbook/config"
	"fieldbook/database"
	"fieldbook/entities"
	"fieldbook/pkg/apperr"
)

func setupRepo(t *testing.T) *statusRepo {
	t.Helper()
	db, err := database.Open(config.AppConfig{DBDriver: "sqlite", DBPath: filepath.Join(t.TempDir(), "status.db")})
	require.NoError(t, err)
	return New(db).(*statusRepo)
}

func TestStatusRepo_LatestUsesTimestampThenID(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	t0 := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, r.Append(ctx, &entities.StatusEvent{FieldID: 1, Status: entities.StatusSown, CreatedAt: t0.Add(time.Hour)}))
	require.NoError(t, r.Append(ctx, &entities.StatusEvent{FieldID: 1, Status: entities.StatusFallow, CreatedAt: t0}))
	require.NoError(t, r.Append(ctx, &entities.StatusEvent{FieldID: 2, Status: entities.StatusPasture, CreatedAt: t0.Add(5 * time.Hour)}))

	cur, err := r.Latest(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusSown, cur.Status)

	require.NoError(t, r.Append(ctx, &entities.StatusEvent{FieldID: 1, Status: entities.StatusHarvested, CreatedAt: t0.Add(time.Hour)}))
	cur, err = r.Latest(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusHarvested, cur.Status)
}

func TestStatusRepo_AppendNormalisesToUTC(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	local := time.Date(2024, 6, 1, 11, 0, 0, 0, time.FixedZone("CEST", 2*3600))

	ev := &entities.StatusEvent{FieldID: 3, Status: entities.StatusSown, CreatedAt: local}
	require.NoError(t, r.Append(ctx, ev))
	assert.NotZero(t, ev.EventID)
	assert.Equal(t, time.UTC, ev.CreatedAt.Location())

	// 11:00 CEST is 09:00 UTC, so a 10:00 UTC event is later despite the
	// smaller wall-clock reading
	require.NoError(t, r.Append(ctx, &entities.StatusEvent{FieldID: 3, Status: entities.StatusFallow,
		CreatedAt: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}))
	cur, err := r.Latest(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusFallow, cur.Status)

	require.NoError(t, r.Append(ctx, &entities.StatusEvent{FieldID: 3, Status: entities.StatusPasture,
		CreatedAt: time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)}))
	cur, err = r.Latest(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusFallow, cur.Status)
}

func TestStatusRepo_LatestMissing(t *testing.T) {
	r := setupRepo(t)
	_, err := r.Latest(context.Background(), 99)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestStatusRepo_ListAndHarvestKey(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()
	key := "yield:1"
	now := time.Now().UTC()

	require.NoError(t, r.Append(ctx, &entities.StatusEvent{FieldID: 1, Status: entities.StatusSown, CreatedAt: now}))
	require.NoError(t, r.Append(ctx, &entities.StatusEvent{FieldID: 1, Status: entities.StatusHarvested, HarvestKey: &key, CreatedAt: now}))
	require.NoError(t, r.Append(ctx, &entities.StatusEvent{FieldID: 2, Status: entities.StatusFallow, CreatedAt: now}))

	list, err := r.ListByField(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	all, err := r.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	found, err := r.FindByHarvestKey(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusHarvested, found.Status)

	_, err = r.FindByHarvestKey(ctx, "yield:404")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// the key is unique
	err = r.Append(ctx, &entities.StatusEvent{FieldID: 1, Status: entities.StatusHarvested, HarvestKey: &key, CreatedAt: now})
	assert.ErrorIs(t, err, apperr.ErrPersistence)
}
