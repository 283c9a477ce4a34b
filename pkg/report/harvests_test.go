package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fieldbook/entities"
)

func TestWriteHarvests(t *testing.T) {
	field := entities.Field{FieldID: 4, Name: "South", AreaHa: decimal.NewFromInt(2)}
	t0 := time.Date(2024, 8, 1, 10, 0, 0, 0, time.UTC)
	yields := []entities.YieldRecord{
		{YieldID: 1, Crop: "wheat", Amount: 14, MoisturePct: 13, CreatedAt: t0},
		{YieldID: 2, Crop: "wheat", Amount: 3, MoisturePct: 15, CreatedAt: t0.Add(24 * time.Hour)},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteHarvests(&buf, field, yields, yields[1:]))

	x, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer x.Close()

	rows, err := x.GetRows(harvestSheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "South (#4), 2.00 ha", rows[0][0])
	assert.Equal(t, "Yield ID", rows[2][0])
	assert.Equal(t, []string{"1", "2024-08-01 10:00", "wheat", "14", "13", "7", "yes"}, rows[3])
	assert.Equal(t, "MISSING", rows[4][6])
}
