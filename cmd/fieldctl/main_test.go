package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldbook/config"
)

func run(t *testing.T, cfg config.AppConfig, args ...string) (string, error) {
	t.Helper()
	root := rootCommand(func() config.AppConfig { return cfg })
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeCSV(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, "pts.csv")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

// square of about 1 km per side; the last click lands 5 m from the first
const surveyed = "lat,lng\n0,0\n0,0.0089932\n0.0089932,0.0089932\n0.0089932,0\n0.00004,0.00002\n"

func TestAreaCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := config.AppConfig{CloseThresholdM: 20}
	out, err := run(t, cfg, "area", "--file", writeCSV(t, dir, surveyed))
	require.NoError(t, err)
	assert.Contains(t, out, "points:   4 (read 5)")
	assert.Contains(t, out, "area_ha:  99.99")
	assert.Contains(t, out, "centroid: 0.004497, 0.004497")
}

func TestAreaCommand_TooFewPoints(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, config.AppConfig{CloseThresholdM: 20}, "area", "--file", writeCSV(t, dir, "lat,lng\n0,0\n0,1\n"))
	assert.ErrorContains(t, err, "insufficient points")
}

func TestImportOrphansExport(t *testing.T) {
	dir := t.TempDir()
	cfg := config.AppConfig{DBDriver: "sqlite", DBPath: filepath.Join(dir, "cli.db"), CloseThresholdM: 20, Timezone: "UTC"}

	out, err := run(t, cfg, "import", "--file", writeCSV(t, dir, surveyed), "--name", "River", "--soil", "silt")
	require.NoError(t, err)
	assert.Contains(t, out, `created field 1 "River"`)

	out, err = run(t, cfg, "orphans")
	require.NoError(t, err)
	assert.Contains(t, out, "no orphan yields")

	xlsx := filepath.Join(dir, "h.xlsx")
	out, err = run(t, cfg, "export-harvests", "--field", "1", "--out", xlsx)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 0 yields")
	_, err = os.Stat(xlsx)
	assert.NoError(t, err)

	_, err = run(t, cfg, "export-harvests", "--field", "5", "--out", xlsx)
	assert.ErrorContains(t, err, "not found")
}
