// Package boundary reads surveyed field vertices from CSV or XLSX tables.
package boundary

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"fieldbook/pkg/geomath"
	"fieldbook/pkg/logger"
)

var (
	latAliases = []string{"lat", "latitude", "y"}
	lngAliases = []string{"lng", "lon", "long", "longitude", "x"}
	seqAliases = []string{"seq", "order", "n", "vertex"}
)

func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.ToLower(s)
	s = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
	return s
}

type columns struct{ lat, lng, seq int }

func findColumns(head []string) (columns, error) {
	hmap := map[string]int{}
	for i, h := range head {
		if _, dup := hmap[norm(h)]; !dup {
			hmap[norm(h)] = i
		}
	}
	findAny := func(keys []string) int {
		for _, k := range keys {
			if idx, ok := hmap[norm(k)]; ok {
				return idx
			}
		}
		return -1
	}
	c := columns{lat: findAny(latAliases), lng: findAny(lngAliases), seq: findAny(seqAliases)}
	if c.lat == -1 || c.lng == -1 {
		return c, fmt.Errorf("missing lat/lng columns, found headers %v", head)
	}
	return c, nil
}

type vertex struct {
	seq float64
	row int
	p   geomath.Point
}

// parse turns table rows into points. Rows with unreadable or out-of-range
// coordinates are skipped; when a seq column exists rows are ordered by it.
func parse(rows [][]string) ([]geomath.Point, error) {
	if len(rows) == 0 {
		return nil, errors.New("empty table")
	}
	cols, err := findColumns(rows[0])
	if err != nil {
		return nil, err
	}
	log := logger.Module("boundary")

	var vs []vertex
	for i, rec := range rows[1:] {
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		lat, err1 := strconv.ParseFloat(get(cols.lat), 64)
		lng, err2 := strconv.ParseFloat(get(cols.lng), 64)
		if err1 != nil || err2 != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			log.Debug("skipping row", "row", i+2, "lat", get(cols.lat), "lng", get(cols.lng))
			continue
		}
		v := vertex{seq: float64(i), row: i, p: geomath.Point{Lat: lat, Lng: lng}}
		if cols.seq != -1 {
			if s, err := strconv.ParseFloat(get(cols.seq), 64); err == nil {
				v.seq = s
			}
		}
		vs = append(vs, v)
	}
	if cols.seq != -1 {
		sort.SliceStable(vs, func(i, j int) bool { return vs[i].seq < vs[j].seq })
	}
	out := make([]geomath.Point, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.p)
	}
	return out, nil
}

func LoadCSV(r io.Reader) ([]geomath.Point, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return parse(rows)
}

// LoadXLSX reads the named sheet, or the first one when sheet is empty.
func LoadXLSX(path, sheet string) ([]geomath.Point, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer x.Close()
	if sheet == "" {
		sheet = x.GetSheetName(0)
	}
	rows, err := x.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return parse(rows)
}

// LoadFile picks the reader by extension.
func LoadFile(path, sheet string) ([]geomath.Point, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return LoadXLSX(path, sheet)
	case ".csv", ".txt":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return LoadCSV(f)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}
