// Package report renders field records as spreadsheets.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"fieldbook/entities"
)

const harvestSheet = "Harvests"

var harvestHeader = []any{"Yield ID", "Date (UTC)", "Crop", "Amount (t)", "Moisture (%)", "t/ha", "Status recorded"}

// WriteHarvests writes one row per yield record. Yields listed in orphans
// are flagged as lacking a harvested status event.
func WriteHarvests(w io.Writer, field entities.Field, yields []entities.YieldRecord, orphans []entities.YieldRecord) error {
	x := excelize.NewFile()
	defer x.Close()

	if err := x.SetSheetName(x.GetSheetName(0), harvestSheet); err != nil {
		return err
	}
	title := fmt.Sprintf("%s (#%d), %s ha", field.Name, field.FieldID, field.AreaHa.StringFixed(2))
	if err := x.SetCellValue(harvestSheet, "A1", title); err != nil {
		return err
	}
	if err := x.SetSheetRow(harvestSheet, "A3", &harvestHeader); err != nil {
		return err
	}
	bold, err := x.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := x.SetCellStyle(harvestSheet, "A3", "G3", bold); err != nil {
		return err
	}

	orphan := make(map[uint]bool, len(orphans))
	for _, o := range orphans {
		orphan[o.YieldID] = true
	}
	area := field.AreaHa.InexactFloat64()
	for i, y := range yields {
		perHa := any("")
		if area > 0 {
			perHa = y.Amount / area
		}
		recorded := "yes"
		if orphan[y.YieldID] {
			recorded = "MISSING"
		}
		row := []any{y.YieldID, y.CreatedAt.UTC().Format("2006-01-02 15:04"), y.Crop, y.Amount, y.MoisturePct, perHa, recorded}
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return err
		}
		if err := x.SetSheetRow(harvestSheet, cell, &row); err != nil {
			return err
		}
	}
	if err := x.SetColWidth(harvestSheet, "B", "B", 18); err != nil {
		return err
	}
	return x.Write(w)
}
