// Package export renders engine output as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/printstock/internal/pricing"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	matrixSheet = "Filamentos"
)

var matrixHeaders = []string{
	"Filamento", "Color", "Costo/kg", "Material", "Energía",
	"Costo unitario", "Precio consumidor", "Ganancia neta",
}

// WriteMatrix writes the filament comparison table as an XLSX workbook.
func WriteMatrix(w io.Writer, rows []pricing.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", matrixSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return fmt.Errorf("money style: %w", err)
	}

	for i, h := range matrixHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		if err := f.SetCellValue(matrixSheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(matrixSheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for i, r := range rows {
		line := i + 2
		values := []any{
			r.Filament.Name,
			r.Filament.Color,
			pricing.Round2(r.Filament.CostPerKg),
			pricing.Round2(r.Breakdown.Material),
			pricing.Round2(r.Breakdown.Energy),
			pricing.Round2(r.Breakdown.UnitCost),
			pricing.Round2(r.Price.ConsumerPrice),
			pricing.Round2(r.Price.NetProfit),
		}
		if err := f.SetSheetRow(matrixSheet, fmt.Sprintf("A%d", line), &values); err != nil {
			return fmt.Errorf("write row %d: %w", line, err)
		}
	}

	if len(rows) > 0 {
		last := len(rows) + 1
		if err := f.SetCellStyle(matrixSheet, "C2", fmt.Sprintf("H%d", last), moneyStyle); err != nil {
			return err
		}
	}

	widths := []float64{24, 14, 12, 12, 12, 16, 18, 16}
	for i, wd := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(matrixSheet, col, col, wd); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
