package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"oxexplorer/internal/series"
)

const (
	trendsSheet   = "Trends"
	averagesSheet = "Averages"
)

// XLSXContentType is the media type of a Workbook.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Workbook writes an xlsx file with a Trends sheet (one row per period, one
// column per series) when lines is non-empty and an Averages sheet when bars
// is non-empty.
func Workbook(w io.Writer, lines []series.Series, axis []string, bars []series.Bar) error {
	var sheets []string
	if len(lines) > 0 {
		sheets = append(sheets, trendsSheet)
	}
	if len(bars) > 0 {
		sheets = append(sheets, averagesSheet)
	}
	if len(sheets) == 0 {
		return errors.New("workbook: nothing to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheets[0]); err != nil {
		return fmt.Errorf("workbook: %w", err)
	}
	for _, name := range sheets[1:] {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("workbook: %w", err)
		}
	}

	if len(lines) > 0 {
		if err := writeTrends(f, lines, axis); err != nil {
			return err
		}
	}
	if len(bars) > 0 {
		if err := writeAverages(f, bars); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeTrends(f *excelize.File, lines []series.Series, axis []string) error {
	header := []any{"Period"}
	for _, s := range lines {
		header = append(header, s.Name)
	}
	if err := f.SetSheetRow(trendsSheet, "A1", &header); err != nil {
		return fmt.Errorf("workbook trends header: %w", err)
	}

	for r, label := range axis {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(trendsSheet, cell, label); err != nil {
			return err
		}
	}

	for c, s := range lines {
		values := make(map[string]float64, len(s.Data))
		for _, pt := range s.Data {
			values[pt.Label] = pt.Value
		}
		for r, label := range axis {
			v, ok := values[label]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+2, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(trendsSheet, cell, v); err != nil {
				return err
			}
		}
	}
	return f.SetColWidth(trendsSheet, "A", "A", 12)
}

func writeAverages(f *excelize.File, bars []series.Bar) error {
	if err := f.SetSheetRow(averagesSheet, "A1", &[]any{"Ward", "Average price"}); err != nil {
		return fmt.Errorf("workbook averages header: %w", err)
	}
	for i, b := range bars {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(averagesSheet, cell, &[]any{b.Label, b.Value}); err != nil {
			return err
		}
	}
	return f.SetColWidth(averagesSheet, "A", "A", 30)
}
