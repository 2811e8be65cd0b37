package report

import (
	"io"

	"github.com/xuri/excelize/v2"
)

// SummarySheet is the worksheet name used by WriteSummaryXLSX.
const SummarySheet = "Summary"

// WriteSummaryXLSX writes the table summary as a single-sheet workbook.
func WriteSummaryXLSX(w io.Writer, s Summary, meta Meta) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	row := 1
	if meta.Title != "" {
		if err := f.SetCellValue(SummarySheet, "A1", meta.Title); err != nil {
			return err
		}
		if err := f.SetCellValue(SummarySheet, "A2", "Generated: "+meta.stamp()); err != nil {
			return err
		}
		row = 4
	}

	header := make([]interface{}, len(SummaryHeader))
	for i, h := range SummaryHeader {
		header[i] = h
	}
	if err := setRow(f, row, header); err != nil {
		return err
	}
	if err := styleRow(f, row, len(header), bold); err != nil {
		return err
	}

	for _, t := range s.Tables {
		row++
		if err := setRow(f, row, summaryValues(t, t.TableNumber)); err != nil {
			return err
		}
	}
	row++
	totals := s.Totals
	totals.GroupName = ""
	if err := setRow(f, row, summaryValues(totals, "Total")); err != nil {
		return err
	}
	if err := styleRow(f, row, len(header), bold); err != nil {
		return err
	}
	if err := f.SetColWidth(SummarySheet, "B", "B", 28); err != nil {
		return err
	}

	return f.Write(w)
}

func summaryValues(s TableSummary, label interface{}) []interface{} {
	return []interface{}{
		label, s.GroupName, s.Total, s.Reserved,
		s.Daging, s.Ayam, s.Ikan, s.Vegetarian, s.Adjusted,
	}
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(SummarySheet, cell, &values)
}

func styleRow(f *excelize.File, row, width, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(width, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(SummarySheet, first, last, style)
}
