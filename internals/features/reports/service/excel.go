package service

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook renders flat rows into a single-sheet xlsx payload.
func WriteWorkbook(sheetName string, rows []FlatRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const defaultSheet = "Sheet1"
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for r, row := range rows {
		for col, v := range row {
			if v == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, r+1)
			if err != nil {
				return nil, fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportName derives the download file name (without extension) from the
// report kind, the selected scope and the period.
func ExportName(kind, scopeLabel, period string) string {
	parts := []string{kind}
	if scopeLabel != "" {
		parts = append(parts, scopeLabel)
	}
	if period != "" {
		parts = append(parts, period)
	}
	return strings.Join(parts, "_")
}

// SheetName keeps excelize's 31-char sheet name limit.
func SheetName(name string) string {
	if len(name) > 31 {
		return name[:31]
	}
	return name
}
