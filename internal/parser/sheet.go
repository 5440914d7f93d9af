package parser

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Specification sheet layout. Rows before StartRow are headers and
// titles; data runs from StartRow until the first empty name cell.
const (
	DefaultSheetName   = "Спецификация"
	DefaultStartRow    = 11
	DefaultMarkerColor = "FF33CCFF"

	colName   = 2  // B: product / part label
	colAmount = 8  // H: declared amount
	colCost   = 12 // L: unit price / cost contribution
	colWage   = 15 // O: wage numerator
)

// SheetReader reads specification rows from an excelize workbook and
// resolves the name cell's fill color and bold flag into the marker
// fields of SheetRow.
type SheetReader struct {
	file      *excelize.File
	sheet     string
	markerRGB string
}

// NewSheetReader wraps an open workbook. markerColor is the ARGB or RGB
// hex of the header fill, e.g. "FF33CCFF".
func NewSheetReader(file *excelize.File, sheet, markerColor string) *SheetReader {
	return &SheetReader{
		file:      file,
		sheet:     sheet,
		markerRGB: normalizeRGB(markerColor),
	}
}

// Sheet returns the sheet name being read.
func (r *SheetReader) Sheet() string {
	return r.sheet
}

// HasSheet reports whether the workbook contains the specification sheet.
func (r *SheetReader) HasSheet() bool {
	idx, err := r.file.GetSheetIndex(r.sheet)
	return err == nil && idx >= 0
}

// Row reads one data row. Formatting is read from the name cell only.
func (r *SheetReader) Row(idx int) (SheetRow, error) {
	row := SheetRow{Index: idx}

	name, err := r.cellValue(colName, idx)
	if err != nil {
		return row, err
	}
	row.Name = strings.TrimSpace(name)
	if row.Name == "" {
		return row, nil
	}

	if row.Amount, err = r.cellValue(colAmount, idx); err != nil {
		return row, err
	}
	if row.Cost, err = r.cellValue(colCost, idx); err != nil {
		return row, err
	}
	if row.Wage, err = r.cellValue(colWage, idx); err != nil {
		return row, err
	}

	marker, bold, err := r.cellFormat(colName, idx)
	if err != nil {
		return row, err
	}
	row.Marker = marker
	row.Bold = bold

	return row, nil
}

// cellValue reads one cell as trimmed text.
func (r *SheetReader) cellValue(col, rowIdx int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col, rowIdx)
	if err != nil {
		return "", err
	}
	value, err := r.file.GetCellValue(r.sheet, cell)
	if err != nil {
		return "", fmt.Errorf("failed to read cell %s: %w", cell, err)
	}
	return value, nil
}

// cellFormat resolves the fill color and bold flag of one cell.
func (r *SheetReader) cellFormat(col, rowIdx int) (marker, bold bool, err error) {
	cell, err := excelize.CoordinatesToCellName(col, rowIdx)
	if err != nil {
		return false, false, err
	}

	styleID, err := r.file.GetCellStyle(r.sheet, cell)
	if err != nil {
		return false, false, fmt.Errorf("failed to read style of cell %s: %w", cell, err)
	}

	style, err := r.file.GetStyle(styleID)
	if err != nil || style == nil {
		// Unstyled cells classify as continuation rows.
		return false, false, nil
	}

	for _, color := range style.Fill.Color {
		if normalizeRGB(color) == r.markerRGB {
			marker = true
			break
		}
	}
	if style.Font != nil {
		bold = style.Font.Bold
	}

	return marker, bold, nil
}

// normalizeRGB uppercases a hex color and strips the "#" prefix and the
// alpha channel, so "#33ccff", "33CCFF" and "FF33CCFF" all compare equal.
func normalizeRGB(color string) string {
	color = strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(color), "#"))
	if len(color) == 8 {
		color = color[2:]
	}
	return color
}

// parseDecimal parses a numeric cell leniently: spaces and thousands
// separators are dropped, a decimal comma is accepted. Empty or
// non-numeric cells report ok=false.
func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Decimal{}, false
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
