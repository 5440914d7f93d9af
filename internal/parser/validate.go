package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Expected header cell texts of the specification sheet.
const (
	headerRow      = 1
	headerName     = "Наименование"
	headerTotalRub = "Итого\nруб"
	headerWage     = "З/п"
)

// SheetValidator verifies the workbook layout before the main scan:
// first the fixed header cells, then a structural pre-pass over the data
// rows using the same classification rule as the scan itself.
type SheetValidator struct {
	reader   *SheetReader
	startRow int
}

// NewSheetValidator creates a validator over the given reader.
func NewSheetValidator(reader *SheetReader, startRow int) *SheetValidator {
	return &SheetValidator{reader: reader, startRow: startRow}
}

// Validate checks the sheet and returns the first structural error. Any
// error here aborts the import before a single row is accumulated.
func (v *SheetValidator) Validate() error {
	if !v.reader.HasSheet() {
		return fmt.Errorf("%w: sheet %q not found", ErrSheetFormat, v.reader.Sheet())
	}
	if err := v.checkHeaders(); err != nil {
		return err
	}
	return v.checkStructure()
}

// checkHeaders verifies the three fixed header cells of row 1.
func (v *SheetValidator) checkHeaders() error {
	checks := []struct {
		col   int
		want  string
		label string
	}{
		{colName, headerName, "part names"},
		{colCost, headerTotalRub, "total costs"},
		{colWage, headerWage, "wages"},
	}

	for _, check := range checks {
		got, err := v.reader.cellValue(check.col, headerRow)
		if err != nil {
			return err
		}
		if got != check.want {
			cell, _ := excelize.CoordinatesToCellName(check.col, headerRow)
			return fmt.Errorf("%w: header cell %s for %s: want %q, got %q",
				ErrSheetFormat, cell, check.label, check.want, got)
		}
	}
	return nil
}

// checkStructure walks the data rows once: two product headers in a row
// mean an empty product, and any part or cost row before the first
// product header has no product to belong to.
func (v *SheetValidator) checkStructure() error {
	prevWasProduct := false
	anyProduct := false

	for idx := v.startRow; ; idx++ {
		row, err := v.reader.Row(idx)
		if err != nil {
			return err
		}

		switch Classify(row) {
		case RowBlank:
			return nil
		case RowProductHeader:
			if prevWasProduct {
				return fmt.Errorf("%w: row %d", ErrEmptyProduct, idx)
			}
			prevWasProduct = true
			anyProduct = true
		default:
			if !anyProduct {
				return fmt.Errorf("%w: row %d", ErrEquipmentWithoutProduct, idx)
			}
			prevWasProduct = false
		}
	}
}
