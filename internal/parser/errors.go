package parser

import "errors"

// Sentinel errors of the specification scan. Call sites wrap them with
// row context via fmt.Errorf and %w; any of them aborts the whole
// import with nothing persisted.
var (
	// ErrSheetFormat marks a workbook whose layout does not match the
	// expected sheet: missing sheet or wrong header cells.
	ErrSheetFormat = errors.New("sheet format mismatch")

	// ErrEmptyProduct marks a product header immediately followed by
	// another product header.
	ErrEmptyProduct = errors.New("product has no rows")

	// ErrEquipmentWithoutProduct marks a part or cost row appearing
	// before the first product header.
	ErrEquipmentWithoutProduct = errors.New("equipment row before first product")

	// ErrMalformedRange marks a serial range whose bounds cannot be
	// parsed or whose end is below its start.
	ErrMalformedRange = errors.New("malformed serial range")

	// ErrDivisionByZero marks a zero declared amount or unit price where
	// the wage math divides by it.
	ErrDivisionByZero = errors.New("division by zero")
)
