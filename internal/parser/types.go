package parser

import "github.com/shopspring/decimal"

// RowKind is the structural tag of one sheet row. The classifier turns
// raw cell formatting into this tag so the scan never touches styling.
type RowKind int

const (
	RowBlank RowKind = iota // empty name cell, terminates the scan
	RowProductHeader
	RowPartHeader
	RowContinuation
)

func (k RowKind) String() string {
	switch k {
	case RowBlank:
		return "blank"
	case RowProductHeader:
		return "product_header"
	case RowPartHeader:
		return "part_header"
	case RowContinuation:
		return "continuation"
	}
	return "unknown"
}

// SheetRow is one data row of the specification sheet, read once and
// discarded after classification.
type SheetRow struct {
	Index  int    // 1-based row number
	Name   string // column B
	Amount string // column H, raw text
	Cost   string // column L, raw text
	Wage   string // column O, raw text
	Marker bool   // name cell carries the marker fill color
	Bold   bool   // name cell font is bold
}

// Classify tags a row by its name cell's formatting: marker fill plus
// bold font opens a product, marker fill alone opens a part, anything
// else with a name is a cost continuation of the open part.
func Classify(row SheetRow) RowKind {
	if row.Name == "" {
		return RowBlank
	}
	if row.Marker {
		if row.Bold {
			return RowProductHeader
		}
		return RowPartHeader
	}
	return RowContinuation
}

// PartDraft is a closed sub-component of a product: its payment is
// already computed and rounded to kopecks.
type PartDraft struct {
	Name    string
	Amount  decimal.Decimal
	Payment decimal.Decimal
}

// ProductDraft is one catalog entry produced by product closure, before
// the numbering pass. Range-expanded variants carry a provisional
// per-product index in Provisional; whole products leave it empty.
type ProductDraft struct {
	Name        string
	Amount      int64
	Price       int64 // wage per unit
	Parts       []PartDraft
	Provisional string
}

// EmittedProduct is a numbered catalog entry ready for persistence.
type EmittedProduct struct {
	Number string
	Name   string
	Amount int64
	Price  int64
	Parts  []PartDraft
}

// Outcome is the result of one import run: the object identifier plus
// the ordered product catalog.
type Outcome struct {
	ObjectNumber string
	Products     []EmittedProduct
}
