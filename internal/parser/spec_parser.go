package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Options configure one specification scan. Zero values fall back to
// the layout of the original workbooks.
type Options struct {
	SheetName   string
	StartRow    int
	MarkerColor string
	Blacklist   []string
}

func (o Options) withDefaults() Options {
	if o.SheetName == "" {
		o.SheetName = DefaultSheetName
	}
	if o.StartRow == 0 {
		o.StartRow = DefaultStartRow
	}
	if o.MarkerColor == "" {
		o.MarkerColor = DefaultMarkerColor
	}
	return o
}

// SpecParser scans a specification sheet top to bottom and derives the
// product catalog: one pass, all state local to the run.
type SpecParser struct {
	reader    *SheetReader
	blacklist *Blacklist
	startRow  int

	product productFinalizer
	drafts  []ProductDraft
	maxIdx  int // non-skipped product headers seen
}

// NewSpecParser creates a parser over an open workbook.
func NewSpecParser(file *excelize.File, opts Options) *SpecParser {
	opts = opts.withDefaults()
	return &SpecParser{
		reader:    NewSheetReader(file, opts.SheetName, opts.MarkerColor),
		blacklist: NewBlacklist(opts.Blacklist),
		startRow:  opts.StartRow,
	}
}

// Parse validates the sheet and runs the scan. Any error aborts the
// whole import: no partial catalog is ever returned.
func (p *SpecParser) Parse() ([]EmittedProduct, error) {
	if err := NewSheetValidator(p.reader, p.startRow).Validate(); err != nil {
		return nil, err
	}

	for idx := p.startRow; ; idx++ {
		row, err := p.reader.Row(idx)
		if err != nil {
			return nil, err
		}
		if Classify(row) == RowBlank {
			break
		}
		if err := p.processRow(row); err != nil {
			return nil, fmt.Errorf("row %d: %w", idx, err)
		}
	}

	// End of scan closes the last product exactly like a header
	// transition would.
	if err := p.closeProduct(); err != nil {
		return nil, err
	}

	return AssignNumbers(p.drafts, p.maxIdx), nil
}

// processRow advances the state machine by one classified row.
func (p *SpecParser) processRow(row SheetRow) error {
	switch Classify(row) {
	case RowProductHeader:
		if err := p.closeProduct(); err != nil {
			return err
		}
		if err := p.product.openProduct(row); err != nil {
			return err
		}
		if !p.product.skip {
			p.maxIdx++
		}

	case RowPartHeader:
		if p.product.skip {
			return nil
		}
		if err := p.product.closeOpenPart(); err != nil {
			return err
		}
		if p.blacklist.Matches(row.Name) {
			p.product.markBlacklisted()
			return nil
		}
		return p.product.openPart(row.Name, row.Amount)

	case RowContinuation:
		if p.product.skip {
			return nil
		}
		if p.blacklist.Matches(row.Name) {
			p.product.markBlacklisted()
			return nil
		}
		if cost, ok := parseDecimal(row.Cost); ok {
			p.product.accumulate(cost)
		}
	}
	return nil
}

// closeProduct closes the open product into the draft buffer.
func (p *SpecParser) closeProduct() error {
	drafts, err := p.product.closeProduct()
	if err != nil {
		return err
	}
	p.drafts = append(p.drafts, drafts...)
	return nil
}

// ObjectNumberFromFilename derives the object identifier from a source
// file name: its first whitespace-delimited token.
func ObjectNumberFromFilename(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
