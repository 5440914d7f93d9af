package parser

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var decimalOne = decimal.NewFromInt(1)

// partAccumulator tracks the currently open part: its label, declared
// amount and the cost accumulated from continuation rows.
type partAccumulator struct {
	name   string
	amount decimal.Decimal
	cost   decimal.Decimal
	opened bool
}

// openPart starts a new part. An empty amount cell defaults to 1.
func (p *partAccumulator) openPart(name, amountCell string) {
	amount, ok := parseDecimal(amountCell)
	if !ok {
		amount = decimalOne
	}
	p.name = name
	p.amount = amount
	p.cost = decimal.Decimal{}
	p.opened = true
}

// accumulate adds one continuation row's cost to the running total.
func (p *partAccumulator) accumulate(cost decimal.Decimal) {
	p.cost = p.cost.Add(cost)
}

// closePart computes the part's wage share and resets the accumulator:
//
//	payment = round_half_up(((cost / amount) / unitPrice) * wagePerUnit, 2)
//
// A zero unit price or declared amount is an error, not a silent zero.
func (p *partAccumulator) closePart(unitPrice decimal.Decimal, wagePerUnit int64) (PartDraft, error) {
	if p.amount.IsZero() {
		return PartDraft{}, fmt.Errorf("%w: part %q has zero declared amount", ErrDivisionByZero, p.name)
	}
	if unitPrice.IsZero() {
		return PartDraft{}, fmt.Errorf("%w: product unit price is zero closing part %q", ErrDivisionByZero, p.name)
	}

	payment := p.cost.
		Div(p.amount).
		Div(unitPrice).
		Mul(decimal.NewFromInt(wagePerUnit)).
		Round(2)

	draft := PartDraft{Name: p.name, Amount: p.amount, Payment: payment}
	p.opened = false
	return draft, nil
}

// productFinalizer tracks the currently open product: its declared
// figures, the skip and blacklist flags, the closed parts collected so
// far and the open part accumulator it owns.
type productFinalizer struct {
	name        string
	amount      int64
	unitPrice   decimal.Decimal
	wagePerUnit int64
	skip        bool
	blacklisted bool
	parts       []PartDraft
	part        partAccumulator
	opened      bool
}

// openProduct starts a new product from a header row. A non-positive
// (or missing) wage numerator flags the product as skipped: it was not
// priced yet and none of its rows take part in the import.
func (f *productFinalizer) openProduct(row SheetRow) error {
	f.name = row.Name
	f.parts = nil
	f.part = partAccumulator{}
	f.blacklisted = false
	f.opened = true

	wage, ok := parseDecimal(row.Wage)
	if !ok || !wage.IsPositive() {
		f.skip = true
		return nil
	}
	f.skip = false

	amount, ok := parseDecimal(row.Amount)
	if !ok {
		amount = decimalOne
	}
	if amount.IsZero() {
		return fmt.Errorf("%w: product %q has zero declared amount", ErrDivisionByZero, row.Name)
	}

	price, _ := parseDecimal(row.Cost)

	f.amount = amount.IntPart()
	f.unitPrice = price
	f.wagePerUnit = wage.Div(amount).Floor().IntPart()
	return nil
}

// markBlacklisted records that one of the product's rows matched the
// blacklist. The caller only flags non-skipped products.
func (f *productFinalizer) markBlacklisted() {
	f.blacklisted = true
}

// partOpen reports whether a part is currently accumulating.
func (f *productFinalizer) partOpen() bool {
	return f.part.opened
}

// openPart closes any open part and starts the next one.
func (f *productFinalizer) openPart(name, amountCell string) error {
	if err := f.closeOpenPart(); err != nil {
		return err
	}
	f.part.openPart(name, amountCell)
	return nil
}

// accumulate adds a continuation cost to the open part. Rows arriving
// while no part is open contribute nothing.
func (f *productFinalizer) accumulate(cost decimal.Decimal) {
	if f.part.opened {
		f.part.accumulate(cost)
	}
}

// closeOpenPart closes the open part, if any, into the parts list.
func (f *productFinalizer) closeOpenPart() error {
	if !f.part.opened {
		return nil
	}
	draft, err := f.part.closePart(f.unitPrice, f.wagePerUnit)
	if err != nil {
		return err
	}
	f.parts = append(f.parts, draft)
	return nil
}

// closeProduct finalizes the open product and returns its drafts.
//
// Skipped products contribute nothing and their rows are discarded. If
// any row matched the blacklist the parts snapshot is emptied — after
// the final open part was closed into it, so validly accumulated rows
// are erased retroactively. That matches the behavior this importer
// replaces; see DESIGN.md before changing it.
func (f *productFinalizer) closeProduct() ([]ProductDraft, error) {
	if !f.opened {
		return nil, nil
	}
	defer func() { *f = productFinalizer{} }()

	if f.skip {
		return nil, nil
	}

	if err := f.closeOpenPart(); err != nil {
		return nil, err
	}

	parts := f.parts
	if f.blacklisted {
		parts = nil
	}

	return ExpandProduct(f.name, f.amount, f.wagePerUnit, parts)
}
