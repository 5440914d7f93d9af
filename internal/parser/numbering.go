package parser

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// AssignNumbers runs the numbering pass over the full draft list in
// emission order. maxIdx is the count of non-skipped product headers and
// fixes the zero-padded width of every group index.
//
// Whole products each take the next group index. Range-expanded variants
// keep their provisional number as a suffix and share one group index
// for as long as the provisional numbers do not decrease; a decrease
// means variant numbering restarted for the next product, which advances
// the group.
func AssignNumbers(drafts []ProductDraft, maxIdx int) []EmittedProduct {
	width := len(strconv.Itoa(maxIdx))

	products := make([]EmittedProduct, 0, len(drafts))
	idx := 1
	last := decimal.Decimal{}

	for _, draft := range drafts {
		var number string
		if draft.Provisional == "" {
			if !last.IsZero() {
				idx++
				last = decimal.Decimal{}
			}
			number = zeroPad(idx, width)
			idx++
		} else {
			prov, err := decimal.NewFromString(draft.Provisional)
			if err != nil {
				prov = decimal.Decimal{}
			}
			if last.GreaterThan(prov) {
				idx++
			}
			last = prov
			number = zeroPad(idx, width) + "-" + draft.Provisional
		}

		products = append(products, EmittedProduct{
			Number: number,
			Name:   draft.Name,
			Amount: draft.Amount,
			Price:  draft.Price,
			Parts:  draft.Parts,
		})
	}

	return products
}
