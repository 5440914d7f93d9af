package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// List and range separators inside a product label. A label may combine
// both: "А1 - А3, Б7" is a range followed by a literal variant.
const (
	listSeparator  = ", "
	rangeSeparator = " - "
)

// rangePrefixAlphabet holds every rune that may belong to the shared
// alphabetic prefix of a serial range. The numeric remainder starts at
// the first rune outside this set.
const rangePrefixAlphabet = `абвгдеёжзийклмнопрстуфхцчшщъыьэюяabcdefghijklmnopqrstuvwxyz!@#$%^&*()-=_+"№;:?`

// ExpandProduct turns a product label into its catalog drafts.
//
// A plain label yields a single draft with the declared amount. A label
// with list or range separators yields one single-unit draft per
// variant: list segments verbatim, range segments stepped from start to
// end with a step of 10^-d where d is the number of decimal places in
// the range's end value. Every draft shares the same parts snapshot.
func ExpandProduct(name string, amount, pay int64, parts []PartDraft) ([]ProductDraft, error) {
	if !strings.Contains(name, listSeparator) && !strings.Contains(name, rangeSeparator) {
		return []ProductDraft{{
			Name:   name,
			Amount: amount,
			Price:  pay,
			Parts:  parts,
		}}, nil
	}

	// Variant indexes are padded to the digit width of the declared
	// amount; the numbering pass later re-pads the group index.
	width := len(strconv.FormatInt(amount, 10))

	var drafts []ProductDraft
	idx := 1
	for _, segment := range strings.Split(name, listSeparator) {
		if !strings.Contains(segment, rangeSeparator) {
			drafts = append(drafts, ProductDraft{
				Name:        segment,
				Amount:      1,
				Price:       pay,
				Parts:       parts,
				Provisional: zeroPad(idx, width),
			})
			idx++
			continue
		}

		values, prefix, places, err := expandRange(segment)
		if err != nil {
			return nil, err
		}
		for _, v := range values {
			drafts = append(drafts, ProductDraft{
				Name:        prefix + formatRangeValue(v, places),
				Amount:      1,
				Price:       pay,
				Parts:       parts,
				Provisional: zeroPad(idx, width),
			})
			idx++
		}
	}

	return drafts, nil
}

// expandRange parses one "start - end" segment and enumerates its
// values. The shared prefix is the leading run of alphabet runes of the
// start value; it is stripped from both bounds before parsing.
func expandRange(segment string) (values []decimal.Decimal, prefix string, places int, err error) {
	bounds := strings.SplitN(segment, rangeSeparator, 2)
	start := bounds[0]
	end := bounds[1]

	prefix = rangePrefix(start)
	startNum := strings.TrimPrefix(start, prefix)
	endNum := strings.Replace(end, prefix, "", 1)

	if dot := strings.IndexByte(endNum, '.'); dot >= 0 {
		places = len(endNum) - dot - 1
	}

	from, err := decimal.NewFromString(startNum)
	if err != nil {
		return nil, "", 0, fmt.Errorf("%w: %q: bad range start %q", ErrMalformedRange, segment, startNum)
	}
	to, err := decimal.NewFromString(endNum)
	if err != nil {
		return nil, "", 0, fmt.Errorf("%w: %q: bad range end %q", ErrMalformedRange, segment, endNum)
	}
	if to.LessThan(from) {
		return nil, "", 0, fmt.Errorf("%w: %q: end is below start", ErrMalformedRange, segment)
	}

	step := decimal.New(1, int32(-places))
	for v := from; v.LessThanOrEqual(to); v = v.Add(step) {
		values = append(values, v)
	}

	return values, prefix, places, nil
}

// rangePrefix returns the leading alphabetic run of a range bound.
func rangePrefix(s string) string {
	for i, r := range s {
		if !strings.ContainsRune(rangePrefixAlphabet, unicode.ToLower(r)) {
			return s[:i]
		}
	}
	return s
}

// formatRangeValue renders a stepped value with the range's decimal
// width, so "Б1.0 - Б1.2" enumerates Б1.0, Б1.1, Б1.2.
func formatRangeValue(v decimal.Decimal, places int) string {
	if places == 0 {
		return v.String()
	}
	return v.StringFixed(int32(places))
}

// zeroPad left-pads n with zeros to the given width.
func zeroPad(n, width int) string {
	s := strconv.Itoa(n)
	for len(s) < width {
		s = "0" + s
	}
	return s
}
