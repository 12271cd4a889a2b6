// Package amount derives a single signed amount column from the messy
// numeric representations found in statement exports.
package amount

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Coerce parses raw cell text into a decimal amount. Currency symbols and
// thousands separators are stripped and accounting-style parentheses mean
// negative. Blank cells coerce to zero without counting as a failure;
// anything else unparseable coerces to zero with ok=false so callers can
// report a per-row warning count.
func Coerce(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, true
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if neg {
		d = d.Neg()
	}
	return d, true
}

// FromColumn coerces a direct amount column. The second result is the
// number of rows whose value could not be parsed (each became zero).
func FromColumn(values []string) ([]decimal.Decimal, int) {
	amounts := make([]decimal.Decimal, len(values))
	failures := 0
	for i, v := range values {
		d, ok := Coerce(v)
		if !ok {
			failures++
		}
		amounts[i] = d
	}
	return amounts, failures
}

// FromDebitCredit merges a debit/credit column pair into signed amounts,
// debit − credit, so debits (charges) come out positive. Missing or
// unparseable cells coerce to zero; the failure count covers both columns.
func FromDebitCredit(debit, credit []string) ([]decimal.Decimal, int) {
	n := len(debit)
	if len(credit) > n {
		n = len(credit)
	}

	amounts := make([]decimal.Decimal, n)
	failures := 0
	for i := 0; i < n; i++ {
		var d, c decimal.Decimal
		if i < len(debit) {
			var ok bool
			if d, ok = Coerce(debit[i]); !ok {
				failures++
			}
		}
		if i < len(credit) {
			var ok bool
			if c, ok = Coerce(credit[i]); !ok {
				failures++
			}
		}
		amounts[i] = d.Sub(c)
	}
	return amounts, failures
}

// Zeros returns an all-zero amount column for when no amount source
// resolved at all.
func Zeros(n int) []decimal.Decimal {
	amounts := make([]decimal.Decimal, n)
	for i := range amounts {
		amounts[i] = decimal.Zero
	}
	return amounts
}

// SignCounts tallies strictly negative and strictly positive amounts.
// Zeros count as neither.
func SignCounts(amounts []decimal.Decimal) (neg, pos int) {
	for _, a := range amounts {
		switch {
		case a.IsNegative():
			neg++
		case a.IsPositive():
			pos++
		}
	}
	return neg, pos
}

// FlipAll negates every amount in place. The flip decision is batch-level
// and all-or-nothing: positives are negated along with negatives.
func FlipAll(amounts []decimal.Decimal) {
	for i := range amounts {
		amounts[i] = amounts[i].Neg()
	}
}
