// Package report is the read side of the ledger: date-range and
// payment-method filtering with amount totals grouped by tag, category,
// and vendor.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// Filter narrows the ledger rows included in a summary. Zero From/To mean
// unbounded; an empty Methods set includes every payment method.
type Filter struct {
	From    time.Time
	To      time.Time
	Methods []string
}

func (f Filter) includes(r model.TransactionRecord) bool {
	if !f.From.IsZero() || !f.To.IsZero() {
		d, err := time.Parse(model.DateFormat, r.Date)
		if err != nil {
			return false
		}
		if !f.From.IsZero() && d.Before(f.From) {
			return false
		}
		if !f.To.IsZero() && d.After(f.To) {
			return false
		}
	}

	if len(f.Methods) == 0 {
		return true
	}
	for _, m := range f.Methods {
		if r.PaymentMethod == m {
			return true
		}
	}
	return false
}

// Line is one group's amount total.
type Line struct {
	Key   string
	Total decimal.Decimal
}

// Summary holds the independent groupings over the filtered rows.
type Summary struct {
	Rows       int
	ByTag      []Line
	ByCategory []Line
	ByVendor   []Line
}

// Summarize filters records and totals their amounts by tag, category,
// and vendor independently. Lines are sorted by key for stable output;
// unclassified rows land on the empty key.
func Summarize(records []model.TransactionRecord, f Filter) *Summary {
	sum := &Summary{}
	byTag := make(map[string]decimal.Decimal)
	byCategory := make(map[string]decimal.Decimal)
	byVendor := make(map[string]decimal.Decimal)

	for _, r := range records {
		if !f.includes(r) {
			continue
		}
		sum.Rows++
		byTag[r.Tag] = byTag[r.Tag].Add(r.Amount)
		byCategory[r.Category] = byCategory[r.Category].Add(r.Amount)
		byVendor[r.Vendor] = byVendor[r.Vendor].Add(r.Amount)
	}

	sum.ByTag = lines(byTag)
	sum.ByCategory = lines(byCategory)
	sum.ByVendor = lines(byVendor)
	return sum
}

func lines(totals map[string]decimal.Decimal) []Line {
	out := make([]Line, 0, len(totals))
	for k, v := range totals {
		out = append(out, Line{Key: k, Total: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
