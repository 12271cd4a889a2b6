package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/model"
)

func rec(date, amt, vendor, category, tag, method string) model.TransactionRecord {
	return model.TransactionRecord{
		Date:          date,
		Amount:        decimal.RequireFromString(amt),
		Vendor:        vendor,
		Category:      category,
		Tag:           tag,
		PaymentMethod: method,
	}
}

func sampleLedger() []model.TransactionRecord {
	return []model.TransactionRecord{
		rec("01/03/25", "-4.50", "Starbucks", "Dining", "coffee", "amex"),
		rec("01/10/25", "-6.00", "Starbucks", "Dining", "coffee", "chase"),
		rec("01/15/25", "-80.00", "Wegmans", "Groceries", "food", "chase"),
		rec("02/01/25", "-12.00", "Starbucks", "Dining", "coffee", "amex"),
		rec("01/20/25", "-30.00", "", "", "", "vacu"),
	}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(model.DateFormat, s)
	require.NoError(t, err)
	return d
}

func findLine(lines []Line, key string) (Line, bool) {
	for _, l := range lines {
		if l.Key == key {
			return l, true
		}
	}
	return Line{}, false
}

func TestSummarize_GroupsIndependently(t *testing.T) {
	sum := Summarize(sampleLedger(), Filter{})
	assert.Equal(t, 5, sum.Rows)

	coffee, ok := findLine(sum.ByTag, "coffee")
	require.True(t, ok)
	assert.Equal(t, "-22.50", coffee.Total.StringFixed(2))

	dining, ok := findLine(sum.ByCategory, "Dining")
	require.True(t, ok)
	assert.Equal(t, "-22.50", dining.Total.StringFixed(2))

	wegmans, ok := findLine(sum.ByVendor, "Wegmans")
	require.True(t, ok)
	assert.Equal(t, "-80.00", wegmans.Total.StringFixed(2))
}

func TestSummarize_UnclassifiedRowsLandOnEmptyKey(t *testing.T) {
	sum := Summarize(sampleLedger(), Filter{})

	unclassified, ok := findLine(sum.ByVendor, "")
	require.True(t, ok)
	assert.Equal(t, "-30.00", unclassified.Total.StringFixed(2))
}

func TestSummarize_DateRangeFilter(t *testing.T) {
	f := Filter{
		From: mustDate(t, "01/01/25"),
		To:   mustDate(t, "01/31/25"),
	}
	sum := Summarize(sampleLedger(), f)
	assert.Equal(t, 4, sum.Rows)

	coffee, ok := findLine(sum.ByTag, "coffee")
	require.True(t, ok)
	assert.Equal(t, "-10.50", coffee.Total.StringFixed(2))
}

func TestSummarize_MethodFilter(t *testing.T) {
	sum := Summarize(sampleLedger(), Filter{Methods: []string{"chase"}})
	assert.Equal(t, 2, sum.Rows)

	coffee, ok := findLine(sum.ByTag, "coffee")
	require.True(t, ok)
	assert.Equal(t, "-6.00", coffee.Total.StringFixed(2))
}

func TestSummarize_UnparsableDateExcludedWhenFiltering(t *testing.T) {
	records := append(sampleLedger(), rec("", "-99.00", "X", "Y", "z", ""))

	// Without a date filter the dateless row is included.
	assert.Equal(t, 6, Summarize(records, Filter{}).Rows)

	// With one, it cannot be placed in the range and is excluded.
	f := Filter{From: mustDate(t, "01/01/25")}
	assert.Equal(t, 5, Summarize(records, f).Rows)
}

func TestSummarize_LinesSortedByKey(t *testing.T) {
	sum := Summarize(sampleLedger(), Filter{})
	for i := 1; i < len(sum.ByVendor); i++ {
		assert.Less(t, sum.ByVendor[i-1].Key, sum.ByVendor[i].Key)
	}
}
