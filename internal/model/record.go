package model

import (
	"github.com/shopspring/decimal"
)

// DateFormat is the textual date layout used throughout the ledger.
const DateFormat = "01/02/06"

// TransactionRecord is one canonical ledger row. Every statement export,
// whatever its source schema, is normalized into this shape before it is
// appended to the ledger. Date is kept textual because unparsable source
// dates are retained as an empty sentinel rather than dropped.
type TransactionRecord struct {
	Date          string          `csv:"Date"`
	Amount        decimal.Decimal `csv:"Amount"`
	Description   string          `csv:"description"`
	Statement     string          `csv:"statement"`
	Vendor        string          `csv:"vendor"`
	Category      string          `csv:"category"`
	Tag           string          `csv:"tag"`
	PaymentMethod string          `csv:"payment method"`
}

// Classified reports whether the record carries a classification triple.
// Vendor, category, and tag are populated together or not at all.
func (r TransactionRecord) Classified() bool {
	return r.Vendor != "" || r.Category != "" || r.Tag != ""
}
