package ingest

import (
	"fmt"

	"github.com/tally-dev/tally/internal/model"
)

// ValidationError describes a single batch invariant violation.
type ValidationError struct {
	Row         int
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Description)
}

var knownMethods = map[string]bool{
	"":          true,
	MethodChase: true,
	MethodAmex:  true,
	MethodVACU:  true,
}

// ValidateBatch checks the invariants every built batch must hold before
// it is offered for commit: the classification triple is populated
// together or not at all, the statement label is present, and the
// payment-method label is one of the known values.
func ValidateBatch(records []model.TransactionRecord) []ValidationError {
	var errs []ValidationError
	for i, r := range records {
		full := r.Vendor != "" && r.Category != "" && r.Tag != ""
		empty := r.Vendor == "" && r.Category == "" && r.Tag == ""
		if !full && !empty {
			errs = append(errs, ValidationError{
				Row:         i,
				Description: fmt.Sprintf("partial classification (%q, %q, %q)", r.Vendor, r.Category, r.Tag),
			})
		}

		if r.Statement == "" {
			errs = append(errs, ValidationError{Row: i, Description: "missing statement label"})
		}

		if !knownMethods[r.PaymentMethod] {
			errs = append(errs, ValidationError{
				Row:         i,
				Description: fmt.Sprintf("unknown payment method %q", r.PaymentMethod),
			})
		}
	}
	return errs
}
