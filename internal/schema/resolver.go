// Package schema maps the arbitrary column names of a statement export
// onto the canonical field set the pipeline works with.
package schema

// Field is a canonical column the pipeline understands.
type Field string

const (
	FieldDate        Field = "Date"
	FieldAmount      Field = "Amount"
	FieldDescription Field = "Description"
	FieldDebit       Field = "Debit"
	FieldCredit      Field = "Credit"
)

// alternatives lists accepted source column names per canonical field,
// tried in order after an exact-name match fails.
var alternatives = map[Field][]string{
	FieldDate:        {"Post Date", "Transaction Date", "TRANSACTION DATE", "DATE"},
	FieldAmount:      {"AMOUNT", "TRANSACTION AMOUNT", "Transaction Amount"},
	FieldDescription: {"DESCRIPTION", "Transaction Description", "Details", "DETAILS"},
	FieldDebit:       {"DEBIT", "Debit Amount", "DR"},
	FieldCredit:      {"CREDIT", "Credit Amount", "CR"},
}

// vacuSignature identifies VACU checking exports. All eight columns must be
// present for the format to be recognized.
var vacuSignature = []string{
	"Account Number", "Post Date", "Check", "Description",
	"Debit", "Credit", "Status", "Balance",
}

// ColumnResolver is the collaborator consulted when a field cannot be
// resolved from the alternative-name table. It returns the index of the
// column to use, or ok=false to skip the field entirely.
type ColumnResolver interface {
	ResolveColumn(field string, available []string) (index int, ok bool)
}

// Mapping records where each canonical field was found in the source
// columns. A field that resolved to no column is absent from the map.
type Mapping struct {
	columns map[Field]int
	skipped []Field
}

// Index returns the source column index for a field.
func (m Mapping) Index(f Field) (int, bool) {
	i, ok := m.columns[f]
	return i, ok
}

// Skipped lists fields the collaborator declined to resolve.
func (m Mapping) Skipped() []Field {
	return m.skipped
}

// Lookup finds a field by exact name first, then by its alternatives.
// It does not consult the collaborator.
func Lookup(field Field, columns []string) (int, bool) {
	for i, c := range columns {
		if c == string(field) {
			return i, true
		}
	}
	for _, alt := range alternatives[field] {
		for i, c := range columns {
			if c == alt {
				return i, true
			}
		}
	}
	return 0, false
}

// Resolve maps each requested field onto the available columns. Resolution
// per field: exact name, then the alternative-name table, then the external
// collaborator. A skip never fails the file; the field is recorded as
// skipped and the caller synthesizes an empty column for it.
func Resolve(fields []Field, columns []string, r ColumnResolver) Mapping {
	m := Mapping{columns: make(map[Field]int)}
	for _, f := range fields {
		if i, ok := Lookup(f, columns); ok {
			m.columns[f] = i
			continue
		}
		if r != nil {
			if i, ok := r.ResolveColumn(string(f), columns); ok && i >= 0 && i < len(columns) {
				m.columns[f] = i
				continue
			}
		}
		m.skipped = append(m.skipped, f)
	}
	return m
}

// IsVACU reports whether columns carry the full VACU export signature.
func IsVACU(columns []string) bool {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	for _, want := range vacuSignature {
		if !present[want] {
			return false
		}
	}
	return true
}
