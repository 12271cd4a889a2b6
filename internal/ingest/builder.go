package ingest

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/source"
)

// dateLayouts are tried in order when parsing source dates. Bank exports
// disagree on almost everything here.
var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"1/2/06",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006 15:04:05",
	"2006/01/02",
	"02-Jan-2006",
	"Jan 2, 2006",
}

// parseDate parses one raw date cell. The zero time is the sentinel for an
// unparsable date.
func parseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseDates parses a raw date column. Failures become the zero time and
// are counted; the rows are retained either way.
func parseDates(raw []string) ([]time.Time, int) {
	parsed := make([]time.Time, len(raw))
	failures := 0
	for i, r := range raw {
		t, ok := parseDate(r)
		if !ok {
			failures++
		}
		parsed[i] = t
	}
	return parsed, failures
}

// formatDate renders a parsed date in the ledger's fixed format. The
// sentinel zero time renders as an empty string.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(model.DateFormat)
}

// statementLabel derives the human-readable label for the source document.
// A date range is preferred once any row's date parsed; otherwise the
// label falls back to the trailing 28 characters of the spreadsheet's
// header cell, then to the filename without extension.
func statementLabel(dates []time.Time, headerCell, path string) string {
	var min, max time.Time
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		if min.IsZero() || d.Before(min) {
			min = d
		}
		if max.IsZero() || d.After(max) {
			max = d
		}
	}
	if !min.IsZero() {
		return max.Format(model.DateFormat) + " to " + min.Format(model.DateFormat)
	}

	if cell := []rune(strings.TrimSpace(headerCell)); len(cell) >= statementSuffixLen {
		return string(cell[len(cell)-statementSuffixLen:])
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if r := []rune(stem); len(r) > statementSuffixLen {
		stem = string(r[len(r)-statementSuffixLen:])
	}
	return stem
}

// statementSuffixLen is the fixed length of a header-cell derived label.
const statementSuffixLen = 28

// secondaryDescriptionColumns are appended to the primary description when
// the source carries them, in this order.
var secondaryDescriptionColumns = []string{
	"Appears On Your Statement As",
	"Category",
	"CATEGORY",
	"Type",
	"TYPE",
	"Transaction Type",
}

// composeDescriptions builds the per-row description text: the primary
// description plus any recognized secondary text columns, each trimmed,
// joined with ", ". Empty parts are dropped.
func composeDescriptions(t *source.Table, primaryCol int) []string {
	secondary := make([]int, 0, 2)
	for _, name := range secondaryDescriptionColumns {
		for i, c := range t.Columns {
			if c == name && i != primaryCol {
				secondary = append(secondary, i)
				break
			}
		}
	}

	out := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		var parts []string
		if primaryCol >= 0 && primaryCol < len(row) {
			if p := strings.TrimSpace(row[primaryCol]); p != "" {
				parts = append(parts, p)
			}
		}
		for _, i := range secondary {
			if i < len(row) {
				if p := strings.TrimSpace(row[i]); p != "" {
					parts = append(parts, p)
				}
			}
		}
		out[r] = strings.Join(parts, ", ")
	}
	return out
}

// Payment method labels.
const (
	MethodChase = "chase"
	MethodAmex  = "amex"
	MethodVACU  = "vacu"
)

// platinumMarker is the content marker identifying an Amex Platinum
// statement. It may appear anywhere in the file, including outside the
// detected data table.
const platinumMarker = "Platinum Card"

// paymentMethod derives the payment-method label. Precedence, in the order
// the checks run: a filename containing "chase" labels the file chase; the
// platinum content marker then overwrites that to amex; a recognized VACU
// column signature overrides everything.
func paymentMethod(path, rawText string, isVACU bool) string {
	method := ""
	if strings.Contains(strings.ToLower(filepath.Base(path)), MethodChase) {
		method = MethodChase
	}
	if strings.Contains(rawText, platinumMarker) {
		method = MethodAmex
	}
	if isVACU {
		method = MethodVACU
	}
	return method
}
