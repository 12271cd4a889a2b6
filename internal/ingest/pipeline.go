// Package ingest turns raw statement exports into canonical ledger
// records: schema resolution, amount normalization, classification,
// record assembly, and the all-or-nothing ledger commit.
package ingest

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/amount"
	"github.com/tally-dev/tally/internal/classify"
	"github.com/tally-dev/tally/internal/ledger"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/schema"
	"github.com/tally-dev/tally/internal/source"
)

// Prompter answers the three decisions the pipeline cannot make on its
// own. Interactive callers wire it to the terminal; tests and headless
// runs supply canned answers.
type Prompter interface {
	// ResolveColumn picks the source column to use for an unresolved
	// canonical field, or ok=false to skip the field.
	ResolveColumn(field string, available []string) (index int, ok bool)
	// ConfirmSignFlip decides whether to negate every amount in a batch
	// where strictly negative values outnumber strictly positive ones.
	ConfirmSignFlip(negCount, posCount int) bool
	// ConfirmCommit approves appending the built batch to the ledger.
	ConfirmCommit(preview []model.TransactionRecord) bool
}

// Warnings counts the degraded-but-recoverable conditions encountered
// while building a batch. They are reported, never silently dropped.
type Warnings struct {
	DateParseFailures int
	CoercionFailures  int
	AmountDefaulted   bool
	SkippedFields     []string
}

// Total returns the number of warning conditions for run reporting.
func (w Warnings) Total() int {
	n := w.DateParseFailures + w.CoercionFailures + len(w.SkippedFields)
	if w.AmountDefaulted {
		n++
	}
	return n
}

// Result reports one file's ingestion outcome.
type Result struct {
	File          string
	Records       []model.TransactionRecord
	Statement     string
	PaymentMethod string
	Flipped       bool
	Committed     bool
	Warnings      Warnings
}

// Service runs the ingestion pipeline against a ledger store.
type Service struct {
	classifier *classify.Classifier
	store      *ledger.Store
	opts       source.Options
	log        zerolog.Logger
}

// NewService creates an ingestion Service.
func NewService(classifier *classify.Classifier, store *ledger.Store, opts source.Options, log zerolog.Logger) *Service {
	return &Service{classifier: classifier, store: store, opts: opts, log: log}
}

// IngestFile resolves, normalizes, classifies, and builds one statement
// export, then commits it to the ledger if the prompter approves. Any
// error is fatal for this file only; a declined or failed commit leaves
// the ledger untouched.
func (s *Service) IngestFile(path string, p Prompter) (*Result, error) {
	t, err := source.Read(path, s.opts)
	if err != nil {
		return nil, err
	}
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("%s: no header row found", path)
	}

	res := &Result{File: path}
	isVACU := schema.IsVACU(t.Columns)

	// Schema resolution for date and description; the prompter resolves
	// what the alternative-name tables cannot. Skipped fields degrade to
	// synthesized empty columns.
	mapping := schema.Resolve([]schema.Field{schema.FieldDate, schema.FieldDescription}, t.Columns, p)
	for _, f := range mapping.Skipped() {
		res.Warnings.SkippedFields = append(res.Warnings.SkippedFields, string(f))
		s.log.Warn().Str("file", path).Str("field", string(f)).Msg("column skipped, synthesizing empty values")
	}

	amounts := s.resolveAmounts(t, p, res)

	// Sign-flip heuristic: batch-level and all-or-nothing.
	neg, pos := amount.SignCounts(amounts)
	if neg > pos && p.ConfirmSignFlip(neg, pos) {
		amount.FlipAll(amounts)
		res.Flipped = true
	}

	rawDates := make([]string, len(t.Rows))
	if i, ok := mapping.Index(schema.FieldDate); ok {
		rawDates = t.Column(i)
	}
	dates, dateFailures := parseDates(rawDates)
	res.Warnings.DateParseFailures = dateFailures
	if dateFailures > 0 {
		s.log.Warn().Str("file", path).Int("rows", dateFailures).Msg("dates could not be parsed")
	}

	descCol := -1
	if i, ok := mapping.Index(schema.FieldDescription); ok {
		descCol = i
	}
	descriptions := composeDescriptions(t, descCol)

	res.Statement = statementLabel(dates, t.HeaderCell, path)
	res.PaymentMethod = paymentMethod(path, t.RawText, isVACU)

	res.Records = make([]model.TransactionRecord, len(t.Rows))
	for i := range t.Rows {
		res.Records[i] = model.TransactionRecord{
			Date:          formatDate(dates[i]),
			Amount:        amounts[i],
			Description:   descriptions[i],
			Statement:     res.Statement,
			PaymentMethod: res.PaymentMethod,
		}
	}
	s.classifier.Annotate(res.Records)

	if verrs := ValidateBatch(res.Records); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return nil, fmt.Errorf("%s: batch validation failed: %s", path, strings.Join(msgs, "; "))
	}

	if !p.ConfirmCommit(res.Records) {
		s.log.Info().Str("file", path).Msg("commit declined, ledger unchanged")
		return res, nil
	}

	if err := s.store.Append(res.Records); err != nil {
		return nil, err
	}
	res.Committed = true
	return res, nil
}

// resolveAmounts produces the signed amount column: a direct amount
// column if one resolves, else a debit/credit pair, else a
// prompter-chosen column, else all zeros.
func (s *Service) resolveAmounts(t *source.Table, p Prompter, res *Result) []decimal.Decimal {
	if i, ok := schema.Lookup(schema.FieldAmount, t.Columns); ok {
		amounts, failures := amount.FromColumn(t.Column(i))
		s.noteCoercionFailures(t.Path, failures, res)
		return amounts
	}

	di, dok := schema.Lookup(schema.FieldDebit, t.Columns)
	ci, cok := schema.Lookup(schema.FieldCredit, t.Columns)
	if dok && cok {
		amounts, failures := amount.FromDebitCredit(t.Column(di), t.Column(ci))
		s.noteCoercionFailures(t.Path, failures, res)
		return amounts
	}

	if i, ok := p.ResolveColumn(string(schema.FieldAmount), t.Columns); ok && i >= 0 && i < len(t.Columns) {
		amounts, failures := amount.FromColumn(t.Column(i))
		s.noteCoercionFailures(t.Path, failures, res)
		return amounts
	}

	res.Warnings.AmountDefaulted = true
	s.log.Warn().Str("file", t.Path).Msg("no amount source resolved, defaulting amounts to zero")
	return amount.Zeros(len(t.Rows))
}

func (s *Service) noteCoercionFailures(path string, failures int, res *Result) {
	res.Warnings.CoercionFailures = failures
	if failures > 0 {
		s.log.Warn().Str("file", path).Int("rows", failures).Msg("amounts could not be parsed, coerced to zero")
	}
}

// IngestAll ingests several files in sequence. A failure aborts only that
// file; the error is collected and the run continues.
func (s *Service) IngestAll(paths []string, p Prompter) ([]*Result, []error) {
	var results []*Result
	var errs []error
	for _, path := range paths {
		res, err := s.IngestFile(path, p)
		if err != nil {
			s.log.Error().Str("file", path).Err(err).Msg("ingestion failed")
			errs = append(errs, err)
			continue
		}
		results = append(results, res)
	}
	return results, errs
}
