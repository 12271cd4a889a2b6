// Package runlog keeps an audit trail of ingestion runs as a CSV file
// under logs/.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Entry is one row in the ingest log.
type Entry struct {
	Timestamp     time.Time
	File          string
	Records       int
	Statement     string
	PaymentMethod string
	Warnings      int
	Committed     bool
}

// Header is the CSV header for ingest-log.csv.
const Header = "timestamp,file,records,statement,payment_method,warnings,committed"

const (
	numFields    = 7
	logDir       = "logs"
	logFile      = "logs/ingest-log.csv"
	colTimestamp = 0
	colFile      = 1
	colRecords   = 2
	colStatement = 3
	colMethod    = 4
	colWarnings  = 5
	colCommitted = 6
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colFile] = e.File
	row[colRecords] = strconv.Itoa(e.Records)
	row[colStatement] = e.Statement
	row[colMethod] = e.PaymentMethod
	row[colWarnings] = strconv.Itoa(e.Warnings)
	row[colCommitted] = strconv.FormatBool(e.Committed)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	records, err := strconv.Atoi(record[colRecords])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing records %q: %w", record[colRecords], err)
	}

	warnings, err := strconv.Atoi(record[colWarnings])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing warnings %q: %w", record[colWarnings], err)
	}

	committed, err := strconv.ParseBool(record[colCommitted])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing committed %q: %w", record[colCommitted], err)
	}

	return Entry{
		Timestamp:     ts,
		File:          record[colFile],
		Records:       records,
		Statement:     record[colStatement],
		PaymentMethod: record[colMethod],
		Warnings:      warnings,
		Committed:     committed,
	}, nil
}

// Append writes entries to <root>/logs/ingest-log.csv, creating the file
// and header if needed.
func Append(root string, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(root, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening ingest log: %w", err)
	}
	defer f.Close()

	if needsHeader {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	cw := csv.NewWriter(f)
	for _, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing ingest log row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadAll reads every entry from <root>/logs/ingest-log.csv.
func ReadAll(root string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(root, logFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ingest log: %w", err)
	}
	defer f.Close()

	return read(f)
}

func read(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ingest log: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
