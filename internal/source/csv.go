package source

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ReadCSV reads a delimited statement export. Files that fail to parse as
// UTF-8 are retried once decoded as Latin-1 before the error is surfaced;
// a failure here is fatal for this file only, never for a whole batch.
func ReadCSV(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	text, records, err := parseCSV(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	t := &Table{Path: path, RawText: text}
	if len(records) == 0 {
		return t, nil
	}

	t.Columns = records[0]
	if len(t.Columns) > 0 {
		t.Columns[0] = strings.TrimPrefix(t.Columns[0], "\ufeff")
	}
	for _, rec := range records[1:] {
		row := make([]string, len(t.Columns))
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func parseCSV(data []byte) (string, [][]string, error) {
	text := string(data)
	records, err := decodeRecords(text)
	if err == nil && utf8.Valid(data) {
		return text, records, nil
	}

	// Encoding fallback: many bank exports are Latin-1, not UTF-8.
	decoded, decErr := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if decErr != nil {
		if err != nil {
			return "", nil, err
		}
		return "", nil, decErr
	}
	text = string(decoded)
	records, err = decodeRecords(text)
	if err != nil {
		return "", nil, err
	}
	return text, records, nil
}

func decodeRecords(text string) ([][]string, error) {
	cr := csv.NewReader(bytes.NewReader([]byte(text)))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr.ReadAll()
}
