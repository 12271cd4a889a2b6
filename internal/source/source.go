// Package source reads statement exports of several formats into a common
// tabular intermediate consumed by the rest of the pipeline.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Table is the format-independent view of one statement export: the
// detected header columns, the data rows under them, and enough raw
// material (header cell, full text) for the statement-label and
// payment-method heuristics that look outside the tabular region.
type Table struct {
	Path    string
	Columns []string
	Rows    [][]string

	// HeaderCell is the raw statement-label cell of a spreadsheet export,
	// read without any header offset. Empty for delimited files.
	HeaderCell string

	// RawText is the entire file content as text, across all sheets for
	// spreadsheets. Content-scan heuristics search it for markers that may
	// sit outside the detected data table.
	RawText string
}

// Column returns the values of one column across all rows. Rows shorter
// than the index contribute an empty string.
func (t *Table) Column(i int) []string {
	out := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		if i >= 0 && i < len(row) {
			out[r] = row[i]
		}
	}
	return out
}

// Options control how a source file is read.
type Options struct {
	// HeaderRow is the 0-based row index of the data table header in a
	// spreadsheet export.
	HeaderRow int
	// StatementCell is the spreadsheet cell holding the statement label,
	// e.g. "B1".
	StatementCell string
}

// DefaultOptions match the statement exports this tool was built around:
// the data table header on row 6 (0-based) and the statement label in B1.
func DefaultOptions() Options {
	return Options{HeaderRow: 6, StatementCell: "B1"}
}

// Read loads a statement export, dispatching on file extension.
func Read(path string, opts Options) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(path)
	case ".xlsx", ".xls":
		return ReadWorkbook(path, opts)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

// FileInfo describes a statement file found in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

const processedDir = "processed"

// Scan returns the statement exports (CSV and spreadsheet) in dir.
func Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".csv", ".xlsx", ".xls":
		default:
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves an ingested file from dir to dir/processed/.
func MarkProcessed(dir, fileName string) error {
	dstDir := filepath.Join(dir, processedDir)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}
	if err := os.Rename(filepath.Join(dir, fileName), filepath.Join(dstDir, fileName)); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
