// Package ledger persists the cumulative transaction store as a flat CSV
// file.
package ledger

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/tally-dev/tally/internal/model"
)

// ErrStoreWrite wraps any failure to rewrite the ledger. When it is
// returned the on-disk ledger is unchanged.
var ErrStoreWrite = errors.New("ledger store write failed")

// Store reads and appends ledger records at a fixed path. The ledger is
// append-only across runs: every Append rewrites the full file with old
// rows first and new rows after. There is no identity column and no
// duplicate detection; ingesting the same statement twice duplicates its
// rows.
type Store struct {
	path string
}

// NewStore creates a Store for the ledger file at path. The file need not
// exist yet; the first Append creates it.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the ledger file path.
func (s *Store) Path() string { return s.path }

// Load reads all ledger records. A missing ledger is an empty ledger.
func (s *Store) Load() ([]model.TransactionRecord, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", s.path, err)
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", s.path, err)
	}
	return records, nil
}

// Append adds records after the existing ledger rows and rewrites the
// store. The rewrite goes to a temporary file in the same directory which
// replaces the ledger only on success, so a failure mid-write leaves the
// previous ledger intact.
func (s *Store) Append(records []model.TransactionRecord) error {
	if len(records) == 0 {
		return nil
	}

	existing, err := s.Load()
	if err != nil {
		return err
	}
	all := make([]model.TransactionRecord, 0, len(existing)+len(records))
	all = append(all, existing...)
	all = append(all, records...)

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", ErrStoreWrite, err)
	}
	tmpPath := tmp.Name()

	if err := Write(tmp, all); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: closing temp file: %v", ErrStoreWrite, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: replacing ledger: %v", ErrStoreWrite, err)
	}
	return nil
}

// Read parses ledger records from a reader.
func Read(r io.Reader) ([]model.TransactionRecord, error) {
	var records []model.TransactionRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Write writes ledger records, including the header row, to a writer.
func Write(w io.Writer, records []model.TransactionRecord) error {
	return gocsv.Marshal(&records, w)
}
