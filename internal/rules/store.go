// Package rules loads the vendor classification rule table.
package rules

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/tally-dev/tally/internal/model"
)

// ErrNotFound indicates the rule source file does not exist. Callers may
// treat this as recoverable and continue with an empty rule set.
var ErrNotFound = errors.New("rule source not found")

// Load reads classification rules from a CSV file with columns
// keyword,vendor,category,tag. Rule order in the file is preserved; the
// classifier applies rules first-match-wins. Keywords are lowercased here
// so matching is case-insensitive without re-transforming per lookup.
func Load(path string) ([]model.Rule, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("opening rule source: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses classification rules from a reader.
func Read(r io.Reader) ([]model.Rule, error) {
	var loaded []model.Rule
	if err := gocsv.Unmarshal(r, &loaded); err != nil {
		return nil, fmt.Errorf("parsing rule source: %w", err)
	}

	for i := range loaded {
		loaded[i].Keyword = strings.ToLower(loaded[i].Keyword)
	}
	return loaded, nil
}

// LoadOrEmpty loads rules, substituting an empty rule set when the source
// file is missing. The bool result reports whether the source was found.
func LoadOrEmpty(path string) ([]model.Rule, bool, error) {
	loaded, err := Load(path)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return loaded, true, nil
}
