package model

import "strings"

// Rule maps a keyword condition to a vendor/category/tag triple.
// Keyword may contain several `&`-joined keywords; all of them must appear
// in a description for the rule to match.
type Rule struct {
	Keyword  string `csv:"keyword"`
	Vendor   string `csv:"vendor"`
	Category string `csv:"category"`
	Tag      string `csv:"tag"`
}

// Keywords splits the keyword condition on `&` and trims each part.
func (r Rule) Keywords() []string {
	parts := strings.Split(r.Keyword, "&")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
