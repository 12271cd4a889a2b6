// Package classify assigns vendor/category/tag triples to transaction
// descriptions from an ordered rule table.
package classify

import (
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/tally-dev/tally/internal/model"
)

// Classifier matches descriptions against an ordered rule set. A rule
// matches when every one of its keywords is a literal substring of the
// lowercased description; the first matching rule wins. Matching is a
// single Aho-Corasick pass over the distinct keyword set, so the cost per
// description does not grow with the number of rules.
type Classifier struct {
	rules        []model.Rule
	ruleKeywords [][]string

	matcher  *ahocorasick.Matcher
	keywords []string
}

// New builds a Classifier from rules in table order. Keywords are expected
// to already be lowercase (the rule store lowercases at load time).
func New(rules []model.Rule) *Classifier {
	c := &Classifier{
		rules:        rules,
		ruleKeywords: make([][]string, len(rules)),
	}

	seen := make(map[string]bool)
	for i, r := range rules {
		kws := r.Keywords()
		c.ruleKeywords[i] = kws
		for _, kw := range kws {
			if kw == "" || seen[kw] {
				continue
			}
			seen[kw] = true
			c.keywords = append(c.keywords, kw)
		}
	}

	if len(c.keywords) > 0 {
		c.matcher = ahocorasick.NewStringMatcher(c.keywords)
	}
	return c
}

// Classify returns the vendor/category/tag of the first rule whose full
// keyword set appears in desc, or three empty strings if no rule matches.
func (c *Classifier) Classify(desc string) (vendor, category, tag string) {
	if c.matcher == nil {
		return "", "", ""
	}

	d := strings.ToLower(desc)

	matched := make(map[string]bool)
	for _, hit := range c.matcher.Match([]byte(d)) {
		matched[c.keywords[hit]] = true
	}
	if len(matched) == 0 {
		return "", "", ""
	}

	for i, kws := range c.ruleKeywords {
		if ruleMatches(kws, matched) {
			r := c.rules[i]
			return r.Vendor, r.Category, r.Tag
		}
	}
	return "", "", ""
}

// Annotate classifies every record's description in place.
func (c *Classifier) Annotate(records []model.TransactionRecord) {
	for i := range records {
		records[i].Vendor, records[i].Category, records[i].Tag = c.Classify(records[i].Description)
	}
}

func ruleMatches(keywords []string, matched map[string]bool) bool {
	any := false
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if !matched[kw] {
			return false
		}
		any = true
	}
	return any
}
