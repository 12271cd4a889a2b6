package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tally-dev/tally/internal/model"
)

func rule(keyword, vendor, category, tag string) model.Rule {
	return model.Rule{Keyword: keyword, Vendor: vendor, Category: category, Tag: tag}
}

func TestClassify_SimpleMatch(t *testing.T) {
	c := New([]model.Rule{rule("starbucks", "Starbucks", "Dining", "coffee")})

	vendor, category, tag := c.Classify("STARBUCKS #123")
	assert.Equal(t, "Starbucks", vendor)
	assert.Equal(t, "Dining", category)
	assert.Equal(t, "coffee", tag)
}

func TestClassify_NoMatch(t *testing.T) {
	c := New([]model.Rule{rule("starbucks", "Starbucks", "Dining", "coffee")})

	vendor, category, tag := c.Classify("WEGMANS GROCERY")
	assert.Empty(t, vendor)
	assert.Empty(t, category)
	assert.Empty(t, tag)
}

func TestClassify_CaseInsensitive(t *testing.T) {
	c := New([]model.Rule{rule("starbucks", "Starbucks", "Dining", "coffee")})

	vendor, _, _ := c.Classify("StArBuCkS store")
	assert.Equal(t, "Starbucks", vendor)
}

func TestClassify_MultiKeywordAND(t *testing.T) {
	c := New([]model.Rule{
		rule("amazon&prime", "Amazon", "Subscriptions", "streaming"),
		rule("amazon&video", "Amazon", "Subscriptions", "video"),
	})

	// Both keywords are substrings, so the AND condition holds.
	vendor, _, tag := c.Classify("AMAZON & PRIME")
	assert.Equal(t, "Amazon", vendor)
	assert.Equal(t, "streaming", tag)

	// "video" is not a substring, so the second rule never matches.
	vendor, _, _ = c.Classify("AMAZON MARKETPLACE")
	assert.Empty(t, vendor)
}

func TestClassify_FirstMatchWins(t *testing.T) {
	c := New([]model.Rule{
		rule("market", "First", "A", "a"),
		rule("market", "Second", "B", "b"),
	})

	vendor, _, _ := c.Classify("FARMERS MARKET")
	assert.Equal(t, "First", vendor)
}

func TestClassify_ReorderingNonMatchingRulesIsIrrelevant(t *testing.T) {
	matching := rule("starbucks", "Starbucks", "Dining", "coffee")
	nonA := rule("netflix", "Netflix", "Subscriptions", "streaming")
	nonB := rule("shell", "Shell", "Auto", "gas")

	a := New([]model.Rule{nonA, nonB, matching})
	b := New([]model.Rule{nonB, nonA, matching})

	va, ca, ta := a.Classify("STARBUCKS #123")
	vb, cb, tb := b.Classify("STARBUCKS #123")
	assert.Equal(t, va, vb)
	assert.Equal(t, ca, cb)
	assert.Equal(t, ta, tb)
}

func TestClassify_Deterministic(t *testing.T) {
	c := New([]model.Rule{
		rule("amazon&prime", "Amazon", "Subscriptions", "streaming"),
		rule("amazon", "Amazon", "Shopping", "retail"),
	})

	v1, c1, t1 := c.Classify("amazon prime video")
	for i := 0; i < 10; i++ {
		v2, c2, t2 := c.Classify("amazon prime video")
		assert.Equal(t, v1, v2)
		assert.Equal(t, c1, c2)
		assert.Equal(t, t1, t2)
	}
}

func TestClassify_EmptyRuleSet(t *testing.T) {
	c := New(nil)

	vendor, category, tag := c.Classify("anything at all")
	assert.Empty(t, vendor)
	assert.Empty(t, category)
	assert.Empty(t, tag)
}

func TestClassify_BlankKeywordNeverMatches(t *testing.T) {
	c := New([]model.Rule{
		rule("", "Blank", "X", "x"),
		rule("coffee", "Cafe", "Dining", "coffee"),
	})

	vendor, _, _ := c.Classify("morning coffee")
	assert.Equal(t, "Cafe", vendor)
}

func TestAnnotate(t *testing.T) {
	c := New([]model.Rule{rule("starbucks", "Starbucks", "Dining", "coffee")})

	records := []model.TransactionRecord{
		{Description: "STARBUCKS #123"},
		{Description: "UNKNOWN VENDOR"},
	}
	c.Annotate(records)

	assert.Equal(t, "Starbucks", records[0].Vendor)
	assert.Equal(t, "Dining", records[0].Category)
	assert.Equal(t, "coffee", records[0].Tag)
	assert.False(t, records[1].Classified())
}
