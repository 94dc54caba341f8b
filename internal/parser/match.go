package parser

import (
	"github.com/cloudflare/ahocorasick"

	"github.com/faturalab/statement-scanner/internal/keywords"
	"github.com/faturalab/statement-scanner/internal/models"
)

// keywordMatcher decides which registered keyword, if any, a
// description belongs to. It runs a single Aho-Corasick pass over the
// normalized description, so cost is independent of registry size.
type keywordMatcher struct {
	keys []models.Keyword // registry order, already normalized
	ac   *ahocorasick.Matcher
}

func newKeywordMatcher(keys []models.Keyword) *keywordMatcher {
	m := &keywordMatcher{keys: keys}
	if len(keys) > 0 {
		patterns := make([]string, len(keys))
		for i, k := range keys {
			patterns[i] = string(k)
		}
		m.ac = ahocorasick.NewStringMatcher(patterns)
	}
	return m
}

// match returns the keyword the description is classified under.
// Matching is case- and accent-insensitive substring containment.
// When several keywords hit, the longest (most specific) wins, so
// "uber eats" beats "uber". Registry order breaks length ties.
func (m *keywordMatcher) match(description string) (models.Keyword, bool) {
	if m.ac == nil {
		return "", false
	}

	hits := m.ac.Match([]byte(keywords.Normalize(description)))
	if len(hits) == 0 {
		return "", false
	}

	best := -1
	for _, idx := range hits {
		if idx < 0 || idx >= len(m.keys) {
			continue
		}
		if best == -1 {
			best = idx
			continue
		}
		cur, prev := m.keys[idx], m.keys[best]
		if len(cur) > len(prev) || (len(cur) == len(prev) && idx < best) {
			best = idx
		}
	}
	if best == -1 {
		return "", false
	}
	return m.keys[best], true
}
