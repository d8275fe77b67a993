// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"strings"

	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

const topTallies = 5

// Analyze summarizes a full result set: the most common categories and
// groups, the mean score, and how many titles match the query exactly,
// partially, or not at all. It returns nil for an empty result set.
func Analyze(cleaned string, results []types.ScoredTopic) *types.SearchAnalysis {
	if len(results) == 0 {
		return nil
	}
	q := strings.ToLower(strings.TrimSpace(cleaned))

	a := &types.SearchAnalysis{Query: cleaned, ResultCount: len(results)}
	categories := make(map[string]int)
	groups := make(map[string]int)
	total := 0
	for _, r := range results {
		categories[string(r.Category)]++
		for _, g := range r.Groups {
			groups[g]++
		}
		total += r.Score

		title := strings.ToLower(r.Title)
		switch {
		case title == q:
			a.Types.Exact++
		case strings.Contains(title, q):
			a.Types.Partial++
		default:
			a.Types.Fuzzy++
		}
	}

	a.TopCategories = top(sortTallies(categories))
	a.TopGroups = top(sortTallies(groups))
	a.AverageRelevance = roundInt(float64(total) / float64(len(results)))
	return a
}

func top(t []types.Tally) []types.Tally {
	if len(t) > topTallies {
		return t[:topTallies]
	}
	return t
}

// Highlight locates the first case-insensitive occurrence of query in text.
type Highlight struct {
	Before string `json:"before" yaml:"before"`
	Match  string `json:"match,omitempty" yaml:"match,omitempty"`
	After  string `json:"after,omitempty" yaml:"after,omitempty"`
}

// FindHighlight splits text around the first occurrence of query. Without
// a match the whole text is in Before.
func FindHighlight(text, query string) Highlight {
	query = strings.TrimSpace(query)
	lower := strings.ToLower(text)
	if query == "" || len(lower) != len(text) {
		return Highlight{Before: text}
	}
	lq := strings.ToLower(query)
	idx := strings.Index(lower, lq)
	if idx < 0 {
		return Highlight{Before: text}
	}
	end := idx + len(lq)
	return Highlight{Before: text[:idx], Match: text[idx:end], After: text[end:]}
}

// Render wraps the match in openMark and closeMark.
func (h Highlight) Render(openMark, closeMark string) string {
	if h.Match == "" {
		return h.Before
	}
	return h.Before + openMark + h.Match + closeMark + h.After
}
