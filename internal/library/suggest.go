// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/EshwaranandB/medkit.ai/internal/relevance"
	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

const (
	maxSuggestions  = 20
	maxDidYouMean   = 5
	minSuggestRunes = 2

	// Heuristic thresholds, tunable.
	suggestFuzzyMin    = 0.7
	suggestFuzzyWeight = 60
	didYouMeanFuzzyMin = 0.8
)

// tier is one autocomplete priority level.
type tier struct {
	kind     types.SuggestionKind
	priority int
	reason   string
	limit    int
	match    func(t types.Topic, q string) bool
}

var tiers = []tier{
	{types.SuggestExact, 100, "Exact match", 3, func(t types.Topic, q string) bool {
		return strings.ToLower(t.Title) == q
	}},
	{types.SuggestStarts, 90, "Starts with", 3, func(t types.Topic, q string) bool {
		return strings.HasPrefix(strings.ToLower(t.Title), q)
	}},
	{types.SuggestAltName, 85, "Alternative name", 3, func(t types.Topic, q string) bool {
		return anyLower(t.AlsoCalled, func(a string) bool { return strings.HasPrefix(a, q) })
	}},
	{types.SuggestContains, 80, "Contains", 3, func(t types.Topic, q string) bool {
		return strings.Contains(strings.ToLower(t.Title), q)
	}},
	{types.SuggestGroup, 75, "Group match", 2, func(t types.Topic, q string) bool {
		return anyLower(t.Groups, func(g string) bool { return strings.Contains(g, q) })
	}},
	{types.SuggestDesc, 70, "Description match", 2, func(t types.Topic, q string) bool {
		return strings.Contains(strings.ToLower(t.ShortDescription), q)
	}},
	{types.SuggestRelated, 65, "Related topic", 2, func(t types.Topic, q string) bool {
		return slices.ContainsFunc(t.RelatedTopics, func(rt types.RelatedTopic) bool {
			return strings.Contains(strings.ToLower(rt.Title), q)
		})
	}},
}

func anyLower(values []string, pred func(string) bool) bool {
	return slices.ContainsFunc(values, func(v string) bool { return pred(strings.ToLower(v)) })
}

// Autocomplete suggests topics for a partial query over the whole
// collection, ignoring any category or letter selection. Each tier takes
// at most its limit of topics not already suggested by a higher tier.
func (x *Index) Autocomplete(raw string) []types.Suggestion {
	q := strings.ToLower(strings.TrimSpace(raw))
	if utf8.RuneCountInString(q) < minSuggestRunes {
		return nil
	}

	var out []types.Suggestion
	seen := make(map[string]bool)
	add := func(i int, kind types.SuggestionKind, priority int, reason string) {
		t := x.topics[i]
		seen[t.ID] = true
		out = append(out, types.Suggestion{
			ID:       t.ID,
			Title:    t.Title,
			Category: x.categories[i],
			Priority: priority,
			Kind:     kind,
			Reason:   reason,
		})
	}

	for _, tr := range tiers {
		n := 0
		for i, t := range x.topics {
			if n == tr.limit {
				break
			}
			if seen[t.ID] || !tr.match(t, q) {
				continue
			}
			add(i, tr.kind, tr.priority, tr.reason)
			n++
		}
	}

	if utf8.RuneCountInString(q) > 3 {
		n := 0
		for i, t := range x.topics {
			if n == 2 {
				break
			}
			if seen[t.ID] {
				continue
			}
			sim := relevance.WordSimilarity(q, strings.ToLower(t.Title))
			if sim <= suggestFuzzyMin {
				continue
			}
			add(i, types.SuggestFuzzy, roundInt(sim*suggestFuzzyWeight), "Similar")
			n++
		}
	}

	slices.SortStableFunc(out, func(a, b types.Suggestion) int {
		return cmp.Compare(b.Priority, a.Priority)
	})
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// DidYouMean offers titles close to a query: exact title matches at 100,
// titles containing the query at 85, and titles with similarity above 0.8
// at their rounded percentage. Titles are deduplicated and the five most
// similar returned.
func (x *Index) DidYouMean(raw string) []types.DidYouMean {
	q := strings.ToLower(strings.TrimSpace(raw))
	if q == "" {
		return nil
	}

	var out []types.DidYouMean
	seen := make(map[string]bool)
	add := func(title string, sim int) {
		if seen[title] {
			return
		}
		seen[title] = true
		out = append(out, types.DidYouMean{Title: title, Similarity: sim})
	}

	for _, t := range x.topics {
		title := strings.ToLower(t.Title)
		switch {
		case title == q:
			add(t.Title, 100)
		case strings.Contains(title, q):
			add(t.Title, 85)
		}
	}
	for _, t := range x.topics {
		if seen[t.Title] {
			continue
		}
		if sim := relevance.WordSimilarity(q, strings.ToLower(t.Title)); sim > didYouMeanFuzzyMin {
			add(t.Title, roundInt(sim*100))
		}
	}

	slices.SortStableFunc(out, func(a, b types.DidYouMean) int {
		return cmp.Compare(b.Similarity, a.Similarity)
	})
	if len(out) > maxDidYouMean {
		out = out[:maxDidYouMean]
	}
	return out
}

// WantsDidYouMean reports whether a search with resultCount results for
// the cleaned query should offer did-you-mean suggestions.
func WantsDidYouMean(cleaned string, resultCount int) bool {
	return resultCount < 5 && utf8.RuneCountInString(strings.TrimSpace(cleaned)) > 2
}

func roundInt(f float64) int {
	return int(math.Floor(f + 0.5))
}
