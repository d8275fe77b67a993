// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"cmp"
	"slices"
	"strings"

	"github.com/EshwaranandB/medkit.ai/internal/query"
	"github.com/EshwaranandB/medkit.ai/internal/relevance"
	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

// PageSize is the number of topics per result page.
const PageSize = 48

// PageRequest selects a page of results.
type PageRequest struct {
	Category types.Category `json:"category" yaml:"category"`
	Letter   string         `json:"letter,omitempty" yaml:"letter,omitempty"`
	Query    string         `json:"query,omitempty" yaml:"query,omitempty"`
	Page     int            `json:"page" yaml:"page"`
}

// GetPage runs the result pipeline: category and letter filters, then
// scoring when the query carries text or stable category/title order when
// it does not, then clamping the page number into range.
func (x *Index) GetPage(req PageRequest) types.Page {
	return paginate(x.Matches(req.Category, req.Letter, query.Parse(req.Query)), req.Page)
}

// Matches returns the full, ordered result set for a parsed query. Filters
// apply in both modes; scoring and relevance order only when the query has
// text to score.
func (x *Index) Matches(category types.Category, letter string, parsed query.Parsed) []types.ScoredTopic {
	if category == "" {
		category = types.CategoryAll
	}
	letter = strings.ToUpper(strings.TrimSpace(letter))

	filters := parsed.Filters
	filterCategory := types.Category(filters.Category)
	// The index already knows every category; skip reclassifying in the scorer.
	filters.Category = ""

	text := parsed.Text
	scorer := relevance.Scorer{Now: x.reference()}

	var out []types.ScoredTopic
	for i, t := range x.topics {
		c := x.categories[i]
		if category != types.CategoryAll && c != category {
			continue
		}
		if filterCategory != "" && c != filterCategory {
			continue
		}
		if letter != "" && t.Letter() != letter {
			continue
		}

		if text == "" {
			if relevance.Admits(t, filters) {
				out = append(out, types.ScoredTopic{Topic: t, Category: c})
			}
			continue
		}

		r := scorer.Score(t, text, filters)
		if r.Score <= 0 {
			continue
		}
		out = append(out, types.ScoredTopic{Topic: t, Category: c, Score: r.Score, Reason: r.Reason})
	}

	col := x.collator()
	if text == "" {
		slices.SortStableFunc(out, func(a, b types.ScoredTopic) int {
			if c := strings.Compare(string(a.Category), string(b.Category)); c != 0 {
				return c
			}
			return col.CompareString(a.Title, b.Title)
		})
	} else {
		slices.SortStableFunc(out, func(a, b types.ScoredTopic) int {
			if c := cmp.Compare(b.Score, a.Score); c != 0 {
				return c
			}
			return col.CompareString(a.Title, b.Title)
		})
	}
	return out
}

// PageCount returns the number of pages for total results; an empty result
// set still has one (empty) page.
func PageCount(total int) int {
	return max(1, (total+PageSize-1)/PageSize)
}

// ClampPage moves page into [1, PageCount(total)].
func ClampPage(page, total int) int {
	return min(max(page, 1), PageCount(total))
}

func paginate(all []types.ScoredTopic, page int) types.Page {
	total := len(all)
	page = ClampPage(page, total)
	start := min((page-1)*PageSize, total)
	end := min(start+PageSize, total)

	items := make([]types.ScoredTopic, end-start)
	copy(items, all[start:end])
	return types.Page{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageCount:  PageCount(total),
	}
}
