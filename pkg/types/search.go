// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// MatchReason names the strongest signal that placed a topic in a result set.
type MatchReason string

const (
	MatchNone        MatchReason = ""
	MatchExactTitle  MatchReason = "exact-title"
	MatchTitlePrefix MatchReason = "title-prefix"
	MatchTitle       MatchReason = "title"
	MatchAltName     MatchReason = "alternate-name"
	MatchFuzzyTitle  MatchReason = "fuzzy-title"
	MatchContent     MatchReason = "content"
	MatchGroup       MatchReason = "group"
	MatchRelated     MatchReason = "related-topic"
	MatchLocator     MatchReason = "locator"
	MatchSignals     MatchReason = "secondary"
)

// ScoredTopic pairs a topic with its relevance for one query evaluation.
// It is never persisted beyond that evaluation.
type ScoredTopic struct {
	Topic    `yaml:",inline"`
	Category Category    `json:"category" yaml:"category"`
	Score    int         `json:"score" yaml:"score"`
	Reason   MatchReason `json:"match_reason,omitempty" yaml:"match_reason,omitempty"`
}

// Page is one page of an assembled result set.
type Page struct {
	Items      []ScoredTopic `json:"items" yaml:"items"`
	TotalCount int           `json:"total_count" yaml:"total_count"`
	Page       int           `json:"page" yaml:"page"`
	PageCount  int           `json:"page_count" yaml:"page_count"`
}

// SuggestionKind identifies the autocomplete tier a suggestion came from.
type SuggestionKind string

const (
	SuggestExact    SuggestionKind = "exact"
	SuggestStarts   SuggestionKind = "starts"
	SuggestAltName  SuggestionKind = "alt"
	SuggestContains SuggestionKind = "contains"
	SuggestGroup    SuggestionKind = "group"
	SuggestDesc     SuggestionKind = "desc"
	SuggestRelated  SuggestionKind = "related"
	SuggestFuzzy    SuggestionKind = "fuzzy"
)

// Suggestion is an autocomplete entry.
type Suggestion struct {
	ID       string         `json:"id" yaml:"id"`
	Title    string         `json:"title" yaml:"title"`
	Category Category       `json:"category" yaml:"category"`
	Priority int            `json:"priority" yaml:"priority"`
	Kind     SuggestionKind `json:"kind" yaml:"kind"`

	// Reason is the human-readable match reason ("Starts with", ...).
	Reason string `json:"reason" yaml:"reason"`
}

// DidYouMean is an alternate query offered when a search returns few results.
type DidYouMean struct {
	Title string `json:"title" yaml:"title"`

	// Similarity is a percentage in [0, 100].
	Similarity int `json:"similarity" yaml:"similarity"`
}

// LibraryStats is the shape returned by the library-statistics provider.
type LibraryStats struct {
	Total      int              `json:"total" yaml:"total"`
	ByCategory map[Category]int `json:"byCategory" yaml:"by_category"`
}

// Tally is a name with an occurrence count.
type Tally struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// MatchBreakdown counts results by how their title relates to the query.
type MatchBreakdown struct {
	Exact   int `json:"exact" yaml:"exact"`
	Partial int `json:"partial" yaml:"partial"`
	Fuzzy   int `json:"fuzzy" yaml:"fuzzy"`
}

// SearchAnalysis summarizes a full (unpaged) result set.
type SearchAnalysis struct {
	Query            string         `json:"query" yaml:"query"`
	ResultCount      int            `json:"result_count" yaml:"result_count"`
	TopCategories    []Tally        `json:"top_categories" yaml:"top_categories"`
	TopGroups        []Tally        `json:"top_groups" yaml:"top_groups"`
	AverageRelevance int            `json:"average_relevance" yaml:"average_relevance"`
	Types            MatchBreakdown `json:"types" yaml:"types"`

	// Filters lists the active query operators in query syntax.
	Filters []string `json:"filters,omitempty" yaml:"filters,omitempty"`

	// Elapsed is the time spent scoring and ranking.
	Elapsed time.Duration `json:"elapsed_ns" yaml:"elapsed"`
}
