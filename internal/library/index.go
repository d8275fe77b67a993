// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library assembles search results over an immutable snapshot of
// the topic collection: paging, autocomplete, did-you-mean, category
// counts, and the recent-searches list. A Session owns the snapshot and
// swaps it atomically when the dataset is reloaded.
package library

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/EshwaranandB/medkit.ai/internal/classify"
	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

// Option configures an Index.
type Option func(*Index)

// WithLanguage sets the collation language for title ordering
// (default English).
func WithLanguage(tag language.Tag) Option {
	return func(x *Index) { x.lang = tag }
}

// WithClock sets the reference time used by the recency bonus. Without it
// the index is stamped with the time it was built.
func WithClock(now func() time.Time) Option {
	return func(x *Index) { x.now = now }
}

// Index is an immutable snapshot of the normalized topics with their
// derived categories. It is safe for concurrent use.
type Index struct {
	topics     []types.Topic
	categories []types.Category
	byID       map[string]int
	byTitle    map[string]int
	byLocator  map[string]int

	lang    language.Tag
	now     func() time.Time
	builtAt time.Time
}

// NewIndex takes ownership of topics; callers must not modify them
// afterwards.
func NewIndex(topics []types.Topic, opts ...Option) *Index {
	x := &Index{
		topics:     topics,
		categories: make([]types.Category, len(topics)),
		byID:       make(map[string]int, len(topics)),
		byTitle:    make(map[string]int, len(topics)),
		byLocator:  make(map[string]int, len(topics)),
		lang:       language.English,
		builtAt:    time.Now(),
	}
	for _, o := range opts {
		o(x)
	}
	for i, t := range topics {
		x.categories[i] = classify.Classify(t)
		x.byID[t.ID] = i
		if key := strings.ToLower(t.Title); key != "" {
			if _, dup := x.byTitle[key]; !dup {
				x.byTitle[key] = i
			}
		}
		if key := locatorKey(t.Locator); key != "" {
			x.byLocator[key] = i
		}
	}
	return x
}

// Len returns the number of topics.
func (x *Index) Len() int { return len(x.topics) }

// Topics returns the underlying topics. The slice is shared; do not modify.
func (x *Index) Topics() []types.Topic { return x.topics }

// Topic returns the topic with the given id.
func (x *Index) Topic(id string) (types.Topic, bool) {
	i, ok := x.byID[id]
	if !ok {
		return types.Topic{}, false
	}
	return x.topics[i], true
}

// CategoryOf returns the derived category of the topic with the given id.
func (x *Index) CategoryOf(id string) (types.Category, bool) {
	i, ok := x.byID[id]
	if !ok {
		return "", false
	}
	return x.categories[i], true
}

// ByTitle finds a topic by case-insensitive title. With several topics
// sharing a title the first one wins.
func (x *Index) ByTitle(title string) (types.Topic, bool) {
	i, ok := x.byTitle[strings.ToLower(strings.TrimSpace(title))]
	if !ok {
		return types.Topic{}, false
	}
	return x.topics[i], true
}

// ByLocator finds a topic by locator, ignoring case, scheme, and a
// trailing slash.
func (x *Index) ByLocator(locator string) (types.Topic, bool) {
	i, ok := x.byLocator[locatorKey(locator)]
	if !ok {
		return types.Topic{}, false
	}
	return x.topics[i], true
}

func locatorKey(loc string) string {
	loc = strings.ToLower(strings.TrimSpace(loc))
	loc = strings.TrimPrefix(loc, "https://")
	loc = strings.TrimPrefix(loc, "http://")
	return strings.TrimSuffix(loc, "/")
}

// Letters returns the distinct A-Z initials of topic titles in category,
// sorted. CategoryAll covers every topic.
func (x *Index) Letters(category types.Category) []string {
	seen := make(map[string]bool)
	for i, t := range x.topics {
		if category != types.CategoryAll && x.categories[i] != category {
			continue
		}
		if l := t.Letter(); len(l) == 1 && l[0] >= 'A' && l[0] <= 'Z' {
			seen[l] = true
		}
	}
	letters := make([]string, 0, len(seen))
	for l := range seen {
		letters = append(letters, l)
	}
	slices.Sort(letters)
	return letters
}

// Groups tallies group tags across the topics in category (CategoryAll for
// every topic), most frequent first and alphabetical within a count.
func (x *Index) Groups(category types.Category) []types.Tally {
	counts := make(map[string]int)
	for i, t := range x.topics {
		if category != types.CategoryAll && category != "" && x.categories[i] != category {
			continue
		}
		for _, g := range t.Groups {
			if g = strings.TrimSpace(g); g != "" {
				counts[g]++
			}
		}
	}
	return sortTallies(counts)
}

// Counts tallies topics per category from the precomputed categories.
func (x *Index) Counts() map[types.Category]int {
	counts := make(map[types.Category]int, len(types.Categories)+1)
	counts[types.CategoryAll] = len(x.topics)
	for _, c := range types.Categories {
		counts[c] = 0
	}
	for _, c := range x.categories {
		counts[c]++
	}
	return counts
}

func (x *Index) reference() time.Time {
	if x.now != nil {
		return x.now()
	}
	return x.builtAt
}

// collator returns a fresh collator; collate.Collator is not safe for
// concurrent use.
func (x *Index) collator() *collate.Collator {
	return collate.New(x.lang)
}

func sortTallies(counts map[string]int) []types.Tally {
	out := make([]types.Tally, 0, len(counts))
	for name, n := range counts {
		out = append(out, types.Tally{Name: name, Count: n})
	}
	slices.SortFunc(out, func(a, b types.Tally) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}
