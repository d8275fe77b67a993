// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the medkit health library:
// topics as loaded and normalized from the dataset, derived categories,
// scored search results, suggestions, and configuration.
package types

import (
	"time"
	"unicode"
)

// DefaultTitle is assigned to topics that carry neither a title nor a name.
const DefaultTitle = "Untitled"

// Topic is a single normalized health-information record. Topics are built
// once by the dataset normalizer and are read-only afterwards. Every slice
// field is non-nil after normalization.
type Topic struct {
	// ID is unique across a normalized collection.
	ID string `json:"id" yaml:"id"`

	// Title is the canonical display name (defaults to "Untitled").
	Title string `json:"title" yaml:"title"`

	// Locator is the canonical source URL and the deduplication key.
	Locator string `json:"url" yaml:"url"`

	// ShortDescription is the one-line description (may contain HTML).
	ShortDescription string `json:"meta_desc" yaml:"meta_desc"`

	// Summary is the long-form body (may contain HTML).
	Summary string `json:"summary" yaml:"summary"`

	// AlsoCalled lists alternate names.
	AlsoCalled []string `json:"also_called" yaml:"also_called"`

	// Groups lists free-text classification tags.
	Groups []string `json:"groups" yaml:"groups"`

	// RelatedTopics references other topics by title. The reference is weak:
	// it is resolved against the collection at render time.
	RelatedTopics []RelatedTopic `json:"related_topics" yaml:"related_topics"`

	// Sites lists external resources about the topic.
	Sites []Site `json:"sites" yaml:"sites"`

	// LastUpdated is the zero time when the source carried no usable date.
	LastUpdated time.Time `json:"last_updated,omitzero" yaml:"last_updated,omitempty"`

	// ViewCount is zero when unknown.
	ViewCount int `json:"view_count,omitempty" yaml:"view_count,omitempty"`
}

// RelatedTopic is a weak reference to another topic.
type RelatedTopic struct {
	Title   string `json:"title" yaml:"title"`
	Locator string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Site describes an external resource linked from a topic.
type Site struct {
	Title        string `json:"title" yaml:"title"`
	URL          string `json:"url" yaml:"url"`
	Organization string `json:"organization,omitempty" yaml:"organization,omitempty"`
	Category     string `json:"category,omitempty" yaml:"category,omitempty"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Letter returns the upper-cased first character of the title, or "" for
// an empty title.
func (t Topic) Letter() string {
	for _, r := range t.Title {
		return string(unicode.ToUpper(r))
	}
	return ""
}
