// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset loads the raw topic collection and normalizes it into
// well-formed, deduplicated topics.
package dataset

import (
	"strconv"
	"strings"
	"time"

	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

// DefaultExcludeMarkers are locator segments of non-primary-language
// variants.
var DefaultExcludeMarkers = []string{"/spanish/", "/espanol/"}

// Options controls normalization.
type Options struct {
	// ExcludeMarkers overrides DefaultExcludeMarkers when non-nil. Matching
	// is case-insensitive.
	ExcludeMarkers []string
}

func (o Options) markers() []string {
	src := o.ExcludeMarkers
	if src == nil {
		src = DefaultExcludeMarkers
	}
	out := make([]string, 0, len(src))
	for _, m := range src {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			out = append(out, m)
		}
	}
	return out
}

// Report summarizes one normalization run.
type Report struct {
	Raw         int `json:"raw" yaml:"raw"`
	Kept        int `json:"kept" yaml:"kept"`
	Excluded    int `json:"excluded" yaml:"excluded"`
	Duplicates  int `json:"duplicates" yaml:"duplicates"`
	AssignedIDs int `json:"assigned_ids" yaml:"assigned_ids"`

	// Err is the fetch or decode failure that produced an empty collection.
	Err error `json:"-" yaml:"-"`
}

// Normalize turns raw records into topics. It never fails: missing fields
// are defaulted, non-primary-language records are dropped, and records
// sharing a locator collapse to the one with the most descriptive text.
// The output depends only on raws and opts.
func Normalize(raws []types.RawTopic, opts Options) ([]types.Topic, Report) {
	report := Report{Raw: len(raws)}
	ids := assignIDs(raws, &report)
	markers := opts.markers()

	topics := make([]types.Topic, 0, len(raws))
	slot := make(map[string]int) // lower-cased locator -> index in topics
	for i, raw := range raws {
		t := normalizeOne(raw, ids[i])

		if excludedLocator(t.Locator, markers) {
			report.Excluded++
			continue
		}

		key := strings.ToLower(strings.TrimSpace(t.Locator))
		if key == "" {
			topics = append(topics, t)
			continue
		}
		if j, seen := slot[key]; seen {
			report.Duplicates++
			if textLen(t) > textLen(topics[j]) {
				topics[j] = t
			}
			continue
		}
		slot[key] = len(topics)
		topics = append(topics, t)
	}

	report.Kept = len(topics)
	return topics, report
}

// assignIDs returns a unique id per raw record. Explicit ids are reserved
// first so that a positional fallback never takes an id some later record
// declares; repeated ids get a numeric suffix.
func assignIDs(raws []types.RawTopic, report *Report) []string {
	reserved := make(map[string]bool, len(raws))
	for _, r := range raws {
		if id := strings.TrimSpace(r.ID); id != "" {
			reserved[id] = true
		}
	}

	used := make(map[string]bool, len(raws))
	ids := make([]string, len(raws))
	for i, r := range raws {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			report.AssignedIDs++
			id = strconv.Itoa(i)
			if reserved[id] || used[id] {
				id = uniqueID(id, reserved, used)
			}
		} else if used[id] {
			report.AssignedIDs++
			id = uniqueID(id, reserved, used)
		}
		used[id] = true
		ids[i] = id
	}
	return ids
}

func uniqueID(base string, reserved, used map[string]bool) string {
	for n := 1; ; n++ {
		id := base + "-" + strconv.Itoa(n)
		if !reserved[id] && !used[id] {
			return id
		}
	}
}

func normalizeOne(raw types.RawTopic, id string) types.Topic {
	title := strings.TrimSpace(raw.Title)
	if title == "" {
		title = strings.TrimSpace(raw.Name)
	}
	if title == "" {
		title = types.DefaultTitle
	}

	desc := raw.MetaDesc
	if strings.TrimSpace(desc) == "" {
		desc = raw.Description
	}

	return types.Topic{
		ID:               id,
		Title:            title,
		Locator:          strings.TrimSpace(raw.URL),
		ShortDescription: desc,
		Summary:          raw.Summary,
		AlsoCalled:       orEmpty(raw.AlsoCalled),
		Groups:           orEmpty(raw.Groups),
		RelatedTopics:    orEmpty(raw.RelatedTopics),
		Sites:            orEmpty(raw.Sites),
		LastUpdated:      parseDate(raw.LastUpdated),
		ViewCount:        max(raw.ViewCount, 0),
	}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func excludedLocator(locator string, markers []string) bool {
	l := strings.ToLower(locator)
	for _, m := range markers {
		if strings.Contains(l, m) {
			return true
		}
	}
	return false
}

func textLen(t types.Topic) int {
	return len(t.Summary) + len(t.ShortDescription)
}

var dateLayouts = []string{time.RFC3339, "2006-01-02", "01/02/2006"}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
