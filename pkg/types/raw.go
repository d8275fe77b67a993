// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// RawTopic is a dataset record before normalization. Every field is
// optional; UnmarshalJSON never fails on a wrongly-typed field and simply
// leaves it empty. Array fields stay nil when absent so the normalizer can
// tell "absent" from "present but empty".
type RawTopic struct {
	ID            string
	Title         string
	Name          string
	URL           string
	MetaDesc      string
	Description   string
	Summary       string
	AlsoCalled    []string
	Groups        []string
	RelatedTopics []RelatedTopic
	Sites         []Site
	LastUpdated   string
	ViewCount     int
}

// rawKeys maps each accepted JSON key onto the field it fills. Both the
// snake_case keys of the MedlinePlus export and camelCase spellings are
// accepted.
var rawKeys = map[string]string{
	"id":               "id",
	"title":            "title",
	"name":             "name",
	"url":              "url",
	"locator":          "url",
	"meta_desc":        "meta_desc",
	"metaDesc":         "meta_desc",
	"shortDescription": "meta_desc",
	"description":      "description",
	"summary":          "summary",
	"also_called":      "also_called",
	"alsoCalled":       "also_called",
	"groups":           "groups",
	"related_topics":   "related_topics",
	"relatedTopics":    "related_topics",
	"sites":            "sites",
	"last_updated":     "last_updated",
	"lastUpdated":      "last_updated",
	"view_count":       "view_count",
	"viewCount":        "view_count",
}

// UnmarshalJSON decodes a loosely-typed topic object. Non-object input
// yields an empty RawTopic rather than an error.
func (r *RawTopic) UnmarshalJSON(data []byte) error {
	*r = RawTopic{}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	// Keys are visited in sorted order so that records carrying two
	// spellings of the same field always decode the same way.
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		value := fields[key]
		switch rawKeys[key] {
		case "id":
			r.ID = looseString(value)
		case "title":
			r.Title = looseString(value)
		case "name":
			r.Name = looseString(value)
		case "url":
			r.URL = looseString(value)
		case "meta_desc":
			r.MetaDesc = looseString(value)
		case "description":
			r.Description = looseString(value)
		case "summary":
			r.Summary = looseString(value)
		case "also_called":
			r.AlsoCalled = looseStrings(value)
		case "groups":
			r.Groups = looseStrings(value)
		case "related_topics":
			r.RelatedTopics = looseRelated(value)
		case "sites":
			r.Sites = looseSites(value)
		case "last_updated":
			r.LastUpdated = looseString(value)
		case "view_count":
			r.ViewCount = looseInt(value)
		}
	}
	return nil
}

// looseString renders a JSON scalar as a string. Strings are returned
// verbatim, numbers and booleans in their JSON spelling; null, arrays and
// objects become "".
func looseString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '{', '[', 'n':
		return ""
	default:
		return string(raw)
	}
}

func looseInt(raw json.RawMessage) int {
	s := strings.TrimSpace(looseString(raw))
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// looseArray returns the elements of a JSON array, or nil for anything else.
func looseArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil || elems == nil {
		return nil, false
	}
	return elems, true
}

func looseStrings(raw json.RawMessage) []string {
	elems, ok := looseArray(raw)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		if s := looseString(e); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// looseRelated accepts either plain title strings or {title, url} objects.
func looseRelated(raw json.RawMessage) []RelatedTopic {
	elems, ok := looseArray(raw)
	if !ok {
		return nil
	}
	out := make([]RelatedTopic, 0, len(elems))
	for _, e := range elems {
		if s := looseString(e); s != "" {
			out = append(out, RelatedTopic{Title: s})
			continue
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(e, &obj); err != nil || obj == nil {
			continue
		}
		rt := RelatedTopic{
			Title:   looseString(obj["title"]),
			Locator: looseString(obj["url"]),
		}
		if rt.Title == "" && rt.Locator == "" {
			continue
		}
		out = append(out, rt)
	}
	return out
}

func looseSites(raw json.RawMessage) []Site {
	elems, ok := looseArray(raw)
	if !ok {
		return nil
	}
	out := make([]Site, 0, len(elems))
	for _, e := range elems {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(e, &obj); err != nil || obj == nil {
			continue
		}
		out = append(out, Site{
			Title:        looseString(obj["title"]),
			URL:          looseString(obj["url"]),
			Organization: looseString(obj["organization"]),
			Category:     looseString(obj["category"]),
			Description:  looseString(obj["description"]),
		})
	}
	return out
}
