// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query splits a raw search string into free text and structured
// filters. The grammar is a sequence of operator tokens mixed with free
// text:
//
//	"exact phrase"     exact-phrase filter (the last quoted phrase wins)
//	category:<word>    restrict to one derived category
//	group:<word>       require a group tag (case-insensitive)
//	has:<word>         require a non-empty topic field
//
// Each of category, group, and has is recognized once; later occurrences
// stay in the free text.
package query

import (
	"regexp"
	"strings"
)

var (
	exactRe    = regexp.MustCompile(`"([^"]+)"`)
	categoryRe = regexp.MustCompile(`category:(\w+)`)
	groupRe    = regexp.MustCompile(`group:(\w+)`)
	hasRe      = regexp.MustCompile(`has:(\w+)`)
)

// Filters holds the structured part of a query. Empty fields are inactive.
type Filters struct {
	Exact    string `json:"exact,omitempty" yaml:"exact,omitempty"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	Group    string `json:"group,omitempty" yaml:"group,omitempty"`
	Has      string `json:"has,omitempty" yaml:"has,omitempty"`
}

// IsEmpty reports whether no filter is active.
func (f Filters) IsEmpty() bool {
	return f == Filters{}
}

// Active lists the active filters in query syntax, in grammar order.
func (f Filters) Active() []string {
	var out []string
	if f.Exact != "" {
		out = append(out, `"`+f.Exact+`"`)
	}
	if f.Category != "" {
		out = append(out, "category:"+f.Category)
	}
	if f.Group != "" {
		out = append(out, "group:"+f.Group)
	}
	if f.Has != "" {
		out = append(out, "has:"+f.Has)
	}
	return out
}

// Parsed is the result of Parse.
type Parsed struct {
	// Text is the trimmed free text with operators removed and whitespace
	// collapsed.
	Text    string  `json:"text" yaml:"text"`
	Filters Filters `json:"filters" yaml:"filters"`
}

// IsEmpty reports whether the query carries no free text. Operators alone,
// a quoted phrase included, only filter and never score.
func (p Parsed) IsEmpty() bool {
	return p.Text == ""
}

// Parse never fails: a string without operators yields empty Filters and its
// own trimmed text.
func Parse(raw string) Parsed {
	var f Filters
	text := raw

	for _, m := range exactRe.FindAllStringSubmatch(raw, -1) {
		f.Exact = m[1]
		text = strings.Replace(text, m[0], " ", 1)
	}

	text, f.Category = extract(categoryRe, text)
	f.Category = strings.ToLower(f.Category)
	text, f.Group = extract(groupRe, text)
	text, f.Has = extract(hasRe, text)

	return Parsed{
		Text:    strings.Join(strings.Fields(text), " "),
		Filters: f,
	}
}

// extract removes the first match of re from text and returns its captured
// value.
func extract(re *regexp.Regexp, text string) (string, string) {
	loc := re.FindStringSubmatchIndex(text)
	if loc == nil {
		return text, ""
	}
	value := text[loc[2]:loc[3]]
	return text[:loc[0]] + " " + text[loc[1]:], value
}
