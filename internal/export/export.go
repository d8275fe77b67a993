// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes the normalized library and saved searches to YAML
// or JSON.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/EshwaranandB/medkit.ai/internal/library"
	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

// Format is an output encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat accepts "yaml", "yml", and "json", ignoring case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown format %q (want yaml or json)", s)
}

// Entry is one exported topic with its derived category.
type Entry struct {
	types.Topic `yaml:",inline"`
	Category    types.Category `json:"category" yaml:"category"`
}

// Entries lists the topics of x in category (CategoryAll for every topic),
// in index order.
func Entries(x *library.Index, category types.Category) []Entry {
	var entries []Entry
	for _, t := range x.Topics() {
		c, _ := x.CategoryOf(t.ID)
		if category != types.CategoryAll && category != "" && c != category {
			continue
		}
		entries = append(entries, Entry{Topic: t, Category: c})
	}
	return entries
}

// WriteDataset encodes the topics of x in category to w.
func WriteDataset(w io.Writer, x *library.Index, category types.Category, f Format) error {
	entries := Entries(x, category)
	if entries == nil {
		entries = []Entry{}
	}
	return Encode(w, entries, f)
}

// Encode writes v to w in format f.
func Encode(w io.Writer, v any, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q", f)
}
