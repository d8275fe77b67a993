// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/EshwaranandB/medkit.ai/internal/library"
	"github.com/EshwaranandB/medkit.ai/internal/query"
	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

// SearchFile is the on-disk form of a saved search. It can be reloaded to
// rerun the same request later.
type SearchFile struct {
	Request    library.PageRequest `yaml:"request"`
	Parsed     query.Parsed        `yaml:"parsed"`
	Results    []types.ScoredTopic `yaml:"results"`
	DidYouMean []types.DidYouMean  `yaml:"did_you_mean,omitempty"`
	Summary    SearchSummary       `yaml:"summary"`
}

// SearchSummary stores result statistics and a timestamp.
type SearchSummary struct {
	Total     int       `yaml:"total"`
	Page      int       `yaml:"page"`
	PageCount int       `yaml:"page_count"`
	Timestamp time.Time `yaml:"timestamp"`
}

// NewSearchFile captures r as of now.
func NewSearchFile(r *library.Results, now time.Time) SearchFile {
	return SearchFile{
		Request:    r.Request,
		Parsed:     r.Parsed,
		Results:    r.Page.Items,
		DidYouMean: r.DidYouMean,
		Summary: SearchSummary{
			Total:     r.Page.TotalCount,
			Page:      r.Page.Page,
			PageCount: r.Page.PageCount,
			Timestamp: now.UTC(),
		},
	}
}

// WriteSearchFile saves sf as YAML.
func WriteSearchFile(path string, sf SearchFile) error {
	data, err := yaml.Marshal(&sf)
	if err != nil {
		return fmt.Errorf("marshaling search file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSearchFile loads a saved search.
func ReadSearchFile(path string) (*SearchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading search file: %w", err)
	}
	var sf SearchFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing search file: %w", err)
	}
	return &sf, nil
}
