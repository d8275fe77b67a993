// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "medkit/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries bounds retries on HTTP 429 and 503 responses (0 uses the default).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// DatasetConfig holds settings for loading and normalizing the topic dataset.
type DatasetConfig struct {
	HTTPConfig `yaml:",inline"`

	// Source is a file path or an http(s) URL serving a JSON array of topics.
	Source string `json:"source" yaml:"source"`

	// ExcludeMarkers are locator path segments that mark non-primary-language
	// variants (default "/spanish/", "/espanol/").
	ExcludeMarkers []string `json:"exclude_markers" yaml:"exclude_markers"`
}

// StatsConfig holds settings for the library-statistics provider.
type StatsConfig struct {
	HTTPConfig `yaml:",inline"`

	// URL is the statistics endpoint. Empty disables the provider and
	// category counts are always computed locally.
	URL string `json:"url" yaml:"url"`

	// Token is an optional bearer token.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`
}

// HistoryConfig holds settings for the recent-searches store.
type HistoryConfig struct {
	// DBPath is the SQLite database path. Empty keeps history in memory only.
	DBPath string `json:"db_path" yaml:"db_path"`

	// Profile partitions history between users sharing one database.
	Profile string `json:"profile" yaml:"profile"`

	// Size caps the recent-searches list (default 10).
	Size int `json:"size" yaml:"size"`
}

// LibraryConfig groups all component configurations.
type LibraryConfig struct {
	Dataset DatasetConfig `json:"dataset" yaml:"dataset"`
	Stats   StatsConfig   `json:"stats" yaml:"stats"`
	History HistoryConfig `json:"history" yaml:"history"`
}
