// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stats fetches library statistics from the backend service.
package stats

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/EshwaranandB/medkit.ai/internal/httputil"
	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

// ErrUnsuccessful is returned when the service answers but flags the
// response as unsuccessful.
var ErrUnsuccessful = errors.New("stats service reported failure")

// ErrDisabled is returned by a nil Client.
var ErrDisabled = errors.New("stats service not configured")

// Client implements library.StatsProvider over HTTP.
type Client struct {
	cfg    types.StatsConfig
	client *http.Client
}

// NewClient returns nil when cfg.URL is empty so callers fall back to
// local counts.
func NewClient(cfg types.StatsConfig) *Client {
	if cfg.URL == "" {
		return nil
	}
	return &Client{cfg: cfg, client: httputil.NewClient(cfg.HTTPConfig)}
}

type response struct {
	Success    bool                   `json:"success"`
	Total      int                    `json:"total"`
	ByCategory map[types.Category]int `json:"byCategory"`
}

// LibraryStats fetches the totals. A response without success set is an
// error, as is calling it on a nil Client.
func (c *Client) LibraryStats(ctx context.Context) (types.LibraryStats, error) {
	if c == nil {
		return types.LibraryStats{}, ErrDisabled
	}
	var resp response
	if err := httputil.GetJSON(ctx, c.client, c.cfg.HTTPConfig, c.cfg.URL, c.cfg.Token, &resp); err != nil {
		return types.LibraryStats{}, fmt.Errorf("fetching library stats: %w", err)
	}
	if !resp.Success {
		return types.LibraryStats{}, ErrUnsuccessful
	}
	if resp.ByCategory == nil {
		resp.ByCategory = map[types.Category]int{}
	}
	return types.LibraryStats{Total: resp.Total, ByCategory: resp.ByCategory}, nil
}
