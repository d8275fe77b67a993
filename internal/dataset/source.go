// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/EshwaranandB/medkit.ai/internal/httputil"
	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

// ErrNoSource is returned by NewSource when no dataset location is
// configured.
var ErrNoSource = errors.New("no dataset source configured")

// Source fetches the raw topic collection.
type Source interface {
	Fetch(ctx context.Context) ([]types.RawTopic, error)
	// String names the source in logs.
	String() string
}

// NewSource picks an HTTPSource for http(s) URLs and a FileSource otherwise.
func NewSource(cfg types.DatasetConfig, token string) (Source, error) {
	loc := strings.TrimSpace(cfg.Source)
	if loc == "" {
		return nil, ErrNoSource
	}
	if strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://") {
		return &HTTPSource{
			URL:    loc,
			Token:  token,
			Config: cfg.HTTPConfig,
			Client: httputil.NewClient(cfg.HTTPConfig),
		}, nil
	}
	return FileSource{Path: loc}, nil
}

// FileSource reads a JSON array of topics from disk.
type FileSource struct {
	Path string
}

func (s FileSource) String() string { return s.Path }

// Fetch reads and decodes the file. The context is only checked before the
// read.
func (s FileSource) Fetch(ctx context.Context) ([]types.RawTopic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", s.Path, err)
	}
	return Decode(data)
}

// HTTPSource downloads a JSON array of topics.
type HTTPSource struct {
	URL    string
	Token  string
	Config types.HTTPConfig
	Client *http.Client
}

func (s *HTTPSource) String() string { return s.URL }

// Fetch issues a GET with retry on rate limiting.
func (s *HTTPSource) Fetch(ctx context.Context) ([]types.RawTopic, error) {
	client := s.Client
	if client == nil {
		client = httputil.NewClient(s.Config)
	}
	var raws []types.RawTopic
	if err := httputil.GetJSON(ctx, client, s.Config, s.URL, s.Token, &raws); err != nil {
		return nil, err
	}
	return raws, nil
}

// Decode parses a JSON array of loosely-typed topic objects. A top-level
// object with a "topics" array is also accepted.
func Decode(data []byte) ([]types.RawTopic, error) {
	var raws []types.RawTopic
	if err := json.Unmarshal(data, &raws); err == nil {
		return raws, nil
	}

	var wrapped struct {
		Topics []types.RawTopic `json:"topics"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}
	if wrapped.Topics == nil {
		return nil, fmt.Errorf("decoding dataset: no topic array found")
	}
	return wrapped.Topics, nil
}
