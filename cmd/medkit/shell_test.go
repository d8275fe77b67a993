// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EshwaranandB/medkit.ai/internal/dataset"
	"github.com/EshwaranandB/medkit.ai/internal/library"
	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

const shellDataset = `[
	{"id": "1", "title": "Fever", "url": "/fever", "groups": ["Symptoms"]},
	{"id": "2", "title": "Diabetes", "url": "/diabetes"},
	{"id": "3", "title": "Insulin", "url": "/druginfo/insulin"}
]`

func newTestShell(t *testing.T) (*shell, *bytes.Buffer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "topics.json")
	require.NoError(t, os.WriteFile(path, []byte(shellDataset), 0o644))

	s := library.NewSession(library.Config{Source: dataset.FileSource{Path: path}})
	_, err := s.Reload(context.Background())
	require.NoError(t, err)

	var out bytes.Buffer
	return &shell{
		app: &app{session: s},
		out: &out,
		req: library.PageRequest{Category: types.CategoryAll, Page: 1},
	}, &out
}

// --- parseRequest ---

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name     string
		category string
		letter   string
		want     library.PageRequest
		wantErr  bool
	}{
		{"defaults", "", "", library.PageRequest{Category: types.CategoryAll, Page: 1}, false},
		{"category case", "Medications", "", library.PageRequest{Category: types.CategoryMedications, Page: 1}, false},
		{"lower letter", "all", "d", library.PageRequest{Category: types.CategoryAll, Letter: "D", Page: 1}, false},
		{"unknown category", "herbs", "", library.PageRequest{}, true},
		{"two letters", "all", "ab", library.PageRequest{}, true},
		{"digit", "all", "7", library.PageRequest{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRequest(tt.category, tt.letter, "", 1)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ééé...", truncate("éééééééé", 6))
}

// --- shell ---

func TestShellSearchRecordsHistory(t *testing.T) {
	sh, out := newTestShell(t)

	quit, err := sh.handle(context.Background(), "fever")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Contains(t, out.String(), "Fever")
	assert.Equal(t, []string{"fever"}, sh.app.session.Recent())
}

func TestShellPagingIsNotRecorded(t *testing.T) {
	sh, _ := newTestShell(t)

	_, err := sh.handle(context.Background(), ":page 3")
	require.NoError(t, err)
	assert.Equal(t, 1, sh.req.Page, "page clamps to the only page")
	assert.Empty(t, sh.app.session.Recent())
}

func TestShellCommands(t *testing.T) {
	sh, out := newTestShell(t)
	ctx := context.Background()

	_, err := sh.handle(ctx, ":category medications")
	require.NoError(t, err)
	assert.Equal(t, types.CategoryMedications, sh.req.Category)
	assert.Contains(t, out.String(), "Insulin")

	_, err = sh.handle(ctx, ":letter z")
	require.NoError(t, err)
	assert.Equal(t, "Z", sh.req.Letter)
	assert.Contains(t, out.String(), "No results found.")

	_, err = sh.handle(ctx, ":category nope")
	assert.Error(t, err)
	_, err = sh.handle(ctx, ":page x")
	assert.Error(t, err)
	_, err = sh.handle(ctx, ":bogus")
	assert.Error(t, err)

	quit, err := sh.handle(ctx, ":quit")
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestShellTopicWritesToShellOutput(t *testing.T) {
	sh, out := newTestShell(t)

	_, err := sh.handle(context.Background(), ":topic 1")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Fever [1]")
	assert.Contains(t, out.String(), "URL: /fever")

	_, err = sh.handle(context.Background(), ":topic 99")
	assert.ErrorContains(t, err, `topic "99" not found`)
}

func TestShellRun(t *testing.T) {
	sh, out := newTestShell(t)

	in := strings.NewReader("diabetes\n:history\n:clear\n:history\n:quit\nnever reached\n")
	require.NoError(t, sh.run(context.Background(), in))

	got := out.String()
	assert.Contains(t, got, "Diabetes")
	assert.Contains(t, got, " 1  diabetes")
	assert.Contains(t, got, "No recent searches.")
	assert.Empty(t, sh.app.session.Recent())
}

// --- root command ---

func TestConfigFlagNamesSearchedFile(t *testing.T) {
	usage := rootCmd.PersistentFlags().Lookup("config").Usage
	assert.Contains(t, usage, "medkit.yaml in . or ~/.config/medkit/")
	assert.NotContains(t, usage, "config.yaml")
}
