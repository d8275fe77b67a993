// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/EshwaranandB/medkit.ai/internal/library"
	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

func testIndex() *library.Index {
	return library.NewIndex([]types.Topic{
		{ID: "1", Title: "Fever", Groups: []string{"Symptoms"}, AlsoCalled: []string{}},
		{ID: "2", Title: "Insulin", Groups: []string{"Drugs and Supplements"}},
		{ID: "3", Title: "Asthma"},
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"yaml", FormatYAML, false},
		{"YML", FormatYAML, false},
		{" json ", FormatJSON, false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteDatasetJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDataset(&buf, testIndex(), types.CategoryAll, FormatJSON))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "Fever", got[0]["title"])
	assert.Equal(t, "symptoms", got[0]["category"])
	assert.NotContains(t, got[0], "last_updated")
}

func TestWriteDatasetYAMLFiltered(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDataset(&buf, testIndex(), types.CategoryMedications, FormatYAML))

	var got []Entry
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Insulin", got[0].Title)
	assert.Equal(t, types.CategoryMedications, got[0].Category)
}

func TestWriteDatasetEmptyCategory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDataset(&buf, testIndex(), types.CategoryRecipes, FormatJSON))
	assert.JSONEq(t, "[]", buf.String())
}

func TestSearchFileRoundTrip(t *testing.T) {
	s := library.NewSession(library.Config{})
	r := s.Search(library.PageRequest{Query: "fever", Page: 1})
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	path := filepath.Join(t.TempDir(), "search.yaml")
	require.NoError(t, WriteSearchFile(path, NewSearchFile(r, at)))

	sf, err := ReadSearchFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fever", sf.Request.Query)
	assert.Equal(t, "fever", sf.Parsed.Text)
	assert.Equal(t, 1, sf.Summary.Page)
	assert.True(t, at.Equal(sf.Summary.Timestamp))
}

func TestReadSearchFileMissing(t *testing.T) {
	_, err := ReadSearchFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading search file")
}
