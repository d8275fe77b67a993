// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EshwaranandB/medkit.ai/internal/query"
	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

func TestAnalyze(t *testing.T) {
	results := []types.ScoredTopic{
		{Topic: types.Topic{Title: "Flu", Groups: []string{"Infections"}}, Category: types.CategoryDiseases, Score: 230},
		{Topic: types.Topic{Title: "Flu shot", Groups: []string{"Infections", "Immunization"}}, Category: types.CategoryMedications, Score: 120},
		{Topic: types.Topic{Title: "Cold", Groups: []string{"Infections"}}, Category: types.CategoryDiseases, Score: 41},
	}
	a := Analyze("flu", results)
	require.NotNil(t, a)

	assert.Equal(t, 3, a.ResultCount)
	assert.Equal(t, types.MatchBreakdown{Exact: 1, Partial: 1, Fuzzy: 1}, a.Types)
	assert.Equal(t, 130, a.AverageRelevance)
	assert.Equal(t, []types.Tally{{Name: "diseases", Count: 2}, {Name: "medications", Count: 1}}, a.TopCategories)
	assert.Equal(t, types.Tally{Name: "Infections", Count: 3}, a.TopGroups[0])
}

func TestAnalyzeEmpty(t *testing.T) {
	assert.Nil(t, Analyze("flu", nil))
}

func TestAnalyzeFromSearch(t *testing.T) {
	x := sampleIndex()
	all := x.Matches(types.CategoryAll, "", query.Parse("fever"))
	a := Analyze("fever", all)
	require.NotNil(t, a)
	assert.Equal(t, len(all), a.ResultCount)
}

func TestFindHighlight(t *testing.T) {
	tests := []struct {
		text, query string
		want        string
	}{
		{"Type 2 Diabetes", "diabetes", "Type 2 [Diabetes]"},
		{"Fever", "FEV", "[Fev]er"},
		{"Fever", "cough", "Fever"},
		{"Fever", "", "Fever"},
	}
	for _, tt := range tests {
		t.Run(tt.text+"/"+tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, FindHighlight(tt.text, tt.query).Render("[", "]"))
		})
	}
}
