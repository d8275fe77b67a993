// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

func diabetesIndex() *Index {
	return NewIndex([]types.Topic{
		{ID: "1", Title: "Diabetes"},
		{ID: "2", Title: "Diabetes Type 1"},
		{ID: "3", Title: "Diabetic foot"},
		{ID: "4", Title: "Insulin", AlsoCalled: []string{"Diabetes medicine"}},
		{ID: "5", Title: "Blood sugar", Groups: []string{"Diabetes Mellitus"}},
		{ID: "6", Title: "Asthma"},
	})
}

// --- Autocomplete ---

func TestAutocompleteTiers(t *testing.T) {
	got := diabetesIndex().Autocomplete("Diabetes")

	type row struct {
		ID       string
		Priority int
		Kind     types.SuggestionKind
		Reason   string
	}
	var rows []row
	for _, s := range got {
		rows = append(rows, row{s.ID, s.Priority, s.Kind, s.Reason})
	}
	assert.Equal(t, []row{
		{"1", 100, types.SuggestExact, "Exact match"},
		{"2", 90, types.SuggestStarts, "Starts with"},
		{"4", 85, types.SuggestAltName, "Alternative name"},
		{"5", 75, types.SuggestGroup, "Group match"},
	}, rows)
}

func TestAutocompleteFuzzy(t *testing.T) {
	got := diabetesIndex().Autocomplete("diabetez")
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, types.SuggestFuzzy, got[0].Kind)
	assert.Equal(t, "Similar", got[0].Reason)
	// 7/8 * 60 = 52.5
	assert.Equal(t, 53, got[0].Priority)
}

func TestAutocompleteTierLimits(t *testing.T) {
	topics := make([]types.Topic, 5)
	for i := range topics {
		topics[i] = types.Topic{ID: fmt.Sprint(i), Title: fmt.Sprintf("Flu %d", i)}
	}
	got := NewIndex(topics).Autocomplete("flu")

	require.Len(t, got, 5)
	for i, s := range got {
		if i < 3 {
			assert.Equal(t, types.SuggestStarts, s.Kind)
		} else {
			assert.Equal(t, types.SuggestContains, s.Kind)
		}
	}
}

func TestAutocompleteNoDuplicates(t *testing.T) {
	got := diabetesIndex().Autocomplete("di")
	ids := make(map[string]bool)
	for _, s := range got {
		assert.False(t, ids[s.ID], "duplicate suggestion %s", s.ID)
		ids[s.ID] = true
	}
	assert.LessOrEqual(t, len(got), 20)
}

func TestAutocompleteShortQuery(t *testing.T) {
	assert.Empty(t, diabetesIndex().Autocomplete("d"))
	assert.Empty(t, diabetesIndex().Autocomplete("  "))
}

// --- DidYouMean ---

func TestDidYouMeanMisspelling(t *testing.T) {
	x := NewIndex([]types.Topic{
		{ID: "1", Title: "Diabetes"},
		{ID: "2", Title: "Diabetes Type 2"},
		{ID: "3", Title: "Asthma"},
	})
	assert.Equal(t, []types.DidYouMean{{Title: "Diabetes", Similarity: 89}}, x.DidYouMean("diabetees"))
}

func TestDidYouMeanOrderingAndDedup(t *testing.T) {
	x := NewIndex([]types.Topic{
		{ID: "1", Title: "Asthma in children"},
		{ID: "2", Title: "Asthma"},
		{ID: "3", Title: "Asthma", Locator: "/other"},
	})
	assert.Equal(t, []types.DidYouMean{
		{Title: "Asthma", Similarity: 100},
		{Title: "Asthma in children", Similarity: 85},
	}, x.DidYouMean("asthma"))
}

func TestDidYouMeanCap(t *testing.T) {
	topics := make([]types.Topic, 8)
	for i := range topics {
		topics[i] = types.Topic{ID: fmt.Sprint(i), Title: fmt.Sprintf("Cold %d", i)}
	}
	assert.Len(t, NewIndex(topics).DidYouMean("cold"), 5)
}

func TestWantsDidYouMean(t *testing.T) {
	assert.True(t, WantsDidYouMean("diabetees", 0))
	assert.True(t, WantsDidYouMean("flu", 4))
	assert.False(t, WantsDidYouMean("flu", 5))
	assert.False(t, WantsDidYouMean("ab", 0))
}
