// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/EshwaranandB/medkit.ai/internal/query"
	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

var refTime = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func TestScoreExactTitle(t *testing.T) {
	topic := types.Topic{ID: "1", Title: "Fever", Groups: []string{"Symptoms"}}
	got := Scorer{Now: refTime}.Score(topic, "fever", query.Filters{})

	// title 200 + word 25
	assert.Equal(t, 225, got.Score)
	assert.Equal(t, types.MatchExactTitle, got.Reason)
}

func TestScoreEmptyQuery(t *testing.T) {
	topic := types.Topic{Title: "Fever"}
	assert.Equal(t, Result{}, Scorer{}.Score(topic, "", query.Filters{}))
	assert.Equal(t, Result{}, Scorer{}.Score(topic, "   ", query.Filters{}))
}

func TestScoreIsDeterministic(t *testing.T) {
	topic := types.Topic{
		Title:       "Type 2 diabetes",
		Summary:     "Diabetes is a disease in which blood glucose levels are too high.",
		Groups:      []string{"Metabolic Problems"},
		LastUpdated: refTime.AddDate(0, 0, -40),
	}
	s := Scorer{Now: refTime}
	first := s.Score(topic, "blood glucose", query.Filters{})
	for range 5 {
		assert.Equal(t, first, s.Score(topic, "blood glucose", query.Filters{}))
	}
}

func TestScoreFuzzyRounding(t *testing.T) {
	topic := types.Topic{Title: "Diabetes"}
	got := Scorer{Now: refTime}.Score(topic, "diabetees", query.Filters{})

	// 8/9 * 15 = 13.33
	assert.Equal(t, 13, got.Score)
	assert.Equal(t, types.MatchFuzzyTitle, got.Reason)
}

func TestScoreContentCap(t *testing.T) {
	topic := types.Topic{
		Title:            "Qq",
		Summary:          "pressure of blood in the heart",
		ShortDescription: "heart blood pressure",
	}
	got := Scorer{Now: refTime}.Score(topic, "blood pressure heart", query.Filters{})

	// 3*8 + 3*6 + 5 proximity = 47, capped
	assert.Equal(t, 40, got.Score)
	assert.Equal(t, types.MatchContent, got.Reason)
}

func TestScoreAlternateName(t *testing.T) {
	topic := types.Topic{Title: "Heart attack", AlsoCalled: []string{"Myocardial infarction"}}
	got := Scorer{Now: refTime}.Score(topic, "myocardial infarction", query.Filters{})

	assert.GreaterOrEqual(t, got.Score, 75)
	assert.Equal(t, types.MatchAltName, got.Reason)
}

func TestScoreSecondarySignals(t *testing.T) {
	related := make([]types.RelatedTopic, 6)
	for i := range related {
		related[i] = types.RelatedTopic{Title: "Other"}
	}
	topic := types.Topic{
		Title:         "Asthma",
		RelatedTopics: related,
		Sites:         []types.Site{{Title: "CDC"}},
		LastUpdated:   refTime.AddDate(0, 0, -10),
		ViewCount:     500,
	}
	got := Scorer{Now: refTime}.Score(topic, "asthma", query.Filters{})

	// 225 + related 5 + sites 2 + recency 3 + views 1
	assert.Equal(t, 236, got.Score)
	assert.Equal(t, types.MatchExactTitle, got.Reason)
}

func TestScoreGroupAndRelated(t *testing.T) {
	topic := types.Topic{
		Title:         "Qq",
		Groups:        []string{"Asthma"},
		RelatedTopics: []types.RelatedTopic{{Title: "Asthma in Children"}},
	}
	got := Scorer{Now: refTime}.Score(topic, "asthma", query.Filters{})

	// group exact 50 + related partial 20
	assert.Equal(t, 70, got.Score)
	assert.Equal(t, types.MatchGroup, got.Reason)
}

// --- Filters ---

func TestScoreCategoryFilterExcludes(t *testing.T) {
	labTest := types.Topic{
		Title:   "Glucose panel",
		Summary: "Measures glucose while on insulin.",
		Groups:  []string{"Diagnostic Tests"},
		Locator: "https://medlineplus.gov/lab-tests/glucose/",
	}
	drug := types.Topic{
		Title:  "Insulin",
		Groups: []string{"Drugs and Supplements"},
	}
	parsed := query.Parse("category:medications insulin")
	s := Scorer{Now: refTime}

	assert.Zero(t, s.Score(labTest, parsed.Text, parsed.Filters).Score)
	assert.Positive(t, s.Score(drug, parsed.Text, parsed.Filters).Score)
}

func TestScoreFilters(t *testing.T) {
	topic := types.Topic{
		Title:   "Hypertension",
		Summary: "High blood pressure strains the heart.",
		Groups:  []string{"Heart and Circulation"},
	}
	tests := []struct {
		name    string
		filters query.Filters
		keep    bool
	}{
		{"no filters", query.Filters{}, true},
		{"group matches case-insensitively", query.Filters{Group: "heart and circulation"}, true},
		{"group must match whole tag", query.Filters{Group: "heart"}, false},
		{"has summary", query.Filters{Has: "summary"}, true},
		{"has missing field", query.Filters{Has: "sites"}, false},
		{"has unknown field", query.Filters{Has: "color"}, false},
		{"exact phrase present", query.Filters{Exact: "Blood Pressure"}, true},
		{"exact phrase absent", query.Filters{Exact: "low sodium"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scorer{Now: refTime}.Score(topic, "hypertension", tt.filters)
			if tt.keep {
				assert.Positive(t, got.Score)
			} else {
				assert.Zero(t, got.Score)
			}
		})
	}
}

func TestHasField(t *testing.T) {
	topic := types.Topic{
		ID:         "7",
		Title:      "Asthma",
		AlsoCalled: []string{"Reactive airway disease"},
		Sites:      []types.Site{},
	}
	assert.True(t, HasField(topic, "alsoCalled"))
	assert.True(t, HasField(topic, "also_called"))
	assert.True(t, HasField(topic, "ID"))
	assert.False(t, HasField(topic, "sites"))
	assert.False(t, HasField(topic, "summary"))
	assert.False(t, HasField(topic, "last_updated"))
	assert.False(t, HasField(topic, "nonsense"))
}
