// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		topic types.Topic
		want  types.Category
	}{
		{"no signal defaults to diseases", types.Topic{Title: "Zzz"}, types.CategoryDiseases},
		{"symptom group", types.Topic{Title: "Fever", Groups: []string{"Symptoms"}}, types.CategorySymptoms},
		{"drug group", types.Topic{Title: "Insulin", Groups: []string{"Drugs and Supplements"}}, types.CategoryMedications},
		{"test group", types.Topic{Title: "A1C", Groups: []string{"Diagnostic Tests"}}, types.CategoryTests},
		{"lab-test locator", types.Topic{Title: "Glucose", Locator: "https://medlineplus.gov/lab-tests/glucose/"}, types.CategoryTests},
		{"druginfo locator", types.Topic{Title: "Metformin", Locator: "https://medlineplus.gov/druginfo/meds/a696005.html"}, types.CategoryMedications},
		{"recipe title", types.Topic{Title: "Bake with oats"}, types.CategoryRecipes},
		{"title test keyword", types.Topic{Title: "Blood test"}, types.CategoryTests},
		{
			"group outweighs title",
			types.Topic{Title: "Vitamin D deficiency disorder", Groups: []string{"Conditions"}},
			// diseases 5+2 = 7 beats medications 3
			types.CategoryDiseases,
		},
		{
			"tie goes to earlier category",
			// medications 3 (title) vs tests 3 (title)
			types.Topic{Title: "Drug test"},
			types.CategoryMedications,
		},
		{
			"encyclopedia group plus ency path",
			// diseases 3 + 2
			types.Topic{Title: "Cough", Groups: []string{"Medical Encyclopedia"}, Locator: "https://medlineplus.gov/ency/article/003072.htm"},
			types.CategoryDiseases,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.topic))
		})
	}
}

func TestClassifyIsTotal(t *testing.T) {
	topics := []types.Topic{
		{},
		{Title: "   "},
		{Groups: []string{""}},
		{Title: "Pregnancy week 12", Locator: "/pregnancy/"},
		{Title: "Healthy snack tips", Groups: []string{"Food and Nutrition"}},
	}
	for _, topic := range topics {
		got := Classify(topic)
		assert.Contains(t, types.Categories, got, "topic %+v", topic)
	}
}

func TestScoresAreAdditive(t *testing.T) {
	topic := types.Topic{
		Title:   "Healthy recipe guide",
		Groups:  []string{"Recipes"},
		Locator: "https://medlineplus.gov/recipes/x.html",
	}
	scores := Scores(topic)

	// recipes: group 4 + locator 3 + title 2; wellness: title 2
	assert.Equal(t, 9, scores[types.CategoryRecipes])
	assert.Equal(t, 2, scores[types.CategoryWellness])
	assert.Equal(t, types.CategoryRecipes, Classify(topic))
}

func TestCounts(t *testing.T) {
	topics := []types.Topic{
		{Title: "Fever", Groups: []string{"Symptoms"}},
		{Title: "Insulin", Groups: []string{"Medications"}},
		{Title: "Asthma"},
	}
	counts := Counts(topics)

	assert.Equal(t, 3, counts[types.CategoryAll])
	assert.Equal(t, 1, counts[types.CategorySymptoms])
	assert.Equal(t, 1, counts[types.CategoryMedications])
	assert.Equal(t, 1, counts[types.CategoryDiseases])
	assert.Equal(t, 0, counts[types.CategoryRecipes])
}
