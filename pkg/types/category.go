// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Category is the derived classification of a topic. It is never stored on
// a Topic; the classifier recomputes it from the topic's own fields.
type Category string

const (
	// CategoryAll is the catch-all browse selection, not a classifier output.
	CategoryAll Category = "all"

	CategoryMedications Category = "medications"
	CategoryTests       Category = "tests"
	CategoryDiseases    Category = "diseases"
	CategorySymptoms    Category = "symptoms"
	CategoryWellness    Category = "wellness"
	CategoryRecipes     Category = "recipes"
)

// Categories lists every classifier output in tie-break order.
var Categories = []Category{
	CategoryMedications,
	CategoryTests,
	CategoryDiseases,
	CategorySymptoms,
	CategoryWellness,
	CategoryRecipes,
}

// CategoryInfo carries display metadata for a category.
type CategoryInfo struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

var categoryInfo = map[Category]CategoryInfo{
	CategoryAll:         {"All Topics", "Browse all health topics, articles, and resources."},
	CategoryMedications: {"Medications & Supplements", "Learn about frequently prescribed medications and popular dietary supplements."},
	CategoryTests:       {"Tests & Procedures", "Find detailed information about medical tests and procedures, including what to expect and how to prepare."},
	CategoryDiseases:    {"Diseases & Conditions", "Learn about frequently diagnosed medical conditions and their treatments."},
	CategorySymptoms:    {"Symptoms", "Identify and understand various symptoms, their potential causes, and when to seek medical care."},
	CategoryWellness:    {"General Health", "Explore wellness, prevention, and healthy living tips."},
	CategoryRecipes:     {"Health Recipes", "Discover nutritious recipes and healthy eating ideas."},
}

// Info returns display metadata, falling back to the catch-all entry for
// unknown categories.
func (c Category) Info() CategoryInfo {
	if info, ok := categoryInfo[c]; ok {
		return info
	}
	return categoryInfo[CategoryAll]
}

// Valid reports whether c is CategoryAll or one of the classifier outputs.
func (c Category) Valid() bool {
	_, ok := categoryInfo[c]
	return ok
}

// ParseCategory maps user input onto a Category. Empty input selects
// CategoryAll. The boolean is false for unknown names.
func ParseCategory(s string) (Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryAll, true
	}
	c := Category(s)
	return c, c.Valid()
}
