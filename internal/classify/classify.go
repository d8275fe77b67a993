// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify assigns every topic exactly one category using a
// weighted heuristic over group tags, locator paths, and title keywords.
package classify

import (
	"regexp"
	"slices"
	"strings"

	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

// groupRule adds weight when any of a topic's lower-cased groups matches.
type groupRule struct {
	category types.Category
	weight   int
	match    func(group string) bool
}

func oneOf(names ...string) func(string) bool {
	return func(g string) bool { return slices.Contains(names, g) }
}

var groupRules = []groupRule{
	{types.CategoryMedications, 5, oneOf("drugs and supplements", "medications", "supplements")},
	{types.CategoryTests, 5, oneOf("diagnostic tests", "medical tests", "procedures", "tests and procedures")},
	{types.CategoryDiseases, 3, oneOf("medical encyclopedia")},
	{types.CategoryDiseases, 5, oneOf("diseases", "conditions", "cancers", "infections", "disease", "condition", "syndromes")},
	{types.CategorySymptoms, 4, func(g string) bool { return strings.Contains(g, "symptom") }},
	{types.CategoryWellness, 3, oneOf(
		"wellness", "prevention", "general health", "personal health issues", "social/family issues",
		"older adults", "children and teenagers", "mental health and behavior",
	)},
	{types.CategoryRecipes, 4, oneOf("food and nutrition", "recipes", "nutrition")},
}

// locatorRule adds weight when the lower-cased locator contains any marker.
type locatorRule struct {
	category types.Category
	weight   int
	markers  []string
}

var locatorRules = []locatorRule{
	{types.CategoryMedications, 4, []string{"/druginfo/", "/herb/"}},
	{types.CategoryTests, 4, []string{"/lab-tests/"}},
	{types.CategoryDiseases, 2, []string{"/ency/"}},
	{types.CategorySymptoms, 2, []string{"/symptom"}},
	{types.CategoryRecipes, 3, []string{"/nutrition", "/recipes"}},
	{types.CategoryWellness, 3, []string{"/health/"}},
	{types.CategoryWellness, 2, []string{"/pregnancy", "/babies", "/women"}},
}

// titleRule adds weight when the lower-cased title matches a keyword pattern.
// Patterns anchor only the trailing word boundary, so suffix hits count:
// "infect" matches the "ct" keyword and "cookbook" matches nothing.
type titleRule struct {
	category types.Category
	weight   int
	pattern  *regexp.Regexp
}

var titleRules = []titleRule{
	{types.CategoryTests, 3, regexp.MustCompile(`(test|screening|biopsy|panel|imaging|scan|x-ray|mri|ct|ultrasound)\b`)},
	{types.CategoryMedications, 3, regexp.MustCompile(`(vitamin|mineral|supplement|drug|tablet|capsule|injection|medication)\b`)},
	{types.CategorySymptoms, 2, regexp.MustCompile(`(symptom|signs)\b`)},
	{types.CategoryDiseases, 2, regexp.MustCompile(`(disease|condition|syndrome|disorder)\b`)},
	{types.CategoryWellness, 2, regexp.MustCompile(`(calorie|snack|diet|meal|recipe|food|nutrition|tips|guide|rule)\b`)},
	{types.CategoryRecipes, 2, regexp.MustCompile(`(recipe|cook|bake)\b`)},
	{types.CategoryWellness, 2, regexp.MustCompile(`(pregnancy|prenatal|baby|fetal|week)\b`)},
}

// Scores returns the accumulated weight per category. Rules are additive
// and independent of evaluation order.
func Scores(t types.Topic) map[types.Category]int {
	scores := make(map[types.Category]int, len(types.Categories))
	for _, c := range types.Categories {
		scores[c] = 0
	}

	groups := make([]string, len(t.Groups))
	for i, g := range t.Groups {
		groups[i] = strings.ToLower(g)
	}
	for _, rule := range groupRules {
		if slices.ContainsFunc(groups, rule.match) {
			scores[rule.category] += rule.weight
		}
	}

	locator := strings.ToLower(t.Locator)
	for _, rule := range locatorRules {
		for _, m := range rule.markers {
			if strings.Contains(locator, m) {
				scores[rule.category] += rule.weight
				break
			}
		}
	}

	title := strings.ToLower(t.Title)
	for _, rule := range titleRules {
		if rule.pattern.MatchString(title) {
			scores[rule.category] += rule.weight
		}
	}

	return scores
}

// Classify returns the category with the strictly highest score. Ties go to
// the category that comes first in types.Categories; a topic with no signal
// at all is a disease.
func Classify(t types.Topic) types.Category {
	scores := Scores(t)
	best, bestScore := types.CategoryDiseases, 0
	for _, c := range types.Categories {
		if scores[c] > bestScore {
			best, bestScore = c, scores[c]
		}
	}
	return best
}

// Counts tallies topics per category, including a CategoryAll total.
func Counts(topics []types.Topic) map[types.Category]int {
	counts := make(map[types.Category]int, len(types.Categories)+1)
	counts[types.CategoryAll] = len(topics)
	for _, c := range types.Categories {
		counts[c] = 0
	}
	for _, t := range topics {
		counts[Classify(t)]++
	}
	return counts
}
