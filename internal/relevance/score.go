// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package relevance scores a topic against a cleaned query and its filters.
// A score of zero excludes the topic from results. Scores are pure: the
// same topic, query, filters, and reference time always give the same
// score.
package relevance

import (
	"math"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/EshwaranandB/medkit.ai/internal/classify"
	"github.com/EshwaranandB/medkit.ai/internal/query"
	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

// Heuristic weights. They are tuned against the MedlinePlus dataset and
// have no derivation beyond that; treat them as tunable.
const (
	weightTitleExact    = 200
	weightTitlePrefix   = 90
	weightTitleContains = 80

	weightWordExact     = 25
	weightWordPrefix    = 20
	weightWordContains  = 15
	weightWordContained = 10
	weightFuzzyStrong   = 15
	weightFuzzyWeak     = 10
	fuzzyStrong         = 0.8
	fuzzyWeak           = 0.6

	weightAltExact     = 75
	weightAltPrefix    = 65
	weightAltContains  = 55
	weightAltContained = 45

	weightDescContains    = 45
	weightSummaryContains = 40
	weightSummaryWord     = 8
	weightDescWord        = 6
	weightProximity       = 5
	proximityWindow       = 100
	contentCap            = 40

	weightGroupExact   = 50
	weightGroupPartial = 25

	weightRelatedExact   = 35
	weightRelatedPartial = 20

	weightLocator = 25
)

// Result is a score together with the strongest signal behind it.
type Result struct {
	Score  int
	Reason types.MatchReason
}

// Scorer computes relevance. Now is the reference time for the recency
// bonus; the zero value uses the wall clock at each call, which makes
// scores depend on when they are computed.
type Scorer struct {
	Now time.Time
}

// Score returns the relevance of t for the cleaned query q under filters f.
func (s Scorer) Score(t types.Topic, q string, f query.Filters) Result {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return Result{}
	}
	if !Admits(t, f) {
		return Result{}
	}

	title := strings.ToLower(t.Title)
	desc := strings.ToLower(t.ShortDescription)
	summary := strings.ToLower(t.Summary)

	var (
		score  float64
		reason types.MatchReason
	)
	note := func(r types.MatchReason) {
		if reason == types.MatchNone {
			reason = r
		}
	}

	switch {
	case title == q:
		score += weightTitleExact
		note(types.MatchExactTitle)
	case strings.HasPrefix(title, q):
		score += weightTitlePrefix
		note(types.MatchTitlePrefix)
	case strings.Contains(title, q):
		score += weightTitleContains
		note(types.MatchTitle)
	}

	altScore := alternateNames(t.AlsoCalled, q)
	if altScore > 0 {
		score += altScore
		note(types.MatchAltName)
	}

	if fuzzy := wordMatches(q, title); fuzzy > 0 {
		score += fuzzy
		note(types.MatchFuzzyTitle)
	}

	content := 0.0
	if strings.Contains(desc, q) {
		content += weightDescContains
	}
	if strings.Contains(summary, q) {
		content += weightSummaryContains
	}
	content += multiWordContent(q, summary, desc)
	if content > 0 {
		score += content
		note(types.MatchContent)
	}

	if g := groupMatch(t.Groups, q); g > 0 {
		score += g
		note(types.MatchGroup)
	}

	if r := relatedMatch(t.RelatedTopics, q); r > 0 {
		score += r
		note(types.MatchRelated)
	}

	if strings.Contains(strings.ToLower(t.Locator), q) {
		score += weightLocator
		note(types.MatchLocator)
	}

	if bonus := s.secondary(t); bonus > 0 {
		score += bonus
		note(types.MatchSignals)
	}

	return Result{
		Score:  int(math.Floor(score + 0.5)),
		Reason: reason,
	}
}

// Admits reports whether t passes every active filter in f.
func Admits(t types.Topic, f query.Filters) bool {
	if f.Category != "" && string(classify.Classify(t)) != f.Category {
		return false
	}
	if f.Group != "" && !slices.ContainsFunc(t.Groups, func(g string) bool {
		return strings.EqualFold(g, f.Group)
	}) {
		return false
	}
	if f.Has != "" && !HasField(t, f.Has) {
		return false
	}
	if f.Exact != "" && !containsPhrase(t, strings.ToLower(f.Exact)) {
		return false
	}
	return true
}

// containsPhrase reports whether the lower-cased phrase occurs in the title,
// an alternate name, the short description, or the summary.
func containsPhrase(t types.Topic, phrase string) bool {
	if strings.Contains(strings.ToLower(t.Title), phrase) ||
		strings.Contains(strings.ToLower(t.ShortDescription), phrase) ||
		strings.Contains(strings.ToLower(t.Summary), phrase) {
		return true
	}
	return slices.ContainsFunc(t.AlsoCalled, func(a string) bool {
		return strings.Contains(strings.ToLower(a), phrase)
	})
}

// HasField reports whether the named topic field is present and non-empty.
// Both dataset spellings (also_called) and camelCase (alsoCalled) are
// accepted; unknown names are never present.
func HasField(t types.Topic, name string) bool {
	switch strings.ToLower(strings.ReplaceAll(name, "_", "")) {
	case "id":
		return t.ID != ""
	case "title":
		return t.Title != ""
	case "url", "locator":
		return t.Locator != ""
	case "metadesc", "shortdescription", "description":
		return t.ShortDescription != ""
	case "summary":
		return t.Summary != ""
	case "alsocalled":
		return len(t.AlsoCalled) > 0
	case "groups":
		return len(t.Groups) > 0
	case "relatedtopics":
		return len(t.RelatedTopics) > 0
	case "sites":
		return len(t.Sites) > 0
	case "lastupdated":
		return !t.LastUpdated.IsZero()
	case "viewcount":
		return t.ViewCount > 0
	}
	return false
}

// wordMatches scores every (query word, title word) pair. Words shorter than
// two runes are skipped; edit-distance similarity is tried only when both
// words are longer than three runes and no cheaper rule matched.
func wordMatches(q, title string) float64 {
	titleWords := strings.Fields(title)
	total := 0.0
	for _, qw := range strings.Fields(q) {
		ql := utf8.RuneCountInString(qw)
		if ql < 2 {
			continue
		}
		for _, tw := range titleWords {
			tl := utf8.RuneCountInString(tw)
			if tl < 2 {
				continue
			}
			switch {
			case tw == qw:
				total += weightWordExact
			case strings.HasPrefix(tw, qw):
				total += weightWordPrefix
			case strings.Contains(tw, qw):
				total += weightWordContains
			case strings.Contains(qw, tw):
				total += weightWordContained
			case ql > 3 && tl > 3:
				sim := WordSimilarity(qw, tw)
				if sim > fuzzyStrong {
					total += sim * weightFuzzyStrong
				} else if sim > fuzzyWeak {
					total += sim * weightFuzzyWeak
				}
			}
		}
	}
	return total
}

// alternateNames sums the best rule for each alternate name.
func alternateNames(alts []string, q string) float64 {
	total := 0.0
	for _, alt := range alts {
		a := strings.ToLower(alt)
		if a == "" {
			continue
		}
		switch {
		case a == q:
			total += weightAltExact
		case strings.HasPrefix(a, q):
			total += weightAltPrefix
		case strings.Contains(a, q):
			total += weightAltContains
		case strings.Contains(q, a):
			total += weightAltContained
		}
	}
	return total
}

// multiWordContent rewards each query word (longer than two runes) found in
// the summary or description, plus a proximity bonus when the next query
// word follows within proximityWindow bytes in the summary. It applies only
// to queries with more than one such word and is capped at contentCap.
func multiWordContent(q, summary, desc string) float64 {
	var words []string
	for _, w := range strings.Fields(q) {
		if utf8.RuneCountInString(w) > 2 {
			words = append(words, w)
		}
	}
	if len(words) < 2 {
		return 0
	}

	content, proximity := 0, 0
	for i, w := range words {
		if idx := strings.Index(summary, w); idx >= 0 {
			content += weightSummaryWord
			if i < len(words)-1 {
				next := strings.Index(summary[idx:], words[i+1])
				if next >= 0 && next < proximityWindow {
					proximity += weightProximity
				}
			}
		}
		if strings.Contains(desc, w) {
			content += weightDescWord
		}
	}
	return float64(min(content+proximity, contentCap))
}

// groupMatch gives the exact-membership bonus, or else the partial bonus for
// the first group that contains or is contained in the query.
func groupMatch(groups []string, q string) float64 {
	lower := make([]string, len(groups))
	for i, g := range groups {
		lower[i] = strings.ToLower(g)
	}
	if slices.Contains(lower, q) {
		return weightGroupExact
	}
	for _, g := range lower {
		if g == "" {
			continue
		}
		if strings.Contains(g, q) || strings.Contains(q, g) {
			return weightGroupPartial
		}
	}
	return 0
}

// relatedMatch mirrors groupMatch over related-topic titles.
func relatedMatch(related []types.RelatedTopic, q string) float64 {
	titles := make([]string, len(related))
	for i, rt := range related {
		titles[i] = strings.ToLower(rt.Title)
	}
	if slices.Contains(titles, q) {
		return weightRelatedExact
	}
	for _, rt := range titles {
		if rt == "" {
			continue
		}
		if strings.Contains(rt, q) || strings.Contains(q, rt) {
			return weightRelatedPartial
		}
	}
	return 0
}

// secondary adds the content-richness, recency, and popularity bonuses.
func (s Scorer) secondary(t types.Topic) float64 {
	bonus := 0

	switch n := utf8.RuneCountInString(t.Summary); {
	case n > 300:
		bonus += 8
	case n > 200:
		bonus += 5
	}

	switch n := len(t.RelatedTopics); {
	case n > 5:
		bonus += 5
	case n > 0:
		bonus += 3
	}

	switch n := len(t.Sites); {
	case n > 3:
		bonus += 4
	case n > 0:
		bonus += 2
	}

	if len(t.AlsoCalled) > 2 {
		bonus += 3
	}

	if !t.LastUpdated.IsZero() {
		now := s.Now
		if now.IsZero() {
			now = time.Now()
		}
		switch days := now.Sub(t.LastUpdated).Hours() / 24; {
		case days < 30:
			bonus += 3
		case days < 90:
			bonus += 2
		case days < 365:
			bonus += 1
		}
	}

	switch {
	case t.ViewCount > 1000:
		bonus += 2
	case t.ViewCount > 100:
		bonus += 1
	}

	return float64(bonus)
}
