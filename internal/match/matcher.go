// Package match resolves a free-text item or ingredient name to a
// canonical catalog entry via tiered exact/alias/fuzzy matching.
package match

import (
	"math"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/chamchi6619/pantry-core/internal/entity"
)

// Tier scores. The substring "prefer longest" rule and the fuzzy 30%
// distance threshold mirror long-standing behavior and are not to be
// re-tuned without matching test evidence.
const (
	scoreExact       = 100
	scoreAlias       = 95
	scoreNamePlural  = 90
	scoreAliasPlural = 88
	scoreContainsIn  = 80 // canonical name occurs inside the query
	scoreContainedBy = 75 // query occurs inside the canonical name

	fuzzyDistanceRatio = 0.3
	fuzzyScoreCeiling  = 70

	substringMinLen      = 4
	substringMinLenShort = 3
)

// Matcher is stateless; one instance may serve any number of concurrent
// lookups. The catalog is supplied per call and never cached here.
type Matcher struct{}

// NewMatcher builds a Matcher. Construction is explicit so tests and
// callers always hold an isolated instance.
func NewMatcher() *Matcher { return &Matcher{} }

type candidate struct {
	itemID string
	name   string // normalized canonical name or alias
	alias  bool
}

// Match resolves name against the catalog, returning nil when no tier
// produces a hit. Callers must treat nil as "unmatched" and never invent a
// canonical id.
func (m *Matcher) Match(name string, items []entity.CanonicalItem) *entity.MatchResult {
	if IsJunk(name) {
		return nil
	}
	q := Normalize(name)
	if q == "" {
		return nil
	}

	cands := make([]candidate, 0, len(items)*2)
	for _, it := range items {
		cands = append(cands, candidate{itemID: it.ID, name: Normalize(it.Name)})
		for _, a := range it.Aliases {
			cands = append(cands, candidate{itemID: it.ID, name: Normalize(a), alias: true})
		}
	}

	if r := exactTier(q, cands); r != nil {
		return r
	}
	if r := pluralTier(q, cands); r != nil {
		return r
	}
	if r := substringTier(q, cands); r != nil {
		return r
	}
	return fuzzyTier(q, cands)
}

func exactTier(q string, cands []candidate) *entity.MatchResult {
	// canonical names outrank aliases at equal tier
	for _, alias := range []bool{false, true} {
		for _, c := range cands {
			if c.alias != alias || c.name != q {
				continue
			}
			score, tier := scoreExact, entity.MatchTierExact
			if alias {
				score, tier = scoreAlias, entity.MatchTierAlias
			}
			return result(c, tier, score)
		}
	}
	return nil
}

// pluralTier handles +s and +es symmetrically: either side may carry the
// suffix.
func pluralTier(q string, cands []candidate) *entity.MatchResult {
	for _, alias := range []bool{false, true} {
		for _, c := range cands {
			if c.alias != alias || !pluralEqual(q, c.name) {
				continue
			}
			score, tier := scoreNamePlural, entity.MatchTierExact
			if alias {
				score, tier = scoreAliasPlural, entity.MatchTierAlias
			}
			return result(c, tier, score)
		}
	}
	return nil
}

func pluralEqual(a, b string) bool {
	for _, suffix := range []string{"s", "es"} {
		if a+suffix == b || b+suffix == a {
			return true
		}
	}
	return false
}

// substringTier prefers the longest matching canonical name so a short
// name ("water") cannot pre-empt a longer one ("watermelon") that also
// contains it.
func substringTier(q string, cands []candidate) *entity.MatchResult {
	var best *candidate
	bestScore := 0
	for i := range cands {
		c := &cands[i]
		if len(c.name) < substringMinLength(c.name) {
			continue
		}
		var score int
		switch {
		case len(q) > len(c.name) && strings.Contains(q, c.name):
			score = scoreContainsIn
		case len(q) >= substringMinLen && len(c.name) > len(q) && strings.Contains(c.name, q):
			score = scoreContainedBy
		default:
			continue
		}
		if best == nil || len(c.name) > len(best.name) ||
			(len(c.name) == len(best.name) && score > bestScore) {
			best, bestScore = c, score
		}
	}
	if best == nil {
		return nil
	}
	return result(*best, entity.MatchTierFuzzy, bestScore)
}

func substringMinLength(name string) int {
	if _, ok := shortWordAllowList[name]; ok {
		return substringMinLenShort
	}
	return substringMinLen
}

// fuzzyTier accepts an edit distance of at most 30% of the longer string.
// Ties on score break toward the smaller distance.
func fuzzyTier(q string, cands []candidate) *entity.MatchResult {
	var best *candidate
	bestScore, bestDist := -1, math.MaxInt
	for i := range cands {
		c := &cands[i]
		if c.name == "" {
			continue
		}
		maxLen := len(q)
		if len(c.name) > maxLen {
			maxLen = len(c.name)
		}
		d := levenshtein.Distance(q, c.name, nil)
		if float64(d) > math.Ceil(fuzzyDistanceRatio*float64(maxLen)) {
			continue
		}
		score := int(math.Round((1 - float64(d)/float64(maxLen)) * fuzzyScoreCeiling))
		if score > bestScore || (score == bestScore && d < bestDist) {
			best, bestScore, bestDist = c, score, d
		}
	}
	if best == nil {
		return nil
	}
	return result(*best, entity.MatchTierFuzzy, bestScore)
}

func result(c candidate, tier entity.MatchTier, score int) *entity.MatchResult {
	return &entity.MatchResult{
		CanonicalItemID: c.itemID,
		ConfidenceTier:  tier,
		MatchedName:     c.name,
		Score:           uint8(score),
	}
}
