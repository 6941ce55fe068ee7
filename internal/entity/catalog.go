package entity

// CanonicalItem is one entry in the externally owned item catalog.
// Read-only to this core.
type CanonicalItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Aliases  []string `json:"aliases,omitempty"`
	Category string   `json:"category,omitempty"`
}

// MatchTier labels which matching tier produced a result.
type MatchTier string

const (
	MatchTierExact MatchTier = "EXACT"
	MatchTierAlias MatchTier = "ALIAS"
	MatchTierFuzzy MatchTier = "FUZZY"
	MatchTierNone  MatchTier = "NONE"
)

// MatchResult links a free-text name to a canonical catalog entry.
// Produced per lookup; the matcher keeps no state between calls.
type MatchResult struct {
	CanonicalItemID string    `json:"canonical_item_id"`
	ConfidenceTier  MatchTier `json:"confidence_tier"`
	MatchedName     string    `json:"matched_name"`
	Score           uint8     `json:"score"` // 0-100
}
