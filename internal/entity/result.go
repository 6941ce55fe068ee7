package entity

// ReconciliationResult reports whether subtotal+tax+tip agrees with the
// printed total. A missing total is a legitimate "can't verify" state:
// Ok=false with no delta.
type ReconciliationResult struct {
	Ok       bool     `json:"ok"`
	Delta    *float64 `json:"delta,omitempty"`
	Computed float64  `json:"computed"`
	Actual   float64  `json:"actual"`
}

// HeuristicsResult is the structured output for one receipt. Constructed
// once per call and returned to the caller; this core never persists it.
type HeuristicsResult struct {
	Merchant         string               `json:"merchant,omitempty"`
	Date             string               `json:"date,omitempty"` // ISO yyyy-mm-dd
	Items            []ParsedItem         `json:"items"`
	Discounts        []DiscountLine       `json:"discounts"`
	Subtotal         *float64             `json:"subtotal,omitempty"`
	Tax              *float64             `json:"tax,omitempty"`
	Tip              *float64             `json:"tip,omitempty"`
	Total            *float64             `json:"total,omitempty"`
	CurrencyCode     string               `json:"currency_code,omitempty"`
	Reconciliation   ReconciliationResult `json:"reconciliation"`
	LinesPairedRatio float32              `json:"lines_paired_ratio"`
	Confidence       float32              `json:"confidence"`
	NeedsReview      bool                 `json:"needs_review"`
	ShouldSkipLLM    bool                 `json:"should_skip_llm"`
}
