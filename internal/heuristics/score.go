package heuristics

import "github.com/chamchi6619/pantry-core/internal/entity"

// Signal weights. Five independent signals, equal weight, clamped to 1.
const (
	signalWeight = 0.2

	// reviewConfidenceFloor is the acceptance bar for showing the result
	// without flagging it.
	reviewConfidenceFloor = 0.7
	reviewRatioFloor      = 0.5

	// skipLLMConfidenceFloor is deliberately stricter than the review
	// bar: bypassing the paid fallback extractor requires more certainty
	// than merely accepting the result for the user to review.
	skipLLMConfidenceFloor = 0.8
	skipLLMRatioFloor      = 0.70

	strongRatio = 0.7
)

// Score combines presence and consistency signals into a 0-1 confidence.
func Score(r entity.HeuristicsResult) float32 {
	var score float32
	if r.Merchant != "" {
		score += signalWeight
	}
	if r.Date != "" {
		score += signalWeight
	}
	if r.Total != nil && *r.Total > 0 {
		score += signalWeight
	}
	if r.Reconciliation.Ok {
		score += signalWeight
	}
	if r.LinesPairedRatio > strongRatio {
		score += signalWeight
	}
	if score > 1 {
		score = 1
	}
	return score
}

// NeedsReview flags results a human (or the LLM fallback) should look at.
func NeedsReview(r entity.HeuristicsResult) bool {
	return !r.Reconciliation.Ok ||
		r.Confidence < reviewConfidenceFloor ||
		r.LinesPairedRatio < reviewRatioFloor
}

// ShouldSkipLLM gates the paid fallback call. Every structural signal must
// be present and consistent; this is a strictly stronger bar than merely
// not needing review.
func ShouldSkipLLM(r entity.HeuristicsResult) bool {
	return r.Merchant != "" &&
		r.Date != "" &&
		r.Total != nil && *r.Total > 0 &&
		r.LinesPairedRatio >= skipLLMRatioFloor &&
		r.Reconciliation.Ok &&
		r.Confidence >= skipLLMConfidenceFloor
}
