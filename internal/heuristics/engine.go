// Package heuristics runs the deterministic receipt pipeline: assemble,
// classify, resolve, reconcile, score. It never returns an error for
// malformed receipt content; failures degrade to absent fields, lower
// confidence and needs_review=true.
package heuristics

import (
	"log/slog"
	"math"
	"strings"

	"github.com/chamchi6619/pantry-core/internal/assemble"
	"github.com/chamchi6619/pantry-core/internal/classify"
	"github.com/chamchi6619/pantry-core/internal/entity"
	"github.com/chamchi6619/pantry-core/internal/locale"
	"github.com/chamchi6619/pantry-core/internal/reconcile"
	"github.com/chamchi6619/pantry-core/internal/storeformat"
)

// Engine is a pure, synchronous pipeline over one receipt's OCR blocks.
// Safe for concurrent use: all state is the immutable locale normalizer.
type Engine struct {
	norm   *locale.Normalizer
	logger *slog.Logger
}

// NewEngine builds an Engine for one locale. The normalizer is required;
// a nil logger falls back to slog.Default().
func NewEngine(norm *locale.Normalizer, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{norm: norm, logger: logger}
}

// ParseReceipt produces the structured, reconciled representation of one
// receipt. Empty input yields an empty result with needs_review=true.
func (e *Engine) ParseReceipt(blocks []entity.OcrBlock) entity.HeuristicsResult {
	if len(blocks) == 0 {
		return entity.HeuristicsResult{
			Items:       []entity.ParsedItem{},
			Discounts:   []entity.DiscountLine{},
			NeedsReview: true,
		}
	}

	e.logger.Debug("heuristics.start", "blocks", len(blocks), "locale", e.norm.Tag())

	lines := assemble.Assemble(blocks, e.norm)
	merchant := findMerchant(lines)
	date := e.findDate(lines)

	filtered := dropGarbage(lines)
	layout := storeformat.DetectLayout(filtered)
	cls := classify.Classify(filtered, blocks, e.norm)

	items, candidates, paired := e.resolveItems(layout, filtered, cls)
	for i := range items {
		items[i].RawName = storeformat.CorrectName(items[i].RawName)
	}

	subtotal := pickSubtotal(cls.Subtotal, items, cls.Discounts)
	recon := reconcile.Reconcile(subtotal, deref(cls.Tax), deref(cls.Tip), cls.Total)

	ratio := pairedRatio(paired, candidates)
	res := entity.HeuristicsResult{
		Merchant:         merchant,
		Date:             date,
		Items:            items,
		Discounts:        ensureDiscounts(cls.Discounts),
		Subtotal:         &subtotal,
		Tax:              cls.Tax,
		Tip:              cls.Tip,
		Total:            cls.Total,
		CurrencyCode:     e.detectCurrency(lines),
		Reconciliation:   recon,
		LinesPairedRatio: ratio,
	}
	res.Confidence = Score(res)
	res.NeedsReview = NeedsReview(res)
	res.ShouldSkipLLM = ShouldSkipLLM(res)

	e.logger.Info("heuristics.ok",
		"layout", layout.String(),
		"items", len(items),
		"paired_ratio", ratio,
		"reconciled", recon.Ok,
		"confidence", res.Confidence,
		"needs_review", res.NeedsReview,
	)
	return res
}

// resolveItems picks the extraction path the detected layout calls for.
func (e *Engine) resolveItems(layout storeformat.Layout, lines []entity.ParsedLine, cls classify.Result) ([]entity.ParsedItem, int, int) {
	if strategy := storeformat.ForLayout(layout); strategy != nil {
		items, candidates := strategy.Extract(lines)
		if items == nil {
			items = []entity.ParsedItem{}
		}
		return items, candidates, len(items)
	}

	items := make([]entity.ParsedItem, 0, len(cls.Items))
	for _, ln := range cls.Items {
		items = append(items, classify.ResolveWeighted(ln, e.norm))
	}
	return items, cls.ItemCandidates, cls.Paired
}

func (e *Engine) findDate(lines []entity.ParsedLine) string {
	for _, ln := range lines {
		if d, ok := e.norm.NormalizeDate(ln.Text); ok {
			return d
		}
		if d, ok := e.norm.NormalizeDate(ln.PriceText); ok {
			return d
		}
	}
	return ""
}

func (e *Engine) detectCurrency(lines []entity.ParsedLine) string {
	var sb strings.Builder
	for _, ln := range lines {
		sb.WriteString(ln.PriceText)
		sb.WriteByte(' ')
	}
	return e.norm.DetectCurrency(sb.String())
}

// findMerchant takes the first plausible unpriced line near the top:
// receipts print the store name before anything numeric.
func findMerchant(lines []entity.ParsedLine) string {
	const window = 6
	seen := 0
	for _, ln := range lines {
		if seen >= window {
			break
		}
		seen++
		if ln.Price != nil || storeformat.IsGarbage(ln.Text) {
			continue
		}
		text := locale.CollapseSpaces(ln.Text)
		if len(text) < 3 || isMostlyDigits(text) {
			continue
		}
		return text
	}
	return ""
}

func isMostlyDigits(s string) bool {
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits*2 > len(s)
}

func dropGarbage(lines []entity.ParsedLine) []entity.ParsedLine {
	out := make([]entity.ParsedLine, 0, len(lines))
	for _, ln := range lines {
		if ln.Price == nil && storeformat.IsGarbage(ln.Text) {
			continue
		}
		out = append(out, ln)
	}
	return out
}

// pickSubtotal prefers the printed SUBTOTAL line; otherwise it is computed
// from items minus discount magnitudes.
func pickSubtotal(printed *float64, items []entity.ParsedItem, discounts []entity.DiscountLine) float64 {
	if printed != nil {
		return *printed
	}
	var sum float64
	for _, it := range items {
		sum += it.PriceTotal
	}
	for _, d := range discounts {
		sum -= d.Amount
	}
	return math.Round(sum*100) / 100
}

func pairedRatio(paired, candidates int) float32 {
	if candidates == 0 {
		return 0
	}
	return float32(paired) / float32(candidates)
}

func ensureDiscounts(d []entity.DiscountLine) []entity.DiscountLine {
	if d == nil {
		return []entity.DiscountLine{}
	}
	return d
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
