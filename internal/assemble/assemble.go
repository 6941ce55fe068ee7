// Package assemble groups raw OCR blocks into logical receipt lines and
// pairs each line with its most plausible trailing price token.
package assemble

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/chamchi6619/pantry-core/internal/entity"
	"github.com/chamchi6619/pantry-core/internal/locale"
)

// pricePattern is one entry in the ordered price-token table. Order is the
// tie-break for lines carrying multiple numeric tokens: the first pattern
// in the table that matches, scanning from the rightmost block inward,
// wins. Each pattern is tried against whole blocks first, then against a
// block's trailing text for OCR providers that merge a line into one block.
type pricePattern struct {
	whole    *regexp.Regexp
	tail     *regexp.Regexp
	group    int  // submatch holding the numeric text
	negate   bool // token is a deduction regardless of printed sign
	weighted bool // "<qty> @ <unit>" produce form
	percent  bool // "<n>% OFF" form, no absolute amount
}

func newPattern(body string, p pricePattern) pricePattern {
	p.whole = regexp.MustCompile(`(?i)^` + body + `$`)
	p.tail = regexp.MustCompile(`(?i)(?:^|\s)` + body + `$`)
	return p
}

var pricePatterns = []pricePattern{
	// plain decimal, optional currency symbol and tax flag
	newPattern(`([$€£]?\d{1,4}[.,]\d{2})\s*[FNT]?`, pricePattern{group: 1}),
	// European grouped form (1.234,56 / 12.500)
	newPattern(`([$€£]?\d{1,3}(?:[.,]\d{3})+(?:[.,]\d{2})?)`, pricePattern{group: 1}),
	// parenthesized negative
	newPattern(`(\([$€£]?\d+[.,]\d{2}\))`, pricePattern{group: 1}),
	// trailing-minus negative
	newPattern(`([$€£]?\d+[.,]\d{2}-)`, pricePattern{group: 1}),
	// weighted produce: 2.45 LB @ $0.69
	newPattern(`(\d+(?:[.,]\d+)?)\s*(LB|KG)?\s*@\s*\$?(\d+(?:[.,]\d{1,3})?)(?:\s*/?\s*(?:LB|KG))?`, pricePattern{weighted: true}),
	// COUPON 1.50
	newPattern(`COUPON\s+\$?(\d+[.,]\d{2})`, pricePattern{group: 1, negate: true}),
	// 20% OFF
	newPattern(`(\d+(?:[.,]\d+)?)%\s*OFF`, pricePattern{group: 1, percent: true}),
}

// Assemble groups blocks by line index, orders each group left to right
// and produces one ParsedLine per index. A line with no numeric match
// still yields a ParsedLine with a nil price.
func Assemble(blocks []entity.OcrBlock, norm *locale.Normalizer) []entity.ParsedLine {
	groups := make(map[uint32][]entity.OcrBlock)
	for _, b := range blocks {
		groups[b.LineIndex] = append(groups[b.LineIndex], b)
	}
	indexes := make([]uint32, 0, len(groups))
	for idx := range groups {
		indexes = append(indexes, idx)
	}
	sort.Slice(indexes, func(i, j int) bool { return indexes[i] < indexes[j] })

	lines := make([]entity.ParsedLine, 0, len(indexes))
	for _, idx := range indexes {
		group := groups[idx]
		sort.SliceStable(group, func(i, j int) bool { return group[i].BBox.X < group[j].BBox.X })
		lines = append(lines, assembleLine(idx, group, norm))
	}
	return lines
}

func assembleLine(idx uint32, group []entity.OcrBlock, norm *locale.Normalizer) entity.ParsedLine {
	priceAt := -1
	prefix := "" // leading text of a block whose tail matched
	var priceText string
	var price *float64

scan:
	for _, p := range pricePatterns {
		for i := len(group) - 1; i >= 0; i-- {
			text := strings.TrimSpace(group[i].Text)
			if m := p.whole.FindStringSubmatch(text); m != nil {
				priceAt, priceText, price = i, text, resolvePrice(p, m, norm)
				break scan
			}
		}
	}
	if priceAt < 0 {
		// No block is a price token on its own; look for one merged into
		// a block's trailing text.
	tailScan:
		for _, p := range pricePatterns {
			for i := len(group) - 1; i >= 0; i-- {
				text := strings.TrimSpace(group[i].Text)
				if loc := p.tail.FindStringSubmatchIndex(text); loc != nil {
					m := p.tail.FindStringSubmatch(text)
					priceAt = i
					prefix = strings.TrimSpace(text[:loc[0]])
					priceText = strings.TrimSpace(text[loc[0]:])
					price = resolvePrice(p, m, norm)
					break tailScan
				}
			}
		}
	}

	parts := make([]string, 0, len(group)+1)
	for i, b := range group {
		if i == priceAt {
			if prefix != "" {
				parts = append(parts, prefix)
			}
			continue
		}
		parts = append(parts, b.Text)
	}

	return entity.ParsedLine{
		Text:      locale.CollapseSpaces(strings.Join(parts, " ")),
		PriceText: priceText,
		Price:     price,
		LineIndex: idx,
	}
}

func resolvePrice(p pricePattern, m []string, norm *locale.Normalizer) *float64 {
	switch {
	case p.weighted:
		qty, okQ := norm.NormalizeNumber(m[1])
		unit, okU := norm.NormalizeNumber(m[3])
		if !okQ || !okU {
			return nil
		}
		v := round2(qty * unit)
		return &v
	case p.percent:
		// Relative deduction with no absolute amount; the token pairs the
		// line but carries no price of its own.
		return nil
	default:
		v, ok := norm.NormalizeNumber(m[p.group])
		if !ok {
			return nil
		}
		if p.negate && v > 0 {
			v = -v
		}
		return &v
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
