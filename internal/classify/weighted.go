package classify

import (
	"math"
	"regexp"
	"strings"

	"github.com/chamchi6619/pantry-core/internal/entity"
	"github.com/chamchi6619/pantry-core/internal/locale"
)

// reWeighted matches "<qty>[ LB|KG]? @ $<unit-price>" anywhere in a line.
var reWeighted = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(LB|KG)?\s*@\s*\$?(\d+(?:[.,]\d{1,3})?)`)

// ResolveWeighted expands a produce-style "qty @ unit-price" line into a
// normalized item. Lines without the pattern fall back to a unit item
// (qty=1, unit "ea") at the paired price.
func ResolveWeighted(ln entity.ParsedLine, norm *locale.Normalizer) entity.ParsedItem {
	full := locale.CollapseSpaces(strings.TrimSpace(ln.Text + " " + ln.PriceText))

	if loc := reWeighted.FindStringSubmatchIndex(full); loc != nil {
		m := reWeighted.FindStringSubmatch(full)
		qty, okQ := norm.NormalizeNumber(m[1])
		unitPrice, okU := norm.NormalizeNumber(m[3])
		if okQ && okU && qty > 0 {
			unit := strings.ToLower(m[2])
			if unit == "" {
				unit = "lb"
			}
			name := locale.CollapseSpaces(full[:loc[0]] + " " + full[loc[1]:])
			if name == "" {
				name = ln.Text
			}
			total := round2(qty * unitPrice)
			return entity.ParsedItem{
				RawName:    name,
				Qty:        qty,
				Unit:       unit,
				PriceEach:  &unitPrice,
				PriceTotal: total,
				Confidence: 0.9,
			}
		}
	}

	var total float64
	if ln.Price != nil {
		total = math.Abs(*ln.Price)
	}
	return entity.ParsedItem{
		RawName:    ln.Text,
		Qty:        1,
		Unit:       "ea",
		PriceTotal: total,
		Confidence: 0.8,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
