// Package classify tags assembled receipt lines as item, discount, tax,
// tip, total or noise using ordered pattern and exclusion tables.
package classify

import (
	"math"
	"regexp"
	"strings"

	"github.com/chamchi6619/pantry-core/internal/entity"
	"github.com/chamchi6619/pantry-core/internal/locale"
)

var (
	reTax = regexp.MustCompile(`(?i)\b(?:\d+(?:\.\d+)?%\s*)?(STATE\s+TAX|SALES\s+TAX|PST|GST|HST|VAT|TAX)\b`)
	reTip = regexp.MustCompile(`(?i)\b(TIP|GRATUITY)\b`)

	reSubtotal = regexp.MustCompile(`(?i)\bSUB\s*[- ]?\s*TOTAL\b`)
	reDiscount = regexp.MustCompile(`(?i)\b(COUPON|DISCOUNT|SAVINGS|OFF|REBATE)\b`)

	// payment/tender lines are never items
	rePayment = regexp.MustCompile(`(?i)\b(CASH|CHANGE|CREDIT|DEBIT|VISA|MASTERCARD|AMEX|DISCOVER|TEND(?:ER)?|PAYMENT|CARD)\b`)
)

// totalKeywords is in priority order: the more specific keyword wins over
// a bare TOTAL.
var totalKeywords = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bGRAND\s+TOTAL\b`),
	regexp.MustCompile(`(?i)\bAMOUNT\s+DUE\b`),
	regexp.MustCompile(`(?i)\bBALANCE\s+DUE\b`),
	regexp.MustCompile(`(?i)\bTOTAL\b`),
}

// totalExclusions keep loyalty-program totals from being mistaken for the
// money total.
var totalExclusions = regexp.MustCompile(`(?i)\b(POINTS|BALANCE|REWARDS?|SAVINGS|LOYALTY|EARNED|ACCUMULATED)\b`)

// adjacentPriceMaxPx bounds how far right of a total label a detached
// numeric block may sit and still count as that label's amount.
const adjacentPriceMaxPx = 120

// Result is the outcome of classifying one receipt's lines.
type Result struct {
	Items     []entity.ParsedLine
	Discounts []entity.DiscountLine
	Subtotal  *float64 // printed SUBTOTAL line, if any
	Tax       *float64 // sum over all tax lines
	Tip       *float64
	Total     *float64

	// ItemCandidates counts lines that looked like items whether or not a
	// price was paired; Paired counts those that carried one.
	ItemCandidates int
	Paired         int
}

// Classify splits assembled lines into items, discounts, tax, tip and
// total. Blocks are consulted only for the detached-price rule on total
// candidates; norm parses any adjacent numeric token found that way.
func Classify(lines []entity.ParsedLine, blocks []entity.OcrBlock, norm *locale.Normalizer) Result {
	var res Result

	total, totalIdx := findTotal(lines, blocks, norm)
	res.Total = total

	for i, ln := range lines {
		if i == totalIdx {
			continue
		}
		switch {
		case reSubtotal.MatchString(ln.Text):
			if ln.Price != nil && res.Subtotal == nil {
				v := *ln.Price
				res.Subtotal = &v
			}
		case reTax.MatchString(ln.Text):
			if ln.Price != nil {
				// Multiple tax lines (GST+PST jurisdictions) accumulate.
				v := *ln.Price
				if res.Tax != nil {
					v += *res.Tax
				}
				res.Tax = &v
			}
		case reTip.MatchString(ln.Text):
			if ln.Price != nil && res.Tip == nil {
				v := *ln.Price
				res.Tip = &v
			}
		case isDiscount(ln):
			if d, ok := toDiscount(ln); ok {
				res.Discounts = append(res.Discounts, d)
			}
		case isTotalKeyword(ln.Text):
			// A lower-priority total line (or one whose amount was never
			// found); not an item either way.
		case totalExclusions.MatchString(ln.Text):
			// loyalty/points chatter is noise
		case rePayment.MatchString(ln.Text):
			// tender lines are noise
		default:
			if ln.Text == "" {
				// price-only lines belong to multi-line layouts; the
				// store-format strategies pick those up
				continue
			}
			res.ItemCandidates++
			if ln.Price != nil {
				res.Paired++
				item := ln
				item.IsItem = true
				res.Items = append(res.Items, item)
			}
		}
	}
	return res
}

func isTotalKeyword(text string) bool {
	for _, re := range totalKeywords {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// findTotal scans bottom-up, trying each total keyword in priority order.
// Candidates that also mention loyalty terms are excluded outright.
func findTotal(lines []entity.ParsedLine, blocks []entity.OcrBlock, norm *locale.Normalizer) (*float64, int) {
	for _, re := range totalKeywords {
		for i := len(lines) - 1; i >= 0; i-- {
			ln := lines[i]
			if !re.MatchString(ln.Text) || totalExclusions.MatchString(ln.Text) {
				continue
			}
			if ln.Price != nil && *ln.Price > 0 {
				v := *ln.Price
				return &v, i
			}
			if v, ok := adjacentPrice(ln, blocks, norm); ok {
				return &v, i
			}
		}
	}
	return nil, -1
}

// adjacentPrice looks for a numeric token on a block just right of the
// keyword label when the amount was not paired inline.
func adjacentPrice(ln entity.ParsedLine, blocks []entity.OcrBlock, norm *locale.Normalizer) (float64, bool) {
	var label *entity.OcrBlock
	for i := range blocks {
		if blocks[i].LineIndex == ln.LineIndex {
			if label == nil || blocks[i].BBox.X < label.BBox.X {
				label = &blocks[i]
			}
		}
	}
	if label == nil {
		return 0, false
	}
	labelRight := label.BBox.X + label.BBox.W
	labelMidY := label.BBox.Y + label.BBox.H/2

	for i := range blocks {
		b := &blocks[i]
		if b.LineIndex == ln.LineIndex && b == label {
			continue
		}
		dx := b.BBox.X - labelRight
		if dx < 0 || dx > adjacentPriceMaxPx {
			continue
		}
		midY := b.BBox.Y + b.BBox.H/2
		if math.Abs(float64(midY-labelMidY)) > float64(label.BBox.H) {
			continue
		}
		if v, ok := norm.NormalizeNumber(strings.TrimSpace(b.Text)); ok && v > 0 {
			return v, true
		}
	}
	return 0, false
}

func isDiscount(ln entity.ParsedLine) bool {
	if ln.Price != nil && *ln.Price < 0 {
		return true
	}
	return reDiscount.MatchString(ln.Text) || reDiscount.MatchString(ln.PriceText)
}

// toDiscount stores the deduction as a positive magnitude; sign is
// structural, never data.
func toDiscount(ln entity.ParsedLine) (entity.DiscountLine, bool) {
	if ln.Price == nil {
		return entity.DiscountLine{}, false
	}
	raw := ln.Text
	if raw == "" {
		raw = ln.PriceText
	}
	return entity.DiscountLine{
		RawText: raw,
		Amount:  math.Abs(*ln.Price),
		Kind:    discountKind(raw + " " + ln.PriceText),
	}, true
}

func discountKind(text string) entity.DiscountKind {
	upper := strings.ToUpper(text)
	switch {
	case strings.Contains(upper, "COUPON"):
		return entity.DiscountCoupon
	case strings.Contains(upper, "DISCOUNT"):
		return entity.DiscountDiscount
	case strings.Contains(upper, "SAVINGS"):
		return entity.DiscountSavings
	default:
		return entity.DiscountOther
	}
}
