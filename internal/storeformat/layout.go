package storeformat

import (
	"regexp"

	"github.com/chamchi6619/pantry-core/internal/entity"
)

// Layout is a structural family of item blocks on a receipt.
type Layout int

const (
	// LayoutInline prints name and price on one line; the generic
	// classifier pipeline handles it directly.
	LayoutInline Layout = iota
	// LayoutTwoLine prints "code name" then the price on the next line.
	LayoutTwoLine
	// LayoutThreeLine prints code, then name, then price, with an
	// optional interposed "$X OFF" line shifting the price by one.
	LayoutThreeLine
)

func (l Layout) String() string {
	switch l {
	case LayoutTwoLine:
		return "two-line"
	case LayoutThreeLine:
		return "three-line"
	default:
		return "inline"
	}
}

// sampleSize bounds how many leading lines feed the layout vote.
const sampleSize = 24

var (
	reCodeOnly = regexp.MustCompile(`^\d{4,14}\s*[A-Z]?$`)
	reCodeName = regexp.MustCompile(`^\d{4,14}\s+[A-Za-z].*$`)
	reNameOnly = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9 .,'&%/-]*$`)
	reAmtOff   = regexp.MustCompile(`(?i)^\$?\d+(\.\d{2})?\s+OFF\b|\bINSTANT\s+SAVINGS\b`)
)

func priceOnly(ln entity.ParsedLine) bool {
	return ln.Price != nil && ln.Text == ""
}

// DetectLayout samples the leading non-garbage lines, counts signature
// matches for each layout and returns the winner. Ties go to the
// three-line layout, the more explicit of the two; when neither signature
// shows up the receipt is treated as inline.
func DetectLayout(lines []entity.ParsedLine) Layout {
	sample := make([]entity.ParsedLine, 0, sampleSize)
	for _, ln := range lines {
		if IsGarbage(ln.Text) && ln.Price == nil {
			continue
		}
		sample = append(sample, ln)
		if len(sample) == sampleSize {
			break
		}
	}

	two, three := 0, 0
	for i := 0; i < len(sample); i++ {
		if i+1 < len(sample) && reCodeName.MatchString(sample[i].Text) &&
			sample[i].Price == nil && priceOnly(sample[i+1]) {
			two++
		}
		if i+2 < len(sample) && reCodeOnly.MatchString(sample[i].Text) &&
			sample[i].Price == nil && reNameOnly.MatchString(sample[i+1].Text) &&
			sample[i+1].Price == nil {
			j := i + 2
			if reAmtOff.MatchString(sample[j].Text) && j+1 < len(sample) {
				j++
			}
			if priceOnly(sample[j]) {
				three++
			}
		}
	}

	switch {
	case two == 0 && three == 0:
		return LayoutInline
	case three >= two:
		return LayoutThreeLine
	default:
		return LayoutTwoLine
	}
}
