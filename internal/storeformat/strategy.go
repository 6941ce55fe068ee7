package storeformat

import (
	"math"
	"strings"

	"github.com/chamchi6619/pantry-core/internal/entity"
)

// Strategy extracts items from lines laid out in one structural family.
// One implementation per family; adding a merchant means adding a strategy
// plus correction-table rows, never a per-store script.
type Strategy interface {
	// Extract returns the items found plus the number of item-shaped
	// candidates, whether or not each one could be paired with a price.
	Extract(lines []entity.ParsedLine) (items []entity.ParsedItem, candidates int)
}

// ForLayout returns the strategy for a detected layout; inline receipts
// have no multi-line strategy and return nil.
func ForLayout(l Layout) Strategy {
	switch l {
	case LayoutTwoLine:
		return twoLineStrategy{}
	case LayoutThreeLine:
		return threeLineStrategy{}
	default:
		return nil
	}
}

type twoLineStrategy struct{}

func (twoLineStrategy) Extract(lines []entity.ParsedLine) ([]entity.ParsedItem, int) {
	var items []entity.ParsedItem
	candidates := 0
	for i := 0; i < len(lines); i++ {
		ln := lines[i]
		if IsGarbage(ln.Text) || !reCodeName.MatchString(ln.Text) || ln.Price != nil {
			continue
		}
		candidates++
		if i+1 >= len(lines) || !priceOnly(lines[i+1]) {
			continue
		}
		price := *lines[i+1].Price
		if price < 0 {
			continue
		}
		items = append(items, entity.ParsedItem{
			RawName:    CorrectName(stripLeadingCode(ln.Text)),
			Qty:        1,
			Unit:       "ea",
			PriceTotal: price,
			Confidence: 0.8,
		})
		i++
	}
	return items, candidates
}

type threeLineStrategy struct{}

func (threeLineStrategy) Extract(lines []entity.ParsedLine) ([]entity.ParsedItem, int) {
	var items []entity.ParsedItem
	candidates := 0
	for i := 0; i+1 < len(lines); i++ {
		if !reCodeOnly.MatchString(lines[i].Text) || lines[i].Price != nil {
			continue
		}
		name := lines[i+1]
		if IsGarbage(name.Text) || !reNameOnly.MatchString(name.Text) || name.Price != nil {
			continue
		}
		candidates++
		j := i + 2
		// an interposed "$X OFF" line shifts the price line down by one
		if j < len(lines) && reAmtOff.MatchString(lines[j].Text) {
			j++
		}
		if j >= len(lines) || !priceOnly(lines[j]) || *lines[j].Price < 0 {
			continue
		}
		items = append(items, entity.ParsedItem{
			RawName:    CorrectName(name.Text),
			Qty:        1,
			Unit:       "ea",
			PriceTotal: math.Abs(*lines[j].Price),
			Confidence: 0.8,
		})
		i = j
	}
	return items, candidates
}

func stripLeadingCode(text string) string {
	fields := strings.Fields(text)
	if len(fields) > 1 {
		return strings.Join(fields[1:], " ")
	}
	return text
}
