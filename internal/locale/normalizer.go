// Package locale converts locale-specific numeric and date text into
// canonical values. A Normalizer is pure: all behavior derives from the
// immutable tag passed at construction.
package locale

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	reCurrencySym  = regexp.MustCompile(`[$€£¥₩]|\b(USD|EUR|GBP|CAD|AUD|JPY)\b`)
	reParenNeg     = regexp.MustCompile(`^\((.+)\)$`)
	reNumberShape  = regexp.MustCompile(`^-?\d+(?:[.,]\d+)*$`)
	reISODate      = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	reSlashDate    = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{2,4})\b`)
	reDottedDate   = regexp.MustCompile(`\b(\d{1,2})[.\-](\d{1,2})[.\-](\d{2,4})\b`)
	reTextualDate  = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+(\d{1,2}),?\s+(\d{2,4})\b`)
	monthsByPrefix = map[string]int{
		"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
		"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
	}
)

// commaDecimalRegions use "," as the decimal separator and day-first dates.
var commaDecimalRegions = map[string]struct{}{
	"de": {}, "fr": {}, "es": {}, "it": {}, "pt": {}, "nl": {},
	"pl": {}, "tr": {}, "ru": {}, "sv": {}, "da": {}, "fi": {}, "no": {},
}

// currencyByRegion is the fallback when no symbol appears in the text.
var currencyByRegion = map[string]string{
	"US": "USD", "CA": "CAD", "GB": "GBP", "AU": "AUD", "JP": "JPY",
	"DE": "EUR", "FR": "EUR", "ES": "EUR", "IT": "EUR", "PT": "EUR",
	"NL": "EUR", "AT": "EUR", "IE": "EUR",
}

var currencyBySymbol = map[string]string{
	"$": "USD", "€": "EUR", "£": "GBP", "¥": "JPY", "₩": "KRW",
}

// Normalizer converts numeric and date text for one locale tag (e.g.
// "en-US", "de-DE").
type Normalizer struct {
	tag          string
	commaDecimal bool
	dayFirst     bool
	region       string
}

// New builds a Normalizer for the given BCP-47-ish tag. Unknown tags get
// US conventions.
func New(tag string) *Normalizer {
	lang, region := splitTag(tag)
	_, comma := commaDecimalRegions[lang]
	return &Normalizer{
		tag:          tag,
		commaDecimal: comma,
		dayFirst:     comma,
		region:       region,
	}
}

func splitTag(tag string) (lang, region string) {
	parts := strings.FieldsFunc(tag, func(r rune) bool { return r == '-' || r == '_' })
	if len(parts) > 0 {
		lang = strings.ToLower(parts[0])
	}
	if len(parts) > 1 {
		region = strings.ToUpper(parts[1])
	}
	return lang, region
}

// Tag returns the locale tag the Normalizer was built with.
func (n *Normalizer) Tag() string { return n.tag }

// NormalizeNumber parses a locale-formatted numeric token. Currency
// symbols are stripped; "(5.99)" and "5.99-" are negative; a trailing "%"
// yields the fraction. Returns false on anything that is not a number.
func (n *Normalizer) NormalizeNumber(text string) (float64, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, false
	}

	neg := false
	if m := reParenNeg.FindStringSubmatch(s); m != nil {
		neg = true
		s = m[1]
	}
	s = reCurrencySym.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	percent := false
	if strings.HasSuffix(s, "%") {
		percent = true
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	}
	if strings.HasSuffix(s, "-") {
		neg = true
		s = strings.TrimSpace(strings.TrimSuffix(s, "-"))
	}
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimSpace(strings.TrimPrefix(s, "-"))
	}
	s = strings.ReplaceAll(s, " ", "")
	if !reNumberShape.MatchString(s) {
		return 0, false
	}

	s = n.canonicalizeSeparators(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		v = -v
	}
	if percent {
		v /= 100
	}
	return v, true
}

// canonicalizeSeparators rewrites s so "." is the decimal separator and no
// grouping separators remain. s is already known to be digit/sep shaped.
func (n *Normalizer) canonicalizeSeparators(s string) string {
	lastDot := strings.LastIndexByte(s, '.')
	lastComma := strings.LastIndexByte(s, ',')

	switch {
	case lastDot >= 0 && lastComma >= 0:
		// Both present: the rightmost one is the decimal separator.
		if lastDot > lastComma {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		}
	case lastComma >= 0:
		if n.commaDecimal {
			if strings.Count(s, ",") > 1 {
				s = strings.ReplaceAll(s, ",", "")
			} else {
				s = strings.Replace(s, ",", ".", 1)
			}
		} else if groupOfThree(s, lastComma) {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case lastDot >= 0:
		if n.commaDecimal {
			// Comma-decimal locales still print "12.500" for twelve
			// thousand five hundred: a 3-digit group after "." is grouping.
			if strings.Count(s, ".") > 1 || groupOfThree(s, lastDot) {
				s = strings.ReplaceAll(s, ".", "")
			}
		} else if strings.Count(s, ".") > 1 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}
	return s
}

// groupOfThree reports whether exactly three digits follow the separator
// at position i, i.e. the separator looks like a thousands group.
func groupOfThree(s string, i int) bool {
	return len(s)-i-1 == 3
}

// NormalizeDate parses a date in US slash, EU dotted/dashed, ISO, or
// textual-month form and returns it as yyyy-mm-dd. Two-digit years assume
// 2000+. Returns false on ambiguous or invalid input, never an error.
func (n *Normalizer) NormalizeDate(text string) (string, bool) {
	if m := reISODate.FindStringSubmatch(text); m != nil {
		return isoDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if m := reSlashDate.FindStringSubmatch(text); m != nil {
		a, b, y := atoi(m[1]), atoi(m[2]), normalizeYear(atoi(m[3]))
		if n.dayFirst {
			a, b = b, a
		}
		if d, ok := isoDate(y, a, b); ok {
			return d, true
		}
		// One of the components rules itself out as a month.
		return isoDate(y, b, a)
	}
	if m := reDottedDate.FindStringSubmatch(text); m != nil {
		// Dotted and dashed forms are day-first regardless of locale.
		d, mo, y := atoi(m[1]), atoi(m[2]), normalizeYear(atoi(m[3]))
		if iso, ok := isoDate(y, mo, d); ok {
			return iso, true
		}
		return isoDate(y, d, mo)
	}
	if m := reTextualDate.FindStringSubmatch(text); m != nil {
		mo := monthsByPrefix[strings.ToLower(m[1])]
		return isoDate(normalizeYear(atoi(m[3])), mo, atoi(m[2]))
	}
	return "", false
}

// DetectCurrency returns the ISO currency code implied by a symbol in the
// text, falling back to the locale region's currency, then "USD".
func (n *Normalizer) DetectCurrency(text string) string {
	for sym, code := range currencyBySymbol {
		if strings.Contains(text, sym) {
			return code
		}
	}
	if code, ok := currencyByRegion[n.region]; ok {
		return code
	}
	return "USD"
}

func atoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func normalizeYear(y int) int {
	if y < 100 {
		return 2000 + y
	}
	return y
}

var daysInMonth = [13]int{0, 31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func isoDate(y, m, d int) (string, bool) {
	if y < 1900 || y > 2200 || m < 1 || m > 12 || d < 1 || d > daysInMonth[m] {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d), true
}
