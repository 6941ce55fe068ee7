package locale

import (
	"regexp"
	"strings"
)

var (
	rePunct      = regexp.MustCompile(`[_\-–—,;:!?'"()\[\]{}/\\|*+.]+`)
	reSpaces     = regexp.MustCompile(`\s{2,}`)
	reParenAside = regexp.MustCompile(`\([^)]*\)`)
	reLeadingQty = regexp.MustCompile(`^\d+([.,]\d+)?(\s*[/xX]\s*\d+([.,]\d+)?)?\s*`)
)

// StripParentheticals removes parenthetical asides ("(about 2 cups)").
func StripParentheticals(s string) string {
	return reParenAside.ReplaceAllString(s, " ")
}

// StripLeadingQuantity removes a leading quantity token ("2", "1.5", "1/2").
func StripLeadingQuantity(s string) string {
	return reLeadingQty.ReplaceAllString(s, "")
}

// CleanText lowercases, replaces punctuation with spaces and collapses
// whitespace. Shared by the canonical matcher and the heuristics engine.
func CleanText(s string) string {
	s = strings.ToLower(s)
	s = rePunct.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(strings.TrimSpace(s), " ")
	return strings.TrimSpace(s)
}

// CollapseSpaces trims and collapses runs of whitespace without touching
// case or punctuation.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
