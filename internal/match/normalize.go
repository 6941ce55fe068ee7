package match

import (
	"strings"

	"github.com/chamchi6619/pantry-core/internal/locale"
)

// Normalize reduces a free-text item name to its food core: lowercase,
// parentheticals, quantities, units, modifiers, prep verbs, state
// descriptors and brand words removed, whitespace collapsed.
func Normalize(text string) string {
	s := strings.ToLower(text)
	s = locale.StripParentheticals(s)
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	for _, phrase := range phraseModifiers {
		s = strings.ReplaceAll(s, phrase, " ")
	}
	s = locale.CleanText(s)
	s = locale.StripLeadingQuantity(s)

	fields := strings.Fields(s)
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if isStripWord(f) {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

func isStripWord(w string) bool {
	if _, ok := dietModifiers[w]; ok {
		return true
	}
	if _, ok := prepVerbs[w]; ok {
		return true
	}
	if _, ok := stateDescriptors[w]; ok {
		return true
	}
	if _, ok := unitWords[w]; ok {
		return true
	}
	if _, ok := brandWords[w]; ok {
		return true
	}
	return false
}

// IsJunk rejects text that can never resolve to a catalog entry: section
// headers, pure punctuation, lone prep words and known non-food tokens.
// Junk short-circuits before normalization cost is spent.
func IsJunk(text string) bool {
	s := strings.TrimSpace(strings.ToLower(text))
	if s == "" {
		return true
	}
	if strings.HasSuffix(s, ":") || strings.HasPrefix(s, "for the ") {
		return true
	}
	cleaned := locale.CleanText(s)
	if cleaned == "" {
		return true
	}
	fields := strings.Fields(cleaned)
	for _, f := range fields {
		if _, ok := nonFoodTokens[f]; ok {
			return true
		}
	}
	if len(fields) == 1 {
		w := fields[0]
		if _, ok := prepVerbs[w]; ok {
			return true
		}
		if _, ok := stateDescriptors[w]; ok {
			return true
		}
	}
	return false
}
