// Package storeformat detects per-merchant structural variants and selects
// the matching extraction strategy, replacing per-store parser scripts.
// All merchant knowledge lives in data tables, not code paths.
package storeformat

import (
	"regexp"
	"strings"
)

// garbagePatterns covers store boilerplate, address fragments and other
// non-receipt chatter. Applied before layout detection and before item
// extraction so noise cannot skew the format vote.
var garbagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*(THANK\s*YOU|HAVE\s*A\s*(NICE|GREAT)|WELCOME|COME\s*AGAIN|SEE\s*YOU)`),
	regexp.MustCompile(`(?i)\bSELF[- ]?CHECK\s*OUT\b`),
	regexp.MustCompile(`(?i)^\s*(STORE|STR)\s*#?\s*\d+`),
	regexp.MustCompile(`(?i)^\s*(CASHIER|OPERATOR|REG(ISTER)?|LANE|TERM(INAL)?)\b`),
	regexp.MustCompile(`(?i)\b(TEL|PHONE|FAX)[:.]?\s*[\d().\- ]{7,}`),
	regexp.MustCompile(`^\s*\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}\s*$`),
	regexp.MustCompile(`(?i)^\s*\d+\s+[A-Z][A-Za-z]*\s+(ST|AVE|BLVD|RD|DR|LN|HWY|WAY)\b`),
	regexp.MustCompile(`(?i)\b(RETURN\s*POLICY|SURVEY|www\.|\.com|\.ca)\b`),
	regexp.MustCompile(`(?i)^\s*(MEMBER|MBR)\s*#?\s*\d*\s*$`),
	regexp.MustCompile(`(?i)^\s*\d{1,2}:\d{2}\s*(AM|PM)?\s*$`),
	regexp.MustCompile(`^\s*[-=*_#~]{3,}\s*$`),
	regexp.MustCompile(`(?i)^\s*(TRANS(ACTION)?|INVOICE|ORDER)\s*#?\s*\d+\s*$`),
}

// IsGarbage reports whether a line is boilerplate or OCR noise. Runs of a
// single repeated character (scanner streaks) count as noise too.
func IsGarbage(text string) bool {
	s := strings.TrimSpace(text)
	if s == "" {
		return true
	}
	for _, re := range garbagePatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return noiseRun(s)
}

// noiseRun reports a run of 5+ identical non-digit characters making up
// most of the line.
func noiseRun(s string) bool {
	run, best := 1, 1
	var prev rune
	for i, r := range s {
		if i > 0 && r == prev && !(r >= '0' && r <= '9') && r != ' ' {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 1
		}
		prev = r
	}
	return best >= 5 && best*2 >= len(s)
}
