package storeformat

import "strings"

// abbreviations expands per-merchant shorthand token by token. Adding a
// merchant means adding rows here, not a new parser.
var abbreviations = map[string]string{
	"ORG":  "ORGANIC",
	"ORGN": "ORGANIC",
	"KS":   "KIRKLAND SIGNATURE",
	"CHKN": "CHICKEN",
	"CHK":  "CHICKEN",
	"BF":   "BEEF",
	"GRND": "GROUND",
	"CHZ":  "CHEESE",
	"VEG":  "VEGETABLE",
	"WHT":  "WHITE",
	"WHL":  "WHOLE",
	"MLK":  "MILK",
	"BRD":  "BREAD",
	"CKY":  "COOKIE",
	"STRW": "STRAWBERRY",
	"BLBY": "BLUEBERRY",
	"YGT":  "YOGURT",
	"SNDWCH": "SANDWICH",
}

// ocrFixes repairs known OCR substitution errors on whole tokens.
var ocrFixes = map[string]string{
	"SPINAC":  "SPINACH",
	"CHIKEN":  "CHICKEN",
	"CHICEN":  "CHICKEN",
	"BANAN":   "BANANA",
	"POTATOE": "POTATO",
	"YOGRT":   "YOGURT",
	"TOMATOE": "TOMATO",
	"LETTUC":  "LETTUCE",
	"BROCOLI": "BROCCOLI",
}

// CorrectName expands known abbreviations and fixes known OCR
// substitutions in an extracted item name.
func CorrectName(name string) string {
	fields := strings.Fields(name)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		key := strings.ToUpper(f)
		if exp, ok := abbreviations[key]; ok {
			out = append(out, exp)
			continue
		}
		if fix, ok := ocrFixes[key]; ok {
			out = append(out, fix)
			continue
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}
