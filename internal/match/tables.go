package match

// Word tables consumed by normalization and junk detection. These are
// data, not logic: extending coverage means adding rows.

// phraseModifiers are removed as whole phrases before tokenization, after
// hyphens are normalized to spaces.
var phraseModifiers = []string{
	"low fat", "fat free", "non fat", "sugar free", "gluten free",
	"extra lean", "room temperature", "all natural",
}

var dietModifiers = wordSet(
	"organic", "fresh", "raw", "light", "lite", "reduced", "lowfat",
	"nonfat", "unsalted", "salted", "sweetened", "unsweetened", "skim",
	"lean", "natural", "pure", "premium",
)

var prepVerbs = wordSet(
	"chopped", "diced", "minced", "sliced", "shredded", "grated", "crushed",
	"cubed", "julienned", "melted", "softened", "beaten", "whisked",
	"cooked", "boiled", "roasted", "toasted", "mashed", "pureed",
)

var stateDescriptors = wordSet(
	"peeled", "drained", "rinsed", "thawed", "frozen", "canned", "dried",
	"pitted", "seeded", "stemmed", "trimmed", "halved", "quartered",
	"packed", "divided",
)

var unitWords = wordSet(
	"cup", "cups", "tbsp", "tablespoon", "tablespoons", "tsp", "teaspoon",
	"teaspoons", "oz", "ounce", "ounces", "lb", "lbs", "pound", "pounds",
	"g", "kg", "gram", "grams", "ml", "l", "liter", "liters", "pinch",
	"dash", "can", "cans", "jar", "jars", "package", "packages", "pkg",
	"bag", "bags", "box", "boxes", "bunch", "bunches", "head", "heads",
	"stick", "sticks", "slice", "slices", "piece", "pieces", "container",
)

var brandWords = wordSet(
	"kirkland", "signature", "great", "value", "member's", "members",
	"mark", "365", "kroger", "safeway", "publix", "heinz", "kraft",
	"nestle", "campbell's", "campbells", "delmonte",
)

// nonFoodTokens short-circuit junk detection: these never resolve to a
// pantry item.
var nonFoodTokens = wordSet(
	"foil", "skewers", "skewer", "toothpicks", "toothpick", "parchment",
	"napkins", "twine", "wrap", "instructions", "note", "notes",
	"optional", "garnish", "equipment",
)

// shortWordAllowList relaxes the substring tier's minimum canonical-name
// length from 4 to 3 for real three-letter foods.
var shortWordAllowList = wordSet(
	"egg", "oil", "ham", "tea", "jam", "soy", "rum", "nut", "fig", "pea",
	"rye", "cod", "ale",
)

func wordSet(words ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}
