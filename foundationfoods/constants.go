package foundationfoods

// ambiguousAdjectives lists leading adjectives stripped from an ingredient
// name before matching, because each has two unrelated senses that the
// embedding rankers confuse (hot: temperature vs spiciness; cool:
// temperature vs taste; strong: concentration vs gluten content; hard:
// texture vs alcoholic).
var ambiguousAdjectives = map[string]bool{
	"hot": true, "cool": true, "strong": true, "hard": true,
}

// negationTokens mark the start of a negated phrase: from one of these
// onward, tokens in the same FDC description phrase carry zero relevance
// weight.
var negationTokens = map[string]bool{"no": true, "not": true, "without": true}

// reducedRelevanceTokens mark the start of a de-emphasized phrase ("with
// X"): from one of these onward, token weights are reduced by 0.5
// (floored at zero).
var reducedRelevanceTokens = map[string]bool{"with": true}

// nonRawFoodVerbStems are cooking-verb stems whose presence in a name
// means the raw-food bias (step 5 of §4.6) should not be applied.
var nonRawFoodVerbStems = func() map[string]bool {
	stems := []string{
		"age", "bake", "black", "blanch", "boil", "brais", "brew", "broil",
		"butter", "can", "cook", "crisp", "cultur", "cure", "decaffein",
		"dehydr", "devil", "distil", "dri", "ferment", "flavor", "fortifi",
		"fresh", "fri", "grill", "ground", "heat", "hull", "microwav",
		"parboil", "pasteur", "pickl", "poach", "precook", "prepar",
		"preserv", "powder", "reconstitut", "refin", "refri", "reheat",
		"rehydr", "render", "roast", "simmer", "smoke", "soak", "spice",
		"steam", "stew", "toast", "unbak", "unsalt", "raw",
	}
	m := make(map[string]bool, len(stems))
	for _, s := range stems {
		m[s] = true
	}
	return m
}()

// phraseSubstitution is a two-stemmed-token phrase rewritten to a
// different stemmed phrase to match FDC description spelling.
type phraseSubstitution struct {
	from [2]string
	to   []string
}

// phraseSubstitutions rewrite a stemmed two-token phrase to the spelling
// used in FDC descriptions, checked before the single-token table.
var phraseSubstitutions = []phraseSubstitution{
	{from: [2]string{"doubl", "cream"}, to: []string{"heavi", "cream"}},
	{from: [2]string{"glac", "cherri"}, to: []string{"maraschino", "cherri"}},
	{from: [2]string{"ice", "sugar"}, to: []string{"powder", "sugar"}},
	{from: [2]string{"mang", "tout"}, to: []string{"snow", "pea"}},
	{from: [2]string{"plain", "flour"}, to: []string{"all", "purpos", "flour"}},
	{from: [2]string{"singl", "cream"}, to: []string{"light", "cream"}},
	{from: [2]string{"haa", "avocado"}, to: []string{"hass", "avocado"}},
}

// tokenToPhraseSubstitutions rewrite a single stemmed token into several
// tokens, applied before the one-to-one table.
var tokenToPhraseSubstitutions = map[string][]string{
	"lemongrass":    {"lemon", "grass"},
	"low-sodium":    {"low", "sodium"},
	"long-grain":    {"long", "grain"},
	"medium-grain":  {"medium", "grain"},
	"short-grain":   {"short", "grain"},
	"bone-in":       {"bone", "in"},
	"water":         {"tap", "water"},
}

// tokenSubstitutions rewrite one stemmed token to another, to bridge
// British/American spelling and naming differences with the FDC catalog.
var tokenSubstitutions = map[string]string{
	"aubergin": "eggplant",
	"beetroot": "beet",
	"capsicum": "bell",
	"chile":    "chili",
	"chilli":   "chili",
	"coriand":  "cilantro",
	"cornflour": "cornstarch",
	"courgett": "zucchini",
	"gherkin":  "pickl",
	"mangetout": "snowpea",
	"mint":     "spearmint",
	"prawn":    "shrimp",
	"rocket":   "arugula",
	"swede":    "rutabaga",
	"yoghurt":  "yogurt",
}

// overrideKey is the stemmed-token-tuple key for the override table,
// joined with a single NUL separator so it can be used as a map key.
func overrideKey(tokens []string) string {
	out := ""
	for i, t := range tokens {
		if i > 0 {
			out += "\x00"
		}
		out += t
	}
	return out
}

// overrides bypasses ranking entirely for a short list of names where the
// embedding-distance rankers give poor results with only one or two
// tokens to work with.
var overrides = map[string]Result{
	overrideKey([]string{"salt"}): {
		Text: "Salt, table, iodized", Confidence: 1, FDCID: 746775,
		Category: "Spices and Herbs", DataType: FoundationFood,
	},
	overrideKey([]string{"sea", "salt"}): {
		Text: "Salt, table, iodized", Confidence: 1, FDCID: 746775,
		Category: "Spices and Herbs", DataType: FoundationFood,
	},
	overrideKey([]string{"egg"}): {
		Text: "Eggs, Grade A, Large, egg whole", Confidence: 1, FDCID: 748967,
		Category: "Dairy and Egg Products", DataType: FoundationFood,
	},
	overrideKey([]string{"butter"}): {
		Text: "Butter, stick, unsalted", Confidence: 1, FDCID: 789828,
		Category: "Dairy and Egg Products", DataType: FoundationFood,
	},
	overrideKey([]string{"all-purpos", "flour"}): {
		Text: "Flour, wheat, all-purpose, unenriched, unbleached", Confidence: 1, FDCID: 790018,
		Category: "Cereal Grains and Pasta", DataType: FoundationFood,
	},
	overrideKey([]string{"all", "purpos", "flour"}): {
		Text: "Flour, wheat, all-purpose, unenriched, unbleached", Confidence: 1, FDCID: 790018,
		Category: "Cereal Grains and Pasta", DataType: FoundationFood,
	},
}
