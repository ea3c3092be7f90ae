package pipeline

import (
	"regexp"
	"strings"
	"unicode"
)

// Shared compiled patterns and vocabularies for the extractors. Unit and
// verb vocabularies cover both supported locales because stored recipes
// mix Indonesian and English freely.

var unitAlternation = strings.Join([]string{
	`cups?`, `tablespoons?`, `tbsps?`, `teaspoons?`, `tsps?`,
	`grams?`, `gr`, `g`, `kilograms?`, `kgs?`,
	`milliliters?`, `millilitres?`, `mls?`, `liters?`, `litres?`, `l`,
	`ounces?`, `oz`, `pounds?`, `lbs?`, `lb`,
	`pinch(?:es)?`, `cloves?`, `slices?`, `cans?`, `sticks?`, `pieces?`,
	`siung`, `buah`, `butir`, `lembar`, `ikat`, `batang`,
	`sendok\s+makan`, `sendok\s+teh`, `sendok`, `sdm`, `sdt`,
	`gelas`, `ekor`, `ruas`, `keping`, `bungkus`, `papan`,
}, "|")

// "potong" and "iris" double as cooking verbs in Indonesian, so they are
// deliberately absent from the unit vocabulary.

var (
	// quantity: integer, decimal, fraction, mixed number, or range
	quantityPattern = `\d+(?:[.,]\d+)?(?:\s*(?:-|–|to|sampai)\s*\d+(?:[.,]\d+)?)?(?:\s+\d+/\d+)?|\d+/\d+`

	// measurementRe captures a leading quantity, a unit, an optional
	// parenthesized size qualifier, and the phrase up to the next clause
	// boundary.
	measurementRe = regexp.MustCompile(
		`(?i)\b(` + quantityPattern + `)\s*(` + unitAlternation + `)\b\.?\s*(?:\(([^)]*)\)\s*)?([^,.;\n]*)`)

	// unitTokenRe matches a bare unit word, used to spot ingredient lines
	// leaked into instruction candidates.
	unitTokenRe = regexp.MustCompile(`(?i)\b(?:` + unitAlternation + `)\b`)

	// leadingQuantityRe matches a quantity at the start of a phrase.
	leadingQuantityRe = regexp.MustCompile(`^\s*(?:` + quantityPattern + `)\s*`)

	// timeTempRe matches durations, temperatures, and heat levels.
	timeTempRe = regexp.MustCompile(
		`(?i)\b(?:\d+\s*(?:minutes?|mins?|menit|hours?|hrs?|jam|seconds?|secs?|detik)` +
			`|\d+\s*°\s*[cf]|\d+\s*[cf]\b|\d+\s*degrees?(?:\s*[cf])?|\d+\s*derajat` +
			`|(?:low|medium|high)\s+heat|api\s+(?:kecil|sedang|besar))\b`)

	// nutritionHintRe matches vocabulary that is nutritional in any
	// context. Ambiguous food words like sugar and fat live in
	// ambiguousNutrientRe instead.
	nutritionHintRe = regexp.MustCompile(
		`(?i)\b(?:calor(?:ie|ies)|kcal|kalori|energi|protein` +
			`|(?:total|saturated|trans)\s+fat|carb(?:ohydrate)?s?|karbohidrat` +
			`|sodium|natrium|fiber|serat|cholesterol|kolesterol` +
			`|vitamin(?:\s+[a-k]\d*)?|calcium|kalsium|iron|zat\s+besi|zinc|seng` +
			`|magnesium|potassium|kalium|nutrisi|nutrition(?:\s+facts)?)\b`)

	// ambiguousNutrientRe covers words that name both an ingredient and a
	// nutrient. Only a directly trailing amount marks them nutritional, so
	// "2 cups sugar" stays an ingredient while "Sugar: 12 g" does not.
	ambiguousNutrientRe = regexp.MustCompile(
		`(?i)\b(?:fat|lemak|sugars?|gula)\b\s*[:=]?\s*\d`)

	// nutritionMeasureRe matches nutrition-style quantities. Bare gram
	// amounts are excluded on purpose, they belong to ingredients.
	nutritionMeasureRe = regexp.MustCompile(
		`(?i)\b\d+(?:[.,]\d+)?\s*(?:mg|mcg|kcal|cal(?:ories)?)\b|\b\d+(?:[.,]\d+)?\s*%`)

	// leadingVerbRe matches a cooking verb at the start of a phrase.
	leadingVerbRe = regexp.MustCompile(
		`(?i)^(?:add|melt|stir|fold|mix|combine|whisk|beat|pour|heat|preheat|bake|boil|fry|saute|sauté|simmer|grill|roast|serve|cut|slice|chop|blend|knead|drain` +
			`|panaskan|campurkan|campur|aduk|masak|memasak|goreng|rebus|tumis|bakar|kukus|potong|iris|haluskan|sajikan|tuangkan|tuang|tambahkan|masukkan|angkat|tiriskan|ulek)\b`)

	// combineLeadRe matches combine/mix-style sentences whose object list
	// enumerates ingredients.
	combineLeadRe = regexp.MustCompile(
		`(?i)^(?:mix|combine|whisk(?:\s+together)?|stir(?:\s+together)?|campurkan|campur|aduk)\s+(.+)$`)

	// verbObjectRe captures the noun phrase following an action verb, up
	// to a preposition or clause boundary.
	verbObjectRe = regexp.MustCompile(
		`(?i)\b(?:add|melt|pour|fold\s+in|stir\s+in|beat|whisk|tambahkan|masukkan|tuangkan|haluskan|iris|potong)\s+(?:the\s+|a\s+|an\s+)?([^,.;:()\n]+?)(?:\s+(?:until|into|over|in|on|to|with|for|before|after|hingga|sampai|ke|di|dengan|selama|lalu|kemudian)\b|[,.;:]|$)`)

	// objectBoundaryRe truncates a combine-sentence object list at the
	// first trailing clause.
	objectBoundaryRe = regexp.MustCompile(
		`(?i)\s+(?:until|into|over|in|on|to|with|for|then|hingga|sampai|ke|di|dengan|selama|lalu|kemudian)\b.*$`)

	// objectSplitRe splits an enumeration into candidate phrases.
	objectSplitRe = regexp.MustCompile(`(?i)\s*(?:,|\band\b|\bdan\b)\s*`)

	// enumerationRe matches leading list markers on a line or sentence.
	enumerationRe = regexp.MustCompile(`^\s*(?:\d+\s*[.)]\s*|[-*•]\s*)+`)

	// leadingPrepositionRe spots captures that start at a preposition,
	// which happens when a verb has no direct object ("pour into the pan").
	leadingPrepositionRe = regexp.MustCompile(
		`(?i)^(?:until|into|over|in|on|to|with|for|hingga|sampai|ke|di|dengan|selama)\b`)
)

// unitSynonyms collapses long unit spellings to one canonical form.
var unitSynonyms = map[string]string{
	"tablespoon":  "tbsp",
	"tablespoons": "tbsp",
	"tbsps":       "tbsp",
	"teaspoon":    "tsp",
	"teaspoons":   "tsp",
	"tsps":        "tsp",
	"grams":       "g",
	"gram":        "g",
	"gr":          "g",
	"kilogram":    "kg",
	"kilograms":   "kg",
	"milliliter":  "ml",
	"milliliters": "ml",
	"millilitre":  "ml",
	"millilitres": "ml",
	"liter":       "l",
	"liters":      "l",
	"litre":       "l",
	"litres":      "l",
	"ounce":       "oz",
	"ounces":      "oz",
	"pound":       "lb",
	"pounds":      "lb",
	"lbs":         "lb",
}

// pluralFolds maps plural spellings of common foods to their singular.
var pluralFolds = map[string]string{
	"tomatoes":  "tomato",
	"potatoes":  "potato",
	"eggs":      "egg",
	"onions":    "onion",
	"carrots":   "carrot",
	"chilies":   "chili",
	"chillies":  "chili",
	"peppers":   "pepper",
	"mushrooms": "mushroom",
	"beans":     "bean",
	"peas":      "pea",
	"leaves":    "leaf",
	"noodles":   "noodle",
	"shallots":  "shallot",
	"lemons":    "lemon",
	"limes":     "lime",
	"apples":    "apple",
	"bananas":   "banana",
}

// toolNouns are kitchen equipment words; a phrase made only of these is
// not an ingredient.
var toolNouns = map[string]bool{
	"pan": true, "pot": true, "bowl": true, "oven": true, "skillet": true,
	"spatula": true, "whisk": true, "knife": true, "blender": true,
	"mixer": true, "tray": true, "rack": true, "lid": true, "stove": true,
	"wajan": true, "panci": true, "mangkuk": true, "kompor": true,
	"pisau": true, "talenan": true, "loyang": true, "kukusan": true,
	"dandang": true, "saringan": true, "sutil": true, "cobek": true,
}

// descriptorWords are adjectives and filler words stripped when reducing
// a phrase to its core name.
var descriptorWords = map[string]bool{
	"fresh": true, "large": true, "small": true, "medium": true,
	"finely": true, "coarsely": true, "thinly": true, "roughly": true,
	"chopped": true, "minced": true, "diced": true, "sliced": true,
	"grated": true, "ground": true, "ripe": true, "raw": true,
	"cooked": true, "boneless": true, "skinless": true, "whole": true,
	"of": true, "the": true, "a": true, "an": true, "some": true,
	"segar": true, "besar": true, "kecil": true, "sedang": true,
	"halus": true, "kasar": true, "cincang": true, "parut": true,
	"matang": true, "mentah": true, "secukupnya": true, "sedikit": true,
	"yang": true, "sudah": true, "telah": true, "di": true,
}

// SplitSentences splits text into sentences on terminal punctuation,
// semicolons, and newlines. Punctuation stays attached to its sentence.
func SplitSentences(text string) []string {
	var out []string
	var b strings.Builder
	runes := []rune(text)
	flush := func() {
		s := strings.TrimSpace(b.String())
		if s != "" {
			out = append(out, s)
		}
		b.Reset()
	}
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\n' || r == ';' {
			flush()
			continue
		}
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			// end of sentence only when followed by whitespace or EOF,
			// so "1.5" and "350F." mid-phrase survive
			if i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) {
				flush()
			}
		}
	}
	flush()
	return out
}

// StripEnumeration removes leading list markers from a line.
func StripEnumeration(s string) string {
	return enumerationRe.ReplaceAllString(s, "")
}

// NormalizeUnits collapses unit synonyms and folds known food plurals to
// one canonical spelling inside a phrase.
func NormalizeUnits(phrase string) string {
	words := strings.Fields(phrase)
	for i, w := range words {
		key := strings.ToLower(strings.Trim(w, ".,"))
		if canon, ok := unitSynonyms[key]; ok {
			words[i] = canon
			continue
		}
		if folded, ok := pluralFolds[key]; ok {
			words[i] = folded
		}
	}
	return strings.Join(words, " ")
}

// CoreName reduces an ingredient phrase to its 1-2 word dedup signature:
// quantity, units, and descriptors stripped, last significant words kept.
func CoreName(phrase string) string {
	p := strings.ToLower(strings.TrimSpace(phrase))
	p = leadingQuantityRe.ReplaceAllString(p, "")
	// parenthesized size qualifiers never contribute to identity
	if i := strings.IndexByte(p, '('); i >= 0 {
		if j := strings.IndexByte(p, ')'); j > i {
			p = p[:i] + " " + p[j+1:]
		}
	}
	var kept []string
	for _, w := range strings.Fields(p) {
		w = strings.Trim(w, ".,:;!?\"'")
		if w == "" {
			continue
		}
		if _, ok := unitSynonyms[w]; ok {
			continue
		}
		if isUnitWord(w) || descriptorWords[w] {
			continue
		}
		if !strings.ContainsFunc(w, unicode.IsLetter) {
			continue
		}
		if folded, ok := pluralFolds[w]; ok {
			w = folded
		}
		kept = append(kept, w)
	}
	switch len(kept) {
	case 0:
		return ""
	case 1:
		return kept[0]
	default:
		return kept[len(kept)-2] + " " + kept[len(kept)-1]
	}
}

var bareUnitRe = regexp.MustCompile(`(?i)^(?:` + unitAlternation + `)$`)

func isUnitWord(w string) bool {
	return bareUnitRe.MatchString(w)
}

// isToolOnly reports whether every significant word in the phrase names
// kitchen equipment.
func isToolOnly(phrase string) bool {
	found := false
	for _, w := range strings.Fields(strings.ToLower(phrase)) {
		w = strings.Trim(w, ".,:;!?\"'")
		if w == "" || descriptorWords[w] {
			continue
		}
		if !toolNouns[w] {
			return false
		}
		found = true
	}
	return found
}

// HasUnitToken reports whether the text contains a measurement-unit word.
func HasUnitToken(s string) bool {
	return unitTokenRe.MatchString(s)
}

// MatchesNutritionHint reports whether the text mentions nutrition
// vocabulary, an ambiguous nutrient with an amount, or a
// nutrition-style quantity.
func MatchesNutritionHint(s string) bool {
	return nutritionHintRe.MatchString(s) ||
		ambiguousNutrientRe.MatchString(s) ||
		nutritionMeasureRe.MatchString(s)
}

func alphaCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}
