package pipeline

import (
	"strings"
)

// minStepLength is the shortest sentence (in runes) still treated as an
// instruction rather than noise.
const minStepLength = 4

// maxLeakedTokens is the token ceiling under which a sentence carrying a
// measurement-unit word is treated as a leaked ingredient line.
const maxLeakedTokens = 8

// ExtractSteps derives the ordered instruction list from normalized
// text. Sentences that duplicate an extracted ingredient, look like a
// leaked ingredient line, or match nutrition vocabulary are excluded so
// the three sections stay disjoint.
func ExtractSteps(text string, ingredients []string) []string {
	loweredIngredients := make([]string, len(ingredients))
	for i, ing := range ingredients {
		loweredIngredients[i] = strings.ToLower(strings.TrimSpace(ing))
	}

	seen := make(map[string]bool)
	var out []string
	for _, s := range SplitSentences(text) {
		s = strings.TrimSpace(StripEnumeration(s))
		if len([]rune(s)) < minStepLength {
			continue
		}
		if isIngredientEcho(s, loweredIngredients) {
			continue
		}
		if isLeakedIngredientLine(s) {
			continue
		}
		if MatchesNutritionHint(s) {
			continue
		}
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

// isIngredientEcho reports whether the sentence duplicates, or is a
// leading prefix of, one of the extracted ingredient phrases.
func isIngredientEcho(s string, loweredIngredients []string) bool {
	bare := strings.ToLower(strings.TrimRight(s, " .!?"))
	if bare == "" {
		return false
	}
	for _, ing := range loweredIngredients {
		if ing == "" {
			continue
		}
		if bare == ing || strings.HasPrefix(ing, bare) {
			return true
		}
	}
	return false
}

// isLeakedIngredientLine treats a short sentence with a measurement-unit
// token as an ingredient line that slipped into the narrative.
func isLeakedIngredientLine(s string) bool {
	if len(strings.Fields(s)) > maxLeakedTokens {
		return false
	}
	return HasUnitToken(s)
}
