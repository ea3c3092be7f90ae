package common

import (
	"strings"
	"unicode"
)

// RawRecord is the payload stored alongside one vector-store point.
// The store owns this shape; the pipeline only reads it. Older points
// carry just recipe_name and text, newer ones also carry pre-split
// steps/nutrients and optionally LLM-extracted ingredients/instructions
// plus a pre-rendered text_id document.
type RawRecord struct {
	RecipeName   string   `json:"recipe_name"`
	Text         string   `json:"text"`
	Steps        []string `json:"steps,omitempty"`
	StepsText    string   `json:"steps_text,omitempty"`
	Nutrients    []string `json:"nutrients,omitempty"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Instructions []string `json:"instructions,omitempty"`
	TextID       string   `json:"text_id,omitempty"`
}

// ExtractionResult holds the three disjoint sections produced for one
// record. Built fresh per request, never persisted.
type ExtractionResult struct {
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Nutrition    []string `json:"nutrition"`
}

// RecipeHit is one caller-facing search result entry.
type RecipeHit struct {
	RecipeName string  `json:"recipe_name"`
	Text       string  `json:"text"`
	Score      float64 `json:"score"`
	NotFound   bool    `json:"not_found,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// LooksNoisy reports whether a pre-extracted ingredient list is too
// degraded to trust: fewer than half the entries have at least three
// characters including a letter.
func LooksNoisy(ingredients []string) bool {
	if len(ingredients) == 0 {
		return true
	}
	good := 0
	for _, ing := range ingredients {
		s := strings.TrimSpace(ing)
		if len([]rune(s)) < 3 {
			continue
		}
		if strings.ContainsFunc(s, unicode.IsLetter) {
			good++
		}
	}
	return float64(good)/float64(len(ingredients)) < 0.5
}
