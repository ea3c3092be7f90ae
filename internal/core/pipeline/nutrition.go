package pipeline

import (
	"regexp"
	"strings"
)

// nutrientLineRes is the strict mode: one pattern per nutrient family,
// each requiring a number on the same line.
var nutrientLineRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:total\s+|saturated\s+|trans\s+)?(?:fat|lemak)\b[^\n]*\d`),
	regexp.MustCompile(`(?i)\bprotein\b[^\n]*\d`),
	regexp.MustCompile(`(?i)\b(?:sodium|natrium)\b[^\n]*\d`),
	regexp.MustCompile(`(?i)\b(?:fiber|serat)\b[^\n]*\d`),
	regexp.MustCompile(`(?i)\b(?:sugars?|gula)\b[^\n]*\d`),
	regexp.MustCompile(`(?i)\b(?:cholesterol|kolesterol)\b[^\n]*\d`),
	regexp.MustCompile(`(?i)\b(?:carb(?:ohydrate)?s?|karbohidrat)\b[^\n]*\d`),
	regexp.MustCompile(`(?i)\b(?:calcium|kalsium|iron|zat\s+besi|zinc|seng|magnesium|potassium|kalium)\b[^\n]*\d`),
	regexp.MustCompile(`(?i)\bvitamin\b[^\n]*\d`),
	regexp.MustCompile(`(?i)\d+(?:[.,]\d+)?\s*(?:kcal|cal(?:ories)?|kalori)\b`),
	regexp.MustCompile(`(?i)\d+(?:[.,]\d+)?\s*(?:mg|mcg)\b`),
	regexp.MustCompile(`\d+(?:[.,]\d+)?\s*%`),
}

// ExtractNutrition scans raw text line by line and keeps lines matching
// the nutrition vocabulary or a nutrition-style quantity, first
// occurrence first.
func ExtractNutrition(raw string) []string {
	return extractNutrition(raw, false)
}

// ExtractNutritionStrict keeps only lines matching the fixed
// per-nutrient patterns.
func ExtractNutritionStrict(raw string) []string {
	return extractNutrition(raw, true)
}

func extractNutrition(raw string, strict bool) []string {
	seen := make(map[string]bool)
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		for _, s := range SplitSentences(line) {
			s = strings.TrimSpace(StripEnumeration(s))
			if s == "" {
				continue
			}
			if strict {
				if !matchesNutrientLine(s) {
					continue
				}
			} else if !MatchesNutritionHint(s) {
				continue
			}
			key := strings.ToLower(s)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, s)
		}
	}
	return out
}

func matchesNutrientLine(s string) bool {
	for _, re := range nutrientLineRes {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
