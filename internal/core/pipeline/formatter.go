package pipeline

import (
	"fmt"
	"strings"

	"recipe-search/internal/pkg/common"
)

// localeStrings holds every user-visible string for one locale. Headers
// and placeholders never mix across locales within one document.
type localeStrings struct {
	ingredientsHeader  string
	instructionsHeader string
	nutritionHeader    string
	notAvailable       string
	untitled           string
	notFoundTitle      string
	notFoundMessage    string
	weakMatchFormat    string
	searchErrorMessage string
}

var localeTable = map[Locale]localeStrings{
	LocaleIndonesian: {
		ingredientsHeader:  "### 🛒 Bahan-bahan",
		instructionsHeader: "### 🍳 Cara Memasak",
		nutritionHeader:    "### ℹ️ Nutrisi",
		notAvailable:       "Tidak tersedia",
		untitled:           "Tanpa Judul",
		notFoundTitle:      "Tidak Ditemukan",
		notFoundMessage:    "Maaf, resep yang kamu cari tidak ditemukan.",
		weakMatchFormat:    "Maaf, tidak ada resep yang cukup cocok (skor tertinggi %.2f).",
		searchErrorMessage: "Maaf, terjadi kesalahan teknis saat mencari.",
	},
	LocaleEnglish: {
		ingredientsHeader:  "### 🛒 Ingredients",
		instructionsHeader: "### 🍳 Instructions",
		nutritionHeader:    "### ℹ️ Nutrition",
		notAvailable:       "Not available",
		untitled:           "Untitled",
		notFoundTitle:      "Not Found",
		notFoundMessage:    "Sorry, no matching recipe was found.",
		weakMatchFormat:    "Sorry, no recipe matched well enough (best score %.2f).",
		searchErrorMessage: "Sorry, a technical error occurred during search.",
	},
}

func stringsFor(loc Locale) localeStrings {
	if s, ok := localeTable[loc]; ok {
		return s
	}
	return localeTable[LocaleEnglish]
}

// NotFoundTitle returns the localized title for an empty search.
func NotFoundTitle(loc Locale) string { return stringsFor(loc).notFoundTitle }

// NotFoundMessage returns the localized empty-search message.
func NotFoundMessage(loc Locale) string { return stringsFor(loc).notFoundMessage }

// WeakMatchMessage returns the localized weak-match message carrying the
// best score for observability.
func WeakMatchMessage(loc Locale, score float64) string {
	return fmt.Sprintf(stringsFor(loc).weakMatchFormat, score)
}

// SearchErrorMessage returns the localized upstream-failure message.
func SearchErrorMessage(loc Locale) string { return stringsFor(loc).searchErrorMessage }

// Untitled returns the localized fallback recipe name.
func Untitled(loc Locale) string { return stringsFor(loc).untitled }

// IngredientsHeader returns the localized ingredients section header.
func IngredientsHeader(loc Locale) string { return stringsFor(loc).ingredientsHeader }

// InstructionsHeader returns the localized instructions section header.
func InstructionsHeader(loc Locale) string { return stringsFor(loc).instructionsHeader }

// NutritionHeader returns the localized nutrition section header.
func NutritionHeader(loc Locale) string { return stringsFor(loc).nutritionHeader }

// FormatRecord turns one stored record into the fixed three-section
// document in the requested locale. A pre-rendered text_id document
// from ingestion is reused as-is when its section headers match the
// requested locale.
func FormatRecord(rec *common.RawRecord, loc Locale) string {
	name := strings.TrimSpace(rec.RecipeName)
	if name == "" {
		name = Untitled(loc)
	}
	if strings.Contains(rec.TextID, IngredientsHeader(loc)) {
		return strings.TrimSpace(rec.TextID)
	}
	res := ExtractRecord(rec)
	return BuildDocument(name, res, loc)
}

// ExtractRecord produces the three disjoint sections for a record,
// preferring pre-structured payload fields over raw-text extraction.
// Missing fields degrade to empty sections, never to an error.
func ExtractRecord(rec *common.RawRecord) common.ExtractionResult {
	var res common.ExtractionResult

	// instruction source: pre-split steps, then LLM-extracted
	// instructions, then raw text
	var stepSentences []string
	switch {
	case len(rec.Steps) > 0:
		stepSentences = cleanStepList(rec.Steps)
	case len(rec.Instructions) > 0:
		stepSentences = cleanStepList(rec.Instructions)
	}

	if len(stepSentences) > 0 {
		src := strings.Join(stepSentences, "\n")
		res.Ingredients = ingredientsFor(rec, src)
		res.Instructions = ExtractSteps(src, res.Ingredients)
	} else {
		norm := NormalizeText(rec.Text, rec.RecipeName)
		res.Ingredients = ingredientsFor(rec, norm)
		res.Instructions = ExtractSteps(norm, res.Ingredients)
	}

	if len(rec.Nutrients) > 0 {
		res.Nutrition = dedupLines(rec.Nutrients)
	} else {
		res.Nutrition = ExtractNutrition(rec.Text)
	}

	return res
}

// ingredientsFor trusts a clean pre-extracted payload list, otherwise
// runs the heuristic extractor over src. The record format carries no
// separate ingredients field for most points, so extraction from step
// text is the common path.
func ingredientsFor(rec *common.RawRecord, src string) []string {
	if len(rec.Ingredients) > 0 && !common.LooksNoisy(rec.Ingredients) {
		return ConsolidateIngredients(rec.Ingredients)
	}
	return ExtractIngredients(src)
}

// cleanStepList sentence-splits and credit-strips pre-structured step
// strings, preserving order.
func cleanStepList(steps []string) []string {
	var out []string
	for _, step := range steps {
		step = StripCredit(step)
		for _, s := range SplitSentences(step) {
			s = strings.TrimSpace(StripEnumeration(s))
			if s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func dedupLines(lines []string) []string {
	seen := make(map[string]bool, len(lines))
	var out []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key := strings.ToLower(line)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, line)
	}
	return out
}

// BuildDocument renders the three extracted lists into the fixed
// three-section layout. Every section is present in fixed order; an
// empty section renders the locale placeholder line.
func BuildDocument(name string, res common.ExtractionResult, loc Locale) string {
	ls := stringsFor(loc)
	var b strings.Builder

	b.WriteString("## " + name + "\n\n")

	b.WriteString(ls.ingredientsHeader + "\n")
	if len(res.Ingredients) == 0 {
		b.WriteString("- " + ls.notAvailable + "\n")
	} else {
		for _, ing := range res.Ingredients {
			b.WriteString("- " + ing + "\n")
		}
	}

	b.WriteString("\n" + ls.instructionsHeader + "\n")
	if len(res.Instructions) == 0 {
		b.WriteString("- " + ls.notAvailable + "\n")
	} else {
		for i, step := range res.Instructions {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
		}
	}

	b.WriteString("\n" + ls.nutritionHeader + "\n")
	if len(res.Nutrition) == 0 {
		b.WriteString("- " + ls.notAvailable + "\n")
	} else {
		for _, fact := range res.Nutrition {
			b.WriteString("- " + fact + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
