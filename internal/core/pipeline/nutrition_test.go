package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractNutritionKeepsFactLines(t *testing.T) {
	raw := "Calories: 250\nProtein 5 g\nAduk rata dan sajikan."
	got := ExtractNutrition(raw)
	require.Equal(t, []string{"Calories: 250", "Protein 5 g"}, got)
}

func TestExtractNutritionAmbiguousWordsNeedAmounts(t *testing.T) {
	// "sugar" without a trailing amount is ingredient vocabulary
	got := ExtractNutrition("Mix flour and sugar.\nSugar: 12 g")
	require.Equal(t, []string{"Sugar: 12 g"}, got)
}

func TestExtractNutritionDeduplicates(t *testing.T) {
	got := ExtractNutrition("Kalori 300\nkalori 300")
	require.Equal(t, []string{"Kalori 300"}, got)
}

func TestExtractNutritionEmptyForPlainText(t *testing.T) {
	assert.Empty(t, ExtractNutrition("Goreng ayam sampai matang lalu tiriskan."))
	assert.Empty(t, ExtractNutrition(""))
}

func TestExtractNutritionStrictRequiresDigits(t *testing.T) {
	got := ExtractNutritionStrict("Lemak 10 g\nProtein tinggi\nEnjoy your meal")
	require.Equal(t, []string{"Lemak 10 g"}, got)
}

func TestExtractNutritionStrictPercentDailyValue(t *testing.T) {
	got := ExtractNutritionStrict("Vitamin C 45%")
	require.Equal(t, []string{"Vitamin C 45%"}, got)
}
