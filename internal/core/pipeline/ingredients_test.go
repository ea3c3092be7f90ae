package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractIngredientsMeasurementAndVerbObject(t *testing.T) {
	// the verb-object pass runs over sentences the measurement pass left
	// unmatched, so both flour and sugar surface
	got := ExtractIngredients("2 cups flour. Preheat oven to 350F. Mix flour and sugar.")
	require.Equal(t, []string{"2 cups flour", "sugar"}, got)
}

func TestExtractIngredientsNormalizesUnits(t *testing.T) {
	got := ExtractIngredients("2 tablespoons olive oil.")
	require.Equal(t, []string{"2 tbsp olive oil"}, got)

	got = ExtractIngredients("500 grams chicken breast.")
	require.Equal(t, []string{"500 g chicken breast"}, got)
}

func TestExtractIngredientsMeasuredVariantWins(t *testing.T) {
	got := ExtractIngredients("Add sugar. 100 g sugar.")
	require.Equal(t, []string{"100 g sugar"}, got)
}

func TestExtractIngredientsIndonesianUnits(t *testing.T) {
	got := ExtractIngredients("2 siung bawang putih. 3 lembar daun salam.")
	require.Equal(t, []string{"2 siung bawang putih", "3 lembar daun salam"}, got)
}

func TestExtractIngredientsRejectsTimeAndTemperature(t *testing.T) {
	got := ExtractIngredients("Bake at 350F for 20 minutes.")
	assert.Empty(t, got)
}

func TestExtractIngredientsRejectsPrepositionCaptures(t *testing.T) {
	got := ExtractIngredients("Pour into the pan.")
	assert.Empty(t, got)
}

func TestExtractIngredientsCoreNamesAreUnique(t *testing.T) {
	got := ExtractIngredients("2 cups flour. Mix the flour and salt. Add flour.")
	seen := make(map[string]bool)
	for _, ing := range got {
		core := CoreName(ing)
		require.False(t, seen[core], "duplicate core name %q in %v", core, got)
		seen[core] = true
	}
}

func TestConsolidateIngredientsFromPayload(t *testing.T) {
	got := ConsolidateIngredients([]string{
		"1. 2 siung bawang putih",
		"bawang putih",
		"",
		"3 butir telur",
	})
	require.Equal(t, []string{"2 siung bawang putih", "3 butir telur"}, got)
}

func TestConsolidateIngredientsKeepsFirstSeenOrder(t *testing.T) {
	got := ConsolidateIngredients([]string{"garam", "gula pasir", "merica bubuk"})
	require.Equal(t, []string{"garam", "gula pasir", "merica bubuk"}, got)
}

func TestCoreNameStripsQuantityUnitsDescriptors(t *testing.T) {
	assert.Equal(t, "flour", CoreName("2 cups flour"))
	assert.Equal(t, "olive oil", CoreName("3 tbsp olive oil"))
	assert.Equal(t, "bawang putih", CoreName("2 siung bawang putih"))
	assert.Equal(t, "onion", CoreName("1 large onion, finely chopped"))
	assert.Equal(t, "tomato", CoreName("tomatoes"))
	assert.Equal(t, "", CoreName("2"))
}
