package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTextEmptyInput(t *testing.T) {
	assert.Equal(t, "", NormalizeText("", "Nasi Goreng"))
	assert.Equal(t, "", NormalizeText("   \n\t ", ""))
}

func TestNormalizeTextStripsLeadingTitle(t *testing.T) {
	got := NormalizeText("Nasi Goreng. Panaskan minyak dalam wajan.", "Nasi Goreng")
	assert.Equal(t, "Panaskan minyak dalam wajan.", got)
}

func TestNormalizeTextStripsSectionLabel(t *testing.T) {
	got := NormalizeText("Instructions: Preheat the oven.", "")
	assert.Equal(t, "Preheat the oven.", got)

	got = NormalizeText("Cara memasak: rebus air sampai mendidih.", "")
	assert.Equal(t, "rebus air sampai mendidih.", got)

	// a bare label on its own line is still redundant
	got = NormalizeText("Instructions\nPreheat the oven.", "")
	assert.Equal(t, "Preheat the oven.", got)
}

func TestNormalizeTextKeepsNumberedStepNarration(t *testing.T) {
	// "Step 1:" is narration, not a section label
	got := NormalizeText("Step 1: Preheat the oven.\nStep 2: Mix the batter.", "")
	assert.Equal(t, "Step 1: Preheat the oven.\nStep 2: Mix the batter.", got)
}

func TestNormalizeTextStripsCredits(t *testing.T) {
	got := NormalizeText("Tumis bumbu halus. Resep oleh Budi Santoso", "")
	assert.Equal(t, "Tumis bumbu halus.", got)

	got = NormalizeText("Bake for 30 minutes.\nRecipe by Jane Doe", "")
	assert.Equal(t, "Bake for 30 minutes.", got)
}

func TestNormalizeTextDeduplicatesLines(t *testing.T) {
	got := NormalizeText("Aduk rata.\nAduk rata.\nSajikan hangat.", "")
	assert.Equal(t, "Aduk rata.\nSajikan hangat.", got)
}

func TestNormalizeTextDedupIgnoresEnumeration(t *testing.T) {
	// the second line repeats the first modulo its list marker
	got := NormalizeText("1. Aduk rata\n2. Aduk rata", "")
	assert.Equal(t, "1. Aduk rata", got)
}

func TestNormalizeTextIsIdempotent(t *testing.T) {
	inputs := []struct {
		raw   string
		title string
	}{
		{"Rendang Daging. Rendang Daging. Masak santan hingga berminyak.", "Rendang Daging"},
		{"Instructions: Mix everything. Sumber: internet", ""},
		{"Goreng ayam.\nGoreng ayam.\nTiriskan.", "Ayam Goreng"},
	}
	for _, in := range inputs {
		once := NormalizeText(in.raw, in.title)
		twice := NormalizeText(once, in.title)
		require.Equal(t, once, twice, "normalization must be idempotent for %q", in.raw)
	}
}

func TestStripCredit(t *testing.T) {
	assert.Equal(t, "Sate ayam", StripCredit("Sate ayam - dikutip dari majalah"))
	assert.Equal(t, "Grilled fish", StripCredit("Grilled fish courtesy of the chef"))
	assert.Equal(t, "Plain line", StripCredit("Plain line"))
	assert.Equal(t, "", StripCredit("© 2024 Some Publisher"))
}
