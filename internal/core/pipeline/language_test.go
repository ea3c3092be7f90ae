package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLocaleMarkerWords(t *testing.T) {
	assert.Equal(t, LocaleIndonesian, DetectLocale("resep ayam goreng"))
	assert.Equal(t, LocaleIndonesian, DetectLocale("bagaimana membuat rendang"))
	assert.Equal(t, LocaleIndonesian, DetectLocale("kue coklat tanpa oven"))
}

func TestDetectLocaleMarkerWithPunctuation(t *testing.T) {
	assert.Equal(t, LocaleIndonesian, DetectLocale("Resep?"))
	assert.Equal(t, LocaleIndonesian, DetectLocale("masak apa hari ini,"))
}

func TestDetectLocaleFallbackPattern(t *testing.T) {
	// no marker word, the fallback pattern decides
	assert.Equal(t, LocaleIndonesian, DetectLocale("cemilan sehat"))
	assert.Equal(t, LocaleIndonesian, DetectLocale("jajanan pasar tradisional"))
}

func TestDetectLocaleDefaultsToEnglish(t *testing.T) {
	assert.Equal(t, LocaleEnglish, DetectLocale("how to make pasta carbonara"))
	assert.Equal(t, LocaleEnglish, DetectLocale("chicken curry"))
	assert.Equal(t, LocaleEnglish, DetectLocale(""))
}

func TestDetectLocaleIsDeterministic(t *testing.T) {
	q := "resep soto ayam bening"
	first := DetectLocale(q)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, DetectLocale(q))
	}
}
