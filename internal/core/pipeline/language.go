package pipeline

import (
	"regexp"
	"strings"
)

// Locale is one of the two supported output languages, chosen per query.
type Locale string

const (
	LocaleIndonesian Locale = "indonesian"
	LocaleEnglish    Locale = "english"
)

// indonesianMarkers are function words and query words typical of
// Indonesian recipe questions. One occurrence is enough to classify.
var indonesianMarkers = map[string]bool{
	"resep": true, "masak": true, "memasak": true, "masakan": true,
	"bahan": true, "cara": true, "bagaimana": true, "gimana": true,
	"yang": true, "untuk": true, "dengan": true, "dan": true,
	"atau": true, "apa": true, "enak": true, "makanan": true,
	"kue": true, "bumbu": true, "buat": true, "bikin": true,
	"berapa": true, "tanpa": true, "pedas": true, "goreng": true,
	"rebus": true, "tumis": true, "sambal": true,
}

var indonesianFallbackRe = regexp.MustCompile(`(?i)\b(?:resep|masakan|bumbu|cemilan|jajanan|nya)\b`)

// DetectLocale classifies a query by counting Indonesian marker words in
// the lowercased text, with a secondary regex as backstop. This is a
// blunt keyword heuristic by contract, not language identification; the
// default is English. Pure function.
func DetectLocale(query string) Locale {
	lowered := strings.ToLower(query)
	for _, w := range strings.Fields(lowered) {
		w = strings.Trim(w, ".,:;!?\"'()")
		if indonesianMarkers[w] {
			return LocaleIndonesian
		}
	}
	if indonesianFallbackRe.MatchString(lowered) {
		return LocaleIndonesian
	}
	return LocaleEnglish
}
