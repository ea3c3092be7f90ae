package pipeline

import (
	"sort"
	"strings"
)

// candidate is one ingredient phrase under consideration. Measured
// candidates carry an explicit quantity and win consolidation conflicts.
type candidate struct {
	phrase   string
	measured bool
}

// ExtractIngredients derives a deduplicated, normalized ingredient list
// from text. Three strategies run in precedence order: explicit
// measurement matching over every sentence, verb-object extraction over
// the sentences the first stage left unmatched, and a relaxed verb pass
// over everything only when both yielded nothing.
func ExtractIngredients(text string) []string {
	sentences := SplitSentences(text)

	var cands []candidate
	var unmatched []string
	for _, s := range sentences {
		s = StripEnumeration(s)
		matches := measurementRe.FindAllStringSubmatch(s, -1)
		if len(matches) == 0 {
			unmatched = append(unmatched, s)
			continue
		}
		for _, m := range matches {
			phrase := strings.TrimSpace(strings.TrimRight(m[0], " ."))
			cands = append(cands, candidate{phrase: phrase, measured: true})
		}
	}

	for _, s := range unmatched {
		cands = append(cands, verbObjectCandidates(s)...)
	}

	if len(cands) == 0 {
		for _, s := range sentences {
			cands = append(cands, relaxedCandidates(StripEnumeration(s))...)
		}
	}

	return consolidate(cands)
}

// ConsolidateIngredients runs a pre-extracted ingredient list (payload
// field or model output) through the same normalization and core-name
// consolidation as the heuristic extractor.
func ConsolidateIngredients(list []string) []string {
	cands := make([]candidate, 0, len(list))
	for _, p := range list {
		p = strings.TrimSpace(StripEnumeration(p))
		if p == "" {
			continue
		}
		cands = append(cands, candidate{
			phrase:   p,
			measured: leadingQuantityRe.MatchString(p),
		})
	}
	return consolidate(cands)
}

// verbObjectCandidates extracts ingredient phrases from an instruction
// sentence: the object list of a combine/mix-style sentence, or the noun
// phrase following an action verb.
func verbObjectCandidates(s string) []candidate {
	var out []candidate
	if m := combineLeadRe.FindStringSubmatch(s); m != nil {
		objects := objectBoundaryRe.ReplaceAllString(m[1], "")
		objects = strings.TrimRight(objects, " .!?")
		for _, p := range objectSplitRe.Split(objects, -1) {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, candidate{phrase: p})
			}
		}
		return out
	}
	for _, m := range verbObjectRe.FindAllStringSubmatch(s, -1) {
		p := strings.TrimSpace(strings.TrimRight(m[1], " .!?"))
		if p != "" {
			out = append(out, candidate{phrase: p})
		}
	}
	return out
}

// relaxedCandidates is the last-resort pass: verb matching with the
// object split applied even to non-combine sentences. A linguistic
// noun-chunk parser would slot in here if one were wired.
func relaxedCandidates(s string) []candidate {
	var out []candidate
	for _, m := range verbObjectRe.FindAllStringSubmatch(s, -1) {
		objects := strings.TrimRight(m[1], " .!?")
		for _, p := range objectSplitRe.Split(objects, -1) {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, candidate{phrase: p})
			}
		}
	}
	return out
}

// keepCandidate filters out phrases that cannot be ingredients.
func keepCandidate(p string) bool {
	if alphaCount(p) < 3 {
		return false
	}
	if MatchesNutritionHint(p) {
		return false
	}
	if timeTempRe.MatchString(p) {
		return false
	}
	if isToolOnly(p) {
		return false
	}
	if leadingVerbRe.MatchString(p) {
		return false
	}
	if leadingPrepositionRe.MatchString(p) {
		return false
	}
	return true
}

// consolidate filters, normalizes, and merges candidates by core name.
// On a conflict the measured variant wins, then the longer phrase; the
// output keeps the first-seen order of each surviving core name.
func consolidate(cands []candidate) []string {
	type entry struct {
		candidate
		order int
	}
	byCore := make(map[string]entry)
	next := 0

	for _, c := range cands {
		phrase := NormalizeUnits(strings.TrimSpace(c.phrase))
		if phrase == "" || !keepCandidate(phrase) {
			continue
		}
		core := CoreName(phrase)
		if core == "" {
			continue
		}
		cur, exists := byCore[core]
		if !exists {
			byCore[core] = entry{candidate{phrase, c.measured}, next}
			next++
			continue
		}
		replace := false
		switch {
		case c.measured && !cur.measured:
			replace = true
		case c.measured == cur.measured && len(phrase) > len(cur.phrase):
			replace = true
		}
		if replace {
			byCore[core] = entry{candidate{phrase, c.measured}, cur.order}
		}
	}

	entries := make([]entry, 0, len(byCore))
	for _, e := range byCore {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].order < entries[j].order })

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.phrase
	}
	return out
}
