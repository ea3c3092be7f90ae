package pipeline

import (
	"regexp"
	"strings"
)

// creditPatterns is the fixed blacklist of attribution phrases appended
// by scrapers and publishers. A match truncates the line from the match
// onward.
var creditPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bresep\s+oleh\b`),
	regexp.MustCompile(`(?i)\brecipe\s+(?:by|from)\b`),
	regexp.MustCompile(`(?i)\bsumber\s*:`),
	regexp.MustCompile(`(?i)\bsource\s*:`),
	regexp.MustCompile(`(?i)\bcourtesy\s+of\b`),
	regexp.MustCompile(`(?i)\bdikutip\s+dari\b`),
	regexp.MustCompile(`(?i)\bdibuat\s+oleh\b`),
	regexp.MustCompile(`©`),
	regexp.MustCompile(`(?i)\ball\s+rights\s+reserved\b`),
}

// sectionLabelRe matches a redundant leading section label. The label
// must end in a separator or a line break so narration like "Step 1:
// preheat" is left alone.
var sectionLabelRe = regexp.MustCompile(
	`(?i)^(?:instructions?|steps?|method|directions?|cara\s+memasak|langkah(?:-langkah)?|bahan(?:-bahan)?)(?:\s*[:.\-–]+\s*|\s*\n+\s*)`)

// StripCredit removes a trailing attribution substring from a line.
func StripCredit(line string) string {
	cut := len(line)
	for _, re := range creditPatterns {
		if loc := re.FindStringIndex(line); loc != nil && loc[0] < cut {
			cut = loc[0]
		}
	}
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(line[:cut]), "-–—|,"))
}

// NormalizeText removes a leading title repetition, a redundant section
// label, trailing attribution lines, and duplicate lines from raw recipe
// text. Normalization is idempotent: re-normalizing its own output is a
// no-op. Empty input yields empty output.
func NormalizeText(raw, title string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}

	// strip to a fixpoint so a second pass removes nothing new
	for {
		prev := text
		text = stripLeadingTitle(text, title)
		text = sectionLabelRe.ReplaceAllString(text, "")
		text = strings.TrimSpace(text)
		if text == prev {
			break
		}
	}

	lines := strings.Split(text, "\n")
	seen := make(map[string]bool, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = StripCredit(line)
		key := strings.ToLower(strings.TrimSpace(StripEnumeration(line)))
		if key == "" {
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, line)
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}

func stripLeadingTitle(text, title string) string {
	title = strings.TrimSpace(title)
	if title == "" || len(text) < len(title) {
		return text
	}
	if !strings.EqualFold(text[:len(title)], title) {
		return text
	}
	return strings.TrimLeft(text[len(title):], " .:–—-\t\n")
}
