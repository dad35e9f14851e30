// Package compare implements the optional line-by-line semantic
// comparison pass. It is strictly additive: the number/quote verification
// path never waits on it, and every failure mode degrades to a lexical
// heuristic instead of failing the report.
package compare

import (
	"regexp"
	"strings"
)

const (
	minUnitLen = 20
	maxUnitLen = 600

	// lexicalThreshold resolves a line without AI help
	lexicalThreshold = 0.5

	// fallbackThreshold is the cheaper bar used when the AI phase is
	// unavailable, over budget, or failed for a batch
	fallbackThreshold = 0.3
)

var unitWordRe = regexp.MustCompile(`[a-z][a-z']*`)

// SplitUnits breaks a document into sentence-like units. Very short
// fragments are noise (bylines, tickers) and very long ones are usually
// tables or mis-parsed markup, so both are dropped.
func SplitUnits(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var units []string
	var current strings.Builder

	flush := func() {
		unit := strings.TrimSpace(current.String())
		if len(unit) >= minUnitLen && len(unit) <= maxUnitLen {
			units = append(units, unit)
		}
		current.Reset()
	}

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' || r == ';' {
			// Split only before whitespace to avoid breaking decimals
			// and abbreviations mid-token
			if i+1 < len(runes) && (runes[i+1] == ' ' || runes[i+1] == '\t') {
				flush()
			}
		}
	}
	flush()

	return units
}

// bestOverlap returns the highest word-set Jaccard similarity between the
// line and any source unit
func bestOverlap(line string, sourceUnits []string) float64 {
	lineSet := unitWordSet(line)
	if len(lineSet) == 0 {
		return 0
	}

	best := 0.0
	for _, unit := range sourceUnits {
		unitSet := unitWordSet(unit)
		if len(unitSet) == 0 {
			continue
		}
		inter := 0
		for w := range lineSet {
			if unitSet[w] {
				inter++
			}
		}
		union := len(lineSet) + len(unitSet) - inter
		if union == 0 {
			continue
		}
		if score := float64(inter) / float64(union); score > best {
			best = score
		}
	}
	return best
}

func unitWordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range unitWordRe.FindAllString(strings.ToLower(text), -1) {
		set[w] = true
	}
	return set
}
