package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/draftdesk/factcheck/internal/model"
	"github.com/draftdesk/factcheck/internal/textutil"
)

const (
	contextRadius = 50

	// Two normalized-equal claims closer than this are the same mention
	// captured twice by overlapping patterns.
	dedupeRadius = 100
)

var (
	// Range form "$1-1.5 billion": both bounds carry the magnitude suffix
	currencyRangeRe = regexp.MustCompile(`\$(\d[\d,]*(?:\.\d+)?)\s*-\s*(\d[\d,]*(?:\.\d+)?)\s*(billion|million|trillion|bn|mn|[BMT])\b`)

	currencyRe   = regexp.MustCompile(`\$\d[\d,]*(?:\.\d+)?(?:\s*(?:billion|million|trillion|bn|mn|[BMT])\b)?`)
	percentRe    = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?%`)
	magnitudeRe  = regexp.MustCompile(`\b\d[\d,]*(?:\.\d+)?\s+(?:billion|million|trillion|gigawatts?|GW)\b`)
	multiplierRe = regexp.MustCompile(`\b\d+(?:\.\d+)?[xX]\b`)
	yearRe       = regexp.MustCompile(`\b20\d{2}\b`)
	periodRe     = regexp.MustCompile(`\b(?:CY|FY|1H|2H)\s?\d{2}\b`)
)

// NumberExtractor scans a document for numeric claims
type NumberExtractor struct{}

// NewNumberExtractor creates a new numeric claim extractor
func NewNumberExtractor() *NumberExtractor {
	return &NumberExtractor{}
}

// Extract collects numeric claims from article text. Five pattern families
// run in priority order over tag-stripped text, every candidate is
// collected, then a separate de-duplication pass collapses overlapping
// captures of the same mention.
func (e *NumberExtractor) Extract(article string) []model.NumericClaim {
	text := textutil.StripTags(article)

	var candidates []model.NumericClaim
	var covered [][2]int // spans consumed by the range pattern

	// 1. Currency ranges: emit the low and high bound as separate claims
	for _, m := range currencyRangeRe.FindAllStringSubmatchIndex(text, -1) {
		low := text[m[2]:m[3]]
		high := text[m[4]:m[5]]
		mag := text[m[6]:m[7]]
		candidates = append(candidates,
			claimAt(text, "$"+low+" "+mag, m[0]),
			claimAt(text, "$"+high+" "+mag, m[4]),
		)
		covered = append(covered, [2]int{m[0], m[1]})
	}

	// 2. Plain currency, skipping anything the range pattern consumed
	for _, m := range currencyRe.FindAllStringIndex(text, -1) {
		if insideAny(covered, m[0]) {
			continue
		}
		candidates = append(candidates, claimAt(text, text[m[0]:m[1]], m[0]))
	}

	// 3. Percentages
	for _, m := range percentRe.FindAllStringIndex(text, -1) {
		candidates = append(candidates, claimAt(text, text[m[0]:m[1]], m[0]))
	}

	// 4. Bare magnitudes, only when no currency symbol is attached
	for _, m := range magnitudeRe.FindAllStringIndex(text, -1) {
		if insideAny(covered, m[0]) {
			continue
		}
		if m[0] > 0 && text[m[0]-1] == '$' {
			continue
		}
		candidates = append(candidates, claimAt(text, text[m[0]:m[1]], m[0]))
	}

	// 5. Multipliers (valuation multiples such as P/E)
	for _, m := range multiplierRe.FindAllStringIndex(text, -1) {
		candidates = append(candidates, claimAt(text, text[m[0]:m[1]], m[0]))
	}

	// 6. Year and fiscal period codes
	for _, m := range yearRe.FindAllStringIndex(text, -1) {
		candidates = append(candidates, claimAt(text, text[m[0]:m[1]], m[0]))
	}
	for _, m := range periodRe.FindAllStringIndex(text, -1) {
		candidates = append(candidates, claimAt(text, text[m[0]:m[1]], m[0]))
	}

	return dedupeNumbers(candidates)
}

func claimAt(text, value string, pos int) model.NumericClaim {
	return model.NumericClaim{
		Value:    value,
		Context:  textutil.ContextWindow(text, pos, pos+len(value), contextRadius),
		Position: pos,
	}
}

func insideAny(spans [][2]int, pos int) bool {
	for _, s := range spans {
		if pos >= s[0] && pos < s[1] {
			return true
		}
	}
	return false
}

// dedupeKey is the normalized value with any currency symbol stripped, so
// "$37 billion" and "37 billion" collapse to the same mention.
func dedupeKey(value string) string {
	return strings.TrimPrefix(textutil.NormalizeNumber(value), "$")
}

// dedupeNumbers is a pure pass over the full candidate set. Two claims
// collapse when their keys are equal and they are either close together
// (the same mention caught by overlapping patterns) or one is the other's
// currency-free echo. The currency-bearing version wins; normalized-equal
// claims far apart otherwise stay distinct since they may state different
// facts.
func dedupeNumbers(candidates []model.NumericClaim) []model.NumericClaim {
	var kept []model.NumericClaim
	for _, c := range candidates {
		key := dedupeKey(c.Value)
		merged := false
		for i, k := range kept {
			if dedupeKey(k.Value) != key {
				continue
			}
			near := absInt(k.Position-c.Position) <= dedupeRadius
			hasDollar := strings.HasPrefix(c.Value, "$")
			keptDollar := strings.HasPrefix(k.Value, "$")
			if near || hasDollar != keptDollar {
				if hasDollar && !keptDollar {
					kept[i] = c
				}
				merged = true
				break
			}
		}
		if !merged {
			kept = append(kept, c)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Position < kept[j].Position
	})
	return kept
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
