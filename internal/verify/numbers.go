package verify

import (
	"regexp"
	"strings"

	"github.com/draftdesk/factcheck/internal/model"
	"github.com/draftdesk/factcheck/internal/textutil"
)

// sourceRadius is the context window pulled around a source match before
// the gate decides whether to accept it
const sourceRadius = 100

// unitKind classifies a numeric claim's unit signature. Each claim has at
// most one primary signature; the extraction pattern that produced it
// guarantees mutual exclusion.
type unitKind int

const (
	unitCurrency unitKind = iota
	unitPercent
	unitMagnitude
	unitMultiplier
	unitPeriod
	unitBare
)

var (
	digitsRe       = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)
	magnitudeWord  = regexp.MustCompile(`(?i)\b(billion|million|trillion|gigawatts?|bn|mn|gw|[bmt])\b`)
	multiplierTail = regexp.MustCompile(`\d[xX]$`)
	periodCode     = regexp.MustCompile(`^(?:20\d{2}|(?i:CY|FY|1H|2H)\s?\d{2})$`)
	approxPrefix   = `(?:~\s*|approximately\s+|about\s+|around\s+|roughly\s+)?`
	tildeDigitRe   = regexp.MustCompile(`~\s*\d`)
	approxWordRe   = regexp.MustCompile(`(?i)\b(?:approximately|about|around|roughly|nearly)\b`)
	wordRe         = regexp.MustCompile(`[a-z][a-z']*`)
)

// numberStrategy is one tier of the unit-aware pattern cascade. Tiers run
// in order and the first accepted match wins.
type numberStrategy struct {
	name string
	re   *regexp.Regexp

	// minOverlap is the keyword overlap the context gate demands before a
	// match from this tier is accepted. Tiers whose pattern carries the
	// claim's unit need 1; the bare-digit tier needs 2 because digits
	// alone match far too much financial prose.
	minOverlap int

	unitless bool
}

// NumberVerifier locates a semantically consistent occurrence of each
// numeric claim in the source text
type NumberVerifier struct{}

// NewNumberVerifier creates a new number verifier
func NewNumberVerifier() *NumberVerifier {
	return &NumberVerifier{}
}

// Verify runs the pattern cascade for one claim against the source.
// The outcome is strictly Match or Missing; there is no partial credit
// and no unconditional bare-digit acceptance.
func (v *NumberVerifier) Verify(claim model.NumericClaim, source string) model.NumberCheck {
	check := model.NumberCheck{
		Number:         claim.Value,
		ArticleContext: claim.Context,
		Status:         model.NumberMissing,
	}

	digits := claimDigits(claim.Value)
	if digits == "" {
		return check
	}

	kind := classifyUnit(claim.Value)
	for _, strat := range buildStrategies(claim.Value, digits, kind) {
		for _, m := range strat.re.FindAllStringIndex(source, -1) {
			srcCtx := textutil.ContextWindow(source, m[0], m[1], sourceRadius)
			if v.gateAccepts(kind, strat, claim.Context, source[m[0]:m[1]], srcCtx) {
				check.Found = true
				check.Status = model.NumberMatch
				check.SourceContext = srcCtx
				return check
			}
		}
	}
	return check
}

// classifyUnit reads the unit signature off the claim value
func classifyUnit(value string) unitKind {
	switch {
	case strings.Contains(value, "%"):
		return unitPercent
	case strings.Contains(value, "$"):
		return unitCurrency
	case multiplierTail.MatchString(value):
		return unitMultiplier
	case periodCode.MatchString(value):
		return unitPeriod
	case magnitudeWord.MatchString(value):
		return unitMagnitude
	default:
		return unitBare
	}
}

// claimDigits pulls the numeric token out of the claim value, commas
// removed
func claimDigits(value string) string {
	raw := digitsRe.FindString(value)
	return strings.ReplaceAll(raw, ",", "")
}

// digitPattern builds a source pattern for a digit string that tolerates
// thousands-separator commas, e.g. "1375" matches both "1375" and "1,375"
func digitPattern(digits string) string {
	intPart := digits
	fracPart := ""
	if i := strings.IndexByte(digits, '.'); i >= 0 {
		intPart, fracPart = digits[:i], digits[i+1:]
	}

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 {
			b.WriteString(",?")
		}
		b.WriteRune(d)
	}
	if fracPart != "" {
		b.WriteString(`\.` + fracPart)
	}
	return b.String()
}

// magnitudeAlias returns the alternate spellings of the claim's magnitude
// word, or "" when it carries none
func magnitudeAlias(value string) string {
	m := magnitudeWord.FindString(value)
	switch strings.ToLower(m) {
	case "billion", "bn", "b":
		return `(?:billion|bn|b)\b`
	case "million", "mn", "m":
		return `(?:million|mn|m)\b`
	case "trillion", "t":
		return `(?:trillion|tn|t)\b`
	case "gigawatt", "gigawatts", "gw":
		return `(?:gigawatts?|gw)\b`
	default:
		return ""
	}
}

// buildStrategies assembles the ordered pattern cascade for one claim.
// Unit-bearing tiers come first; the gated bare-digit tier is always last.
func buildStrategies(value, digits string, kind unitKind) []numberStrategy {
	dp := digitPattern(digits)
	var tiers []numberStrategy

	switch kind {
	case unitCurrency:
		if alias := magnitudeAlias(value); alias != "" {
			tiers = append(tiers, numberStrategy{
				name:       "currency-magnitude",
				re:         regexp.MustCompile(`(?i)` + approxPrefix + `\$\s?` + dp + `\s*` + alias),
				minOverlap: 1,
			})
		}
		// Trailing free text after the amount is fine ("$303 PT")
		tiers = append(tiers, numberStrategy{
			name:       "currency",
			re:         regexp.MustCompile(`(?i)` + approxPrefix + `\$\s?` + dp + `\b`),
			minOverlap: 1,
		})
	case unitPercent:
		tiers = append(tiers, numberStrategy{
			name:       "percent",
			re:         regexp.MustCompile(`(?i)\b` + dp + `\s?(?:%|percent|pct)`),
			minOverlap: 1,
		})
	case unitMagnitude:
		if alias := magnitudeAlias(value); alias != "" {
			tiers = append(tiers, numberStrategy{
				name:       "magnitude",
				re:         regexp.MustCompile(`(?i)` + approxPrefix + `\b` + dp + `\s?` + alias),
				minOverlap: 1,
			})
		}
	case unitMultiplier:
		tiers = append(tiers, numberStrategy{
			name:       "multiplier",
			re:         regexp.MustCompile(`(?i)\b` + dp + `\s?x\b`),
			minOverlap: 1,
		})
	case unitPeriod:
		tiers = append(tiers, periodStrategies(value)...)
	}

	tiers = append(tiers, numberStrategy{
		name:       "bare-digits",
		re:         regexp.MustCompile(`\b` + dp + `\b`),
		minOverlap: 2,
		unitless:   true,
	})
	return tiers
}

// periodStrategies matches fiscal/calendar period codes in both short and
// long form, so claim "FY26" also finds "FY 2026" in the source
func periodStrategies(value string) []numberStrategy {
	compact := strings.ToUpper(strings.ReplaceAll(value, " ", ""))
	if len(compact) == 4 && strings.HasPrefix(compact, "20") {
		yy := compact[2:]
		return []numberStrategy{{
			name:       "year",
			re:         regexp.MustCompile(`(?i)\b(?:` + compact + `|(?:CY|FY)\s?` + yy + `)\b`),
			minOverlap: 1,
		}}
	}

	prefix := compact[:2]
	yy := compact[2:]
	return []numberStrategy{{
		name:       "period",
		re:         regexp.MustCompile(`(?i)\b` + prefix + `\s?(?:20)?` + yy + `\b`),
		minOverlap: 1,
	}}
}

// gateAccepts applies the context gate to a candidate source match.
// Bare digit runs match everywhere in financial prose; requiring
// vocabulary overlap between the article and source windows is what keeps
// this verifier usable.
func (v *NumberVerifier) gateAccepts(kind unitKind, strat numberStrategy, articleCtx, matchText, sourceCtx string) bool {
	if kind == unitCurrency {
		// A recurring value with the $ sign adjacent is unambiguous
		if strings.Contains(matchText, "$") {
			return true
		}
		if containsVocab(articleCtx, priceVocab) || containsVocab(sourceCtx, priceVocab) {
			return true
		}
	}

	if kind == unitPercent && !strat.unitless {
		if containsVocab(articleCtx, percentVocab) || containsVocab(sourceCtx, percentVocab) {
			return true
		}
		// "approximately 19%" in the article and "~19%" in the source are
		// the same number phrased two ways
		if tildeDigitRe.MatchString(sourceCtx) && approxWordRe.MatchString(articleCtx) {
			return true
		}
	}

	return keywordOverlap(articleCtx, sourceCtx) >= strat.minOverlap
}

// keywordOverlap counts meaningful words (longer than 3 chars, not stop
// words) shared by the two context windows
func keywordOverlap(articleCtx, sourceCtx string) int {
	sourceWords := make(map[string]bool)
	for _, w := range wordRe.FindAllString(strings.ToLower(sourceCtx), -1) {
		sourceWords[w] = true
	}

	seen := make(map[string]bool)
	count := 0
	for _, w := range wordRe.FindAllString(strings.ToLower(articleCtx), -1) {
		if len(w) <= 3 || stopWords[w] || seen[w] {
			continue
		}
		seen[w] = true
		if sourceWords[w] {
			count++
		}
	}
	return count
}

func containsVocab(ctx string, vocab map[string]bool) bool {
	for _, w := range wordRe.FindAllString(strings.ToLower(ctx), -1) {
		if vocab[w] {
			return true
		}
	}
	return false
}
