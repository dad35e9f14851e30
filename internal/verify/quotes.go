package verify

import (
	"regexp"
	"strings"

	"github.com/draftdesk/factcheck/internal/model"
	"github.com/draftdesk/factcheck/internal/textutil"
)

const (
	// Minimum word-set Jaccard similarity for the paraphrase tier
	paraphraseThreshold = 0.4

	// Quotes longer than this get a bare substring tier that drops the
	// word-boundary requirement at the start (catches mid-word excerpting)
	bareSubstringMinLen = 20

	quoteContextRadius = 50
)

var (
	trailingPunct = `.,!?;:'"`
	sentenceSplit = regexp.MustCompile(`[.!?;]`)
	quoteWordRe   = regexp.MustCompile(`[a-zA-Z][a-zA-Z']*`)
)

// quoteStrategy is one tier of the quote-location cascade. Tiers run in
// order; the first hit wins. Every tier but the paraphrase one yields an
// Exact outcome.
type quoteStrategy struct {
	name   string
	locate func(inner string, source string) (int, int, bool)
}

// QuoteVerifier locates each quotation claim in the source text using a
// cascade of exact, near-exact, word-sequence and similarity strategies.
// The cascade is the deterministic ground truth for quote verification;
// any AI-assisted judgement is an optional layer on top, never a
// replacement, because its job is catching hallucinated quotes the AI
// might also hallucinate a confirmation for.
type QuoteVerifier struct {
	strategies []quoteStrategy
}

// NewQuoteVerifier creates a quote verifier with the full cascade
func NewQuoteVerifier() *QuoteVerifier {
	v := &QuoteVerifier{}
	v.strategies = []quoteStrategy{
		{name: "exact", locate: locateExact},
		{name: "trailing-punct-stripped", locate: locateTrimmed},
		{name: "leading-filler", locate: locateWithoutFiller},
		{name: "bare-substring", locate: locateBareSubstring},
		{name: "trailing-punct-tolerant", locate: locatePunctTolerant},
		{name: "word-sequence", locate: locateWordSequence},
	}
	return v
}

// Verify runs the cascade for one quotation claim against the source
func (v *QuoteVerifier) Verify(claim model.QuotationClaim, source string) model.QuoteCheck {
	check := model.QuoteCheck{
		Quote:          claim.Quote,
		ArticleContext: claim.Context,
		Status:         model.QuoteNotFound,
		Source:         claim.Origin,
	}

	inner := textutil.CollapseWhitespace(stripBrackets(textutil.StripQuoteMarks(claim.Quote)))
	if inner == "" {
		return check
	}

	for _, strat := range v.strategies {
		if start, end, ok := strat.locate(inner, source); ok {
			check.Found = true
			check.Status = model.QuoteExact
			check.SourceContext = textutil.ContextWindow(source, start, end, quoteContextRadius)
			return check
		}
	}

	// Final fallback: best sentence-level paraphrase
	if unit, score := bestParaphrase(inner, source); score > paraphraseThreshold {
		check.Found = true
		check.Status = model.QuoteParaphrased
		check.SimilarityScore = score
		check.SourceContext = unit
	}
	return check
}

var bracketRe = regexp.MustCompile(`\[[^\]]*\]`)

func stripBrackets(s string) string {
	return bracketRe.ReplaceAllString(s, "")
}

// quotePattern compiles a case- and whitespace-insensitive pattern for the
// quote text. anchored adds a word boundary before the first word so the
// match starts at a word edge.
func quotePattern(text string, anchored bool) *regexp.Regexp {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = regexp.QuoteMeta(f)
	}
	pat := strings.Join(parts, `\s+`)
	if anchored && isWordByte(text[0]) {
		pat = `\b` + pat
	}
	return regexp.MustCompile(`(?i)` + pat)
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func locateExact(inner, source string) (int, int, bool) {
	return find(quotePattern(inner, true), source)
}

func locateTrimmed(inner, source string) (int, int, bool) {
	trimmed := strings.TrimRight(inner, trailingPunct)
	if trimmed == "" || trimmed == inner {
		return 0, 0, false
	}
	return find(quotePattern(trimmed, true), source)
}

// locateWithoutFiller handles quotes excerpted mid-sentence that open with
// an article, relative pronoun or preposition the source phrasing lacks
func locateWithoutFiller(inner, source string) (int, int, bool) {
	fields := strings.Fields(inner)
	if len(fields) < 2 {
		return 0, 0, false
	}
	first := strings.ToLower(strings.Trim(fields[0], trailingPunct))
	if !fillerWords[first] {
		return 0, 0, false
	}
	rest := strings.Join(fields[1:], " ")
	return find(quotePattern(rest, true), source)
}

func locateBareSubstring(inner, source string) (int, int, bool) {
	if len(inner) <= bareSubstringMinLen {
		return 0, 0, false
	}
	return find(quotePattern(inner, false), source)
}

func locatePunctTolerant(inner, source string) (int, int, bool) {
	trimmed := strings.TrimRight(inner, trailingPunct)
	if trimmed == "" {
		return 0, 0, false
	}
	re := quotePattern(trimmed, true)
	if re == nil {
		return 0, 0, false
	}
	re = regexp.MustCompile(re.String() + `[[:punct:]]?`)
	return find(re, source)
}

// locateWordSequence walks the source confirming every quote word (or a
// simple morphological variant) appears in order, not necessarily
// contiguously. The running cursor re-scans once from the start when a
// word is missing ahead of it.
func locateWordSequence(inner, source string) (int, int, bool) {
	words := quoteWordRe.FindAllString(inner, -1)
	if len(words) < 2 {
		return 0, 0, false
	}

	cursor := 0
	first, last := -1, -1
	for _, w := range words {
		re := variantPattern(w)
		loc := re.FindStringIndex(source[cursor:])
		if loc != nil {
			loc[0] += cursor
			loc[1] += cursor
		} else {
			// Re-scan from the top; word order in the source may differ
			// slightly from the excerpt
			loc = re.FindStringIndex(source)
			if loc == nil {
				return 0, 0, false
			}
		}
		if first < 0 || loc[0] < first {
			first = loc[0]
		}
		if loc[1] > last {
			last = loc[1]
		}
		cursor = loc[1]
	}
	return first, last, true
}

// variantPattern matches a word or its simple morphological variants:
// an added s/ed/ing suffix, a stripped one, or a stripped one swapped
// for another ("expanding" also matches "expands")
func variantPattern(word string) *regexp.Regexp {
	w := strings.ToLower(word)
	variants := []string{w, w + "s", w + "ed", w + "ing"}
	for _, suffix := range []string{"ing", "ed", "s"} {
		base := strings.TrimSuffix(w, suffix)
		if base == w || len(base) < 2 {
			continue
		}
		variants = append(variants, base, base+"e", base+"s", base+"es", base+"ed", base+"ing")
	}
	parts := make([]string, len(variants))
	for i, v := range variants {
		parts[i] = regexp.QuoteMeta(v)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(parts, "|") + `)\b`)
}

func find(re *regexp.Regexp, source string) (int, int, bool) {
	if re == nil {
		return 0, 0, false
	}
	if loc := re.FindStringIndex(source); loc != nil {
		return loc[0], loc[1], true
	}
	return 0, 0, false
}

// bestParaphrase splits the source into sentence-like units and returns
// the unit with the highest word-set Jaccard similarity to the quote
func bestParaphrase(inner, source string) (string, float64) {
	quoteSet := wordSetOf(inner)
	if len(quoteSet) == 0 {
		return "", 0
	}

	best := ""
	bestScore := 0.0
	for _, unit := range sentenceSplit.Split(source, -1) {
		unit = strings.TrimSpace(unit)
		if unit == "" {
			continue
		}
		if score := jaccard(quoteSet, wordSetOf(unit)); score > bestScore {
			best = unit
			bestScore = score
		}
	}
	return best, bestScore
}

func wordSetOf(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range quoteWordRe.FindAllString(strings.ToLower(text), -1) {
		set[w] = true
	}
	return set
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if b[w] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
