// Package textutil canonicalizes numeric tokens and quoted text so the
// extraction and verification layers compare like with like.
package textutil

import (
	"regexp"
	"strings"
)

var (
	// Extraction-boundary artifact: a trailing comma plus a single stray
	// letter accidentally captured with the number (e.g. "$5 billion, a").
	trailingArtifactRe = regexp.MustCompile(`,\s*[A-Za-z]$`)

	whitespaceRe = regexp.MustCompile(`\s+`)

	// Bracketed editorial insertions journalists use to mark grammatical
	// adaptation of a quote: [s], [ed], [the] and similar.
	bracketInsertRe = regexp.MustCompile(`\[[^\]]*\]`)

	htmlTagRe = regexp.MustCompile(`<[^>]+>`)
)

// NormalizeNumber canonicalizes a numeric token for comparison.
// Idempotent: NormalizeNumber(NormalizeNumber(x)) == NormalizeNumber(x).
func NormalizeNumber(raw string) string {
	s := trailingArtifactRe.ReplaceAllString(raw, "")
	s = strings.ReplaceAll(s, ",", "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeQuote canonicalizes a quotation for comparison. The enclosing
// quote marks and bracketed editorial insertions are dropped, whitespace
// collapses to single spaces, and the result is lowercased. Case is only
// lost here; the original claim keeps it for display.
func NormalizeQuote(raw string) string {
	s := StripQuoteMarks(raw)
	s = bracketInsertRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

// StripQuoteMarks removes enclosing straight and typographic quote marks
func StripQuoteMarks(s string) string {
	return strings.Trim(s, `'"` + "‘’“”")
}

// StripTags replaces every HTML tag with a space so character offsets
// keep pointing at real prose
func StripTags(s string) string {
	return htmlTagRe.ReplaceAllString(s, " ")
}

// DecodeEntities decodes the small set of quote-mark entities that show up
// in scraped press releases. Applied before quote extraction.
func DecodeEntities(s string) string {
	r := strings.NewReplacer(
		"&quot;", `"`,
		"&apos;", "'",
		"&#39;", "'",
	)
	return r.Replace(s)
}

// CollapseWhitespace folds runs of whitespace (including newlines) into
// single spaces
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// ContextWindow returns a symmetric window of text around [start, end),
// clamped to the document bounds. Used to disambiguate same-valued but
// semantically distinct numbers.
func ContextWindow(text string, start, end, radius int) string {
	lo := start - radius
	if lo < 0 {
		lo = 0
	}
	hi := end + radius
	if hi > len(text) {
		hi = len(text)
	}
	return text[lo:hi]
}
