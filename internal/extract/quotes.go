package extract

import (
	"strings"
	"unicode"

	"github.com/draftdesk/factcheck/internal/model"
	"github.com/draftdesk/factcheck/internal/textutil"
)

const (
	minQuoteLen = 3

	// A double-quoted span longer than this is a mis-paired quote mark,
	// not a real quotation.
	maxQuoteLen = 500
)

// QuoteExtractor scans a document for quotation claims. Headlines
// conventionally use single quotes for attributed opinion and bodies use
// double quotes for direct speech, so each convention is scanned only in
// its own region.
type QuoteExtractor struct{}

// NewQuoteExtractor creates a new quotation claim extractor
func NewQuoteExtractor() *QuoteExtractor {
	return &QuoteExtractor{}
}

// Extract collects quotation claims from article text. Quote-mark entities
// are decoded and HTML tags stripped before matching. De-duplication uses
// normalized text alone; the same quotation may legitimately recur.
func (e *QuoteExtractor) Extract(article string) []model.QuotationClaim {
	text := textutil.StripTags(textutil.DecodeEntities(article))

	headline := text
	body := ""
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		headline = text[:i]
		body = text[i+1:]
	}

	var claims []model.QuotationClaim
	for _, span := range headlineQuoteSpans(headline) {
		claims = append(claims, quoteAt(text, headline[span[0]:span[1]], span[0], model.OriginHeadline))
	}
	bodyOffset := len(headline) + 1
	for _, span := range bodyQuoteSpans(body) {
		claims = append(claims, quoteAt(text, body[span[0]:span[1]], bodyOffset+span[0], model.OriginBody))
	}

	return dedupeQuotes(claims)
}

func quoteAt(text, quote string, pos int, origin model.QuoteOrigin) model.QuotationClaim {
	return model.QuotationClaim{
		Quote:    quote,
		Context:  textutil.ContextWindow(text, pos, pos+len(quote), contextRadius),
		Position: pos,
		Origin:   origin,
	}
}

// headlineQuoteSpans finds single-quoted spans, stepping around
// apostrophes. A quote mark immediately preceded by a letter is an
// apostrophe, and a captured span opening with "s " is a possessive
// artifact, never a quotation delimiter.
func headlineQuoteSpans(headline string) [][2]int {
	var spans [][2]int
	runes := []rune(headline)

	i := 0
	for i < len(runes) {
		if runes[i] != '\'' || (i > 0 && unicode.IsLetter(runes[i-1])) {
			i++
			continue
		}
		// Find the closing quote
		j := i + 1
		for j < len(runes) && runes[j] != '\'' {
			j++
		}
		if j >= len(runes) {
			break
		}
		inner := string(runes[i+1 : j])
		if len(inner) >= minQuoteLen && !strings.HasPrefix(inner, "s ") {
			start := len(string(runes[:i]))
			end := len(string(runes[:j+1]))
			spans = append(spans, [2]int{start, end})
			i = j + 1
			continue
		}
		i++
	}
	return spans
}

// bodyQuoteSpans pairs double quote marks sequentially and keeps spans
// whose inner text falls inside the length gate
func bodyQuoteSpans(body string) [][2]int {
	var marks []int
	for i := 0; i < len(body); i++ {
		if body[i] == '"' {
			marks = append(marks, i)
		}
	}

	var spans [][2]int
	for i := 0; i+1 < len(marks); i += 2 {
		open, close := marks[i], marks[i+1]
		inner := close - open - 1
		if inner >= minQuoteLen && inner <= maxQuoteLen {
			spans = append(spans, [2]int{open, close + 1})
		}
	}
	return spans
}

func dedupeQuotes(claims []model.QuotationClaim) []model.QuotationClaim {
	seen := make(map[string]bool)
	var unique []model.QuotationClaim
	for _, c := range claims {
		key := textutil.NormalizeQuote(c.Quote)
		if !seen[key] {
			seen[key] = true
			unique = append(unique, c)
		}
	}
	return unique
}
