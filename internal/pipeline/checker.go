// Package pipeline assembles verification reports: it runs claim
// extraction over a generated article, verifies every claim against the
// source document, and aggregates the outcomes.
package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/draftdesk/factcheck/internal/compare"
	"github.com/draftdesk/factcheck/internal/extract"
	"github.com/draftdesk/factcheck/internal/llm"
	"github.com/draftdesk/factcheck/internal/model"
	"github.com/draftdesk/factcheck/internal/textutil"
	"github.com/draftdesk/factcheck/internal/verify"
	"github.com/draftdesk/factcheck/internal/worker"
)

// The trailing "Price Action:" paragraph quotes a live market feed, not
// the source document, so its numbers can never verify. It is stripped
// before extraction, tolerating bold markup and leading blank lines.
var priceActionRe = regexp.MustCompile(`(?i)(?:^|\n)\s*(?:<strong>|<b>|\*\*)?\s*price action:`)

// Checker runs the full verification pass for one article/source pair.
// It holds no per-request state; one Checker serves concurrent requests.
type Checker struct {
	numberExtractor *extract.NumberExtractor
	quoteExtractor  *extract.QuoteExtractor
	numberVerifier  *verify.NumberVerifier
	quoteVerifier   *verify.QuoteVerifier
	comparator      *compare.Comparator // nil when the AI pass is unavailable
	verifyWorkers   int
}

// NewChecker creates a checker from configuration. LLM initialization
// failure disables the line-by-line pass but never the core.
func NewChecker(cfg *model.Config) *Checker {
	var comparator *compare.Comparator
	if cfg.LLM.Provider != "" {
		provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Printf("Warning: failed to initialize LLM provider: %v\n", err)
		} else if provider != nil {
			comparator = compare.NewComparator(provider, cfg.Compare)
		}
	}
	if comparator == nil {
		// Lexical-only comparator; unresolved lines settle on the fallback
		comparator = compare.NewComparator(nil, cfg.Compare)
	}

	return &Checker{
		numberExtractor: extract.NewNumberExtractor(),
		quoteExtractor:  extract.NewQuoteExtractor(),
		numberVerifier:  verify.NewNumberVerifier(),
		quoteVerifier:   verify.NewQuoteVerifier(),
		comparator:      comparator,
		verifyWorkers:   cfg.Concurrency.VerifyWorkers,
	}
}

// Check verifies every numeric and quotation claim in the article against
// the source and returns the assembled report. Claims verify concurrently;
// output order follows extraction order. Verification misses are data,
// not errors: the only error conditions are empty inputs.
func (c *Checker) Check(ctx context.Context, article, sourceText string, lineByLine bool) (*model.Report, error) {
	if strings.TrimSpace(article) == "" {
		return nil, fmt.Errorf("article text is required")
	}
	if strings.TrimSpace(sourceText) == "" {
		return nil, fmt.Errorf("source text is required")
	}

	article = StripPriceAction(article)
	source := textutil.StripTags(textutil.DecodeEntities(sourceText))

	numberClaims := c.numberExtractor.Extract(article)
	quoteClaims := c.quoteExtractor.Extract(article)

	numberChecks := make([]model.NumberCheck, len(numberClaims))
	quoteChecks := make([]model.QuoteCheck, len(quoteClaims))

	// Claims have no data dependency on each other; scan them in parallel
	pool := worker.NewPool(c.verifyWorkers)
	for i, claim := range numberClaims {
		pool.Submit(func(context.Context) {
			numberChecks[i] = c.numberVerifier.Verify(claim, source)
		})
	}
	for i, claim := range quoteClaims {
		pool.Submit(func(context.Context) {
			quoteChecks[i] = c.quoteVerifier.Verify(claim, source)
		})
	}
	pool.Wait()
	pool.Shutdown()

	report := &model.Report{
		Numbers: model.NumberSection{
			Checks:  numberChecks,
			Summary: model.SummarizeNumbers(numberChecks),
		},
		Quotes: model.QuoteSection{
			Checks:  quoteChecks,
			Summary: model.SummarizeQuotes(quoteChecks),
		},
	}

	// The comparator is strictly additive and degrades internally; it
	// cannot fail the report
	if lineByLine {
		report.LineByLine = c.comparator.Compare(ctx, textutil.StripTags(article), source)
	}

	return report, nil
}

// StripPriceAction cuts the trailing "Price Action:" paragraph off an
// article before extraction
func StripPriceAction(article string) string {
	locs := priceActionRe.FindAllStringIndex(article, -1)
	if len(locs) == 0 {
		return article
	}
	last := locs[len(locs)-1]
	return strings.TrimRight(article[:last[0]], "\n ")
}
