package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/draftdesk/factcheck/internal/model"
)

func newTestChecker() *Checker {
	return NewChecker(model.DefaultConfig())
}

func TestChecker_EndToEnd(t *testing.T) {
	checker := newTestChecker()

	article := "'Turnaround Ahead' — Company Is Trending\n\n" +
		`The company posted a 73% increase in revenue to $450 million, beating the $1 billion target cited in "a pivotal quarter for growth."`
	source := `In the latest report, revenue grew 73% to $450 million for the quarter, well below the $1 billion target set last year. ` +
		`The CEO called it "a pivotal quarter for growth."`

	report, err := checker.Check(context.Background(), article, source, false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	numberStatus := make(map[string]model.NumberStatus)
	for _, check := range report.Numbers.Checks {
		numberStatus[check.Number] = check.Status
	}
	for _, value := range []string{"73%", "$450 million", "$1 billion"} {
		if numberStatus[value] != model.NumberMatch {
			t.Errorf("Expected number %q to match, got %q", value, numberStatus[value])
		}
	}

	quoteStatus := make(map[string]model.QuoteStatus)
	quoteOrigin := make(map[string]model.QuoteOrigin)
	for _, check := range report.Quotes.Checks {
		quoteStatus[check.Quote] = check.Status
		quoteOrigin[check.Quote] = check.Source
	}

	if quoteStatus["'Turnaround Ahead'"] != model.QuoteNotFound {
		t.Errorf("Expected headline quote to be not_found, got %q", quoteStatus["'Turnaround Ahead'"])
	}
	if quoteOrigin["'Turnaround Ahead'"] != model.OriginHeadline {
		t.Errorf("Expected headline origin, got %q", quoteOrigin["'Turnaround Ahead'"])
	}
	if quoteStatus[`"a pivotal quarter for growth."`] != model.QuoteExact {
		t.Errorf("Expected body quote to be exact, got %q", quoteStatus[`"a pivotal quarter for growth."`])
	}

	if report.Quotes.Summary.Exact != 1 || report.Quotes.Summary.NotFound != 1 {
		t.Errorf("Unexpected quote summary: %+v", report.Quotes.Summary)
	}
	if report.LineByLine != nil {
		t.Error("Expected no line-by-line section when not requested")
	}
}

func TestChecker_EmptyInputs(t *testing.T) {
	checker := newTestChecker()

	if _, err := checker.Check(context.Background(), "", "source", false); err == nil {
		t.Error("Expected error for empty article")
	}
	if _, err := checker.Check(context.Background(), "article", "   ", false); err == nil {
		t.Error("Expected error for blank source")
	}
}

func TestChecker_ZeroClaims(t *testing.T) {
	checker := newTestChecker()

	report, err := checker.Check(context.Background(), "Headline\nNothing quantitative here at all.", "Some source text.", false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if report.Numbers.Summary.Total != 0 {
		t.Errorf("Expected 0 number claims, got %d", report.Numbers.Summary.Total)
	}
	if report.Numbers.Summary.MatchRate != "0" {
		t.Errorf("Expected match rate \"0\" for zero claims, got %q", report.Numbers.Summary.MatchRate)
	}
	if report.Quotes.Summary.ExactRate != "0" {
		t.Errorf("Expected exact rate \"0\" for zero claims, got %q", report.Quotes.Summary.ExactRate)
	}
}

func TestChecker_LineByLineSection(t *testing.T) {
	checker := newTestChecker()

	article := "Headline\nThe company reported record revenue for the fourth quarter of the year."
	source := "The company reported record revenue for the fourth quarter of the year, management said."

	report, err := checker.Check(context.Background(), article, source, true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if report.LineByLine == nil {
		t.Fatal("Expected line-by-line section when requested")
	}
	if report.LineByLine.Summary.Total == 0 {
		t.Error("Expected at least one compared line")
	}
}

func TestStripPriceAction(t *testing.T) {
	article := "Headline\n" +
		"Revenue grew 14% to $5 billion in the quarter.\n" +
		"Price Action: Shares fell 2% to $50 in premarket trading."

	stripped := StripPriceAction(article)

	if strings.Contains(stripped, "2%") || strings.Contains(stripped, "$50") {
		t.Errorf("Expected price action numbers to be stripped, got %q", stripped)
	}
	if !strings.Contains(stripped, "$5 billion") {
		t.Error("Expected article body to survive stripping")
	}
}

func TestStripPriceAction_BoldMarkupAndLastOccurrence(t *testing.T) {
	article := "Headline\n" +
		"The phrase price action: appears mid-article in prose.\n" +
		"More body text with $10 million in it.\n" +
		"<strong>Price Action:</strong> Shares rose 3%."

	stripped := StripPriceAction(article)

	if strings.Contains(stripped, "3%") {
		t.Error("Expected the trailing price action paragraph to be stripped")
	}
	if !strings.Contains(stripped, "$10 million") {
		t.Error("Expected body before the last price action marker to survive")
	}
}

func TestStripPriceAction_NoMarker(t *testing.T) {
	article := "Headline\nJust a body."
	if got := StripPriceAction(article); got != article {
		t.Errorf("Expected article unchanged, got %q", got)
	}
}
