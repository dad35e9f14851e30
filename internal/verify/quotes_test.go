package verify

import (
	"strings"
	"testing"

	"github.com/draftdesk/factcheck/internal/model"
)

func TestQuoteVerifier_ExactMatch(t *testing.T) {
	verifier := NewQuoteVerifier()

	claim := model.QuotationClaim{
		Quote:  `"We are firing on all cylinders this quarter."`,
		Origin: model.OriginBody,
	}
	source := `The CEO told analysts, "We are firing on all cylinders this quarter." Shares rose after hours.`

	check := verifier.Verify(claim, source)

	if check.Status != model.QuoteExact {
		t.Fatalf("Expected status %q, got %q", model.QuoteExact, check.Status)
	}
	if !check.Found {
		t.Error("Expected Found to be true")
	}
	if !strings.Contains(check.SourceContext, "firing on all cylinders") {
		t.Errorf("Expected source context around the match, got %q", check.SourceContext)
	}
	if check.Source != model.OriginBody {
		t.Errorf("Expected origin %q, got %q", model.OriginBody, check.Source)
	}
}

func TestQuoteVerifier_CaseAndWhitespaceInsensitive(t *testing.T) {
	verifier := NewQuoteVerifier()

	claim := model.QuotationClaim{
		Quote:  `"Demand Remains Robust Across All Segments"`,
		Origin: model.OriginHeadline,
	}
	source := "Management said demand remains robust\nacross   all segments heading into the second half."

	check := verifier.Verify(claim, source)

	if check.Status != model.QuoteExact {
		t.Errorf("Expected status %q, got %q", model.QuoteExact, check.Status)
	}
}

func TestQuoteVerifier_TrailingPunctStripped(t *testing.T) {
	verifier := NewQuoteVerifier()

	claim := model.QuotationClaim{
		Quote:  `"the strongest pipeline in our history."`,
		Origin: model.OriginBody,
	}
	source := `He described "the strongest pipeline in our history" during the call.`

	check := verifier.Verify(claim, source)

	if check.Status != model.QuoteExact {
		t.Errorf("Expected status %q, got %q", model.QuoteExact, check.Status)
	}
}

func TestQuoteVerifier_LeadingFiller(t *testing.T) {
	verifier := NewQuoteVerifier()

	claim := model.QuotationClaim{
		Quote:  `"a transformational acquisition for the business"`,
		Origin: model.OriginBody,
	}
	source := "The deal is transformational acquisition for the business, executives argued."

	check := verifier.Verify(claim, source)

	if check.Status != model.QuoteExact {
		t.Errorf("Expected status %q, got %q", model.QuoteExact, check.Status)
	}
}

func TestQuoteVerifier_BracketedInsertions(t *testing.T) {
	verifier := NewQuoteVerifier()

	claim := model.QuotationClaim{
		Quote:  `"The company [has] doubled its output"`,
		Origin: model.OriginBody,
	}
	source := "Speaking on the call he noted the company doubled its output in under a year."

	check := verifier.Verify(claim, source)

	if check.Status != model.QuoteExact {
		t.Errorf("Expected status %q, got %q", model.QuoteExact, check.Status)
	}
}

func TestQuoteVerifier_WordSequenceMorphology(t *testing.T) {
	verifier := NewQuoteVerifier()

	claim := model.QuotationClaim{
		Quote:  `"expanding margins and accelerating growth"`,
		Origin: model.OriginBody,
	}
	source := "The plan expands margins and growth accelerates across every region."

	check := verifier.Verify(claim, source)

	if check.Status != model.QuoteExact {
		t.Errorf("Expected word-sequence tier to locate morphological variants, got %q", check.Status)
	}
}

func TestQuoteVerifier_Paraphrase(t *testing.T) {
	verifier := NewQuoteVerifier()

	claim := model.QuotationClaim{
		Quote:  `"we see tremendous opportunity in the datacenter market"`,
		Origin: model.OriginBody,
	}
	source := "Executives believe there is tremendous opportunity ahead in the datacenter market. Other topics were also discussed."

	check := verifier.Verify(claim, source)

	if check.Status != model.QuoteParaphrased {
		t.Fatalf("Expected status %q, got %q", model.QuoteParaphrased, check.Status)
	}
	if check.SimilarityScore <= 0.4 {
		t.Errorf("Expected similarity above the threshold, got %f", check.SimilarityScore)
	}
	if check.SourceContext == "" {
		t.Error("Expected the best-matching source unit as context")
	}
}

func TestQuoteVerifier_NotFound(t *testing.T) {
	verifier := NewQuoteVerifier()

	claim := model.QuotationClaim{
		Quote:  `"we will acquire our largest competitor next month"`,
		Origin: model.OriginBody,
	}
	source := "The filing covers routine compensation matters and board attendance policies."

	check := verifier.Verify(claim, source)

	if check.Status != model.QuoteNotFound {
		t.Fatalf("Expected status %q, got %q", model.QuoteNotFound, check.Status)
	}
	if check.Found {
		t.Error("Expected Found to be false")
	}
	if check.SourceContext != "" {
		t.Errorf("Expected empty source context, got %q", check.SourceContext)
	}
}

func TestQuoteVerifier_EmptyAfterStripping(t *testing.T) {
	verifier := NewQuoteVerifier()

	claim := model.QuotationClaim{Quote: `"[sic]"`, Origin: model.OriginBody}

	check := verifier.Verify(claim, "Any source text at all.")

	if check.Status != model.QuoteNotFound {
		t.Errorf("Expected status %q for an empty quote, got %q", model.QuoteNotFound, check.Status)
	}
}
