package model

import "fmt"

// NumberCheck is the verification outcome for one numeric claim
type NumberCheck struct {
	Number         string       `json:"number"`
	Found          bool         `json:"found"`
	ArticleContext string       `json:"articleContext"`
	SourceContext  string       `json:"sourceContext,omitempty"` // Verbatim substring of the source, never synthesized
	Status         NumberStatus `json:"status"`
}

// QuoteCheck is the verification outcome for one quotation claim
type QuoteCheck struct {
	Quote           string      `json:"quote"`
	Found           bool        `json:"found"`
	ArticleContext  string      `json:"articleContext"`
	SourceContext   string      `json:"sourceContext,omitempty"`
	Status          QuoteStatus `json:"status"`
	Source          QuoteOrigin `json:"source"`
	SimilarityScore float64     `json:"similarityScore,omitempty"` // Set only for paraphrased outcomes
}

// NumberSummary aggregates numeric verification counts
type NumberSummary struct {
	Total     int    `json:"total"`
	Matches   int    `json:"matches"`
	Missing   int    `json:"missing"`
	MatchRate string `json:"matchRate"`
}

// QuoteSummary aggregates quotation verification counts
type QuoteSummary struct {
	Total       int    `json:"total"`
	Exact       int    `json:"exact"`
	Paraphrased int    `json:"paraphrased,omitempty"`
	NotFound    int    `json:"notFound"`
	ExactRate   string `json:"exactRate"`
}

// NumberSection groups per-claim checks with their summary
type NumberSection struct {
	Checks  []NumberCheck `json:"checks"`
	Summary NumberSummary `json:"summary"`
}

// QuoteSection groups per-quote checks with their summary
type QuoteSection struct {
	Checks  []QuoteCheck `json:"checks"`
	Summary QuoteSummary `json:"summary"`
}

// Report is the complete verification report for one article/source pair.
// Check order follows extraction order so article-position-based context
// stays meaningful to a human reviewer.
type Report struct {
	Numbers    NumberSection   `json:"numbers"`
	Quotes     QuoteSection    `json:"quotes"`
	LineByLine *LineComparison `json:"lineByLine,omitempty"`
}

// Rate formats part/total as a percentage string with one fractional
// digit. A zero total yields "0" rather than a division failure.
func Rate(part, total int) string {
	if total == 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f", float64(part)/float64(total)*100)
}

// SummarizeNumbers derives the numeric summary from a check list
func SummarizeNumbers(checks []NumberCheck) NumberSummary {
	s := NumberSummary{Total: len(checks)}
	for _, c := range checks {
		if c.Status == NumberMatch {
			s.Matches++
		} else {
			s.Missing++
		}
	}
	s.MatchRate = Rate(s.Matches, s.Total)
	return s
}

// SummarizeQuotes derives the quotation summary from a check list
func SummarizeQuotes(checks []QuoteCheck) QuoteSummary {
	s := QuoteSummary{Total: len(checks)}
	for _, c := range checks {
		switch c.Status {
		case QuoteExact:
			s.Exact++
		case QuoteParaphrased:
			s.Paraphrased++
		default:
			s.NotFound++
		}
	}
	s.ExactRate = Rate(s.Exact, s.Total)
	return s
}

// LineCheck is the outcome of comparing one article line against the source
type LineCheck struct {
	Line       string  `json:"line"`
	Supported  bool    `json:"supported"`
	Method     string  `json:"method"` // "lexical", "ai" or "fallback"
	Similarity float64 `json:"similarity,omitempty"`
	Note       string  `json:"note,omitempty"`
}

// LineComparison is the optional line-by-line semantic comparison result
type LineComparison struct {
	Lines   []LineCheck `json:"lines"`
	Summary LineSummary `json:"summary"`
}

// LineSummary aggregates line comparison counts
type LineSummary struct {
	Total      int `json:"total"`
	Supported  int `json:"supported"`
	Unverified int `json:"unverified"`
}
