package model

// NumericClaim represents a numeric fact extracted from a generated article
type NumericClaim struct {
	Value    string `json:"value"`    // Exact matched substring (e.g. "$73 billion", "35%", "24x", "FY26")
	Context  string `json:"context"`  // ~50 chars of surrounding article text on each side
	Position int    `json:"position"` // Character offset in the article (used for de-duplication only)
}

// QuoteOrigin identifies which part of the article a quotation came from
type QuoteOrigin string

const (
	OriginHeadline QuoteOrigin = "headline" // Single-quoted spans in the first line
	OriginBody     QuoteOrigin = "body"     // Double-quoted spans in the remainder
)

// QuotationClaim represents a quoted phrase extracted from a generated article
type QuotationClaim struct {
	Quote    string      `json:"quote"`    // Includes the enclosing quote marks
	Context  string      `json:"context"`  // Surrounding article text
	Position int         `json:"position"` // Character offset in the article
	Origin   QuoteOrigin `json:"origin"`   // Which quote-mark convention applied
}

// NumberStatus is the verification outcome for a numeric claim.
// Number verification is strictly binary: a claim either has a semantically
// consistent occurrence in the source or it does not.
type NumberStatus string

const (
	NumberMatch   NumberStatus = "match"
	NumberMissing NumberStatus = "missing"
)

// QuoteStatus is the verification outcome for a quotation claim
type QuoteStatus string

const (
	QuoteExact       QuoteStatus = "exact"
	QuoteParaphrased QuoteStatus = "paraphrased"
	QuoteNotFound    QuoteStatus = "not_found"
)
