package verify

// Vocabulary sets used by the context gates. These are tuning data, not
// behavior: matching logic never special-cases individual words.

// stopWords are excluded from keyword-overlap counting
var stopWords = wordSet(
	"the", "and", "that", "this", "with", "from", "have", "has", "been",
	"will", "would", "could", "should", "their", "there", "which", "when",
	"were", "said", "says", "also", "more", "than", "into", "over", "after",
	"before", "while", "about", "what", "them", "they", "these", "those",
	"such", "some", "other", "only", "most", "very", "just", "both", "its",
	"was", "are", "for", "but", "not", "all", "can", "had", "his", "her",
	"per", "via", "during", "between", "among", "within", "including",
)

// priceVocab marks analyst price-target and rating context. A currency
// figure near any of these words is being discussed as a price call.
var priceVocab = wordSet(
	"price", "target", "rating", "buy", "sell", "hold", "upgrade",
	"downgrade", "upgraded", "downgraded", "raise", "raised", "raises",
	"cut", "cuts", "lower", "lowered", "maintain", "maintained",
	"reiterate", "reiterated", "outperform", "underperform", "overweight",
	"underweight", "neutral", "initiate", "initiated", "coverage",
)

// percentVocab marks growth and financial-metric context for percentage
// claims that lack direct keyword overlap
var percentVocab = wordSet(
	"sales", "revenue", "revenues", "growth", "grew", "rose", "fell",
	"gain", "gained", "decline", "declined", "increase", "increased",
	"decrease", "decreased", "yoy", "quarter", "quarterly", "annual",
	"margin", "margins", "eps", "earnings", "guidance", "profit",
	"income", "surged", "jumped", "dropped",
)

// fillerWords may precede a quotation excerpted mid-sentence
var fillerWords = wordSet(
	"a", "an", "the",
	"which", "that", "who",
	"to", "for", "from", "with", "by", "in", "on", "at", "of",
)

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
