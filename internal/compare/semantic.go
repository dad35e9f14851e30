package compare

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/draftdesk/factcheck/internal/llm"
	"github.com/draftdesk/factcheck/internal/model"
)

const (
	defaultBatchSize   = 10
	defaultPhaseBudget = 60 * time.Second
	defaultCallTimeout = 20 * time.Second

	// Sources are press releases and analyst notes; past this point the
	// remainder is boilerplate and only inflates token cost
	maxSourceChars = 8000
)

// Comparator matches article lines against a source document, resolving
// what it can lexically and escalating the rest to a completion provider
// in bounded batches
type Comparator struct {
	provider    llm.Provider // nil disables the AI phase
	batchSize   int
	phaseBudget time.Duration
	callTimeout time.Duration
}

// NewComparator creates a line-level comparator. A nil provider is valid;
// unresolved lines then settle on the lexical fallback.
func NewComparator(provider llm.Provider, cfg model.CompareConfig) *Comparator {
	c := &Comparator{
		provider:    provider,
		batchSize:   cfg.BatchSize,
		phaseBudget: cfg.PhaseBudget,
		callTimeout: cfg.CallTimeout,
	}
	if c.batchSize <= 0 {
		c.batchSize = defaultBatchSize
	}
	if c.phaseBudget <= 0 {
		c.phaseBudget = defaultPhaseBudget
	}
	if c.callTimeout <= 0 {
		c.callTimeout = defaultCallTimeout
	}
	return c
}

// Compare splits both documents into sentence-like units, resolves lines
// by lexical overlap first, and escalates the remainder to the provider.
// It always returns a complete result; AI failures reduce precision,
// never availability.
func (c *Comparator) Compare(ctx context.Context, article, source string) *model.LineComparison {
	lines := SplitUnits(article)
	sourceUnits := SplitUnits(source)

	checks := make([]model.LineCheck, len(lines))
	var unresolved []int

	for i, line := range lines {
		sim := bestOverlap(line, sourceUnits)
		if sim >= lexicalThreshold {
			checks[i] = model.LineCheck{
				Line:       line,
				Supported:  true,
				Method:     "lexical",
				Similarity: sim,
			}
			continue
		}
		checks[i] = model.LineCheck{Line: line, Similarity: sim}
		unresolved = append(unresolved, i)
	}

	c.escalate(ctx, checks, unresolved, source)

	result := &model.LineComparison{Lines: checks}
	result.Summary.Total = len(checks)
	for _, check := range checks {
		if check.Supported {
			result.Summary.Supported++
		} else {
			result.Summary.Unverified++
		}
	}
	return result
}

// escalate sends unresolved lines to the provider in batches, enforcing
// the wall-clock budget across the whole phase. Any batch that fails
// (timeout, malformed response, provider error) falls back to the lexical
// verdict for its lines; later batches still run.
func (c *Comparator) escalate(ctx context.Context, checks []model.LineCheck, unresolved []int, source string) {
	if len(unresolved) == 0 {
		return
	}
	if c.provider == nil {
		for _, i := range unresolved {
			settleFallback(&checks[i])
		}
		return
	}

	deadline := time.Now().Add(c.phaseBudget)
	for start := 0; start < len(unresolved); start += c.batchSize {
		end := start + c.batchSize
		if end > len(unresolved) {
			end = len(unresolved)
		}
		batch := unresolved[start:end]

		if time.Now().After(deadline) || ctx.Err() != nil {
			for _, i := range batch {
				settleFallback(&checks[i])
			}
			continue
		}

		if err := c.judgeBatch(ctx, checks, batch, source); err != nil {
			for _, i := range batch {
				settleFallback(&checks[i])
			}
		}
	}
}

type lineVerdict struct {
	Line      int    `json:"line"`
	Supported bool   `json:"supported"`
	Note      string `json:"note,omitempty"`
}

// judgeBatch asks the provider for a semantic verdict on one batch of
// lines in a single completion call
func (c *Comparator) judgeBatch(ctx context.Context, checks []model.LineCheck, batch []int, source string) error {
	callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	resp, err := c.provider.Complete(callCtx, llm.CompletionRequest{
		System:      "You compare article sentences against a source document and judge whether each sentence is substantiated by it. Respond with JSON only.",
		Prompt:      c.buildPrompt(checks, batch, source),
		Temperature: 0.1,
	})
	if err != nil {
		return fmt.Errorf("completion: %w", err)
	}

	var verdicts []lineVerdict
	if err := llm.DecodeCompletion(resp.Text, &verdicts); err != nil {
		return fmt.Errorf("decode verdicts: %w", err)
	}

	judged := make(map[int]bool)
	for _, v := range verdicts {
		if v.Line < 0 || v.Line >= len(batch) {
			continue
		}
		i := batch[v.Line]
		checks[i].Supported = v.Supported
		checks[i].Method = "ai"
		checks[i].Note = v.Note
		judged[i] = true
	}

	// Lines the model skipped get the fallback verdict
	for _, i := range batch {
		if !judged[i] {
			settleFallback(&checks[i])
		}
	}
	return nil
}

func (c *Comparator) buildPrompt(checks []model.LineCheck, batch []int, source string) string {
	if len(source) > maxSourceChars {
		source = source[:maxSourceChars]
	}

	var b strings.Builder
	b.WriteString("Source document:\n---\n")
	b.WriteString(source)
	b.WriteString("\n---\n\nSentences to judge:\n")
	for n, i := range batch {
		fmt.Fprintf(&b, "%d. %s\n", n, checks[i].Line)
	}
	b.WriteString(`
For each sentence, decide whether the source document substantiates it.
Respond with a JSON array, one entry per sentence:
[{"line": 0, "supported": true, "note": "short reason"}]
Use the sentence numbers above. JSON only, no other text.`)
	return b.String()
}

func settleFallback(check *model.LineCheck) {
	check.Supported = check.Similarity >= fallbackThreshold
	check.Method = "fallback"
	check.Note = "not verified by AI"
}
