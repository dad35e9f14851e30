package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/draftdesk/factcheck/internal/model"
	"github.com/draftdesk/factcheck/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	checkTimeout time.Duration
	outJSON      bool
	lineByLine   bool
	llmEnabled   bool
	llmProvider  string
	llmModel     string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <article-file> <source-file>",
	Short: "Verify an article's numbers and quotes against a source document",
	Long: `Check extracts every numeric claim and every quotation from the
article and independently locates each one in the source document.

Numbers are matched with unit-aware patterns (currency, percentages,
magnitudes, multiples, fiscal periods). Quotes walk a cascade from
verbatim match down to word-sequence and paraphrase detection. Claims
that cannot be located are reported as missing or not_found - those are
the lines to re-check by hand before publishing.

Example:
  factcheck check draft.txt transcript.txt
  factcheck check draft.txt transcript.txt --json
  factcheck check draft.txt transcript.txt --line-by-line --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(2),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall check timeout")
	checkCmd.Flags().BoolVar(&outJSON, "json", false, "emit the full report as JSON on stdout")
	checkCmd.Flags().BoolVar(&lineByLine, "line-by-line", false, "additionally compare each article line against the source")

	// LLM flags
	checkCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable AI escalation for the line-by-line pass")
	checkCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runCheck(cmd *cobra.Command, args []string) error {
	articlePath, sourcePath := args[0], args[1]

	article, err := os.ReadFile(articlePath)
	if err != nil {
		return fmt.Errorf("read article: %w", err)
	}
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg := model.DefaultConfig()
	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		// Get API key from environment
		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	checker := pipeline.NewChecker(cfg)

	report, err := checker.Check(ctx, string(article), string(source), lineByLine)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if outJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printReport(report)
	return nil
}

func printReport(report *model.Report) {
	fmt.Printf("Numbers: %d checked, %d matched, %d missing (%s%% match rate)\n",
		report.Numbers.Summary.Total,
		report.Numbers.Summary.Matches,
		report.Numbers.Summary.Missing,
		report.Numbers.Summary.MatchRate)
	for _, check := range report.Numbers.Checks {
		if check.Found {
			continue
		}
		fmt.Printf("  ✗ %-12s %s\n", check.Number, check.ArticleContext)
	}

	fmt.Printf("Quotes:  %d checked, %d exact, %d paraphrased, %d not found (%s%% exact rate)\n",
		report.Quotes.Summary.Total,
		report.Quotes.Summary.Exact,
		report.Quotes.Summary.Paraphrased,
		report.Quotes.Summary.NotFound,
		report.Quotes.Summary.ExactRate)
	for _, check := range report.Quotes.Checks {
		if check.Status == model.QuoteNotFound {
			fmt.Printf("  ✗ %q (%s)\n", check.Quote, check.Source)
		}
	}

	if report.LineByLine != nil {
		fmt.Printf("Lines:   %d checked, %d supported, %d unverified\n",
			report.LineByLine.Summary.Total,
			report.LineByLine.Summary.Supported,
			report.LineByLine.Summary.Unverified)
		for _, line := range report.LineByLine.Lines {
			if line.Supported {
				continue
			}
			note := line.Note
			if note == "" {
				note = line.Method
			}
			fmt.Printf("  ? %s (%s)\n", line.Line, note)
		}
	}
}
