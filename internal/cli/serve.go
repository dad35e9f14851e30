package cli

import (
	"fmt"
	"os"

	"github.com/draftdesk/factcheck/internal/cache"
	"github.com/draftdesk/factcheck/internal/fetch"
	"github.com/draftdesk/factcheck/internal/model"
	"github.com/draftdesk/factcheck/internal/pipeline"
	"github.com/draftdesk/factcheck/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the verification HTTP API",
	Long: `Serve exposes the verification pipeline over HTTP.

POST /api/check-numbers accepts an article plus either inline source
text or a source URL to fetch, and returns the full verification
report. GET /health reports liveness.

The LLM provider for line-by-line escalation is configured through the
environment (FACTCHECK_LLM_PROVIDER, OPENAI_API_KEY, ...) or the config
file; when none is configured the comparator falls back to lexical
matching only.

Example:
  factcheck serve
  factcheck serve --addr :9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()
	applyEnvConfig(cfg)

	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	checker := pipeline.NewChecker(cfg)

	var docCache cache.Cache
	if !cfg.Cache.Disabled {
		docCache = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}
	fetcher := fetch.New(cfg, docCache)

	engine := server.New(cfg.Server, checker, fetcher)

	fmt.Fprintf(os.Stderr, "factcheck listening on %s\n", cfg.Server.Addr)
	return engine.Run(cfg.Server.Addr)
}

// applyEnvConfig overlays viper-managed settings onto the defaults.
// Viper has already merged the config file and FACTCHECK_* env vars.
func applyEnvConfig(cfg *model.Config) {
	if provider := viper.GetString("llm.provider"); provider != "" {
		cfg.LLM.Provider = provider
	}
	if name := viper.GetString("llm.model"); name != "" {
		cfg.LLM.Model = name
	}
	if addr := viper.GetString("server.addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	if origins := viper.GetStringSlice("server.allowed_origins"); len(origins) > 0 {
		cfg.Server.AllowedOrigins = origins
	}
	if viper.GetBool("cache.disabled") {
		cfg.Cache.Disabled = true
	}
	if ua := viper.GetString("http.user_agent"); ua != "" {
		cfg.HTTP.UserAgent = ua
	}
	if viper.IsSet("fetch.respect_robots") {
		cfg.Fetch.RespectRobots = viper.GetBool("fetch.respect_robots")
	}

	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
}
