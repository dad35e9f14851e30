package model

import "time"

// Config holds the complete factcheck configuration
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Fetch       FetchConfig       `yaml:"fetch"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	LLM         LLMConfig         `yaml:"llm"`
	Compare     CompareConfig     `yaml:"compare"`
	Server      ServerConfig      `yaml:"server"`
}

// HTTPConfig controls the outbound HTTP client used by the source fetcher
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy"`
	InsecureTLS  bool          `yaml:"insecure_tls"`
}

// FetchConfig controls source-document fetch politeness
type FetchConfig struct {
	RespectRobots     bool    `yaml:"respect_robots"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// CacheConfig controls the in-memory source document cache
type CacheConfig struct {
	Disabled        bool          `yaml:"disabled"`
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// ConcurrencyConfig bounds per-request parallelism
type ConcurrencyConfig struct {
	VerifyWorkers int `yaml:"verify_workers"`
}

// LLMConfig configures the optional completion provider
type LLMConfig struct {
	Provider   string `yaml:"provider"` // "openai", "anthropic", "ollama" or "" (disabled)
	Model      string `yaml:"model"`
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Timeout    int    `yaml:"timeout"` // seconds
	MaxTokens  int    `yaml:"max_tokens"`
	HTTPProxy  string `yaml:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy"`
	NoProxy    string `yaml:"no_proxy"`
}

// CompareConfig controls the optional line-by-line semantic comparator
type CompareConfig struct {
	Enabled     bool          `yaml:"enabled"`
	BatchSize   int           `yaml:"batch_size"`
	PhaseBudget time.Duration `yaml:"phase_budget"` // Wall-clock ceiling for the whole AI phase
	CallTimeout time.Duration `yaml:"call_timeout"` // Per completion call
}

// ServerConfig controls the HTTP API surface
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "factcheck/0.3 (+https://github.com/draftdesk/factcheck)",
			MaxBodyBytes: 2_000_000,
		},
		Fetch: FetchConfig{
			RespectRobots:     true,
			RequestsPerSecond: 1,
			Burst:             3,
		},
		Cache: CacheConfig{
			TTL:             15 * time.Minute,
			CleanupInterval: 5 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			VerifyWorkers: 4,
		},
		LLM: LLMConfig{
			Timeout:   20,
			MaxTokens: 2000,
		},
		Compare: CompareConfig{
			BatchSize:   10,
			PhaseBudget: 60 * time.Second,
			CallTimeout: 20 * time.Second,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}
