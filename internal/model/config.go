package model

import "time"

// Config is the full application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Library LibraryConfig `yaml:"library" mapstructure:"library"`
	Verify  VerifyConfig  `yaml:"verify" mapstructure:"verify"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	LLM     LLMConfig     `yaml:"llm" mapstructure:"llm"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
}

// StoreConfig configures the remote content store client. BaseURL is injected
// here instead of living as a module-level constant so tests can point the
// engine at a fake store.
type StoreConfig struct {
	BaseURL           string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `yaml:"burst" mapstructure:"burst"`
	HTTPProxy         string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy        string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy           string        `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// LibraryConfig configures the local SQLite library store.
type LibraryConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// VerifyConfig configures the verification run.
type VerifyConfig struct {
	PairTimeout time.Duration `yaml:"pair_timeout" mapstructure:"pair_timeout"`
}

// CacheConfig configures the run-scoped source content memo.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// LLMConfig configures the optional report summarizer.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "" disables
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"-"` // Environment only, never persisted
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// OutputConfig configures report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Timeout:           30 * time.Second,
			UserAgent:         "Citeguard/0.1 (+https://github.com/citeguard/citeguard)",
			MaxBodyBytes:      5_000_000,
			RequestsPerSecond: 5,
			Burst:             5,
		},
		Library: LibraryConfig{
			Path: "", // resolved to ~/.citeguard/library.db at startup
		},
		Verify: VerifyConfig{
			PairTimeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 1000,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
