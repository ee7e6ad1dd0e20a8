package types

import "time"

// HTTPConfig holds shared HTTP settings used by every provider adapter.
type HTTPConfig struct {
	// Timeout bounds a single HTTP exchange, independent of the federation deadline.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with outbound requests
	// (e.g. "scholar-federator/0.1 (mailto:ops@example.org)").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ProviderConfig holds the per-provider switches and credentials.
type ProviderConfig struct {
	// Enabled controls whether the provider is built at all.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// RequestsPerSecond caps the outbound rate; zero means unlimited.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`

	// Burst is the token bucket size (default 1).
	Burst int `json:"burst" yaml:"burst" mapstructure:"burst"`

	// APIKey is an optional key for higher rate limits (Semantic Scholar).
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Email is sent as the polite-pool contact (OpenAlex, Crossref).
	Email string `json:"email,omitempty" yaml:"email,omitempty" mapstructure:"email"`
}

// FederationConfig is the policy the federator runs under. It is read once
// and never mutated by a search.
type FederationConfig struct {
	// ProviderTimeout bounds each provider call (default 5s).
	ProviderTimeout time.Duration `json:"provider_timeout" yaml:"provider_timeout" mapstructure:"provider_timeout"`

	// ProviderTimeouts overrides ProviderTimeout for individual providers.
	ProviderTimeouts map[string]time.Duration `json:"provider_timeouts,omitempty" yaml:"provider_timeouts,omitempty" mapstructure:"provider_timeouts"`

	// Priority orders providers for merging; the earlier provider's copy of
	// a duplicate is kept. Providers not listed follow in registration order.
	Priority []string `json:"priority" yaml:"priority" mapstructure:"priority"`

	// Trusted is the allow-list applied when trusted-only filtering is on.
	Trusted []string `json:"trusted" yaml:"trusted" mapstructure:"trusted"`

	// LimitScholarly is the default cap on merged resources (default 20).
	LimitScholarly int `json:"limit_scholarly" yaml:"limit_scholarly" mapstructure:"limit_scholarly"`

	// LimitWeb is the default cap on web results (default 10).
	LimitWeb int `json:"limit_web" yaml:"limit_web" mapstructure:"limit_web"`
}

// Config groups everything the CLI and server read from file, env and flags.
type Config struct {
	HTTP       HTTPConfig                `json:"http" yaml:"http" mapstructure:"http"`
	Federation FederationConfig          `json:"federation" yaml:"federation" mapstructure:"federation"`
	Providers  map[string]ProviderConfig `json:"providers" yaml:"providers" mapstructure:"providers"`
	Log        LogConfig                 `json:"log" yaml:"log" mapstructure:"log"`
	Serve      ServeConfig               `json:"serve" yaml:"serve" mapstructure:"serve"`
}

// LogConfig selects the logger flavour.
type LogConfig struct {
	// Env is "prod" for JSON output or "local"/"dev" for console output.
	Env string `json:"env" yaml:"env" mapstructure:"env"`

	// Level overrides the default level: debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// ServeConfig holds the HTTP entry point settings.
type ServeConfig struct {
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`
}

// Default provider names, in default merge priority.
const (
	ProviderArxiv           = "arxiv"
	ProviderOpenAlex        = "openalex"
	ProviderSemanticScholar = "semantic_scholar"
	ProviderEuropePMC       = "europepmc"
	ProviderCrossref        = "crossref"
	ProviderWikipedia       = "wikipedia"
	ProviderDuckDuckGo      = "duckduckgo"
)

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "scholar-federator/0.1",
		},
		Federation: DefaultFederationConfig(),
		Providers: map[string]ProviderConfig{
			// arXiv asks for no more than one request every three seconds.
			ProviderArxiv:           {Enabled: true, RequestsPerSecond: 1.0 / 3, Burst: 1},
			ProviderOpenAlex:        {Enabled: true, RequestsPerSecond: 10, Burst: 10},
			ProviderSemanticScholar: {Enabled: true, RequestsPerSecond: 1, Burst: 1},
			ProviderEuropePMC:       {Enabled: true, RequestsPerSecond: 10, Burst: 10},
			ProviderCrossref:        {Enabled: true, RequestsPerSecond: 5, Burst: 5},
			ProviderWikipedia:       {Enabled: true, RequestsPerSecond: 10, Burst: 10},
			ProviderDuckDuckGo:      {Enabled: true, RequestsPerSecond: 1, Burst: 2},
		},
		Log:   LogConfig{Env: "local", Level: "info"},
		Serve: ServeConfig{Addr: ":8080"},
	}
}

// DefaultFederationConfig returns the default merge policy.
func DefaultFederationConfig() FederationConfig {
	return FederationConfig{
		ProviderTimeout: 5 * time.Second,
		Priority: []string{
			ProviderArxiv,
			ProviderOpenAlex,
			ProviderSemanticScholar,
			ProviderEuropePMC,
			ProviderCrossref,
			ProviderWikipedia,
		},
		Trusted: []string{
			ProviderArxiv,
			ProviderOpenAlex,
			ProviderSemanticScholar,
			ProviderEuropePMC,
			ProviderCrossref,
		},
		LimitScholarly: 20,
		LimitWeb:       10,
	}
}

// TimeoutFor returns the deadline applied to the named provider.
func (c FederationConfig) TimeoutFor(name string) time.Duration {
	if d, ok := c.ProviderTimeouts[name]; ok && d > 0 {
		return d
	}
	if c.ProviderTimeout > 0 {
		return c.ProviderTimeout
	}
	return 5 * time.Second
}
