package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-federator/pkg/types"
)

// envPrefix namespaces environment overrides, e.g.
// SCHOLAR_FEDERATOR_FEDERATION_PROVIDER_TIMEOUT=3s.
const envPrefix = "SCHOLAR_FEDERATOR"

// setDefaults registers every key of def with v. AutomaticEnv only resolves
// keys viper already knows, and nested provider settings would otherwise be
// zeroed when a config file sets just one of them.
func setDefaults(v *viper.Viper, def types.Config) {
	v.SetDefault("http.timeout", def.HTTP.Timeout)
	v.SetDefault("http.user_agent", def.HTTP.UserAgent)

	v.SetDefault("federation.provider_timeout", def.Federation.ProviderTimeout)
	v.SetDefault("federation.provider_timeouts", map[string]any{})
	v.SetDefault("federation.priority", def.Federation.Priority)
	v.SetDefault("federation.trusted", def.Federation.Trusted)
	v.SetDefault("federation.limit_scholarly", def.Federation.LimitScholarly)
	v.SetDefault("federation.limit_web", def.Federation.LimitWeb)

	for name, pc := range def.Providers {
		prefix := "providers." + name + "."
		v.SetDefault(prefix+"enabled", pc.Enabled)
		v.SetDefault(prefix+"requests_per_second", pc.RequestsPerSecond)
		v.SetDefault(prefix+"burst", pc.Burst)
		v.SetDefault(prefix+"api_key", pc.APIKey)
		v.SetDefault(prefix+"email", pc.Email)
	}

	v.SetDefault("log.env", def.Log.Env)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("serve.addr", def.Serve.Addr)
}

// configureEnv enables SCHOLAR_FEDERATOR_* overrides for every known key.
func configureEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// loadConfig decodes v into a Config. Callers set defaults, read the
// config file and bind flags beforehand.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	if cfg.Federation.LimitScholarly < 0 || cfg.Federation.LimitWeb < 0 {
		return types.Config{}, fmt.Errorf("federation limits must not be negative")
	}
	return cfg, nil
}
