// Package config holds settings for the admin CLI. Values are layered:
// defaults, then a JSON file (-c/-config), then ACCOUNTS_* environment
// variables, then command-line flags.
package config

import "time"

// Config holds runtime settings for the admin CLI.
//
// Fields:
//   - ServerURL: base URL of the account service HTTP API.
//   - RoutePrefix: prefix the account routes are mounted under.
//   - Token: bearer access token; prompted for when empty.
//   - Timeout: per-request HTTP timeout.
type Config struct {
	ServerURL   string        `env:"ACCOUNTS_URL"`
	RoutePrefix string        `env:"ACCOUNTS_ROUTE_PREFIX"`
	Token       string        `env:"ACCOUNTS_TOKEN"`
	Timeout     time.Duration `env:"ACCOUNTS_CLIENT_TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RoutePrefix = "/users"
	c.Token = ""
	c.Timeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
