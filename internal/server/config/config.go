// Package config handles configuration for the account service, layering
// defaults, a JSON/YAML file, environment variables and command-line flags.
package config

import "time"

// Config holds runtime settings for the account service.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the public HTTP API.
//   - EndpointAddrGRPC: bind address for the gRPC health endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - SecretKey: HMAC secret for verifying JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: lifetime of tokens minted by cmd/token.
//   - RequireVerification: callers must have a verified account to use any route.
//   - PasswordMinLength: minimum accepted length for a new password.
//   - S3AuditBucket: bucket receiving update audit events; empty disables auditing.
type Config struct {
	EndpointAddrHTTP            string        `env:"ACCOUNTS_HTTP_ADDR"`
	EndpointAddrGRPC            string        `env:"ACCOUNTS_GRPC_ADDR"`
	DatabaseDSN                 string        `env:"ACCOUNTS_DATABASE_DSN"`
	SecretKey                   string        `env:"ACCOUNTS_SECRET_KEY"`
	AccessTokenValidityDuration time.Duration `env:"ACCOUNTS_ACCESS_TOKEN_TTL"`
	RequireVerification         bool          `env:"ACCOUNTS_REQUIRE_VERIFICATION"`
	PasswordMinLength           int           `env:"ACCOUNTS_PASSWORD_MIN_LENGTH"`
	RoutePrefix                 string        `env:"ACCOUNTS_ROUTE_PREFIX"`
	LogLevel                    string        `env:"ACCOUNTS_LOG_LEVEL"`
	RateLimitRPS                float64       `env:"ACCOUNTS_RATE_LIMIT_RPS"`
	RateLimitBurst              int           `env:"ACCOUNTS_RATE_LIMIT_BURST"`
	S3AuditBucket               string        `env:"ACCOUNTS_S3_AUDIT_BUCKET"`
	S3Region                    string        `env:"ACCOUNTS_S3_REGION"`
	S3BaseEndpoint              string        `env:"ACCOUNTS_S3_BASE_ENDPOINT"`
	S3RootUser                  string        `env:"ACCOUNTS_S3_ROOT_USER"`
	S3RootPassword              string        `env:"ACCOUNTS_S3_ROOT_PASSWORD"`
	SeedFile                    string        `env:"ACCOUNTS_SEED_FILE"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.RequireVerification = false
	c.PasswordMinLength = 3
	c.RoutePrefix = "/users"
	c.LogLevel = "info"
	c.RateLimitRPS = 20
	c.RateLimitBurst = 40
	c.S3AuditBucket = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
	c.S3RootUser = ""
	c.S3RootPassword = ""
	c.SeedFile = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
