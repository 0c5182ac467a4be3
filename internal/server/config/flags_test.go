package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-g", ":6000", "-d", "db", "-s", "secret", "-t", "5", "-v",
			"-m", "10", "-x", "/accounts", "-l", "debug", "-q", "2.5", "-k", "7",
			"-b", "bucket", "-r", "us-west-1", "-e", "http://endpoint", "-u", "user", "-p", "password",
			"-seed", "seed.yaml",
		},
			expected: &Config{
				EndpointAddrHTTP:            "127.0.0.1:9090",
				EndpointAddrGRPC:            ":6000",
				DatabaseDSN:                 "db",
				SecretKey:                   "secret",
				AccessTokenValidityDuration: 5 * time.Minute,
				RequireVerification:         true,
				PasswordMinLength:           10,
				RoutePrefix:                 "/accounts",
				LogLevel:                    "debug",
				RateLimitRPS:                2.5,
				RateLimitBurst:              7,
				S3AuditBucket:               "bucket",
				S3Region:                    "us-west-1",
				S3BaseEndpoint:              "http://endpoint",
				S3RootUser:                  "user",
				S3RootPassword:              "password",
				SeedFile:                    "seed.yaml",
			}},
		{name: "bad int panics", args: []string{"cmd", "-m", "ten"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
