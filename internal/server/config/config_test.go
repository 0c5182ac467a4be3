package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Empty(t, c.DatabaseDSN)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, 15*time.Minute, c.AccessTokenValidityDuration)
	assert.False(t, c.RequireVerification)
	assert.Equal(t, 3, c.PasswordMinLength)
	assert.Equal(t, "/users", c.RoutePrefix)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 20.0, c.RateLimitRPS)
	assert.Equal(t, 40, c.RateLimitBurst)
	assert.Empty(t, c.S3AuditBucket)
	assert.Equal(t, "us-east-1", c.S3Region)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	c := LoadConfig()
	require.NotNil(t, c, "LoadConfig must not return nil")

	assert.Equal(t, "/users", c.RoutePrefix)
	assert.Equal(t, 15*time.Minute, c.AccessTokenValidityDuration)
}

func TestParseEnv_OverridesOnlySetVariables(t *testing.T) {
	t.Setenv("ACCOUNTS_HTTP_ADDR", ":9999")
	t.Setenv("ACCOUNTS_REQUIRE_VERIFICATION", "true")
	t.Setenv("ACCOUNTS_ACCESS_TOKEN_TTL", "2h")

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)

	assert.Equal(t, ":9999", c.EndpointAddrHTTP)
	assert.True(t, c.RequireVerification)
	assert.Equal(t, 2*time.Hour, c.AccessTokenValidityDuration)
	assert.Equal(t, "/users", c.RoutePrefix)
}

func TestParseEnv_InvalidValuePanics(t *testing.T) {
	t.Setenv("ACCOUNTS_PASSWORD_MIN_LENGTH", "many")

	c := &Config{}
	require.Panics(t, func() { parseEnv(c) })
}

func TestLoadConfig_EnvTTLSurvivesAbsentFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}
	t.Setenv("ACCOUNTS_ACCESS_TOKEN_TTL", "90s")

	c := LoadConfig()

	assert.Equal(t, 90*time.Second, c.AccessTokenValidityDuration)
}

func TestLoadConfig_TTLFlagOverridesEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-t", "2"}
	t.Setenv("ACCOUNTS_ACCESS_TOKEN_TTL", "90s")

	c := LoadConfig()

	assert.Equal(t, 2*time.Minute, c.AccessTokenValidityDuration)
}
