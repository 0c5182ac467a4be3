package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophaccounts/internal/flagx"
	"github.com/dmitrijs2005/gophaccounts/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the config file. Only fields that are
// present in the file override the current Config.
type FileConfig struct {
	EndpointAddrHTTP            string          `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	EndpointAddrGRPC            string          `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	DatabaseDSN                 string          `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                   string          `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	RequireVerification         *bool           `json:"require_verification" yaml:"require_verification"`
	PasswordMinLength           int             `json:"password_min_length" yaml:"password_min_length"`
	RoutePrefix                 string          `json:"route_prefix" yaml:"route_prefix"`
	LogLevel                    string          `json:"log_level" yaml:"log_level"`
	RateLimitRPS                float64         `json:"rate_limit_rps" yaml:"rate_limit_rps"`
	RateLimitBurst              int             `json:"rate_limit_burst" yaml:"rate_limit_burst"`
	S3AuditBucket               string          `json:"s3_audit_bucket" yaml:"s3_audit_bucket"`
	S3Region                    string          `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint              string          `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	S3RootUser                  string          `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword              string          `json:"s3_root_password" yaml:"s3_root_password"`
	SeedFile                    string          `json:"seed_file" yaml:"seed_file"`
}

// parseFile loads the file named by -c/-config into config. Files ending in
// .yaml or .yml are decoded as YAML, anything else as JSON. A missing flag
// is a no-op; an unreadable or malformed file panics.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(config)
}

func (fc *FileConfig) apply(c *Config) {
	setString(&c.EndpointAddrHTTP, fc.EndpointAddrHTTP)
	setString(&c.EndpointAddrGRPC, fc.EndpointAddrGRPC)
	setString(&c.DatabaseDSN, fc.DatabaseDSN)
	setString(&c.SecretKey, fc.SecretKey)
	if fc.AccessTokenValidityDuration != nil {
		c.AccessTokenValidityDuration = fc.AccessTokenValidityDuration.Duration
	}
	if fc.RequireVerification != nil {
		c.RequireVerification = *fc.RequireVerification
	}
	if fc.PasswordMinLength > 0 {
		c.PasswordMinLength = fc.PasswordMinLength
	}
	setString(&c.RoutePrefix, fc.RoutePrefix)
	setString(&c.LogLevel, fc.LogLevel)
	if fc.RateLimitRPS > 0 {
		c.RateLimitRPS = fc.RateLimitRPS
	}
	if fc.RateLimitBurst > 0 {
		c.RateLimitBurst = fc.RateLimitBurst
	}
	setString(&c.S3AuditBucket, fc.S3AuditBucket)
	setString(&c.S3Region, fc.S3Region)
	setString(&c.S3BaseEndpoint, fc.S3BaseEndpoint)
	setString(&c.S3RootUser, fc.S3RootUser)
	setString(&c.S3RootPassword, fc.S3RootPassword)
	setString(&c.SeedFile, fc.SeedFile)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
