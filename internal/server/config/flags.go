package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/flagx"
)

var valuedFlags = []string{"-a", "-g", "-d", "-s", "-t", "-m", "-x", "-l", "-q", "-k", "-b", "-r", "-e", "-u", "-p", "-seed"}
var boolFlags = []string{"-v"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   gRPC health bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN; empty selects the in-memory store
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-v          require verified accounts
//	-m int      minimum password length
//	-x string   route prefix (e.g., "/users")
//	-l string   log level
//	-q float    rate limit, requests per second per caller
//	-k int      rate limit burst
//	-b string   S3 audit bucket
//	-r string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-u string   S3 root user
//	-p string   S3 root password
//	-seed string  seed file with accounts for the in-memory store
func parseFlags(config *Config) {
	args := flagx.FilterArgsWithBools(os.Args[1:], valuedFlags, boolFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run HTTP server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to run gRPC health server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.BoolVar(&config.RequireVerification, "v", config.RequireVerification, "require verified accounts")
	fs.IntVar(&config.PasswordMinLength, "m", config.PasswordMinLength, "minimum password length")
	fs.StringVar(&config.RoutePrefix, "x", config.RoutePrefix, "route prefix")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.Float64Var(&config.RateLimitRPS, "q", config.RateLimitRPS, "rate limit (requests per second)")
	fs.IntVar(&config.RateLimitBurst, "k", config.RateLimitBurst, "rate limit burst")
	fs.StringVar(&config.S3AuditBucket, "b", config.S3AuditBucket, "S3 audit bucket")
	fs.StringVar(&config.S3Region, "r", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.SeedFile, "seed", config.SeedFile, "seed file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
		}
	})
}
