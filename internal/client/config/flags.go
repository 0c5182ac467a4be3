package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/gophaccounts/internal/flagx"
)

// GlobalFlags are the flags parsed here. Everything else on the command
// line belongs to the subcommand.
var GlobalFlags = []string{"-a", "-x", "-token", "-timeout", "-c", "-config"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string        base URL of the HTTP API
//	-x string        route prefix
//	-token string    bearer access token
//	-timeout dur     request timeout (e.g. "5s")
func parseFlags(cfg *Config) {
	applyFlags(cfg, os.Args[1:])
}

func applyFlags(cfg *Config, argv []string) {
	args := flagx.FilterArgs(argv, []string{"-a", "-x", "-token", "-timeout"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the account service")
	fs.StringVar(&cfg.RoutePrefix, "x", cfg.RoutePrefix, "route prefix")
	fs.StringVar(&cfg.Token, "token", cfg.Token, "bearer access token")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "request timeout")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
