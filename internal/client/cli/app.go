package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/dmitrijs2005/gophaccounts/internal/client/client"
	"github.com/dmitrijs2005/gophaccounts/internal/client/config"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
)

var ErrUsage = errors.New("usage: cli [-a url] [-token t] me | get <id> | update <id|me> [flags] | delete <id>")

type App struct {
	config *config.Config
	out    io.Writer
	errOut io.Writer
	api    *client.Client
}

func NewApp(c *config.Config, out, errOut io.Writer) *App {
	return &App{config: c, out: out, errOut: errOut}
}

// Run executes one command. args are the command line without the global
// flags.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	if a.api == nil {
		token := a.config.Token
		if token == "" {
			var err error
			if token, err = GetSecret(a.errOut, "Enter access token: "); err != nil {
				return err
			}
		}
		a.api = client.New(a.config.ServerURL, a.config.RoutePrefix, token, a.config.Timeout)
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "me":
		return a.show(a.api.Get(ctx, client.Me))
	case "get":
		if len(rest) != 1 {
			return ErrUsage
		}
		return a.show(a.api.Get(ctx, rest[0]))
	case "update":
		if len(rest) < 1 {
			return ErrUsage
		}
		u, err := a.parseUpdate(rest[1:])
		if err != nil {
			return err
		}
		return a.show(a.api.Update(ctx, rest[0], u))
	case "delete":
		if len(rest) != 1 {
			return ErrUsage
		}
		if err := a.api.Delete(ctx, rest[0]); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "deleted %s\n", rest[0])
		return nil
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, ErrUsage)
	}
}

func (a *App) show(v any, err error) error {
	if err != nil {
		return err
	}
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// optBool is a flag that records whether it was set at all.
type optBool struct{ v *bool }

func (o *optBool) String() string {
	if o.v == nil {
		return ""
	}
	return strconv.FormatBool(*o.v)
}

func (o *optBool) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	o.v = &b
	return nil
}

func (o *optBool) IsBoolFlag() bool { return true }

// optString is a string flag that records whether it was set.
type optString struct{ v *string }

func (o *optString) String() string {
	if o.v == nil {
		return ""
	}
	return *o.v
}

func (o *optString) Set(s string) error {
	o.v = &s
	return nil
}

func (a *App) parseUpdate(args []string) (models.AccountUpdate, error) {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.SetOutput(a.errOut)

	var email, password, name optString
	var active, verified, superuser optBool
	askPassword := fs.Bool("password-prompt", false, "read the new password from the terminal")

	fs.Var(&email, "email", "new email")
	fs.Var(&password, "password", "new password")
	fs.Var(&name, "name", "new display name")
	fs.Var(&active, "active", "set the active flag")
	fs.Var(&verified, "verified", "set the verified flag")
	fs.Var(&superuser, "superuser", "set the superuser flag")

	if err := fs.Parse(args); err != nil {
		return models.AccountUpdate{}, err
	}

	if *askPassword {
		pw, err := GetSecret(a.errOut, "New password: ")
		if err != nil {
			return models.AccountUpdate{}, err
		}
		password.v = &pw
	}

	return models.AccountUpdate{
		Email:       email.v,
		Password:    password.v,
		DisplayName: name.v,
		IsActive:    active.v,
		IsVerified:  verified.v,
		IsSuperuser: superuser.v,
	}, nil
}
