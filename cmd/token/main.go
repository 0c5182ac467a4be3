// Command token prints a signed access token for an account. It is a
// development helper; the service itself does not issue tokens.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophaccounts/internal/flagx"
	"github.com/dmitrijs2005/gophaccounts/internal/server/auth"
	"github.com/dmitrijs2005/gophaccounts/internal/server/config"
	"github.com/google/uuid"
)

func main() {

	cfg := config.LoadConfig()

	var id string
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.StringVar(&id, "id", "", "account id")
	if err := fs.Parse(flagx.FilterArgs(os.Args[1:], []string{"-id"})); err != nil {
		os.Exit(2)
	}
	if id == "" {
		fmt.Fprintln(os.Stderr, "usage: token -id <account-id> [-s secret] [-t minutes]")
		os.Exit(2)
	}

	if _, err := uuid.Parse(id); err != nil {
		fmt.Fprintf(os.Stderr, "invalid account id %q: %v\n", id, err)
		os.Exit(2)
	}

	token, err := auth.GenerateToken(id, []byte(cfg.SecretKey), cfg.AccessTokenValidityDuration)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)

}
