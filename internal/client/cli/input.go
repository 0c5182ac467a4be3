package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
	stdinFd      = func() int { return int(os.Stdin.Fd()) }
)

var ErrNoToken = errors.New("no access token: use -token, ACCOUNTS_TOKEN or run on a terminal")

// GetSecret prints prompt to w and reads a line from the terminal without
// echo. The returned bytes are wiped after conversion.
func GetSecret(w io.Writer, prompt string) (string, error) {
	if !isTerminal(stdinFd()) {
		return "", ErrNoToken
	}
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	b, err := readPassword(stdinFd())
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(b)
	return strings.TrimSpace(string(b)), nil
}
