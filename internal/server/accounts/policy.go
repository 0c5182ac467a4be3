package accounts

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
)

// PasswordValidator checks a proposed password for account. Rejections must
// be *common.InvalidPasswordError so the reason reaches the caller.
type PasswordValidator interface {
	ValidatePassword(ctx context.Context, password string, account *models.Account) error
}

// PasswordPolicy is the default PasswordValidator.
type PasswordPolicy struct {
	MinLength int
}

func (p PasswordPolicy) ValidatePassword(_ context.Context, password string, account *models.Account) error {
	if len([]rune(password)) < p.MinLength {
		return common.NewInvalidPasswordError(fmt.Sprintf("Password should be at least %d characters", p.MinLength))
	}
	if account != nil && account.Email != "" &&
		strings.Contains(strings.ToLower(password), strings.ToLower(account.Email)) {
		return common.NewInvalidPasswordError("Password should not contain e-mail")
	}
	return nil
}

// NormalizeEmail trims and lower-cases email and checks it is a bare
// address. It does not check uniqueness.
func NormalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", common.ErrorInvalidEmail
	}

	addr, err := mail.ParseAddress(normalized)
	if err != nil || addr.Address != normalized || addr.Name != "" {
		return "", common.ErrorInvalidEmail
	}
	return normalized, nil
}
