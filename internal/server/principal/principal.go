// Package principal resolves the authenticated caller of an HTTP request
// and enforces the per-route gate.
package principal

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/server/auth"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/google/uuid"
)

// Requirements is the gate a route imposes on its caller.
type Requirements struct {
	Active    bool
	Verified  bool
	Superuser bool
}

// Principal is the authenticated caller.
type Principal struct {
	Account *models.Account
}

func (p *Principal) ID() string { return p.Account.ID }

// AccountGetter is the slice of the account store the resolver needs.
type AccountGetter interface {
	GetByID(ctx context.Context, id string) (*models.Account, error)
}

// Resolver turns a bearer access token into a Principal.
type Resolver struct {
	accounts  AccountGetter
	jwtSecret []byte
}

func NewResolver(accounts AccountGetter, secretKey string) *Resolver {
	return &Resolver{accounts: accounts, jwtSecret: []byte(secretKey)}
}

// Resolve authenticates r and checks req.
//
// A missing or bad token, a token subject that is not an account id, an unknown account and an inactive account
// (when Active is required) yield common.ErrorUnauthorized. Failing the
// Verified or Superuser requirement yields common.ErrorForbidden. Other
// store failures are returned wrapped.
func (res *Resolver) Resolve(r *http.Request, req Requirements) (*Principal, error) {
	token, ok := BearerToken(r)
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	sub, err := auth.GetUserIDFromToken(token, res.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	account, err := res.accounts.GetByID(r.Context(), id.String())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}

	if err := Check(account, req); err != nil {
		return nil, err
	}
	return &Principal{Account: account}, nil
}

// Check applies req to an already loaded account.
func Check(a *models.Account, req Requirements) error {
	if req.Active && !a.IsActive {
		return common.ErrorUnauthorized
	}
	if req.Verified && !a.IsVerified {
		return common.ErrorForbidden
	}
	if req.Superuser && !a.IsSuperuser {
		return common.ErrorForbidden
	}
	return nil
}

// BearerToken extracts the token from the Authorization header. The scheme
// is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	h := strings.TrimSpace(r.Header.Get(common.AuthorizationHeaderName))
	if len(h) < len(common.BearerPrefix) || !strings.EqualFold(h[:len(common.BearerPrefix)], common.BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(common.BearerPrefix):])
	return token, token != ""
}

type ctxKey string

const principalKey ctxKey = "principal"

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// FromContext returns the principal stored by WithPrincipal.
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok && p != nil
}
