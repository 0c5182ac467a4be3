package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/cryptox"
	"github.com/dmitrijs2005/gophaccounts/internal/logging"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/dmitrijs2005/gophaccounts/internal/server/principal"
	store "github.com/dmitrijs2005/gophaccounts/internal/server/repositories/accounts"
)

// RequestMeta describes the request that triggered a mutation. An empty
// PrincipalID is filled from the principal carried by the context.
type RequestMeta struct {
	RequestID   string
	PrincipalID string
	RemoteAddr  string
	UserAgent   string
}

// Hook runs after an update has been committed. Its error is logged and
// reported to the hook error observer; it never rolls back the update and
// never fails the request.
type Hook func(ctx context.Context, account *models.Account, changes ChangeSet, meta RequestMeta) error

// UpdateResult is the stored account after the update plus the change set
// that was applied.
type UpdateResult struct {
	Account *models.Account
	Changes ChangeSet
}

// Service orchestrates account reads, updates and deletes.
type Service struct {
	repo         store.Repository
	passwords    PasswordValidator
	hooks        []Hook
	hashPassword func(string) string
	onHookError  func(error)
	logger       logging.Logger
}

type Option func(*Service)

// WithHook appends a post-update hook. Hooks run in registration order.
func WithHook(h Hook) Option {
	return func(s *Service) {
		if h != nil {
			s.hooks = append(s.hooks, h)
		}
	}
}

func WithPasswordValidator(v PasswordValidator) Option {
	return func(s *Service) { s.passwords = v }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithHookErrorObserver registers a callback for every failed hook run.
func WithHookErrorObserver(fn func(error)) Option {
	return func(s *Service) { s.onHookError = fn }
}

// WithPasswordHasher replaces the argon2id hasher.
func WithPasswordHasher(fn func(string) string) Option {
	return func(s *Service) { s.hashPassword = fn }
}

func NewService(repo store.Repository, opts ...Option) *Service {
	s := &Service{
		repo:         repo,
		passwords:    PasswordPolicy{},
		hashPassword: cryptox.HashPassword,
		onHookError:  func(error) {},
		logger:       logging.Nop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("module", "accounts")
	return s
}

// Get returns the account with id or common.ErrorNotFound.
func (s *Service) Get(ctx context.Context, id string) (*models.Account, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error fetching account: %w", err)
	}
	return a, nil
}

// Update applies payload to account according to mode.
//
// Failures are terminal and returned as-is for the transport to translate:
// common.ErrorInvalidEmail, *common.InvalidPasswordError,
// common.ErrorAlreadyExists and common.ErrorNotFound. Hooks run only after
// the store accepted the write.
func (s *Service) Update(ctx context.Context, account *models.Account, payload models.AccountUpdate, mode Mode, meta RequestMeta) (*UpdateResult, error) {
	cs := ExtractChangeSet(payload, mode)
	if meta.PrincipalID == "" {
		meta.PrincipalID = actorID(ctx)
	}

	changes, err := s.prepare(ctx, account, &cs)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, account.ID, changes)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			return nil, common.ErrorAlreadyExists
		case errors.Is(err, common.ErrorNotFound):
			return nil, common.ErrorNotFound
		default:
			return nil, fmt.Errorf("error updating account: %w", err)
		}
	}

	s.logger.Info(ctx, "account updated",
		"account_id", updated.ID, "mode", mode.String(), "fields", cs.Fields(), "actor_id", meta.PrincipalID, "request_id", meta.RequestID)

	s.notify(ctx, updated, cs, meta)

	return &UpdateResult{Account: updated, Changes: cs}, nil
}

// Delete removes account. No hooks run on delete.
func (s *Service) Delete(ctx context.Context, account *models.Account) error {
	if err := s.repo.Delete(ctx, account.ID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting account: %w", err)
	}
	s.logger.Info(ctx, "account deleted", "account_id", account.ID, "actor_id", actorID(ctx))
	return nil
}

func actorID(ctx context.Context) string {
	if p, ok := principal.FromContext(ctx); ok {
		return p.ID()
	}
	return ""
}

// prepare validates cs and turns it into store changes. The email in cs is
// replaced by its normalized form so hooks see what was stored.
func (s *Service) prepare(ctx context.Context, account *models.Account, cs *ChangeSet) (models.AccountChanges, error) {
	changes := models.AccountChanges{
		DisplayName: cs.DisplayName,
		IsActive:    cs.IsActive,
		IsVerified:  cs.IsVerified,
		IsSuperuser: cs.IsSuperuser,
	}

	if cs.Email != nil {
		email, err := NormalizeEmail(*cs.Email)
		if err != nil {
			return models.AccountChanges{}, err
		}
		cs.Email = &email
		changes.Email = &email
	}

	if cs.Password != nil {
		if err := s.passwords.ValidatePassword(ctx, *cs.Password, account); err != nil {
			var invalid *common.InvalidPasswordError
			if errors.As(err, &invalid) {
				return models.AccountChanges{}, invalid
			}
			return models.AccountChanges{}, fmt.Errorf("error validating password: %w", err)
		}
		hashed := s.hashPassword(*cs.Password)
		changes.HashedPassword = &hashed
	}

	return changes, nil
}

func (s *Service) notify(ctx context.Context, account *models.Account, cs ChangeSet, meta RequestMeta) {
	for i, hook := range s.hooks {
		if err := runHook(ctx, hook, account, cs, meta); err != nil {
			s.logger.Warn(ctx, "after-update hook failed",
				"hook", i, "account_id", account.ID, "request_id", meta.RequestID, "error", err.Error())
			s.onHookError(err)
		}
	}
}

func runHook(ctx context.Context, hook Hook, account *models.Account, cs ChangeSet, meta RequestMeta) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("hook panicked: %v", p)
		}
	}()
	snapshot := *account
	return hook(ctx, &snapshot, cs, meta)
}
