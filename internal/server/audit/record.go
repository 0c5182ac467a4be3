// Package audit provides after-update hooks that record account changes.
package audit

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/logging"
	"github.com/dmitrijs2005/gophaccounts/internal/server/accounts"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/google/uuid"
)

// Record is one committed account change. Password values are masked.
type Record struct {
	ID          string         `json:"id"`
	OccurredAt  time.Time      `json:"occurred_at"`
	AccountID   string         `json:"account_id"`
	Email       string         `json:"email"`
	PrincipalID string         `json:"principal_id,omitempty"`
	RequestID   string         `json:"request_id,omitempty"`
	RemoteAddr  string         `json:"remote_addr,omitempty"`
	UserAgent   string         `json:"user_agent,omitempty"`
	Fields      []string       `json:"fields"`
	Changes     map[string]any `json:"changes"`
}

func newRecord(now time.Time, a *models.Account, cs accounts.ChangeSet, meta accounts.RequestMeta) Record {
	return Record{
		ID:          uuid.NewString(),
		OccurredAt:  now.UTC(),
		AccountID:   a.ID,
		Email:       a.Email,
		PrincipalID: meta.PrincipalID,
		RequestID:   meta.RequestID,
		RemoteAddr:  meta.RemoteAddr,
		UserAgent:   meta.UserAgent,
		Fields:      cs.Fields(),
		Changes:     cs.Redacted(),
	}
}

// LogHook writes every change to logger. It never fails.
func LogHook(logger logging.Logger) accounts.Hook {
	logger = logger.With("module", "audit")
	return func(ctx context.Context, a *models.Account, cs accounts.ChangeSet, meta accounts.RequestMeta) error {
		r := newRecord(time.Now(), a, cs, meta)
		logger.Info(ctx, "account changed",
			"account_id", r.AccountID,
			"principal_id", r.PrincipalID,
			"request_id", r.RequestID,
			"fields", r.Fields,
		)
		return nil
	}
}
