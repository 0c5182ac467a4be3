// Package accounts is the account store gateway: lookups by ID or email,
// partial updates and deletes. Implementations report a missing record as
// common.ErrorNotFound and an email collision as common.ErrorAlreadyExists.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	// Update applies changes atomically and returns the stored record.
	// Email uniqueness is checked here, at write time.
	Update(ctx context.Context, id string, changes models.AccountChanges) (*models.Account, error)
	Delete(ctx context.Context, id string) error
}
