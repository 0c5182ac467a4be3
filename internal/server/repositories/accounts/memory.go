package accounts

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps accounts in process memory. Every read and write
// holds the mutex, so each call is atomic on its own.
type MemoryRepository struct {
	mu       sync.RWMutex
	byID     map[string]models.Account
	idByMail map[string]string
	now      func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:     make(map[string]models.Account),
		idByMail: make(map[string]string),
		now:      time.Now,
	}
}

func (r *MemoryRepository) Create(_ context.Context, a *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := emailKey(a.Email)
	if _, taken := r.idByMail[key]; taken {
		return nil, common.ErrorAlreadyExists
	}

	stored := *a
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if _, taken := r.byID[stored.ID]; taken {
		return nil, common.ErrorAlreadyExists
	}
	now := r.now().UTC()
	stored.CreatedAt, stored.UpdatedAt = now, now

	r.byID[stored.ID] = stored
	r.idByMail[key] = stored.ID

	out := stored
	return &out, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &a, nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.idByMail[emailKey(email)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	a := r.byID[id]
	return &a, nil
}

func (r *MemoryRepository) Update(_ context.Context, id string, changes models.AccountChanges) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if changes.IsEmpty() {
		return &a, nil
	}

	oldKey := emailKey(a.Email)
	if changes.Email != nil {
		newKey := emailKey(*changes.Email)
		if owner, taken := r.idByMail[newKey]; taken && owner != id {
			return nil, common.ErrorAlreadyExists
		}
	}

	changes.ApplyTo(&a)
	a.UpdatedAt = r.now().UTC()

	if newKey := emailKey(a.Email); newKey != oldKey {
		delete(r.idByMail, oldKey)
		r.idByMail[newKey] = id
	}
	r.byID[id] = a

	out := a
	return &out, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	delete(r.idByMail, emailKey(a.Email))
	delete(r.byID, id)
	return nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
