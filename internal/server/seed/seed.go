// Package seed loads bootstrap accounts (typically the first superuser)
// from a YAML or JSON file.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/dbx"
	"github.com/dmitrijs2005/gophaccounts/internal/server/accounts"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	repo "github.com/dmitrijs2005/gophaccounts/internal/server/repositories/accounts"
	"gopkg.in/yaml.v3"
)

type Account struct {
	Email       string `json:"email" yaml:"email"`
	Password    string `json:"password" yaml:"password"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	IsActive    *bool  `json:"is_active" yaml:"is_active"`
	IsVerified  bool   `json:"is_verified" yaml:"is_verified"`
	IsSuperuser bool   `json:"is_superuser" yaml:"is_superuser"`
}

type File struct {
	Accounts []Account `json:"accounts" yaml:"accounts"`
}

// ReadFile parses path as YAML unless it ends in .json.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var f File
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &f)
	} else {
		err = yaml.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return &f, nil
}

// Apply creates every account in f whose email is not taken yet and
// returns how many were created. Accounts are active unless is_active is
// false.
func Apply(ctx context.Context, r repo.Repository, f *File, hash func(string) string) (int, error) {
	created := 0
	for i, s := range f.Accounts {
		email, err := accounts.NormalizeEmail(s.Email)
		if err != nil {
			return created, fmt.Errorf("seed account %d: %w", i, err)
		}
		if s.Password == "" {
			return created, fmt.Errorf("seed account %s: empty password", email)
		}

		_, err = r.GetByEmail(ctx, email)
		if err == nil {
			continue
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return created, err
		}

		active := true
		if s.IsActive != nil {
			active = *s.IsActive
		}

		_, err = r.Create(ctx, &models.Account{
			Email:          email,
			HashedPassword: hash(s.Password),
			DisplayName:    s.DisplayName,
			IsActive:       active,
			IsVerified:     s.IsVerified,
			IsSuperuser:    s.IsSuperuser,
		})
		if errors.Is(err, common.ErrorAlreadyExists) {
			continue
		}
		if err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// ApplyTx runs Apply inside a single transaction so a failing entry leaves
// the database untouched.
func ApplyTx(ctx context.Context, db dbx.TxBeginner, newRepo func(dbx.DBTX) repo.Repository, f *File, hash func(string) string) (int, error) {
	var created int
	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		created, err = Apply(ctx, newRepo(tx), f, hash)
		return err
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
