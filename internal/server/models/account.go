// Package models holds the account records shared by the store, the
// mutation service and the transport layer.
package models

import (
	"encoding/json"
	"time"
)

// Account is the stored account record. HashedPassword never leaves the
// server; the HTTP layer renders a separate public schema.
type Account struct {
	ID             string
	Email          string
	HashedPassword string
	DisplayName    string
	IsActive       bool
	IsVerified     bool
	IsSuperuser    bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AccountUpdate is the decoded PATCH body. A nil field was not sent.
//
// The flag fields accept both the "is_active" spelling used in responses
// and the short "active" spelling; when both are present "is_*" wins.
type AccountUpdate struct {
	Email       *string `json:"email,omitempty"`
	Password    *string `json:"password,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	IsVerified  *bool   `json:"is_verified,omitempty"`
	IsSuperuser *bool   `json:"is_superuser,omitempty"`
}

func (u *AccountUpdate) UnmarshalJSON(b []byte) error {
	type plain AccountUpdate
	var doc struct {
		plain
		Active    *bool `json:"active"`
		Verified  *bool `json:"verified"`
		Superuser *bool `json:"superuser"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	*u = AccountUpdate(doc.plain)
	if u.IsActive == nil {
		u.IsActive = doc.Active
	}
	if u.IsVerified == nil {
		u.IsVerified = doc.Verified
	}
	if u.IsSuperuser == nil {
		u.IsSuperuser = doc.Superuser
	}
	return nil
}

// AccountChanges is what the store applies: the change set after password
// hashing. Nil fields are left untouched.
type AccountChanges struct {
	Email          *string
	HashedPassword *string
	DisplayName    *string
	IsActive       *bool
	IsVerified     *bool
	IsSuperuser    *bool
}

// IsEmpty reports whether no field is set.
func (c AccountChanges) IsEmpty() bool {
	return c.Email == nil && c.HashedPassword == nil && c.DisplayName == nil &&
		c.IsActive == nil && c.IsVerified == nil && c.IsSuperuser == nil
}

// ApplyTo copies every set field onto a. ID and CreatedAt are never touched.
func (c AccountChanges) ApplyTo(a *Account) {
	if c.Email != nil {
		a.Email = *c.Email
	}
	if c.HashedPassword != nil {
		a.HashedPassword = *c.HashedPassword
	}
	if c.DisplayName != nil {
		a.DisplayName = *c.DisplayName
	}
	if c.IsActive != nil {
		a.IsActive = *c.IsActive
	}
	if c.IsVerified != nil {
		a.IsVerified = *c.IsVerified
	}
	if c.IsSuperuser != nil {
		a.IsSuperuser = *c.IsSuperuser
	}
}
