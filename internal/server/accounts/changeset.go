// Package accounts implements the account mutation pipeline: change-set
// extraction per caller mode, password and email rules, persistence through
// the store gateway and the post-update hooks.
package accounts

import (
	"sort"

	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
)

// Mode selects which fields a caller may touch. It is fixed by the route
// that was invoked, never by comparing identifiers.
type Mode int

const (
	// ModeSelf is the self-service route: the caller edits their own profile.
	ModeSelf Mode = iota
	// ModePrivileged is the administrative route.
	ModePrivileged
)

func (m Mode) String() string {
	if m == ModePrivileged {
		return "privileged"
	}
	return "self"
}

// ChangeSet is the set of fields a request asked to change, after
// mode-based extraction. Password is still plaintext here.
type ChangeSet struct {
	Email       *string
	Password    *string
	DisplayName *string
	IsActive    *bool
	IsVerified  *bool
	IsSuperuser *bool
}

// SelfChangeSet copies only the fields an account holder may change on
// their own account. Privilege flags in the payload are dropped silently.
func SelfChangeSet(p models.AccountUpdate) ChangeSet {
	return ChangeSet{
		Email:       p.Email,
		Password:    p.Password,
		DisplayName: p.DisplayName,
	}
}

// PrivilegedChangeSet copies every settable field, including the
// active/verified/superuser flags.
func PrivilegedChangeSet(p models.AccountUpdate) ChangeSet {
	cs := SelfChangeSet(p)
	cs.IsActive = p.IsActive
	cs.IsVerified = p.IsVerified
	cs.IsSuperuser = p.IsSuperuser
	return cs
}

// ExtractChangeSet dispatches on mode.
func ExtractChangeSet(p models.AccountUpdate, mode Mode) ChangeSet {
	if mode == ModePrivileged {
		return PrivilegedChangeSet(p)
	}
	return SelfChangeSet(p)
}

// Fields returns the sorted wire names of the fields that are set.
func (c ChangeSet) Fields() []string {
	fields := make([]string, 0, 6)
	for name := range c.Redacted() {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fields
}

// Redacted returns the set fields keyed by wire name with the password
// value masked. It is what ends up in logs and audit records.
func (c ChangeSet) Redacted() map[string]any {
	out := make(map[string]any, 6)
	if c.Email != nil {
		out["email"] = *c.Email
	}
	if c.Password != nil {
		out["password"] = "**********"
	}
	if c.DisplayName != nil {
		out["display_name"] = *c.DisplayName
	}
	if c.IsActive != nil {
		out["is_active"] = *c.IsActive
	}
	if c.IsVerified != nil {
		out["is_verified"] = *c.IsVerified
	}
	if c.IsSuperuser != nil {
		out["is_superuser"] = *c.IsSuperuser
	}
	return out
}
