package accounts

import (
	"testing"

	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func fullPayload() models.AccountUpdate {
	return models.AccountUpdate{
		Email:       ptr("new@x.com"),
		Password:    ptr("secret123"),
		DisplayName: ptr("New"),
		IsActive:    ptr(false),
		IsVerified:  ptr(true),
		IsSuperuser: ptr(true),
	}
}

func TestSelfChangeSet_DropsPrivilegeFlags(t *testing.T) {
	cs := SelfChangeSet(fullPayload())

	assert.Nil(t, cs.IsActive)
	assert.Nil(t, cs.IsVerified)
	assert.Nil(t, cs.IsSuperuser)
	assert.Equal(t, "new@x.com", *cs.Email)
	assert.Equal(t, "secret123", *cs.Password)
	assert.Equal(t, "New", *cs.DisplayName)
}

func TestPrivilegedChangeSet_CopiesEverything(t *testing.T) {
	p := fullPayload()
	cs := PrivilegedChangeSet(p)

	want := ChangeSet{
		Email:       p.Email,
		Password:    p.Password,
		DisplayName: p.DisplayName,
		IsActive:    p.IsActive,
		IsVerified:  p.IsVerified,
		IsSuperuser: p.IsSuperuser,
	}
	if diff := cmp.Diff(want, cs); diff != "" {
		t.Fatalf("change set mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractChangeSet_DispatchesOnMode(t *testing.T) {
	p := models.AccountUpdate{IsSuperuser: ptr(true)}

	assert.Empty(t, ExtractChangeSet(p, ModeSelf).Fields())
	assert.Equal(t, []string{"is_superuser"}, ExtractChangeSet(p, ModePrivileged).Fields())
}

func TestChangeSet_RedactedMasksPassword(t *testing.T) {
	cs := PrivilegedChangeSet(fullPayload())
	red := cs.Redacted()

	assert.Equal(t, "**********", red["password"])
	assert.Equal(t, "new@x.com", red["email"])
	assert.Equal(t, false, red["is_active"])
	assert.Equal(t,
		[]string{"display_name", "email", "is_active", "is_superuser", "is_verified", "password"},
		cs.Fields())
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "self", ModeSelf.String())
	assert.Equal(t, "privileged", ModePrivileged.String())
}
