package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountUpdate_UnmarshalJSON_Aliases(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		wantActive    *bool
		wantSuperuser *bool
	}{
		{name: "long names", body: `{"is_active": false, "is_superuser": true}`, wantActive: ptr(false), wantSuperuser: ptr(true)},
		{name: "short names", body: `{"active": false, "superuser": true}`, wantActive: ptr(false), wantSuperuser: ptr(true)},
		{name: "long wins", body: `{"is_superuser": false, "superuser": true}`, wantSuperuser: ptr(false)},
		{name: "absent", body: `{"email": "a@b.c"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u AccountUpdate
			require.NoError(t, json.Unmarshal([]byte(tt.body), &u))
			assert.Equal(t, tt.wantActive, u.IsActive)
			assert.Equal(t, tt.wantSuperuser, u.IsSuperuser)
		})
	}
}

func TestAccountChanges_ApplyTo(t *testing.T) {
	a := &Account{ID: "id-1", Email: "old@x.com", DisplayName: "Old", IsActive: true}
	email := "new@x.com"

	c := AccountChanges{Email: &email, IsActive: ptr(false)}
	require.False(t, c.IsEmpty())
	c.ApplyTo(a)

	assert.Equal(t, "id-1", a.ID)
	assert.Equal(t, "new@x.com", a.Email)
	assert.Equal(t, "Old", a.DisplayName)
	assert.False(t, a.IsActive)
	assert.True(t, AccountChanges{}.IsEmpty())
}

func ptr[T any](v T) *T { return &v }
