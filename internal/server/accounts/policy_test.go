package accounts

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordPolicy_ValidatePassword(t *testing.T) {
	account := &models.Account{Email: "king.arthur@camelot.bt"}
	policy := PasswordPolicy{MinLength: 3}

	tests := []struct {
		name       string
		password   string
		wantReason string
	}{
		{name: "ok", password: "guinevere"},
		{name: "too short", password: "ab", wantReason: "Password should be at least 3 characters"},
		{name: "contains email", password: "xKing.Arthur@camelot.BTx", wantReason: "Password should not contain e-mail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.ValidatePassword(context.Background(), tt.password, account)
			if tt.wantReason == "" {
				assert.NoError(t, err)
				return
			}
			var invalid *common.InvalidPasswordError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.wantReason, invalid.Reason)
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "  Lancelot@Camelot.BT ", want: "lancelot@camelot.bt"},
		{in: "a@b.co", want: "a@b.co"},
		{in: "", wantErr: true},
		{in: "not-an-email", wantErr: true},
		{in: "Lancelot <lancelot@camelot.bt>", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeEmail(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrorInvalidEmail)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
