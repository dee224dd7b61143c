package staff_test

import (
	"testing"
	"time"

	apperrors "github.com/jrsteele09/go-pg-admin/internal/errors"
	"github.com/jrsteele09/go-pg-admin/staff"
	"github.com/jrsteele09/go-pg-admin/staff/memrepo"
	"github.com/stretchr/testify/require"
)

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		wantErr  string
	}{
		{"Admin@1234", ""},
		{"Ab1", "at least 8 characters"},
		{"admin1234", "uppercase"},
		{"ADMIN1234", "lowercase"},
		{"AdminAdmin", "number"},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := staff.ValidatePasswordStrength(tt.password)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestNew(t *testing.T) {
	account, err := staff.New("Ramesh Kumar", "warden@pg.local", staff.RoleWarden, "Warden@123")
	require.NoError(t, err)
	require.NotEqual(t, "Warden@123", account.PasswordHash)
	require.True(t, staff.CheckPasswordHash("Warden@123", account.PasswordHash))
	require.False(t, staff.CheckPasswordHash("warden@123", account.PasswordHash))

	require.True(t, account.CanAccess(staff.PermDecideApprovals))
	require.False(t, account.CanAccess(staff.PermViewPayments))

	profile := account.Profile()
	require.Equal(t, "warden", profile.Role)
	require.Nil(t, profile.LastLogin)

	_, err = staff.New("Weak", "weak@pg.local", staff.RoleManager, "weak")
	require.Error(t, err)
}

func TestMemRepo(t *testing.T) {
	repo := memrepo.New()
	account, err := staff.New("Priya Nair", "Manager@PG.local", staff.RoleManager, "Manager@123")
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(account))
	require.NotEmpty(t, account.ID)

	found, err := repo.GetByEmail("manager@pg.local")
	require.NoError(t, err)
	require.Equal(t, account.ID, found.ID)

	_, err = repo.GetByEmail("nobody@pg.local")
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	at := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	require.NoError(t, repo.SetLastLogin(account.ID, at))
	require.ErrorIs(t, repo.SetLastLogin("missing", at), apperrors.ErrNotFound)

	found, err = repo.GetByID(account.ID)
	require.NoError(t, err)
	require.True(t, at.Equal(*found.Profile().LastLogin))

	list, err := repo.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
}
