package token_test

import (
	"testing"
	"time"

	apperrors "github.com/jrsteele09/go-pg-admin/internal/errors"
	"github.com/jrsteele09/go-pg-admin/staff"
	"github.com/jrsteele09/go-pg-admin/token"
	"github.com/stretchr/testify/require"
)

var testStaff = &staff.Staff{ID: "stf-1", Name: "Priya Nair", Email: "priya@pg.test", Role: staff.RoleManager}

func setClock(t *testing.T, now time.Time) *time.Time {
	t.Helper()
	current := now
	original := token.NowTimeFunc
	token.NowTimeFunc = func() time.Time { return current }
	t.Cleanup(func() { token.NowTimeFunc = original })
	return &current
}

func TestIssuer_IssueAndValidate(t *testing.T) {
	now := setClock(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	issuer, err := token.NewIssuer("test-secret", "2h", nil)
	require.NoError(t, err)
	require.Equal(t, "2h", issuer.ExpiresIn())

	raw, claims, err := issuer.Issue(testStaff)
	require.NoError(t, err)
	require.NotEmpty(t, claims.ID)
	require.True(t, now.Add(2*time.Hour).Equal(claims.ExpiresAt.Time))

	got, err := issuer.Validate(raw)
	require.NoError(t, err)
	require.Equal(t, "stf-1", got.Subject)
	require.Equal(t, "manager", got.Role)
	require.Equal(t, "Priya Nair", got.Name)

	t.Run("expired", func(t *testing.T) {
		*now = now.Add(2*time.Hour + time.Second)
		_, err := issuer.Validate(raw)
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}

func TestIssuer_Rejects(t *testing.T) {
	setClock(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	issuer, err := token.NewIssuer("test-secret", "1h", nil)
	require.NoError(t, err)
	other, err := token.NewIssuer("other-secret", "1h", nil)
	require.NoError(t, err)

	foreign, _, err := other.Issue(testStaff)
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"garbage":        "not.a.jwt",
		"empty":          "",
		"wrong secret":   foreign,
		"alg none style": "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJzdWIiOiJ4In0.",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := issuer.Validate(raw)
			require.ErrorIs(t, err, apperrors.ErrInvalidToken)
		})
	}
}

func TestIssuer_Revoke(t *testing.T) {
	now := setClock(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	cache := token.NewInMemoryRevokedTokenCache()
	issuer, err := token.NewIssuer("test-secret", "1h", cache)
	require.NoError(t, err)

	raw, claims, err := issuer.Issue(testStaff)
	require.NoError(t, err)
	require.NoError(t, issuer.Revoke(claims))

	_, err = issuer.Validate(raw)
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)
	require.Equal(t, 1, cache.Len())

	require.Error(t, cache.Add("", now.Add(time.Hour)))
	require.NoError(t, cache.Add("already-expired", now.Add(-time.Minute)))
	require.False(t, cache.IsRevoked("already-expired"))

	*now = now.Add(2 * time.Hour)
	require.Equal(t, 1, cache.Cleanup())
	require.Equal(t, 0, cache.Len())
}

func TestNewIssuer_Invalid(t *testing.T) {
	_, err := token.NewIssuer("", "1h", nil)
	require.Error(t, err)

	_, err = token.NewIssuer("secret", "forever", nil)
	require.ErrorIs(t, err, apperrors.ErrInvalidExpiry)
}
