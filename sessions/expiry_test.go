package sessions_test

import (
	"testing"
	"time"

	apperrors "github.com/jrsteele09/go-pg-admin/internal/errors"
	"github.com/jrsteele09/go-pg-admin/sessions"
	"github.com/stretchr/testify/require"
)

func TestParseExpiresIn(t *testing.T) {
	valid := map[string]time.Duration{
		"30s":  30 * time.Second,
		"15m":  15 * time.Minute,
		"2h":   2 * time.Hour,
		"7d":   7 * 24 * time.Hour,
		"1w":   7 * 24 * time.Hour,
		" 8h ": 8 * time.Hour,
	}
	for input, want := range valid {
		t.Run(input, func(t *testing.T) {
			got, err := sessions.ParseExpiresIn(input)
			require.NoError(t, err)
			require.Equal(t, want, got)
		})
	}

	invalid := []string{"", "15", "m", "15x", "-5m", "0h", "1.5h", "15 m", "99999999999999999999d", "9999999999999w"}
	for _, input := range invalid {
		t.Run("invalid "+input, func(t *testing.T) {
			_, err := sessions.ParseExpiresIn(input)
			require.Error(t, err)
			require.ErrorIs(t, err, apperrors.ErrInvalidExpiry)
		})
	}
}
