package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-pg-admin/internal/config"
	"github.com/stretchr/testify/require"
)

func TestParseAllowedOrigins(t *testing.T) {
	origins := config.ParseAllowedOrigins(" http://localhost:3000/ ,,https://admin.example.com")
	require.True(t, origins.IsAllowedOrigin("http://localhost:3000"))
	require.True(t, origins.IsAllowedOrigin("https://admin.example.com"))
	require.False(t, origins.IsAllowedOrigin("http://evil.test"))
	require.Equal(t, "http://localhost:3000, https://admin.example.com", origins.String())
}

func TestEnvGetters(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("PAGE_SIZE", "")
		t.Setenv("SESSION_FALLBACK_EXPIRY", "")
		c := config.New()
		require.Equal(t, ":8080", c.GetPort())
		require.Equal(t, 10, c.GetPageSize())
		require.Equal(t, 24*time.Hour, c.GetFallbackSessionExpiry())
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("PAGE_SIZE", "25")
		t.Setenv("SESSION_WARN_MINUTES", "2")
		t.Setenv("CORS_ORIGINS", "*")
		c := config.New()
		require.Equal(t, ":9090", c.GetPort())
		require.Equal(t, 25, c.GetPageSize())
		require.Equal(t, 2*time.Minute, c.GetExpiryWarningThreshold())
		require.True(t, c.GetAllowedOrigins().IsAllowedOrigin("*"))
	})

	t.Run("invalid numbers fall back", func(t *testing.T) {
		t.Setenv("PAGE_SIZE", "-3")
		t.Setenv("SESSION_FALLBACK_EXPIRY", "soon")
		c := config.New()
		require.Equal(t, 10, c.GetPageSize())
		require.Equal(t, 24*time.Hour, c.GetFallbackSessionExpiry())
	})
}
