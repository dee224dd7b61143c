package config

import "time"

type SessionConfig interface {
	GetFallbackSessionExpiry() time.Duration
	GetExpiryWarningThreshold() time.Duration
}

type Session struct{}

var _ SessionConfig = Session{}

// GetFallbackSessionExpiry is used when the backend's expiresIn cannot be parsed.
func (Session) GetFallbackSessionExpiry() time.Duration {
	d, err := time.ParseDuration(GetEnv("SESSION_FALLBACK_EXPIRY", "24h"))
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

func (Session) GetExpiryWarningThreshold() time.Duration {
	return time.Duration(GetEnvInt("SESSION_WARN_MINUTES", 5)) * time.Minute
}
