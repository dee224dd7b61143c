package sessions

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/go-pg-admin/internal/errors"
)

// DefaultFallbackExpiry replaces an expiresIn value that cannot be parsed.
const DefaultFallbackExpiry = 24 * time.Hour

var expiresInPattern = regexp.MustCompile(`^(\d+)([smhdw])$`)

var expiryUnits = map[string]time.Duration{
	"s": time.Second,
	"m": time.Minute,
	"h": time.Hour,
	"d": 24 * time.Hour,
	"w": 7 * 24 * time.Hour,
}

// ParseExpiresIn converts a lifetime such as "15m", "2h" or "7d" into a duration.
// Zero lifetimes are rejected so that an expiry is always after the issue time.
func ParseExpiresIn(expiresIn string) (time.Duration, error) {
	matches := expiresInPattern.FindStringSubmatch(strings.TrimSpace(expiresIn))
	if matches == nil {
		return 0, fmt.Errorf("%q: %w", expiresIn, apperrors.ErrInvalidExpiry)
	}

	n, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%q: %w", expiresIn, apperrors.ErrInvalidExpiry)
	}

	unit := expiryUnits[matches[2]]
	if n > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("%q overflows: %w", expiresIn, apperrors.ErrInvalidExpiry)
	}
	return time.Duration(n) * unit, nil
}

func formatMillis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func parseMillis(s string) (time.Time, error) {
	ms, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}
