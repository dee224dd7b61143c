package sessions

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Manager owns the authenticated staff session. It mirrors every write into a
// durable and a session scoped Store and treats the pair as one record.
// A Manager is safe for concurrent use.
type Manager struct {
	mu        sync.Mutex
	durable   Store
	scoped    Store
	now       func() time.Time
	fallback  time.Duration
	logger    zerolog.Logger
	onCleared []func()
}

type Option func(*Manager)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithFallbackExpiry sets the lifetime used when expiresIn cannot be parsed.
func WithFallbackExpiry(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.fallback = d
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a session manager over a durable and a session scoped tier.
func NewManager(durable, scoped Store, opts ...Option) *Manager {
	m := &Manager{
		durable:  durable,
		scoped:   scoped,
		now:      time.Now,
		fallback: DefaultFallbackExpiry,
		logger:   log.Logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// OnCleared registers fn to run after a live session has been cleared, whether
// by logout, expiry or a rejected request.
func (m *Manager) OnCleared(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onCleared = append(m.onCleared, fn)
}

// SetSession stores a new session, replacing any previous one. An expiresIn
// that cannot be parsed is replaced by the fallback lifetime rather than failing.
// An error is returned only when neither tier could be written.
func (m *Manager) SetSession(token string, profile Profile, expiresIn string) error {
	if token == "" {
		return errors.New("token is required")
	}

	lifetime, err := ParseExpiresIn(expiresIn)
	if err != nil {
		m.logger.Warn().Err(err).Dur("fallback", m.fallback).Msg("Using fallback session expiry")
		lifetime = m.fallback
	}

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	issuedAt := m.now()
	values := map[string]string{
		KeyToken:    token,
		KeyProfile:  string(profileJSON),
		KeyExpiry:   formatMillis(issuedAt.Add(lifetime)),
		KeyIssuedAt: formatMillis(issuedAt),
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	durableErr := m.writeTier(m.durable, values)
	scopedErr := m.writeTier(m.scoped, values)
	switch {
	case durableErr != nil && scopedErr != nil:
		return fmt.Errorf("failed to store session: %w", errors.Join(durableErr, scopedErr))
	case durableErr != nil:
		m.logger.Warn().Err(durableErr).Msg("Durable session tier not written")
	case scopedErr != nil:
		m.logger.Warn().Err(scopedErr).Msg("Session scoped tier not written")
	}

	m.logger.Debug().Str("staff_id", profile.ID).Time("expires_at", issuedAt.Add(lifetime)).Msg("Session stored")
	return nil
}

// Token returns the bearer token while the session is valid. An expired or
// unreadable session is cleared and "" is returned.
func (m *Manager) Token() string {
	s, ok := m.validSession()
	if !ok {
		return ""
	}
	return s.Token
}

// Profile returns the staff profile behind a valid session.
func (m *Manager) Profile() (Profile, bool) {
	s, ok := m.validSession()
	if !ok {
		return Profile{}, false
	}
	return s.Profile, true
}

// Session returns a snapshot of the valid session.
func (m *Manager) Session() (Session, bool) {
	return m.validSession()
}

func (m *Manager) IsAuthenticated() bool {
	return m.Token() != ""
}

// IsTokenValid reports whether an expiry is stored and still in the future.
// Unlike Token it never clears anything, so it is suitable for polling.
func (m *Manager) IsTokenValid() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw := m.read()
	if raw.expiry == "" {
		return false
	}
	expiresAt, err := parseMillis(raw.expiry)
	if err != nil {
		return false
	}
	return m.now().Before(expiresAt)
}

// TimeUntilExpiry returns the remaining session lifetime, or 0 when there is
// no session or it has already expired.
func (m *Manager) TimeUntilExpiry() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw := m.read()
	if raw.expiry == "" {
		return 0
	}
	expiresAt, err := parseMillis(raw.expiry)
	if err != nil {
		return 0
	}
	if remaining := expiresAt.Sub(m.now()); remaining > 0 {
		return remaining
	}
	return 0
}

// WillExpireSoon reports whether the session is still valid but ends within threshold.
func (m *Manager) WillExpireSoon(threshold time.Duration) bool {
	remaining := m.TimeUntilExpiry()
	return remaining > 0 && remaining <= threshold
}

// ClearSession removes every session key from both tiers. It is safe to call
// when no session exists.
func (m *Manager) ClearSession() {
	m.mu.Lock()
	hooks := m.clearLocked()
	m.mu.Unlock()

	runHooks(hooks)
}

// AuthHeader returns the Authorization header for outbound calls, or an empty
// header when there is no valid session.
func (m *Manager) AuthHeader() http.Header {
	header := http.Header{}
	if token := m.Token(); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	return header
}

type rawSession struct {
	token    string
	profile  string
	expiry   string
	issuedAt string
}

func (r rawSession) complete() bool {
	return r.token != "" && r.profile != "" && r.expiry != ""
}

func (m *Manager) validSession() (Session, bool) {
	m.mu.Lock()
	raw := m.read()
	if raw.token == "" {
		m.mu.Unlock()
		return Session{}, false
	}

	s, err := m.decode(raw)
	if err != nil {
		m.logger.Info().Err(err).Msg("Clearing session")
		hooks := m.clearLocked()
		m.mu.Unlock()
		runHooks(hooks)
		return Session{}, false
	}

	m.mu.Unlock()
	return s, true
}

func (m *Manager) decode(raw rawSession) (Session, error) {
	expiresAt, err := parseMillis(raw.expiry)
	if err != nil {
		return Session{}, fmt.Errorf("unreadable expiry %q: %w", raw.expiry, ErrSessionCorrupt)
	}
	if !m.now().Before(expiresAt) {
		return Session{}, ErrSessionExpired
	}

	var profile Profile
	if err := json.Unmarshal([]byte(raw.profile), &profile); err != nil {
		return Session{}, fmt.Errorf("unreadable profile: %w", ErrProfileCorrupt)
	}

	issuedAt, err := parseMillis(raw.issuedAt)
	if err != nil {
		issuedAt = time.Time{}
	}

	return Session{
		Token:     raw.token,
		Profile:   profile,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// read returns the session scoped record when it is complete, otherwise the
// durable one. A partial scoped record is only returned when the durable tier
// holds nothing, so it still gets cleared as corrupt.
func (m *Manager) read() rawSession {
	scoped := m.readTier(m.scoped)
	if scoped.complete() {
		return scoped
	}
	if durable := m.readTier(m.durable); durable.token != "" {
		return durable
	}
	return scoped
}

func (m *Manager) readTier(store Store) rawSession {
	get := func(key string) string {
		value, ok, err := store.Get(key)
		if err != nil {
			m.logger.Warn().Err(err).Str("key", key).Msg("Session read failed")
			return ""
		}
		if !ok {
			return ""
		}
		return value
	}
	return rawSession{
		token:    get(KeyToken),
		profile:  get(KeyProfile),
		expiry:   get(KeyExpiry),
		issuedAt: get(KeyIssuedAt),
	}
}

func (m *Manager) clearLocked() []func() {
	hadSession := m.read().token != ""
	for _, store := range []Store{m.scoped, m.durable} {
		if err := store.Remove(allKeys...); err != nil {
			m.logger.Warn().Err(err).Msg("Session clear failed")
		}
	}
	if !hadSession {
		return nil
	}
	m.logger.Debug().Msg("Session cleared")
	return append([]func(){}, m.onCleared...)
}

// writeTier writes every session key to store. A tier that fails partway is
// emptied so it never pairs a new token with an older expiry or profile.
func (m *Manager) writeTier(store Store, values map[string]string) error {
	err := writeAll(store, values)
	if err == nil {
		return nil
	}
	if removeErr := store.Remove(allKeys...); removeErr != nil {
		m.logger.Warn().Err(removeErr).Msg("Partial session record not removed")
	}
	return err
}

func writeAll(store Store, values map[string]string) error {
	for _, key := range allKeys {
		if err := store.Set(key, values[key]); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	return nil
}

func runHooks(hooks []func()) {
	for _, hook := range hooks {
		hook()
	}
}
