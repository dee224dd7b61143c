package sessions_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jrsteele09/go-pg-admin/sessions"
	"github.com/jrsteele09/go-pg-admin/sessions/memstore"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type testFixture struct {
	clock   *fakeClock
	durable *memstore.Store
	scoped  *memstore.Store
	manager *sessions.Manager
}

func setupTestFixture(t *testing.T, opts ...sessions.Option) *testFixture {
	t.Helper()

	clock := &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	durable := memstore.New()
	scoped := memstore.New()
	opts = append([]sessions.Option{sessions.WithClock(clock.Now)}, opts...)

	return &testFixture{
		clock:   clock,
		durable: durable,
		scoped:  scoped,
		manager: sessions.NewManager(durable, scoped, opts...),
	}
}

var testProfile = sessions.Profile{
	ID:    "staff-1",
	Name:  "Asha Rao",
	Email: "asha@example.com",
	Role:  "manager",
}

func TestManager_SetSession(t *testing.T) {
	t.Run("expiry follows expiresIn", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.manager.SetSession("abc", testProfile, "15m"))

		require.Equal(t, 15*time.Minute, f.manager.TimeUntilExpiry())
		require.True(t, f.manager.IsAuthenticated())
		require.Equal(t, "abc", f.manager.Token())

		profile, ok := f.manager.Profile()
		require.True(t, ok)
		require.Equal(t, testProfile, profile)
	})

	t.Run("unparsable expiresIn uses 24h fallback", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.manager.SetSession("abc", testProfile, "soon"))
		require.Equal(t, 24*time.Hour, f.manager.TimeUntilExpiry())
	})

	t.Run("configured fallback", func(t *testing.T) {
		f := setupTestFixture(t, sessions.WithFallbackExpiry(time.Hour))
		require.NoError(t, f.manager.SetSession("abc", testProfile, ""))
		require.Equal(t, time.Hour, f.manager.TimeUntilExpiry())
	})

	t.Run("both tiers hold all keys", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.manager.SetSession("abc", testProfile, "2h"))

		for _, store := range []*memstore.Store{f.durable, f.scoped} {
			token, ok, err := store.Get(sessions.KeyToken)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "abc", token)

			expiry, _, _ := store.Get(sessions.KeyExpiry)
			require.Equal(t, "1709290800000", expiry)
			issued, _, _ := store.Get(sessions.KeyIssuedAt)
			require.Equal(t, "1709283600000", issued)
		}
	})

	t.Run("overwrites prior session", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.manager.SetSession("first", testProfile, "1h"))
		require.NoError(t, f.manager.SetSession("second", sessions.Profile{ID: "staff-2"}, "2h"))

		s, ok := f.manager.Session()
		require.True(t, ok)
		require.Equal(t, "second", s.Token)
		require.Equal(t, "staff-2", s.Profile.ID)
		require.Equal(t, 2*time.Hour, s.ExpiresAt.Sub(s.IssuedAt))
	})

	t.Run("empty token rejected", func(t *testing.T) {
		f := setupTestFixture(t)
		require.Error(t, f.manager.SetSession("", testProfile, "1h"))
		require.False(t, f.manager.IsAuthenticated())
	})
}

func TestManager_Expiry(t *testing.T) {
	t.Run("valid strictly before expiry", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.manager.SetSession("abc", testProfile, "15m"))

		f.clock.Advance(15*time.Minute - time.Millisecond)
		require.True(t, f.manager.IsAuthenticated())
		require.Equal(t, time.Millisecond, f.manager.TimeUntilExpiry())

		f.clock.Advance(time.Millisecond)
		require.False(t, f.manager.IsTokenValid())
		require.False(t, f.manager.IsAuthenticated())
		require.Equal(t, 0, f.durable.Len())
		require.Equal(t, 0, f.scoped.Len())
	})

	t.Run("expired read clears storage", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.manager.SetSession("abc", testProfile, "15m"))

		f.clock.Advance(901 * time.Second)
		require.Equal(t, time.Duration(0), f.manager.TimeUntilExpiry())
		require.False(t, f.manager.IsAuthenticated())
		require.Equal(t, 0, f.durable.Len())
		require.Equal(t, 0, f.scoped.Len())
	})

	t.Run("IsTokenValid has no side effects", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.manager.SetSession("abc", testProfile, "1m"))
		f.clock.Advance(2 * time.Minute)

		require.False(t, f.manager.IsTokenValid())
		require.Equal(t, 4, f.durable.Len())
	})

	t.Run("WillExpireSoon", func(t *testing.T) {
		f := setupTestFixture(t)
		require.False(t, f.manager.WillExpireSoon(5*time.Minute))

		require.NoError(t, f.manager.SetSession("abc", testProfile, "15m"))
		require.False(t, f.manager.WillExpireSoon(5*time.Minute))

		f.clock.Advance(10 * time.Minute)
		require.True(t, f.manager.WillExpireSoon(5*time.Minute))

		f.clock.Advance(5 * time.Minute)
		require.False(t, f.manager.WillExpireSoon(5*time.Minute))
	})
}

func TestManager_ClearSession(t *testing.T) {
	t.Run("clears everything", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.manager.SetSession("abc", testProfile, "1h"))

		f.manager.ClearSession()
		require.Equal(t, "", f.manager.Token())
		_, ok := f.manager.Profile()
		require.False(t, ok)
		require.False(t, f.manager.IsAuthenticated())
		require.Empty(t, f.manager.AuthHeader())
	})

	t.Run("idempotent", func(t *testing.T) {
		f := setupTestFixture(t)
		f.manager.ClearSession()
		f.manager.ClearSession()
		require.False(t, f.manager.IsAuthenticated())
	})

	t.Run("hooks fire once per live session", func(t *testing.T) {
		f := setupTestFixture(t)
		calls := 0
		f.manager.OnCleared(func() { calls++ })

		require.NoError(t, f.manager.SetSession("abc", testProfile, "1h"))
		f.manager.ClearSession()
		f.manager.ClearSession()
		require.Equal(t, 1, calls)

		require.NoError(t, f.manager.SetSession("abc", testProfile, "1m"))
		f.clock.Advance(time.Hour)
		require.False(t, f.manager.IsAuthenticated())
		require.Equal(t, 2, calls)
	})
}

func TestManager_CorruptData(t *testing.T) {
	t.Run("corrupt profile is no session", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.manager.SetSession("abc", testProfile, "1h"))
		require.NoError(t, f.scoped.Set(sessions.KeyProfile, "{not json"))

		_, ok := f.manager.Profile()
		require.False(t, ok)
		require.False(t, f.manager.IsAuthenticated())
		require.Equal(t, 0, f.durable.Len())
	})

	t.Run("corrupt expiry is no session", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.manager.SetSession("abc", testProfile, "1h"))
		require.NoError(t, f.scoped.Set(sessions.KeyExpiry, "tomorrow"))

		require.Equal(t, "", f.manager.Token())
		require.Equal(t, 0, f.scoped.Len())
	})

	t.Run("token without expiry is no session", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.durable.Set(sessions.KeyToken, "abc"))

		require.False(t, f.manager.IsTokenValid())
		require.False(t, f.manager.IsAuthenticated())
	})
}

func TestManager_Tiers(t *testing.T) {
	t.Run("durable tier restores cleared scoped tier", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.manager.SetSession("abc", testProfile, "1h"))
		require.NoError(t, f.scoped.Remove(sessions.KeyToken, sessions.KeyProfile, sessions.KeyExpiry, sessions.KeyIssuedAt))

		require.Equal(t, "abc", f.manager.Token())
	})

	t.Run("new manager over same durable tier", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.manager.SetSession("abc", testProfile, "1h"))

		restarted := sessions.NewManager(f.durable, memstore.New(), sessions.WithClock(f.clock.Now))
		require.True(t, restarted.IsAuthenticated())
	})

	t.Run("one failing tier is tolerated", func(t *testing.T) {
		clock := &fakeClock{now: time.Now()}
		m := sessions.NewManager(failingStore{}, memstore.New(), sessions.WithClock(clock.Now))
		require.NoError(t, m.SetSession("abc", testProfile, "1h"))
		require.True(t, m.IsAuthenticated())
	})

	t.Run("tier failing partway is rolled back", func(t *testing.T) {
		f := setupTestFixture(t)
		scoped := &flakyStore{Store: memstore.New(), failAfter: 1}
		m := sessions.NewManager(f.durable, scoped, sessions.WithClock(f.clock.Now))

		require.NoError(t, m.SetSession("abc", testProfile, "1h"))
		require.Zero(t, scoped.Len())
		require.True(t, m.IsAuthenticated())
		require.Equal(t, "abc", m.Token())
		require.Equal(t, 4, f.durable.Len())
	})

	t.Run("failed overwrite keeps no stale fields", func(t *testing.T) {
		f := setupTestFixture(t)
		scoped := &flakyStore{Store: memstore.New(), failAfter: -1}
		m := sessions.NewManager(f.durable, scoped, sessions.WithClock(f.clock.Now))
		require.NoError(t, m.SetSession("old", testProfile, "15m"))

		scoped.failAfter = scoped.sets + 1
		renamed := testProfile
		renamed.Name = "Asha R."
		require.NoError(t, m.SetSession("new", renamed, "1h"))

		s, ok := m.Session()
		require.True(t, ok)
		require.Equal(t, "new", s.Token)
		require.Equal(t, "Asha R.", s.Profile.Name)
		require.Equal(t, time.Hour, m.TimeUntilExpiry())
	})

	t.Run("partial record that cannot be removed is ignored", func(t *testing.T) {
		f := setupTestFixture(t)
		scoped := &flakyStore{Store: memstore.New(), failAfter: 1, failRemove: true}
		m := sessions.NewManager(f.durable, scoped, sessions.WithClock(f.clock.Now))

		require.NoError(t, m.SetSession("abc", testProfile, "1h"))
		require.Equal(t, 1, scoped.Len())
		require.Equal(t, "abc", m.Token())
		require.Equal(t, time.Hour, m.TimeUntilExpiry())
	})

	t.Run("both tiers failing is an error", func(t *testing.T) {
		m := sessions.NewManager(failingStore{}, failingStore{})
		require.Error(t, m.SetSession("abc", testProfile, "1h"))
		require.False(t, m.IsAuthenticated())
	})
}

func TestManager_AuthHeader(t *testing.T) {
	f := setupTestFixture(t)
	require.Empty(t, f.manager.AuthHeader())

	require.NoError(t, f.manager.SetSession("abc", testProfile, "1h"))
	require.Equal(t, "Bearer abc", f.manager.AuthHeader().Get("Authorization"))
}

func TestProfile_HasPermission(t *testing.T) {
	require.True(t, sessions.Profile{Role: "admin"}.HasPermission("approvals"))
	require.True(t, sessions.Profile{Permissions: []string{"approvals"}}.HasPermission("approvals"))
	require.False(t, sessions.Profile{Role: "staff"}.HasPermission("approvals"))
}

type failingStore struct{}

func (failingStore) Get(string) (string, bool, error) { return "", false, errors.New("unavailable") }
func (failingStore) Set(string, string) error         { return errors.New("unavailable") }
func (failingStore) Remove(...string) error           { return errors.New("unavailable") }

// flakyStore accepts failAfter writes and then fails every Set. A negative
// failAfter never fails.
type flakyStore struct {
	*memstore.Store
	sets       int
	failAfter  int
	failRemove bool
}

func (s *flakyStore) Set(key, value string) error {
	s.sets++
	if s.failAfter >= 0 && s.sets > s.failAfter {
		return errors.New("quota exceeded")
	}
	return s.Store.Set(key, value)
}

func (s *flakyStore) Remove(keys ...string) error {
	if s.failRemove {
		return errors.New("unavailable")
	}
	return s.Store.Remove(keys...)
}
