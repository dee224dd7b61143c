package sqlitestore_test

import (
	"testing"

	"github.com/jrsteele09/go-pg-admin/sessions/sqlitestore"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	dir := t.TempDir()
	store, err := sqlitestore.Open(dir, sqlitestore.DefaultFile)
	require.NoError(t, err)

	t.Run("missing key", func(t *testing.T) {
		_, ok, err := store.Get("authToken")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("set and overwrite", func(t *testing.T) {
		require.NoError(t, store.Set("authToken", "abc"))
		require.NoError(t, store.Set("authToken", "def"))

		value, ok, err := store.Get("authToken")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "def", value)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		require.NoError(t, store.Set("loginTimestamp", "1"))
		require.NoError(t, store.Remove("authToken", "loginTimestamp", "neverSet"))
		require.NoError(t, store.Remove("authToken"))

		_, ok, err := store.Get("loginTimestamp")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("survives reopen", func(t *testing.T) {
		require.NoError(t, store.Set("staffData", `{"id":"staff-1"}`))
		require.NoError(t, store.Close())

		reopened, err := sqlitestore.Open(dir, sqlitestore.DefaultFile)
		require.NoError(t, err)
		defer reopened.Close()

		value, ok, err := reopened.Get("staffData")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, `{"id":"staff-1"}`, value)
	})
}
