package apiclient_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-pg-admin/apiclient"
	"github.com/stretchr/testify/require"
)

type dateRange struct{ from, to string }

func (d dateRange) Bounds() (string, string) { return d.from, d.to }

func TestQuery(t *testing.T) {
	q := apiclient.NewQuery().
		Page(2).
		Limit(10).
		Sort("name", "asc").
		Filters(map[string]any{
			"search":   "ravi",
			"status":   []string{"active", "notice"},
			"empty":    "",
			"nothing":  nil,
			"hasDues":  true,
			"archived": false,
			"minRent":  5000,
			"joined":   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			"paidOn":   dateRange{from: "2024-01-01", to: ""},
		})

	values := q.Values()
	require.Equal(t, "2", values.Get("page"))
	require.Equal(t, "10", values.Get("limit"))
	require.Equal(t, "name", values.Get("sortBy"))
	require.Equal(t, "asc", values.Get("sortOrder"))
	require.Equal(t, "ravi", values.Get("search"))
	require.Equal(t, []string{"active", "notice"}, values["status"])
	require.Equal(t, "true", values.Get("hasDues"))
	require.Equal(t, "5000", values.Get("minRent"))
	require.Equal(t, "2024-01-15", values.Get("joined"))
	require.Equal(t, "2024-01-01", values.Get("paidOnFrom"))

	for _, absent := range []string{"empty", "nothing", "archived", "paidOnTo"} {
		_, ok := values[absent]
		require.False(t, ok, absent)
	}
}

func TestQuery_Endpoint(t *testing.T) {
	require.Equal(t, "/members", apiclient.NewQuery().Endpoint("/members"))
	require.Equal(t, "/members?limit=5&page=1", apiclient.NewQuery().Page(1).Limit(5).Endpoint("/members"))
	require.Equal(t, "/members", apiclient.NewQuery().Sort("", "asc").Page(0).Endpoint("/members"))
}
