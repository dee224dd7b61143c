package table_test

import (
	"strings"
	"testing"

	"github.com/jrsteele09/go-pg-admin/table"
	"github.com/stretchr/testify/require"
)

var memberColumns = []table.Column{
	{Key: "name", Label: "Name", Sortable: true},
	{Key: "rent", Label: "Rent", Sortable: true, Align: table.AlignRight},
}

func TestCellText(t *testing.T) {
	column := table.Column{Key: "v"}
	tests := []struct {
		value any
		want  string
	}{
		{nil, "-"},
		{"Ravi", "Ravi"},
		{500.0, "500"},
		{12.5, "12.5"},
		{42, "42"},
		{true, "true"},
		{map[string]any{"a": 1}, "map[a:1]"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, table.CellText(table.Row{"v": tt.value}, column))
	}

	require.Equal(t, "-", table.CellText(table.Row{}, column))

	rendered := table.Column{Key: "v", Render: func(r table.Row) string { return "₹" + table.CellText(r, table.Column{Key: "v"}) }}
	require.Equal(t, "₹500", table.CellText(table.Row{"v": 500}, rendered))
}

func TestTable_ClientPaged(t *testing.T) {
	tbl := table.New(sortColumns, table.WithPageSize(10))
	tbl.SetRows(makeRows(23))

	info := tbl.Pagination()
	require.Equal(t, table.PageInfo{CurrentPage: 1, PageSize: 10, TotalItems: 23, TotalPages: 3}, info)

	tbl.SetPage(3)
	require.Len(t, tbl.Visible(), 3)

	tbl.SetPage(99)
	require.Equal(t, 3, tbl.Page())
	tbl.SetPage(-1)
	require.Equal(t, 1, tbl.Page())
}

func TestTable_ClientPagedSortsBeforeSlicing(t *testing.T) {
	tbl := table.New(memberColumns, table.WithPageSize(2))
	tbl.SetRows([]table.Row{
		{"name": "Ravi", "rent": 5000},
		{"name": "Asha", "rent": 7000},
		{"name": "Kiran", "rent": 4000},
	})

	tbl.ToggleSort("rent")
	tbl.ToggleSort("rent")
	require.Equal(t, table.SortState{Key: "rent", Direction: table.Descending}, tbl.SortState())
	require.Equal(t, []any{7000, 5000}, keys(tbl.Visible(), "rent"))

	tbl.SetPage(2)
	require.Equal(t, []any{4000}, keys(tbl.Visible(), "rent"))
}

func TestTable_ServerPaged(t *testing.T) {
	tbl := table.New(memberColumns, table.WithMode(table.ServerPaged), table.WithPageSize(10))

	rows := makeRows(10)
	tbl.SetServerPage(rows, table.PageInfo{CurrentPage: 2, PageSize: 10, TotalItems: 23})

	require.Len(t, tbl.Visible(), 10, "server pages are not sliced again")
	require.Equal(t, table.PageInfo{CurrentPage: 2, PageSize: 10, TotalItems: 23, TotalPages: 3}, tbl.Pagination())

	tbl.ToggleSort("unknown")
	require.False(t, tbl.SortState().Active())
}

func TestTable_Render(t *testing.T) {
	t.Run("rows", func(t *testing.T) {
		tbl := table.New(memberColumns)
		tbl.SetRows([]table.Row{
			{"name": "Ravi", "rent": 500},
			{"name": "Asha", "rent": 3000},
		})

		var b strings.Builder
		require.NoError(t, tbl.Render(&b))
		require.Equal(t, strings.Join([]string{
			"Name | Rent",
			"-----+-----",
			"Ravi |  500",
			"Asha | 3000",
			"",
		}, "\n"), b.String())
	})

	t.Run("sort marker", func(t *testing.T) {
		tbl := table.New(memberColumns)
		tbl.SetRows([]table.Row{{"name": "Ravi", "rent": 500}})
		tbl.ToggleSort("name")

		var b strings.Builder
		require.NoError(t, tbl.Render(&b))
		require.True(t, strings.HasPrefix(b.String(), "Name ▲ | Rent\n"))
	})

	t.Run("empty state", func(t *testing.T) {
		tbl := table.New(memberColumns, table.WithEmptyMessage("No members found"))

		var b strings.Builder
		require.NoError(t, tbl.Render(&b))
		lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
		require.Len(t, lines, 3)
		require.Equal(t, "No members found", strings.TrimSpace(lines[2]))
		require.NotContains(t, b.String(), "Page")
	})

	t.Run("default empty message", func(t *testing.T) {
		tbl := table.New(memberColumns)

		var b strings.Builder
		require.NoError(t, tbl.Render(&b))
		require.Contains(t, b.String(), table.DefaultEmptyMessage)
	})

	t.Run("footer only with several pages", func(t *testing.T) {
		tbl := table.New(sortColumns, table.WithPageSize(10))
		tbl.SetRows(makeRows(10))

		var b strings.Builder
		require.NoError(t, tbl.Render(&b))
		require.NotContains(t, b.String(), "Page")

		tbl.SetRows(makeRows(23))
		tbl.SetPage(3)
		b.Reset()
		require.NoError(t, tbl.Render(&b))
		require.Contains(t, b.String(), "Showing 21-23 of 23  Page 3 of 3  1 2 [3]")
	})

	t.Run("width truncates", func(t *testing.T) {
		tbl := table.New([]table.Column{{Key: "notes", Label: "Notes", Width: 6}})
		tbl.SetRows([]table.Row{{"notes": "paid by bank transfer"}})

		var b strings.Builder
		require.NoError(t, tbl.Render(&b))
		require.Contains(t, b.String(), "paid …")
	})
}
