package table

import (
	"golang.org/x/text/language"
)

// DefaultEmptyMessage is shown when a table has no rows.
const DefaultEmptyMessage = "No data available"

// Table holds the columns, rows, sort and page state of one list view.
// It is not safe for concurrent use.
type Table struct {
	columns      []Column
	sorter       *Sorter
	mode         Mode
	pageSize     int
	emptyMessage string

	rows   []Row
	sort   SortState
	page   int
	server PageInfo
}

type Option func(*Table)

func WithMode(mode Mode) Option {
	return func(t *Table) {
		t.mode = mode
	}
}

func WithPageSize(pageSize int) Option {
	return func(t *Table) {
		if pageSize > 0 {
			t.pageSize = pageSize
		}
	}
}

func WithEmptyMessage(msg string) Option {
	return func(t *Table) {
		if msg != "" {
			t.emptyMessage = msg
		}
	}
}

func WithSorter(sorter *Sorter) Option {
	return func(t *Table) {
		t.sorter = sorter
	}
}

func New(columns []Column, opts ...Option) *Table {
	t := &Table{
		columns:      columns,
		mode:         ClientPaged,
		pageSize:     10,
		emptyMessage: DefaultEmptyMessage,
		page:         1,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.sorter == nil {
		t.sorter = NewSorter(language.English)
	}
	return t
}

func (t *Table) Columns() []Column { return t.columns }

func (t *Table) Mode() Mode { return t.mode }

func (t *Table) SortState() SortState { return t.sort }

// SetRows replaces the whole collection of a ClientPaged table and returns to page 1.
func (t *Table) SetRows(rows []Row) {
	t.rows = rows
	t.page = 1
}

// SetServerPage replaces the rows of a ServerPaged table with one page fetched
// from the backend together with its paging metadata.
func (t *Table) SetServerPage(rows []Row, info PageInfo) {
	t.rows = rows
	if info.PageSize <= 0 {
		info.PageSize = t.pageSize
	}
	if info.TotalPages == 0 {
		info.TotalPages = TotalPages(info.TotalItems, info.PageSize)
	}
	if info.CurrentPage < 1 {
		info.CurrentPage = 1
	}
	t.server = info
	t.page = info.CurrentPage
}

// ToggleSort applies a click on the column named key and returns the new state.
// Unknown and non-sortable columns leave the state unchanged.
func (t *Table) ToggleSort(key string) SortState {
	for _, c := range t.columns {
		if c.Key == key {
			t.sort = t.sort.Toggle(c)
			break
		}
	}
	return t.sort
}

// SetSort replaces the sort state, e.g. when restoring a saved view.
func (t *Table) SetSort(state SortState) {
	t.sort = state
}

// SetPage moves to page, clamped to the available pages.
func (t *Table) SetPage(page int) {
	total := t.Pagination().TotalPages
	t.page = max(1, min(page, max(total, 1)))
}

func (t *Table) Page() int { return t.page }

// Pagination returns the paging state. In ServerPaged mode totals are the
// server's; in ClientPaged mode they are computed from the rows.
func (t *Table) Pagination() PageInfo {
	if t.mode == ServerPaged {
		info := t.server
		info.CurrentPage = t.page
		return info
	}
	return PageInfo{
		CurrentPage: t.page,
		PageSize:    t.pageSize,
		TotalItems:  len(t.rows),
		TotalPages:  TotalPages(len(t.rows), t.pageSize),
	}
}

// Visible returns the rows to display: sorted, and sliced to the current page
// in ClientPaged mode. ServerPaged rows are never sliced again.
func (t *Table) Visible() []Row {
	sorted := t.sorter.Sort(t.rows, t.columns, t.sort)
	if t.mode == ServerPaged {
		return sorted
	}
	return Paginate(sorted, t.page, t.pageSize)
}
