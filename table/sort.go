package table

import (
	"cmp"
	"slices"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortState is the active sort column. An empty Key keeps insertion order.
type SortState struct {
	Key       string
	Direction Direction
}

func (s SortState) Active() bool {
	return s.Key != ""
}

// Toggle returns the state after the user selects column: non-sortable columns
// change nothing, the active column flips direction and any other column
// becomes the ascending sort key.
func (s SortState) Toggle(column Column) SortState {
	if !column.Sortable {
		return s
	}
	if s.Key == column.Key {
		if s.Direction == Ascending {
			return SortState{Key: s.Key, Direction: Descending}
		}
		return SortState{Key: s.Key, Direction: Ascending}
	}
	return SortState{Key: column.Key, Direction: Ascending}
}

// Sorter orders rows with locale aware string comparison. It is safe for
// concurrent use.
type Sorter struct {
	mu       sync.Mutex
	collator *collate.Collator
}

// NewSorter returns a sorter collating strings by the rules of lang.
func NewSorter(lang language.Tag) *Sorter {
	return &Sorter{collator: collate.New(lang)}
}

// Sort returns a stably sorted copy of rows. An inactive state, an unknown key
// or a non-sortable column returns the rows in their original order.
func (s *Sorter) Sort(rows []Row, columns []Column, state SortState) []Row {
	sorted := slices.Clone(rows)
	if !state.Active() {
		return sorted
	}
	idx := slices.IndexFunc(columns, func(c Column) bool { return c.Key == state.Key })
	if idx < 0 || !columns[idx].Sortable {
		return sorted
	}

	sign := 1
	if state.Direction == Descending {
		sign = -1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	slices.SortStableFunc(sorted, func(a, b Row) int {
		return sign * s.compare(a.Get(state.Key), b.Get(state.Key))
	})
	return sorted
}

// compare collates two strings, orders two numbers numerically and otherwise
// collates both values' string forms.
func (s *Sorter) compare(a, b any) int {
	as, aIsString := a.(string)
	bs, bIsString := b.(string)
	if aIsString && bIsString {
		return s.collator.CompareString(as, bs)
	}

	an, aIsNumber := toNumber(a)
	bn, bIsNumber := toNumber(b)
	if aIsNumber && bIsNumber {
		return cmp.Compare(an, bn)
	}

	return s.collator.CompareString(toString(a), toString(b))
}
