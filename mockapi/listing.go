package mockapi

import (
	"encoding/json"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/jrsteele09/go-pg-admin/apiclient"
	"github.com/jrsteele09/go-pg-admin/table"
	"golang.org/x/text/language"
)

const maxLimit = 100

type matchOp int

const (
	opContains  matchOp = iota // case-insensitive substring of any field
	opEquals                   // case-insensitive equality
	opOneOf                    // value is one of the repeated parameter values
	opDateRange                // <param>From / <param>To bounds on a YYYY-MM-DD field
	opMin                      // numeric lower bound
	opMax                      // numeric upper bound
	opTrue                     // boolean field is true when param=true
)

// paramFilter maps one query parameter onto row fields.
type paramFilter struct {
	param  string
	fields []string
	op     matchOp
}

func field(param string, op matchOp, fields ...string) paramFilter {
	if len(fields) == 0 {
		fields = []string{param}
	}
	return paramFilter{param: param, fields: fields, op: op}
}

// applies reports whether the query narrows on f at all.
func (f paramFilter) applies(q url.Values) bool {
	if f.op == opDateRange {
		return q.Get(f.param+"From") != "" || q.Get(f.param+"To") != ""
	}
	return q.Get(f.param) != ""
}

func (f paramFilter) match(row table.Row, q url.Values) bool {
	switch f.op {
	case opContains:
		needle := strings.ToLower(q.Get(f.param))
		for _, key := range f.fields {
			if s, ok := row[key].(string); ok && strings.Contains(strings.ToLower(s), needle) {
				return true
			}
		}
		return false
	case opEquals:
		s, _ := row[f.fields[0]].(string)
		return strings.EqualFold(s, q.Get(f.param))
	case opOneOf:
		s, _ := row[f.fields[0]].(string)
		return slices.Contains(q[f.param], s)
	case opDateRange:
		s, _ := row[f.fields[0]].(string)
		from, to := q.Get(f.param+"From"), q.Get(f.param+"To")
		return s != "" && (from == "" || s >= from) && (to == "" || s <= to)
	case opMin, opMax:
		bound, err := strconv.ParseFloat(q.Get(f.param), 64)
		if err != nil {
			return true
		}
		v, _ := row[f.fields[0]].(float64)
		if f.op == opMin {
			return v >= bound
		}
		return v <= bound
	case opTrue:
		if q.Get(f.param) != "true" {
			return true
		}
		b, _ := row[f.fields[0]].(bool)
		return b
	}
	return true
}

var (
	memberFilters = []paramFilter{
		field("search", opContains, "name", "phone"),
		field("status", opEquals),
		field("roomNumber", opEquals),
		field("joinDate", opDateRange),
	}
	roomFilters = []paramFilter{
		field("sharing", opOneOf),
		field("status", opEquals),
		field("ac", opTrue),
		field("maxRent", opMax, "rent"),
	}
	paymentFilters = []paramFilter{
		field("search", opContains, "memberName"),
		field("status", opOneOf),
		field("method", opEquals),
		field("dueDate", opDateRange),
		field("minAmount", opMin, "amount"),
		field("memberId", opEquals),
	}
	expenseFilters = []paramFilter{
		field("category", opOneOf),
		field("date", opDateRange),
	}
	approvalFilters = []paramFilter{
		field("type", opEquals),
		field("status", opEquals),
	}
)

var serverSorter = table.NewSorter(language.English)

// toRows converts records to their JSON object form so they can be filtered
// and sorted by wire field name.
func toRows[T any](items []T) ([]table.Row, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	rows := make([]table.Row, 0, len(items))
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// listPage filters, sorts and pages rows according to the query. Without a
// limit every matching row is returned as a single page. An explicit limit is
// capped at maxLimit.
func listPage(rows []table.Row, filters []paramFilter, q url.Values) ([]table.Row, apiclient.Pagination) {
	active := make([]paramFilter, 0, len(filters))
	for _, f := range filters {
		if f.applies(q) {
			active = append(active, f)
		}
	}
	matched := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		if allMatch(row, active, q) {
			matched = append(matched, row)
		}
	}

	if sortBy := q.Get("sortBy"); sortBy != "" {
		direction := table.Ascending
		if q.Get("sortOrder") == string(table.Descending) {
			direction = table.Descending
		}
		matched = serverSorter.Sort(matched,
			[]table.Column{{Key: sortBy, Sortable: true}},
			table.SortState{Key: sortBy, Direction: direction})
	}

	page := positive(q.Get("page"), 1)
	limit := len(matched)
	if q.Get("limit") != "" {
		limit = min(positive(q.Get("limit"), maxLimit), maxLimit)
	}
	if limit == 0 {
		limit = maxLimit
	}
	return table.Paginate(matched, page, limit), apiclient.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      len(matched),
		TotalPages: table.TotalPages(len(matched), limit),
	}
}

func allMatch(row table.Row, filters []paramFilter, q url.Values) bool {
	for _, f := range filters {
		if !f.match(row, q) {
			return false
		}
	}
	return true
}

func positive(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
