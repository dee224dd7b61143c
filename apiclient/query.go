package apiclient

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"
)

// Ranged is a filter value with a lower and upper bound, such as a date range.
// Either bound may be "" when open.
type Ranged interface {
	Bounds() (from, to string)
}

// Query builds the query string of a collection request.
type Query struct {
	values url.Values
}

func NewQuery() *Query {
	return &Query{values: url.Values{}}
}

func (q *Query) Page(page int) *Query {
	if page > 0 {
		q.values.Set("page", strconv.Itoa(page))
	}
	return q
}

func (q *Query) Limit(limit int) *Query {
	if limit > 0 {
		q.values.Set("limit", strconv.Itoa(limit))
	}
	return q
}

// Sort adds sortBy/sortOrder; an empty key leaves the server default order.
func (q *Query) Sort(key, direction string) *Query {
	if key != "" {
		q.values.Set("sortBy", key)
		q.values.Set("sortOrder", direction)
	}
	return q
}

// Filters encodes a filter value map. Empty values are skipped, lists repeat
// the key, ranges become <key>From and <key>To, and dates use YYYY-MM-DD.
func (q *Query) Filters(filters map[string]any) *Query {
	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch v := filters[key].(type) {
		case nil:
		case string:
			if v != "" {
				q.values.Set(key, v)
			}
		case []string:
			for _, item := range v {
				q.values.Add(key, item)
			}
		case bool:
			if v {
				q.values.Set(key, "true")
			}
		case time.Time:
			if !v.IsZero() {
				q.values.Set(key, v.Format(time.DateOnly))
			}
		case Ranged:
			from, to := v.Bounds()
			if from != "" {
				q.values.Set(key+"From", from)
			}
			if to != "" {
				q.values.Set(key+"To", to)
			}
		default:
			q.values.Set(key, fmt.Sprint(v))
		}
	}
	return q
}

func (q *Query) Values() url.Values {
	return q.values
}

// Endpoint appends the encoded query to endpoint.
func (q *Query) Endpoint(endpoint string) string {
	if len(q.values) == 0 {
		return endpoint
	}
	return endpoint + "?" + q.values.Encode()
}
