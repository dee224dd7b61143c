package table

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Row is one record of a collection. Columns read it by key.
type Row map[string]any

// Get returns the value stored under key, or nil.
func (r Row) Get(key string) any {
	if r == nil {
		return nil
	}
	return r[key]
}

type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// Column declares how one row key is shown.
type Column struct {
	Key      string
	Label    string
	Sortable bool
	Align    Align
	Width    int              // maximum cell width in runes, 0 for unlimited
	Render   func(Row) string // optional custom cell text
}

// CellText returns the display text of row under column: the custom renderer
// when set, "-" for missing values, otherwise the value's string form.
func CellText(row Row, column Column) string {
	if column.Render != nil {
		return column.Render(row)
	}
	v := row.Get(column.Key)
	if v == nil {
		return "-"
	}
	return toString(v)
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case json.Number:
		return t.String()
	case time.Time:
		return t.Format(time.DateOnly)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// toNumber reports whether v is numeric and returns it as a float64.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
