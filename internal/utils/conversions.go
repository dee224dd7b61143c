package utils

import "fmt"

// ToStringSlice keeps the string and fmt.Stringer elements of a decoded JSON
// array, in order. Anything else is dropped.
func ToStringSlice(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		switch s := v.(type) {
		case string:
			out = append(out, s)
		case fmt.Stringer:
			out = append(out, s.String())
		}
	}
	return out
}
