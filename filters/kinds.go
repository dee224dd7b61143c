package filters

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/go-pg-admin/internal/errors"
	"github.com/jrsteele09/go-pg-admin/internal/utils"
)

// kindStrategy holds everything that differs between filter kinds. Adding a
// kind means adding a strategy to the registry.
type kindStrategy interface {
	empty() any
	isEmpty(v any) bool
	// parse converts console input into the kind's value type
	parse(d Descriptor, raw string) (any, error)
	// check validates an already typed value
	check(d Descriptor, v any) error
	// normalize converts an accepted value into its canonical type, copying slices
	normalize(v any) any
	format(v any) string
	hint(d Descriptor) string
	needsOptions() bool
}

var strategies = map[Kind]kindStrategy{
	KindText:        textStrategy{},
	KindSearch:      textStrategy{},
	KindNumber:      numberStrategy{},
	KindDate:        dateStrategy{},
	KindDateRange:   dateRangeStrategy{},
	KindSelect:      choiceStrategy{},
	KindRadio:       choiceStrategy{},
	KindMultiSelect: multiChoiceStrategy{},
	KindCheckbox:    checkboxStrategy{},
}

func invalid(d Descriptor, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", d.Label, fmt.Sprintf(format, args...), apperrors.ErrInvalidValue)
}

type textStrategy struct{}

func (textStrategy) empty() any { return "" }

func (textStrategy) isEmpty(v any) bool {
	s, _ := v.(string)
	return strings.TrimSpace(s) == ""
}

func (textStrategy) parse(_ Descriptor, raw string) (any, error) {
	return strings.TrimSpace(raw), nil
}

func (textStrategy) check(d Descriptor, v any) error {
	if _, ok := v.(string); !ok {
		return invalid(d, "expected text, got %T", v)
	}
	return nil
}

func (textStrategy) normalize(v any) any { return v }

func (textStrategy) format(v any) string {
	s, _ := v.(string)
	return s
}

func (textStrategy) hint(d Descriptor) string { return d.Placeholder }

func (textStrategy) needsOptions() bool { return false }

type numberStrategy struct{}

func (numberStrategy) empty() any { return nil }

func (numberStrategy) isEmpty(v any) bool { return v == nil }

func (numberStrategy) parse(d Descriptor, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, invalid(d, "%q is not a number", raw)
	}
	return f, nil
}

func (s numberStrategy) check(d Descriptor, v any) error {
	if v == nil {
		return nil
	}
	if _, ok := toFloat(v); !ok {
		return invalid(d, "expected a number, got %T", v)
	}
	return nil
}

func (numberStrategy) normalize(v any) any {
	if f, ok := toFloat(v); ok {
		return f
	}
	return nil
}

func (numberStrategy) format(v any) string {
	f, ok := toFloat(v)
	if !ok {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (numberStrategy) hint(d Descriptor) string { return d.Placeholder }

func (numberStrategy) needsOptions() bool { return false }

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

type dateStrategy struct{}

func (dateStrategy) empty() any { return time.Time{} }

func (dateStrategy) isEmpty(v any) bool {
	t, ok := v.(time.Time)
	return !ok || t.IsZero()
}

func (dateStrategy) parse(d Descriptor, raw string) (any, error) {
	return parseDate(d, raw)
}

func (dateStrategy) check(d Descriptor, v any) error {
	if _, ok := v.(time.Time); !ok {
		return invalid(d, "expected a date, got %T", v)
	}
	return nil
}

func (dateStrategy) normalize(v any) any { return v }

func (dateStrategy) format(v any) string {
	t, _ := v.(time.Time)
	return formatDate(t)
}

func (dateStrategy) hint(Descriptor) string { return "YYYY-MM-DD" }

func (dateStrategy) needsOptions() bool { return false }

func parseDate(d Descriptor, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, invalid(d, "%q is not a YYYY-MM-DD date", raw)
	}
	return t, nil
}

type dateRangeStrategy struct{}

func (dateRangeStrategy) empty() any { return DateRange{} }

func (dateRangeStrategy) isEmpty(v any) bool {
	r, ok := v.(DateRange)
	return !ok || r.IsZero()
}

// parse accepts "FROM..TO" with either end optional.
func (dateRangeStrategy) parse(d Descriptor, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DateRange{}, nil
	}
	fromRaw, toRaw, found := strings.Cut(raw, "..")
	if !found {
		return nil, invalid(d, "%q is not a FROM..TO range", raw)
	}
	from, err := parseDate(d, fromRaw)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(d, toRaw)
	if err != nil {
		return nil, err
	}
	r := DateRange{From: from, To: to}
	if err := (dateRangeStrategy{}).check(d, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (dateRangeStrategy) check(d Descriptor, v any) error {
	r, ok := v.(DateRange)
	if !ok {
		return invalid(d, "expected a date range, got %T", v)
	}
	if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From) {
		return invalid(d, "end date is before start date")
	}
	return nil
}

func (dateRangeStrategy) normalize(v any) any { return v }

func (dateRangeStrategy) format(v any) string {
	r, _ := v.(DateRange)
	if r.IsZero() {
		return ""
	}
	return r.String()
}

func (dateRangeStrategy) hint(Descriptor) string { return "YYYY-MM-DD..YYYY-MM-DD" }

func (dateRangeStrategy) needsOptions() bool { return false }

// choiceStrategy serves single-select and radio fields.
type choiceStrategy struct{}

func (choiceStrategy) empty() any { return "" }

func (choiceStrategy) isEmpty(v any) bool {
	s, _ := v.(string)
	return s == ""
}

func (c choiceStrategy) parse(d Descriptor, raw string) (any, error) {
	value := strings.TrimSpace(raw)
	if err := c.check(d, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (choiceStrategy) check(d Descriptor, v any) error {
	s, ok := v.(string)
	if !ok {
		return invalid(d, "expected an option value, got %T", v)
	}
	if s != "" && !d.hasOption(s) {
		return invalid(d, "%q is not one of %s", s, optionValues(d))
	}
	return nil
}

func (choiceStrategy) normalize(v any) any { return v }

func (choiceStrategy) format(v any) string {
	s, _ := v.(string)
	return s
}

func (choiceStrategy) hint(d Descriptor) string { return optionValues(d) }

func (choiceStrategy) needsOptions() bool { return true }

type multiChoiceStrategy struct{}

func (multiChoiceStrategy) empty() any { return []string{} }

func (multiChoiceStrategy) isEmpty(v any) bool {
	return len(asStrings(v)) == 0
}

// parse accepts comma separated option values.
func (m multiChoiceStrategy) parse(d Descriptor, raw string) (any, error) {
	values := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" && !slices.Contains(values, part) {
			values = append(values, part)
		}
	}
	if err := m.check(d, values); err != nil {
		return nil, err
	}
	return values, nil
}

func (multiChoiceStrategy) check(d Descriptor, v any) error {
	switch v.(type) {
	case []string, []any:
	default:
		return invalid(d, "expected a list of option values, got %T", v)
	}
	for _, s := range asStrings(v) {
		if !d.hasOption(s) {
			return invalid(d, "%q is not one of %s", s, optionValues(d))
		}
	}
	return nil
}

func (multiChoiceStrategy) normalize(v any) any {
	return slices.Clone(asStrings(v))
}

func (multiChoiceStrategy) format(v any) string {
	return strings.Join(asStrings(v), ",")
}

func (multiChoiceStrategy) hint(d Descriptor) string { return optionValues(d) + " (comma separated)" }

func (multiChoiceStrategy) needsOptions() bool { return true }

// asStrings accepts both []string and JSON decoded []any.
func asStrings(v any) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		return utils.ToStringSlice(s)
	default:
		return nil
	}
}

type checkboxStrategy struct{}

func (checkboxStrategy) empty() any { return false }

// isEmpty treats an unchecked box as empty so that a required checkbox must be ticked.
func (checkboxStrategy) isEmpty(v any) bool {
	b, _ := v.(bool)
	return !b
}

func (checkboxStrategy) parse(d Descriptor, raw string) (any, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "false", "no", "off", "n":
		return false, nil
	case "1", "true", "yes", "on", "y":
		return true, nil
	default:
		return nil, invalid(d, "%q is not yes or no", raw)
	}
}

func (checkboxStrategy) check(d Descriptor, v any) error {
	if _, ok := v.(bool); !ok {
		return invalid(d, "expected true or false, got %T", v)
	}
	return nil
}

func (checkboxStrategy) normalize(v any) any { return v }

func (checkboxStrategy) format(v any) string {
	if b, _ := v.(bool); b {
		return "yes"
	}
	return "no"
}

func (checkboxStrategy) hint(Descriptor) string { return "yes|no" }

func (checkboxStrategy) needsOptions() bool { return false }

func optionValues(d Descriptor) string {
	values := make([]string, len(d.Options))
	for i, o := range d.Options {
		values[i] = o.Value
	}
	return strings.Join(values, "|")
}
