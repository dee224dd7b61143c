package filters

import (
	"fmt"
	"time"

	apperrors "github.com/jrsteele09/go-pg-admin/internal/errors"
)

// Kind selects the input widget and value type of a filter field.
type Kind string

const (
	KindText        Kind = "text"          // string
	KindSearch      Kind = "search"        // string
	KindNumber      Kind = "number"        // float64, nil when empty
	KindDate        Kind = "date"          // time.Time, zero when empty
	KindDateRange   Kind = "date-range"    // DateRange
	KindSelect      Kind = "single-select" // string option value
	KindMultiSelect Kind = "multi-select"  // []string option values
	KindCheckbox    Kind = "checkbox"      // bool
	KindRadio       Kind = "radio"         // string option value
)

// Option is one choice of a select, multi-select or radio field.
type Option struct {
	Label string
	Value string
}

// Descriptor declares one filter field.
type Descriptor struct {
	ID          string
	Kind        Kind
	Label       string
	Placeholder string
	Options     []Option
	Default     any
	Required    bool

	// Validator returns an error message for a non-empty value, or "".
	Validator func(value any) string
}

func (d Descriptor) strategy() kindStrategy {
	return strategies[d.Kind]
}

// DefaultValue returns the declared default, or the kind's empty value.
func (d Descriptor) DefaultValue() any {
	s := d.strategy()
	if d.Default == nil {
		return s.empty()
	}
	return s.normalize(d.Default)
}

// IsEmpty reports whether v counts as "no value" for this field.
func (d Descriptor) IsEmpty(v any) bool {
	return d.strategy().isEmpty(v)
}

func (d Descriptor) hasOption(value string) bool {
	for _, o := range d.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Schema is the ordered filter fields of one page.
type Schema []Descriptor

// Validate checks that ids are unique, kinds are known, option based kinds
// have options and defaults have the right type.
func (s Schema) Validate() error {
	seen := make(map[string]struct{}, len(s))
	for i, d := range s {
		if d.ID == "" {
			return fmt.Errorf("field %d has no id: %w", i, apperrors.ErrInvalidSchema)
		}
		if _, dup := seen[d.ID]; dup {
			return fmt.Errorf("duplicate field id %q: %w", d.ID, apperrors.ErrInvalidSchema)
		}
		seen[d.ID] = struct{}{}

		strategy, ok := strategies[d.Kind]
		if !ok {
			return fmt.Errorf("field %q has unknown kind %q: %w", d.ID, d.Kind, apperrors.ErrInvalidSchema)
		}
		if strategy.needsOptions() && len(d.Options) == 0 {
			return fmt.Errorf("field %q of kind %s needs options: %w", d.ID, d.Kind, apperrors.ErrInvalidSchema)
		}
		if d.Default != nil {
			if err := strategy.check(d, d.Default); err != nil {
				return fmt.Errorf("field %q default: %w", d.ID, err)
			}
		}
	}
	return nil
}

// Find returns the descriptor with id.
func (s Schema) Find(id string) (Descriptor, bool) {
	for _, d := range s {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

// DateRange is the value of a date-range field. Either end may be zero.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// Bounds returns both ends as YYYY-MM-DD, "" for an open end.
func (r DateRange) Bounds() (string, string) {
	return formatDate(r.From), formatDate(r.To)
}

func (r DateRange) String() string {
	from, to := r.Bounds()
	return from + ".." + to
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}
