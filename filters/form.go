package filters

import (
	"fmt"
	"io"
	"maps"
	"strings"
	"sync"

	apperrors "github.com/jrsteele09/go-pg-admin/internal/errors"
)

// Values maps field ids to typed values.
type Values map[string]any

// Clone returns a copy that shares no slices with v.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for id, value := range v {
		if list, ok := value.([]string); ok {
			value = append([]string(nil), list...)
		}
		out[id] = value
	}
	return out
}

// Form holds the state of a filter panel: the schema, the current values and
// the per-field validation messages. A Form is safe for concurrent use.
type Form struct {
	lock   sync.RWMutex
	schema Schema
	values Values
	errors map[string]string
}

// NewForm validates schema and seeds every field with its default.
func NewForm(schema Schema) (*Form, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	f := &Form{
		schema: schema,
		values: Values{},
		errors: map[string]string{},
	}
	for _, d := range schema {
		f.values[d.ID] = d.DefaultValue()
	}
	return f, nil
}

// SetSchema replaces the schema. Fields that are new or currently empty are
// seeded from their defaults, fields that disappeared are dropped, and values
// the user already entered are kept.
func (f *Form) SetSchema(schema Schema) error {
	if err := schema.Validate(); err != nil {
		return err
	}

	f.lock.Lock()
	defer f.lock.Unlock()

	values := make(Values, len(schema))
	errors := map[string]string{}
	for _, d := range schema {
		current, ok := f.values[d.ID]
		if ok && d.strategy().check(d, current) == nil && !d.IsEmpty(current) {
			values[d.ID] = current
			if msg, hasErr := f.errors[d.ID]; hasErr {
				errors[d.ID] = msg
			}
			continue
		}
		values[d.ID] = d.DefaultValue()
	}
	f.schema = schema
	f.values = values
	f.errors = errors
	return nil
}

func (f *Form) Schema() Schema {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return f.schema
}

// Set parses raw input for field id. A parse failure is recorded as that
// field's error and returned; the previous value is kept.
func (f *Form) Set(id, raw string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	d, ok := f.schema.Find(id)
	if !ok {
		return apperrors.Wrapf(apperrors.ErrNotFound, "filter %q", id)
	}
	value, err := d.strategy().parse(d, raw)
	if err != nil {
		f.errors[id] = err.Error()
		return err
	}
	if value == nil {
		value = d.strategy().empty()
	}
	f.values[id] = value
	delete(f.errors, id)
	return nil
}

// SetValue stores an already typed value for field id.
func (f *Form) SetValue(id string, value any) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	d, ok := f.schema.Find(id)
	if !ok {
		return apperrors.Wrapf(apperrors.ErrNotFound, "filter %q", id)
	}
	if value == nil {
		value = d.strategy().empty()
	}
	if err := d.strategy().check(d, value); err != nil {
		f.errors[id] = err.Error()
		return err
	}
	f.values[id] = d.strategy().normalize(value)
	delete(f.errors, id)
	return nil
}

func (f *Form) Value(id string) (any, bool) {
	f.lock.RLock()
	defer f.lock.RUnlock()
	v, ok := f.values[id]
	return v, ok
}

// Values returns a copy of the current values.
func (f *Form) Values() Values {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return f.values.Clone()
}

// Errors returns a copy of the current field errors.
func (f *Form) Errors() map[string]string {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return maps.Clone(f.errors)
}

// Validate recomputes every field error and reports whether the form is valid.
func (f *Form) Validate() bool {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.validateLocked()
}

func (f *Form) validateLocked() bool {
	errors := map[string]string{}
	for _, d := range f.schema {
		value := f.values[d.ID]
		if d.IsEmpty(value) {
			if d.Required {
				errors[d.ID] = d.Label + " is required"
			}
			continue
		}
		if d.Validator != nil {
			if msg := d.Validator(value); msg != "" {
				errors[d.ID] = msg
			}
		}
	}
	f.errors = errors
	return len(errors) == 0
}

// Apply validates the form and, when it is valid, calls handler once with a
// copy of the values. It reports whether handler was called.
func (f *Form) Apply(handler func(Values)) bool {
	f.lock.Lock()
	if !f.validateLocked() {
		f.lock.Unlock()
		return false
	}
	values := f.values.Clone()
	f.lock.Unlock()

	handler(values)
	return true
}

// Reset restores every default and clears all errors.
func (f *Form) Reset() {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.values = make(Values, len(f.schema))
	for _, d := range f.schema {
		f.values[d.ID] = d.DefaultValue()
	}
	f.errors = map[string]string{}
}

// Render writes one line per field with its hint, current value and any error.
func (f *Form) Render(w io.Writer) error {
	f.lock.RLock()
	defer f.lock.RUnlock()

	var b strings.Builder
	for _, d := range f.schema {
		label := d.Label
		if d.Required {
			label += " *"
		}
		fmt.Fprintf(&b, "%-20s [%s] %s", label, d.ID, d.Kind)
		if hint := d.strategy().hint(d); hint != "" {
			fmt.Fprintf(&b, " (%s)", hint)
		}
		if value := f.values[d.ID]; !d.IsEmpty(value) {
			fmt.Fprintf(&b, " = %s", d.strategy().format(value))
		}
		b.WriteString("\n")
		if msg, ok := f.errors[d.ID]; ok {
			fmt.Fprintf(&b, "    ! %s\n", msg)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Format returns the display text of a value of field id.
func (s Schema) Format(id string, value any) string {
	d, ok := s.Find(id)
	if !ok {
		return fmt.Sprint(value)
	}
	return d.strategy().format(value)
}
