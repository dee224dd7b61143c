package filters_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/jrsteele09/go-pg-admin/filters"
	apperrors "github.com/jrsteele09/go-pg-admin/internal/errors"
	"github.com/stretchr/testify/require"
)

var statusOptions = []filters.Option{
	{Label: "Paid", Value: "paid"},
	{Label: "Pending", Value: "pending"},
	{Label: "Overdue", Value: "overdue"},
}

func paymentSchema() filters.Schema {
	return filters.Schema{
		{ID: "search", Kind: filters.KindSearch, Label: "Search", Placeholder: "Name or phone"},
		{ID: "status", Kind: filters.KindSelect, Label: "Status", Options: statusOptions, Required: true},
		{ID: "minAmount", Kind: filters.KindNumber, Label: "Min amount", Default: 500,
			Validator: func(v any) string {
				if v.(float64) < 0 {
					return "Min amount cannot be negative"
				}
				return ""
			}},
		{ID: "period", Kind: filters.KindDateRange, Label: "Period"},
		{ID: "methods", Kind: filters.KindMultiSelect, Label: "Methods", Options: []filters.Option{
			{Label: "Cash", Value: "cash"}, {Label: "UPI", Value: "upi"}, {Label: "Card", Value: "card"},
		}},
		{ID: "withReceipt", Kind: filters.KindCheckbox, Label: "With receipt"},
	}
}

func TestNewForm_SeedsDefaults(t *testing.T) {
	form, err := filters.NewForm(paymentSchema())
	require.NoError(t, err)

	values := form.Values()
	require.Equal(t, "", values["search"])
	require.Equal(t, "", values["status"])
	require.Equal(t, 500.0, values["minAmount"])
	require.Equal(t, filters.DateRange{}, values["period"])
	require.Equal(t, []string{}, values["methods"])
	require.Equal(t, false, values["withReceipt"])
	require.Empty(t, form.Errors())
}

func TestForm_RequiredSelect(t *testing.T) {
	form, err := filters.NewForm(paymentSchema())
	require.NoError(t, err)

	calls := 0
	var applied filters.Values
	handler := func(v filters.Values) {
		calls++
		applied = v
	}

	require.False(t, form.Apply(handler))
	require.Equal(t, 0, calls)
	require.Equal(t, map[string]string{"status": "Status is required"}, form.Errors())

	require.NoError(t, form.Set("status", "pending"))
	require.Empty(t, form.Errors())

	require.True(t, form.Apply(handler))
	require.Equal(t, 1, calls)
	require.Len(t, applied, 6)
	require.Equal(t, "pending", applied["status"])
	require.Equal(t, 500.0, applied["minAmount"])
}

func TestForm_AppliedValuesAreACopy(t *testing.T) {
	form, err := filters.NewForm(paymentSchema())
	require.NoError(t, err)
	require.NoError(t, form.Set("status", "paid"))
	require.NoError(t, form.Set("methods", "cash, upi"))

	var applied filters.Values
	require.True(t, form.Apply(func(v filters.Values) { applied = v }))

	applied["methods"].([]string)[0] = "card"
	applied["status"] = "overdue"

	values := form.Values()
	require.Equal(t, []string{"cash", "upi"}, values["methods"])
	require.Equal(t, "paid", values["status"])
}

func TestForm_Set(t *testing.T) {
	t.Run("parses each kind", func(t *testing.T) {
		form, err := filters.NewForm(paymentSchema())
		require.NoError(t, err)

		require.NoError(t, form.Set("search", "  Ravi "))
		require.NoError(t, form.Set("minAmount", "1200.5"))
		require.NoError(t, form.Set("period", "2024-03-01..2024-03-31"))
		require.NoError(t, form.Set("methods", "upi,cash,upi"))
		require.NoError(t, form.Set("withReceipt", "yes"))

		values := form.Values()
		require.Equal(t, "Ravi", values["search"])
		require.Equal(t, 1200.5, values["minAmount"])
		require.Equal(t, filters.DateRange{
			From: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		}, values["period"])
		require.Equal(t, []string{"upi", "cash"}, values["methods"])
		require.Equal(t, true, values["withReceipt"])
	})

	t.Run("open ended range", func(t *testing.T) {
		form, err := filters.NewForm(paymentSchema())
		require.NoError(t, err)
		require.NoError(t, form.Set("period", "2024-03-01.."))

		r := form.Values()["period"].(filters.DateRange)
		from, to := r.Bounds()
		require.Equal(t, "2024-03-01", from)
		require.Equal(t, "", to)
	})

	t.Run("invalid input keeps the old value and records an error", func(t *testing.T) {
		form, err := filters.NewForm(paymentSchema())
		require.NoError(t, err)

		for id, raw := range map[string]string{
			"minAmount":   "lots",
			"status":      "refunded",
			"period":      "2024-03-31..2024-03-01",
			"methods":     "cash,cheque",
			"withReceipt": "maybe",
		} {
			err := form.Set(id, raw)
			require.ErrorIs(t, err, apperrors.ErrInvalidValue, id)
			require.Contains(t, form.Errors(), id)
		}
		require.Equal(t, 500.0, form.Values()["minAmount"])
		require.Equal(t, "", form.Values()["status"])
	})

	t.Run("a successful set clears the field error", func(t *testing.T) {
		form, err := filters.NewForm(paymentSchema())
		require.NoError(t, err)

		require.Error(t, form.Set("minAmount", "x"))
		require.Contains(t, form.Errors(), "minAmount")
		require.NoError(t, form.Set("minAmount", "10"))
		require.NotContains(t, form.Errors(), "minAmount")
	})

	t.Run("unknown field", func(t *testing.T) {
		form, err := filters.NewForm(paymentSchema())
		require.NoError(t, err)
		require.ErrorIs(t, form.Set("nope", "x"), apperrors.ErrNotFound)
	})

	t.Run("empty number clears it", func(t *testing.T) {
		form, err := filters.NewForm(paymentSchema())
		require.NoError(t, err)
		require.NoError(t, form.Set("minAmount", ""))
		require.Nil(t, form.Values()["minAmount"])
	})
}

func TestForm_ValidatorRunsOnlyWhenNotEmpty(t *testing.T) {
	form, err := filters.NewForm(paymentSchema())
	require.NoError(t, err)
	require.NoError(t, form.Set("status", "paid"))

	require.NoError(t, form.Set("minAmount", "-5"))
	require.False(t, form.Validate())
	require.Equal(t, "Min amount cannot be negative", form.Errors()["minAmount"])

	require.NoError(t, form.Set("minAmount", ""))
	require.True(t, form.Validate())
}

func TestForm_RequiredCheckbox(t *testing.T) {
	form, err := filters.NewForm(filters.Schema{
		{ID: "agree", Kind: filters.KindCheckbox, Label: "Confirm", Required: true},
	})
	require.NoError(t, err)

	require.False(t, form.Validate())
	require.Equal(t, "Confirm is required", form.Errors()["agree"])

	require.NoError(t, form.SetValue("agree", true))
	require.True(t, form.Validate())
}

func TestForm_Reset(t *testing.T) {
	form, err := filters.NewForm(paymentSchema())
	require.NoError(t, err)
	require.NoError(t, form.Set("search", "Asha"))
	require.NoError(t, form.Set("minAmount", "900"))
	require.False(t, form.Validate())

	form.Reset()

	values := form.Values()
	require.Equal(t, "", values["search"])
	require.Equal(t, 500.0, values["minAmount"])
	require.Empty(t, form.Errors())
}

func TestForm_SetSchema(t *testing.T) {
	form, err := filters.NewForm(paymentSchema())
	require.NoError(t, err)
	require.NoError(t, form.Set("search", "Asha"))
	require.NoError(t, form.Set("minAmount", ""))
	require.False(t, form.Validate())

	next := filters.Schema{
		{ID: "search", Kind: filters.KindSearch, Label: "Search"},
		{ID: "minAmount", Kind: filters.KindNumber, Label: "Min amount", Default: 750},
		{ID: "floor", Kind: filters.KindRadio, Label: "Floor", Default: "1", Options: []filters.Option{
			{Label: "Ground", Value: "0"}, {Label: "First", Value: "1"},
		}},
	}
	require.NoError(t, form.SetSchema(next))

	values := form.Values()
	require.Equal(t, filters.Values{"search": "Asha", "minAmount": 750.0, "floor": "1"}, values)
	require.Empty(t, form.Errors())
}

func TestSchema_Validate(t *testing.T) {
	tests := []struct {
		name   string
		schema filters.Schema
	}{
		{"missing id", filters.Schema{{Kind: filters.KindText, Label: "Name"}}},
		{"duplicate id", filters.Schema{
			{ID: "a", Kind: filters.KindText},
			{ID: "a", Kind: filters.KindNumber},
		}},
		{"unknown kind", filters.Schema{{ID: "a", Kind: "slider"}}},
		{"select without options", filters.Schema{{ID: "a", Kind: filters.KindSelect}}},
		{"radio without options", filters.Schema{{ID: "a", Kind: filters.KindRadio}}},
		{"multi without options", filters.Schema{{ID: "a", Kind: filters.KindMultiSelect}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := filters.NewForm(tt.schema)
			require.ErrorIs(t, err, apperrors.ErrInvalidSchema)
		})
	}

	t.Run("default of the wrong type", func(t *testing.T) {
		_, err := filters.NewForm(filters.Schema{{ID: "a", Kind: filters.KindNumber, Label: "A", Default: "ten"}})
		require.ErrorIs(t, err, apperrors.ErrInvalidValue)
	})

	t.Run("default outside the options", func(t *testing.T) {
		_, err := filters.NewForm(filters.Schema{{ID: "a", Kind: filters.KindSelect, Label: "A", Default: "x", Options: statusOptions}})
		require.ErrorIs(t, err, apperrors.ErrInvalidValue)
	})
}

func TestForm_Render(t *testing.T) {
	form, err := filters.NewForm(filters.Schema{
		{ID: "status", Kind: filters.KindSelect, Label: "Status", Options: statusOptions, Required: true},
		{ID: "minAmount", Kind: filters.KindNumber, Label: "Min amount", Default: 500},
	})
	require.NoError(t, err)
	require.False(t, form.Validate())

	var buf bytes.Buffer
	require.NoError(t, form.Render(&buf))
	require.Equal(t,
		"Status *             [status] single-select (paid|pending|overdue)\n"+
			"    ! Status is required\n"+
			"Min amount           [minAmount] number = 500\n",
		buf.String())
}
