package pgadmin

import (
	"strings"

	"github.com/jrsteele09/go-pg-admin/filters"
	"github.com/jrsteele09/go-pg-admin/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Page describes one list screen: where its rows come from, how they are
// shown and which filters narrow them.
type Page struct {
	Name     string
	Title    string
	Endpoint string
	Mode     table.Mode
	Columns  []table.Column
	Filters  filters.Schema
}

var amountPrinter = message.NewPrinter(language.English)

// Rupees renders the numeric value under key as an amount, "-" when missing.
func Rupees(key string) func(table.Row) string {
	return func(r table.Row) string {
		v, ok := r.Get(key).(float64)
		if !ok {
			return "-"
		}
		return amountPrinter.Sprintf("₹%.0f", v)
	}
}

// Titled renders a snake_case status such as "checked_out" as "Checked out".
func Titled(key string) func(table.Row) string {
	return func(r table.Row) string {
		s, _ := r.Get(key).(string)
		if s == "" {
			return "-"
		}
		s = strings.ReplaceAll(s, "_", " ")
		return strings.ToUpper(s[:1]) + s[1:]
	}
}

func occupancy(r table.Row) string {
	occupied, _ := r.Get("occupied").(float64)
	capacity, _ := r.Get("capacity").(float64)
	return amountPrinter.Sprintf("%.0f/%.0f", occupied, capacity)
}

var (
	memberStatusOptions = []filters.Option{
		{Label: "Active", Value: string(MemberActive)},
		{Label: "On notice", Value: string(MemberNotice)},
		{Label: "Checked out", Value: string(MemberCheckout)},
	}
	sharingOptions = []filters.Option{
		{Label: "Single", Value: "single"},
		{Label: "Double", Value: "double"},
		{Label: "Triple", Value: "triple"},
	}
	paymentStatusOptions = []filters.Option{
		{Label: "Paid", Value: string(PaymentPaid)},
		{Label: "Pending", Value: string(PaymentPending)},
		{Label: "Overdue", Value: string(PaymentOverdue)},
	}
	paymentMethodOptions = []filters.Option{
		{Label: "Cash", Value: "cash"},
		{Label: "UPI", Value: "upi"},
		{Label: "Bank transfer", Value: "bank"},
	}
	expenseCategoryOptions = []filters.Option{
		{Label: "Electricity", Value: "electricity"},
		{Label: "Water", Value: "water"},
		{Label: "Groceries", Value: "groceries"},
		{Label: "Maintenance", Value: "maintenance"},
		{Label: "Salaries", Value: "salary"},
		{Label: "Other", Value: "other"},
	}
	approvalTypeOptions = []filters.Option{
		{Label: "Leave", Value: "leave"},
		{Label: "Checkout", Value: "checkout"},
		{Label: "Room change", Value: "room_change"},
		{Label: "Refund", Value: "refund"},
	}
	approvalStatusOptions = []filters.Option{
		{Label: "Pending", Value: string(ApprovalPending)},
		{Label: "Approved", Value: string(ApprovalApproved)},
		{Label: "Rejected", Value: string(ApprovalRejected)},
	}
)

func notNegative(label string) func(any) string {
	return func(v any) string {
		if f, ok := v.(float64); ok && f < 0 {
			return label + " cannot be negative"
		}
		return ""
	}
}

// Pages returns the list screens in menu order.
func Pages() []Page {
	return []Page{
		{
			Name:     "members",
			Title:    "Members",
			Endpoint: "/members",
			Mode:     table.ServerPaged,
			Columns: []table.Column{
				{Key: "name", Label: "Name", Sortable: true, Width: 18},
				{Key: "phone", Label: "Phone", Width: 12},
				{Key: "roomNumber", Label: "Room", Sortable: true},
				{Key: "joinDate", Label: "Joined", Sortable: true},
				{Key: "rent", Label: "Rent", Sortable: true, Align: table.AlignRight, Render: Rupees("rent")},
				{Key: "status", Label: "Status", Render: Titled("status")},
			},
			Filters: filters.Schema{
				{ID: "search", Kind: filters.KindSearch, Label: "Search", Placeholder: "name or phone"},
				{ID: "status", Kind: filters.KindSelect, Label: "Status", Options: memberStatusOptions, Default: string(MemberActive)},
				{ID: "roomNumber", Kind: filters.KindText, Label: "Room"},
				{ID: "joinDate", Kind: filters.KindDateRange, Label: "Joined between"},
			},
		},
		{
			Name:     "rooms",
			Title:    "Rooms",
			Endpoint: "/rooms",
			Mode:     table.ServerPaged,
			Columns: []table.Column{
				{Key: "number", Label: "Room", Sortable: true},
				{Key: "floor", Label: "Floor", Sortable: true, Align: table.AlignRight},
				{Key: "sharing", Label: "Sharing", Render: Titled("sharing")},
				{Key: "occupied", Label: "Beds", Align: table.AlignCenter, Render: occupancy},
				{Key: "rent", Label: "Rent", Sortable: true, Align: table.AlignRight, Render: Rupees("rent")},
				{Key: "status", Label: "Status", Render: Titled("status")},
			},
			Filters: filters.Schema{
				{ID: "sharing", Kind: filters.KindMultiSelect, Label: "Sharing", Options: sharingOptions},
				{ID: "status", Kind: filters.KindRadio, Label: "Status", Options: []filters.Option{
					{Label: "Available", Value: string(RoomAvailable)},
					{Label: "Full", Value: string(RoomFull)},
					{Label: "Maintenance", Value: string(RoomMaintenance)},
				}},
				{ID: "ac", Kind: filters.KindCheckbox, Label: "AC only"},
				{ID: "maxRent", Kind: filters.KindNumber, Label: "Max rent", Validator: notNegative("Max rent")},
			},
		},
		{
			Name:     "payments",
			Title:    "Payments",
			Endpoint: "/payments",
			Mode:     table.ServerPaged,
			Columns: []table.Column{
				{Key: "memberName", Label: "Member", Sortable: true, Width: 18},
				{Key: "month", Label: "Month", Sortable: true},
				{Key: "amount", Label: "Amount", Sortable: true, Align: table.AlignRight, Render: Rupees("amount")},
				{Key: "dueDate", Label: "Due", Sortable: true},
				{Key: "method", Label: "Method"},
				{Key: "status", Label: "Status", Render: Titled("status")},
			},
			Filters: filters.Schema{
				{ID: "search", Kind: filters.KindSearch, Label: "Member", Placeholder: "member name"},
				{ID: "status", Kind: filters.KindMultiSelect, Label: "Status", Options: paymentStatusOptions},
				{ID: "method", Kind: filters.KindSelect, Label: "Method", Options: paymentMethodOptions},
				{ID: "dueDate", Kind: filters.KindDateRange, Label: "Due between"},
				{ID: "minAmount", Kind: filters.KindNumber, Label: "Min amount", Validator: notNegative("Min amount")},
			},
		},
		{
			Name:     "expenses",
			Title:    "Expenses",
			Endpoint: "/expenses",
			Mode:     table.ClientPaged,
			Columns: []table.Column{
				{Key: "date", Label: "Date", Sortable: true},
				{Key: "category", Label: "Category", Sortable: true, Render: Titled("category")},
				{Key: "description", Label: "Description", Width: 24},
				{Key: "amount", Label: "Amount", Sortable: true, Align: table.AlignRight, Render: Rupees("amount")},
				{Key: "paidBy", Label: "Paid by"},
			},
			Filters: filters.Schema{
				{ID: "category", Kind: filters.KindMultiSelect, Label: "Category", Options: expenseCategoryOptions},
				{ID: "date", Kind: filters.KindDateRange, Label: "Spent between"},
			},
		},
		{
			Name:     "approvals",
			Title:    "Approvals",
			Endpoint: "/approvals",
			Mode:     table.ServerPaged,
			Columns: []table.Column{
				{Key: "id", Label: "ID", Width: 8},
				{Key: "memberName", Label: "Member", Sortable: true, Width: 18},
				{Key: "type", Label: "Type", Sortable: true, Render: Titled("type")},
				{Key: "details", Label: "Details", Width: 28},
				{Key: "requestedAt", Label: "Requested", Sortable: true},
				{Key: "status", Label: "Status", Render: Titled("status")},
			},
			Filters: filters.Schema{
				{ID: "type", Kind: filters.KindSelect, Label: "Type", Options: approvalTypeOptions},
				{ID: "status", Kind: filters.KindRadio, Label: "Status", Options: approvalStatusOptions, Default: string(ApprovalPending)},
			},
		},
	}
}

// PageByName looks a page up by its Name.
func PageByName(name string) (Page, bool) {
	for _, p := range Pages() {
		if p.Name == name {
			return p, true
		}
	}
	return Page{}, false
}
