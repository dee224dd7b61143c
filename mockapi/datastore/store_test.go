package datastore_test

import (
	"testing"
	"time"

	apperrors "github.com/jrsteele09/go-pg-admin/internal/errors"
	"github.com/jrsteele09/go-pg-admin/mockapi/datastore"
	"github.com/jrsteele09/go-pg-admin/pgadmin"
	"github.com/stretchr/testify/require"
)

var seedTime = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func seeded(t *testing.T) *datastore.Store {
	t.Helper()
	s := datastore.New()
	datastore.Seed(s, seedTime)
	return s
}

func TestSeed(t *testing.T) {
	s := seeded(t)

	require.Len(t, s.Members(), 24)
	require.Len(t, s.Rooms(), 12)
	require.Len(t, s.Payments(), 46)
	require.Len(t, s.Expenses(), 14)
	require.Len(t, s.Approvals(), 6)

	for _, r := range s.Rooms() {
		require.LessOrEqual(t, r.Occupied, r.Capacity, r.Number)
	}
	for _, m := range s.Members() {
		if m.Status == pgadmin.MemberCheckout {
			require.Empty(t, m.RoomNumber, m.ID)
			continue
		}
		require.NotEmpty(t, m.RoomNumber, m.ID)
	}

	summary := s.Summary(seedTime)
	require.Equal(t, 24, summary.TotalMembers)
	require.Equal(t, 22, summary.ActiveMembers)
	require.Equal(t, 24, summary.TotalBeds)
	require.Equal(t, 22, summary.OccupiedBeds)
	require.Equal(t, 6, summary.PendingApprovals)
	require.Greater(t, summary.CollectedThisMonth, 0.0)
	require.Greater(t, summary.PendingAmount, 0.0)
	require.Greater(t, summary.ExpensesThisMonth, 0.0)
}

func TestStore_Decide(t *testing.T) {
	s := seeded(t)

	a, err := s.Decide("apr-001", pgadmin.Decision{Status: pgadmin.ApprovalApproved, Remarks: "ok"}, "Priya")
	require.NoError(t, err)
	require.Equal(t, pgadmin.ApprovalApproved, a.Status)
	require.Equal(t, "Priya", a.DecidedBy)
	require.Equal(t, 5, s.Summary(seedTime).PendingApprovals)

	_, err = s.Decide("apr-001", pgadmin.Decision{Status: pgadmin.ApprovalRejected}, "Priya")
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = s.Decide("apr-002", pgadmin.Decision{Status: pgadmin.ApprovalPending}, "Priya")
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = s.Decide("apr-999", pgadmin.Decision{Status: pgadmin.ApprovalApproved}, "Priya")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStore_AttachReceipt(t *testing.T) {
	s := seeded(t)

	var pending pgadmin.Payment
	for _, p := range s.Payments() {
		if p.Status != pgadmin.PaymentPaid {
			pending = p
			break
		}
	}
	require.NotEmpty(t, pending.ID)

	p, err := s.AttachReceipt(pending.ID, "receipt.pdf", []byte("%PDF"), seedTime)
	require.NoError(t, err)
	require.Equal(t, pgadmin.PaymentPaid, p.Status)
	require.Equal(t, "2024-03-15", p.PaidDate)
	require.Equal(t, "/receipts/"+pending.ID+"/receipt.pdf", p.ReceiptURL)

	content, ok := s.Receipt(pending.ID)
	require.True(t, ok)
	require.Equal(t, []byte("%PDF"), content)

	_, err = s.AttachReceipt("pay-missing", "r.pdf", nil, seedTime)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
