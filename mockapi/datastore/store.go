package datastore

import (
	"slices"
	"strings"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/go-pg-admin/internal/errors"
	"github.com/jrsteele09/go-pg-admin/pgadmin"
)

// Store holds the PG records served by the development backend.
type Store struct {
	lock      sync.RWMutex
	members   []pgadmin.Member
	rooms     []pgadmin.Room
	payments  []pgadmin.Payment
	expenses  []pgadmin.Expense
	approvals []pgadmin.Approval
	receipts  map[string][]byte // payment id to receipt content
}

func New() *Store {
	return &Store{receipts: make(map[string][]byte)}
}

func (s *Store) Members() []pgadmin.Member {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return slices.Clone(s.members)
}

func (s *Store) Rooms() []pgadmin.Room {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return slices.Clone(s.rooms)
}

func (s *Store) Payments() []pgadmin.Payment {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return slices.Clone(s.payments)
}

func (s *Store) Expenses() []pgadmin.Expense {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return slices.Clone(s.expenses)
}

func (s *Store) Approvals() []pgadmin.Approval {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return slices.Clone(s.approvals)
}

func (s *Store) AddMember(m pgadmin.Member) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.members = append(s.members, m)
}

func (s *Store) AddRoom(r pgadmin.Room) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.rooms = append(s.rooms, r)
}

func (s *Store) AddPayment(p pgadmin.Payment) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.payments = append(s.payments, p)
}

func (s *Store) AddExpense(e pgadmin.Expense) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.expenses = append(s.expenses, e)
}

func (s *Store) AddApproval(a pgadmin.Approval) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.approvals = append(s.approvals, a)
}

// Decide records a staff decision on a pending approval. Deciding an approval
// that is no longer pending fails with ErrValidation.
func (s *Store) Decide(id string, decision pgadmin.Decision, decidedBy string) (pgadmin.Approval, error) {
	if decision.Status != pgadmin.ApprovalApproved && decision.Status != pgadmin.ApprovalRejected {
		return pgadmin.Approval{}, apperrors.Wrapf(apperrors.ErrValidation, "status %q", decision.Status)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	i := slices.IndexFunc(s.approvals, func(a pgadmin.Approval) bool { return a.ID == id })
	if i < 0 {
		return pgadmin.Approval{}, apperrors.Wrapf(apperrors.ErrNotFound, "approval %s", id)
	}
	a := &s.approvals[i]
	if a.Status != pgadmin.ApprovalPending {
		return pgadmin.Approval{}, apperrors.Wrapf(apperrors.ErrValidation, "approval %s is already %s", id, a.Status)
	}
	a.Status = decision.Status
	a.Remarks = decision.Remarks
	a.DecidedBy = decidedBy
	return *a, nil
}

// AttachReceipt stores a receipt for a payment and marks it paid.
func (s *Store) AttachReceipt(paymentID, fileName string, content []byte, paidOn time.Time) (pgadmin.Payment, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	i := slices.IndexFunc(s.payments, func(p pgadmin.Payment) bool { return p.ID == paymentID })
	if i < 0 {
		return pgadmin.Payment{}, apperrors.Wrapf(apperrors.ErrNotFound, "payment %s", paymentID)
	}
	p := &s.payments[i]
	s.receipts[paymentID] = content
	p.ReceiptURL = "/receipts/" + paymentID + "/" + fileName
	p.Status = pgadmin.PaymentPaid
	if p.PaidDate == "" {
		p.PaidDate = paidOn.Format(time.DateOnly)
	}
	return *p, nil
}

func (s *Store) Receipt(paymentID string) ([]byte, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	content, ok := s.receipts[paymentID]
	return content, ok
}

// Summary aggregates the dashboard figures for the month containing now.
func (s *Store) Summary(now time.Time) pgadmin.Summary {
	s.lock.RLock()
	defer s.lock.RUnlock()

	month := now.Format("2006-01")
	var sum pgadmin.Summary

	sum.TotalMembers = len(s.members)
	for _, m := range s.members {
		if m.Status != pgadmin.MemberCheckout {
			sum.ActiveMembers++
		}
	}
	sum.TotalRooms = len(s.rooms)
	for _, r := range s.rooms {
		sum.TotalBeds += r.Capacity
		sum.OccupiedBeds += r.Occupied
	}
	for _, p := range s.payments {
		switch {
		case p.Status == pgadmin.PaymentPaid && strings.HasPrefix(p.PaidDate, month):
			sum.CollectedThisMonth += p.Amount
		case p.Status != pgadmin.PaymentPaid:
			sum.PendingAmount += p.Amount
		}
	}
	for _, e := range s.expenses {
		if strings.HasPrefix(e.Date, month) {
			sum.ExpensesThisMonth += e.Amount
		}
	}
	for _, a := range s.approvals {
		if a.Status == pgadmin.ApprovalPending {
			sum.PendingApprovals++
		}
	}
	return sum
}
