package memrepo

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-pg-admin/internal/errors"
	"github.com/jrsteele09/go-pg-admin/internal/utils"
	"github.com/jrsteele09/go-pg-admin/staff"
)

var _ staff.Repo = (*Repo)(nil)

// Repo keeps staff accounts in memory. Emails are matched case-insensitively.
type Repo struct {
	staff    map[string]*staff.Staff
	emailIDs map[string]string // lower-cased email to staff id
	lock     sync.RWMutex
}

func New() *Repo {
	return &Repo{
		staff:    make(map[string]*staff.Staff),
		emailIDs: make(map[string]string),
	}
}

func (r *Repo) Upsert(s *staff.Staff) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	r.staff[s.ID] = s
	r.emailIDs[strings.ToLower(s.Email)] = s.ID
	return nil
}

func (r *Repo) GetByEmail(email string) (*staff.Staff, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	id, ok := r.emailIDs[strings.ToLower(email)]
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrNotFound, "staff %s", email)
	}
	return r.staff[id], nil
}

func (r *Repo) GetByID(id string) (*staff.Staff, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	s, ok := r.staff[id]
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrNotFound, "staff %s", id)
	}
	return s, nil
}

func (r *Repo) List() ([]*staff.Staff, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	list := make([]*staff.Staff, 0, len(r.staff))
	for _, s := range r.staff {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Email < list[j].Email
	})
	return list, nil
}

func (r *Repo) SetLastLogin(id string, at time.Time) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	s, ok := r.staff[id]
	if !ok {
		return apperrors.Wrapf(apperrors.ErrNotFound, "staff %s", id)
	}
	s.LastLogin = utils.Ptr(at)
	return nil
}
