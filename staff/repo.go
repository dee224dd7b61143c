package staff

import "time"

type Repo interface {
	Upsert(staff *Staff) error
	GetByEmail(email string) (*Staff, error)
	GetByID(id string) (*Staff, error)
	List() ([]*Staff, error)
	SetLastLogin(id string, at time.Time) error
}
