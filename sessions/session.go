package sessions

import "time"

// Storage keys. Both tiers hold the same four keys so either one can restore
// the session on its own.
const (
	KeyToken    = "authToken"
	KeyProfile  = "staffData"
	KeyExpiry   = "tokenExpiryTime"
	KeyIssuedAt = "loginTimestamp"
)

var allKeys = []string{KeyToken, KeyProfile, KeyExpiry, KeyIssuedAt}

// Profile is the staff identity returned by the backend on login.
type Profile struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Role        string     `json:"role,omitempty"`
	Permissions []string   `json:"permissions,omitempty"`
	LastLogin   *time.Time `json:"lastLogin,omitempty"`
}

// HasPermission reports whether the staff member was granted perm. Admins hold every permission.
func (p Profile) HasPermission(perm string) bool {
	if p.Role == "admin" {
		return true
	}
	for _, granted := range p.Permissions {
		if granted == perm {
			return true
		}
	}
	return false
}

// Session is a snapshot of the authenticated staff session.
type Session struct {
	Token     string
	Profile   Profile
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Store is one tier of key-value session storage.
type Store interface {
	// Get returns the value for key and whether it was present
	Get(key string) (string, bool, error)

	// Set creates or replaces the value for key
	Set(key, value string) error

	// Remove deletes the given keys; missing keys are not an error
	Remove(keys ...string) error
}
