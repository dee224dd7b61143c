package staff

import (
	"fmt"
	"slices"
	"time"
	"unicode"

	"github.com/jrsteele09/go-pg-admin/internal/utils"
	"github.com/jrsteele09/go-pg-admin/sessions"
	"golang.org/x/crypto/bcrypt"
)

// RoleType is the job of a staff member at the PG.
type RoleType string

const (
	RoleAdmin   RoleType = "admin"   // Owner; every permission
	RoleManager RoleType = "manager" // Runs the property day to day
	RoleWarden  RoleType = "warden"  // Looks after members and rooms
)

// Permissions granted to staff accounts.
const (
	PermViewMembers     = "members:read"
	PermViewRooms       = "rooms:read"
	PermViewPayments    = "payments:read"
	PermUploadReceipts  = "payments:receipt"
	PermViewExpenses    = "expenses:read"
	PermDecideApprovals = "approvals:decide"
	PermViewReports     = "reports:read"
)

var rolePermissions = map[RoleType][]string{
	RoleManager: {PermViewMembers, PermViewRooms, PermViewPayments, PermUploadReceipts, PermViewExpenses, PermDecideApprovals, PermViewReports},
	RoleWarden:  {PermViewMembers, PermViewRooms, PermDecideApprovals},
}

type Staff struct {
	ID           string     `json:"id,omitempty"`
	Name         string     `json:"name,omitempty"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	PasswordHash string     `json:"-"` // never serialise
	Role         RoleType   `json:"role,omitempty"`
	Permissions  []string   `json:"permissions,omitempty"`
	Blocked      bool       `json:"blocked,omitempty"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
}

// Profile is the identity handed to the console on login.
func (s *Staff) Profile() sessions.Profile {
	perms := s.Permissions
	if len(perms) == 0 {
		perms = rolePermissions[s.Role]
	}
	var lastLogin *time.Time
	if s.LastLogin != nil {
		lastLogin = utils.Ptr(*s.LastLogin)
	}
	return sessions.Profile{
		ID:          s.ID,
		Name:        s.Name,
		Email:       s.Email,
		Phone:       s.Phone,
		Role:        string(s.Role),
		Permissions: slices.Clone(perms),
		LastLogin:   lastLogin,
	}
}

func (s *Staff) CanAccess(perm string) bool {
	return s.Profile().HasPermission(perm)
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}
	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// New builds a staff account with a hashed password after checking its strength.
func New(name, email string, role RoleType, password string) (*Staff, error) {
	if err := ValidatePasswordStrength(password); err != nil {
		return nil, err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &Staff{
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: hash,
	}, nil
}
