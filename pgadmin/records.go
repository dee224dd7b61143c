package pgadmin

import "github.com/jrsteele09/go-pg-admin/sessions"

type MemberStatus string

const (
	MemberActive   MemberStatus = "active"
	MemberNotice   MemberStatus = "notice" // serving notice before checkout
	MemberCheckout MemberStatus = "checked_out"
)

// Member is a resident of the PG.
type Member struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Phone      string       `json:"phone"`
	Email      string       `json:"email,omitempty"`
	RoomNumber string       `json:"roomNumber"`
	JoinDate   string       `json:"joinDate"` // YYYY-MM-DD
	Rent       float64      `json:"rent"`
	Deposit    float64      `json:"deposit"`
	Status     MemberStatus `json:"status"`
}

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomFull        RoomStatus = "full"
	RoomMaintenance RoomStatus = "maintenance"
)

type Room struct {
	ID       string     `json:"id"`
	Number   string     `json:"number"`
	Floor    int        `json:"floor"`
	Sharing  string     `json:"sharing"` // single, double, triple
	Capacity int        `json:"capacity"`
	Occupied int        `json:"occupied"`
	Rent     float64    `json:"rent"`
	AC       bool       `json:"ac"`
	Status   RoomStatus `json:"status"`
}

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentOverdue PaymentStatus = "overdue"
)

type Payment struct {
	ID         string        `json:"id"`
	MemberID   string        `json:"memberId"`
	MemberName string        `json:"memberName"`
	Month      string        `json:"month"` // YYYY-MM
	Amount     float64       `json:"amount"`
	Method     string        `json:"method,omitempty"`
	Status     PaymentStatus `json:"status"`
	DueDate    string        `json:"dueDate"`
	PaidDate   string        `json:"paidDate,omitempty"`
	ReceiptURL string        `json:"receiptUrl,omitempty"`
}

type Expense struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	PaidBy      string  `json:"paidBy"`
}

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Approval is a member request waiting for a staff decision.
type Approval struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"` // leave, checkout, room_change, refund
	MemberID    string         `json:"memberId"`
	MemberName  string         `json:"memberName"`
	Details     string         `json:"details"`
	Status      ApprovalStatus `json:"status"`
	RequestedAt string         `json:"requestedAt"`
	DecidedBy   string         `json:"decidedBy,omitempty"`
	Remarks     string         `json:"remarks,omitempty"`
}

// Decision is the body of PATCH /approvals/{id}.
type Decision struct {
	Status  ApprovalStatus `json:"status"`
	Remarks string         `json:"remarks,omitempty"`
}

// Summary backs the dashboard cards.
type Summary struct {
	TotalMembers       int     `json:"totalMembers"`
	ActiveMembers      int     `json:"activeMembers"`
	TotalRooms         int     `json:"totalRooms"`
	TotalBeds          int     `json:"totalBeds"`
	OccupiedBeds       int     `json:"occupiedBeds"`
	CollectedThisMonth float64 `json:"collectedThisMonth"`
	PendingAmount      float64 `json:"pendingAmount"`
	ExpensesThisMonth  float64 `json:"expensesThisMonth"`
	PendingApprovals   int     `json:"pendingApprovals"`
}

// OccupancyRate is the share of beds in use, 0 when there are no beds.
func (s Summary) OccupancyRate() float64 {
	if s.TotalBeds == 0 {
		return 0
	}
	return float64(s.OccupiedBeds) / float64(s.TotalBeds)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the data of a successful POST /auth/login.
type LoginResponse struct {
	Token     string           `json:"token"`
	Staff     sessions.Profile `json:"staff"`
	ExpiresIn string           `json:"expiresIn"`
}
