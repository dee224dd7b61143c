package datastore

import (
	"fmt"
	"time"

	"github.com/jrsteele09/go-pg-admin/pgadmin"
)

var memberNames = []string{
	"Aarav Sharma", "Ananya Iyer", "Rohan Gupta", "Sneha Reddy", "Vikram Singh", "Priya Menon",
	"Arjun Nair", "Kavya Joshi", "Rahul Verma", "Meera Pillai", "Aditya Rao", "Ishita Das",
	"Karan Mehta", "Divya Kulkarni", "Siddharth Bose", "Pooja Hegde", "Nikhil Jain", "Aishwarya Patil",
	"Manish Yadav", "Shreya Ghosh", "Varun Malhotra", "Tanvi Deshpande", "Harsh Agarwal", "Neha Bhatt",
}

var expenseSeed = []struct {
	category    string
	description string
	amount      float64
}{
	{"electricity", "Electricity bill", 18450},
	{"water", "Water tanker", 3200},
	{"groceries", "Monthly groceries", 42300},
	{"maintenance", "Geyser repair, room 204", 1850},
	{"salary", "Cook and cleaning staff", 36000},
	{"maintenance", "Wi-Fi router replacement", 2600},
	{"other", "Pest control", 4500},
}

// Seed fills s with a deterministic PG: rooms on three floors, members
// spread across them, two months of rent, expenses and open requests.
func Seed(s *Store, now time.Time) {
	now = now.UTC()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	sharing := []struct {
		name     string
		capacity int
		rent     float64
	}{
		{"single", 1, 12000},
		{"double", 2, 8500},
		{"triple", 3, 6500},
	}

	var rooms []pgadmin.Room
	for floor := 1; floor <= 3; floor++ {
		for n := 1; n <= 4; n++ {
			kind := sharing[(floor+n)%len(sharing)]
			room := pgadmin.Room{
				ID:       fmt.Sprintf("room-%d0%d", floor, n),
				Number:   fmt.Sprintf("%d0%d", floor, n),
				Floor:    floor,
				Sharing:  kind.name,
				Capacity: kind.capacity,
				Rent:     kind.rent,
				AC:       n%2 == 0,
				Status:   pgadmin.RoomAvailable,
			}
			if room.AC {
				room.Rent += 1500
			}
			rooms = append(rooms, room)
		}
	}
	rooms[len(rooms)-1].Status = pgadmin.RoomMaintenance

	for i, name := range memberNames {
		status := pgadmin.MemberActive
		switch {
		case i%11 == 5:
			status = pgadmin.MemberNotice
		case i%11 == 10:
			status = pgadmin.MemberCheckout
		}
		member := pgadmin.Member{
			ID:       fmt.Sprintf("mem-%03d", i+1),
			Name:     name,
			Phone:    fmt.Sprintf("98450%05d", 1000+i*37),
			JoinDate: lastMonth.AddDate(0, -i%9, i%27).Format(time.DateOnly),
			Rent:     sharing[i%len(sharing)].rent,
			Status:   status,
		}
		if room := freeBed(rooms); room != nil && status != pgadmin.MemberCheckout {
			room.Occupied++
			if room.Occupied == room.Capacity {
				room.Status = pgadmin.RoomFull
			}
			member.RoomNumber = room.Number
			member.Rent = room.Rent
		}
		member.Deposit = member.Rent * 2
		s.AddMember(member)

		for m, month := range []time.Time{lastMonth, thisMonth} {
			if m == 1 && status == pgadmin.MemberCheckout {
				continue
			}
			payment := pgadmin.Payment{
				ID:         fmt.Sprintf("pay-%s-%s", month.Format("0601"), member.ID[4:]),
				MemberID:   member.ID,
				MemberName: member.Name,
				Month:      month.Format("2006-01"),
				Amount:     member.Rent,
				DueDate:    month.AddDate(0, 0, 4).Format(time.DateOnly),
				Status:     pgadmin.PaymentPending,
			}
			switch {
			case m == 0 || i%4 != 0:
				payment.Status = pgadmin.PaymentPaid
				payment.Method = []string{"upi", "cash", "bank"}[i%3]
				payment.PaidDate = month.AddDate(0, 0, 1+i%4).Format(time.DateOnly)
			case i%8 == 0:
				payment.Status = pgadmin.PaymentOverdue
			}
			s.AddPayment(payment)
		}
	}
	for _, r := range rooms {
		s.AddRoom(r)
	}

	for m, month := range []time.Time{lastMonth, thisMonth} {
		for i, e := range expenseSeed {
			s.AddExpense(pgadmin.Expense{
				ID:          fmt.Sprintf("exp-%d%02d", m+1, i+1),
				Category:    e.category,
				Description: e.description,
				Amount:      e.amount + float64(m*250),
				Date:        month.AddDate(0, 0, 2+i*3).Format(time.DateOnly),
				PaidBy:      "admin",
			})
		}
	}

	requests := []struct {
		kind    string
		details string
	}{
		{"leave", "Going home for Diwali, back in 5 days"},
		{"room_change", "Wants to move to a double sharing AC room"},
		{"checkout", "Moving out at month end, notice given"},
		{"refund", "Deposit refund after checkout"},
		{"leave", "Exam leave for one week"},
		{"room_change", "Noise complaint, requests upper floor"},
	}
	for i, r := range requests {
		member := memberNames[(i*5)%len(memberNames)]
		s.AddApproval(pgadmin.Approval{
			ID:          fmt.Sprintf("apr-%03d", i+1),
			Type:        r.kind,
			MemberID:    fmt.Sprintf("mem-%03d", (i*5)%len(memberNames)+1),
			MemberName:  member,
			Details:     r.details,
			Status:      pgadmin.ApprovalPending,
			RequestedAt: now.AddDate(0, 0, -i).Format(time.DateOnly),
		})
	}
}

func freeBed(rooms []pgadmin.Room) *pgadmin.Room {
	for i := range rooms {
		if rooms[i].Status == pgadmin.RoomAvailable && rooms[i].Occupied < rooms[i].Capacity {
			return &rooms[i]
		}
	}
	return nil
}
