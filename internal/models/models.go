package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentOnline PaymentMethod = "online"
	PaymentCash   PaymentMethod = "cash"
)

type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "paid"
	PaymentUnpaid PaymentStatus = "unpaid"
)

type Service struct {
	ID              string `db:"id"`
	Title           string `db:"title"`
	DurationMinutes int    `db:"duration_minutes"`
	Price           int    `db:"price"`
	Category        string `db:"category"`
}

// WorkHours хранит границы рабочего дня в формате "HH:MM".
type WorkHours struct {
	Start string
	End   string
}

type StaffMember struct {
	ID         string
	Name       string
	Position   string
	ServiceIDs []string
	WorkDays   []int // 0 = Sunday
	WorkHours  WorkHours
}

func (s *StaffMember) Performs(serviceID string) bool {
	for _, id := range s.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

func (s *StaffMember) WorksOn(weekday time.Weekday) bool {
	for _, d := range s.WorkDays {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

// Booking хранит снимок условий на момент создания: имя услуги, имя мастера,
// длительность и цена фиксируются и не пересчитываются при изменении каталога.
type Booking struct {
	ID              string        `db:"id"`
	UserID          string        `db:"user_id"`
	ServiceID       string        `db:"service_id"`
	ServiceName     string        `db:"service_name"`
	StaffID         string        `db:"staff_id"`
	StaffName       string        `db:"staff_name"`
	Date            string        `db:"date"` // "2006-01-02"
	Time            string        `db:"time"` // "15:04"
	DurationMinutes int           `db:"duration_minutes"`
	Price           int           `db:"price"`
	Status          BookingStatus `db:"status"`
	PaymentMethod   PaymentMethod `db:"payment_method"`
	PaymentStatus   PaymentStatus `db:"payment_status"`
	ClientName      string        `db:"client_name"`
	ClientPhone     string        `db:"client_phone"`
	ClientEmail     string        `db:"client_email"`
	Comments        string        `db:"comments"`
	CreatedAt       time.Time     `db:"created_at"`
}
