package api

import "time"

type ServiceResponse struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	DurationMinutes int    `json:"duration_minutes"`
	Price           int    `json:"price"`
	Category        string `json:"category"`
}

type WorkHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type StaffResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Position   string    `json:"position"`
	ServiceIDs []string  `json:"service_ids"`
	WorkDays   []int     `json:"work_days"`
	WorkHours  WorkHours `json:"work_hours"`
}

type SlotsResponse struct {
	ServiceID string   `json:"service_id"`
	StaffID   string   `json:"staff_id"`
	Date      string   `json:"date"`
	Slots     []string `json:"slots"`
}

type BookingRequest struct {
	UserID        string `json:"user_id"`
	ServiceID     string `json:"service_id"`
	StaffID       string `json:"staff_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	ClientName    string `json:"client_name"`
	ClientPhone   string `json:"client_phone"`
	ClientEmail   string `json:"client_email"`
	Comments      string `json:"comments,omitempty"`
	PaymentMethod string `json:"payment_method"`
}

type BookingResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	ServiceID       string    `json:"service_id"`
	ServiceName     string    `json:"service_name"`
	StaffID         string    `json:"staff_id"`
	StaffName       string    `json:"staff_name"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           int       `json:"price"`
	Status          string    `json:"status"`
	PaymentMethod   string    `json:"payment_method"`
	PaymentStatus   string    `json:"payment_status"`
	ClientName      string    `json:"client_name"`
	ClientPhone     string    `json:"client_phone"`
	ClientEmail     string    `json:"client_email"`
	Comments        string    `json:"comments,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Wizard

type WizardStartRequest struct {
	UserID      string `json:"user_id"`
	ServiceID   string `json:"service_id,omitempty"` // предвыбранная услуга, как ?service= в каталоге
	ClientName  string `json:"client_name,omitempty"`
	ClientPhone string `json:"client_phone,omitempty"`
	ClientEmail string `json:"client_email,omitempty"`
}

type WizardServiceRequest struct {
	ServiceID string `json:"service_id"`
}

type WizardStaffDateRequest struct {
	StaffID string `json:"staff_id"`
	Date    string `json:"date"`
	Time    string `json:"time,omitempty"`
}

type WizardContactRequest struct {
	ClientName    string `json:"client_name"`
	ClientPhone   string `json:"client_phone"`
	ClientEmail   string `json:"client_email"`
	Comments      string `json:"comments,omitempty"`
	PaymentMethod string `json:"payment_method"`
}

type WizardDraft struct {
	ServiceID     string `json:"service_id,omitempty"`
	StaffID       string `json:"staff_id,omitempty"`
	Date          string `json:"date,omitempty"`
	Time          string `json:"time,omitempty"`
	ClientName    string `json:"client_name,omitempty"`
	ClientPhone   string `json:"client_phone,omitempty"`
	ClientEmail   string `json:"client_email,omitempty"`
	Comments      string `json:"comments,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
}

type WizardStateResponse struct {
	ID             string           `json:"id"`
	UserID         string           `json:"user_id"`
	Step           string           `json:"step"`
	Draft          WizardDraft      `json:"draft"`
	Price          *int             `json:"price,omitempty"` // итоговая цена, считается на переходе к Summary
	AvailableSlots []string         `json:"available_slots,omitempty"`
	Booking        *BookingResponse `json:"booking,omitempty"` // заполнено только на шаге confirmation
}
