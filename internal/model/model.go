package model

import "time"

const (
	RolePatient = "patient"
	RoleAdmin   = "admin"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Doctor struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Specialty   string    `json:"specialty"`
	Price       int       `json:"price"`
	Image       string    `json:"image"`
	StartHour   int       `json:"startHour"`
	EndHour     int       `json:"endHour"`
	Experience  int       `json:"experience"`
	Education   string    `json:"education,omitempty"`
	Description string    `json:"description,omitempty"`
	Rating      float64   `json:"rating"`
	Reviews     int       `json:"reviews"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Appointment statuses. New bookings start out confirmed.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// DoctorSummary is the slice of a doctor embedded in appointment responses.
type DoctorSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Image     string `json:"image"`
}

type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Appointment holds one booked slot. UserID is empty for anonymous
// bookings. Date is the opaque YYYY-MM-DD key and Time the HH:MM
// wall-clock label local to the doctor; neither carries a timezone.
type Appointment struct {
	ID           string         `json:"id"`
	DoctorID     string         `json:"doctorId"`
	UserID       string         `json:"userId,omitempty"`
	PatientName  string         `json:"patientName"`
	PatientEmail string         `json:"patientEmail,omitempty"`
	PatientPhone string         `json:"patientPhone,omitempty"`
	Date         string         `json:"date"`
	Time         string         `json:"time"`
	Status       string         `json:"status"`
	Notes        string         `json:"notes,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	Doctor       *DoctorSummary `json:"doctor,omitempty"`
	User         *UserSummary   `json:"user,omitempty"`
}
