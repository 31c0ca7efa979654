package booking

import (
	"context"

	"github.com/Waleed-420/E-Clinical/models"
)

// BookingRequest is the inbound payload for booking an appointment.
type BookingRequest struct {
	PatientID  string `json:"patientId"`
	DoctorID   string `json:"doctorId"`
	Date       string `json:"date"` // "YYYY-MM-DD"
	Time       string `json:"time"` // "HH:MM", grid-aligned
	PaymentRef string `json:"payment,omitempty"`
}

// BookingService validates and commits appointment bookings and manages
// their status lifecycle.
type BookingService interface {
	Book(ctx context.Context, req BookingRequest) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, appointmentID, status string) (*models.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
}
