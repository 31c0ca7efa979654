package models

import "time"

// Appointment statuses. Booked and Confirmed count against availability;
// Cancelled and Completed free the slot.
const (
	StatusBooked    = "booked"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// ActiveStatuses are the statuses that occupy a slot.
var ActiveStatuses = []string{StatusBooked, StatusConfirmed}

// Appointment represents one booked consultation.
type Appointment struct {
	ID           string    `bson:"id" json:"id"`
	DoctorID     string    `bson:"doctorId" json:"doctorId"`
	PatientID    string    `bson:"patientId" json:"patientId"`
	Date         string    `bson:"date" json:"date"` // "YYYY-MM-DD", caller-local
	Time         string    `bson:"time" json:"time"` // "HH:MM", grid-aligned slot start
	Status       string    `bson:"status" json:"status"`
	Active       bool      `bson:"active" json:"-"` // status-class flag backing the uniqueness index
	ReminderSent bool      `bson:"reminderSent" json:"reminderSent"`
	Fee          float64   `bson:"fee" json:"fee"`         // doctor's fee snapshotted at booking time
	Channel      string    `bson:"channel" json:"channel"` // doctorId+patientId, chat/call association
	PaymentRef   string    `bson:"paymentRef,omitempty" json:"paymentRef,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// IsActive reports whether the appointment currently occupies its slot.
func (a *Appointment) IsActive() bool {
	return a.Status == StatusBooked || a.Status == StatusConfirmed
}

// ChannelID derives the chat/call channel shared by a doctor and a patient.
func ChannelID(doctorID, patientID string) string {
	return doctorID + patientID
}
