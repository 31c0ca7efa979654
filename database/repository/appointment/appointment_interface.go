package appointmentRepo

import (
	"context"

	"github.com/Waleed-420/E-Clinical/models"
)

// AppointmentRepository defines persistence operations for appointments.
//
// Insert must be atomic with respect to the slot-uniqueness invariant:
// two concurrent inserts for the same (doctorId, date, time) with an
// active status must never both succeed. The Mongo implementation backs
// this with a partial unique index and reports the loser as ErrSlotTaken.
type AppointmentRepository interface {
	Insert(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	ActiveByDoctorDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error)
	ExistsActive(ctx context.Context, doctorID, date, timeOfDay string) (bool, error)
	ByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	ByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, id, status string) error
	PendingReminders(ctx context.Context, date string) ([]models.Appointment, error)
	MarkReminderSent(ctx context.Context, id string) (bool, error)
	EnsureIndexes() error
}
