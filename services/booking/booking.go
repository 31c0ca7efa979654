package booking

import (
	"context"
	"errors"
	"regexp"
	"time"

	appointmentRepo "github.com/Waleed-420/E-Clinical/database/repository/appointment"
	doctorRepo "github.com/Waleed-420/E-Clinical/database/repository/doctor"
	"github.com/Waleed-420/E-Clinical/models"
	"github.com/Waleed-420/E-Clinical/services/availability"
	"github.com/Waleed-420/E-Clinical/services/chat"
	"github.com/Waleed-420/E-Clinical/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var idShape = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// DefaultBookingService implements BookingService. The slot-uniqueness
// invariant is owned by the appointment store's unique index, not by the
// pre-insert existence check, which only exists for a fast user-facing
// error.
type DefaultBookingService struct {
	Doctors      doctorRepo.DoctorRepository
	Appointments appointmentRepo.AppointmentRepository
	Chat         chat.ThreadService
	Availability *availability.Service
	Logger       *zap.Logger
}

// Book validates the request, commits the appointment with at-most-one-
// winner semantics per (doctor, date, time), credits the doctor's balance
// and initializes the doctor-patient chat thread.
func (s *DefaultBookingService) Book(ctx context.Context, req BookingRequest) (*models.Appointment, error) {
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	doctor, err := s.Doctors.GetByID(ctx, req.DoctorID)
	if err != nil {
		return nil, utils.StoreFailure(err)
	}
	if doctor == nil {
		return nil, utils.NotFound("doctor %s not found", req.DoctorID)
	}

	// Fast path only: the unique index decides the race at insert time.
	taken, err := s.Appointments.ExistsActive(ctx, req.DoctorID, req.Date, req.Time)
	if err != nil {
		return nil, utils.StoreFailure(err)
	}
	if taken {
		return nil, utils.Conflict("slot %s on %s is already booked", req.Time, req.Date)
	}

	appt := &models.Appointment{
		ID:           uuid.New().String(),
		DoctorID:     req.DoctorID,
		PatientID:    req.PatientID,
		Date:         req.Date,
		Time:         req.Time,
		Status:       models.StatusBooked,
		ReminderSent: false,
		Fee:          doctor.Fee, // snapshot: later fee changes never touch past bookings
		Channel:      models.ChannelID(req.DoctorID, req.PatientID),
		PaymentRef:   req.PaymentRef,
		CreatedAt:    time.Now(),
	}

	if err := s.Appointments.Insert(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			return nil, utils.Conflict("slot %s on %s is already booked", req.Time, req.Date)
		}
		return nil, utils.StoreFailure(err)
	}

	// The booking is committed; the side effects below are best-effort
	// and must not roll it back.
	if err := s.Doctors.IncrementBalance(ctx, req.DoctorID, doctor.Fee); err != nil {
		s.Logger.Error("balance increment failed after booking",
			zap.String("appointmentId", appt.ID), zap.String("doctorId", req.DoctorID), zap.Error(err))
	}
	if _, err := s.Chat.EnsureThread(ctx, req.DoctorID, req.PatientID); err != nil {
		s.Logger.Error("chat thread init failed after booking",
			zap.String("appointmentId", appt.ID), zap.String("channel", appt.Channel), zap.Error(err))
	}
	if s.Availability != nil {
		s.Availability.Invalidate(ctx, req.DoctorID, req.Date)
	}

	s.Logger.Info("appointment booked",
		zap.String("appointmentId", appt.ID),
		zap.String("doctorId", appt.DoctorID),
		zap.String("date", appt.Date),
		zap.String("time", appt.Time))
	return appt, nil
}

// UpdateStatus applies a confirmed/cancelled/completed transition.
// Cancelling or completing drops the appointment out of the active status
// class, which frees its slot.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, appointmentID, status string) (*models.Appointment, error) {
	switch status {
	case models.StatusConfirmed, models.StatusCancelled, models.StatusCompleted:
	default:
		return nil, utils.InvalidInput("status must be one of confirmed, cancelled, completed")
	}

	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, utils.StoreFailure(err)
	}
	if appt == nil {
		return nil, utils.NotFound("appointment %s not found", appointmentID)
	}

	if err := s.Appointments.UpdateStatus(ctx, appointmentID, status); err != nil {
		return nil, utils.StoreFailure(err)
	}
	appt.Status = status
	appt.Active = appt.IsActive()

	if s.Availability != nil {
		s.Availability.Invalidate(ctx, appt.DoctorID, appt.Date)
	}
	return appt, nil
}

func (s *DefaultBookingService) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	if patientID == "" {
		return nil, utils.InvalidInput("patient id is required")
	}
	appts, err := s.Appointments.ByPatient(ctx, patientID)
	if err != nil {
		return nil, utils.StoreFailure(err)
	}
	return appts, nil
}

func (s *DefaultBookingService) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	if doctorID == "" {
		return nil, utils.InvalidInput("doctor id is required")
	}
	appts, err := s.Appointments.ByDoctor(ctx, doctorID)
	if err != nil {
		return nil, utils.StoreFailure(err)
	}
	return appts, nil
}

// validateRequest checks the payload and rewrites Date and Time to their
// canonical zero-padded forms. The slot index, the existence check and the
// resolver's taken-set all compare raw strings, so "9:30" must never be
// stored next to "09:30".
func validateRequest(req *BookingRequest) error {
	if req.PatientID == "" || req.DoctorID == "" || req.Date == "" || req.Time == "" {
		return utils.InvalidInput("patientId, doctorId, date and time are required")
	}
	if !idShape.MatchString(req.DoctorID) {
		return utils.InvalidInput("doctor id has an invalid format")
	}
	day, err := utils.ParseDate(req.Date)
	if err != nil {
		return utils.InvalidInput("date must be a valid YYYY-MM-DD calendar date")
	}
	req.Date = day.Format("2006-01-02")
	minutes, err := utils.ParseClock(req.Time)
	if err != nil {
		return utils.InvalidInput("time must be a valid HH:MM value")
	}
	if minutes%availability.GridStepMinutes != 0 {
		return utils.InvalidInput("time must align to the %d-minute grid", availability.GridStepMinutes)
	}
	req.Time = utils.FormatClock(minutes)
	return nil
}
