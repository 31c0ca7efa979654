package booking

import (
	"context"
	"sync"
	"testing"

	appointmentRepo "github.com/Waleed-420/E-Clinical/database/repository/appointment"
	"github.com/Waleed-420/E-Clinical/models"
	"github.com/Waleed-420/E-Clinical/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memDoctorRepo struct {
	mu      sync.Mutex
	doctors map[string]*models.Doctor
}

func newMemDoctorRepo(docs ...*models.Doctor) *memDoctorRepo {
	r := &memDoctorRepo{doctors: map[string]*models.Doctor{}}
	for _, d := range docs {
		r.doctors[d.ID] = d
	}
	return r
}

func (r *memDoctorRepo) Create(ctx context.Context, d *models.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doctors[d.ID] = d
	return nil
}

func (r *memDoctorRepo) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.doctors[id], nil
}

func (r *memDoctorRepo) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	return nil, nil
}

func (r *memDoctorRepo) UpdateSchedule(ctx context.Context, id string, schedule map[string][]models.ScheduleInterval) error {
	return nil
}

func (r *memDoctorRepo) IncrementBalance(ctx context.Context, id string, amount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doctors[id].Balance += amount
	return nil
}

func (r *memDoctorRepo) UpdateFCMToken(ctx context.Context, id, token string) error { return nil }
func (r *memDoctorRepo) EnsureIndexes() error                                       { return nil }

// memAppointmentRepo emulates the store's atomic check-and-insert: the
// uniqueness decision and the write happen under one lock, exactly as the
// partial unique index behaves in Mongo.
type memAppointmentRepo struct {
	mu    sync.Mutex
	appts map[string]*models.Appointment // by id
	slots map[string]string              // doctorId|date|time -> appointment id, active only
}

func newMemAppointmentRepo() *memAppointmentRepo {
	return &memAppointmentRepo{
		appts: map[string]*models.Appointment{},
		slots: map[string]string{},
	}
}

func slotKey(doctorID, date, timeOfDay string) string {
	return doctorID + "|" + date + "|" + timeOfDay
}

func (r *memAppointmentRepo) Insert(ctx context.Context, a *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := slotKey(a.DoctorID, a.Date, a.Time)
	if _, held := r.slots[key]; held {
		return appointmentRepo.ErrSlotTaken
	}
	cp := *a
	cp.Active = cp.IsActive()
	r.appts[cp.ID] = &cp
	if cp.Active {
		r.slots[key] = cp.ID
	}
	return nil
}

func (r *memAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.appts[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *memAppointmentRepo) ActiveByDoctorDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appts {
		if a.DoctorID == doctorID && a.Date == date && a.IsActive() {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memAppointmentRepo) ExistsActive(ctx context.Context, doctorID, date, timeOfDay string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, held := r.slots[slotKey(doctorID, date, timeOfDay)]
	return held, nil
}

func (r *memAppointmentRepo) ByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appts {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memAppointmentRepo) ByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appts {
		if a.DoctorID == doctorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memAppointmentRepo) UpdateStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.appts[id]
	a.Status = status
	wasActive := a.Active
	a.Active = a.IsActive()
	if wasActive && !a.Active {
		delete(r.slots, slotKey(a.DoctorID, a.Date, a.Time))
	}
	return nil
}

func (r *memAppointmentRepo) PendingReminders(ctx context.Context, date string) ([]models.Appointment, error) {
	return nil, nil
}

func (r *memAppointmentRepo) MarkReminderSent(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func (r *memAppointmentRepo) EnsureIndexes() error { return nil }

// memThreadService records EnsureThread calls and deduplicates by channel.
type memThreadService struct {
	mu      sync.Mutex
	threads map[string]int // channel -> ensure count
}

func newMemThreadService() *memThreadService {
	return &memThreadService{threads: map[string]int{}}
}

func (s *memThreadService) EnsureThread(ctx context.Context, doctorID, patientID string) (*models.ChatThread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	channel := models.ChannelID(doctorID, patientID)
	s.threads[channel]++
	return &models.ChatThread{Channel: channel, DoctorID: doctorID, PatientID: patientID}, nil
}

func (s *memThreadService) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.threads)
}

func newTestBookingService() (*DefaultBookingService, *memDoctorRepo, *memAppointmentRepo, *memThreadService) {
	doctors := newMemDoctorRepo(&models.Doctor{ID: "doc-1", Name: "Dr. Ahmed", Fee: 2000})
	appts := newMemAppointmentRepo()
	threads := newMemThreadService()
	svc := &DefaultBookingService{
		Doctors:      doctors,
		Appointments: appts,
		Chat:         threads,
		Logger:       zap.NewNop(),
	}
	return svc, doctors, appts, threads
}

func validRequest() BookingRequest {
	return BookingRequest{
		PatientID: "pat-1",
		DoctorID:  "doc-1",
		Date:      "2025-01-15",
		Time:      "09:30",
	}
}

func TestBook(t *testing.T) {
	t.Run("Successful Booking", func(t *testing.T) {
		svc, doctors, _, threads := newTestBookingService()

		appt, err := svc.Book(context.Background(), validRequest())
		require.NoError(t, err)

		assert.NotEmpty(t, appt.ID)
		assert.Equal(t, models.StatusBooked, appt.Status)
		assert.False(t, appt.ReminderSent)
		assert.Equal(t, 2000.0, appt.Fee, "fee is snapshotted from the doctor")
		assert.Equal(t, "doc-1pat-1", appt.Channel)

		doc, _ := doctors.GetByID(context.Background(), "doc-1")
		assert.Equal(t, 2000.0, doc.Balance, "balance credited by the fee")
		assert.Equal(t, 1, threads.count(), "chat thread initialized")
	})

	t.Run("Fee Snapshot Survives Fee Change", func(t *testing.T) {
		svc, doctors, appts, _ := newTestBookingService()

		appt, err := svc.Book(context.Background(), validRequest())
		require.NoError(t, err)

		doctors.doctors["doc-1"].Fee = 9999

		stored, err := appts.GetByID(context.Background(), appt.ID)
		require.NoError(t, err)
		assert.Equal(t, 2000.0, stored.Fee)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		svc, _, _, _ := newTestBookingService()

		for name, mutate := range map[string]func(*BookingRequest){
			"patient": func(r *BookingRequest) { r.PatientID = "" },
			"doctor":  func(r *BookingRequest) { r.DoctorID = "" },
			"date":    func(r *BookingRequest) { r.Date = "" },
			"time":    func(r *BookingRequest) { r.Time = "" },
		} {
			req := validRequest()
			mutate(&req)
			_, err := svc.Book(context.Background(), req)
			var appErr *utils.AppError
			require.ErrorAs(t, err, &appErr, "missing %s must be rejected", name)
			assert.Equal(t, utils.CodeInvalidInput, appErr.Code)
		}
	})

	t.Run("Malformed Date", func(t *testing.T) {
		svc, _, _, _ := newTestBookingService()

		req := validRequest()
		req.Date = "15-01-2025"
		_, err := svc.Book(context.Background(), req)
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, utils.CodeInvalidInput, appErr.Code)
	})

	t.Run("Off-Grid Time", func(t *testing.T) {
		svc, _, _, _ := newTestBookingService()

		req := validRequest()
		req.Time = "09:45"
		_, err := svc.Book(context.Background(), req)
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, utils.CodeInvalidInput, appErr.Code)
	})

	t.Run("Unknown Doctor", func(t *testing.T) {
		svc, _, _, _ := newTestBookingService()

		req := validRequest()
		req.DoctorID = "nobody"
		_, err := svc.Book(context.Background(), req)
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, utils.CodeNotFound, appErr.Code)
	})

	t.Run("Conflict On Taken Slot", func(t *testing.T) {
		svc, _, _, _ := newTestBookingService()

		_, err := svc.Book(context.Background(), validRequest())
		require.NoError(t, err)

		req := validRequest()
		req.PatientID = "pat-2"
		_, err = svc.Book(context.Background(), req)
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, utils.CodeConflict, appErr.Code)
	})

	t.Run("Non-Canonical Time Holds The Same Slot", func(t *testing.T) {
		svc, _, _, _ := newTestBookingService()

		req := validRequest()
		req.Time = "9:30"
		appt, err := svc.Book(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "09:30", appt.Time, "stored time is zero-padded")

		second := validRequest()
		second.PatientID = "pat-2"
		_, err = svc.Book(context.Background(), second)
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr, "\"9:30\" and \"09:30\" are one wall-clock slot")
		assert.Equal(t, utils.CodeConflict, appErr.Code)
	})

	t.Run("Non-Canonical Date Holds The Same Slot", func(t *testing.T) {
		svc, _, _, _ := newTestBookingService()

		req := validRequest()
		req.Date = "2025-1-15"
		appt, err := svc.Book(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "2025-01-15", appt.Date, "stored date is zero-padded")

		second := validRequest()
		second.PatientID = "pat-2"
		_, err = svc.Book(context.Background(), second)
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, utils.CodeConflict, appErr.Code)
	})

	t.Run("Same Time Different Date Allowed", func(t *testing.T) {
		svc, _, _, _ := newTestBookingService()

		_, err := svc.Book(context.Background(), validRequest())
		require.NoError(t, err)

		req := validRequest()
		req.Date = "2025-01-22"
		_, err = svc.Book(context.Background(), req)
		assert.NoError(t, err, "conflicts are per doctor per date")
	})

	t.Run("Chat Thread Init Is Idempotent", func(t *testing.T) {
		svc, _, _, threads := newTestBookingService()

		_, err := svc.Book(context.Background(), validRequest())
		require.NoError(t, err)

		req := validRequest()
		req.Time = "10:00"
		_, err = svc.Book(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, 1, threads.count(), "two bookings for the same pair share one thread")
	})

	t.Run("Exactly One Winner Under Concurrency", func(t *testing.T) {
		svc, _, _, _ := newTestBookingService()

		const racers = 16
		results := make(chan error, racers)
		var start sync.WaitGroup
		start.Add(1)

		for i := 0; i < racers; i++ {
			go func(n int) {
				start.Wait()
				req := validRequest()
				req.PatientID = "pat-" + string(rune('a'+n))
				_, err := svc.Book(context.Background(), req)
				results <- err
			}(i)
		}
		start.Done()

		var wins, conflicts int
		for i := 0; i < racers; i++ {
			err := <-results
			if err == nil {
				wins++
				continue
			}
			var appErr *utils.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, utils.CodeConflict, appErr.Code)
			conflicts++
		}
		assert.Equal(t, 1, wins, "exactly one concurrent booking may win")
		assert.Equal(t, racers-1, conflicts)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("Cancel Frees The Slot", func(t *testing.T) {
		svc, _, _, _ := newTestBookingService()

		appt, err := svc.Book(context.Background(), validRequest())
		require.NoError(t, err)

		_, err = svc.UpdateStatus(context.Background(), appt.ID, models.StatusCancelled)
		require.NoError(t, err)

		req := validRequest()
		req.PatientID = "pat-2"
		_, err = svc.Book(context.Background(), req)
		assert.NoError(t, err, "cancelled appointment no longer holds the slot")
	})

	t.Run("Invalid Status Rejected", func(t *testing.T) {
		svc, _, _, _ := newTestBookingService()

		appt, err := svc.Book(context.Background(), validRequest())
		require.NoError(t, err)

		_, err = svc.UpdateStatus(context.Background(), appt.ID, "rescheduled")
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, utils.CodeInvalidInput, appErr.Code)
	})

	t.Run("Unknown Appointment", func(t *testing.T) {
		svc, _, _, _ := newTestBookingService()

		_, err := svc.UpdateStatus(context.Background(), "missing", models.StatusCancelled)
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, utils.CodeNotFound, appErr.Code)
	})
}
