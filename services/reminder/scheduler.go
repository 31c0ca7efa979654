package reminder

import (
	"context"
	"sync/atomic"
	"time"

	appointmentRepo "github.com/Waleed-420/E-Clinical/database/repository/appointment"
	"github.com/Waleed-420/E-Clinical/models"
	"github.com/Waleed-420/E-Clinical/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Dispatcher delivers a reminder for one appointment to both participants.
type Dispatcher interface {
	Dispatch(ctx context.Context, appt models.Appointment) error
}

// Scheduler is the recurring reminder task. Each tick it scans today's
// active appointments whose reminder has not been sent, dispatches for
// those starting within the configured window, then flips the
// reminderSent flag. The window (rather than an exact point) absorbs the
// tick's own jitter.
//
// A Scheduler is constructed explicitly and owns its lifecycle; ticks are
// single-flight, so a slow scan is skipped over rather than overlapped.
type Scheduler struct {
	Appointments appointmentRepo.AppointmentRepository
	Dispatcher   Dispatcher
	Location     *time.Location
	WindowLow    time.Duration // minutes-until-start lower bound, inclusive
	WindowHigh   time.Duration // minutes-until-start upper bound, inclusive
	Logger       *zap.Logger

	// Now is the clock; overridable in tests.
	Now func() time.Time

	cron    *cron.Cron
	ticking int32
}

// NewScheduler builds a Scheduler with the given reminder window in
// minutes before appointment start.
func NewScheduler(
	appts appointmentRepo.AppointmentRepository,
	dispatcher Dispatcher,
	loc *time.Location,
	windowLow, windowHigh int,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		Appointments: appts,
		Dispatcher:   dispatcher,
		Location:     loc,
		WindowLow:    time.Duration(windowLow) * time.Minute,
		WindowHigh:   time.Duration(windowHigh) * time.Minute,
		Logger:       logger,
		Now:          time.Now,
	}
}

// Start begins ticking once per minute. It is a no-op if already started.
func (s *Scheduler) Start() error {
	if s.cron != nil {
		return nil
	}
	s.cron = cron.New(cron.WithLocation(s.Location))
	if _, err := s.cron.AddFunc("* * * * *", s.Tick); err != nil {
		return err
	}
	s.cron.Start()
	s.Logger.Info("reminder scheduler started",
		zap.Duration("windowLow", s.WindowLow), zap.Duration("windowHigh", s.WindowHigh))
	return nil
}

// Stop halts the tick loop and waits for an in-flight tick to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.cron = nil
	s.Logger.Info("reminder scheduler stopped")
}

// Tick runs one reminder scan. Overlapping invocations are rejected: if a
// previous tick is still running, this one returns immediately.
func (s *Scheduler) Tick() {
	if !atomic.CompareAndSwapInt32(&s.ticking, 0, 1) {
		s.Logger.Warn("reminder tick skipped, previous tick still running")
		return
	}
	defer atomic.StoreInt32(&s.ticking, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	if err := s.run(ctx); err != nil {
		s.Logger.Error("reminder tick failed", zap.Error(err))
	}
}

func (s *Scheduler) run(ctx context.Context) error {
	now := s.Now().In(s.Location)
	today := now.Format("2006-01-02")

	pending, err := s.Appointments.PendingReminders(ctx, today)
	if err != nil {
		return err
	}

	for _, appt := range pending {
		startsIn, ok := s.untilStart(now, appt)
		if !ok || startsIn < s.WindowLow || startsIn > s.WindowHigh {
			continue
		}

		// Flag flip happens only after the dispatch attempt; a failed
		// dispatch leaves the flag false so the next tick retries.
		if err := s.Dispatcher.Dispatch(ctx, appt); err != nil {
			s.Logger.Error("reminder dispatch failed",
				zap.String("appointmentId", appt.ID), zap.Error(err))
			continue
		}

		flipped, err := s.Appointments.MarkReminderSent(ctx, appt.ID)
		if err != nil {
			s.Logger.Error("failed to mark reminder sent",
				zap.String("appointmentId", appt.ID), zap.Error(err))
			continue
		}
		if flipped {
			s.Logger.Info("reminder dispatched",
				zap.String("appointmentId", appt.ID),
				zap.String("time", appt.Time),
				zap.Duration("startsIn", startsIn))
		}
	}
	return nil
}

// untilStart computes how long until the appointment's slot begins.
func (s *Scheduler) untilStart(now time.Time, appt models.Appointment) (time.Duration, bool) {
	day, err := utils.ParseDate(appt.Date)
	if err != nil {
		return 0, false
	}
	minutes, err := utils.ParseClock(appt.Time)
	if err != nil {
		return 0, false
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, minutes, 0, 0, s.Location)
	return start.Sub(now), true
}
