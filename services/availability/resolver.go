package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	appointmentRepo "github.com/Waleed-420/E-Clinical/database/repository/appointment"
	doctorRepo "github.com/Waleed-420/E-Clinical/database/repository/doctor"
	"github.com/Waleed-420/E-Clinical/models"
	"github.com/Waleed-420/E-Clinical/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const cacheTTL = 30 * time.Second

// Service resolves a doctor's bookable slots for a date: the weekly grid
// minus slots held by booked or confirmed appointments. Conflicts are
// tracked per doctor per date.
type Service struct {
	Doctors      doctorRepo.DoctorRepository
	Appointments appointmentRepo.AppointmentRepository
	Cache        *redis.Client // optional, short-TTL response cache
	Logger       *zap.Logger
}

// Resolve computes the availability for (doctorID, date).
func (s *Service) Resolve(ctx context.Context, doctorID, date string) (*models.DayAvailability, error) {
	if doctorID == "" {
		return nil, utils.InvalidInput("doctor id is required")
	}
	if date == "" {
		return nil, utils.InvalidInput("date is required")
	}
	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, utils.InvalidInput("date must be a valid YYYY-MM-DD calendar date")
	}
	// Stored appointments and cache keys carry the canonical zero-padded
	// form; a query for "2025-1-15" must hit the same data as "2025-01-15".
	date = day.Format("2006-01-02")

	if cached := s.cacheGet(ctx, doctorID, date); cached != nil {
		return cached, nil
	}

	doctor, err := s.Doctors.GetByID(ctx, doctorID)
	if err != nil {
		return nil, utils.StoreFailure(err)
	}
	if doctor == nil {
		return nil, utils.NotFound("doctor %s not found", doctorID)
	}
	if len(doctor.Schedule) == 0 {
		return nil, utils.NotFound("doctor %s has no schedule", doctorID)
	}

	intervals := doctor.Schedule[strconv.Itoa(utils.ISOWeekday(day))]

	booked, err := s.Appointments.ActiveByDoctorDate(ctx, doctorID, date)
	if err != nil {
		return nil, utils.StoreFailure(err)
	}
	taken := make(map[string]struct{}, len(booked))
	for _, a := range booked {
		taken[a.Time] = struct{}{}
	}

	groups := BuildGrid(intervals, GridStepMinutes)
	for i := range groups {
		free := groups[i].Slots[:0]
		for _, t := range groups[i].Slots {
			if _, held := taken[t]; !held {
				free = append(free, t)
			}
		}
		groups[i].Slots = free
	}

	result := &models.DayAvailability{
		DoctorID:  doctorID,
		Date:      date,
		Slots:     Flatten(groups),
		Intervals: groups,
	}
	s.cacheSet(ctx, doctorID, date, result)
	return result, nil
}

// Invalidate drops the cached availability for (doctorID, date). Called
// after any write that changes which slots are taken.
func (s *Service) Invalidate(ctx context.Context, doctorID, date string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, cacheKey(doctorID, date)).Err(); err != nil {
		s.Logger.Warn("availability cache invalidation failed",
			zap.String("doctorId", doctorID), zap.String("date", date), zap.Error(err))
	}
}

// InvalidateDoctor drops every cached availability entry for a doctor.
// Schedule replacement affects all dates at once, so the per-date
// Invalidate is not enough there.
func (s *Service) InvalidateDoctor(ctx context.Context, doctorID string) {
	if s.Cache == nil {
		return
	}
	iter := s.Cache.Scan(ctx, 0, fmt.Sprintf("availability:%s:*", doctorID), 0).Iterator()
	for iter.Next(ctx) {
		if err := s.Cache.Del(ctx, iter.Val()).Err(); err != nil {
			s.Logger.Warn("availability cache invalidation failed",
				zap.String("doctorId", doctorID), zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		s.Logger.Warn("availability cache scan failed",
			zap.String("doctorId", doctorID), zap.Error(err))
	}
}

func (s *Service) cacheGet(ctx context.Context, doctorID, date string) *models.DayAvailability {
	if s.Cache == nil {
		return nil
	}
	raw, err := s.Cache.Get(ctx, cacheKey(doctorID, date)).Result()
	if err != nil {
		return nil
	}
	var out models.DayAvailability
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return &out
}

func (s *Service) cacheSet(ctx context.Context, doctorID, date string, v *models.DayAvailability) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, cacheKey(doctorID, date), raw, cacheTTL).Err(); err != nil {
		s.Logger.Warn("availability cache write failed",
			zap.String("doctorId", doctorID), zap.Error(err))
	}
}

func cacheKey(doctorID, date string) string {
	return fmt.Sprintf("availability:%s:%s", doctorID, date)
}
