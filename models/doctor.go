package models

import "time"

// ScheduleInterval is one contiguous open-for-booking range on a weekday.
// Start and End are "HH:MM" wall-clock strings; End is exclusive.
type ScheduleInterval struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// Doctor represents a practicing doctor and owns the weekly schedule.
// Schedule is keyed by ISO weekday ("1" = Monday .. "7" = Sunday) and is
// replaced wholesale by the schedule-update endpoint.
type Doctor struct {
	ID        string                        `bson:"id" json:"id"`
	Name      string                        `bson:"name" json:"name"`
	Email     string                        `bson:"email" json:"email"`
	Specialty string                        `bson:"specialty" json:"specialty"`
	Fee       float64                       `bson:"fee" json:"fee"`                     // consultation fee per appointment
	Balance   float64                       `bson:"balance" json:"balance"`             // running earnings, $inc-only
	Schedule  map[string][]ScheduleInterval `bson:"schedule,omitempty" json:"schedule"` // ISO weekday -> intervals
	FCMToken  string                        `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt time.Time                     `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time                     `bson:"updated_at" json:"updated_at"`
}
