package doctorRepo

import (
	"context"

	"github.com/Waleed-420/E-Clinical/models"
)

// DoctorRepository defines persistence operations for doctors.
// GetByID returns (nil, nil) when the doctor does not exist.
type DoctorRepository interface {
	Create(ctx context.Context, doc *models.Doctor) error
	GetByID(ctx context.Context, id string) (*models.Doctor, error)
	GetByEmail(ctx context.Context, email string) (*models.Doctor, error)
	UpdateSchedule(ctx context.Context, id string, schedule map[string][]models.ScheduleInterval) error
	IncrementBalance(ctx context.Context, id string, amount float64) error
	UpdateFCMToken(ctx context.Context, id, token string) error
	EnsureIndexes() error
}
