package userRepo

import (
	"context"

	"github.com/Waleed-420/E-Clinical/models"
)

// UserRepository defines persistence operations for platform accounts.
// GetByEmail and GetByID return (nil, nil) when no account exists.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateFCMToken(ctx context.Context, id, token string) error
	EnsureIndexes() error
}
