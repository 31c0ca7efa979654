package user

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	userRepo "github.com/Waleed-420/E-Clinical/database/repository/user"
	"github.com/Waleed-420/E-Clinical/models"
	"github.com/Waleed-420/E-Clinical/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9.+_-]+@[a-zA-Z0-9._-]+\.[a-zA-Z]{2,}$`)

const passwordMinLength = 6

// SignupRequest is the registration payload.
type SignupRequest struct {
	Name            string `json:"name"`
	DOB             string `json:"dob"`
	Email           string `json:"email"`
	Gender          string `json:"gender"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
}

// AuthService handles registration and sign-in.
type AuthService interface {
	Register(ctx context.Context, req SignupRequest) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, string, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// DefaultAuthService implements AuthService with bcrypt hashing and JWT
// session tokens.
type DefaultAuthService struct {
	Repo     userRepo.UserRepository
	TokenTTL time.Duration
}

func (s *DefaultAuthService) Register(ctx context.Context, req SignupRequest) (*models.User, error) {
	if req.Name == "" || req.DOB == "" || req.Email == "" || req.Gender == "" ||
		req.Password == "" || req.ConfirmPassword == "" || req.Role == "" {
		return nil, utils.InvalidInput("name, dob, email, gender, password, confirmPassword and role are required")
	}
	if !emailRegex.MatchString(req.Email) {
		return nil, utils.InvalidInput("invalid email format. Please use a valid email address")
	}
	if len(req.Password) < passwordMinLength {
		return nil, utils.InvalidInput("password must be at least %d characters", passwordMinLength)
	}
	if req.Password != req.ConfirmPassword {
		return nil, utils.InvalidInput("passwords do not match")
	}
	dob, err := utils.ParseDate(req.DOB)
	if err != nil {
		return nil, utils.InvalidInput("invalid date format. Please use YYYY-MM-DD")
	}
	if dob.After(time.Now()) {
		return nil, utils.InvalidInput("date of birth cannot be in the future")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.StoreFailure(err)
	}

	u := &models.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		DOB:          req.DOB,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Gender:       req.Gender,
		Role:         req.Role,
		PasswordHash: string(hash),
		Verified:     false,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			return nil, utils.Conflict("email already registered. Please use a different email or login")
		}
		return nil, utils.StoreFailure(err)
	}
	return u, nil
}

// Authenticate verifies credentials and returns the user plus a signed
// session token. Bad email and bad password are indistinguishable to the
// caller.
func (s *DefaultAuthService) Authenticate(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", utils.InvalidInput("email and password required")
	}
	u, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", utils.StoreFailure(err)
	}
	if u == nil {
		return nil, "", utils.NotFound("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", utils.NotFound("invalid email or password")
	}

	ttl := s.TokenTTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	token, err := utils.GenerateToken(u.ID, u.Role, ttl)
	if err != nil {
		return nil, "", utils.StoreFailure(err)
	}
	return u, token, nil
}

func (s *DefaultAuthService) EmailExists(ctx context.Context, email string) (bool, error) {
	if email == "" || !emailRegex.MatchString(email) {
		return false, utils.InvalidInput("invalid email format")
	}
	u, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return false, utils.StoreFailure(err)
	}
	return u != nil, nil
}
