package user

import (
	"context"
	"sync"
	"testing"

	"github.com/Waleed-420/E-Clinical/config"
	userRepo "github.com/Waleed-420/E-Clinical/database/repository/user"
	"github.com/Waleed-420/E-Clinical/models"
	"github.com/Waleed-420/E-Clinical/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User // by lowercased email
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*models.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.users[u.Email]; taken {
		return userRepo.ErrEmailTaken
	}
	cp := *u
	r.users[u.Email] = &cp
	return nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) UpdateFCMToken(ctx context.Context, id, token string) error { return nil }
func (r *memUserRepo) EnsureIndexes() error                                       { return nil }

func validSignup() SignupRequest {
	return SignupRequest{
		Name:            "Sara Khan",
		DOB:             "1992-04-11",
		Email:           "sara@example.com",
		Gender:          "female",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		Role:            "patient",
	}
}

func TestRegister(t *testing.T) {
	t.Run("Successful Registration", func(t *testing.T) {
		svc := &DefaultAuthService{Repo: newMemUserRepo()}

		u, err := svc.Register(context.Background(), validSignup())
		require.NoError(t, err)

		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "sara@example.com", u.Email)
		assert.False(t, u.Verified)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")))
	})

	t.Run("Email Normalized To Lowercase", func(t *testing.T) {
		svc := &DefaultAuthService{Repo: newMemUserRepo()}

		req := validSignup()
		req.Email = "Sara@Example.COM"
		u, err := svc.Register(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "sara@example.com", u.Email)
	})

	t.Run("Validation Failures", func(t *testing.T) {
		svc := &DefaultAuthService{Repo: newMemUserRepo()}

		for name, mutate := range map[string]func(*SignupRequest){
			"missing name":      func(r *SignupRequest) { r.Name = "" },
			"missing dob":       func(r *SignupRequest) { r.DOB = "" },
			"missing role":      func(r *SignupRequest) { r.Role = "" },
			"bad email":         func(r *SignupRequest) { r.Email = "not-an-email" },
			"short password":    func(r *SignupRequest) { r.Password = "abc"; r.ConfirmPassword = "abc" },
			"password mismatch": func(r *SignupRequest) { r.ConfirmPassword = "different1" },
			"bad dob format":    func(r *SignupRequest) { r.DOB = "11/04/1992" },
			"future dob":        func(r *SignupRequest) { r.DOB = "2999-01-01" },
		} {
			req := validSignup()
			mutate(&req)
			_, err := svc.Register(context.Background(), req)
			var appErr *utils.AppError
			require.ErrorAs(t, err, &appErr, "%s must be rejected", name)
			assert.Equal(t, utils.CodeInvalidInput, appErr.Code, name)
		}
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		svc := &DefaultAuthService{Repo: newMemUserRepo()}

		_, err := svc.Register(context.Background(), validSignup())
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), validSignup())
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, utils.CodeConflict, appErr.Code)
	})
}

func TestAuthenticate(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	register := func(t *testing.T) *DefaultAuthService {
		svc := &DefaultAuthService{Repo: newMemUserRepo()}
		_, err := svc.Register(context.Background(), validSignup())
		require.NoError(t, err)
		return svc
	}

	t.Run("Valid Credentials", func(t *testing.T) {
		svc := register(t)

		u, token, err := svc.Authenticate(context.Background(), "sara@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "sara@example.com", u.Email)

		sub, err := utils.ExtractIDFromToken(token)
		require.NoError(t, err)
		assert.Equal(t, u.ID, sub)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		svc := register(t)

		_, _, err := svc.Authenticate(context.Background(), "nobody@example.com", "secret123")
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, utils.CodeNotFound, appErr.Code)
	})

	t.Run("Wrong Password Same Error As Unknown Email", func(t *testing.T) {
		svc := register(t)

		_, _, wrongPass := svc.Authenticate(context.Background(), "sara@example.com", "wrong-pass")
		_, _, wrongMail := svc.Authenticate(context.Background(), "nobody@example.com", "secret123")

		var passErr, mailErr *utils.AppError
		require.ErrorAs(t, wrongPass, &passErr)
		require.ErrorAs(t, wrongMail, &mailErr)
		assert.Equal(t, passErr.Code, mailErr.Code)
		assert.Equal(t, passErr.Message, mailErr.Message)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		svc := register(t)

		_, _, err := svc.Authenticate(context.Background(), "", "secret123")
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, utils.CodeInvalidInput, appErr.Code)
	})
}

func TestEmailExists(t *testing.T) {
	svc := &DefaultAuthService{Repo: newMemUserRepo()}
	_, err := svc.Register(context.Background(), validSignup())
	require.NoError(t, err)

	exists, err := svc.EmailExists(context.Background(), "sara@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.EmailExists(context.Background(), "other@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.EmailExists(context.Background(), "not-an-email")
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, utils.CodeInvalidInput, appErr.Code)
}
