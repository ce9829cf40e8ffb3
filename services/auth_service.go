package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mohammedmirzada/order-tracking/entity"
	"github.com/mohammedmirzada/order-tracking/pkg/apperr"
	"github.com/mohammedmirzada/order-tracking/pkg/validation"
	"github.com/mohammedmirzada/order-tracking/repository"
	"github.com/mohammedmirzada/order-tracking/utils"
)

const invalidCredentials = "Invalid credentials"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	v := validation.New()
	v.Email("email", r.Email)
	v.Required("password", r.Password)
	return v.Err()
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

// AuthService handles login/register and resolves the caller's profile.
type AuthService struct {
	users     *UserService
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(users *UserService, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*entity.User, error) {
	return s.users.Create(ctx, req)
}

// Login checks the password and issues a signed token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Unauthorized(invalidCredentials)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthorized(invalidCredentials)
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("sign token: %w", err))
	}
	return &LoginResponse{AccessToken: token}, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*entity.User, error) {
	return s.users.Profile(ctx, userID)
}
