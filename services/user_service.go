package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mohammedmirzada/order-tracking/entity"
	"github.com/mohammedmirzada/order-tracking/pkg/apperr"
	"github.com/mohammedmirzada/order-tracking/pkg/validation"
	"github.com/mohammedmirzada/order-tracking/repository"
)

const minPasswordLength = 6

type RegisterRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     *string `json:"name"`
}

func (r *RegisterRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	v := validation.New()
	v.Email("email", r.Email)
	v.MinLength("password", r.Password, minPasswordLength)
	return v.Err()
}

type UserService struct {
	Repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{Repo: repo}
}

// Create registers a user with a bcrypt hash of the password.
func (s *UserService) Create(ctx context.Context, req RegisterRequest) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	count, err := s.Repo.CountByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if count > 0 {
		return nil, apperr.Conflict("Email already exists", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("hash password: %w", err))
	}

	user := &entity.User{Email: email, Password: string(hashed)}
	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}

	if err := s.Repo.Create(ctx, user); err != nil {
		// lost a race with a concurrent register
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("Email already exists", err)
		}
		return nil, apperr.Internal(err)
	}
	return user, nil
}

// FindByEmail returns repository.ErrNotFound for unknown addresses.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return s.Repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *UserService) Profile(ctx context.Context, id string) (*entity.User, error) {
	user, err := s.Repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return user, nil
}
