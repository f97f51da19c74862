package services

import (
	"context"
	"errors"
	"strings"

	"github.com/chatledger/backend/internal/auth"
	"github.com/chatledger/backend/internal/models"
	repo "github.com/chatledger/backend/internal/repository"
)

type UserService struct {
	users repo.Users
}

func NewUserService(users repo.Users) *UserService {
	return &UserService{users: users}
}

type CreateUserParams struct {
	Email    string
	Name     string
	Username string
	// Password is optional; when empty a temporary one is generated.
	Password      string
	EmailVerified bool
}

// Create registers a user. When no password is supplied a temporary one
// is generated with crypto/rand and returned so the boundary can report
// it to the operator; only the bcrypt hash is stored.
func (s *UserService) Create(ctx context.Context, p CreateUserParams) (models.User, string, error) {
	u := models.User{
		Email:         strings.TrimSpace(p.Email),
		Name:          strings.TrimSpace(p.Name),
		Username:      strings.TrimSpace(p.Username),
		EmailVerified: p.EmailVerified,
	}
	if err := u.Validate(); err != nil {
		return models.User{}, "", err
	}

	exists, err := s.users.ExistsByEmailOrUsername(ctx, u.Email, u.Username)
	if err != nil {
		return models.User{}, "", err
	}
	if exists {
		return models.User{}, "", ErrConflict
	}

	password := p.Password
	generated := ""
	if password == "" {
		password, err = auth.GenerateTemporaryPassword()
		if err != nil {
			return models.User{}, "", err
		}
		generated = password
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, "", err
	}
	u.PasswordHash = hash

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return models.User{}, "", err
	}
	return created, generated, nil
}

// Authenticate resolves a user by email and verifies the password.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	if err := auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return models.User{}, ErrUnauthorized
	}
	return user, nil
}
