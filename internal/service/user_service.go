package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/stemsi/portal-backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidRole is returned for roles outside student/teacher/admin.
var ErrInvalidRole = errors.New("invalid role")

// UserCreator persists new accounts.
type UserCreator interface {
	Create(ctx context.Context, u *model.User) error
}

// UserService provisions accounts. Used by the CLI tools.
type UserService struct {
	repo       UserCreator
	bcryptCost int
}

// NewUserService creates a new UserService.
func NewUserService(repo UserCreator, bcryptCost int) *UserService {
	return &UserService{repo: repo, bcryptCost: bcryptCost}
}

// Create hashes password and stores a new user.
func (s *UserService) Create(ctx context.Context, username, name string, role model.Role, password string) (*model.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		Username:     username,
		Name:         name,
		Role:         role,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
