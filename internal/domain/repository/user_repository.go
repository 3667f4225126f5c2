package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/jioni/internal/domain/entity"
)

var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrUserNotFound   = errors.New("user not found")
)

// UserRepository stores registered users keyed by email.
type UserRepository interface {
	// Create persists a new user and fails with ErrDuplicateEmail if
	// the email is already taken.
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Count returns the number of registered users.
	Count(ctx context.Context) (int64, error)
}
