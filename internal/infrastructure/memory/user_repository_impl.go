package memory

import (
	"context"
	"sync"

	"github.com/oksasatya/jioni/internal/domain/entity"
	"github.com/oksasatya/jioni/internal/domain/repository"
)

// UserRepository is the in-memory identity store, keyed by email.
// A single mutex guards the map so two registrations of one email
// cannot both succeed.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*entity.User)}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	cp := *u
	r.users[u.Email] = &cp
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
