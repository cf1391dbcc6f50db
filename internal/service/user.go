package service

import (
	"context"
	"fmt"

	"github.com/pkordes/guestdesk/internal/domain"
	"github.com/pkordes/guestdesk/internal/store"
)

// UserService exposes the seeded event team. Users are read-only.
type UserService struct {
	store *store.Store
}

// NewUserService constructs a UserService.
func NewUserService(st *store.Store) *UserService {
	return &UserService{store: st}
}

// List returns every user in seed order.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.store.Users(), nil
}

// GetByID returns a single user.
// Returns domain.ErrNotFound if no user with that ID exists.
func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	u, ok := s.store.UserByID(id)
	if !ok {
		return domain.User{}, fmt.Errorf("service.UserService.GetByID: %w", domain.ErrNotFound)
	}
	return u, nil
}
