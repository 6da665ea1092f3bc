package testutil

import (
	"context"
	"time"

	"github.com/gymmawy/gymmawy/internal/domain/user"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
)

// InMemoryUserStore implements user.Repository for tests.
type InMemoryUserStore struct {
	*InMemoryStore[*user.User]
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{InMemoryStore: NewInMemoryStore[*user.User]()}
}

func copyUser(u *user.User) *user.User {
	if u == nil {
		return nil
	}
	copied := *u
	return &copied
}

func (s *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	if u == nil {
		return ierr.NewError("user cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, u.ID, copyUser(u))
}

func (s *InMemoryUserStore) Get(ctx context.Context, id string) (*user.User, error) {
	u, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewErrorf("user not found: %s", id).
			Mark(ierr.ErrNotFound)
	}
	return copyUser(u), nil
}

func (s *InMemoryUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	matches := s.InMemoryStore.All(func(u *user.User) bool {
		return u.Email == email
	})
	if len(matches) == 0 {
		return nil, ierr.NewErrorf("user not found: %s", email).
			Mark(ierr.ErrNotFound)
	}
	return copyUser(matches[0]), nil
}

func (s *InMemoryUserStore) Update(ctx context.Context, u *user.User) error {
	if u == nil {
		return ierr.NewError("user cannot be nil").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, u.ID, copyUser(u))
}

func (s *InMemoryUserStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryUserStore) List(ctx context.Context, limit, offset int) ([]*user.User, error) {
	users := s.InMemoryStore.All(nil)
	users = paginate(users, limit, offset)
	out := make([]*user.User, 0, len(users))
	for _, u := range users {
		out = append(out, copyUser(u))
	}
	return out, nil
}

func (s *InMemoryUserStore) Count(ctx context.Context) (int64, error) {
	return int64(len(s.InMemoryStore.All(nil))), nil
}

func (s *InMemoryUserStore) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	matches := s.InMemoryStore.All(func(u *user.User) bool {
		return !u.CreatedAt.Before(since)
	})
	return int64(len(matches)), nil
}
