// Package store provides the in-memory user store. The process owns a
// single handle created in main and passed by reference to every component
// that needs it; nothing in here is reachable through package globals.
//
// The backing sequence lives only in memory and is lost on restart. The
// mutex below exists for memory safety, not isolation: a read followed by
// an update can still lose a concurrent write, which is an accepted
// limitation of this mock database.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/stoune2024/go-user-api/internal/user"
)

// UserStore holds the shared mutable sequence of user records.
type UserStore struct {
	mu      sync.RWMutex
	users   []user.User
	latency time.Duration
}

// ErrUserNotFound is returned by lookups that match no record.
var ErrUserNotFound = errors.New("user not found", errors.CategoryNotFound).
	WithTextCode("IDENTITY_NOT_FOUND").
	WithCode(errors.CodeNotFound)

// ErrDuplicateUser is returned when a create collides on id or username.
var ErrDuplicateUser = errors.New("user with this id or username already exists", errors.CategoryConflict).
	WithTextCode("USER_EXISTS").
	WithCode(errors.CodeConflict)

// Option configures a UserStore.
type Option func(*UserStore)

// WithLatency injects a fixed per-operation delay to emulate the round
// trip of a network-backed store. Zero disables the hook; production
// wiring leaves it off.
func WithLatency(d time.Duration) Option {
	return func(s *UserStore) {
		s.latency = d
	}
}

// NewUserStore returns an empty store handle.
func NewUserStore(opts ...Option) *UserStore {
	s := &UserStore{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// suspend emulates I/O latency while honoring context cancellation. Every
// operation calls it so a real network-backed implementation can be
// substituted without changing call sites.
func (s *UserStore) suspend(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "store operation canceled")
	}
	if s.latency <= 0 {
		return nil
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), errors.CategoryInternal, "store operation canceled")
	case <-t.C:
		return nil
	}
}

// Create appends the record to the sequence. Uniqueness of both id and
// username is enforced; collisions fail with ErrDuplicateUser.
func (s *UserStore) Create(ctx context.Context, u user.User) error {
	if err := s.suspend(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == u.ID || s.users[i].Username == u.Username {
			return ErrDuplicateUser.Clone().WithMetadata(map[string]any{
				"id":       u.ID,
				"username": u.Username,
			})
		}
	}

	s.users = append(s.users, u)
	return nil
}

// ByID returns a copy of the first record with a matching id.
func (s *UserStore) ByID(ctx context.Context, id int) (user.User, error) {
	if err := s.suspend(ctx); err != nil {
		return user.User{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.users {
		if s.users[i].ID == id {
			return s.users[i], nil
		}
	}
	return user.User{}, ErrUserNotFound
}

// ByUsername returns a copy of the first record with a matching username.
func (s *UserStore) ByUsername(ctx context.Context, username string) (user.User, error) {
	if err := s.suspend(ctx); err != nil {
		return user.User{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.users {
		if s.users[i].Username == username {
			return s.users[i], nil
		}
	}
	return user.User{}, ErrUserNotFound
}

// List returns records in insertion order. With both bounds nil the full
// sequence is returned; otherwise the 1-indexed inclusive-exclusive slice
// [start-1, end). The asymmetric indexing is part of the store contract
// and must stay as is. Bounds are clamped, never an error.
func (s *UserStore) List(ctx context.Context, start, end *int) ([]user.User, error) {
	if err := s.suspend(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	lo, hi := 0, len(s.users)
	if start != nil || end != nil {
		if start != nil {
			lo = *start - 1
		}
		if end != nil {
			hi = *end
		}
		if lo < 0 {
			lo = 0
		}
		if hi > len(s.users) {
			hi = len(s.users)
		}
		if lo > hi {
			lo = hi
		}
	}

	out := make([]user.User, hi-lo)
	copy(out, s.users[lo:hi])
	return out, nil
}

// Update applies mutate to the first record with a matching id under the
// store lock and returns the resulting copy.
func (s *UserStore) Update(ctx context.Context, id int, mutate func(*user.User)) (user.User, error) {
	if err := s.suspend(ctx); err != nil {
		return user.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			mutate(&s.users[i])
			return s.users[i], nil
		}
	}
	return user.User{}, ErrUserNotFound
}

// Delete removes the first record with a matching id. Deleting an absent
// id is a no-op reported as success.
func (s *UserStore) Delete(ctx context.Context, id int) error {
	if err := s.suspend(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return nil
}

// Len reports the number of stored records.
func (s *UserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
