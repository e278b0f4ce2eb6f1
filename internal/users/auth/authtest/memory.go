// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package authtest provides an in-memory [auth.UserRepository] for tests of
// packages that depend on accounts.
package authtest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/users/auth"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// Users is a map-backed account store honoring the username and email
// uniqueness constraints. Transact snapshots the store and restores it
// when the callback fails.
type Users struct {
	mu    sync.Mutex
	byID  map[string]auth.User
	clock time.Time
}

// NewUsers returns an empty store seeded with the given accounts.
func NewUsers(seed ...*auth.User) *Users {
	store := &Users{byID: map[string]auth.User{}, clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	for _, user := range seed {
		if user.CreatedAt.IsZero() {
			user.CreatedAt = store.tick()
			user.UpdatedAt = user.CreatedAt
		}
		store.byID[user.ID] = *user
	}
	return store
}

// tick returns a strictly increasing timestamp.
func (store *Users) tick() time.Time {
	store.clock = store.clock.Add(time.Second)
	return store.clock
}

// Len returns the number of stored accounts.
func (store *Users) Len() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.byID)
}

func (store *Users) find(match func(auth.User) bool) (*auth.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, user := range store.byID {
		if match(user) {
			found := user
			return &found, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (store *Users) FindByID(_ context.Context, id string) (*auth.User, error) {
	return store.find(func(user auth.User) bool { return user.ID == id })
}

func (store *Users) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	return store.find(func(user auth.User) bool { return user.Username == username })
}

func (store *Users) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	return store.find(func(user auth.User) bool { return user.Email == email })
}

func (store *Users) List(_ context.Context, filter auth.UserFilter, page pagination.Params) ([]*auth.User, int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	matches := make([]*auth.User, 0)
	for _, user := range store.byID {
		if strings.Contains(strings.ToLower(user.Username), strings.ToLower(filter.Search)) {
			found := user
			matches = append(matches, &found)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Username < matches[j].Username })

	total := len(matches)
	start := min(page.Offset(), total)
	end := min(start+page.Limit, total)
	return matches[start:end], total, nil
}

// conflict reports a uniqueness clash with any account other than self.
func (store *Users) conflict(user *auth.User) error {
	for id, existing := range store.byID {
		if id == user.ID {
			continue
		}
		if existing.Username == user.Username {
			return apperr.IdentityConflict("A user with that username already exists",
				apperr.FieldError{Field: auth.FieldUsername, Message: "This username is already taken"})
		}
		if existing.Email == user.Email {
			return apperr.IdentityConflict("A user with that email already exists",
				apperr.FieldError{Field: auth.FieldEmail, Message: "This email is already registered"})
		}
	}
	return nil
}

func (store *Users) Create(_ context.Context, user *auth.User) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := store.conflict(user); err != nil {
		return err
	}
	user.CreatedAt = store.tick()
	user.UpdatedAt = user.CreatedAt
	store.byID[user.ID] = *user
	return nil
}

func (store *Users) Update(_ context.Context, user *auth.User) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.byID[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	if err := store.conflict(user); err != nil {
		return err
	}
	user.UpdatedAt = store.tick()
	store.byID[user.ID] = *user
	return nil
}

func (store *Users) Delete(_ context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.byID[id]; !ok {
		return apperr.NotFound("User")
	}
	delete(store.byID, id)
	return nil
}

func (store *Users) Transact(context context.Context, fn func(repository auth.UserRepository) error) error {
	store.mu.Lock()
	snapshot := make(map[string]auth.User, len(store.byID))
	for id, user := range store.byID {
		snapshot[id] = user
	}
	store.mu.Unlock()

	if err := fn(store); err != nil {
		store.mu.Lock()
		store.byID = snapshot
		store.mu.Unlock()
		return err
	}
	return nil
}
