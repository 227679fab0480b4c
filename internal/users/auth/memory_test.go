// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"strings"
	"sync"

	"github.com/taibuivan/ibis/internal/platform/apperr"
	"github.com/taibuivan/ibis/internal/platform/dberr"
	"github.com/taibuivan/ibis/internal/users/auth"
)

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]auth.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: make(map[string]auth.User)}
}

func (repository *memoryUsers) find(match func(auth.User) bool) (*auth.User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, user := range repository.users {
		if match(user) {
			return &user, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repository *memoryUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	return repository.find(func(user auth.User) bool { return user.ID == id })
}

func (repository *memoryUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	return repository.find(func(user auth.User) bool { return strings.EqualFold(user.Email, email) })
}

func (repository *memoryUsers) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	return repository.find(func(user auth.User) bool { return user.Username == username })
}

func (repository *memoryUsers) Create(_ context.Context, user *auth.User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.users[user.ID] = *user
	return nil
}

func (repository *memoryUsers) TouchLastLogin(context.Context, string) error { return nil }

type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]auth.Session
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: make(map[string]auth.Session)}
}

func (repository *memorySessions) Create(_ context.Context, session *auth.Session) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.sessions[session.TokenHash] = *session
	return nil
}

func (repository *memorySessions) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	session, ok := repository.sessions[tokenHash]
	if !ok {
		return nil, apperr.NotFound("Session")
	}
	return &session, nil
}

func (repository *memorySessions) Revoke(_ context.Context, session *auth.Session) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	delete(repository.sessions, session.TokenHash)
	return nil
}

func (repository *memorySessions) RevokeAll(_ context.Context, userID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for hash, session := range repository.sessions {
		if session.UserID == userID {
			delete(repository.sessions, hash)
		}
	}
	return nil
}

func (repository *memorySessions) count() int {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return len(repository.sessions)
}
