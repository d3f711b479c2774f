package main

import (
	"context"
	"crypto/subtle"
	"sync"

	"go.uber.org/zap"
)

// DefaultSeedUsers returns the fixed accounts present at every process
// start. They exist before any signup call and are never persisted.
func DefaultSeedUsers() []User {
	return []User{
		{ID: 1, Email: "shiv@gmail.com", Password: "shiv@123"},
		{ID: 2, Email: "devuser@gmail.com", Password: "devpass"},
		{ID: 3, Email: "produser@gmail.com", Password: "prodpass"},
	}
}

// memoryCredentialStorage holds the seed accounts and the signup-created
// accounts. Authenticate checks seeds before registered users, which is
// part of the contract even though signup rejects duplicates across both.
type memoryCredentialStorage struct {
	logger     *zap.Logger
	mu         sync.RWMutex
	seeds      []User
	registered map[string]User
}

// NewMemoryCredentialStorage provides an instance of in-memory credential storage.
func NewMemoryCredentialStorage(logger *zap.Logger, seeds []User) CredentialStorage {
	return &memoryCredentialStorage{
		logger:     logger,
		seeds:      seeds,
		registered: make(map[string]User),
	}
}

// Register stores a new user record verbatim. It fails if the email
// already exists among seeded or registered users. Emails are compared
// case-sensitive, exactly as given.
func (cs *memoryCredentialStorage) Register(_ context.Context, user User) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for _, seed := range cs.seeds {
		if seed.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	if _, exists := cs.registered[user.Email]; exists {
		return ErrDuplicateEmail
	}
	cs.registered[user.Email] = user
	return nil
}

// Authenticate checks the provided pair against seed accounts first then
// registered accounts. Matching is byte-exact; the password comparison
// is constant-time.
func (cs *memoryCredentialStorage) Authenticate(_ context.Context, email, password string) (User, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	for _, seed := range cs.seeds {
		if seed.Email == email {
			if passwordsMatch(seed.Password, password) {
				return seed, nil
			}
			return User{}, ErrInvalidCredentials
		}
	}
	user, exists := cs.registered[email]
	if !exists || !passwordsMatch(user.Password, password) {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

func passwordsMatch(stored, given string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}
