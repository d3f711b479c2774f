package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// This file contains unit tests for the in-memory credential storage.

func TestCredentialStore_RegisterAndAuthenticate(t *testing.T) {
	cs := NewMemoryCredentialStorage(zap.NewNop(), DefaultSeedUsers())
	newUser := User{ID: 10, Email: "reader@gmail.com", Password: "secret"}
	require.NoError(t, cs.Register(context.TODO(), newUser))

	user, err := cs.Authenticate(context.TODO(), "reader@gmail.com", "secret")
	assert.NoError(t, err)
	assert.Equal(t, newUser, user)
}

func TestCredentialStore_Register_DuplicateEmail(t *testing.T) {
	cs := NewMemoryCredentialStorage(zap.NewNop(), DefaultSeedUsers())

	t.Run("against seed account", func(t *testing.T) {
		err := cs.Register(context.TODO(), User{ID: 10, Email: "shiv@gmail.com", Password: "whatever"})
		assert.ErrorIs(t, err, ErrDuplicateEmail)

		// the seed record is untouched.
		user, err := cs.Authenticate(context.TODO(), "shiv@gmail.com", "shiv@123")
		assert.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
	})

	t.Run("against registered account", func(t *testing.T) {
		require.NoError(t, cs.Register(context.TODO(), User{ID: 11, Email: "reader@gmail.com", Password: "first"}))
		err := cs.Register(context.TODO(), User{ID: 12, Email: "reader@gmail.com", Password: "second"})
		assert.ErrorIs(t, err, ErrDuplicateEmail)

		// the existing record is untouched.
		user, err := cs.Authenticate(context.TODO(), "reader@gmail.com", "first")
		assert.NoError(t, err)
		assert.Equal(t, int64(11), user.ID)
	})
}

func TestCredentialStore_Authenticate_SeedAccounts(t *testing.T) {
	cs := NewMemoryCredentialStorage(zap.NewNop(), DefaultSeedUsers())
	testCases := []struct {
		email    string
		password string
	}{
		{"shiv@gmail.com", "shiv@123"},
		{"devuser@gmail.com", "devpass"},
		{"produser@gmail.com", "prodpass"},
	}

	for _, tc := range testCases {
		t.Run(tc.email, func(t *testing.T) {
			user, err := cs.Authenticate(context.TODO(), tc.email, tc.password)
			assert.NoError(t, err)
			assert.Equal(t, tc.email, user.Email)
		})
	}
}

func TestCredentialStore_Authenticate_InvalidCredentials(t *testing.T) {
	cs := NewMemoryCredentialStorage(zap.NewNop(), DefaultSeedUsers())
	require.NoError(t, cs.Register(context.TODO(), User{ID: 10, Email: "reader@gmail.com", Password: "secret"}))

	testCases := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@gmail.com", "secret"},
		{"seed email with wrong password", "shiv@gmail.com", "wrong"},
		{"registered email with wrong password", "reader@gmail.com", "wrong"},
		{"email is matched case-sensitive", "Shiv@gmail.com", "shiv@123"},
		{"password is matched byte-exact", "reader@gmail.com", "Secret"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := cs.Authenticate(context.TODO(), tc.email, tc.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}
