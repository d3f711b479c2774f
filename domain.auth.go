package main

import "context"

// User represents an identity able to authenticate against the service.
// Passwords are kept verbatim for the process lifetime, exactly as given.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CredentialStorage owns identity records and authenticates
// email/password pairs. Emails are unique across seed and
// signup-created users combined.
type CredentialStorage interface {
	Register(ctx context.Context, user User) error
	Authenticate(ctx context.Context, email, password string) (User, error)
}

// TokenRegistry mints opaque unique bearer tokens bound to an owner
// email and resolves them back. Tokens never expire within a process.
type TokenRegistry interface {
	Issue(ctx context.Context, ownerEmail string) (string, error)
	Resolve(ctx context.Context, token string) (string, error)
}
