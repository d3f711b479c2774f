package main

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
)

// BookServiceProvider exposes the book collection operations. Creation
// assigns a new id from a strictly monotonic sequence so ids are never
// reused after a deletion within a running process.
type BookServiceProvider interface {
	Create(ctx context.Context, book Book) (Book, error)
	GetOne(ctx context.Context, id int64) (Book, error)
	Delete(ctx context.Context, id int64) error
	Update(ctx context.Context, id int64, book Book) (Book, error)
	GetAll(ctx context.Context) ([]Book, error)
}

type BookService struct {
	logger  *zap.Logger
	config  *Config
	clock   Clocker
	storage BookStorage
	seq     atomic.Int64
}

// NewBookService provides a book service bound to the given storage.
// The id sequence starts after the highest id already stored, so a
// persistent backend keeps its ids monotonic across restarts.
func NewBookService(logger *zap.Logger, config *Config, clock Clocker, storage BookStorage) (BookServiceProvider, error) {
	bs := &BookService{
		logger:  logger,
		config:  config,
		clock:   clock,
		storage: storage,
	}
	maxID, err := storage.MaxID(context.Background())
	if err != nil {
		return nil, fmt.Errorf("service: failed to seed the books id sequence: %w", err)
	}
	bs.seq.Store(maxID)
	return bs, nil
}

// Create assigns the next id of the sequence then inserts the book.
// Two concurrent creates always compute distinct ids.
func (bs *BookService) Create(ctx context.Context, book Book) (Book, error) {
	book.ID = bs.seq.Add(1)
	if err := bs.storage.Add(ctx, book); err != nil {
		return Book{}, err
	}
	return book, nil
}

func (bs *BookService) GetOne(ctx context.Context, id int64) (Book, error) {
	book, err := bs.storage.GetOne(ctx, id)
	return book, err
}

func (bs *BookService) Delete(ctx context.Context, id int64) error {
	return bs.storage.Delete(ctx, id)
}

func (bs *BookService) Update(ctx context.Context, id int64, book Book) (Book, error) {
	return bs.storage.Update(ctx, id, book)
}

func (bs *BookService) GetAll(ctx context.Context) ([]Book, error) {
	books, err := bs.storage.GetAll(ctx)
	return books, err
}

// AuthServiceProvider composes the credential storage and the token
// registry into the signup/login/authorize operations.
type AuthServiceProvider interface {
	SignUp(ctx context.Context, user User) error
	Login(ctx context.Context, email, password string) (string, error)
	Authorize(ctx context.Context, token string) (string, error)
}

type AuthService struct {
	logger *zap.Logger
	users  CredentialStorage
	tokens TokenRegistry
}

func NewAuthService(logger *zap.Logger, users CredentialStorage, tokens TokenRegistry) AuthServiceProvider {
	return &AuthService{
		logger: logger,
		users:  users,
		tokens: tokens,
	}
}

// SignUp registers a new user. User ids and book ids are independent
// namespaces, no cross check happens on the provided id.
func (as *AuthService) SignUp(ctx context.Context, user User) error {
	return as.users.Register(ctx, user)
}

// Login authenticates the pair then issues a fresh bearer token. Each
// call mints a new token, previously issued ones stay valid.
func (as *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := as.users.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}
	return as.tokens.Issue(ctx, user.Email)
}

// Authorize resolves the bearer token into its owner email. It is the
// mandatory precondition of every mutating book operation.
func (as *AuthService) Authorize(ctx context.Context, token string) (string, error) {
	if len(token) == 0 {
		return "", ErrInvalidToken
	}
	return as.tokens.Resolve(ctx, token)
}
