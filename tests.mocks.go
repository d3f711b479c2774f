package main

import (
	"context"
	"time"
)

// This file contains mocks definitions needed to perform unit tests.

type MockBookStorage struct {
	AddFunc    func(ctx context.Context, book Book) error
	GetOneFunc func(ctx context.Context, id int64) (Book, error)
	DeleteFunc func(ctx context.Context, id int64) error
	UpdateFunc func(ctx context.Context, id int64, book Book) (Book, error)
	GetAllFunc func(ctx context.Context) ([]Book, error)
	MaxIDFunc  func(ctx context.Context) (int64, error)
}

// Add mocks the behavior of book creation by the repository.
func (m *MockBookStorage) Add(ctx context.Context, book Book) error {
	return m.AddFunc(ctx, book)
}

// GetOne mocks the behavior of retrieving a book by the repository.
func (m *MockBookStorage) GetOne(ctx context.Context, id int64) (Book, error) {
	return m.GetOneFunc(ctx, id)
}

// Delete mocks the behavior of deleting a book by the repository.
func (m *MockBookStorage) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

// Update mocks the behavior of updating a book by the repository.
func (m *MockBookStorage) Update(ctx context.Context, id int64, book Book) (Book, error) {
	return m.UpdateFunc(ctx, id, book)
}

// GetAll mocks the behavior of retrieving all books by the repository.
func (m *MockBookStorage) GetAll(ctx context.Context) ([]Book, error) {
	return m.GetAllFunc(ctx)
}

// MaxID mocks the id sequence seeding performed at service creation.
// It returns 0 when no behavior was injected so tests which do not
// care about the sequence can skip the setup.
func (m *MockBookStorage) MaxID(ctx context.Context) (int64, error) {
	if m.MaxIDFunc == nil {
		return 0, nil
	}
	return m.MaxIDFunc(ctx)
}

// MockAuthService implements a fake AuthServiceProvider.
type MockAuthService struct {
	SignUpFunc    func(ctx context.Context, user User) error
	LoginFunc     func(ctx context.Context, email, password string) (string, error)
	AuthorizeFunc func(ctx context.Context, token string) (string, error)
}

// SignUp mocks the behavior of the signup operation.
func (m *MockAuthService) SignUp(ctx context.Context, user User) error {
	return m.SignUpFunc(ctx, user)
}

// Login mocks the behavior of the login operation.
func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	return m.LoginFunc(ctx, email, password)
}

// Authorize mocks the behavior of the bearer credential check.
func (m *MockAuthService) Authorize(ctx context.Context, token string) (string, error) {
	return m.AuthorizeFunc(ctx, token)
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 0o7, 0o2, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock. This
// equals to `Sun, 02 Jul 2023 00:00:00 UTC` in time.RFC1123 format.
// equals to `2023-07-02 00:00:00 +0000 UTC` in String format.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// Zero returns zero time.
func (mck *MockClocker) Zero() time.Time {
	return time.Time{}
}

// MockTickerClocker implements a fake TickerClocker.
type MockTickerClocker struct {
	*MockClocker
}

// NewMockTickerClocker returns a mocked instance with fixed time.
func NewMockTickerClocker() *MockTickerClocker {
	return &MockTickerClocker{NewMockClocker()}
}

// NewTicker provides a real ticker on the requested duration.
func (mck *MockTickerClocker) NewTicker(d time.Duration) *time.Ticker {
	return time.NewTicker(d)
}

// MockUIDHandler implements a fake UIDHandler.
type MockUIDHandler struct {
	MockedUID string
	Valid     bool
}

// NewMockUIDHandler returns a mocked instance with predictable id.
func NewMockUIDHandler(id string, valid bool) *MockUIDHandler {
	return &MockUIDHandler{MockedUID: id, Valid: valid}
}

// Generate constructs a predictable id to be used as mock.
func (muid *MockUIDHandler) Generate(prefix string) string {
	return prefix + ":" + muid.MockedUID
}

// IsValid mocks IsValid behavior by providing configured status.
func (muid *MockUIDHandler) IsValid(_, _ string) bool {
	return muid.Valid
}
