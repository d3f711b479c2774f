package main

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// This file contains unit tests for the book and auth services.

func newTestBookService(t *testing.T) BookServiceProvider {
	t.Helper()
	bs, err := NewBookService(zap.NewNop(), nil, NewMockClocker(), NewMemoryBookStorage(zap.NewNop()))
	require.NoError(t, err)
	return bs
}

func TestBookService_Create_AssignsSequentialIDs(t *testing.T) {
	bs := newTestBookService(t)
	for i, title := range []string{"X", "Y", "Z"} {
		book, err := bs.Create(context.TODO(), Book{Title: title, Author: "a", Description: "d", Price: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), book.ID)
	}

	books, err := bs.GetAll(context.TODO())
	assert.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, []string{"X", "Y", "Z"}, []string{books[0].Title, books[1].Title, books[2].Title})
}

// TestBookService_Create_NoIDReuseAfterDelete covers the id policy: the
// sequence never decreases, so a create following a delete can neither
// recycle the deleted id nor collide with a surviving record.
func TestBookService_Create_NoIDReuseAfterDelete(t *testing.T) {
	bs := newTestBookService(t)

	bookA, err := bs.Create(context.TODO(), Book{Title: "X", Author: "a", Description: "d", Price: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), bookA.ID)

	bookB, err := bs.Create(context.TODO(), Book{Title: "Y", Author: "a", Description: "d", Price: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), bookB.ID)

	require.NoError(t, bs.Delete(context.TODO(), bookA.ID))

	bookC, err := bs.Create(context.TODO(), Book{Title: "Z", Author: "a", Description: "d", Price: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), bookC.ID)

	// book B survived with its own data.
	got, err := bs.GetOne(context.TODO(), bookB.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Y", got.Title)
}

func TestBookService_Create_ConcurrentDistinctIDs(t *testing.T) {
	bs := newTestBookService(t)
	const workers = 50

	var wg sync.WaitGroup
	ids := make(chan int64, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			book, err := bs.Create(context.TODO(), Book{Title: "t", Author: "a", Description: "d", Price: 1})
			assert.NoError(t, err)
			ids <- book.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)
}

func TestBookService_SequenceSeededFromStorage(t *testing.T) {
	storage := NewMemoryBookStorage(zap.NewNop())
	require.NoError(t, storage.Add(context.TODO(), Book{ID: 7, Title: "existing"}))

	bs, err := NewBookService(zap.NewNop(), nil, NewMockClocker(), storage)
	require.NoError(t, err)

	book, err := bs.Create(context.TODO(), Book{Title: "next", Author: "a", Description: "d", Price: 1})
	assert.NoError(t, err)
	assert.Equal(t, int64(8), book.ID)
}

func TestBookService_Update_FullReplace(t *testing.T) {
	bs := newTestBookService(t)
	created, err := bs.Create(context.TODO(), Book{Title: "before", Author: "a", Description: "d", Price: 5})
	require.NoError(t, err)

	updated, err := bs.Update(context.TODO(), created.ID, Book{Title: "after", Author: "b", Description: "e", Price: 9})
	assert.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, Book{ID: created.ID, Title: "after", Author: "b", Description: "e", Price: 9}, updated)
}

func newTestAuthService() AuthServiceProvider {
	logger := zap.NewNop()
	return NewAuthService(logger,
		NewMemoryCredentialStorage(logger, DefaultSeedUsers()),
		NewMemoryTokenRegistry(logger, NewMockClocker()),
	)
}

func TestAuthService_SignUpThenLogin(t *testing.T) {
	as := newTestAuthService()
	require.NoError(t, as.SignUp(context.TODO(), User{ID: 10, Email: "reader@gmail.com", Password: "secret"}))

	token, err := as.Login(context.TODO(), "reader@gmail.com", "secret")
	assert.NoError(t, err)

	ownerEmail, err := as.Authorize(context.TODO(), token)
	assert.NoError(t, err)
	assert.Equal(t, "reader@gmail.com", ownerEmail)
}

func TestAuthService_SignUp_DuplicateEmail(t *testing.T) {
	as := newTestAuthService()
	require.NoError(t, as.SignUp(context.TODO(), User{ID: 10, Email: "reader@gmail.com", Password: "secret"}))
	err := as.SignUp(context.TODO(), User{ID: 11, Email: "reader@gmail.com", Password: "other"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestAuthService_Login_SeedAccount(t *testing.T) {
	as := newTestAuthService()
	token, err := as.Login(context.TODO(), "shiv@gmail.com", "shiv@123")
	assert.NoError(t, err)

	ownerEmail, err := as.Authorize(context.TODO(), token)
	assert.NoError(t, err)
	assert.Equal(t, "shiv@gmail.com", ownerEmail)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	as := newTestAuthService()
	_, err := as.Login(context.TODO(), "shiv@gmail.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// TestAuthService_Login_TwiceYieldsTwoValidTokens covers the multiple
// sessions contract: a login never invalidates previous tokens.
func TestAuthService_Login_TwiceYieldsTwoValidTokens(t *testing.T) {
	as := newTestAuthService()
	first, err := as.Login(context.TODO(), "devuser@gmail.com", "devpass")
	require.NoError(t, err)
	second, err := as.Login(context.TODO(), "devuser@gmail.com", "devpass")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	for _, token := range []string{first, second} {
		ownerEmail, err := as.Authorize(context.TODO(), token)
		assert.NoError(t, err)
		assert.Equal(t, "devuser@gmail.com", ownerEmail)
	}
}

func TestAuthService_Authorize_InvalidToken(t *testing.T) {
	as := newTestAuthService()
	_, err := as.Authorize(context.TODO(), "token_0_0_ghost@gmail.com")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = as.Authorize(context.TODO(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
