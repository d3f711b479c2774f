package main

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// memoryBookStorage is the default book storage. Records are kept in a
// map for lookups and in an ordered slice of ids so GetAll preserves
// insertion order. A single RWMutex guards both structures so every
// mutation is atomic with respect to concurrent calls.
type memoryBookStorage struct {
	logger *zap.Logger
	mu     sync.RWMutex
	books  map[int64]Book
	order  []int64
}

// NewMemoryBookStorage provides an instance of in-memory book storage.
func NewMemoryBookStorage(logger *zap.Logger) BookStorage {
	return &memoryBookStorage{
		logger: logger,
		books:  make(map[int64]Book),
	}
}

// Add inserts a new book record.
func (ms *memoryBookStorage) Add(_ context.Context, book Book) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if _, exists := ms.books[book.ID]; !exists {
		ms.order = append(ms.order, book.ID)
	}
	ms.books[book.ID] = book
	return nil
}

// GetOne retrieves a book record based on its ID.
func (ms *memoryBookStorage) GetOne(_ context.Context, id int64) (Book, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	book, exists := ms.books[id]
	if !exists {
		return Book{}, ErrBookNotFound
	}
	return book, nil
}

// Delete removes a book record based on its ID.
func (ms *memoryBookStorage) Delete(_ context.Context, id int64) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if _, exists := ms.books[id]; !exists {
		return ErrBookNotFound
	}
	delete(ms.books, id)
	for i, oid := range ms.order {
		if oid == id {
			ms.order = append(ms.order[:i], ms.order[i+1:]...)
			break
		}
	}
	return nil
}

// Update replaces all fields of an existing book record, id excepted.
func (ms *memoryBookStorage) Update(_ context.Context, id int64, book Book) (Book, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if _, exists := ms.books[id]; !exists {
		return Book{}, ErrBookNotFound
	}
	book.ID = id
	ms.books[id] = book
	return book, nil
}

// GetAll retrieves a point-in-time copy of all books in insertion order.
func (ms *memoryBookStorage) GetAll(_ context.Context) ([]Book, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	books := make([]Book, 0, len(ms.order))
	for _, id := range ms.order {
		books = append(books, ms.books[id])
	}
	return books, nil
}

// MaxID returns the highest id currently in the store. It is used to
// seed the service id sequence at startup.
func (ms *memoryBookStorage) MaxID(_ context.Context) (int64, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	var max int64
	for id := range ms.books {
		if id > max {
			max = id
		}
	}
	return max, nil
}
