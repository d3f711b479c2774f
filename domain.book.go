package main

import "context"

// Book represents a book entity. The ID is assigned by the
// service at creation time and never reused after deletion.
type Book struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title" binding:"required"`
	Author      string  `json:"author" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
}

// BookStorage defines possible operations on book entity.
type BookStorage interface {
	Add(ctx context.Context, book Book) error
	GetOne(ctx context.Context, id int64) (Book, error)
	Delete(ctx context.Context, id int64) error
	Update(ctx context.Context, id int64, book Book) (Book, error)
	GetAll(ctx context.Context) ([]Book, error)
	MaxID(ctx context.Context) (int64, error)
}
