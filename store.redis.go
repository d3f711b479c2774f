package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	HBooks    string = "books"
	LBooksIDs string = "books:ids"
)

// redisBookStorage keeps book records into a hash keyed by id and
// tracks insertion order into a companion list of ids so GetAll can
// preserve creation order across restarts of the process.
type redisBookStorage struct {
	logger *zap.Logger
	client *redis.Client
}

// NewRedisBookStorage provides an instance of redis-based book storage.
func NewRedisBookStorage(logger *zap.Logger, client *redis.Client) BookStorage {
	return &redisBookStorage{
		logger: logger,
		client: client,
	}
}

// GetRedisClient provides a ready to use redis client.
func GetRedisClient(config *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", config.Redis.Host, config.Redis.Port),
		DialTimeout:  config.Redis.DialTimeout,
		ReadTimeout:  config.Redis.ReadTimeout,
		WriteTimeout: config.Redis.WriteTimeout,
		PoolSize:     config.Redis.PoolSize,
		PoolTimeout:  config.Redis.PoolTimeout,
		Password:     config.Redis.Password,
		Username:     config.Redis.Username,
		DB:           config.Redis.DatabaseIndex,
	})

	// test connection.
	if pong, err := client.Ping(context.Background()).Result(); pong != "PONG" || err != nil {
		return client, fmt.Errorf("test connection failed: %v", err)
	}
	return client, nil
}

func redisBookField(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Add inserts a new book record and appends its id to the ordering list.
func (rs *redisBookStorage) Add(ctx context.Context, book Book) error {
	bookBytes, err := json.Marshal(book)
	if err != nil {
		return err
	}
	if err = rs.client.HSet(ctx, HBooks, redisBookField(book.ID), bookBytes).Err(); err != nil {
		return err
	}
	return rs.client.RPush(ctx, LBooksIDs, book.ID).Err()
}

// GetOne retrieves a book record based on its ID.
func (rs *redisBookStorage) GetOne(ctx context.Context, id int64) (Book, error) {
	var book Book
	bookJSONString, err := rs.client.HGet(ctx, HBooks, redisBookField(id)).Result()
	if err == redis.Nil {
		return book, ErrBookNotFound
	}
	if err != nil {
		return book, err
	}
	err = json.Unmarshal([]byte(bookJSONString), &book)
	return book, err
}

// Delete removes a book record and its id from the ordering list.
func (rs *redisBookStorage) Delete(ctx context.Context, id int64) error {
	deleted, err := rs.client.HDel(ctx, HBooks, redisBookField(id)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrBookNotFound
	}
	return rs.client.LRem(ctx, LBooksIDs, 1, id).Err()
}

// Update replaces an existing book record. It fails if the id does not exist.
func (rs *redisBookStorage) Update(ctx context.Context, id int64, book Book) (Book, error) {
	exists, err := rs.client.HExists(ctx, HBooks, redisBookField(id)).Result()
	if err != nil {
		return book, err
	}
	if !exists {
		return book, ErrBookNotFound
	}
	book.ID = id
	bookBytes, err := json.Marshal(book)
	if err != nil {
		return book, err
	}
	err = rs.client.HSet(ctx, HBooks, redisBookField(id), bookBytes).Err()
	return book, err
}

// GetAll retrieves all books following the ordering list.
func (rs *redisBookStorage) GetAll(ctx context.Context) ([]Book, error) {
	ids, err := rs.client.LRange(ctx, LBooksIDs, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	books := []Book{}
	for _, id := range ids {
		bookJSONString, err := rs.client.HGet(ctx, HBooks, id).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		var book Book
		if err = json.Unmarshal([]byte(bookJSONString), &book); err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}

// MaxID scans the stored ids and returns the highest one.
func (rs *redisBookStorage) MaxID(ctx context.Context) (int64, error) {
	fields, err := rs.client.HKeys(ctx, HBooks).Result()
	if err != nil {
		return 0, err
	}
	var max int64
	for _, field := range fields {
		id, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			continue
		}
		if id > max {
			max = id
		}
	}
	return max, nil
}
