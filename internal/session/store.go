package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/denormies-frontend/internal/config"
)

const keyPrefix = "session:"

// Store — хранилище сессий в redis. Ключ session:<id> содержит токен бэкенда.
type Store struct {
	Db  *redis.Client
	ttl time.Duration
}

// InitStore подключается к redis и проверяет соединение.
func InitStore(ctx context.Context, cfg config.RedisConnection, ttl time.Duration) (*Store, error) {
	const op = "session.InitStore"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{Db: db, ttl: ttl}, nil
}

// NewID генерирует идентификатор новой сессии.
func (s *Store) NewID() string {
	return uuid.NewString()
}

// Load возвращает сессию по идентификатору. Отсутствующий ключ даёт пустую сессию.
func (s *Store) Load(ctx context.Context, id string) (*Session, error) {
	const op = "session.Load"
	token, err := s.Db.Get(ctx, keyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return New(id, "", s), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return New(id, token, s), nil
}

// Put сохраняет токен. Пустой токен равносилен удалению.
func (s *Store) Put(ctx context.Context, id, token string) error {
	if token == "" {
		return s.Delete(ctx, id)
	}
	return s.Db.Set(ctx, keyPrefix+id, token, s.ttl).Err()
}

// Delete удаляет токен сессии.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.Db.Del(ctx, keyPrefix+id).Err()
}

// Close закрывает соединение с redis.
func (s *Store) Close() error {
	return s.Db.Close()
}
