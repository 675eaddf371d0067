// Package session хранит bearer-токен пользователя между запросами.
//
// Session — явная capability, которая передаётся в каждый вызов сервисов.
// Токен непрозрачен: сессия не разбирает его, а только отдаёт шлюзу.
// Запись и очистка сразу сохраняются в хранилище, поэтому следующий запрос
// браузера видит актуальное состояние.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrUnauthenticated — в сессии нет токена.
var ErrUnauthenticated = errors.New("session is not authenticated")

// Backend — постоянное хранилище токенов по идентификатору сессии.
type Backend interface {
	Put(ctx context.Context, id, token string) error
	Delete(ctx context.Context, id string) error
}

// Session — сессия одного браузера.
type Session struct {
	mu      sync.RWMutex
	id      string
	token   string
	backend Backend
}

// New создаёт сессию. backend может быть nil: тогда токен живёт только в памяти.
func New(id, token string, backend Backend) *Session {
	return &Session{id: id, token: token, backend: backend}
}

// ID возвращает идентификатор сессии.
func (s *Session) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Token возвращает текущий токен или пустую строку.
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated сообщает, есть ли в сессии токен.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// SetToken сохраняет токен, выданный при входе или регистрации.
func (s *Session) SetToken(ctx context.Context, token string) error {
	const op = "session.SetToken"
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.backend != nil {
		if err := s.backend.Put(ctx, s.id, token); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	s.token = token
	return nil
}

// Clear удаляет токен: выход из системы или удаление учётной записи.
func (s *Session) Clear(ctx context.Context) error {
	const op = "session.Clear"
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.backend != nil {
		if err := s.backend.Delete(ctx, s.id); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	s.token = ""
	return nil
}
