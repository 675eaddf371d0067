// Package role определяет роль пользователя для одного представления.
//
// Resolver создаётся на каждое представление (HTTP-запрос): роль не кэшируется
// между представлениями, поэтому изменение роли на бэкенде видно на следующей странице.
package role

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/magabrotheeeer/denormies-frontend/internal/gateway"
	"github.com/magabrotheeeer/denormies-frontend/internal/lib/sl"
	"github.com/magabrotheeeer/denormies-frontend/internal/models"
	"github.com/magabrotheeeer/denormies-frontend/internal/viewmodel"
)

// Gateway — запрос роли у бэкенда.
type Gateway interface {
	Role(ctx context.Context, creds gateway.Credentials) (models.Role, error)
}

// Resolver запоминает роль на время жизни одного представления.
type Resolver struct {
	gw    Gateway
	creds gateway.Credentials

	mu       sync.Mutex
	resolved bool
	role     models.Role
}

// NewResolver создаёт Resolver для сессии.
func NewResolver(gw Gateway, creds gateway.Credentials) *Resolver {
	return &Resolver{gw: gw, creds: creds}
}

// Resolve возвращает роль. Без токена запрос не выполняется и возвращается RoleUnknown.
// Ошибка бэкенда не запоминается: следующий вызов повторит запрос.
func (r *Resolver) Resolve(ctx context.Context) (models.Role, error) {
	const op = "role.Resolve"
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.resolved {
		return r.role, nil
	}
	if r.creds == nil || r.creds.Token() == "" {
		return models.RoleUnknown, nil
	}

	got, err := r.gw.Role(ctx, r.creds)
	if err != nil {
		return models.RoleUnknown, fmt.Errorf("%s: %w", op, err)
	}
	r.role = got
	r.resolved = true
	return got, nil
}

// View возвращает View для роли пользователя.
func (r *Resolver) View(ctx context.Context) (viewmodel.View, error) {
	got, err := r.Resolve(ctx)
	if err != nil {
		return viewmodel.For(models.RoleUnknown), err
	}
	return viewmodel.For(got), nil
}

// Views создаёт новый Resolver на каждое представление.
type Views struct {
	log *slog.Logger
	gw  Gateway
}

// NewViews создаёт Views.
func NewViews(log *slog.Logger, gw Gateway) *Views {
	return &Views{log: log, gw: gw}
}

// For определяет View пользователя заново, без памяти о прошлых представлениях.
//
// Если бэкенд отказал в роли (например, токен устарел), возвращается анонимный
// View без ошибки. Сбой сети возвращается как есть.
func (v *Views) For(ctx context.Context, creds gateway.Credentials) (viewmodel.View, error) {
	const op = "role.Views.For"
	view, err := NewResolver(v.gw, creds).View(ctx)
	if apiErr, ok := gateway.AsAPIError(err); ok {
		v.log.Warn("role not resolved, using anonymous view",
			slog.String("op", op),
			slog.Int("status", apiErr.Status),
			sl.Err(err),
		)
		return viewmodel.For(models.RoleUnknown), nil
	}
	return view, err
}
