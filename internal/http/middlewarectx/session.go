// Package middlewarectx содержит HTTP middleware фронтенд-сервиса.
//
// SessionMiddleware восстанавливает сессию браузера по подписанной cookie,
// при необходимости заводит новую и кладёт *session.Session в контекст запроса.
// Cookie обновляется до вызова обработчика, потому что после записи тела
// заголовки менять уже нельзя.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/denormies-frontend/internal/http/response"
	"github.com/magabrotheeeer/denormies-frontend/internal/lib/jwt"
	"github.com/magabrotheeeer/denormies-frontend/internal/lib/sl"
	"github.com/magabrotheeeer/denormies-frontend/internal/session"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// SessionKey — ключ сессии в контексте.
const SessionKey Key = "session"

// SessionStore — хранилище сессий.
type SessionStore interface {
	NewID() string
	Load(ctx context.Context, id string) (*session.Session, error)
}

// CookieOptions — параметры cookie сессии.
type CookieOptions struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// SessionMiddleware возвращает middleware, которое загружает сессию из store.
// Отсутствующая или повреждённая cookie приводит к созданию новой сессии.
func SessionMiddleware(log *slog.Logger, store SessionStore, maker jwt.Maker, opts CookieOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Session"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			id := ""
			if c, err := r.Cookie(opts.Name); err == nil {
				id, err = maker.ParseToken(c.Value)
				if err != nil {
					log.Info("session cookie rejected", sl.Err(err))
					id = ""
				}
			}
			if id == "" {
				id = store.NewID()
			}

			sess, err := store.Load(r.Context(), id)
			if err != nil {
				log.Error("failed to load session", sl.Err(err))
				render.Status(r, http.StatusServiceUnavailable)
				render.JSON(w, r, response.Error("session store unavailable"))
				return
			}

			signed, err := maker.GenerateToken(id)
			if err != nil {
				log.Error("failed to sign session cookie", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal error"))
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     opts.Name,
				Value:    signed,
				Path:     "/",
				MaxAge:   int(opts.TTL.Seconds()),
				HttpOnly: true,
				Secure:   opts.Secure,
				SameSite: http.SameSiteLaxMode,
			})

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

// SessionFrom возвращает сессию из контекста. Без middleware возвращается
// пустая сессия, которая живёт только в памяти.
func SessionFrom(ctx context.Context) *session.Session {
	if sess, ok := ctx.Value(SessionKey).(*session.Session); ok && sess != nil {
		return sess
	}
	return session.New("", "", nil)
}

// WithSession кладёт сессию в контекст.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, SessionKey, sess)
}
