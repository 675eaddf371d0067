package middlewarectx_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/denormies-frontend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/denormies-frontend/internal/lib/jwt"
	"github.com/magabrotheeeer/denormies-frontend/internal/session"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

// memStore — хранилище сессий в памяти.
type memStore struct {
	tokens map[string]string
	nextID string
	failed bool
}

func (m *memStore) NewID() string { return m.nextID }

func (m *memStore) Load(_ context.Context, id string) (*session.Session, error) {
	if m.failed {
		return nil, errors.New("redis down")
	}
	return session.New(id, m.tokens[id], m), nil
}

func (m *memStore) Put(_ context.Context, id, token string) error {
	m.tokens[id] = token
	return nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	delete(m.tokens, id)
	return nil
}

var opts = middlewarectx.CookieOptions{Name: "denormies_session", TTL: time.Hour}

func TestSessionMiddleware(t *testing.T) {
	maker := jwt.NewJWTMaker("secret", time.Hour)

	t.Run("new browser gets a cookie", func(t *testing.T) {
		store := &memStore{tokens: map[string]string{}, nextID: "fresh"}
		var got *session.Session
		h := middlewarectx.SessionMiddleware(newNoopLogger(), store, maker, opts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = middlewarectx.SessionFrom(r.Context())
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nav", nil))

		require.NotNil(t, got)
		assert.Equal(t, "fresh", got.ID())
		assert.False(t, got.Authenticated())

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "denormies_session", cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
		id, err := maker.ParseToken(cookies[0].Value)
		require.NoError(t, err)
		assert.Equal(t, "fresh", id)
	})

	t.Run("existing cookie restores token", func(t *testing.T) {
		store := &memStore{tokens: map[string]string{"sid": "t1"}, nextID: "unused"}
		signed, err := maker.GenerateToken("sid")
		require.NoError(t, err)

		var got *session.Session
		h := middlewarectx.SessionMiddleware(newNoopLogger(), store, maker, opts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = middlewarectx.SessionFrom(r.Context())
			require.NoError(t, got.SetToken(r.Context(), "t2"))
		}))

		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		req.AddCookie(&http.Cookie{Name: "denormies_session", Value: signed})
		h.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "sid", got.ID())
		assert.Equal(t, "t2", store.tokens["sid"])
	})

	t.Run("tampered cookie starts a new session", func(t *testing.T) {
		store := &memStore{tokens: map[string]string{"sid": "t1"}, nextID: "fresh"}
		other, err := jwt.NewJWTMaker("other-secret", time.Hour).GenerateToken("sid")
		require.NoError(t, err)

		var got *session.Session
		h := middlewarectx.SessionMiddleware(newNoopLogger(), store, maker, opts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = middlewarectx.SessionFrom(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "denormies_session", Value: other})
		h.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "fresh", got.ID())
		assert.False(t, got.Authenticated())
	})

	t.Run("store failure", func(t *testing.T) {
		store := &memStore{failed: true, nextID: "fresh"}
		called := false
		h := middlewarectx.SessionMiddleware(newNoopLogger(), store, maker, opts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.False(t, called)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestSessionFrom_Empty(t *testing.T) {
	sess := middlewarectx.SessionFrom(context.Background())
	require.NotNil(t, sess)
	assert.False(t, sess.Authenticated())
}

func TestRateLimitMiddleware(t *testing.T) {
	h := middlewarectx.RateLimitMiddleware(newNoopLogger(), 1, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for range 3 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := middlewarectx.NewHTTPMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/events/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"1", "2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/events/"+id, nil))
	}

	count, err := testutil.GatherAndCount(reg, "denormies_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
