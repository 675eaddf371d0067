package frontend_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/denormies-frontend/internal/app/frontend"
	"github.com/magabrotheeeer/denormies-frontend/internal/config"
)

type backendUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// fakeBackend — минимальная реализация REST API бэкенда.
type fakeBackend struct {
	mu            sync.Mutex
	users         map[string]*backendUser // по email
	tokens        map[string]string       // токен -> email
	students      map[string]map[string]string
	registrations map[string]int // email/eventID -> число запросов
	calls         []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		users:         map[string]*backendUser{},
		tokens:        map[string]string{},
		students:      map[string]map[string]string{},
		registrations: map[string]int{},
	}
}

func (b *fakeBackend) detail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"detail": msg})
}

func (b *fakeBackend) caller(r *http.Request) (*backendUser, bool) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	email, ok := b.tokens[token]
	if !ok {
		return nil, false
	}
	return b.users[email], true
}

func (b *fakeBackend) issue(email string) string {
	token := "tok-" + email + "-" + time.Now().Format("150405.000000000")
	b.tokens[token] = email
	return token
}

func (b *fakeBackend) handler() http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b.mu.Lock()
			b.calls = append(b.calls, r.Method+" "+r.URL.Path)
			b.mu.Unlock()
			next.ServeHTTP(w, r)
		})
	})

	r.Post("/auth/register", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		var u backendUser
		_ = json.NewDecoder(r.Body).Decode(&u)
		if _, ok := b.users[u.Email]; ok {
			b.detail(w, r, http.StatusBadRequest, "Email already registered")
			return
		}
		b.users[u.Email] = &u
		render.JSON(w, r, map[string]string{"status": "ok", "token": b.issue(u.Email)})
	})
	r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		var in backendUser
		_ = json.NewDecoder(r.Body).Decode(&in)
		u, ok := b.users[in.Email]
		if !ok || u.Password != in.Password {
			b.detail(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		render.JSON(w, r, map[string]string{"status": "ok", "token": b.issue(u.Email)})
	})
	r.Get("/users/role", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		u, ok := b.caller(r)
		if !ok {
			b.detail(w, r, http.StatusUnauthorized, "Not authenticated")
			return
		}
		render.JSON(w, r, map[string]string{"role": u.Role})
	})
	r.Get("/users/me", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		u, ok := b.caller(r)
		if !ok {
			b.detail(w, r, http.StatusUnauthorized, "Not authenticated")
			return
		}
		render.JSON(w, r, u)
	})
	r.Post("/students/me", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		u, ok := b.caller(r)
		if !ok {
			b.detail(w, r, http.StatusUnauthorized, "Not authenticated")
			return
		}
		var p map[string]string
		_ = json.NewDecoder(r.Body).Decode(&p)
		b.students[u.Email] = p
		render.JSON(w, r, p)
	})
	r.Get("/students/me", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		u, ok := b.caller(r)
		if !ok {
			b.detail(w, r, http.StatusUnauthorized, "Not authenticated")
			return
		}
		render.JSON(w, r, b.students[u.Email])
	})
	r.Get("/events/all", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]any{"events": []map[string]string{{"id": "42", "name": "Hackathon"}}})
	})
	r.Get("/events/winners/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.detail(w, r, http.StatusForbidden, "Only organizers")
	})
	r.Put("/events/register/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		u, ok := b.caller(r)
		if !ok {
			b.detail(w, r, http.StatusUnauthorized, "Not authenticated")
			return
		}
		key := u.Email + "/" + chi.URLParam(r, "id")
		b.registrations[key]++
		if b.registrations[key] > 1 {
			b.detail(w, r, http.StatusConflict, "Already registered")
			return
		}
		render.JSON(w, r, map[string]string{"status": "ok"})
	})
	r.Get("/schedule/dates", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, []string{"01-03-2024", "02-03-2024", "03-03-2024"})
	})
	r.Get("/schedule/{date}", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, []map[string]string{{"name": "Talk " + chi.URLParam(r, "date"), "start_time": "10:00", "venue": "Hall"}})
	})
	return r
}

func (b *fakeBackend) count(call string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if c == call {
			n++
		}
	}
	return n
}

type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func (c *client) do(method, path string, body any) (int, map[string]any) {
	c.t.Helper()
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		buf = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.base+path, buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var got map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	if len(bytes.TrimSpace(raw)) > 0 && raw[0] == '{' {
		require.NoError(c.t, json.Unmarshal(raw, &got))
	}
	return resp.StatusCode, got
}

func setup(t *testing.T) (*client, *fakeBackend) {
	t.Helper()
	backend := newFakeBackend()
	backendSrv := httptest.NewServer(backend.handler())
	t.Cleanup(backendSrv.Close)

	mr := miniredis.RunT(t)

	cfg := &config.Config{
		Env:             "test",
		Backend:         config.Backend{BaseURL: backendSrv.URL, RequestTimeout: 5 * time.Second},
		RedisConnection: config.RedisConnection{AddressRedis: mr.Addr()},
		HTTPServer:      config.HTTPServer{AddressHTTP: ":0", RateLimit: 1000, RateBurst: 1000},
		Session: config.Session{
			CookieName: "denormies_session",
			SecretKey:  "test-secret",
			TTL:        time.Hour,
			ViewTTL:    time.Minute,
			MaxViews:   100,
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	app, err := frontend.New(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(app.Close)

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{t: t, base: srv.URL, http: &http.Client{Jar: jar}}, backend
}

func TestFrontend_StudentJourney(t *testing.T) {
	c, backend := setup(t)

	status, body := c.do(http.MethodGet, "/nav", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["data"].(map[string]any)["authenticated"])
	assert.Zero(t, backend.count("GET /users/role"))

	status, body = c.do(http.MethodPost, "/auth/register", map[string]string{
		"name":       "Ann Lee",
		"email":      "ann@x.io",
		"phone":      "9876543210",
		"password":   "abcd",
		"role":       "student",
		"roll":       "R1",
		"department": "CS",
	})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "/", body["redirect"])
	assert.Equal(t, 1, backend.count("POST /students/me"))
	assert.Zero(t, backend.count("POST /participants/me"))

	status, body = c.do(http.MethodGet, "/nav", nil)
	require.Equal(t, http.StatusOK, status)
	nav := body["data"].(map[string]any)
	assert.Equal(t, true, nav["authenticated"])
	assert.Equal(t, "student", nav["role"])
	assert.Equal(t, false, nav["show_admin_link"])

	status, body = c.do(http.MethodGet, "/profile", nil)
	require.Equal(t, http.StatusOK, status)
	profile := body["data"].(map[string]any)["profile"].(map[string]any)
	assert.Equal(t, "Ann Lee", profile["name"])
	assert.Equal(t, "CS", profile["student"].(map[string]any)["dept"])

	status, body = c.do(http.MethodGet, "/events", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{"register", "volunteer"}, body["data"].(map[string]any)["actions"])

	status, body = c.do(http.MethodGet, "/events/42", nil)
	require.Equal(t, http.StatusOK, status)
	detail := body["data"].(map[string]any)
	assert.Nil(t, detail["winners"])
	assert.Nil(t, detail["roster"])

	status, body = c.do(http.MethodPut, "/events/42/register", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["data"].(map[string]any)["sent"])

	status, body = c.do(http.MethodPut, "/events/42/register", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["data"].(map[string]any)["sent"])
	assert.Equal(t, 1, backend.count("PUT /events/register/42"))

	// Новый просмотр страницы снова отправляет запрос, бэкенд отвечает конфликтом.
	status, _ = c.do(http.MethodGet, "/events/42", nil)
	require.Equal(t, http.StatusOK, status)
	status, body = c.do(http.MethodPut, "/events/42/register", nil)
	require.Equal(t, http.StatusOK, status)
	out := body["data"].(map[string]any)
	assert.Equal(t, true, out["sent"])
	assert.Equal(t, "Already registered as a participant", out["message"])

	status, body = c.do(http.MethodGet, "/schedule/2", nil)
	require.Equal(t, http.StatusOK, status)
	page := body["data"].(map[string]any)
	assert.Equal(t, "02-03-2024", page["date"])
	links := page["links"].(map[string]any)
	assert.Equal(t, float64(1), links["prev"])
	assert.Equal(t, float64(3), links["next"])

	status, body = c.do(http.MethodGet, "/schedule/7", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, float64(3), body["data"].(map[string]any)["count"])
	assert.Equal(t, float64(3), body["data"].(map[string]any)["links"].(map[string]any)["prev"])

	status, _ = c.do(http.MethodGet, "/admin/users", nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Zero(t, backend.count("GET /users/all"))

	status, body = c.do(http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "/", body["redirect"])

	status, body = c.do(http.MethodGet, "/nav", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["data"].(map[string]any)["authenticated"])

	status, body = c.do(http.MethodPut, "/events/42/register", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "/auth", body["redirect"])

	status, body = c.do(http.MethodGet, "/schedule", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "/auth", body["redirect"])
}

func TestFrontend_LoginRejected(t *testing.T) {
	c, backend := setup(t)

	status, body := c.do(http.MethodPost, "/auth/login", map[string]string{"email": "nobody@x.io", "password": "abcd"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "Invalid credentials", body["fields"].(map[string]any)["email"])

	status, body = c.do(http.MethodPost, "/auth/login", map[string]string{"email": "bad", "password": "ab"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	fields := body["fields"].(map[string]any)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
	assert.Equal(t, 1, backend.count("POST /auth/login"))
}

func TestFrontend_Metrics(t *testing.T) {
	c, _ := setup(t)

	status, _ := c.do(http.MethodGet, "/nav", nil)
	require.Equal(t, http.StatusOK, status)

	resp, err := c.http.Get(c.base + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "denormies_http_requests_total")
}
