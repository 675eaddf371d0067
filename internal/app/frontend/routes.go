// Package frontend собирает HTTP-сервис фронтенда: сессии, шлюз к бэкенду,
// сервисы страниц и маршруты.
package frontend

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/denormies-frontend/internal/config"
	adminCreate "github.com/magabrotheeeer/denormies-frontend/internal/http/handlers/admin/create"
	adminList "github.com/magabrotheeeer/denormies-frontend/internal/http/handlers/admin/list"
	adminRemove "github.com/magabrotheeeer/denormies-frontend/internal/http/handlers/admin/remove"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/handlers/events/detail"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/handlers/events/enroll"
	eventList "github.com/magabrotheeeer/denormies-frontend/internal/http/handlers/events/list"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/handlers/nav"
	profileRead "github.com/magabrotheeeer/denormies-frontend/internal/http/handlers/profile/read"
	profileRemove "github.com/magabrotheeeer/denormies-frontend/internal/http/handlers/profile/remove"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/handlers/schedule/page"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/denormies-frontend/internal/lib/jwt"
	adminService "github.com/magabrotheeeer/denormies-frontend/internal/services/admin"
	authService "github.com/magabrotheeeer/denormies-frontend/internal/services/auth"
	eventsService "github.com/magabrotheeeer/denormies-frontend/internal/services/events"
	profileService "github.com/magabrotheeeer/denormies-frontend/internal/services/profile"
	"github.com/magabrotheeeer/denormies-frontend/internal/services/role"
	scheduleService "github.com/magabrotheeeer/denormies-frontend/internal/services/schedule"
)

// Services — сервисы, которые обслуживают маршруты.
type Services struct {
	Auth     *authService.Service
	Profile  *profileService.Service
	Roles    *role.Views
	Events   *eventsService.Lister
	Pages    *eventsService.Pages
	Schedule *scheduleService.Pager
	Admin    *adminService.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	cfg *config.Config,
	store middlewarectx.SessionStore,
	maker jwt.Maker,
	reg *prometheus.Registry,
	svc Services,
) {
	httpMetrics := middlewarectx.NewHTTPMetrics(reg)

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Group(func(r chi.Router) {
		r.Use(httpMetrics.Middleware)
		r.Use(middlewarectx.RateLimitMiddleware(logger, cfg.RateLimit, cfg.RateBurst))
		r.Use(middlewarectx.SessionMiddleware(logger, store, maker, middlewarectx.CookieOptions{
			Name:   cfg.CookieName,
			TTL:    cfg.Session.TTL,
			Secure: cfg.SecureCookie,
		}))

		r.Post("/auth/register", register.New(logger, svc.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, svc.Auth).ServeHTTP)
		r.Post("/auth/logout", logout.New(logger, svc.Auth).ServeHTTP)

		r.Get("/nav", nav.New(logger, svc.Roles).ServeHTTP)
		r.Get("/profile", profileRead.New(logger, svc.Profile).ServeHTTP)
		r.Delete("/profile", profileRemove.New(logger, svc.Auth).ServeHTTP)

		r.Get("/events", eventList.New(logger, svc.Events, svc.Roles).ServeHTTP)
		r.Get("/events/{id}", detail.New(logger, svc.Pages).ServeHTTP)
		r.Put("/events/{id}/register", enroll.New(logger, svc.Pages, enroll.AsParticipant).ServeHTTP)
		r.Put("/events/{id}/volunteer", enroll.New(logger, svc.Pages, enroll.AsVolunteer).ServeHTTP)

		schedule := page.New(logger, svc.Schedule)
		r.Get("/schedule", schedule.ServeHTTP)
		r.Get("/schedule/{day}", schedule.ServeHTTP)

		r.Route("/admin/users", func(r chi.Router) {
			r.Get("/", adminList.New(logger, svc.Admin, svc.Roles).ServeHTTP)
			r.Post("/", adminCreate.New(logger, svc.Admin, svc.Roles).ServeHTTP)
			r.Delete("/{id}", adminRemove.New(logger, svc.Admin, svc.Roles).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
