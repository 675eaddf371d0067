package frontend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/magabrotheeeer/denormies-frontend/internal/config"
	"github.com/magabrotheeeer/denormies-frontend/internal/gateway"
	"github.com/magabrotheeeer/denormies-frontend/internal/lib/jwt"
	"github.com/magabrotheeeer/denormies-frontend/internal/lib/sl"
	"github.com/magabrotheeeer/denormies-frontend/internal/services/activity"
	"github.com/magabrotheeeer/denormies-frontend/internal/services/admin"
	"github.com/magabrotheeeer/denormies-frontend/internal/services/auth"
	"github.com/magabrotheeeer/denormies-frontend/internal/services/events"
	"github.com/magabrotheeeer/denormies-frontend/internal/services/profile"
	"github.com/magabrotheeeer/denormies-frontend/internal/services/role"
	"github.com/magabrotheeeer/denormies-frontend/internal/services/schedule"
	"github.com/magabrotheeeer/denormies-frontend/internal/session"
)

// App — HTTP-сервер фронтенда и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	store  *session.Store
	closer func() error
}

// New собирает приложение по конфигу. Если задан rabbitmq.url, события
// активности публикуются в брокер; при недоступном брокере публикация отключается.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "frontend.New"

	store, err := session.InitStore(ctx, cfg.RedisConnection, cfg.Session.TTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	gw := gateway.New(cfg.BaseURL, cfg.RequestTimeout, gateway.WithMetrics(gateway.NewMetrics(reg)))

	var publisher activity.Publisher = activity.Nop{}
	closer := func() error { return nil }
	if cfg.RabbitMQ.URL != "" {
		p, err := activity.NewAMQPPublisher(logger, cfg.RabbitMQ.URL, cfg.Exchange, cfg.Retries)
		if err != nil {
			logger.Warn("activity publishing disabled", sl.Err(err))
		} else {
			publisher = p
			closer = p.Close
		}
	}

	roles := role.NewViews(logger, gw)
	registry := events.NewRegistry(cfg.MaxViews, cfg.ViewTTL)
	svc := Services{
		Auth:     auth.New(logger, gw, publisher),
		Profile:  profile.New(gw),
		Roles:    roles,
		Events:   events.NewLister(gw),
		Pages:    events.NewPages(gw, roles, registry, publisher),
		Schedule: schedule.NewPager(gw),
		Admin:    admin.New(gw),
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, store, jwt.NewJWTMaker(cfg.SecretKey, cfg.Session.TTL), reg, svc)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		store:  store,
		closer: closer,
	}, nil
}

// Handler возвращает корневой обработчик.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run запускает сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

// Close освобождает соединения с redis и брокером.
func (a *App) Close() {
	a.close()
}

func (a *App) close() {
	if err := a.closer(); err != nil {
		a.logger.Error("failed to close activity publisher", sl.Err(err))
	}
	if err := a.store.Close(); err != nil {
		a.logger.Error("failed to close session store", sl.Err(err))
	}
}
