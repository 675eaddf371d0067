// Package logout реализует HTTP-обработчик выхода.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/denormies-frontend/internal/http/httperr"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/response"
	"github.com/magabrotheeeer/denormies-frontend/internal/services/auth"
	"github.com/magabrotheeeer/denormies-frontend/internal/session"
)

// Service описывает выход из системы.
type Service interface {
	Logout(ctx context.Context, sess *session.Session) (auth.Result, error)
}

// Handler обрабатывает выход.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Выход
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.Logout(r.Context(), middlewarectx.SessionFrom(r.Context()))
	if err != nil {
		httperr.Render(w, r, log, err)
		return
	}
	render.JSON(w, r, response.Redirect(res.Redirect))
}
