// Package remove реализует HTTP-обработчик удаления учётной записи.
package remove

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

// Service удаляет учётную запись.
type Service interface {
	DeleteAccount(ctx context.Context, sess *session.Session) (auth.Result, error)
}

// Handler обрабатывает DELETE /profile.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удаление учётной записи
// @Tags Profile
// @Produce  json
// @Success 200 {object} response.Response "Учётная запись удалена, переход на /auth"
// @Failure 401 {object} response.Response "Нет сессии"
// @Router /profile [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.DeleteAccount(r.Context(), middlewarectx.SessionFrom(r.Context()))
	if err != nil {
		httperr.Render(w, r, log, err)
		return
	}
	log.Info("account deleted")
	render.JSON(w, r, response.Redirect(res.Redirect))
}
