// Package detail реализует HTTP-обработчик страницы мероприятия.
package detail

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/denormies-frontend/internal/http/httperr"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/response"
	"github.com/magabrotheeeer/denormies-frontend/internal/services/events"
	"github.com/magabrotheeeer/denormies-frontend/internal/session"
)

// Service открывает страницу мероприятия.
type Service interface {
	Open(ctx context.Context, sess *session.Session, eventID string) (events.Detail, error)
}

// Handler обрабатывает GET /events/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Страница мероприятия
// @Description Каждый вызов начинает новый просмотр: флаги записи сбрасываются.
// @Description Призёры видны организатору, списки участников и волонтёров — тоже.
// @Tags Events
// @Produce  json
// @Param id path string true "ID мероприятия"
// @Success 200 {object} response.Response
// @Failure 502 {object} response.Response "Бэкенд недоступен"
// @Router /events/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.events.detail"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if id == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing event id"))
		return
	}

	d, err := h.service.Open(r.Context(), middlewarectx.SessionFrom(r.Context()), id)
	if err != nil {
		httperr.Render(w, r, log, err)
		return
	}
	render.JSON(w, r, response.OKWithData(d))
}
