// Package list реализует HTTP-обработчик списка мероприятий.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/denormies-frontend/internal/gateway"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/httperr"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/response"
	"github.com/magabrotheeeer/denormies-frontend/internal/models"
	"github.com/magabrotheeeer/denormies-frontend/internal/viewmodel"
)

// Service отдаёт мероприятия.
type Service interface {
	List(ctx context.Context, creds gateway.Credentials) ([]models.Event, error)
}

// Roles определяет View пользователя.
type Roles interface {
	For(ctx context.Context, creds gateway.Credentials) (viewmodel.View, error)
}

// Handler обрабатывает GET /events.
type Handler struct {
	log     *slog.Logger
	service Service
	roles   Roles
}

// New создает Handler.
func New(log *slog.Logger, service Service, roles Roles) *Handler {
	return &Handler{log: log, service: service, roles: roles}
}

// Data — мероприятия и действия, доступные роли пользователя.
type Data struct {
	Events  []models.Event     `json:"events"`
	Actions []viewmodel.Action `json:"actions"`
}

// ServeHTTP godoc
// @Summary Список мероприятий
// @Tags Events
// @Produce  json
// @Success 200 {object} response.Response
// @Failure 502 {object} response.Response "Бэкенд недоступен"
// @Router /events [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.events.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sess := middlewarectx.SessionFrom(r.Context())
	list, err := h.service.List(r.Context(), sess)
	if err != nil {
		httperr.Render(w, r, log, err)
		return
	}
	view, err := h.roles.For(r.Context(), sess)
	if err != nil {
		httperr.Render(w, r, log, err)
		return
	}
	actions := view.Actions()
	if actions == nil {
		actions = []viewmodel.Action{}
	}
	render.JSON(w, r, response.OKWithData(Data{Events: list, Actions: actions}))
}
