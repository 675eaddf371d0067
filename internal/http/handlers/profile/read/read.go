// Package read реализует HTTP-обработчик страницы профиля.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/denormies-frontend/internal/http/httperr"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/response"
	"github.com/magabrotheeeer/denormies-frontend/internal/models"
	"github.com/magabrotheeeer/denormies-frontend/internal/session"
	"github.com/magabrotheeeer/denormies-frontend/internal/viewmodel"
)

// Service отдаёт профиль текущего пользователя.
type Service interface {
	Me(ctx context.Context, sess *session.Session) (models.Profile, viewmodel.View, error)
}

// Handler обрабатывает GET /profile.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// Data — профиль и список полей, которые показываются для роли.
type Data struct {
	Profile models.Profile `json:"profile"`
	Fields  []string       `json:"fields"`
}

// ServeHTTP godoc
// @Summary Профиль пользователя
// @Description Возвращает учётную запись и расширение профиля студента или участника.
// @Tags Profile
// @Produce  json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response "Нет сессии"
// @Failure 502 {object} response.Response "Бэкенд недоступен"
// @Router /profile [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	p, view, err := h.service.Me(r.Context(), middlewarectx.SessionFrom(r.Context()))
	if err != nil {
		httperr.Render(w, r, log, err)
		return
	}
	render.JSON(w, r, response.OKWithData(Data{Profile: p, Fields: view.ProfileFields()}))
}
