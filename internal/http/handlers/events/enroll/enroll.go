// Package enroll реализует HTTP-обработчики кнопок записи на мероприятие.
package enroll

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
	"github.com/magabrotheeeer/denormies-frontend/internal/lib/sl"
	"github.com/magabrotheeeer/denormies-frontend/internal/services/events"
	"github.com/magabrotheeeer/denormies-frontend/internal/session"
)

// Service выполняет запись через текущее представление страницы.
type Service interface {
	Register(ctx context.Context, sess *session.Session, eventID string) (events.Outcome, error)
	Volunteer(ctx context.Context, sess *session.Session, eventID string) (events.Outcome, error)
}

// Mode — вид записи.
type Mode int

const (
	AsParticipant Mode = iota
	AsVolunteer
)

// Handler обрабатывает PUT /events/{id}/register и PUT /events/{id}/volunteer.
type Handler struct {
	log     *slog.Logger
	service Service
	mode    Mode
}

// New создает Handler для записи вида mode.
func New(log *slog.Logger, service Service, mode Mode) *Handler {
	return &Handler{log: log, service: service, mode: mode}
}

// ServeHTTP godoc
// @Summary Запись на мероприятие
// @Description Повторное нажатие в том же просмотре страницы запрос не отправляет (sent=false).
// @Description Конфликт записи возвращается с кодом 200 и сообщением.
// @Tags Events
// @Produce  json
// @Param id path string true "ID мероприятия"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response "Нет сессии"
// @Failure 403 {object} response.Response "Действие недоступно роли"
// @Failure 502 {object} response.Response "Бэкенд недоступен"
// @Router /events/{id}/register [put]
// @Router /events/{id}/volunteer [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.events.enroll"

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

	sess := middlewarectx.SessionFrom(r.Context())
	var (
		out events.Outcome
		err error
	)
	switch h.mode {
	case AsVolunteer:
		out, err = h.service.Volunteer(r.Context(), sess, id)
	default:
		out, err = h.service.Register(r.Context(), sess, id)
	}
	if err != nil {
		httperr.Render(w, r, log, err)
		return
	}

	log.Info("enroll handled",
		sl.Event(id),
		slog.Bool("sent", out.Sent),
		slog.String("status", out.Status),
	)
	render.JSON(w, r, response.OKWithData(out))
}
