// Package page реализует HTTP-обработчик страницы расписания.
package page

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/denormies-frontend/internal/http/httperr"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/response"
	"github.com/magabrotheeeer/denormies-frontend/internal/lib/sl"
	"github.com/magabrotheeeer/denormies-frontend/internal/services/schedule"
	"github.com/magabrotheeeer/denormies-frontend/internal/session"
)

// Service загружает страницу расписания.
type Service interface {
	LoadPage(ctx context.Context, sess *session.Session, day int) (schedule.Page, error)
}

// Handler обрабатывает GET /schedule и GET /schedule/{day}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Расписание по дням
// @Description Без номера дня открывается первый. День вне диапазона даёт 404
// @Description вместе с числом дней и ссылками пагинации.
// @Tags Schedule
// @Produce  json
// @Param day path int false "Номер дня, начиная с 1"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response "Нет сессии"
// @Failure 404 {object} response.Response "Нет такого дня"
// @Router /schedule [get]
// @Router /schedule/{day} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.schedule.page"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	day := 1
	if raw := chi.URLParam(r, "day"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			log.Info("invalid day", slog.String("day", raw), sl.Err(err))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("invalid day"))
			return
		}
		day = n
	}

	page, err := h.service.LoadPage(r.Context(), middlewarectx.SessionFrom(r.Context()), day)
	if errors.Is(err, schedule.ErrDayOutOfRange) {
		log.Info("day out of range", slog.Int("day", day), slog.Int("count", page.Count))
		render.Status(r, http.StatusNotFound)
		resp := response.Error("day out of range")
		resp.Data = page
		render.JSON(w, r, resp)
		return
	}
	if err != nil {
		httperr.Render(w, r, log, err)
		return
	}
	render.JSON(w, r, response.OKWithData(page))
}
