// Package login реализует HTTP-обработчик входа пользователя.
package login

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/denormies-frontend/internal/http/httperr"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/response"
	"github.com/magabrotheeeer/denormies-frontend/internal/lib/sl"
	"github.com/magabrotheeeer/denormies-frontend/internal/services/auth"
	"github.com/magabrotheeeer/denormies-frontend/internal/session"
)

// Service описывает сценарий входа.
type Service interface {
	Login(ctx context.Context, sess *session.Session, in auth.LoginInput) (auth.Result, error)
}

// Handler обрабатывает HTTP-запросы входа.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Аутентифицирует пользователя по email и паролю и сохраняет токен в сессии.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body auth.LoginInput true "Учетные данные пользователя"
// @Success 200 {object} response.Response "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.Response "Ошибки формы или неверные учетные данные"
// @Failure 502 {object} response.Response "Бэкенд недоступен"
// @Router /auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req auth.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	res, err := h.service.Login(r.Context(), middlewarectx.SessionFrom(r.Context()), req)
	if err != nil {
		httperr.Render(w, r, log, err)
		return
	}

	log.Info("login success")
	render.JSON(w, r, response.Redirect(res.Redirect))
}
