// Package register реализует HTTP-обработчик регистрации пользователя.
//
// Обработчик декодирует форму, передаёт её сценарию регистрации и возвращает
// пройденные этапы, адрес перехода и ошибку создания профиля, если она была.
package register

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

// Service описывает сценарий регистрации.
type Service interface {
	Register(ctx context.Context, sess *session.Session, in auth.RegisterInput) (auth.Result, error)
}

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// Data — тело успешного ответа.
type Data struct {
	States       []string `json:"states"`
	ProfileError string   `json:"profile_error,omitempty"`
}

// States переводит этапы в строки для ответа.
func States(states []auth.State) []string {
	out := make([]string, 0, len(states))
	for _, s := range states {
		out = append(out, s.String())
	}
	return out
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создаёт учётную запись, сохраняет токен в сессии и создаёт профиль студента или участника.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body auth.RegisterInput true "Форма регистрации"
// @Success 200 {object} response.Response "Учётная запись создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.Response "Ошибки формы"
// @Failure 502 {object} response.Response "Бэкенд недоступен"
// @Router /auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req auth.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	res, err := h.service.Register(r.Context(), middlewarectx.SessionFrom(r.Context()), req)
	if err != nil {
		httperr.Render(w, r, log, err)
		return
	}

	data := Data{States: States(res.States)}
	if res.ProfileErr != nil {
		log.Warn("profile completion failed", sl.Err(res.ProfileErr))
		data.ProfileError = "account created, but the profile could not be completed"
	}

	log.Info("user registered", slog.String("role", req.Role.String()))
	render.JSON(w, r, response.Response{
		Status:   response.StatusOK,
		Redirect: res.Redirect,
		Data:     data,
	})
}
