// Package create реализует HTTP-обработчик создания пользователя администратором.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/denormies-frontend/internal/gateway"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/httperr"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/response"
	"github.com/magabrotheeeer/denormies-frontend/internal/lib/sl"
	"github.com/magabrotheeeer/denormies-frontend/internal/models"
	"github.com/magabrotheeeer/denormies-frontend/internal/services/admin"
	"github.com/magabrotheeeer/denormies-frontend/internal/session"
	"github.com/magabrotheeeer/denormies-frontend/internal/viewmodel"
)

// Service создаёт пользователя.
type Service interface {
	CreateUser(ctx context.Context, sess *session.Session, view viewmodel.View, in admin.CreateUserInput) (models.User, error)
}

// Roles определяет View пользователя.
type Roles interface {
	For(ctx context.Context, creds gateway.Credentials) (viewmodel.View, error)
}

// Handler обрабатывает POST /admin/users.
type Handler struct {
	log     *slog.Logger
	service Service
	roles   Roles
}

// New создает Handler.
func New(log *slog.Logger, service Service, roles Roles) *Handler {
	return &Handler{log: log, service: service, roles: roles}
}

// ServeHTTP godoc
// @Summary Создание пользователя
// @Description Администратор может выдать любую роль, включая admin.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param user body admin.CreateUserInput true "Данные пользователя"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Неверный JSON"
// @Failure 403 {object} response.Response "Не администратор"
// @Failure 422 {object} response.Response "Ошибки формы"
// @Router /admin/users [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req admin.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	sess := middlewarectx.SessionFrom(r.Context())
	view, err := h.roles.For(r.Context(), sess)
	if err != nil {
		httperr.Render(w, r, log, err)
		return
	}
	user, err := h.service.CreateUser(r.Context(), sess, view, req)
	if err != nil {
		httperr.Render(w, r, log, err)
		return
	}

	log.Info("user created", slog.String("role", user.Role.String()))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithData(user))
}
