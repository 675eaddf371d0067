// Package list реализует HTTP-обработчик списка пользователей для администратора.
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
	"github.com/magabrotheeeer/denormies-frontend/internal/session"
	"github.com/magabrotheeeer/denormies-frontend/internal/viewmodel"
)

// Service отдаёт список пользователей.
type Service interface {
	ListUsers(ctx context.Context, sess *session.Session, view viewmodel.View) ([]models.AdminUser, error)
}

// Roles определяет View пользователя.
type Roles interface {
	For(ctx context.Context, creds gateway.Credentials) (viewmodel.View, error)
}

// Handler обрабатывает GET /admin/users.
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
// @Summary Список пользователей
// @Tags Admin
// @Produce  json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response "Нет сессии"
// @Failure 403 {object} response.Response "Не администратор"
// @Router /admin/users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sess := middlewarectx.SessionFrom(r.Context())
	view, err := h.roles.For(r.Context(), sess)
	if err != nil {
		httperr.Render(w, r, log, err)
		return
	}
	users, err := h.service.ListUsers(r.Context(), sess, view)
	if err != nil {
		httperr.Render(w, r, log, err)
		return
	}
	render.JSON(w, r, response.OKWithData(users))
}
