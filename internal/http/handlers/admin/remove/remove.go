// Package remove реализует HTTP-обработчик удаления пользователя администратором.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/denormies-frontend/internal/gateway"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/httperr"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/response"
	"github.com/magabrotheeeer/denormies-frontend/internal/session"
	"github.com/magabrotheeeer/denormies-frontend/internal/viewmodel"
)

// Service удаляет пользователя.
type Service interface {
	DeleteUser(ctx context.Context, sess *session.Session, view viewmodel.View, id string) error
}

// Roles определяет View пользователя.
type Roles interface {
	For(ctx context.Context, creds gateway.Credentials) (viewmodel.View, error)
}

// Handler обрабатывает DELETE /admin/users/{id}.
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
// @Summary Удаление пользователя
// @Tags Admin
// @Produce  json
// @Param id path string true "ID пользователя"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response "Не администратор"
// @Router /admin/users/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if id == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing user id"))
		return
	}

	sess := middlewarectx.SessionFrom(r.Context())
	view, err := h.roles.For(r.Context(), sess)
	if err != nil {
		httperr.Render(w, r, log, err)
		return
	}
	if err := h.service.DeleteUser(r.Context(), sess, view, id); err != nil {
		httperr.Render(w, r, log, err)
		return
	}

	log.Info("user deleted", slog.String("user_id", id))
	render.JSON(w, r, response.OK())
}
