// Package nav отдаёт данные шапки сайта: вход или профиль, ссылку на админку.
package nav

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
	"github.com/magabrotheeeer/denormies-frontend/internal/viewmodel"
)

// Roles определяет View пользователя для текущего запроса.
type Roles interface {
	For(ctx context.Context, creds gateway.Credentials) (viewmodel.View, error)
}

// Handler обрабатывает GET /nav.
type Handler struct {
	log   *slog.Logger
	roles Roles
}

// New создает Handler.
func New(log *slog.Logger, roles Roles) *Handler {
	return &Handler{log: log, roles: roles}
}

// ServeHTTP godoc
// @Summary Навигация
// @Description Для анонимной сессии роль не запрашивается.
// @Tags Nav
// @Produce  json
// @Success 200 {object} response.Response
// @Router /nav [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.nav"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	view, err := h.roles.For(r.Context(), middlewarectx.SessionFrom(r.Context()))
	if err != nil {
		httperr.Render(w, r, log, err)
		return
	}
	render.JSON(w, r, response.OKWithData(viewmodel.NavFor(view)))
}
