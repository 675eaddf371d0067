// Package httperr переводит ошибки сервисов в HTTP-ответы.
package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/denormies-frontend/internal/gateway"
	"github.com/magabrotheeeer/denormies-frontend/internal/http/response"
	"github.com/magabrotheeeer/denormies-frontend/internal/lib/sl"
	"github.com/magabrotheeeer/denormies-frontend/internal/services/admin"
	"github.com/magabrotheeeer/denormies-frontend/internal/services/auth"
	"github.com/magabrotheeeer/denormies-frontend/internal/services/events"
	"github.com/magabrotheeeer/denormies-frontend/internal/session"
)

// Render пишет ответ для err. Ошибки формы дают 422, сбой сети — 502 с
// признаком повтора, отказ бэкенда — его код и detail.
func Render(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, resp := Map(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", sl.Status(status), sl.Err(err))
	} else {
		log.Info("request rejected", sl.Status(status), sl.Err(err))
	}
	render.Status(r, status)
	render.JSON(w, r, resp)
}

// Map возвращает код и тело ответа для err.
func Map(err error) (int, response.Response) {
	if fe, ok := auth.AsFieldErrors(err); ok {
		return http.StatusUnprocessableEntity, response.ValidationError(fe)
	}

	switch {
	case errors.Is(err, session.ErrUnauthenticated):
		return http.StatusUnauthorized, response.AuthRequired()
	case errors.Is(err, admin.ErrForbidden), errors.Is(err, events.ErrNotAllowed):
		return http.StatusForbidden, response.Error("action is not available for your role")
	case errors.Is(err, gateway.ErrTransport):
		return http.StatusBadGateway, response.Unavailable()
	}

	if apiErr, ok := gateway.AsAPIError(err); ok {
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			return apiErr.Status, response.Error(apiErr.Detail)
		}
		return http.StatusBadGateway, response.Error(apiErr.Detail)
	}
	return http.StatusInternalServerError, response.Error("internal error")
}
