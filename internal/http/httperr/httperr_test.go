package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/denormies-frontend/internal/gateway"
	"github.com/magabrotheeeer/denormies-frontend/internal/services/admin"
	"github.com/magabrotheeeer/denormies-frontend/internal/services/auth"
	"github.com/magabrotheeeer/denormies-frontend/internal/services/events"
	"github.com/magabrotheeeer/denormies-frontend/internal/session"
)

func TestMap(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		retry  bool
	}{
		{name: "fields", err: auth.FieldErrors{"email": "taken"}, status: http.StatusUnprocessableEntity},
		{name: "unauthenticated", err: fmt.Errorf("op: %w", session.ErrUnauthenticated), status: http.StatusUnauthorized},
		{name: "admin", err: fmt.Errorf("op: %w", admin.ErrForbidden), status: http.StatusForbidden},
		{name: "role", err: fmt.Errorf("op: %w", events.ErrNotAllowed), status: http.StatusForbidden},
		{name: "transport", err: fmt.Errorf("op: %w: %w", gateway.ErrTransport, errors.New("refused")), status: http.StatusBadGateway, retry: true},
		{name: "backend 404", err: fmt.Errorf("op: %w", &gateway.APIError{Status: 404, Detail: "Event not found"}), status: http.StatusNotFound},
		{name: "backend 500", err: &gateway.APIError{Status: 500, Detail: "boom"}, status: http.StatusBadGateway},
		{name: "other", err: errors.New("redis down"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := Map(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.retry, resp.Retry)
			assert.Equal(t, "Error", resp.Status)
		})
	}
}

func TestMap_FieldsCarried(t *testing.T) {
	_, resp := Map(auth.FieldErrors{"phone": "Phone number must be 10 digits"})
	assert.Equal(t, "Phone number must be 10 digits", resp.Fields["phone"])
}

func TestMap_AuthRedirect(t *testing.T) {
	_, resp := Map(session.ErrUnauthenticated)
	assert.Equal(t, "/auth", resp.Redirect)
}
