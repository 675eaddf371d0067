package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/magabrotheeeer/denormies-frontend/internal/models"
)

// Events возвращает все мероприятия.
func (c *Client) Events(ctx context.Context, creds Credentials) ([]models.Event, error) {
	const op = "gateway.Events"
	var resp struct {
		Events []models.Event `json:"events"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/events/all", "/events/all", creds, nil, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return resp.Events, nil
}

// RegisterForEvent записывает пользователя участником мероприятия.
// 409 — уже участник, 406 — уже волонтёр.
func (c *Client) RegisterForEvent(ctx context.Context, creds Credentials, eventID string) (AuthorizationResult, error) {
	const op = "gateway.RegisterForEvent"
	status, err := c.do(ctx, http.MethodPut, "/events/register/:id", "/events/register/"+url.PathEscape(eventID), creds, nil, nil)
	res, err := authorize(status, err)
	if err != nil {
		return AuthorizationResult{}, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Volunteer записывает студента волонтёром мероприятия.
// 409 — уже волонтёр, 406 — уже участник.
func (c *Client) Volunteer(ctx context.Context, creds Credentials, eventID string) (AuthorizationResult, error) {
	const op = "gateway.Volunteer"
	body := struct {
		EventID string `json:"event_id"`
	}{EventID: eventID}
	status, err := c.do(ctx, http.MethodPut, "/volunteers/volunteer", "/volunteers/volunteer", creds, body, nil)
	res, err := authorize(status, err)
	if err != nil {
		return AuthorizationResult{}, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Winners возвращает призёров мероприятия. Успешный ответ означает,
// что вызывающий — организатор; сам эндпоинт служит проверкой прав.
func (c *Client) Winners(ctx context.Context, creds Credentials, eventID string) ([]models.Winner, AuthorizationResult, error) {
	const op = "gateway.Winners"
	var winners []models.Winner
	status, err := c.do(ctx, http.MethodGet, "/events/winners/:id", "/events/winners/"+url.PathEscape(eventID), creds, nil, &winners)
	res, err := authorize(status, err)
	if err != nil {
		return nil, AuthorizationResult{}, fmt.Errorf("%s: %w", op, err)
	}
	if !res.Granted() {
		return nil, res, nil
	}
	return winners, res, nil
}

// Registrations возвращает участников мероприятия.
func (c *Client) Registrations(ctx context.Context, creds Credentials, eventID string) ([]models.Participant, AuthorizationResult, error) {
	const op = "gateway.Registrations"
	var list []models.Participant
	status, err := c.do(ctx, http.MethodGet, "/events/registrations/:id", "/events/registrations/"+url.PathEscape(eventID), creds, nil, &list)
	res, err := authorize(status, err)
	if err != nil {
		return nil, AuthorizationResult{}, fmt.Errorf("%s: %w", op, err)
	}
	if !res.Granted() {
		return nil, res, nil
	}
	return list, res, nil
}

// Volunteers возвращает волонтёров мероприятия.
func (c *Client) Volunteers(ctx context.Context, creds Credentials, eventID string) ([]models.Volunteer, AuthorizationResult, error) {
	const op = "gateway.Volunteers"
	var list []models.Volunteer
	status, err := c.do(ctx, http.MethodGet, "/volunteers/all/:id", "/volunteers/all/"+url.PathEscape(eventID), creds, nil, &list)
	res, err := authorize(status, err)
	if err != nil {
		return nil, AuthorizationResult{}, fmt.Errorf("%s: %w", op, err)
	}
	if !res.Granted() {
		return nil, res, nil
	}
	return list, res, nil
}
