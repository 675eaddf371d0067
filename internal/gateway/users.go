package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/magabrotheeeer/denormies-frontend/internal/models"
)

// Me возвращает учётную запись текущего пользователя.
func (c *Client) Me(ctx context.Context, creds Credentials) (models.User, error) {
	const op = "gateway.Me"
	var user models.User
	if _, err := c.do(ctx, http.MethodGet, "/users/me", "/users/me", creds, nil, &user); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// DeleteMe удаляет учётную запись текущего пользователя.
func (c *Client) DeleteMe(ctx context.Context, creds Credentials) error {
	const op = "gateway.DeleteMe"
	if _, err := c.do(ctx, http.MethodDelete, "/users/me", "/users/me", creds, nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Role возвращает роль текущего пользователя.
func (c *Client) Role(ctx context.Context, creds Credentials) (models.Role, error) {
	const op = "gateway.Role"
	var resp struct {
		Role string `json:"role"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/users/role", "/users/role", creds, nil, &resp); err != nil {
		return models.RoleUnknown, fmt.Errorf("%s: %w", op, err)
	}
	return models.ParseRole(resp.Role), nil
}

// CreateStudent прикрепляет к учётной записи профиль студента.
func (c *Client) CreateStudent(ctx context.Context, creds Credentials, p models.StudentProfile) error {
	const op = "gateway.CreateStudent"
	if _, err := c.do(ctx, http.MethodPost, "/students/me", "/students/me", creds, p, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Student возвращает профиль студента текущего пользователя.
func (c *Client) Student(ctx context.Context, creds Credentials) (models.StudentProfile, error) {
	const op = "gateway.Student"
	var p models.StudentProfile
	if _, err := c.do(ctx, http.MethodGet, "/students/me", "/students/me", creds, nil, &p); err != nil {
		return models.StudentProfile{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// CreateParticipant прикрепляет к учётной записи профиль участника.
// Бэкенд принимает только университет; проживание и питание назначаются позже.
func (c *Client) CreateParticipant(ctx context.Context, creds Credentials, p models.ParticipantProfile) error {
	const op = "gateway.CreateParticipant"
	body := struct {
		University string `json:"university"`
	}{University: p.University}
	if _, err := c.do(ctx, http.MethodPost, "/participants/me", "/participants/me", creds, body, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Participant возвращает профиль участника текущего пользователя.
func (c *Client) Participant(ctx context.Context, creds Credentials) (models.ParticipantProfile, error) {
	const op = "gateway.Participant"
	var p models.ParticipantProfile
	if _, err := c.do(ctx, http.MethodGet, "/participants/me", "/participants/me", creds, nil, &p); err != nil {
		return models.ParticipantProfile{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ListUsers возвращает всех пользователей, кроме администраторов. Только для admin.
func (c *Client) ListUsers(ctx context.Context, creds Credentials) ([]models.AdminUser, error) {
	const op = "gateway.ListUsers"
	var resp struct {
		Users []models.AdminUser `json:"users"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/users/all", "/users/all", creds, nil, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return resp.Users, nil
}

// CreateUser создаёт учётную запись от имени администратора. Токен не выдаётся.
func (c *Client) CreateUser(ctx context.Context, creds Credentials, req RegisterRequest) (models.User, error) {
	const op = "gateway.CreateUser"
	var user models.User
	if _, err := c.do(ctx, http.MethodPost, "/users/", "/users/", creds, req, &user); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// DeleteUser удаляет пользователя по идентификатору. Только для admin.
func (c *Client) DeleteUser(ctx context.Context, creds Credentials, id string) error {
	const op = "gateway.DeleteUser"
	if _, err := c.do(ctx, http.MethodDelete, "/users/:id", "/users/"+url.PathEscape(id), creds, nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
