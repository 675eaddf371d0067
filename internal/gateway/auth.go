package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/magabrotheeeer/denormies-frontend/internal/models"
)

// RegisterRequest — тело POST /auth/register.
// Пустой телефон не передаётся вовсе.
type RegisterRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone,omitempty"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

// LoginRequest — тело POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
}

var errEmptyToken = errors.New("backend returned empty token")

// Register создаёт учётную запись и возвращает выданный токен.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (string, error) {
	const op = "gateway.Register"
	var resp tokenResponse
	if _, err := c.do(ctx, http.MethodPost, "/auth/register", "/auth/register", nil, req, &resp); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("%s: %w", op, errEmptyToken)
	}
	return resp.Token, nil
}

// Login аутентифицирует пользователя и возвращает токен.
func (c *Client) Login(ctx context.Context, req LoginRequest) (string, error) {
	const op = "gateway.Login"
	var resp tokenResponse
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", "/auth/login", nil, req, &resp); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("%s: %w", op, errEmptyToken)
	}
	return resp.Token, nil
}
