// Package admin — управление пользователями из административного раздела.
package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/denormies-frontend/internal/gateway"
	"github.com/magabrotheeeer/denormies-frontend/internal/models"
	"github.com/magabrotheeeer/denormies-frontend/internal/services/auth"
	"github.com/magabrotheeeer/denormies-frontend/internal/session"
	"github.com/magabrotheeeer/denormies-frontend/internal/viewmodel"
)

// ErrForbidden — раздел доступен только администратору.
var ErrForbidden = errors.New("admin role required")

// Gateway — административные вызовы бэкенда.
type Gateway interface {
	ListUsers(ctx context.Context, creds gateway.Credentials) ([]models.AdminUser, error)
	CreateUser(ctx context.Context, creds gateway.Credentials, req gateway.RegisterRequest) (models.User, error)
	DeleteUser(ctx context.Context, creds gateway.Credentials, id string) error
}

// CreateUserInput — форма создания пользователя. В отличие от регистрации
// администратор может выдать любую роль.
type CreateUserInput struct {
	Name            string      `json:"name" validate:"required,min=2"`
	Email           string      `json:"email" validate:"required,email"`
	Phone           string      `json:"phone" validate:"omitempty,len=10"`
	Password        string      `json:"password" validate:"required,min=4"`
	ConfirmPassword string      `json:"confirm_password" validate:"omitempty,eqfield=Password"`
	Role            models.Role `json:"role" validate:"required,oneof=student participant organizer sponsor admin"`
}

// Service выполняет административные операции.
type Service struct {
	gw       Gateway
	validate *validator.Validate
}

// New создаёт Service.
func New(gw Gateway) *Service {
	return &Service{gw: gw, validate: auth.NewValidator()}
}

func authorize(op string, sess *session.Session, view viewmodel.View) error {
	if !sess.Authenticated() {
		return fmt.Errorf("%s: %w", op, session.ErrUnauthenticated)
	}
	if !viewmodel.Can(view, viewmodel.ActionManageUsers) {
		return fmt.Errorf("%s: %w", op, ErrForbidden)
	}
	return nil
}

// ListUsers возвращает всех пользователей, кроме администраторов.
func (s *Service) ListUsers(ctx context.Context, sess *session.Session, view viewmodel.View) ([]models.AdminUser, error) {
	const op = "admin.ListUsers"
	if err := authorize(op, sess, view); err != nil {
		return nil, err
	}
	users, err := s.gw.ListUsers(ctx, sess)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if users == nil {
		users = []models.AdminUser{}
	}
	return users, nil
}

// CreateUser создаёт учётную запись. Ошибки формы и отказ бэкенда
// возвращаются как auth.FieldErrors.
func (s *Service) CreateUser(ctx context.Context, sess *session.Session, view viewmodel.View, in CreateUserInput) (models.User, error) {
	const op = "admin.CreateUser"
	if err := authorize(op, sess, view); err != nil {
		return models.User{}, err
	}
	if fe := auth.Validate(s.validate, in); fe != nil {
		return models.User{}, fe
	}

	user, err := s.gw.CreateUser(ctx, sess, gateway.RegisterRequest{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: in.Password,
		Role:     in.Role,
	})
	if err != nil {
		if apiErr, ok := gateway.AsAPIError(err); ok {
			return models.User{}, auth.FieldErrors{"email": apiErr.Detail}
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// DeleteUser удаляет пользователя по идентификатору.
func (s *Service) DeleteUser(ctx context.Context, sess *session.Session, view viewmodel.View, id string) error {
	const op = "admin.DeleteUser"
	if err := authorize(op, sess, view); err != nil {
		return err
	}
	if err := s.gw.DeleteUser(ctx, sess, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
