// Package profile собирает профиль пользователя: учётную запись и
// ролевое расширение.
package profile

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/denormies-frontend/internal/gateway"
	"github.com/magabrotheeeer/denormies-frontend/internal/models"
	"github.com/magabrotheeeer/denormies-frontend/internal/session"
	"github.com/magabrotheeeer/denormies-frontend/internal/viewmodel"
)

// Gateway — вызовы бэкенда для профиля.
type Gateway interface {
	Me(ctx context.Context, creds gateway.Credentials) (models.User, error)
	Student(ctx context.Context, creds gateway.Credentials) (models.StudentProfile, error)
	Participant(ctx context.Context, creds gateway.Credentials) (models.ParticipantProfile, error)
}

// Service отдаёт профиль.
type Service struct {
	gw Gateway
}

// New создаёт Service.
func New(gw Gateway) *Service {
	return &Service{gw: gw}
}

// Me возвращает объединённый профиль и представление роли владельца.
// Роль берётся из ответа /users/me.
func (s *Service) Me(ctx context.Context, sess *session.Session) (models.Profile, viewmodel.View, error) {
	const op = "profile.Me"
	anonymous := viewmodel.For(models.RoleUnknown)
	if !sess.Authenticated() {
		return models.Profile{}, anonymous, fmt.Errorf("%s: %w", op, session.ErrUnauthenticated)
	}

	user, err := s.gw.Me(ctx, sess)
	if err != nil {
		return models.Profile{}, anonymous, fmt.Errorf("%s: %w", op, err)
	}
	view := viewmodel.For(user.Role)
	p := models.Profile{User: user}

	switch view.ProfileExtension() {
	case viewmodel.StudentExtension:
		ext, err := s.gw.Student(ctx, sess)
		if err != nil {
			return p, view, fmt.Errorf("%s: %w", op, err)
		}
		p.Student = &ext
	case viewmodel.ParticipantExtension:
		ext, err := s.gw.Participant(ctx, sess)
		if err != nil {
			return p, view, fmt.Errorf("%s: %w", op, err)
		}
		p.Participant = &ext
	case viewmodel.NoExtension:
	}
	return p, view, nil
}
