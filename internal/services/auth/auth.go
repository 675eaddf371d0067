// Package auth реализует сценарии регистрации, входа, выхода
// и удаления учётной записи.
//
// Регистрация проходит конвейер: проверка формы → POST /auth/register →
// сохранение токена в сессии → создание ролевого расширения профиля →
// переход на главную страницу. Каждый этап отражается в Result.States.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/denormies-frontend/internal/gateway"
	"github.com/magabrotheeeer/denormies-frontend/internal/lib/sl"
	"github.com/magabrotheeeer/denormies-frontend/internal/models"
	"github.com/magabrotheeeer/denormies-frontend/internal/services/activity"
	"github.com/magabrotheeeer/denormies-frontend/internal/session"
	"github.com/magabrotheeeer/denormies-frontend/internal/viewmodel"
)

// State — этап сценария регистрации или входа.
type State int

const (
	Idle State = iota
	Submitting
	Failed
	Succeeded
	ProfileCompletionPending
	ProfileCompletionDone
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Failed:
		return "failed"
	case Succeeded:
		return "succeeded"
	case ProfileCompletionPending:
		return "profile_completion_pending"
	case ProfileCompletionDone:
		return "profile_completion_done"
	default:
		return "unknown"
	}
}

const (
	// HomePath — куда браузер переходит после входа, регистрации и выхода.
	HomePath = "/"
	// AuthPath — страница входа; на неё переходят после удаления учётной записи.
	AuthPath = "/auth"
)

// Gateway — вызовы бэкенда, которые нужны сценариям.
type Gateway interface {
	Register(ctx context.Context, req gateway.RegisterRequest) (string, error)
	Login(ctx context.Context, req gateway.LoginRequest) (string, error)
	CreateStudent(ctx context.Context, creds gateway.Credentials, p models.StudentProfile) error
	CreateParticipant(ctx context.Context, creds gateway.Credentials, p models.ParticipantProfile) error
	DeleteMe(ctx context.Context, creds gateway.Credentials) error
}

// RegisterInput — форма регистрации.
type RegisterInput struct {
	Name            string      `json:"name" validate:"required,min=2"`
	Email           string      `json:"email" validate:"required,email"`
	Phone           string      `json:"phone" validate:"omitempty,len=10"`
	Password        string      `json:"password" validate:"required,min=4"`
	ConfirmPassword string      `json:"confirm_password" validate:"omitempty,eqfield=Password"`
	Role            models.Role `json:"role" validate:"required,oneof=student participant organizer sponsor"`
	Roll            string      `json:"roll"`
	Department      string      `json:"department"`
	University      string      `json:"university"`
}

// Extension — поля ролевого расширения профиля из формы регистрации.
type Extension struct {
	Roll       string
	Department string
	University string
}

// LoginInput — форма входа.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

// Result — итог сценария.
type Result struct {
	States   []State
	Redirect string
	// ProfileErr — ошибка создания расширения профиля. Учётная запись при этом
	// уже создана и не откатывается.
	ProfileErr error
}

// Last возвращает последний достигнутый этап.
func (r Result) Last() State {
	if len(r.States) == 0 {
		return Idle
	}
	return r.States[len(r.States)-1]
}

func (r *Result) enter(s State) {
	r.States = append(r.States, s)
}

// Service выполняет сценарии учётной записи.
type Service struct {
	log       *slog.Logger
	gw        Gateway
	validate  *validator.Validate
	publisher activity.Publisher
}

// New создаёт Service. publisher может быть nil.
func New(log *slog.Logger, gw Gateway, publisher activity.Publisher) *Service {
	if publisher == nil {
		publisher = activity.Nop{}
	}
	return &Service{
		log:       log,
		gw:        gw,
		validate:  NewValidator(),
		publisher: publisher,
	}
}

// Register создаёт учётную запись, сохраняет токен и создаёт расширение профиля.
//
// Ошибки формы и ответ бэкенда с кодом вне 2xx возвращаются как FieldErrors;
// в этом случае сессия не меняется. Сбой сети возвращается как gateway.ErrTransport.
func (s *Service) Register(ctx context.Context, sess *session.Session, in RegisterInput) (Result, error) {
	const op = "auth.Register"
	res := Result{States: []State{Idle}}

	if fe := Validate(s.validate, in); fe != nil {
		res.enter(Failed)
		return res, fe
	}

	res.enter(Submitting)
	token, err := s.gw.Register(ctx, gateway.RegisterRequest{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: in.Password,
		Role:     in.Role,
	})
	if err != nil {
		res.enter(Failed)
		return res, s.requestError(op, err)
	}

	if err := sess.SetToken(ctx, token); err != nil {
		res.enter(Failed)
		return res, fmt.Errorf("%s: %w", op, err)
	}
	res.enter(Succeeded)
	s.publisher.Publish(ctx, activity.Message{Kind: activity.AccountRegistered, Email: in.Email, Role: in.Role})

	done := s.CompleteProfile(ctx, sess, in.Role, Extension{
		Roll:       in.Roll,
		Department: in.Department,
		University: in.University,
	})
	res.States = append(res.States, done.States...)
	res.Redirect = done.Redirect
	res.ProfileErr = done.ProfileErr
	return res, nil
}

// CompleteProfile создаёт ролевое расширение профиля для только что
// зарегистрированного пользователя. Переход на главную выполняется в любом случае.
func (s *Service) CompleteProfile(ctx context.Context, sess *session.Session, role models.Role, ext Extension) Result {
	const op = "auth.CompleteProfile"
	res := Result{States: []State{ProfileCompletionPending}}

	var err error
	switch viewmodel.For(role).ProfileExtension() {
	case viewmodel.StudentExtension:
		err = s.gw.CreateStudent(ctx, sess, models.StudentProfile{Roll: ext.Roll, Department: ext.Department})
	case viewmodel.ParticipantExtension:
		err = s.gw.CreateParticipant(ctx, sess, models.ParticipantProfile{University: ext.University})
	case viewmodel.NoExtension:
	}
	if err != nil {
		s.log.Error("failed to complete profile",
			slog.String("op", op),
			slog.String("role", role.String()),
			sl.Err(err),
		)
		res.ProfileErr = fmt.Errorf("%s: %w", op, err)
	}

	res.enter(ProfileCompletionDone)
	res.Redirect = HomePath
	return res
}

// Login аутентифицирует пользователя и сохраняет токен в сессии.
// При отказе бэкенда сессия не меняется, а detail ответа становится ошибкой поля email.
func (s *Service) Login(ctx context.Context, sess *session.Session, in LoginInput) (Result, error) {
	const op = "auth.Login"
	res := Result{States: []State{Idle}}

	if fe := Validate(s.validate, in); fe != nil {
		res.enter(Failed)
		return res, fe
	}

	res.enter(Submitting)
	token, err := s.gw.Login(ctx, gateway.LoginRequest{Email: in.Email, Password: in.Password})
	if err != nil {
		res.enter(Failed)
		return res, s.requestError(op, err)
	}

	if err := sess.SetToken(ctx, token); err != nil {
		res.enter(Failed)
		return res, fmt.Errorf("%s: %w", op, err)
	}
	res.enter(Succeeded)
	res.Redirect = HomePath
	return res, nil
}

// Logout очищает сессию.
func (s *Service) Logout(ctx context.Context, sess *session.Session) (Result, error) {
	const op = "auth.Logout"
	if err := sess.Clear(ctx); err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}
	return Result{Redirect: HomePath}, nil
}

// DeleteAccount удаляет учётную запись текущего пользователя и очищает сессию.
func (s *Service) DeleteAccount(ctx context.Context, sess *session.Session) (Result, error) {
	const op = "auth.DeleteAccount"
	if !sess.Authenticated() {
		return Result{}, fmt.Errorf("%s: %w", op, session.ErrUnauthenticated)
	}
	if err := s.gw.DeleteMe(ctx, sess); err != nil {
		if gateway.IsTransport(err) {
			s.log.Error("backend unavailable", slog.String("op", op), sl.Err(err))
		}
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := sess.Clear(ctx); err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}
	return Result{Redirect: AuthPath}, nil
}

// requestError переводит отказ бэкенда в ошибку поля email.
func (s *Service) requestError(op string, err error) error {
	if apiErr, ok := gateway.AsAPIError(err); ok {
		return FieldErrors{"email": apiErr.Detail}
	}
	if errors.Is(err, gateway.ErrTransport) {
		s.log.Error("backend unavailable", slog.String("op", op), sl.Err(err))
	}
	return fmt.Errorf("%s: %w", op, err)
}
