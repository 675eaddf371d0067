// Package events реализует страницу мероприятия: запись участником или
// волонтёром, призёров и списки для организатора.
//
// View живёт столько же, сколько просмотр страницы. Флаги isParticipant и
// isVolunteer не дают отправить повторный запрос из того же представления,
// а признак выполняющегося запроса превращает параллельные вызовы в один.
// Бэкенд остаётся источником истины: флаги лишь подавляют лишние запросы.
package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/denormies-frontend/internal/gateway"
	"github.com/magabrotheeeer/denormies-frontend/internal/models"
	"github.com/magabrotheeeer/denormies-frontend/internal/services/activity"
	"github.com/magabrotheeeer/denormies-frontend/internal/viewmodel"
)

// ErrNotAllowed — действие недоступно роли пользователя.
var ErrNotAllowed = errors.New("action is not available for this role")

// Сообщения о конфликте записи.
const (
	MsgAlreadyParticipant    = "Already registered as a participant"
	MsgRegisteredVolunteer   = "You are already registered as a volunteer"
	MsgAlreadyVolunteer      = "Already registered as a volunteer"
	MsgRegisteredParticipant = "You are already registered as a participant"
)

// Gateway — вызовы бэкенда для страницы мероприятия.
type Gateway interface {
	Events(ctx context.Context, creds gateway.Credentials) ([]models.Event, error)
	RegisterForEvent(ctx context.Context, creds gateway.Credentials, eventID string) (gateway.AuthorizationResult, error)
	Volunteer(ctx context.Context, creds gateway.Credentials, eventID string) (gateway.AuthorizationResult, error)
	Winners(ctx context.Context, creds gateway.Credentials, eventID string) ([]models.Winner, gateway.AuthorizationResult, error)
	Registrations(ctx context.Context, creds gateway.Credentials, eventID string) ([]models.Participant, gateway.AuthorizationResult, error)
	Volunteers(ctx context.Context, creds gateway.Credentials, eventID string) ([]models.Volunteer, gateway.AuthorizationResult, error)
}

// Outcome — итог нажатия кнопки записи.
type Outcome struct {
	// Sent — запрос действительно ушёл на бэкенд.
	Sent    bool                        `json:"sent"`
	Result  gateway.AuthorizationResult `json:"-"`
	Status  string                      `json:"status"`
	Message string                      `json:"message,omitempty"`
}

// Roster — списки мероприятия для организатора.
type Roster struct {
	Allowed           bool                 `json:"allowed"`
	Participants      []models.Participant `json:"participants"`
	Volunteers        []models.Volunteer   `json:"volunteers"`
	TotalParticipants int                  `json:"total_participants"`
	TotalVolunteers   int                  `json:"total_volunteers"`
}

// State — снимок флагов представления.
type State struct {
	IsParticipant bool `json:"is_participant"`
	IsVolunteer   bool `json:"is_volunteer"`
	IsOrganizer   bool `json:"is_organizer"`
}

// View — состояние одного просмотра страницы мероприятия.
type View struct {
	gw        Gateway
	creds     gateway.Credentials
	eventID   string
	role      viewmodel.View
	publisher activity.Publisher

	mu            sync.Mutex
	isParticipant bool
	isVolunteer   bool
	isOrganizer   bool
	registering   bool
	volunteering  bool
}

// NewView создаёт представление мероприятия для пользователя с ролью role.
func NewView(gw Gateway, creds gateway.Credentials, eventID string, role viewmodel.View, publisher activity.Publisher) *View {
	if publisher == nil {
		publisher = activity.Nop{}
	}
	return &View{gw: gw, creds: creds, eventID: eventID, role: role, publisher: publisher}
}

// EventID возвращает идентификатор мероприятия.
func (v *View) EventID() string { return v.eventID }

// Role возвращает роль, для которой построено представление.
func (v *View) Role() viewmodel.View { return v.role }

// State возвращает текущие флаги.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return State{IsParticipant: v.isParticipant, IsVolunteer: v.isVolunteer, IsOrganizer: v.isOrganizer}
}

// Register записывает пользователя участником. Повторный вызов из того же
// представления и вызов во время выполняющегося запроса ничего не отправляют.
// Любой ответ бэкенда выставляет флаг; сетевой сбой оставляет его сброшенным.
func (v *View) Register(ctx context.Context) (Outcome, error) {
	const op = "events.Register"
	if !viewmodel.Can(v.role, viewmodel.ActionRegister) {
		return Outcome{}, fmt.Errorf("%s: %w", op, ErrNotAllowed)
	}

	v.mu.Lock()
	if v.isParticipant || v.registering {
		v.mu.Unlock()
		return Outcome{Status: "skipped"}, nil
	}
	v.registering = true
	v.mu.Unlock()

	res, err := v.gw.RegisterForEvent(ctx, v.creds, v.eventID)

	v.mu.Lock()
	v.registering = false
	if err == nil {
		v.isParticipant = true
	}
	v.mu.Unlock()

	if err != nil {
		return Outcome{}, fmt.Errorf("%s: %w", op, err)
	}
	if res.Granted() {
		v.publisher.Publish(ctx, activity.Message{Kind: activity.EventRegistered, EventID: v.eventID, Role: v.role.Role()})
	}
	return outcome(res, MsgAlreadyParticipant, MsgRegisteredVolunteer), nil
}

// Volunteer записывает студента волонтёром. Правила флагов те же, что у Register.
func (v *View) Volunteer(ctx context.Context) (Outcome, error) {
	const op = "events.Volunteer"
	if !viewmodel.Can(v.role, viewmodel.ActionVolunteer) {
		return Outcome{}, fmt.Errorf("%s: %w", op, ErrNotAllowed)
	}

	v.mu.Lock()
	if v.isVolunteer || v.volunteering {
		v.mu.Unlock()
		return Outcome{Status: "skipped"}, nil
	}
	v.volunteering = true
	v.mu.Unlock()

	res, err := v.gw.Volunteer(ctx, v.creds, v.eventID)

	v.mu.Lock()
	v.volunteering = false
	if err == nil {
		v.isVolunteer = true
	}
	v.mu.Unlock()

	if err != nil {
		return Outcome{}, fmt.Errorf("%s: %w", op, err)
	}
	if res.Granted() {
		v.publisher.Publish(ctx, activity.Message{Kind: activity.EventVolunteered, EventID: v.eventID, Role: v.role.Role()})
	}
	return outcome(res, MsgAlreadyVolunteer, MsgRegisteredParticipant), nil
}

func outcome(res gateway.AuthorizationResult, sameRole, otherRole string) Outcome {
	out := Outcome{Sent: true, Result: res, Status: res.Decision.String()}
	switch res.Conflict {
	case gateway.SameRole:
		out.Message = sameRole
	case gateway.OtherRole:
		out.Message = otherRole
	case gateway.NoConflict:
	}
	return out
}

// LoadWinners запрашивает призёров. Успешный ответ означает, что пользователь —
// организатор; отказ сбрасывает признак организатора и ошибкой не считается.
func (v *View) LoadWinners(ctx context.Context) ([]models.Winner, error) {
	const op = "events.LoadWinners"
	winners, res, err := v.gw.Winners(ctx, v.creds, v.eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	v.mu.Lock()
	v.isOrganizer = res.Granted()
	v.mu.Unlock()

	if !res.Granted() {
		return nil, nil
	}
	if winners == nil {
		winners = []models.Winner{}
	}
	return winners, nil
}

// LoadRoster запрашивает участников и волонтёров параллельно.
// Доступно только организатору; итоги считаются по длине списков.
func (v *View) LoadRoster(ctx context.Context) (Roster, error) {
	const op = "events.LoadRoster"
	if !viewmodel.Can(v.role, viewmodel.ActionRoster) {
		return Roster{}, fmt.Errorf("%s: %w", op, ErrNotAllowed)
	}

	var (
		participants []models.Participant
		volunteers   []models.Volunteer
		partRes      gateway.AuthorizationResult
		volRes       gateway.AuthorizationResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		participants, partRes, err = v.gw.Registrations(gctx, v.creds, v.eventID)
		return err
	})
	g.Go(func() error {
		var err error
		volunteers, volRes, err = v.gw.Volunteers(gctx, v.creds, v.eventID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Roster{}, fmt.Errorf("%s: %w", op, err)
	}

	v.mu.Lock()
	v.isOrganizer = partRes.Granted()
	v.mu.Unlock()

	if !partRes.Granted() {
		return Roster{}, nil
	}
	if participants == nil {
		participants = []models.Participant{}
	}
	if !volRes.Granted() || volunteers == nil {
		volunteers = []models.Volunteer{}
	}
	return Roster{
		Allowed:           true,
		Participants:      participants,
		Volunteers:        volunteers,
		TotalParticipants: len(participants),
		TotalVolunteers:   len(volunteers),
	}, nil
}
