package events

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/denormies-frontend/internal/gateway"
	"github.com/magabrotheeeer/denormies-frontend/internal/models"
	"github.com/magabrotheeeer/denormies-frontend/internal/services/activity"
	"github.com/magabrotheeeer/denormies-frontend/internal/session"
	"github.com/magabrotheeeer/denormies-frontend/internal/viewmodel"
)

// Roles определяет View пользователя.
type Roles interface {
	For(ctx context.Context, creds gateway.Credentials) (viewmodel.View, error)
}

// Detail — данные страницы мероприятия.
type Detail struct {
	EventID string             `json:"event_id"`
	Actions []viewmodel.Action `json:"actions"`
	State   State              `json:"state"`
	Winners []models.Winner    `json:"winners,omitempty"`
	Roster  *Roster            `json:"roster,omitempty"`
}

// Pages связывает HTTP-запросы браузера с представлениями из Registry.
// Открытие страницы создаёт новое представление; нажатия кнопок
// обращаются к нему, пока оно не истекло.
type Pages struct {
	gw        Gateway
	roles     Roles
	registry  *Registry
	publisher activity.Publisher
}

// NewPages создаёт Pages. publisher может быть nil.
func NewPages(gw Gateway, roles Roles, registry *Registry, publisher activity.Publisher) *Pages {
	return &Pages{gw: gw, roles: roles, registry: registry, publisher: publisher}
}

// Open начинает новый просмотр страницы eventID.
func (p *Pages) Open(ctx context.Context, sess *session.Session, eventID string) (Detail, error) {
	const op = "events.Open"
	role, err := p.roles.For(ctx, sess)
	if err != nil {
		return Detail{}, fmt.Errorf("%s: %w", op, err)
	}

	v := NewView(p.gw, sess, eventID, role, p.publisher)
	p.registry.Put(sess, eventID, v)

	d := Detail{EventID: eventID, Actions: role.Actions()}
	if d.Actions == nil {
		d.Actions = []viewmodel.Action{}
	}

	if d.Winners, err = v.LoadWinners(ctx); err != nil {
		return Detail{}, fmt.Errorf("%s: %w", op, err)
	}
	if viewmodel.Can(role, viewmodel.ActionRoster) {
		roster, err := v.LoadRoster(ctx)
		if err != nil {
			return Detail{}, fmt.Errorf("%s: %w", op, err)
		}
		d.Roster = &roster
	}
	d.State = v.State()
	return d, nil
}

// Register записывает пользователя участником через текущее представление.
func (p *Pages) Register(ctx context.Context, sess *session.Session, eventID string) (Outcome, error) {
	const op = "events.Pages.Register"
	v, err := p.view(ctx, sess, eventID)
	if err != nil {
		return Outcome{}, fmt.Errorf("%s: %w", op, err)
	}
	return v.Register(ctx)
}

// Volunteer записывает пользователя волонтёром через текущее представление.
func (p *Pages) Volunteer(ctx context.Context, sess *session.Session, eventID string) (Outcome, error) {
	const op = "events.Pages.Volunteer"
	v, err := p.view(ctx, sess, eventID)
	if err != nil {
		return Outcome{}, fmt.Errorf("%s: %w", op, err)
	}
	return v.Volunteer(ctx)
}

// view возвращает представление из Registry или открывает новое,
// если страница не открывалась или представление истекло. Из одновременно
// созданных представлений в Registry остаётся первое, его получают все вызовы.
func (p *Pages) view(ctx context.Context, sess *session.Session, eventID string) (*View, error) {
	if !sess.Authenticated() {
		return nil, session.ErrUnauthenticated
	}
	if v, ok := p.registry.Lookup(sess, eventID); ok {
		return v, nil
	}
	role, err := p.roles.For(ctx, sess)
	if err != nil {
		return nil, err
	}
	v, _ := p.registry.LoadOrStore(sess, eventID, NewView(p.gw, sess, eventID, role, p.publisher))
	return v, nil
}
