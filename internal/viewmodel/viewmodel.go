// Package viewmodel описывает, какие поля и действия доступны пользователю
// в зависимости от роли. Все проверки ролей в сервисах и обработчиках идут
// через View, а не через сравнение строк.
package viewmodel

import "github.com/magabrotheeeer/denormies-frontend/internal/models"

// Action — действие, доступное в интерфейсе.
type Action string

const (
	ActionRegister    Action = "register"
	ActionVolunteer   Action = "volunteer"
	ActionRoster      Action = "roster"
	ActionManageUsers Action = "manage_users"
)

// Extension — тип расширения профиля, которое создаётся после регистрации.
type Extension int

const (
	NoExtension Extension = iota
	StudentExtension
	ParticipantExtension
)

// View — набор возможностей одной роли.
type View interface {
	Role() models.Role
	Authenticated() bool
	// Actions — действия над мероприятием и административные действия.
	Actions() []Action
	// ProfileFields — поля профиля, которые показываются пользователю.
	ProfileFields() []string
	// SignupFields — поля расширения профиля в форме регистрации.
	SignupFields() []string
	ProfileExtension() Extension
	ShowAdminLink() bool
}

var accountFields = []string{"name", "email", "phone"}

// For возвращает View для роли; неизвестная роль даёт анонимный View.
func For(r models.Role) View {
	switch r {
	case models.RoleStudent:
		return student{}
	case models.RoleParticipant:
		return participant{}
	case models.RoleOrganizer:
		return organizer{}
	case models.RoleSponsor:
		return sponsor{}
	case models.RoleAdmin:
		return admin{}
	default:
		return anonymous{}
	}
}

// Can сообщает, доступно ли действие.
func Can(v View, a Action) bool {
	for _, got := range v.Actions() {
		if got == a {
			return true
		}
	}
	return false
}

type student struct{}

func (student) Role() models.Role           { return models.RoleStudent }
func (student) Authenticated() bool         { return true }
func (student) Actions() []Action           { return []Action{ActionRegister, ActionVolunteer} }
func (student) SignupFields() []string      { return []string{"roll", "department"} }
func (student) ProfileExtension() Extension { return StudentExtension }
func (student) ShowAdminLink() bool         { return false }
func (student) ProfileFields() []string {
	return append(append([]string{}, accountFields...), "roll", "dept")
}

type participant struct{}

func (participant) Role() models.Role           { return models.RoleParticipant }
func (participant) Authenticated() bool         { return true }
func (participant) Actions() []Action           { return []Action{ActionRegister} }
func (participant) SignupFields() []string      { return []string{"university"} }
func (participant) ProfileExtension() Extension { return ParticipantExtension }
func (participant) ShowAdminLink() bool         { return false }
func (participant) ProfileFields() []string {
	return append(append([]string{}, accountFields...), "university", "accomodation", "mess")
}

type organizer struct{}

func (organizer) Role() models.Role           { return models.RoleOrganizer }
func (organizer) Authenticated() bool         { return true }
func (organizer) Actions() []Action           { return []Action{ActionRoster} }
func (organizer) SignupFields() []string      { return nil }
func (organizer) ProfileExtension() Extension { return NoExtension }
func (organizer) ShowAdminLink() bool         { return false }
func (organizer) ProfileFields() []string     { return append([]string{}, accountFields...) }

type sponsor struct{}

func (sponsor) Role() models.Role           { return models.RoleSponsor }
func (sponsor) Authenticated() bool         { return true }
func (sponsor) Actions() []Action           { return nil }
func (sponsor) SignupFields() []string      { return nil }
func (sponsor) ProfileExtension() Extension { return NoExtension }
func (sponsor) ShowAdminLink() bool         { return false }
func (sponsor) ProfileFields() []string     { return append([]string{}, accountFields...) }

type admin struct{}

func (admin) Role() models.Role           { return models.RoleAdmin }
func (admin) Authenticated() bool         { return true }
func (admin) Actions() []Action           { return []Action{ActionManageUsers} }
func (admin) SignupFields() []string      { return nil }
func (admin) ProfileExtension() Extension { return NoExtension }
func (admin) ShowAdminLink() bool         { return true }
func (admin) ProfileFields() []string     { return append([]string{}, accountFields...) }

type anonymous struct{}

func (anonymous) Role() models.Role           { return models.RoleUnknown }
func (anonymous) Authenticated() bool         { return false }
func (anonymous) Actions() []Action           { return nil }
func (anonymous) SignupFields() []string      { return nil }
func (anonymous) ProfileExtension() Extension { return NoExtension }
func (anonymous) ShowAdminLink() bool         { return false }
func (anonymous) ProfileFields() []string     { return nil }

// Nav — данные шапки сайта: вход или профиль, ссылка на админку.
type Nav struct {
	Authenticated bool        `json:"authenticated"`
	Role          models.Role `json:"role,omitempty"`
	ShowAdminLink bool        `json:"show_admin_link"`
	Actions       []Action    `json:"actions"`
}

// NavFor собирает данные шапки для View.
func NavFor(v View) Nav {
	actions := v.Actions()
	if actions == nil {
		actions = []Action{}
	}
	return Nav{
		Authenticated: v.Authenticated(),
		Role:          v.Role(),
		ShowAdminLink: v.ShowAdminLink(),
		Actions:       actions,
	}
}
