// Package models содержит доменные модели фронтенд-сервиса: пользователя,
// его роль и ролевые расширения профиля. Структуры повторяют формат
// ответов REST API бэкенда.
package models

// Role — метка роли пользователя из фиксированного набора.
// Нулевое значение означает, что роль не определена (пользователь не аутентифицирован).
type Role string

const (
	RoleUnknown     Role = ""
	RoleStudent     Role = "student"
	RoleParticipant Role = "participant"
	RoleOrganizer   Role = "organizer"
	RoleSponsor     Role = "sponsor"
	RoleAdmin       Role = "admin"
)

// Roles возвращает все известные роли в порядке отображения.
func Roles() []Role {
	return []Role{RoleStudent, RoleParticipant, RoleOrganizer, RoleSponsor, RoleAdmin}
}

// ParseRole приводит строку бэкенда к Role; неизвестные значения дают RoleUnknown.
func ParseRole(s string) Role {
	for _, r := range Roles() {
		if string(r) == s {
			return r
		}
	}
	return RoleUnknown
}

// Valid сообщает, принадлежит ли роль закрытому набору.
func (r Role) Valid() bool {
	return ParseRole(string(r)) != RoleUnknown
}

func (r Role) String() string {
	return string(r)
}

// User представляет учётную запись пользователя в том виде, в каком её отдаёт /users/me.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  Role   `json:"role"`
}

// AdminUser — строка списка пользователей в административном разделе.
type AdminUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  Role   `json:"role"`
}

// StudentProfile — расширение профиля студента.
type StudentProfile struct {
	Roll       string `json:"roll"`
	Department string `json:"dept"`
}

// ParticipantProfile — расширение профиля внешнего участника.
type ParticipantProfile struct {
	University   string `json:"university"`
	Accomodation string `json:"accomodation,omitempty"`
	Mess         string `json:"mess,omitempty"`
}

// Profile — объединённый профиль: данные учётной записи и ролевое расширение.
// У организаторов, спонсоров и администраторов расширения нет.
type Profile struct {
	User
	Student     *StudentProfile     `json:"student,omitempty"`
	Participant *ParticipantProfile `json:"participant,omitempty"`
}
