package models

// Event — мероприятие; с точки зрения клиента неизменяемо.
type Event struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Date     string `json:"date"`
	Duration string `json:"duration,omitempty"`
	Venue    string `json:"venue"`
	Type     string `json:"type"`
	Desc     string `json:"desc"`
}

// Winner — призовое место мероприятия.
type Winner struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
	Prize    string `json:"prize"`
}

// Volunteer — строка списка волонтёров мероприятия.
type Volunteer struct {
	Name string `json:"name"`
	Roll string `json:"roll"`
	Dept string `json:"dept"`
}

// Participant — строка списка зарегистрированных участников мероприятия.
type Participant struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ScheduleEntry — мероприятие в расписании дня.
type ScheduleEntry struct {
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	Venue     string `json:"venue"`
}
