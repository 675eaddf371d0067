// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков.
package response

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status — статус запроса ("OK" или "Error").
// Поле Error — текст ошибки (при неуспехе).
// Поле Fields — ошибки формы по полям.
// Поле Retry — сбой связи с бэкендом, запрос можно повторить.
// Поле Redirect — куда перейти браузеру после операции.
type Response struct {
	Status   string            `json:"status"`
	Error    string            `json:"error,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
	Retry    bool              `json:"retry,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
	Data     any               `json:"data,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// OK возвращает успешный Response без данных.
func OK() Response {
	return Response{Status: StatusOK}
}

// OKWithData возвращает успешный Response с переданными данными.
func OKWithData(data any) Response {
	return Response{Status: StatusOK, Data: data}
}

// Redirect возвращает успешный Response с адресом перехода.
func Redirect(to string) Response {
	return Response{Status: StatusOK, Redirect: to}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) Response {
	return Response{Status: StatusError, Error: msg}
}

// ValidationError формирует Response с ошибками формы по полям.
func ValidationError(fields map[string]string) Response {
	return Response{Status: StatusError, Error: "validation failed", Fields: fields}
}

// Unavailable формирует ответ о недоступности бэкенда с признаком повтора.
func Unavailable() Response {
	return Response{Status: StatusError, Error: "backend unavailable, try again", Retry: true}
}

// AuthRequired формирует ответ для неаутентифицированной сессии с переходом на страницу входа.
func AuthRequired() Response {
	return Response{Status: StatusError, Error: "authentication required", Redirect: "/auth"}
}
