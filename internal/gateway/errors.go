package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrTransport — сетевой сбой или отмена запроса: бэкенд не дал ответа.
var ErrTransport = errors.New("backend unavailable")

// APIError — ответ бэкенда с кодом вне 2xx.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Detail)
}

// AsAPIError извлекает *APIError из цепочки ошибок.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Decision — итог авторизации действия, выведенный из кода ответа.
type Decision int

const (
	// Granted — действие выполнено (2xx).
	Granted Decision = iota + 1
	// Conflict — действие уже выполнено в той же или другой роли (409, 406).
	Conflict
	// Forbidden — прочие отказы: нет прав, нет мероприятия, нет сессии.
	Forbidden
)

func (d Decision) String() string {
	switch d {
	case Granted:
		return "granted"
	case Conflict:
		return "conflict"
	case Forbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// ConflictKind уточняет причину Conflict.
type ConflictKind int

const (
	NoConflict ConflictKind = iota
	// SameRole — пользователь уже записан в этой же роли (409).
	SameRole
	// OtherRole — пользователь уже записан в противоположной роли (406).
	OtherRole
)

// AuthorizationResult отделяет интерфейс от сырых кодов ответа.
type AuthorizationResult struct {
	Decision Decision
	Conflict ConflictKind
	Status   int
	Reason   string
}

// Granted сообщает об успешном выполнении.
func (r AuthorizationResult) Granted() bool {
	return r.Decision == Granted
}

// authorize переводит исход запроса в AuthorizationResult.
// Сетевые ошибки не являются решением и возвращаются как есть.
func authorize(status int, err error) (AuthorizationResult, error) {
	if err == nil {
		return AuthorizationResult{Decision: Granted, Status: status}, nil
	}

	apiErr, ok := AsAPIError(err)
	if !ok {
		return AuthorizationResult{}, err
	}

	res := AuthorizationResult{Status: apiErr.Status, Reason: apiErr.Detail}
	switch apiErr.Status {
	case http.StatusConflict:
		res.Decision = Conflict
		res.Conflict = SameRole
	case http.StatusNotAcceptable:
		res.Decision = Conflict
		res.Conflict = OtherRole
	default:
		res.Decision = Forbidden
	}
	return res, nil
}
