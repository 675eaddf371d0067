// Package sl содержит вспомогательные функции для работы с логгером slog.
// Основная цель — единообразно формировать структурированные поля лога
// для ошибок и обращений к бэкенду.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
// Для nil ошибки возвращается пустая строка, чтобы логирование не паниковало.
//
// Пример:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Status возвращает атрибут с HTTP статусом ответа бэкенда.
func Status(code int) slog.Attr {
	return slog.Int("status", code)
}

// Event возвращает атрибут с идентификатором мероприятия.
func Event(id string) slog.Attr {
	return slog.String("event_id", id)
}
