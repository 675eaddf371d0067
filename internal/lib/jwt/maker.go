// Package jwt реализует подпись и проверку cookie сессии в виде JWT.
//
// В токене хранится только идентификатор сессии (subject). Токен бэкенда
// в cookie не попадает и остаётся в хранилище сессий.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для выпуска и разбора cookie сессии.
type Maker interface {
	// GenerateToken подписывает идентификатор сессии.
	GenerateToken(sessionID string) (string, error)
	// ParseToken проверяет подпись и срок действия и возвращает идентификатор сессии.
	ParseToken(tokenStr string) (string, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
