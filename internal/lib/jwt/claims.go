package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "denormies-frontend"

var errNoSubject = errors.New("session id is missing")

// GenerateToken создает JWT с идентификатором сессии в subject, подписывая его секретным ключом.
func (j *MakerImpl) GenerateToken(sessionID string) (string, error) {
	const op = "jwt.GenerateToken"
	if sessionID == "" {
		return "", fmt.Errorf("%s: %w", op, errNoSubject)
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит JWT, проверяет подпись, алгоритм и срок действия,
// возвращает идентификатор сессии.
func (j *MakerImpl) ParseToken(tokenStr string) (string, error) {
	const op = "jwt.ParseToken"
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !token.Valid {
		return "", fmt.Errorf("%s: invalid token", op)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%s: %w", op, errNoSubject)
	}
	return claims.Subject, nil
}
