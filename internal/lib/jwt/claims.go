// Package jwt реализует генерацию и парсинг JWT токенов доступа и обновления.
//
// CustomClaims расширяет стандартные claims JWT, добавляя идентификатор
// пользователя; субъектом токена выступает username.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidClaims токен подписан корректно, но не содержит субъекта
// или идентификатора пользователя.
var ErrInvalidClaims = errors.New("token is missing subject or user id")

// CustomClaims описывает полезную нагрузку токена: sub, id и exp.
type CustomClaims struct {
	UserID               int `json:"id"` // Идентификатор пользователя
	jwt.RegisteredClaims     // Встроенные стандартные claims JWT (Subject, ExpiresAt и пр.)
}

// Username возвращает субъект токена.
func (c *CustomClaims) Username() string {
	return c.Subject
}

// GenerateToken создает JWT токен для username и userID, подписывая его
// секретным ключом. Абсолютный срок действия равен now + ttl.
func (j *MakerImpl) GenerateToken(username string, userID int, ttl time.Duration) (string, error) {
	claims := CustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит JWT токен, проверяет его подпись и срок действия,
// возвращает CustomClaims с данными, если токен корректен.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	if claims.Subject == "" || claims.UserID == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidClaims)
	}
	return claims, nil
}
