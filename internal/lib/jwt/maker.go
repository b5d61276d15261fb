// Package jwt реализует генерацию и парсинг JWT токенов доступа и обновления.
//
// Maker определяет интерфейс для создания и проверки токенов с субъектом
// (username) и идентификатором пользователя. MakerImpl — конкретная реализация
// с подписью HS256 и секретным ключом, передаваемым через конфигурацию,
// а не через глобальное состояние.
package jwt

import "time"

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
//
// Срок жизни задаётся на каждый вызов: короткий для access-токенов,
// длинный для refresh-токенов. Токены самодостаточны, серверная сессия
// не хранится.
type Maker interface {
	// GenerateToken создает подписанный токен для username и userID
	// со сроком жизни ttl.
	GenerateToken(username string, userID int, ttl time.Duration) (string, error)
	// ParseToken возвращает *CustomClaims, если подпись и срок действия корректны.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа.
type MakerImpl struct {
	secretKey string // Секретный ключ для подписи токенов.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа.
func NewJWTMaker(secretKey string) *MakerImpl {
	return &MakerImpl{secretKey: secretKey}
}
