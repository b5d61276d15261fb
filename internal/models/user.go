// Package models содержит доменные структуры сервиса подписок на журналы:
// пользователей, журналы, тарифные планы и подписки,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int    // Уникальный идентификатор пользователя
	Username     string // Имя пользователя (уникальное)
	Email        string // Электронная почта (уникальная)
	PasswordHash string // Хэш пароля пользователя
	IsActive     bool   // Флаг активности: false после деактивации (мягкое удаление)
}

// UserOut данные пользователя, возвращаемые наружу (без хэша пароля).
type UserOut struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Out конвертирует User в UserOut.
func (u *User) Out() UserOut {
	return UserOut{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}

// TokenPair пара токенов, выдаваемая при входе и обновлении.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// PasswordResetEvent событие сброса пароля, публикуемое в RabbitMQ.
// Письмо с токеном отправляет отдельный воркер notification-sender.
type PasswordResetEvent struct {
	Email      string `json:"email"`
	Username   string `json:"username"`
	ResetToken string `json:"reset_token"`
}
