package models

import "errors"

// Доменные ошибки сервиса. Обработчики переводят их в HTTP-статусы
// через errors.Is, слои хранилища и сервисов возвращают их обёрнутыми.
var (
	// ErrUserExists пользователь с таким username или email уже зарегистрирован.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserDisabled учётная запись деактивирована.
	ErrUserDisabled = errors.New("user is inactive")
	// ErrInvalidCredentials неверная пара username/password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken токен не прошёл проверку подписи, срока или полей.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMagazineNotFound журнал не найден в каталоге.
	ErrMagazineNotFound = errors.New("magazine not found")
	// ErrPlanNotFound тарифный план не найден в каталоге.
	ErrPlanNotFound = errors.New("plan not found")
	// ErrCatalogInUse на журнал или план ссылаются активные подписки.
	ErrCatalogInUse = errors.New("referenced by active subscriptions")

	// ErrSubscriptionNotFound подписка не найдена.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrSubscriptionExists активная подписка на эту пару журнал+план уже есть.
	ErrSubscriptionExists = errors.New("active subscription already exists")
	// ErrInvalidPrice вычисленная цена не положительная (скидка >= 1).
	ErrInvalidPrice = errors.New("price must be greater than zero")
)
