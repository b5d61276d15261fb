package models

import "time"

// Subscription связывает пользователя, журнал и тарифный план.
// Цена вычисляется при создании и обновлении: base_price * (1 - discount).
// Удаление всегда логическое: IsActive переводится в false, строка остаётся.
type Subscription struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	MagazineID  int       `json:"magazine_id"`
	PlanID      int       `json:"plan_id"`
	Price       float64   `json:"price"`
	RenewalDate time.Time `json:"renewal_date"`
	IsActive    bool      `json:"is_active"`
}

// DummySubscription используется для приёма данных подписки из JSON-запроса.
// Дата продления приходит строкой в формате 2006-01-02.
type DummySubscription struct {
	MagazineID  int    `json:"magazine_id" validate:"required"`
	PlanID      int    `json:"plan_id" validate:"required"`
	RenewalDate string `json:"renewal_date" validate:"required,datetime=2006-01-02"`
}
