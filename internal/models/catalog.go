package models

// Magazine представляет журнал из каталога.
type Magazine struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"base_price"` // Базовая цена, всегда > 0
}

// Plan представляет тарифный план подписки.
// Tier — целочисленная классификация без влияния на цену,
// RenewalPeriod — период продления в месяцах.
type Plan struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	RenewalPeriod int     `json:"renewal_period"`
	Tier          int     `json:"tier"`
	Discount      float64 `json:"discount"` // Доля скидки в диапазоне [0, 1]
}

// DummyMagazine используется для приёма данных журнала из JSON-запроса.
type DummyMagazine struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"base_price" validate:"required,gt=0"`
}

// DummyPlan используется для приёма данных тарифного плана из JSON-запроса.
type DummyPlan struct {
	Title         string  `json:"title" validate:"required"`
	Description   string  `json:"description"`
	RenewalPeriod int     `json:"renewal_period" validate:"required,gt=0"`
	Tier          int     `json:"tier" validate:"required"`
	Discount      float64 `json:"discount" validate:"gte=0,lte=1"`
}
