// Package services содержит бизнес-логику подписок: вычисление цены,
// инвариант одной активной подписки и логическое удаление.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/magazine-subscription/internal/lib/sl"
	"github.com/magabrotheeeer/magazine-subscription/internal/models"
)

// renewalDateLayout формат даты продления в JSON-запросах.
const renewalDateLayout = "2006-01-02"

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// CreateSubscription добавляет новую подписку и возвращает её ID.
	CreateSubscription(ctx context.Context, sub models.Subscription) (int, error)
	// ExistsActiveSubscription проверяет наличие активной подписки для тройки.
	ExistsActiveSubscription(ctx context.Context, userID, magazineID, planID int) (bool, error)
	// ReadSubscription возвращает подписку по ID, включая неактивные.
	ReadSubscription(ctx context.Context, id int) (*models.Subscription, error)
	// UpdateSubscription перезаписывает журнал, план, цену и дату продления.
	UpdateSubscription(ctx context.Context, id, magazineID, planID int, price float64, renewalDate time.Time) error
	// DeactivateSubscription выставляет is_active = false для владельца.
	DeactivateSubscription(ctx context.Context, id, userID int) error
	// ListSubscriptions возвращает все подписки пользователя.
	ListSubscriptions(ctx context.Context, userID int) ([]*models.Subscription, error)
}

// CatalogLookup — доступ к каталогу по ID для вычисления цены.
type CatalogLookup interface {
	GetMagazine(ctx context.Context, id int) (*models.Magazine, error)
	GetPlan(ctx context.Context, id int) (*models.Plan, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// SubscriptionService реализует бизнес-логику работы с подписками.
type SubscriptionService struct {
	repo    SubscriptionRepository
	catalog CatalogLookup
	cache   Cache
	log     *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, catalog CatalogLookup,
	cache Cache, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:    repo,
		catalog: catalog,
		cache:   cache,
		log:     log,
	}
}

// CalculatePrice вычисляет цену подписки. Функция чистая: одна и та же
// пара (base_price, discount) всегда дает один и тот же результат.
func CalculatePrice(basePrice, discount float64) float64 {
	return basePrice * (1 - discount)
}

// Create создает новую активную подписку для пользователя.
//
// Порядок проверок: дубликат активной подписки, существование журнала
// и плана, положительность вычисленной цены. Предварительная проверка
// дубликата не атомарна, гонку закрывает частичный уникальный индекс
// в хранилище.
func (s *SubscriptionService) Create(ctx context.Context, userID int, req models.DummySubscription) (*models.Subscription, error) {
	exists, err := s.repo.ExistsActiveSubscription(ctx, userID, req.MagazineID, req.PlanID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.ErrSubscriptionExists
	}

	magazine, err := s.catalog.GetMagazine(ctx, req.MagazineID)
	if err != nil {
		return nil, err
	}
	plan, err := s.catalog.GetPlan(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}

	price := CalculatePrice(magazine.BasePrice, plan.Discount)
	if price <= 0 {
		return nil, models.ErrInvalidPrice
	}

	renewalDate, err := time.Parse(renewalDateLayout, req.RenewalDate)
	if err != nil {
		return nil, fmt.Errorf("invalid renewal date: %w", err)
	}

	entry := models.Subscription{
		UserID:      userID,
		MagazineID:  req.MagazineID,
		PlanID:      req.PlanID,
		Price:       price,
		RenewalDate: renewalDate,
		IsActive:    true,
	}
	id, err := s.repo.CreateSubscription(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	s.log.Info("created new subscription", slog.Int("id", id), slog.Float64("price", price))

	cacheKey := fmt.Sprintf("subscription:%d", id)
	if err := s.cache.Set(cacheKey, entry, time.Hour); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", cacheKey), sl.Err(err))
	}

	return &entry, nil
}

// Update заново разрешает журнал и план, пересчитывает цену
// и перезаписывает поля подписки.
//
// Инвариант уникальности и принадлежность вызывающему здесь не
// перепроверяются, поведение унаследовано от исходной системы;
// разрыв зафиксирован в DESIGN.md.
func (s *SubscriptionService) Update(ctx context.Context, id int, req models.DummySubscription) (*models.Subscription, error) {
	magazine, err := s.catalog.GetMagazine(ctx, req.MagazineID)
	if err != nil {
		return nil, err
	}
	plan, err := s.catalog.GetPlan(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}

	price := CalculatePrice(magazine.BasePrice, plan.Discount)
	if price <= 0 {
		return nil, models.ErrInvalidPrice
	}

	renewalDate, err := time.Parse(renewalDateLayout, req.RenewalDate)
	if err != nil {
		return nil, fmt.Errorf("invalid renewal date: %w", err)
	}

	if err := s.repo.UpdateSubscription(ctx, id, req.MagazineID, req.PlanID, price, renewalDate); err != nil {
		return nil, err
	}
	updated, err := s.repo.ReadSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated subscription", slog.Int("id", id))

	cacheKey := fmt.Sprintf("subscription:%d", id)
	if err := s.cache.Set(cacheKey, updated, time.Hour); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", cacheKey), sl.Err(err))
	}
	return updated, nil
}

// Deactivate логически удаляет подписку: is_active = false, строка
// остается для истории. Разрешено только владельцу; чужая или
// отсутствующая подписка выглядит одинаково — models.ErrSubscriptionNotFound.
func (s *SubscriptionService) Deactivate(ctx context.Context, id, callerUserID int) (*models.Subscription, error) {
	if err := s.repo.DeactivateSubscription(ctx, id, callerUserID); err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("subscription:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), sl.Err(err))
	}

	result, err := s.repo.ReadSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info("deactivated subscription", slog.Int("id", id))
	return result, nil
}

// Read возвращает подписку по ID, используя кеш или репозиторий.
// Неактивные подписки не фильтруются.
func (s *SubscriptionService) Read(ctx context.Context, id int) (*models.Subscription, error) {
	var result *models.Subscription
	cacheKey := fmt.Sprintf("subscription:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return result, nil
	}
	result, err = s.repo.ReadSubscription(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// List возвращает все подписки пользователя, включая неактивные.
func (s *SubscriptionService) List(ctx context.Context, userID int) ([]*models.Subscription, error) {
	return s.repo.ListSubscriptions(ctx, userID)
}
