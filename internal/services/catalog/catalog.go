// Package services содержит бизнес-логику каталога: журналы и тарифные планы.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/magazine-subscription/internal/lib/sl"
	"github.com/magabrotheeeer/magazine-subscription/internal/models"
)

// CatalogRepository определяет методы для работы с каталогом в хранилище.
type CatalogRepository interface {
	CreateMagazine(ctx context.Context, m models.DummyMagazine) (int, error)
	ReadMagazine(ctx context.Context, id int) (*models.Magazine, error)
	ListMagazines(ctx context.Context) ([]*models.Magazine, error)
	UpdateMagazine(ctx context.Context, id int, m models.DummyMagazine) error
	RemoveMagazine(ctx context.Context, id int) error
	CountActiveSubscriptionsByMagazine(ctx context.Context, magazineID int) (int, error)

	CreatePlan(ctx context.Context, p models.DummyPlan) (int, error)
	ReadPlan(ctx context.Context, id int) (*models.Plan, error)
	ListPlans(ctx context.Context) ([]*models.Plan, error)
	UpdatePlan(ctx context.Context, id int, p models.DummyPlan) error
	RemovePlan(ctx context.Context, id int) error
	CountActiveSubscriptionsByPlan(ctx context.Context, planID int) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// CatalogService реализует CRUD каталога с read-through кешированием
// справочных записей по ID.
type CatalogService struct {
	repo  CatalogRepository
	cache Cache
	log   *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo CatalogRepository, cache Cache, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// CreateMagazine добавляет журнал в каталог и возвращает созданную запись.
func (s *CatalogService) CreateMagazine(ctx context.Context, req models.DummyMagazine) (*models.Magazine, error) {
	id, err := s.repo.CreateMagazine(ctx, req)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new magazine", slog.Int("id", id))
	return &models.Magazine{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
	}, nil
}

// GetMagazine возвращает журнал по ID, используя кеш или репозиторий.
func (s *CatalogService) GetMagazine(ctx context.Context, id int) (*models.Magazine, error) {
	cacheKey := fmt.Sprintf("magazine:%d", id)
	var cached *models.Magazine
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	result, err := s.repo.ReadMagazine(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache magazine", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// ListMagazines возвращает все журналы каталога.
func (s *CatalogService) ListMagazines(ctx context.Context) ([]*models.Magazine, error) {
	return s.repo.ListMagazines(ctx)
}

// UpdateMagazine перезаписывает данные журнала и обновляет кеш.
func (s *CatalogService) UpdateMagazine(ctx context.Context, id int, req models.DummyMagazine) (*models.Magazine, error) {
	if err := s.repo.UpdateMagazine(ctx, id, req); err != nil {
		return nil, err
	}
	updated := &models.Magazine{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
	}
	cacheKey := fmt.Sprintf("magazine:%d", id)
	if err := s.cache.Set(cacheKey, updated, time.Hour); err != nil {
		s.log.Warn("failed to cache magazine", slog.String("key", cacheKey), sl.Err(err))
	}
	return updated, nil
}

// RemoveMagazine удаляет журнал. Удаление запрещено, пока на журнал
// ссылаются активные подписки: возвращается models.ErrCatalogInUse.
func (s *CatalogService) RemoveMagazine(ctx context.Context, id int) error {
	count, err := s.repo.CountActiveSubscriptionsByMagazine(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return models.ErrCatalogInUse
	}
	if err := s.repo.RemoveMagazine(ctx, id); err != nil {
		return err
	}
	cacheKey := fmt.Sprintf("magazine:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), sl.Err(err))
	}
	s.log.Info("removed magazine", slog.Int("id", id))
	return nil
}

// CreatePlan добавляет тарифный план и возвращает созданную запись.
func (s *CatalogService) CreatePlan(ctx context.Context, req models.DummyPlan) (*models.Plan, error) {
	id, err := s.repo.CreatePlan(ctx, req)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new plan", slog.Int("id", id))
	return &models.Plan{
		ID:            id,
		Title:         req.Title,
		Description:   req.Description,
		RenewalPeriod: req.RenewalPeriod,
		Tier:          req.Tier,
		Discount:      req.Discount,
	}, nil
}

// GetPlan возвращает тарифный план по ID, используя кеш или репозиторий.
func (s *CatalogService) GetPlan(ctx context.Context, id int) (*models.Plan, error) {
	cacheKey := fmt.Sprintf("plan:%d", id)
	var cached *models.Plan
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	result, err := s.repo.ReadPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache plan", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// ListPlans возвращает все тарифные планы.
func (s *CatalogService) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	return s.repo.ListPlans(ctx)
}

// UpdatePlan перезаписывает данные тарифного плана и обновляет кеш.
func (s *CatalogService) UpdatePlan(ctx context.Context, id int, req models.DummyPlan) (*models.Plan, error) {
	if err := s.repo.UpdatePlan(ctx, id, req); err != nil {
		return nil, err
	}
	updated := &models.Plan{
		ID:            id,
		Title:         req.Title,
		Description:   req.Description,
		RenewalPeriod: req.RenewalPeriod,
		Tier:          req.Tier,
		Discount:      req.Discount,
	}
	cacheKey := fmt.Sprintf("plan:%d", id)
	if err := s.cache.Set(cacheKey, updated, time.Hour); err != nil {
		s.log.Warn("failed to cache plan", slog.String("key", cacheKey), sl.Err(err))
	}
	return updated, nil
}

// RemovePlan удаляет тарифный план с той же защитой, что и RemoveMagazine.
func (s *CatalogService) RemovePlan(ctx context.Context, id int) error {
	count, err := s.repo.CountActiveSubscriptionsByPlan(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return models.ErrCatalogInUse
	}
	if err := s.repo.RemovePlan(ctx, id); err != nil {
		return err
	}
	cacheKey := fmt.Sprintf("plan:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), sl.Err(err))
	}
	s.log.Info("removed plan", slog.Int("id", id))
	return nil
}
