package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/magazine-subscription/internal/models"
)

// CreatePlan вставляет новый тарифный план и возвращает его ID.
func (s *Storage) CreatePlan(ctx context.Context, p models.DummyPlan) (int, error) {
	const op = "storage.CreatePlan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO plans (title, description, renewal_period, tier, discount)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query,
		p.Title, p.Description, p.RenewalPeriod, p.Tier, p.Discount).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadPlan возвращает тарифный план по его ID.
func (s *Storage) ReadPlan(ctx context.Context, id int) (*models.Plan, error) {
	const op = "storage.ReadPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, renewal_period, tier, discount
			  FROM plans WHERE id = $1`
	var p models.Plan
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Description, &p.RenewalPeriod, &p.Tier, &p.Discount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrPlanNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// ListPlans возвращает все тарифные планы.
func (s *Storage) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	const op = "storage.ListPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, renewal_period, tier, discount
			  FROM plans
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Plan
	for rows.Next() {
		var p models.Plan
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.RenewalPeriod, &p.Tier, &p.Discount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdatePlan перезаписывает данные тарифного плана по его ID.
func (s *Storage) UpdatePlan(ctx context.Context, id int, p models.DummyPlan) error {
	const op = "storage.UpdatePlan"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE plans
			  SET title = $1, description = $2, renewal_period = $3, tier = $4, discount = $5
			  WHERE id = $6`
	result, err := s.DB.ExecContext(ctx, query,
		p.Title, p.Description, p.RenewalPeriod, p.Tier, p.Discount, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrPlanNotFound)
	}
	return nil
}

// RemovePlan удаляет тарифный план по его ID.
func (s *Storage) RemovePlan(ctx context.Context, id int) error {
	const op = "storage.RemovePlan"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM plans WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return fmt.Errorf("%s: %w", op, models.ErrCatalogInUse)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrPlanNotFound)
	}
	return nil
}

// CountActiveSubscriptionsByPlan считает активные подписки на тарифный план.
func (s *Storage) CountActiveSubscriptionsByPlan(ctx context.Context, planID int) (int, error) {
	const op = "storage.CountActiveSubscriptionsByPlan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*) FROM subscriptions WHERE plan_id = $1 AND is_active`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, planID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
