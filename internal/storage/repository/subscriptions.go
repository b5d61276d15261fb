package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/magazine-subscription/internal/models"
)

// CreateSubscription вставляет новую подписку и возвращает её ID.
// Нарушение частичного уникального индекса по активной тройке
// (user_id, magazine_id, plan_id) переводится в models.ErrSubscriptionExists:
// индекс закрывает гонку между предварительной проверкой и вставкой.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (int, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_id, magazine_id, plan_id, price, renewal_date, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		sub.UserID, sub.MagazineID, sub.PlanID, sub.Price, sub.RenewalDate, sub.IsActive).Scan(&newID)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return 0, fmt.Errorf("%s: %w", op, models.ErrSubscriptionExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ExistsActiveSubscription проверяет наличие активной подписки
// для тройки (user_id, magazine_id, plan_id).
func (s *Storage) ExistsActiveSubscription(ctx context.Context, userID, magazineID, planID int) (bool, error) {
	const op = "storage.ExistsActiveSubscription"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (
				  SELECT 1 FROM subscriptions
			      WHERE user_id = $1 AND magazine_id = $2 AND plan_id = $3 AND is_active
			  )`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, userID, magazineID, planID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// ReadSubscription возвращает подписку по её ID, включая неактивные.
func (s *Storage) ReadSubscription(ctx context.Context, id int) (*models.Subscription, error) {
	const op = "storage.ReadSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, magazine_id, plan_id, price, renewal_date, is_active
			  FROM subscriptions WHERE id = $1`
	var sub models.Subscription
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&sub.ID, &sub.UserID, &sub.MagazineID,
		&sub.PlanID, &sub.Price, &sub.RenewalDate, &sub.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrSubscriptionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sub, nil
}

// UpdateSubscription перезаписывает журнал, план, цену и дату продления подписки.
func (s *Storage) UpdateSubscription(ctx context.Context, id, magazineID, planID int,
	price float64, renewalDate time.Time) error {
	const op = "storage.UpdateSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET magazine_id = $1, plan_id = $2, price = $3, renewal_date = $4
			  WHERE id = $5`
	result, err := s.DB.ExecContext(ctx, query, magazineID, planID, price, renewalDate, id)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return fmt.Errorf("%s: %w", op, models.ErrSubscriptionExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrSubscriptionNotFound)
	}
	return nil
}

// DeactivateSubscription выставляет is_active = false, но только если
// подписка принадлежит userID. Строка сохраняется для истории.
func (s *Storage) DeactivateSubscription(ctx context.Context, id, userID int) error {
	const op = "storage.DeactivateSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET is_active = false
			  WHERE id = $1 AND user_id = $2`
	result, err := s.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrSubscriptionNotFound)
	}
	return nil
}

// ListSubscriptions возвращает все подписки пользователя,
// включая неактивные (история сохраняется).
func (s *Storage) ListSubscriptions(ctx context.Context, userID int) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, magazine_id, plan_id, price, renewal_date, is_active
			  FROM subscriptions
			  WHERE user_id = $1
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Subscription
	for rows.Next() {
		var item models.Subscription
		if err := rows.Scan(&item.ID, &item.UserID, &item.MagazineID, &item.PlanID,
			&item.Price, &item.RenewalDate, &item.IsActive); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
