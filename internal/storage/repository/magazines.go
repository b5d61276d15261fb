package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/magazine-subscription/internal/models"
)

// CreateMagazine вставляет новый журнал и возвращает его ID.
func (s *Storage) CreateMagazine(ctx context.Context, m models.DummyMagazine) (int, error) {
	const op = "storage.CreateMagazine"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO magazines (name, description, base_price)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query, m.Name, m.Description, m.BasePrice).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadMagazine возвращает журнал по его ID.
func (s *Storage) ReadMagazine(ctx context.Context, id int) (*models.Magazine, error) {
	const op = "storage.ReadMagazine"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description, base_price
			  FROM magazines WHERE id = $1`
	var m models.Magazine
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.Name, &m.Description, &m.BasePrice); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrMagazineNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}

// ListMagazines возвращает все журналы каталога.
func (s *Storage) ListMagazines(ctx context.Context) ([]*models.Magazine, error) {
	const op = "storage.ListMagazines"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description, base_price
			  FROM magazines
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Magazine
	for rows.Next() {
		var m models.Magazine
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.BasePrice); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateMagazine перезаписывает данные журнала по его ID.
func (s *Storage) UpdateMagazine(ctx context.Context, id int, m models.DummyMagazine) error {
	const op = "storage.UpdateMagazine"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE magazines
			  SET name = $1, description = $2, base_price = $3
			  WHERE id = $4`
	result, err := s.DB.ExecContext(ctx, query, m.Name, m.Description, m.BasePrice, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrMagazineNotFound)
	}
	return nil
}

// RemoveMagazine удаляет журнал по его ID. Нарушение внешнего ключа
// (на журнал ссылаются подписки) переводится в models.ErrCatalogInUse.
func (s *Storage) RemoveMagazine(ctx context.Context, id int) error {
	const op = "storage.RemoveMagazine"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM magazines WHERE id = $1`
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
		return fmt.Errorf("%s: %w", op, models.ErrMagazineNotFound)
	}
	return nil
}

// CountActiveSubscriptionsByMagazine считает активные подписки на журнал.
func (s *Storage) CountActiveSubscriptionsByMagazine(ctx context.Context, magazineID int) (int, error) {
	const op = "storage.CountActiveSubscriptionsByMagazine"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*) FROM subscriptions WHERE magazine_id = $1 AND is_active`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, magazineID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
