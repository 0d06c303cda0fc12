package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/auto-catalog/internal/models"
)

// GetSubscription возвращает подписку пользователя, первую по id.
// Схема уникальность не гарантирует, поиск ведётся по первому совпадению.
func (s *Storage) GetSubscription(ctx context.Context, userID int64) (*models.Subscription, error) {
	const op = "storage.GetSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, sub_start, sub_end, period_months, status
			  FROM premium_users
			  WHERE user_id = $1
			  ORDER BY id
			  LIMIT 1`
	var result models.Subscription
	err := s.DB.QueryRowContext(ctx, query, userID).
		Scan(&result.ID, &result.UserID, &result.SubStart, &result.SubEnd,
			&result.PeriodMonths, &result.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpsertSubscription создаёт подписку либо перезаписывает окно действия
// существующей. Продление не складывает периоды: прежний остаток сгорает.
func (s *Storage) UpsertSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error) {
	const op = "storage.UpsertSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var result models.Subscription
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var existingID int
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM premium_users WHERE user_id = $1 ORDER BY id LIMIT 1`,
			sub.UserID).Scan(&existingID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return tx.QueryRowContext(ctx, `
				INSERT INTO premium_users (user_id, sub_start, sub_end, period_months, status)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id, user_id, sub_start, sub_end, period_months, status`,
				sub.UserID, sub.SubStart, sub.SubEnd, sub.PeriodMonths, sub.Status).
				Scan(&result.ID, &result.UserID, &result.SubStart, &result.SubEnd,
					&result.PeriodMonths, &result.Status)
		case err != nil:
			return err
		default:
			return tx.QueryRowContext(ctx, `
				UPDATE premium_users
				SET sub_start = $2, sub_end = $3, period_months = $4, status = $5
				WHERE id = $1
				RETURNING id, user_id, sub_start, sub_end, period_months, status`,
				existingID, sub.SubStart, sub.SubEnd, sub.PeriodMonths, sub.Status).
				Scan(&result.ID, &result.UserID, &result.SubStart, &result.SubEnd,
					&result.PeriodMonths, &result.Status)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// RemoveSubscription удаляет подписку пользователя.
func (s *Storage) RemoveSubscription(ctx context.Context, userID int64) error {
	const op = "storage.RemoveSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM premium_users WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// HasActiveSubscription сообщает, есть ли у пользователя подписка,
// действующая в момент now. Совпадение с границей окна — действующая.
func (s *Storage) HasActiveSubscription(ctx context.Context, userID int64, now time.Time) (bool, error) {
	const op = "storage.HasActiveSubscription"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS(
			      SELECT 1 FROM premium_users
			      WHERE user_id = $1 AND sub_end >= $2)`
	var active bool
	if err := s.DB.QueryRowContext(ctx, query, userID, now).Scan(&active); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return active, nil
}

// DeleteExpiredSubscriptions удаляет подписки, истёкшие к моменту now,
// и возвращает удалённые строки для публикации уведомлений.
func (s *Storage) DeleteExpiredSubscriptions(ctx context.Context, now time.Time) ([]*models.Subscription, error) {
	const op = "storage.DeleteExpiredSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM premium_users
			  WHERE sub_end < $1
			  RETURNING id, user_id, sub_start, sub_end, period_months, status`
	rows, err := s.DB.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Subscription
	for rows.Next() {
		var item models.Subscription
		if err := rows.Scan(&item.ID, &item.UserID, &item.SubStart, &item.SubEnd,
			&item.PeriodMonths, &item.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountActiveSubscriptions возвращает количество действующих подписок.
func (s *Storage) CountActiveSubscriptions(ctx context.Context, now time.Time) (int, error) {
	const op = "storage.CountActiveSubscriptions"
	var total int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM premium_users WHERE sub_end >= $1`, now).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
