package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/auto-catalog/internal/models"
)

// GetAdminGrant возвращает запись о правах администратора.
func (s *Storage) GetAdminGrant(ctx context.Context, userID int64) (*models.AdminGrant, error) {
	const op = "storage.GetAdminGrant"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_id, is_super, added_by, added_at
			  FROM admin_users
			  WHERE user_id = $1`
	var result models.AdminGrant
	err := s.DB.QueryRowContext(ctx, query, userID).
		Scan(&result.UserID, &result.IsSuper, &result.GrantedBy, &result.GrantedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// CreateAdminGrant выдаёт права администратора. Пользователь, которому
// выдаются права, создаётся при отсутствии — в одной транзакции с выдачей.
func (s *Storage) CreateAdminGrant(ctx context.Context, grant models.AdminGrant, username *string) (*models.AdminGrant, error) {
	const op = "storage.CreateAdminGrant"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var result models.AdminGrant
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO users (user_id, username)
			VALUES ($1, $2)
			ON CONFLICT (user_id) DO NOTHING`,
			grant.UserID, username)
		if err != nil {
			return err
		}

		return tx.QueryRowContext(ctx, `
			INSERT INTO admin_users (user_id, is_super, added_by)
			VALUES ($1, $2, $3)
			RETURNING user_id, is_super, added_by, added_at`,
			grant.UserID, grant.IsSuper, grant.GrantedBy).
			Scan(&result.UserID, &result.IsSuper, &result.GrantedBy, &result.GrantedAt)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// RemoveAdminGrant отзывает права администратора.
func (s *Storage) RemoveAdminGrant(ctx context.Context, userID int64) error {
	const op = "storage.RemoveAdminGrant"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM admin_users WHERE user_id = $1`, userID)
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

// ListAdminGrants возвращает все записи о правах вместе с данными
// пользователей, новые первыми.
func (s *Storage) ListAdminGrants(ctx context.Context) ([]*models.AdminGrantInfo, error) {
	const op = "storage.ListAdminGrants"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT a.user_id, a.is_super, a.added_by, a.added_at,
			      u.username, u.name, g.username
			  FROM admin_users a
			  LEFT JOIN users u ON u.user_id = a.user_id
			  LEFT JOIN users g ON g.user_id = a.added_by
			  ORDER BY a.added_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.AdminGrantInfo
	for rows.Next() {
		var item models.AdminGrantInfo
		if err := rows.Scan(&item.UserID, &item.IsSuper, &item.GrantedBy, &item.GrantedAt,
			&item.Username, &item.Name, &item.GrantedByUsername); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
