package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/auto-catalog/internal/models"
)

// GetSetting возвращает настройку бота по ключу.
func (s *Storage) GetSetting(ctx context.Context, key string) (*models.Setting, error) {
	const op = "storage.GetSetting"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var result models.Setting
	err := s.DB.QueryRowContext(ctx,
		`SELECT setting_key, setting_value FROM bot_settings WHERE setting_key = $1`,
		key).Scan(&result.Key, &result.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListSettings возвращает все настройки бота по ключу.
func (s *Storage) ListSettings(ctx context.Context) ([]*models.Setting, error) {
	const op = "storage.ListSettings"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT setting_key, setting_value FROM bot_settings ORDER BY setting_key`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Setting
	for rows.Next() {
		var item models.Setting
		if err := rows.Scan(&item.Key, &item.Value); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpsertSetting задаёт значение настройки, создавая её при отсутствии.
func (s *Storage) UpsertSetting(ctx context.Context, key, value string) (*models.Setting, error) {
	const op = "storage.UpsertSetting"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO bot_settings (setting_key, setting_value)
			  VALUES ($1, $2)
			  ON CONFLICT (setting_key) DO UPDATE SET setting_value = EXCLUDED.setting_value
			  RETURNING setting_key, setting_value`
	var result models.Setting
	err := s.DB.QueryRowContext(ctx, query, key, value).Scan(&result.Key, &result.Value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}
