package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/auto-catalog/internal/models"
)

// InsertAccessStat фиксирует обращение пользователя к файлам года.
func (s *Storage) InsertAccessStat(ctx context.Context, userID int64, yearID int, slot models.Slot) error {
	const op = "storage.InsertAccessStat"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO file_access_stats (user_id, year_id, slot)
		VALUES ($1, $2, $3)`,
		userID, yearID, string(slot))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// TopModels возвращает модели, отсортированные по числу обращений
// к их материалам, не больше limit строк.
func (s *Storage) TopModels(ctx context.Context, limit int) ([]*models.TopModel, error) {
	const op = "storage.TopModels"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT b.name, m.name, COUNT(*) AS access_count
			  FROM file_access_stats fas
			  JOIN years y ON y.id = fas.year_id
			  JOIN models m ON m.id = y.model_id
			  JOIN brands b ON b.id = m.brand_id
			  GROUP BY b.name, m.name
			  ORDER BY access_count DESC, b.name, m.name
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.TopModel
	for rows.Next() {
		var item models.TopModel
		if err := rows.Scan(&item.Brand, &item.Model, &item.AccessCount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.Rank = len(result) + 1
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
