package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/auto-catalog/internal/models"
)

// GetFileByYearID возвращает строку файлов года выпуска.
func (s *Storage) GetFileByYearID(ctx context.Context, yearID int) (*models.File, error) {
	const op = "storage.GetFileByYearID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, year_id, photo, premium_photo, pdf, premium_pdf, caption
			  FROM files
			  WHERE year_id = $1`
	var result models.File
	err := s.DB.QueryRowContext(ctx, query, yearID).
		Scan(&result.ID, &result.YearID, &result.Photo, &result.PremiumPhoto,
			&result.Pdf, &result.PremiumPdf, &result.Caption)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// slotColumn сопоставляет слот с именем столбца. Имена фиксированы,
// подстановка пользовательского ввода в SQL исключена.
func slotColumn(slot models.Slot) (string, error) {
	switch slot {
	case models.SlotPhoto:
		return "photo", nil
	case models.SlotPremiumPhoto:
		return "premium_photo", nil
	case models.SlotPdf:
		return "pdf", nil
	case models.SlotPremiumPdf:
		return "premium_pdf", nil
	default:
		return "", fmt.Errorf("unknown slot: %s", slot)
	}
}

// UpsertFileSlot записывает ссылку в слот года выпуска и фиксирует
// обращение в статистике. Повторная запись замещает прежнюю ссылку;
// запись слота и строка статистики попадают в одну транзакцию.
func (s *Storage) UpsertFileSlot(ctx context.Context, yearID int, slot models.Slot, link string, userID int64) (*models.File, error) {
	const op = "storage.UpsertFileSlot"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	column, err := slotColumn(slot)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result models.File
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		query := fmt.Sprintf(`
			INSERT INTO files (year_id, %s) VALUES ($1, $2)
			ON CONFLICT (year_id) DO UPDATE SET %s = EXCLUDED.%s
			RETURNING id, year_id, photo, premium_photo, pdf, premium_pdf, caption`,
			column, column, column)
		if err := tx.QueryRowContext(ctx, query, yearID, link).
			Scan(&result.ID, &result.YearID, &result.Photo, &result.PremiumPhoto,
				&result.Pdf, &result.PremiumPdf, &result.Caption); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO file_access_stats (user_id, year_id, slot)
			VALUES ($1, $2, $3)`,
			userID, yearID, string(slot))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ClearFileSlot очищает один слот года выпуска.
func (s *Storage) ClearFileSlot(ctx context.Context, yearID int, slot models.Slot) (*models.File, error) {
	const op = "storage.ClearFileSlot"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	column, err := slotColumn(slot)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := fmt.Sprintf(`
		UPDATE files SET %s = NULL
		WHERE year_id = $1
		RETURNING id, year_id, photo, premium_photo, pdf, premium_pdf, caption`, column)
	var result models.File
	err = s.DB.QueryRowContext(ctx, query, yearID).
		Scan(&result.ID, &result.YearID, &result.Photo, &result.PremiumPhoto,
			&result.Pdf, &result.PremiumPdf, &result.Caption)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateFileCaption записывает подпись к файлам года выпуска. Строка
// создаётся при отсутствии, чтобы подпись можно было задать до ссылок.
func (s *Storage) UpdateFileCaption(ctx context.Context, yearID int, caption *string) (*models.File, error) {
	const op = "storage.UpdateFileCaption"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO files (year_id, caption) VALUES ($1, $2)
			  ON CONFLICT (year_id) DO UPDATE SET caption = EXCLUDED.caption
			  RETURNING id, year_id, photo, premium_photo, pdf, premium_pdf, caption`
	var result models.File
	err := s.DB.QueryRowContext(ctx, query, yearID, caption).
		Scan(&result.ID, &result.YearID, &result.Photo, &result.PremiumPhoto,
			&result.Pdf, &result.PremiumPdf, &result.Caption)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// GetYearContext возвращает марку, модель и значение года для года выпуска.
// Используется при выдаче файлов, чтобы подписать материалы полным именем.
func (s *Storage) GetYearContext(ctx context.Context, yearID int) (brand, model string, year int, err error) {
	const op = "storage.GetYearContext"
	select {
	case <-ctx.Done():
		return "", "", 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT b.name, m.name, y.value
			  FROM years y
			  JOIN models m ON m.id = y.model_id
			  JOIN brands b ON b.id = m.brand_id
			  WHERE y.id = $1`
	err = s.DB.QueryRowContext(ctx, query, yearID).Scan(&brand, &model, &year)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", 0, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return "", "", 0, fmt.Errorf("%s: %w", op, err)
	}
	return brand, model, year, nil
}
