package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/auto-catalog/internal/models"
)

// ListBrands возвращает все марки по алфавиту.
func (s *Storage) ListBrands(ctx context.Context) ([]*models.Brand, error) {
	const op = "storage.ListBrands"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT id, name FROM brands ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Brand
	for rows.Next() {
		var item models.Brand
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetBrand возвращает марку по ID.
func (s *Storage) GetBrand(ctx context.Context, brandID int) (*models.Brand, error) {
	const op = "storage.GetBrand"
	var result models.Brand
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, name FROM brands WHERE id = $1`, brandID).
		Scan(&result.ID, &result.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// GetBrandByName возвращает марку по точному имени.
func (s *Storage) GetBrandByName(ctx context.Context, name string) (*models.Brand, error) {
	const op = "storage.GetBrandByName"
	var result models.Brand
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, name FROM brands WHERE name = $1`, name).
		Scan(&result.ID, &result.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// CreateBrand добавляет марку и возвращает её ID.
func (s *Storage) CreateBrand(ctx context.Context, name string) (int, error) {
	const op = "storage.CreateBrand"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO brands (name) VALUES ($1) RETURNING id`, name).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// RenameBrand переименовывает марку по прежнему имени.
func (s *Storage) RenameBrand(ctx context.Context, oldName, newName string) (*models.Brand, error) {
	const op = "storage.RenameBrand"
	var result models.Brand
	err := s.DB.QueryRowContext(ctx,
		`UPDATE brands SET name = $2 WHERE name = $1 RETURNING id, name`,
		oldName, newName).Scan(&result.ID, &result.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// DeleteBrandCascade удаляет марку вместе с моделями, годами и файлами
// в одной транзакции: частичных удалений при сбое не остаётся.
func (s *Storage) DeleteBrandCascade(ctx context.Context, brandID int) error {
	const op = "storage.DeleteBrandCascade"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM files WHERE year_id IN (
				SELECT y.id FROM years y
				JOIN models m ON m.id = y.model_id
				WHERE m.brand_id = $1)`, brandID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM years WHERE model_id IN (
				SELECT id FROM models WHERE brand_id = $1)`, brandID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM models WHERE brand_id = $1`, brandID); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, `DELETE FROM brands WHERE id = $1`, brandID)
		if err != nil {
			return err
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SearchBrands ищет марки по подстроке без учёта регистра.
func (s *Storage) SearchBrands(ctx context.Context, name string) ([]*models.Brand, error) {
	const op = "storage.SearchBrands"
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, name FROM brands WHERE name ILIKE '%' || $1 || '%' ORDER BY name`, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Brand
	for rows.Next() {
		var item models.Brand
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListModels возвращает модели марки по алфавиту.
func (s *Storage) ListModels(ctx context.Context, brandID int) ([]*models.Model, error) {
	const op = "storage.ListModels"
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, brand_id, name FROM models WHERE brand_id = $1 ORDER BY name`, brandID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Model
	for rows.Next() {
		var item models.Model
		if err := rows.Scan(&item.ID, &item.BrandID, &item.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetModel возвращает модель по ID.
func (s *Storage) GetModel(ctx context.Context, modelID int) (*models.Model, error) {
	const op = "storage.GetModel"
	var result models.Model
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, brand_id, name FROM models WHERE id = $1`, modelID).
		Scan(&result.ID, &result.BrandID, &result.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// GetModelByName возвращает модель марки по точному имени.
func (s *Storage) GetModelByName(ctx context.Context, brandID int, name string) (*models.Model, error) {
	const op = "storage.GetModelByName"
	var result models.Model
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, brand_id, name FROM models WHERE brand_id = $1 AND name = $2`,
		brandID, name).Scan(&result.ID, &result.BrandID, &result.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// CreateModel добавляет модель марки и возвращает её ID.
func (s *Storage) CreateModel(ctx context.Context, brandID int, name string) (int, error) {
	const op = "storage.CreateModel"
	var newID int
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO models (brand_id, name) VALUES ($1, $2) RETURNING id`,
		brandID, name).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// RenameModel переименовывает модель по ID.
func (s *Storage) RenameModel(ctx context.Context, modelID int, newName string) (*models.Model, error) {
	const op = "storage.RenameModel"
	var result models.Model
	err := s.DB.QueryRowContext(ctx,
		`UPDATE models SET name = $2 WHERE id = $1 RETURNING id, brand_id, name`,
		modelID, newName).Scan(&result.ID, &result.BrandID, &result.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// DeleteModelCascade удаляет модель вместе с годами и файлами в транзакции.
func (s *Storage) DeleteModelCascade(ctx context.Context, modelID int) error {
	const op = "storage.DeleteModelCascade"
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM files WHERE year_id IN (
				SELECT id FROM years WHERE model_id = $1)`, modelID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM years WHERE model_id = $1`, modelID); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, `DELETE FROM models WHERE id = $1`, modelID)
		if err != nil {
			return err
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SearchModels ищет модели по подстроке без учёта регистра.
func (s *Storage) SearchModels(ctx context.Context, name string) ([]*models.Model, error) {
	const op = "storage.SearchModels"
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, brand_id, name FROM models WHERE name ILIKE '%' || $1 || '%' ORDER BY name`, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Model
	for rows.Next() {
		var item models.Model
		if err := rows.Scan(&item.ID, &item.BrandID, &item.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListYears возвращает годы выпуска модели по возрастанию.
func (s *Storage) ListYears(ctx context.Context, modelID int) ([]*models.Year, error) {
	const op = "storage.ListYears"
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, model_id, value FROM years WHERE model_id = $1 ORDER BY value`, modelID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Year
	for rows.Next() {
		var item models.Year
		if err := rows.Scan(&item.ID, &item.ModelID, &item.Value); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetYear возвращает год выпуска по ID.
func (s *Storage) GetYear(ctx context.Context, yearID int) (*models.Year, error) {
	const op = "storage.GetYear"
	var result models.Year
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, model_id, value FROM years WHERE id = $1`, yearID).
		Scan(&result.ID, &result.ModelID, &result.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// GetYearByValue возвращает год модели по значению.
func (s *Storage) GetYearByValue(ctx context.Context, modelID, value int) (*models.Year, error) {
	const op = "storage.GetYearByValue"
	var result models.Year
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, model_id, value FROM years WHERE model_id = $1 AND value = $2`,
		modelID, value).Scan(&result.ID, &result.ModelID, &result.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// CreateYear добавляет год выпуска модели и возвращает его ID.
func (s *Storage) CreateYear(ctx context.Context, modelID, value int) (int, error) {
	const op = "storage.CreateYear"
	var newID int
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO years (model_id, value) VALUES ($1, $2) RETURNING id`,
		modelID, value).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// UpdateYear меняет значение года выпуска.
func (s *Storage) UpdateYear(ctx context.Context, yearID, newValue int) (*models.Year, error) {
	const op = "storage.UpdateYear"
	var result models.Year
	err := s.DB.QueryRowContext(ctx,
		`UPDATE years SET value = $2 WHERE id = $1 RETURNING id, model_id, value`,
		yearID, newValue).Scan(&result.ID, &result.ModelID, &result.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// DeleteYear удаляет год выпуска вместе с его файлами в транзакции.
func (s *Storage) DeleteYear(ctx context.Context, yearID int) error {
	const op = "storage.DeleteYear"
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM files WHERE year_id = $1`, yearID); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, `DELETE FROM years WHERE id = $1`, yearID)
		if err != nil {
			return err
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CountCatalog возвращает количество марок, моделей и годов.
func (s *Storage) CountCatalog(ctx context.Context) (brands, modelsCount, years int, err error) {
	const op = "storage.CountCatalog"
	err = s.DB.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM brands),
		       (SELECT COUNT(*) FROM models),
		       (SELECT COUNT(*) FROM years)`).
		Scan(&brands, &modelsCount, &years)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	return brands, modelsCount, years, nil
}

// OrphanCounts возвращает количество моделей и годов, сослающихся на
// отсутствующего родителя. Используется проверками целостности.
func (s *Storage) OrphanCounts(ctx context.Context) (orphanModels, orphanYears int, err error) {
	const op = "storage.OrphanCounts"
	err = s.DB.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM models m
		        WHERE NOT EXISTS (SELECT 1 FROM brands b WHERE b.id = m.brand_id)),
		       (SELECT COUNT(*) FROM years y
		        WHERE NOT EXISTS (SELECT 1 FROM models m WHERE m.id = y.model_id))`).
		Scan(&orphanModels, &orphanYears)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	return orphanModels, orphanYears, nil
}
