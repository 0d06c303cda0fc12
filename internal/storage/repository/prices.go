package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/auto-catalog/internal/models"
)

// ListPriceTiers возвращает тарифы по возрастанию периода.
func (s *Storage) ListPriceTiers(ctx context.Context) ([]*models.PriceTier, error) {
	const op = "storage.ListPriceTiers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT period_months, price_kopecks
			  FROM subscription_prices
			  ORDER BY period_months`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.PriceTier
	for rows.Next() {
		var item models.PriceTier
		if err := rows.Scan(&item.PeriodMonths, &item.PriceKopecks); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetPriceTier возвращает тариф для периода.
func (s *Storage) GetPriceTier(ctx context.Context, periodMonths int) (*models.PriceTier, error) {
	const op = "storage.GetPriceTier"
	var result models.PriceTier
	err := s.DB.QueryRowContext(ctx,
		`SELECT period_months, price_kopecks FROM subscription_prices WHERE period_months = $1`,
		periodMonths).Scan(&result.PeriodMonths, &result.PriceKopecks)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpsertPriceTier задаёт цену для периода, создавая тариф при отсутствии.
// Цена хранится в копейках.
func (s *Storage) UpsertPriceTier(ctx context.Context, periodMonths int, priceKopecks int64) (*models.PriceTier, error) {
	const op = "storage.UpsertPriceTier"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscription_prices (period_months, price_kopecks)
			  VALUES ($1, $2)
			  ON CONFLICT (period_months) DO UPDATE SET price_kopecks = EXCLUDED.price_kopecks
			  RETURNING period_months, price_kopecks`
	var result models.PriceTier
	err := s.DB.QueryRowContext(ctx, query, periodMonths, priceKopecks).
		Scan(&result.PeriodMonths, &result.PriceKopecks)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}
