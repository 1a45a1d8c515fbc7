package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetAvailableQty reads the on-hand quantity of a material in one warehouse,
// converted from the stock unit to the requested unit. A missing bin row
// means the warehouse simply never held the material, so it reads as zero.
func (s *Storage) GetAvailableQty(ctx context.Context, materialCode, warehouse, uom string) (float64, error) {
	const op = "storage.bins.GetAvailableQty.sql"

	stmt := `
		SELECT actual_qty, stock_uom
		FROM bins
		WHERE item_code = ? AND warehouse = ?
	`

	var actualQty float64
	var stockUOM string
	err := s.db.QueryRowContext(ctx, stmt, materialCode, warehouse).Scan(&actualQty, &stockUOM)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if uom == "" || uom == stockUOM {
		return actualQty, nil
	}

	factor, err := s.getConversionFactor(ctx, materialCode, uom)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if factor == 0 {
		factor = 1
	}
	return actualQty / factor, nil
}

func (s *Storage) getConversionFactor(ctx context.Context, materialCode, uom string) (float64, error) {
	const op = "storage.bins.getConversionFactor.sql"

	stmt := `
		SELECT conversion_factor
		FROM uom_conversions
		WHERE item_code = ? AND uom = ?
	`

	var factor float64
	err := s.db.QueryRowContext(ctx, stmt, materialCode, uom).Scan(&factor)
	if errors.Is(err, sql.ErrNoRows) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return factor, nil
}
