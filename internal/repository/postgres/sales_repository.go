// internal/repository/postgres/sales_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/planwise/ibp-backend/internal/domain"
	"github.com/planwise/ibp-backend/internal/repository"
)

type salesRepository struct {
	db *DB
}

func NewSalesRepository(db *DB) repository.SalesRepository {
	return &salesRepository{db: db}
}

func (r *salesRepository) ListByProduct(ctx context.Context, productCode string) ([]domain.SalesRecord, error) {
	query := `
		SELECT id, product_code, period, qty, created_at
		FROM historical_sales
		WHERE product_code = $1
		ORDER BY period ASC, id ASC
	`

	records := make([]domain.SalesRecord, 0)
	if err := r.db.SelectContext(ctx, &records, query, productCode); err != nil {
		return nil, wrapDBErr("list sales history", err)
	}

	return records, nil
}

func (r *salesRepository) ListAll(ctx context.Context) ([]domain.SalesRecord, error) {
	query := `
		SELECT id, product_code, period, qty, created_at
		FROM historical_sales
		ORDER BY product_code ASC, period ASC, id ASC
	`

	records := make([]domain.SalesRecord, 0)
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, wrapDBErr("list all sales history", err)
	}

	return records, nil
}

// AppendBatch inserts the whole batch inside one transaction. Any failing row
// rolls back the entire insert.
func (r *salesRepository) AppendBatch(ctx context.Context, records []domain.SalesRecord) error {
	if len(records) == 0 {
		return nil
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO historical_sales (product_code, period, qty, created_at)
			VALUES ($1, $2, $3, $4)
		`

		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		now := time.Now()
		for _, rec := range records {
			if _, err := stmt.ExecContext(ctx, rec.ProductCode, rec.Period, rec.Quantity, now); err != nil {
				// An unknown product code violates the FK and rejects the
				// whole batch, surfaced as an upload problem rather than a
				// server fault.
				var pqErr *pq.Error
				if errors.As(err, &pqErr) && pqErr.Code == "23503" {
					return &domain.UploadError{Reason: fmt.Sprintf("unknown product_code %q", rec.ProductCode)}
				}
				return fmt.Errorf("failed to insert sales record for %s: %w", rec.ProductCode, err)
			}
		}

		return nil
	})
}
