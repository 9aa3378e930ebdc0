// internal/repository/sales_repository.go
package repository

import (
	"context"

	"github.com/planwise/ibp-backend/internal/domain"
)

// SalesRepository is append/query over the historical sales table. Batches are
// inserted inside one transaction; a failing row rejects the whole batch so the
// stored history is never silently incomplete.
type SalesRepository interface {
	ListByProduct(ctx context.Context, productCode string) ([]domain.SalesRecord, error)
	// ListAll returns every record ordered by (product_code, period) so the
	// planning rollup can group series in a single pass.
	ListAll(ctx context.Context) ([]domain.SalesRecord, error)
	AppendBatch(ctx context.Context, records []domain.SalesRecord) error
}
