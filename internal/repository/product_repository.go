// internal/repository/product_repository.go
package repository

import (
	"context"

	"github.com/planwise/ibp-backend/internal/domain"
)

// ProductRepository is CRUD over the product master table. Upsert is keyed on
// product code with last-write-wins semantics; Delete of an absent code is a
// no-op.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, code string) (*domain.Product, error)
	Upsert(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, code string) error
}
