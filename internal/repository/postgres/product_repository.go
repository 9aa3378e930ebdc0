// internal/repository/postgres/product_repository.go
package postgres

import (
	"context"
	"time"

	"github.com/planwise/ibp-backend/internal/domain"
	"github.com/planwise/ibp-backend/internal/repository"
)

type productRepository struct {
	db *DB
}

func NewProductRepository(db *DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT product_code, product_name, opening_inventory, monthly_capacity, unit_cost, created_at, updated_at
		FROM products
		ORDER BY product_code
	`

	products := make([]domain.Product, 0)
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, wrapDBErr("list products", err)
	}

	return products, nil
}

func (r *productRepository) Get(ctx context.Context, code string) (*domain.Product, error) {
	query := `
		SELECT product_code, product_name, opening_inventory, monthly_capacity, unit_cost, created_at, updated_at
		FROM products
		WHERE product_code = $1
	`

	var p domain.Product
	if err := r.db.GetContext(ctx, &p, query, code); err != nil {
		return nil, wrapDBErr("get product", err)
	}

	return &p, nil
}

func (r *productRepository) Upsert(ctx context.Context, p domain.Product) error {
	query := `
		INSERT INTO products (
			product_code, product_name, opening_inventory, monthly_capacity, unit_cost, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_code)
		DO UPDATE SET
			product_name = EXCLUDED.product_name,
			opening_inventory = EXCLUDED.opening_inventory,
			monthly_capacity = EXCLUDED.monthly_capacity,
			unit_cost = EXCLUDED.unit_cost,
			updated_at = NOW()
	`

	_, err := r.db.ExecContext(ctx, query,
		p.Code, p.Name, p.OpeningInventory, p.MonthlyCapacity, p.UnitCost, time.Now())
	if err != nil {
		return wrapDBErr("upsert product", err)
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, code string) error {
	// Deleting an absent code is defined as a no-op, which DELETE already is.
	query := `DELETE FROM products WHERE product_code = $1`
	if _, err := r.db.ExecContext(ctx, query, code); err != nil {
		return wrapDBErr("delete product", err)
	}
	return nil
}
