// internal/service/product_service.go
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/planwise/ibp-backend/internal/cache"
	"github.com/planwise/ibp-backend/internal/domain"
	"github.com/planwise/ibp-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

// ProductService wraps product master CRUD with field validation and planning
// cache invalidation.
type ProductService struct {
	repo     repository.ProductRepository
	cache    cache.PlanningCache
	validate *validator.Validate
}

func NewProductService(repo repository.ProductRepository, planningCache cache.PlanningCache) *ProductService {
	if planningCache == nil {
		planningCache = cache.NewNoopPlanningCache()
	}
	return &ProductService{
		repo:     repo,
		cache:    planningCache,
		validate: validator.New(),
	}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

// Upsert validates the payload, then writes through the database's atomic
// upsert. Last writer wins; there is no edit-conflict resolution on top.
func (s *ProductService) Upsert(ctx context.Context, input domain.ProductInput) (domain.Product, error) {
	input.Code = strings.TrimSpace(input.Code)
	input.Name = strings.TrimSpace(input.Name)

	if err := s.validate.Struct(input); err != nil {
		return domain.Product{}, asValidationError(err)
	}
	if input.UnitCost.IsNegative() {
		return domain.Product{}, &domain.ValidationError{Field: "unit_cost", Reason: "must not be negative"}
	}

	p := domain.Product{
		Code:             input.Code,
		Name:             input.Name,
		OpeningInventory: input.OpeningInventory,
		MonthlyCapacity:  input.MonthlyCapacity,
		UnitCost:         input.UnitCost,
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		return domain.Product{}, err
	}

	s.invalidatePlanning(ctx)
	return p, nil
}

// Delete removes the product row; deleting an absent code is a no-op.
func (s *ProductService) Delete(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return &domain.ValidationError{Field: "product_code", Reason: "must not be empty"}
	}

	if err := s.repo.Delete(ctx, code); err != nil {
		return err
	}

	s.invalidatePlanning(ctx)
	return nil
}

func (s *ProductService) invalidatePlanning(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("planning cache invalidation failed")
	}
}

// asValidationError converts the first validator field failure into the
// domain error the handler layer knows how to render.
func asValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		reason := "is invalid"
		switch fe.Tag() {
		case "required":
			reason = "must not be empty"
		case "gte":
			reason = "must not be negative"
		}
		return &domain.ValidationError{Field: fieldName(fe.Field()), Reason: reason}
	}
	return &domain.ValidationError{Reason: err.Error()}
}

func fieldName(structField string) string {
	switch structField {
	case "Code":
		return "product_code"
	case "Name":
		return "product_name"
	case "OpeningInventory":
		return "opening_inventory"
	case "MonthlyCapacity":
		return "monthly_capacity"
	case "UnitCost":
		return "unit_cost"
	default:
		return strings.ToLower(structField)
	}
}
