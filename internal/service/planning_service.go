// internal/service/planning_service.go
package service

import (
	"context"

	"github.com/planwise/ibp-backend/internal/cache"
	"github.com/planwise/ibp-backend/internal/domain"
	"github.com/planwise/ibp-backend/internal/planning"
	"github.com/planwise/ibp-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

// PlanningService recomputes the KPI, scenario and portfolio views on each
// request. Products without any sales history are omitted from every view;
// that is the defined "no data" state, not an error.
type PlanningService struct {
	products  repository.ProductRepository
	sales     repository.SalesRepository
	calc      *planning.Calculator
	scenarios *planning.ScenarioGenerator
	cache     cache.PlanningCache
}

func NewPlanningService(
	products repository.ProductRepository,
	sales repository.SalesRepository,
	calc *planning.Calculator,
	scenarios *planning.ScenarioGenerator,
	planningCache cache.PlanningCache,
) *PlanningService {
	if planningCache == nil {
		planningCache = cache.NewNoopPlanningCache()
	}
	return &PlanningService{
		products:  products,
		sales:     sales,
		calc:      calc,
		scenarios: scenarios,
		cache:     planningCache,
	}
}

// KPIRows returns one row per product with history, cached between writes.
func (s *PlanningService) KPIRows(ctx context.Context) ([]domain.KPIRow, error) {
	if rows, ok, err := s.cache.GetKPIs(ctx); err == nil && ok {
		return rows, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("planning cache read failed")
	}

	rows, _, _, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetKPIs(ctx, rows); err != nil {
		log.Warn().Err(err).Msg("planning cache write failed")
	}

	return rows, nil
}

// ScenarioRows returns one row per (product, scenario) for products with
// history.
func (s *PlanningService) ScenarioRows(ctx context.Context) ([]domain.ScenarioRow, error) {
	products, series, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.ScenarioRow, 0, len(products)*3)
	for _, p := range products {
		quantities := series[p.Code]
		if len(quantities) == 0 {
			continue
		}

		productRows, err := s.scenarios.Rows(p, quantities)
		if err != nil {
			return nil, err
		}
		rows = append(rows, productRows...)
	}

	return rows, nil
}

// Portfolio rolls every product's KPIs up to one summary.
func (s *PlanningService) Portfolio(ctx context.Context) (domain.PortfolioSummary, error) {
	rows, totalProducts, annualDemand, err := s.compute(ctx)
	if err != nil {
		return domain.PortfolioSummary{}, err
	}
	return planning.Summarize(totalProducts, rows, annualDemand), nil
}

func (s *PlanningService) compute(ctx context.Context) (rows []domain.KPIRow, totalProducts int, annualDemand float64, err error) {
	products, series, err := s.load(ctx)
	if err != nil {
		return nil, 0, 0, err
	}

	rows = make([]domain.KPIRow, 0, len(products))
	for _, p := range products {
		quantities := series[p.Code]
		if len(quantities) == 0 {
			continue
		}

		metrics, err := s.calc.Compute(p, quantities)
		if err != nil {
			return nil, 0, 0, err
		}

		rows = append(rows, metrics.Row(p))
		annualDemand += metrics.AnnualDemand
	}

	return rows, len(products), annualDemand, nil
}

// load fetches the product master and groups the full sales history by
// product code in one ordered pass.
func (s *PlanningService) load(ctx context.Context) ([]domain.Product, map[string][]float64, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	records, err := s.sales.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	series := make(map[string][]float64, len(products))
	for _, rec := range records {
		series[rec.ProductCode] = append(series[rec.ProductCode], rec.Quantity)
	}

	return products, series, nil
}
