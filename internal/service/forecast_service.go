// internal/service/forecast_service.go
package service

import (
	"context"

	"github.com/planwise/ibp-backend/internal/domain"
	"github.com/planwise/ibp-backend/internal/forecast"
	"github.com/planwise/ibp-backend/internal/repository"
)

// ForecastService evaluates the registered model strategies against one
// product's demand series.
type ForecastService struct {
	sales     repository.SalesRepository
	registry  *forecast.Registry
	evaluator *forecast.Evaluator
}

func NewForecastService(sales repository.SalesRepository, registry *forecast.Registry) *ForecastService {
	return &ForecastService{
		sales:     sales,
		registry:  registry,
		evaluator: forecast.NewEvaluator(registry),
	}
}

// AvailableModels lists the registered strategies in priority order.
func (s *ForecastService) AvailableModels() []string {
	return s.registry.Available()
}

// Forecast runs every available strategy over the product's series and selects
// the lowest-error result. A product without history yields NoHistoryError,
// which the handler renders as an empty state.
func (s *ForecastService) Forecast(ctx context.Context, productCode string) (domain.ForecastReport, error) {
	records, err := s.sales.ListByProduct(ctx, productCode)
	if err != nil {
		return domain.ForecastReport{}, err
	}
	if len(records) == 0 {
		return domain.ForecastReport{}, &domain.NoHistoryError{ProductCode: productCode}
	}

	series := make([]float64, len(records))
	for i, rec := range records {
		series[i] = rec.Quantity
	}

	results, best, err := s.evaluator.Evaluate(series)
	if err != nil {
		return domain.ForecastReport{}, err
	}

	return domain.ForecastReport{
		ProductCode: productCode,
		Results:     results,
		Best:        best,
		Observed:    len(series),
	}, nil
}
