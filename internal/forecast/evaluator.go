// internal/forecast/evaluator.go
package forecast

import (
	"errors"
	"math"

	"github.com/planwise/ibp-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// Evaluator runs every registered strategy over a series and selects the one
// with the lowest in-sample MAPE. Ties keep the earlier-registered strategy.
type Evaluator struct {
	registry *Registry
}

func NewEvaluator(registry *Registry) *Evaluator {
	return &Evaluator{registry: registry}
}

// Evaluate fits all available strategies. An empty series is a NoHistoryError;
// strategies that decline the series length are skipped silently.
func (e *Evaluator) Evaluate(series []float64) ([]domain.ForecastResult, domain.ForecastResult, error) {
	if len(series) == 0 {
		return nil, domain.ForecastResult{}, &domain.NoHistoryError{}
	}

	results := make([]domain.ForecastResult, 0, len(e.registry.Strategies()))
	bestIdx := -1
	for _, strategy := range e.registry.Strategies() {
		result, err := strategy.Fit(series)
		if errors.Is(err, ErrInsufficientData) {
			continue
		}
		if err != nil {
			log.Warn().Err(err).Str("model", strategy.Name()).Msg("forecast strategy failed, skipping")
			continue
		}

		results = append(results, result)
		if bestIdx < 0 || result.ErrorMetric < results[bestIdx].ErrorMetric {
			bestIdx = len(results) - 1
		}
	}

	if bestIdx < 0 {
		// Cannot happen with the default set: exponential smoothing accepts
		// any non-empty series.
		return nil, domain.ForecastResult{}, &domain.NoHistoryError{}
	}

	return results, results[bestIdx], nil
}

// mape is the mean absolute percentage error over paired actual/predicted
// values, expressed as a percentage. Terms with a zero actual are skipped to
// avoid dividing by zero; with no usable terms the metric is zero.
func mape(actuals, predicted []float64) float64 {
	var sum float64
	var n int
	for i := range actuals {
		if actuals[i] == 0 {
			continue
		}
		sum += math.Abs((actuals[i] - predicted[i]) / actuals[i])
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n) * 100
}
