// internal/forecast/smoothing.go
package forecast

import "github.com/planwise/ibp-backend/internal/domain"

const defaultAlpha = 0.3

// ExponentialSmoothing is the baseline strategy: simple exponential smoothing
// with a fixed level constant. A single observation degenerates to forecasting
// that value with zero in-sample error.
type ExponentialSmoothing struct {
	Alpha float64
}

func NewExponentialSmoothing(alpha float64) *ExponentialSmoothing {
	if alpha <= 0 || alpha >= 1 {
		alpha = defaultAlpha
	}
	return &ExponentialSmoothing{Alpha: alpha}
}

func (s *ExponentialSmoothing) Name() string { return ModelExponentialSmoothing }

func (s *ExponentialSmoothing) Fit(series []float64) (domain.ForecastResult, error) {
	if len(series) == 0 {
		return domain.ForecastResult{}, ErrInsufficientData
	}

	level := series[0]
	var actuals, fitted []float64
	for t := 1; t < len(series); t++ {
		actuals = append(actuals, series[t])
		fitted = append(fitted, level)
		level = s.Alpha*series[t] + (1-s.Alpha)*level
	}

	return domain.ForecastResult{
		ModelName:     s.Name(),
		PointForecast: level,
		ErrorMetric:   mape(actuals, fitted),
	}, nil
}
