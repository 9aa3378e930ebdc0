package forecast

import (
	"errors"
	"math"
	"testing"
)

func TestExponentialSmoothingKnownValues(t *testing.T) {
	// Alpha 0.5 over [10, 20]: the only fitted value is the initial level 10
	// against actual 20 (50% error), and the forecast updates to 15.
	s := NewExponentialSmoothing(0.5)

	result, err := s.Fit([]float64{10, 20})
	if err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}

	if result.ModelName != ModelExponentialSmoothing {
		t.Errorf("model name = %q", result.ModelName)
	}
	if math.Abs(result.PointForecast-15) > 1e-9 {
		t.Errorf("point forecast = %v, want 15", result.PointForecast)
	}
	if math.Abs(result.ErrorMetric-50) > 1e-9 {
		t.Errorf("error metric = %v, want 50", result.ErrorMetric)
	}
}

func TestExponentialSmoothingSingleObservation(t *testing.T) {
	s := NewExponentialSmoothing(0.3)

	result, err := s.Fit([]float64{42})
	if err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}
	if result.PointForecast != 42 {
		t.Errorf("point forecast = %v, want the single value 42", result.PointForecast)
	}
	if result.ErrorMetric != 0 {
		t.Errorf("error metric = %v, want 0", result.ErrorMetric)
	}
}

func TestExponentialSmoothingDefaultsBadAlpha(t *testing.T) {
	for _, alpha := range []float64{-1, 0, 1, 2} {
		if s := NewExponentialSmoothing(alpha); s.Alpha != defaultAlpha {
			t.Errorf("alpha %v should fall back to default, got %v", alpha, s.Alpha)
		}
	}
}

func TestEnsemblesDeclineShortSeries(t *testing.T) {
	strategies := []Strategy{NewRandomForest(), NewGradientBoosting()}
	series := [][]float64{{}, {5}, {5, 6}}

	for _, strategy := range strategies {
		for _, s := range series {
			_, err := strategy.Fit(s)
			if !errors.Is(err, ErrInsufficientData) {
				t.Errorf("%s.Fit(len %d) error = %v, want ErrInsufficientData", strategy.Name(), len(s), err)
			}
		}
	}
}

func TestEnsemblesFitLongerSeries(t *testing.T) {
	series := []float64{40, 50, 60, 55, 65, 70, 68, 75}

	for _, strategy := range []Strategy{NewRandomForest(), NewGradientBoosting()} {
		t.Run(strategy.Name(), func(t *testing.T) {
			result, err := strategy.Fit(series)
			if err != nil {
				t.Fatalf("Fit returned error: %v", err)
			}
			if result.ModelName != strategy.Name() {
				t.Errorf("model name = %q, want %q", result.ModelName, strategy.Name())
			}
			if math.IsNaN(result.PointForecast) || math.IsInf(result.PointForecast, 0) {
				t.Errorf("point forecast not finite: %v", result.PointForecast)
			}
			if result.ErrorMetric < 0 {
				t.Errorf("error metric %v is negative", result.ErrorMetric)
			}
		})
	}
}

func TestEnsemblesDeterministic(t *testing.T) {
	series := []float64{12, 9, 14, 20, 17, 22, 19}

	for _, make := range []func() Strategy{
		func() Strategy { return NewRandomForest() },
		func() Strategy { return NewGradientBoosting() },
	} {
		a, errA := make().Fit(series)
		b, errB := make().Fit(series)
		if errA != nil || errB != nil {
			t.Fatalf("Fit returned errors: %v, %v", errA, errB)
		}
		if a.PointForecast != b.PointForecast || a.ErrorMetric != b.ErrorMetric {
			t.Errorf("%s not deterministic: %+v vs %+v", a.ModelName, a, b)
		}
	}
}

func TestGradientBoostingFitsTrend(t *testing.T) {
	// A clean upward trend should be fit closely in-sample.
	series := []float64{10, 20, 30, 40, 50, 60, 70, 80}

	result, err := NewGradientBoosting().Fit(series)
	if err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}
	if result.ErrorMetric > 25 {
		t.Errorf("in-sample MAPE %v unexpectedly high for a clean trend", result.ErrorMetric)
	}
}
