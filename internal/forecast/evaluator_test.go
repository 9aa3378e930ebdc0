package forecast

import (
	"errors"
	"math"
	"testing"

	"github.com/planwise/ibp-backend/internal/domain"
)

// stubStrategy lets the selection rule be tested independently of any model.
type stubStrategy struct {
	name string
	mape float64
	err  error
}

func (s stubStrategy) Name() string { return s.name }

func (s stubStrategy) Fit(series []float64) (domain.ForecastResult, error) {
	if s.err != nil {
		return domain.ForecastResult{}, s.err
	}
	return domain.ForecastResult{ModelName: s.name, PointForecast: 1, ErrorMetric: s.mape}, nil
}

func TestEvaluateEmptySeries(t *testing.T) {
	e := NewEvaluator(NewDefaultRegistry(0.3))

	_, _, err := e.Evaluate(nil)
	var noHistory *domain.NoHistoryError
	if !errors.As(err, &noHistory) {
		t.Fatalf("expected NoHistoryError, got %v", err)
	}
}

func TestEvaluateSelectsLowestError(t *testing.T) {
	e := NewEvaluator(NewRegistry(
		stubStrategy{name: "a", mape: 12},
		stubStrategy{name: "b", mape: 3},
		stubStrategy{name: "c", mape: 7},
	))

	results, best, err := e.Evaluate([]float64{1, 2, 3})
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if best.ModelName != "b" {
		t.Errorf("best = %q, want b", best.ModelName)
	}
}

func TestEvaluateTieBreakIsPriorityOrder(t *testing.T) {
	e := NewEvaluator(NewRegistry(
		stubStrategy{name: "first", mape: 5},
		stubStrategy{name: "second", mape: 5},
	))

	_, best, err := e.Evaluate([]float64{1, 2})
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if best.ModelName != "first" {
		t.Errorf("tie went to %q, want the earlier-registered strategy", best.ModelName)
	}
}

func TestEvaluateSkipsDecliningStrategies(t *testing.T) {
	e := NewEvaluator(NewRegistry(
		stubStrategy{name: "declines", err: ErrInsufficientData},
		stubStrategy{name: "works", mape: 9},
	))

	results, best, err := e.Evaluate([]float64{4})
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if best.ModelName != "works" {
		t.Errorf("best = %q, want works", best.ModelName)
	}
}

func TestEvaluateSingleObservationUsesSmoothing(t *testing.T) {
	// With one observation only exponential smoothing can answer; the
	// ensembles must be skipped, not crash.
	e := NewEvaluator(NewDefaultRegistry(0.3))

	results, best, err := e.Evaluate([]float64{42})
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected only smoothing to produce a result, got %d", len(results))
	}
	if best.ModelName != ModelExponentialSmoothing {
		t.Errorf("best = %q, want %q", best.ModelName, ModelExponentialSmoothing)
	}
	if best.PointForecast != 42 {
		t.Errorf("point forecast = %v, want 42", best.PointForecast)
	}
}

func TestRegistryAvailableOrder(t *testing.T) {
	r := NewDefaultRegistry(0.3)
	want := []string{ModelExponentialSmoothing, ModelRandomForest, ModelGradientBoosting}

	got := r.Available()
	if len(got) != len(want) {
		t.Fatalf("available = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("available[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMAPE(t *testing.T) {
	testCases := []struct {
		name      string
		actuals   []float64
		predicted []float64
		want      float64
	}{
		{"perfect fit", []float64{10, 20}, []float64{10, 20}, 0},
		{"half off", []float64{10}, []float64{5}, 50},
		{"zero actuals skipped", []float64{0, 10}, []float64{99, 5}, 50},
		{"all zero actuals", []float64{0, 0}, []float64{1, 2}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mape(tc.actuals, tc.predicted); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("mape = %v, want %v", got, tc.want)
			}
		})
	}
}
