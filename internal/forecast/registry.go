// internal/forecast/registry.go
package forecast

import (
	"errors"

	"github.com/planwise/ibp-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// Model names, in tie-break priority order.
const (
	ModelExponentialSmoothing = "exponential-smoothing"
	ModelRandomForest         = "random-forest-regression"
	ModelGradientBoosting     = "gradient-boosted-regression"
)

// ErrInsufficientData is returned by a strategy that needs more observations
// than the series provides. The evaluator skips such strategies.
var ErrInsufficientData = errors.New("not enough observations for this strategy")

// Strategy fits an ordered quantity series and produces a one-step-ahead point
// forecast with its in-sample error metric.
type Strategy interface {
	Name() string
	Fit(series []float64) (domain.ForecastResult, error)
}

// Registry is the capability registry for forecast models: populated once at
// startup, queried by the evaluator. Registration order doubles as the
// deterministic tie-break priority.
type Registry struct {
	strategies []Strategy
}

func NewRegistry(strategies ...Strategy) *Registry {
	r := &Registry{}
	for _, s := range strategies {
		r.Register(s)
	}
	return r
}

// NewDefaultRegistry wires the full configured model set in priority order.
func NewDefaultRegistry(smoothingAlpha float64) *Registry {
	return NewRegistry(
		NewExponentialSmoothing(smoothingAlpha),
		NewRandomForest(),
		NewGradientBoosting(),
	)
}

func (r *Registry) Register(s Strategy) {
	if s == nil {
		return
	}
	r.strategies = append(r.strategies, s)
	log.Debug().Str("model", s.Name()).Msg("forecast strategy registered")
}

// Available lists the registered model names in priority order.
func (r *Registry) Available() []string {
	names := make([]string, 0, len(r.strategies))
	for _, s := range r.strategies {
		names = append(names, s.Name())
	}
	return names
}

func (r *Registry) Strategies() []Strategy {
	return r.strategies
}
