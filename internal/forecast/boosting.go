// internal/forecast/boosting.go
package forecast

import (
	"github.com/planwise/ibp-backend/internal/domain"
	"gonum.org/v1/gonum/stat"
)

// GradientBoosting fits shallow regression trees to the residuals of the
// running prediction, shrunk by the learning rate. Same lagged-feature view
// and minimum-length rule as the forest.
type GradientBoosting struct {
	Rounds       int
	LearningRate float64
	MaxDepth     int
}

func NewGradientBoosting() *GradientBoosting {
	return &GradientBoosting{Rounds: 100, LearningRate: 0.1, MaxDepth: 2}
}

func (g *GradientBoosting) Name() string { return ModelGradientBoosting }

func (g *GradientBoosting) Fit(series []float64) (domain.ForecastResult, error) {
	X, y := lagFeatures(series)
	if len(y) < 2 {
		return domain.ForecastResult{}, ErrInsufficientData
	}

	base := stat.Mean(y, nil)
	pred := make([]float64, len(y))
	for i := range pred {
		pred[i] = base
	}

	all := make([]int, len(y))
	for i := range all {
		all[i] = i
	}

	trees := make([]*treeNode, 0, g.Rounds)
	residual := make([]float64, len(y))
	for m := 0; m < g.Rounds; m++ {
		for i := range y {
			residual[i] = y[i] - pred[i]
		}

		tree := buildTree(X, residual, all, 0, g.MaxDepth, 1)
		trees = append(trees, tree)
		for i, x := range X {
			pred[i] += g.LearningRate * tree.predict(x)
		}
	}

	predict := func(x []float64) float64 {
		out := base
		for _, tree := range trees {
			out += g.LearningRate * tree.predict(x)
		}
		return out
	}

	next := []float64{float64(len(series)), series[len(series)-1]}
	return domain.ForecastResult{
		ModelName:     g.Name(),
		PointForecast: predict(next),
		ErrorMetric:   mape(y, pred),
	}, nil
}
