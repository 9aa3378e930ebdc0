// internal/forecast/forest.go
package forecast

import (
	"math/rand"

	"github.com/planwise/ibp-backend/internal/domain"
)

// RandomForest is a bagged ensemble of regression trees over lagged features.
// Needs at least two training rows (three observations); shorter series are
// declined, not an error condition.
type RandomForest struct {
	Trees    int
	MaxDepth int
	Seed     int64
}

func NewRandomForest() *RandomForest {
	return &RandomForest{Trees: 100, MaxDepth: 3, Seed: 42}
}

func (f *RandomForest) Name() string { return ModelRandomForest }

func (f *RandomForest) Fit(series []float64) (domain.ForecastResult, error) {
	X, y := lagFeatures(series)
	if len(y) < 2 {
		return domain.ForecastResult{}, ErrInsufficientData
	}

	rng := rand.New(rand.NewSource(f.Seed))
	trees := make([]*treeNode, 0, f.Trees)
	for b := 0; b < f.Trees; b++ {
		sample := make([]int, len(y))
		for i := range sample {
			sample[i] = rng.Intn(len(y))
		}
		trees = append(trees, buildTree(X, y, sample, 0, f.MaxDepth, 1))
	}

	predict := func(x []float64) float64 {
		var sum float64
		for _, tree := range trees {
			sum += tree.predict(x)
		}
		return sum / float64(len(trees))
	}

	fitted := make([]float64, len(y))
	for i, x := range X {
		fitted[i] = predict(x)
	}

	next := []float64{float64(len(series)), series[len(series)-1]}
	return domain.ForecastResult{
		ModelName:     f.Name(),
		PointForecast: predict(next),
		ErrorMetric:   mape(y, fitted),
	}, nil
}
