// internal/forecast/tree.go
package forecast

import "sort"

// treeNode is a node of a small regression tree used by the ensemble
// strategies. Splits minimize the summed squared error of the two children.
type treeNode struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
}

func (n *treeNode) predict(x []float64) float64 {
	for !n.leaf {
		if x[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

// buildTree grows a regression tree over the samples addressed by idx.
func buildTree(X [][]float64, y []float64, idx []int, depth, maxDepth, minLeaf int) *treeNode {
	if depth >= maxDepth || len(idx) < 2*minLeaf {
		return &treeNode{leaf: true, value: meanAt(y, idx)}
	}

	feature, threshold, ok := bestSplit(X, y, idx, minLeaf)
	if !ok {
		return &treeNode{leaf: true, value: meanAt(y, idx)}
	}

	var leftIdx, rightIdx []int
	for _, i := range idx {
		if X[i][feature] <= threshold {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      buildTree(X, y, leftIdx, depth+1, maxDepth, minLeaf),
		right:     buildTree(X, y, rightIdx, depth+1, maxDepth, minLeaf),
	}
}

// bestSplit scans every feature and every midpoint between distinct adjacent
// values, returning the split with the lowest total squared error.
func bestSplit(X [][]float64, y []float64, idx []int, minLeaf int) (feature int, threshold float64, ok bool) {
	bestSSE := sumSquaredError(y, idx)
	if bestSSE == 0 {
		return 0, 0, false
	}

	nFeatures := len(X[idx[0]])
	for f := 0; f < nFeatures; f++ {
		sorted := append([]int(nil), idx...)
		sort.Slice(sorted, func(a, b int) bool { return X[sorted[a]][f] < X[sorted[b]][f] })

		for split := minLeaf; split <= len(sorted)-minLeaf; split++ {
			lo := X[sorted[split-1]][f]
			hi := X[sorted[split]][f]
			if lo == hi {
				continue
			}

			sse := sumSquaredError(y, sorted[:split]) + sumSquaredError(y, sorted[split:])
			if sse < bestSSE {
				bestSSE = sse
				feature = f
				threshold = (lo + hi) / 2
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func meanAt(y []float64, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	var sum float64
	for _, i := range idx {
		sum += y[i]
	}
	return sum / float64(len(idx))
}

func sumSquaredError(y []float64, idx []int) float64 {
	m := meanAt(y, idx)
	var sse float64
	for _, i := range idx {
		d := y[i] - m
		sse += d * d
	}
	return sse
}

// lagFeatures builds the supervised view of a series: for each step t >= 1 the
// inputs are the time index and the previous observation, the target is the
// observation itself.
func lagFeatures(series []float64) (X [][]float64, y []float64) {
	for t := 1; t < len(series); t++ {
		X = append(X, []float64{float64(t), series[t-1]})
		y = append(y, series[t])
	}
	return X, y
}
