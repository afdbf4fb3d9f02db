package landmark

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gomfe/core/model"
	"github.com/YuminosukeSato/gomfe/pkg/errors"
)

// Stump is a single-split decision node over one fixed attribute. The
// best-node, random-node and worst-node landmarkers are stumps whose
// attribute is chosen by split gain or at random.
type Stump struct {
	model.BaseEstimator

	// Feature is the attribute index this stump splits on.
	Feature int

	// Gain is the Gini gain achieved by the fitted split.
	Gain float64

	threshold  float64
	leftClass  float64
	rightClass float64
}

// NewStump creates a stump over the given attribute index.
func NewStump(feature int) *Stump {
	return &Stump{Feature: feature}
}

// Fit finds the threshold on the stump's attribute with the largest Gini
// gain and records the majority class on each side.
func (s *Stump) Fit(X mat.Matrix, y []float64) error {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return errors.Wrap(errors.ErrEmptyData, "Stump.Fit")
	}
	if len(y) != rows {
		return errors.NewDimensionError("Stump.Fit", rows, len(y), 0)
	}
	if s.Feature < 0 || s.Feature >= cols {
		return errors.NewValueError("Stump.Fit", "feature index out of range")
	}

	order := make([]int, rows)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return X.At(order[a], s.Feature) < X.At(order[b], s.Feature)
	})

	labels := make(map[float64]int)
	for _, label := range y {
		if _, ok := labels[label]; !ok {
			labels[label] = len(labels)
		}
	}

	total := make([]int, len(labels))
	for _, label := range y {
		total[labels[label]]++
	}
	parent := giniImpurity(total, rows)

	left := make([]int, len(labels))
	right := append([]int(nil), total...)

	bestGain := -1.0
	bestSplit := 0
	for k := 0; k < rows-1; k++ {
		ci := labels[y[order[k]]]
		left[ci]++
		right[ci]--

		v, next := X.At(order[k], s.Feature), X.At(order[k+1], s.Feature)
		if v == next {
			continue
		}

		nLeft := k + 1
		nRight := rows - nLeft
		weighted := (float64(nLeft)*giniImpurity(left, nLeft) +
			float64(nRight)*giniImpurity(right, nRight)) / float64(rows)
		if gain := parent - weighted; gain > bestGain {
			bestGain = gain
			bestSplit = nLeft
			s.threshold = (v + next) / 2
		}
	}

	if bestGain < 0 {
		// Constant attribute: degenerate stump predicting the majority.
		s.Gain = 0
		s.threshold = X.At(order[0], s.Feature)
		majority := majorityLabel(y)
		s.leftClass = majority
		s.rightClass = majority
		s.SetFitted()
		return nil
	}

	s.Gain = bestGain
	s.leftClass = majorityLabel(SubsetLabels(y, order[:bestSplit]))
	s.rightClass = majorityLabel(SubsetLabels(y, order[bestSplit:]))
	s.SetFitted()
	return nil
}

// Predict routes each row through the single split.
func (s *Stump) Predict(X mat.Matrix) ([]float64, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("Stump", "Predict")
	}
	rows, cols := X.Dims()
	if s.Feature >= cols {
		return nil, errors.NewDimensionError("Stump.Predict", s.Feature+1, cols, 1)
	}

	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		if X.At(i, s.Feature) <= s.threshold {
			out[i] = s.leftClass
		} else {
			out[i] = s.rightClass
		}
	}
	return out, nil
}

func giniImpurity(counts []int, total int) float64 {
	if total == 0 {
		return 0
	}
	impurity := 1.0
	for _, count := range counts {
		p := float64(count) / float64(total)
		impurity -= p * p
	}
	return impurity
}

func majorityLabel(y []float64) float64 {
	counts := make(map[float64]int)
	best := y[0]
	for _, label := range y {
		counts[label]++
		if counts[label] > counts[best] {
			best = label
		}
	}
	return best
}

var _ model.Classifier = (*Stump)(nil)
