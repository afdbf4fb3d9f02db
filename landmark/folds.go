// Package landmark provides the fast learners and the stratified fold
// splitter behind the landmarking measure group. Each learner implements
// model.Classifier; landmarking measures report per-fold scores.
package landmark

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gomfe/pkg/errors"
)

// Fold holds the train/test row indices of one cross-validation fold.
type Fold struct {
	TrainIndices []int
	TestIndices  []int
}

// StratifiedKFold splits rows into k folds preserving per-class proportions.
// Rows are shuffled within each class using a PCG stream seeded with seed,
// so identical inputs produce identical folds.
func StratifiedKFold(y []float64, k int, seed uint64) ([]Fold, error) {
	n := len(y)
	if n == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "StratifiedKFold")
	}
	if k < 2 {
		return nil, errors.NewValueError("StratifiedKFold", "fold count must be >= 2")
	}
	if k > n {
		return nil, errors.NewValueError("StratifiedKFold", "fold count exceeds row count")
	}

	classIndices := make(map[float64][]int)
	var order []float64
	for i, label := range y {
		if _, ok := classIndices[label]; !ok {
			order = append(order, label)
		}
		classIndices[label] = append(classIndices[label], i)
	}

	r := rand.New(rand.NewPCG(seed, seed))
	for _, label := range order {
		indices := classIndices[label]
		r.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	folds := make([]Fold, k)

	// Deal every class across the folds so proportions stay balanced.
	for _, label := range order {
		indices := classIndices[label]
		nClass := len(indices)
		foldSize := nClass / k
		remainder := nClass % k

		current := 0
		for f := 0; f < k; f++ {
			testSize := foldSize
			if f < remainder {
				testSize++
			}
			for j := 0; j < testSize && current < nClass; j++ {
				folds[f].TestIndices = append(folds[f].TestIndices, indices[current])
				current++
			}
		}
	}

	for f := range folds {
		inTest := make(map[int]struct{}, len(folds[f].TestIndices))
		for _, i := range folds[f].TestIndices {
			inTest[i] = struct{}{}
		}
		for i := 0; i < n; i++ {
			if _, ok := inTest[i]; !ok {
				folds[f].TrainIndices = append(folds[f].TrainIndices, i)
			}
		}
	}

	return folds, nil
}

// Subset copies the given rows of X into a new matrix.
func Subset(X mat.Matrix, idx []int) *mat.Dense {
	_, cols := X.Dims()
	out := mat.NewDense(len(idx), cols, nil)
	for k, i := range idx {
		for j := 0; j < cols; j++ {
			out.Set(k, j, X.At(i, j))
		}
	}
	return out
}

// SubsetLabels copies the given entries of y into a new slice.
func SubsetLabels(y []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for k, i := range idx {
		out[k] = y[i]
	}
	return out
}
