package landmark

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gomfe/core/model"
	"github.com/YuminosukeSato/gomfe/pkg/errors"
)

// OneNN is a 1-nearest-neighbor classifier over Euclidean distance. It
// characterizes how separable the classes are in the raw attribute space.
type OneNN struct {
	model.BaseEstimator

	x *mat.Dense
	y []float64
}

// NewOneNN creates a 1-NN classifier.
func NewOneNN() *OneNN {
	return &OneNN{}
}

// Fit stores the training set.
func (c *OneNN) Fit(X mat.Matrix, y []float64) error {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return errors.Wrap(errors.ErrEmptyData, "OneNN.Fit")
	}
	if len(y) != rows {
		return errors.NewDimensionError("OneNN.Fit", rows, len(y), 0)
	}

	c.x = mat.DenseCopyOf(X)
	c.y = append([]float64(nil), y...)
	c.SetFitted()
	return nil
}

// Predict returns the label of the nearest training row for each row of X.
func (c *OneNN) Predict(X mat.Matrix) ([]float64, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("OneNN", "Predict")
	}
	rows, cols := X.Dims()
	trainRows, trainCols := c.x.Dims()
	if cols != trainCols {
		return nil, errors.NewDimensionError("OneNN.Predict", trainCols, cols, 1)
	}

	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		best := math.Inf(1)
		for k := 0; k < trainRows; k++ {
			var dist float64
			for j := 0; j < cols; j++ {
				d := X.At(i, j) - c.x.At(k, j)
				dist += d * d
			}
			if dist < best {
				best = dist
				out[i] = c.y[k]
			}
		}
	}
	return out, nil
}

var _ model.Classifier = (*OneNN)(nil)
