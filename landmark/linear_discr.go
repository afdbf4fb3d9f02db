package landmark

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gomfe/core/model"
	"github.com/YuminosukeSato/gomfe/pkg/errors"
)

// LinearDiscriminant is a linear discriminant classifier with a pooled
// within-class covariance. As a landmarker it characterizes how linearly
// separable the classes are.
type LinearDiscriminant struct {
	model.BaseEstimator

	classes   []float64
	logPriors []float64
	means     []*mat.VecDense
	invCov    *mat.Dense
	nFeatures int
}

// NewLinearDiscriminant creates a linear discriminant classifier.
func NewLinearDiscriminant() *LinearDiscriminant {
	return &LinearDiscriminant{}
}

// Fit estimates class means and the pooled covariance inverse. A singular
// pooled covariance is regularized with a small ridge before inversion.
func (c *LinearDiscriminant) Fit(X mat.Matrix, y []float64) error {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return errors.Wrap(errors.ErrEmptyData, "LinearDiscriminant.Fit")
	}
	if len(y) != rows {
		return errors.NewDimensionError("LinearDiscriminant.Fit", rows, len(y), 0)
	}

	byClass := make(map[float64][]int)
	for i, label := range y {
		byClass[label] = append(byClass[label], i)
	}
	c.classes = c.classes[:0]
	for label := range byClass {
		c.classes = append(c.classes, label)
	}
	sort.Float64s(c.classes)
	if len(c.classes) < 2 {
		return errors.NewValueError("LinearDiscriminant.Fit", "needs at least two classes")
	}

	c.nFeatures = cols
	c.logPriors = make([]float64, len(c.classes))
	c.means = make([]*mat.VecDense, len(c.classes))

	pooled := mat.NewDense(cols, cols, nil)
	for k, label := range c.classes {
		idx := byClass[label]
		c.logPriors[k] = math.Log(float64(len(idx)) / float64(rows))

		mean := mat.NewVecDense(cols, nil)
		for _, i := range idx {
			for j := 0; j < cols; j++ {
				mean.SetVec(j, mean.AtVec(j)+X.At(i, j))
			}
		}
		mean.ScaleVec(1/float64(len(idx)), mean)
		c.means[k] = mean

		for _, i := range idx {
			for a := 0; a < cols; a++ {
				da := X.At(i, a) - mean.AtVec(a)
				for b := 0; b < cols; b++ {
					db := X.At(i, b) - mean.AtVec(b)
					pooled.Set(a, b, pooled.At(a, b)+da*db)
				}
			}
		}
	}
	denom := float64(rows - len(c.classes))
	if denom < 1 {
		denom = 1
	}
	pooled.Scale(1/denom, pooled)

	c.invCov = mat.NewDense(cols, cols, nil)
	if err := c.invCov.Inverse(pooled); err != nil {
		// Ridge regularization for singular pooled covariance.
		for j := 0; j < cols; j++ {
			pooled.Set(j, j, pooled.At(j, j)+1e-6)
		}
		if err := c.invCov.Inverse(pooled); err != nil {
			return errors.Wrap(errors.ErrSingularMatrix, "LinearDiscriminant.Fit")
		}
	}

	c.SetFitted()
	return nil
}

// Predict returns the class with the largest linear discriminant score for
// each row of X.
func (c *LinearDiscriminant) Predict(X mat.Matrix) ([]float64, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("LinearDiscriminant", "Predict")
	}
	rows, cols := X.Dims()
	if cols != c.nFeatures {
		return nil, errors.NewDimensionError("LinearDiscriminant.Predict", c.nFeatures, cols, 1)
	}

	// Precompute w_k = Σ⁻¹ μ_k and b_k = -½ μ_kᵀ Σ⁻¹ μ_k + log π_k.
	weights := make([]*mat.VecDense, len(c.classes))
	biases := make([]float64, len(c.classes))
	for k := range c.classes {
		w := mat.NewVecDense(cols, nil)
		w.MulVec(c.invCov, c.means[k])
		weights[k] = w
		biases[k] = -0.5*mat.Dot(c.means[k], w) + c.logPriors[k]
	}

	out := make([]float64, rows)
	x := mat.NewVecDense(cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			x.SetVec(j, X.At(i, j))
		}
		best := math.Inf(-1)
		for k := range c.classes {
			score := mat.Dot(x, weights[k]) + biases[k]
			if score > best {
				best = score
				out[i] = c.classes[k]
			}
		}
	}
	return out, nil
}

var _ model.Classifier = (*LinearDiscriminant)(nil)
