package landmark

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gomfe/core/model"
	"github.com/YuminosukeSato/gomfe/pkg/errors"
)

// GaussianNB is a Gaussian naive Bayes classifier. As a landmarker it
// characterizes how well the attributes separate classes under an
// independence assumption.
type GaussianNB struct {
	model.BaseEstimator

	classes   []float64
	logPriors []float64
	means     [][]float64
	variances [][]float64
	nFeatures int
}

// NewGaussianNB creates a Gaussian naive Bayes classifier.
func NewGaussianNB() *GaussianNB {
	return &GaussianNB{}
}

// Fit estimates per-class priors and per-feature Gaussian parameters.
func (c *GaussianNB) Fit(X mat.Matrix, y []float64) error {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return errors.Wrap(errors.ErrEmptyData, "GaussianNB.Fit")
	}
	if len(y) != rows {
		return errors.NewDimensionError("GaussianNB.Fit", rows, len(y), 0)
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

	c.nFeatures = cols
	c.logPriors = make([]float64, len(c.classes))
	c.means = make([][]float64, len(c.classes))
	c.variances = make([][]float64, len(c.classes))

	// Variance smoothing keeps constant features from collapsing the
	// likelihood. Scaled to the largest per-feature variance, as in
	// standard naive Bayes implementations.
	maxVar := 0.0

	for k, label := range c.classes {
		idx := byClass[label]
		c.logPriors[k] = math.Log(float64(len(idx)) / float64(rows))
		c.means[k] = make([]float64, cols)
		c.variances[k] = make([]float64, cols)

		for j := 0; j < cols; j++ {
			var sum float64
			for _, i := range idx {
				sum += X.At(i, j)
			}
			mean := sum / float64(len(idx))
			c.means[k][j] = mean

			var sumSq float64
			for _, i := range idx {
				d := X.At(i, j) - mean
				sumSq += d * d
			}
			variance := sumSq / float64(len(idx))
			c.variances[k][j] = variance
			if variance > maxVar {
				maxVar = variance
			}
		}
	}

	epsilon := 1e-9 * maxVar
	if epsilon == 0 {
		epsilon = 1e-9
	}
	for k := range c.variances {
		for j := range c.variances[k] {
			c.variances[k][j] += epsilon
		}
	}

	c.SetFitted()
	return nil
}

// Predict returns the maximum-posterior class label for each row of X.
func (c *GaussianNB) Predict(X mat.Matrix) ([]float64, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("GaussianNB", "Predict")
	}
	rows, cols := X.Dims()
	if cols != c.nFeatures {
		return nil, errors.NewDimensionError("GaussianNB.Predict", c.nFeatures, cols, 1)
	}

	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		best := math.Inf(-1)
		for k := range c.classes {
			logp := c.logPriors[k]
			for j := 0; j < cols; j++ {
				d := X.At(i, j) - c.means[k][j]
				v := c.variances[k][j]
				logp += -0.5*math.Log(2*math.Pi*v) - d*d/(2*v)
			}
			if logp > best {
				best = logp
				out[i] = c.classes[k]
			}
		}
	}
	return out, nil
}

var _ model.Classifier = (*GaussianNB)(nil)
