// Package preprocessing provides attribute scalers used for fit-time
// rescaling of numeric columns and by distance-based precomputations.
package preprocessing

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gomfe/core/model"
	"github.com/YuminosukeSato/gomfe/pkg/errors"
)

// StandardScaler standardizes columns to zero mean and unit variance.
type StandardScaler struct {
	model.BaseEstimator

	// Mean holds the per-column mean learned at fit time.
	Mean []float64

	// Scale holds the per-column standard deviation learned at fit time.
	Scale []float64

	// NFeatures is the number of columns seen at fit time.
	NFeatures int

	// WithMean controls whether the mean is subtracted (default true).
	WithMean bool

	// WithStd controls whether values are divided by the standard
	// deviation (default true).
	WithStd bool
}

// NewStandardScaler creates a StandardScaler that centers and scales.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{WithMean: true, WithStd: true}
}

// Fit learns per-column means and standard deviations from X.
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "StandardScaler.Fit")
	}

	s.NFeatures = c
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	for j := 0; j < c; j++ {
		if s.WithMean {
			sum := 0.0
			for i := 0; i < r; i++ {
				sum += X.At(i, j)
			}
			s.Mean[j] = sum / float64(r)
		}

		if s.WithStd {
			sumSquares := 0.0
			for i := 0; i < r; i++ {
				diff := X.At(i, j) - s.Mean[j]
				sumSquares += diff * diff
			}
			s.Scale[j] = math.Sqrt(sumSquares / float64(r))

			// Constant columns would divide by zero.
			if math.Abs(s.Scale[j]) < 1e-8 {
				s.Scale[j] = 1.0
			}
		} else {
			s.Scale[j] = 1.0
		}
	}

	s.SetFitted()
	return nil
}

// Transform standardizes X using the learned statistics.
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "Transform")
	}
	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.Transform", s.NFeatures, c, 1)
	}

	out := mat.NewDense(r, c, nil)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			out.Set(i, j, (X.At(i, j)-s.Mean[j])/s.Scale[j])
		}
	}
	return out, nil
}

// FitTransform fits on X and transforms it in one call.
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// MinMaxScaler scales each column into the [Min, Max] range.
type MinMaxScaler struct {
	model.BaseEstimator

	// Min and Max bound the output range.
	Min float64
	Max float64

	// DataMin and DataMax hold the per-column extrema learned at fit time.
	DataMin []float64
	DataMax []float64

	// NFeatures is the number of columns seen at fit time.
	NFeatures int
}

// NewMinMaxScaler creates a MinMaxScaler targeting the [min, max] range.
func NewMinMaxScaler(min, max float64) *MinMaxScaler {
	return &MinMaxScaler{Min: min, Max: max}
}

// Fit learns per-column extrema from X.
func (s *MinMaxScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "MinMaxScaler.Fit")
	}
	if s.Max <= s.Min {
		return errors.NewValueError("MinMaxScaler.Fit", "max must be greater than min")
	}

	s.NFeatures = c
	s.DataMin = make([]float64, c)
	s.DataMax = make([]float64, c)

	for j := 0; j < c; j++ {
		lo, hi := X.At(0, j), X.At(0, j)
		for i := 1; i < r; i++ {
			v := X.At(i, j)
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		s.DataMin[j] = lo
		s.DataMax[j] = hi
	}

	s.SetFitted()
	return nil
}

// Transform scales X into the configured range using the learned extrema.
// Constant columns map to Min.
func (s *MinMaxScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("MinMaxScaler", "Transform")
	}
	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("MinMaxScaler.Transform", s.NFeatures, c, 1)
	}

	out := mat.NewDense(r, c, nil)
	width := s.Max - s.Min
	for j := 0; j < c; j++ {
		span := s.DataMax[j] - s.DataMin[j]
		for i := 0; i < r; i++ {
			if span < 1e-8 {
				out.Set(i, j, s.Min)
				continue
			}
			out.Set(i, j, s.Min+(X.At(i, j)-s.DataMin[j])/span*width)
		}
	}
	return out, nil
}

// FitTransform fits on X and transforms it in one call.
func (s *MinMaxScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

var (
	_ model.Transformer = (*StandardScaler)(nil)
	_ model.Transformer = (*MinMaxScaler)(nil)
)
