package summary

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/YuminosukeSato/gomfe/pkg/errors"
)

// registerBuiltins installs the built-in summaries in their fixed
// registration order. The order is part of the library contract: reported
// feature names derive from it.
func registerBuiltins(r *Registry) {
	scalarWidth := func(Params) int { return 1 }

	r.Register(&Descriptor{
		Name:     "mean",
		Defaults: Params{},
		Width:    scalarWidth,
		Reduce: func(values []float64, _ Params) ([]float64, error) {
			m, err := stats.Mean(values)
			if err != nil {
				return nil, err
			}
			return []float64{m}, nil
		},
	})

	r.Register(&Descriptor{
		Name:     "sd",
		Defaults: Params{"ddof": 1},
		Width:    scalarWidth,
		Reduce: func(values []float64, p Params) ([]float64, error) {
			v, err := varianceWithDdof(values, paramInt(p, "ddof", 1))
			if err != nil {
				return nil, err
			}
			return []float64{math.Sqrt(v)}, nil
		},
	})

	r.Register(&Descriptor{
		Name:     "var",
		Defaults: Params{"ddof": 1},
		Width:    scalarWidth,
		Reduce: func(values []float64, p Params) ([]float64, error) {
			v, err := varianceWithDdof(values, paramInt(p, "ddof", 1))
			if err != nil {
				return nil, err
			}
			return []float64{v}, nil
		},
	})

	r.Register(&Descriptor{
		Name:     "median",
		Defaults: Params{},
		Width:    scalarWidth,
		Reduce: func(values []float64, _ Params) ([]float64, error) {
			m, err := stats.Median(values)
			if err != nil {
				return nil, err
			}
			return []float64{m}, nil
		},
	})

	r.Register(&Descriptor{
		Name:     "min",
		Defaults: Params{},
		Width:    scalarWidth,
		Reduce: func(values []float64, _ Params) ([]float64, error) {
			m, err := stats.Min(values)
			if err != nil {
				return nil, err
			}
			return []float64{m}, nil
		},
	})

	r.Register(&Descriptor{
		Name:     "max",
		Defaults: Params{},
		Width:    scalarWidth,
		Reduce: func(values []float64, _ Params) ([]float64, error) {
			m, err := stats.Max(values)
			if err != nil {
				return nil, err
			}
			return []float64{m}, nil
		},
	})

	r.Register(&Descriptor{
		Name:     "range",
		Defaults: Params{},
		Width:    scalarWidth,
		Reduce: func(values []float64, _ Params) ([]float64, error) {
			lo, err := stats.Min(values)
			if err != nil {
				return nil, err
			}
			hi, err := stats.Max(values)
			if err != nil {
				return nil, err
			}
			return []float64{hi - lo}, nil
		},
	})

	r.Register(&Descriptor{
		Name:     "iqr",
		Defaults: Params{},
		Width:    scalarWidth,
		Reduce: func(values []float64, _ Params) ([]float64, error) {
			iqr, err := stats.InterQuartileRange(values)
			if err != nil {
				return nil, err
			}
			return []float64{iqr}, nil
		},
	})

	r.Register(&Descriptor{
		Name:     "skewness",
		Defaults: Params{},
		Width:    scalarWidth,
		Reduce: func(values []float64, _ Params) ([]float64, error) {
			m2, m3, _ := centralMoments(values)
			if m2 == 0 {
				return nil, errors.ErrNotApplicable
			}
			return []float64{m3 / math.Pow(m2, 1.5)}, nil
		},
	})

	r.Register(&Descriptor{
		Name:     "kurtosis",
		Defaults: Params{},
		Width:    scalarWidth,
		Reduce: func(values []float64, _ Params) ([]float64, error) {
			m2, _, m4 := centralMoments(values)
			if m2 == 0 {
				return nil, errors.ErrNotApplicable
			}
			return []float64{m4/(m2*m2) - 3}, nil
		},
	})

	r.Register(&Descriptor{
		Name:     "quantiles",
		Defaults: Params{"probs": []float64{0, 0.25, 0.5, 0.75, 1}},
		Width: func(p Params) int {
			return len(paramFloats(p, "probs", []float64{0, 0.25, 0.5, 0.75, 1}))
		},
		Reduce: func(values []float64, p Params) ([]float64, error) {
			probs := paramFloats(p, "probs", []float64{0, 0.25, 0.5, 0.75, 1})
			sorted := sortedCopy(values)
			out := make([]float64, len(probs))
			for i, prob := range probs {
				if prob < 0 || prob > 1 {
					return nil, errors.NewValueError("quantiles", "probability points must lie in [0, 1]")
				}
				out[i] = Quantile(prob, sorted)
			}
			return out, nil
		},
	})

	r.Register(&Descriptor{
		Name:     "histogram",
		Defaults: Params{"bins": 10},
		Width: func(p Params) int {
			return paramInt(p, "bins", 10)
		},
		Reduce: func(values []float64, p Params) ([]float64, error) {
			bins := paramInt(p, "bins", 10)
			if bins < 1 {
				return nil, errors.NewValueError("histogram", "bin count must be >= 1")
			}
			out := make([]float64, bins)
			lo, hi := values[0], values[0]
			for _, v := range values {
				if v < lo {
					lo = v
				}
				if v > hi {
					hi = v
				}
			}
			span := hi - lo
			for _, v := range values {
				bin := 0
				if span > 0 {
					bin = int(float64(bins) * (v - lo) / span)
					if bin == bins {
						bin = bins - 1
					}
				}
				out[bin]++
			}
			for i := range out {
				out[i] /= float64(len(values))
			}
			return out, nil
		},
	})

	r.Register(&Descriptor{
		Name:     "count",
		Defaults: Params{},
		Width:    scalarWidth,
		Reduce: func(values []float64, _ Params) ([]float64, error) {
			return []float64{float64(len(values))}, nil
		},
	})
}

// varianceWithDdof computes the variance with the given delta degrees of
// freedom. When len(values) - ddof < 1 the statistic is undefined and the
// summary reports missing.
func varianceWithDdof(values []float64, ddof int) (float64, error) {
	n := len(values)
	if n-ddof < 1 {
		return 0, errors.ErrNotApplicable
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return 0, err
	}
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return sumSq / float64(n-ddof), nil
}

// centralMoments returns the second, third and fourth population central
// moments.
func centralMoments(values []float64) (m2, m3, m4 float64) {
	n := float64(len(values))
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= n

	for _, v := range values {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
		m4 += d * d * d * d
	}
	m2 /= n
	m3 /= n
	m4 /= n
	return m2, m3, m4
}
