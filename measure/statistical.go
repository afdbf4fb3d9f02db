package measure

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/YuminosukeSato/gomfe/pkg/errors"
)

func registerStatistical(r *Registry) {
	r.Register(&Descriptor{
		Name:     "cor",
		Group:    GroupStatistical,
		Output:   OutputVector,
		Requires: []string{PreCorrelation},
		Compute: func(env *Env, args Args) ([]float64, error) {
			corr, err := correlationOf(env, args)
			if err != nil {
				return nil, err
			}
			return upperTriangleAbs(corr.SymmetricDim(), corr.At)
		},
	})
	r.Register(&Descriptor{
		Name:     "cov",
		Group:    GroupStatistical,
		Output:   OutputVector,
		Requires: []string{PreCovariance},
		Compute: func(env *Env, args Args) ([]float64, error) {
			cov, err := covarianceOf(env, args)
			if err != nil {
				return nil, err
			}
			return upperTriangleAbs(cov.SymmetricDim(), cov.At)
		},
	})
	r.Register(&Descriptor{
		Name:     "eigenvalues",
		Group:    GroupStatistical,
		Output:   OutputVector,
		Requires: []string{PreEigen},
		Compute: func(env *Env, args Args) ([]float64, error) {
			ei, err := eigenOf(env, args)
			if err != nil {
				return nil, err
			}
			out := make([]float64, len(ei.Values))
			copy(out, ei.Values)
			return out, nil
		},
	})
	r.Register(&Descriptor{
		Name:   "g_mean",
		Group:  GroupStatistical,
		Output: OutputVector,
		Compute: func(env *Env, _ Args) ([]float64, error) {
			return perNumericColumn(env, geometricMean)
		},
	})
	r.Register(&Descriptor{
		Name:     "gravity",
		Group:    GroupStatistical,
		Task:     AppliesSupervised,
		Output:   OutputScalar,
		Requires: []string{PreClasses},
		Compute:  computeGravity,
	})
	r.Register(&Descriptor{
		Name:   "h_mean",
		Group:  GroupStatistical,
		Output: OutputVector,
		Compute: func(env *Env, _ Args) ([]float64, error) {
			return perNumericColumn(env, func(col []float64) float64 {
				v, err := stats.HarmonicMean(col)
				if err != nil {
					return math.NaN()
				}
				return v
			})
		},
	})
	r.Register(&Descriptor{
		Name:   "iq_range",
		Group:  GroupStatistical,
		Output: OutputVector,
		Compute: func(env *Env, _ Args) ([]float64, error) {
			return perNumericColumn(env, func(col []float64) float64 {
				v, err := stats.InterQuartileRange(col)
				if err != nil {
					return math.NaN()
				}
				return v
			})
		},
	})
	r.Register(&Descriptor{
		Name:   "kurtosis",
		Group:  GroupStatistical,
		Output: OutputVector,
		Compute: func(env *Env, _ Args) ([]float64, error) {
			return perNumericColumn(env, func(col []float64) float64 {
				_, m2, _, m4 := sampleMoments(col)
				if m2 == 0 {
					return math.NaN()
				}
				return m4/(m2*m2) - 3
			})
		},
	})
	r.Register(&Descriptor{
		Name:   "mad",
		Group:  GroupStatistical,
		Output: OutputVector,
		Compute: func(env *Env, _ Args) ([]float64, error) {
			return perNumericColumn(env, medianAbsDeviation)
		},
	})
	r.Register(&Descriptor{
		Name:   "max",
		Group:  GroupStatistical,
		Output: OutputVector,
		Compute: func(env *Env, _ Args) ([]float64, error) {
			return perNumericColumn(env, func(col []float64) float64 {
				out := col[0]
				for _, v := range col {
					out = math.Max(out, v)
				}
				return out
			})
		},
	})
	r.Register(&Descriptor{
		Name:   "mean",
		Group:  GroupStatistical,
		Output: OutputVector,
		Compute: func(env *Env, _ Args) ([]float64, error) {
			return perNumericColumn(env, meanOf)
		},
	})
	r.Register(&Descriptor{
		Name:   "median",
		Group:  GroupStatistical,
		Output: OutputVector,
		Compute: func(env *Env, _ Args) ([]float64, error) {
			return perNumericColumn(env, func(col []float64) float64 {
				v, err := stats.Median(col)
				if err != nil {
					return math.NaN()
				}
				return v
			})
		},
	})
	r.Register(&Descriptor{
		Name:   "min",
		Group:  GroupStatistical,
		Output: OutputVector,
		Compute: func(env *Env, _ Args) ([]float64, error) {
			return perNumericColumn(env, func(col []float64) float64 {
				out := col[0]
				for _, v := range col {
					out = math.Min(out, v)
				}
				return out
			})
		},
	})
	r.Register(&Descriptor{
		Name:     "nr_cor_attr",
		Group:    GroupStatistical,
		Output:   OutputScalar,
		Requires: []string{PreCorrelation},
		Defaults: Args{"threshold": 0.5},
		Compute: func(env *Env, args Args) ([]float64, error) {
			corr, err := correlationOf(env, args)
			if err != nil {
				return nil, err
			}
			dim := corr.SymmetricDim()
			if dim < 2 {
				return nil, errors.Wrap(errors.ErrNotApplicable, "needs at least two numeric attributes")
			}
			threshold := floatArg(args, "threshold")
			hits, pairs := 0, 0
			for i := 0; i < dim; i++ {
				for j := i + 1; j < dim; j++ {
					pairs++
					if math.Abs(corr.At(i, j)) >= threshold {
						hits++
					}
				}
			}
			return scalar(float64(hits) / float64(pairs)), nil
		},
	})
	r.Register(&Descriptor{
		Name:     "nr_outliers",
		Group:    GroupStatistical,
		Output:   OutputScalar,
		Defaults: Args{"whis": 1.5},
		Compute: func(env *Env, args Args) ([]float64, error) {
			cols := numericColumns(env.Data)
			if len(cols) == 0 {
				return nil, errors.Wrap(errors.ErrNotApplicable, "no numeric attributes")
			}
			whis := floatArg(args, "whis")
			outliers := 0
			for _, col := range cols {
				if hasOutlier(col, whis) {
					outliers++
				}
			}
			return scalar(float64(outliers)), nil
		},
	})
	r.Register(&Descriptor{
		Name:   "range",
		Group:  GroupStatistical,
		Output: OutputVector,
		Compute: func(env *Env, _ Args) ([]float64, error) {
			return perNumericColumn(env, func(col []float64) float64 {
				lo, hi := col[0], col[0]
				for _, v := range col {
					lo = math.Min(lo, v)
					hi = math.Max(hi, v)
				}
				return hi - lo
			})
		},
	})
	r.Register(&Descriptor{
		Name:   "sd",
		Group:  GroupStatistical,
		Output: OutputVector,
		Compute: func(env *Env, _ Args) ([]float64, error) {
			return perNumericColumn(env, func(col []float64) float64 {
				return math.Sqrt(sampleVariance(col))
			})
		},
	})
	r.Register(&Descriptor{
		Name:   "skewness",
		Group:  GroupStatistical,
		Output: OutputVector,
		Compute: func(env *Env, _ Args) ([]float64, error) {
			return perNumericColumn(env, func(col []float64) float64 {
				_, m2, m3, _ := sampleMoments(col)
				if m2 == 0 {
					return math.NaN()
				}
				return m3 / math.Pow(m2, 1.5)
			})
		},
	})
	r.Register(&Descriptor{
		Name:   "sparsity",
		Group:  GroupStatistical,
		Output: OutputVector,
		Compute: func(env *Env, _ Args) ([]float64, error) {
			n := env.Data.Rows()
			if n < 2 {
				return nil, errors.Wrap(errors.ErrNotApplicable, "needs at least two rows")
			}
			out := make([]float64, env.Data.Attrs())
			for j := range out {
				phi := float64(distinctCount(env.Data.Column(j)))
				out[j] = (float64(n)/phi - 1) / float64(n-1)
			}
			return out, nil
		},
	})
	r.Register(&Descriptor{
		Name:     "t_mean",
		Group:    GroupStatistical,
		Output:   OutputVector,
		Defaults: Args{"pcut": 0.2},
		Compute: func(env *Env, args Args) ([]float64, error) {
			pcut := floatArg(args, "pcut")
			if pcut < 0 || pcut >= 0.5 {
				return nil, errors.NewConfigurationError("pcut", "must be in [0, 0.5)", pcut)
			}
			return perNumericColumn(env, func(col []float64) float64 {
				return trimmedMean(col, pcut)
			})
		},
	})
	r.Register(&Descriptor{
		Name:   "var",
		Group:  GroupStatistical,
		Output: OutputVector,
		Compute: func(env *Env, _ Args) ([]float64, error) {
			return perNumericColumn(env, sampleVariance)
		},
	})
}

// upperTriangleAbs flattens the strict upper triangle of a symmetric
// matrix as absolute values.
func upperTriangleAbs(dim int, at func(i, j int) float64) ([]float64, error) {
	if dim < 2 {
		return nil, errors.Wrap(errors.ErrNotApplicable, "needs at least two numeric attributes")
	}
	out := make([]float64, 0, dim*(dim-1)/2)
	for i := 0; i < dim; i++ {
		for j := i + 1; j < dim; j++ {
			out = append(out, math.Abs(at(i, j)))
		}
	}
	return out, nil
}

// computeGravity is the Euclidean distance between the numeric centroids
// of the majority and the minority class.
func computeGravity(env *Env, args Args) ([]float64, error) {
	ci, err := classInfoOf(env, args)
	if err != nil {
		return nil, err
	}
	if len(ci.Labels) < 2 {
		return nil, errors.Wrap(errors.ErrNotApplicable, "needs at least two classes")
	}
	cols := numericColumns(env.Data)
	if len(cols) == 0 {
		return nil, errors.Wrap(errors.ErrNotApplicable, "no numeric attributes")
	}

	major, minor := 0, 0
	for i, c := range ci.Counts {
		if c > ci.Counts[major] {
			major = i
		}
		if c < ci.Counts[minor] {
			minor = i
		}
	}
	if major == minor {
		minor = (major + 1) % len(ci.Labels)
	}

	var dist float64
	for _, col := range cols {
		var sumMajor, sumMinor float64
		for i, v := range col {
			switch ci.Assign[i] {
			case major:
				sumMajor += v
			case minor:
				sumMinor += v
			}
		}
		d := sumMajor/float64(ci.Counts[major]) - sumMinor/float64(ci.Counts[minor])
		dist += d * d
	}
	return scalar(math.Sqrt(dist)), nil
}

// geometricMean is defined for strictly positive values only; any other
// column yields NaN.
func geometricMean(col []float64) float64 {
	var logSum float64
	for _, v := range col {
		if v <= 0 {
			return math.NaN()
		}
		logSum += math.Log(v)
	}
	return math.Exp(logSum / float64(len(col)))
}

func sampleVariance(col []float64) float64 {
	if len(col) < 2 {
		return math.NaN()
	}
	mean := meanOf(col)
	var sum float64
	for _, v := range col {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(col)-1)
}

// medianAbsDeviation is the median absolute deviation scaled by 1.4826,
// the consistency constant for normally distributed data.
func medianAbsDeviation(col []float64) float64 {
	med, err := stats.Median(col)
	if err != nil {
		return math.NaN()
	}
	deviations := make([]float64, len(col))
	for i, v := range col {
		deviations[i] = math.Abs(v - med)
	}
	devMed, err := stats.Median(deviations)
	if err != nil {
		return math.NaN()
	}
	return 1.4826 * devMed
}

func hasOutlier(col []float64, whis float64) bool {
	q1, err := stats.Percentile(col, 25)
	if err != nil {
		return false
	}
	q3, err := stats.Percentile(col, 75)
	if err != nil {
		return false
	}
	lo := q1 - whis*(q3-q1)
	hi := q3 + whis*(q3-q1)
	for _, v := range col {
		if v < lo || v > hi {
			return true
		}
	}
	return false
}

func trimmedMean(col []float64, pcut float64) float64 {
	sorted := make([]float64, len(col))
	copy(sorted, col)
	sort.Float64s(sorted)
	cut := int(float64(len(sorted)) * pcut)
	trimmed := sorted[cut : len(sorted)-cut]
	if len(trimmed) == 0 {
		return math.NaN()
	}
	return meanOf(trimmed)
}
