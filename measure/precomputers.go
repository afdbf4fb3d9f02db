package measure

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/gomfe/core/dataset"
	"github.com/YuminosukeSato/gomfe/core/parallel"
	"github.com/YuminosukeSato/gomfe/landmark"
	"github.com/YuminosukeSato/gomfe/pkg/errors"
	"github.com/YuminosukeSato/gomfe/preprocessing"
	"github.com/YuminosukeSato/gomfe/tree"
)

// Built-in precomputation names.
const (
	PreClasses     = "classes"
	PreCovariance  = "covariance"
	PreCorrelation = "correlation"
	PreEigen       = "eigen"
	PreDistances   = "distances"
	PreBinned      = "binned"
	PreModel       = "model"
	PreFolds       = "folds"
)

// ClassInfo is the cached class inventory of a supervised run.
type ClassInfo struct {
	// Labels holds the distinct class labels in ascending order.
	Labels []float64
	// Counts holds the absolute frequency of each label.
	Counts []int
	// Index maps a label value to its position in Labels.
	Index map[float64]int
	// Assign holds the label index of every row.
	Assign []int
}

// Freqs returns the relative class frequencies.
func (ci *ClassInfo) Freqs() []float64 {
	total := len(ci.Assign)
	out := make([]float64, len(ci.Counts))
	for i, c := range ci.Counts {
		out[i] = float64(c) / float64(total)
	}
	return out
}

// EigenInfo holds the eigenvalues of the numeric covariance matrix in
// descending order.
type EigenInfo struct {
	Values []float64
}

// DistanceInfo holds the pairwise Euclidean distance matrix between
// instances over the numeric attributes.
type DistanceInfo struct {
	D *mat.SymDense
}

// BinnedInfo holds the discretized view of every attribute: categorical
// columns keep their level codes, numeric columns are equal-width binned.
type BinnedInfo struct {
	Codes [][]int
}

func registerPrecomputers(r *Registry) {
	r.RegisterPrecomputer(&Precomputer{
		Name: PreClasses,
		Task: AppliesSupervised,
		Run:  precomputeClasses,
	})
	r.RegisterPrecomputer(&Precomputer{
		Name: PreCovariance,
		Run:  precomputeCovariance,
	})
	r.RegisterPrecomputer(&Precomputer{
		Name: PreCorrelation,
		Run:  precomputeCorrelation,
	})
	r.RegisterPrecomputer(&Precomputer{
		Name:  PreEigen,
		After: []string{PreCovariance},
		Run:   precomputeEigen,
	})
	r.RegisterPrecomputer(&Precomputer{
		Name:     PreDistances,
		Defaults: Args{"scale": "none"},
		Run:      precomputeDistances,
	})
	r.RegisterPrecomputer(&Precomputer{
		Name:     PreBinned,
		Defaults: Args{"bins": 0},
		Run:      precomputeBinned,
	})
	r.RegisterPrecomputer(&Precomputer{
		Name:     PreModel,
		Task:     AppliesSupervised,
		Defaults: Args{"max_depth": 0},
		Run:      precomputeModel,
	})
	r.RegisterPrecomputer(&Precomputer{
		Name:     PreFolds,
		Task:     AppliesSupervised,
		Defaults: Args{"folds": 10},
		Run:      precomputeFolds,
	})
}

func precomputeClasses(env *Env, _ Args) (any, error) {
	y := env.Data.Y()
	if len(y) == 0 {
		return nil, errors.NewValueError("classes", "target labels required")
	}

	labels := make([]float64, 0)
	index := make(map[float64]int)
	for _, label := range y {
		if _, ok := index[label]; !ok {
			index[label] = 0
			labels = append(labels, label)
		}
	}
	sort.Float64s(labels)
	for i, label := range labels {
		index[label] = i
	}

	counts := make([]int, len(labels))
	assign := make([]int, len(y))
	for i, label := range y {
		assign[i] = index[label]
		counts[index[label]]++
	}
	return &ClassInfo{Labels: labels, Counts: counts, Index: index, Assign: assign}, nil
}

func precomputeCovariance(env *Env, _ Args) (any, error) {
	n := env.Data.Numeric()
	if n == nil {
		return nil, errors.Wrap(errors.ErrNotApplicable, "no numeric attributes")
	}
	if env.Data.Rows() < 2 {
		return nil, errors.Wrap(errors.ErrNotApplicable, "covariance needs at least two rows")
	}
	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, n, nil)
	return &cov, nil
}

func precomputeCorrelation(env *Env, _ Args) (any, error) {
	n := env.Data.Numeric()
	if n == nil {
		return nil, errors.Wrap(errors.ErrNotApplicable, "no numeric attributes")
	}
	if env.Data.Rows() < 2 {
		return nil, errors.Wrap(errors.ErrNotApplicable, "correlation needs at least two rows")
	}
	var corr mat.SymDense
	stat.CorrelationMatrix(&corr, n, nil)
	return &corr, nil
}

func precomputeEigen(env *Env, _ Args) (any, error) {
	cov, err := covarianceOf(env, nil)
	if err != nil {
		return nil, err
	}
	var es mat.EigenSym
	if !es.Factorize(cov, false) {
		return nil, errors.Wrap(errors.ErrSingularMatrix, "eigendecomposition failed")
	}
	values := es.Values(nil)
	sort.Sort(sort.Reverse(sort.Float64Slice(values)))
	return &EigenInfo{Values: values}, nil
}

func precomputeDistances(env *Env, args Args) (any, error) {
	n := env.Data.Numeric()
	if n == nil {
		return nil, errors.Wrap(errors.ErrNotApplicable, "no numeric attributes")
	}

	var m mat.Matrix = n
	switch scale := stringArg(args, "scale"); scale {
	case "none":
	case "min-max":
		scaler := preprocessing.NewMinMaxScaler(0, 1)
		scaled, err := scaler.FitTransform(n)
		if err != nil {
			return nil, err
		}
		m = scaled
	default:
		return nil, errors.NewConfigurationError("scale", `must be "none" or "min-max"`, scale)
	}

	rows, cols := m.Dims()
	d := mat.NewSymDense(rows, nil)
	// Row chunks write disjoint (i, j) entries, so no locking is needed.
	parallel.ParallelizeWithThreshold(rows, 64, func(start, end int) {
		for i := start; i < end; i++ {
			for j := i + 1; j < rows; j++ {
				var sum float64
				for k := 0; k < cols; k++ {
					diff := m.At(i, k) - m.At(j, k)
					sum += diff * diff
				}
				d.SetSym(i, j, math.Sqrt(sum))
			}
		}
	})
	return &DistanceInfo{D: d}, nil
}

func precomputeBinned(env *Env, args Args) (any, error) {
	rows := env.Data.Rows()
	bins := intArg(args, "bins")
	if bins == 0 {
		bins = int(math.Ceil(math.Sqrt(float64(rows))))
	}
	if bins < 1 {
		return nil, errors.NewConfigurationError("bins", "must be a positive bin count or 0 for the default", bins)
	}

	codes := make([][]int, env.Data.Attrs())
	for j := range codes {
		col := env.Data.Column(j)
		if env.Data.Kind(j) == dataset.Categorical {
			codes[j] = levelCodes(col)
			continue
		}
		codes[j] = equalWidthCodes(col, bins)
	}
	return &BinnedInfo{Codes: codes}, nil
}

// levelCodes maps the distinct values of a categorical column to dense
// integer codes in ascending value order.
func levelCodes(col []float64) []int {
	levels := make([]float64, 0)
	index := make(map[float64]int)
	for _, v := range col {
		if _, ok := index[v]; !ok {
			index[v] = 0
			levels = append(levels, v)
		}
	}
	sort.Float64s(levels)
	for i, v := range levels {
		index[v] = i
	}
	out := make([]int, len(col))
	for i, v := range col {
		out[i] = index[v]
	}
	return out
}

// equalWidthCodes assigns each value to one of bins equal-width intervals
// over the column's range. A zero-width range maps everything to bin 0.
func equalWidthCodes(col []float64, bins int) []int {
	lo, hi := col[0], col[0]
	for _, v := range col {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	out := make([]int, len(col))
	span := hi - lo
	if span == 0 {
		return out
	}
	for i, v := range col {
		code := int(float64(bins) * (v - lo) / span)
		if code >= bins {
			code = bins - 1
		}
		out[i] = code
	}
	return out
}

func precomputeModel(env *Env, args Args) (any, error) {
	y := env.Data.Y()
	if len(y) == 0 {
		return nil, errors.NewValueError("model", "target labels required")
	}

	opts := make([]tree.Option, 0, 1)
	if depth := intArg(args, "max_depth"); depth > 0 {
		opts = append(opts, tree.WithMaxDepth(depth))
	}
	clf := tree.NewClassifier(opts...)
	if err := clf.Fit(env.Data.X(), y); err != nil {
		return nil, err
	}
	return clf.TreeStructure(), nil
}

func precomputeFolds(env *Env, args Args) (any, error) {
	y := env.Data.Y()
	if len(y) == 0 {
		return nil, errors.NewValueError("folds", "target labels required")
	}
	return landmark.StratifiedKFold(y, intArg(args, "folds"), env.Seed)
}

// Typed cache accessors used by the measure implementations.

func classInfoOf(env *Env, args Args) (*ClassInfo, error) {
	v, err := env.Precomputed(PreClasses, args)
	if err != nil {
		return nil, err
	}
	return v.(*ClassInfo), nil
}

func covarianceOf(env *Env, args Args) (*mat.SymDense, error) {
	v, err := env.Precomputed(PreCovariance, args)
	if err != nil {
		return nil, err
	}
	return v.(*mat.SymDense), nil
}

func correlationOf(env *Env, args Args) (*mat.SymDense, error) {
	v, err := env.Precomputed(PreCorrelation, args)
	if err != nil {
		return nil, err
	}
	return v.(*mat.SymDense), nil
}

func eigenOf(env *Env, args Args) (*EigenInfo, error) {
	v, err := env.Precomputed(PreEigen, args)
	if err != nil {
		return nil, err
	}
	return v.(*EigenInfo), nil
}

func distancesOf(env *Env, args Args) (*DistanceInfo, error) {
	v, err := env.Precomputed(PreDistances, args)
	if err != nil {
		return nil, err
	}
	return v.(*DistanceInfo), nil
}

func binnedOf(env *Env, args Args) (*BinnedInfo, error) {
	v, err := env.Precomputed(PreBinned, args)
	if err != nil {
		return nil, err
	}
	return v.(*BinnedInfo), nil
}

func modelOf(env *Env, args Args) (*tree.Structure, error) {
	v, err := env.Precomputed(PreModel, args)
	if err != nil {
		return nil, err
	}
	s, ok := v.(*tree.Structure)
	if !ok || s == nil {
		return nil, errors.NewPrecomputationError(PreModel, errors.New("model structure unavailable"))
	}
	return s, nil
}

func foldsOf(env *Env, args Args) ([]landmark.Fold, error) {
	v, err := env.Precomputed(PreFolds, args)
	if err != nil {
		return nil, err
	}
	return v.([]landmark.Fold), nil
}
