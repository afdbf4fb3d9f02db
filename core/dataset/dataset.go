// Package dataset provides the immutable tabular dataset model that one
// extraction run operates on. A Dataset is constructed once at fit time and
// never mutated; bootstrap replicates construct new Dataset instances via
// Resample.
package dataset

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gomfe/pkg/errors"
	"github.com/YuminosukeSato/gomfe/preprocessing"
)

// Task classifies the problem a dataset describes.
type Task int

const (
	// TaskUnsupervised means no target labels are present.
	TaskUnsupervised Task = iota
	// TaskSupervised means a non-empty target sequence is present.
	TaskSupervised
)

// String returns the task name.
func (t Task) String() string {
	if t == TaskSupervised {
		return "supervised"
	}
	return "unsupervised"
}

// ColumnKind distinguishes numeric from categorical attribute columns.
// Categorical columns hold level codes as float64 values.
type ColumnKind int

const (
	// Numeric marks a continuous attribute column.
	Numeric ColumnKind = iota
	// Categorical marks a discrete attribute column holding level codes.
	Categorical
)

// Rescale selects the fit-time rescaling applied to numeric columns.
type Rescale int

const (
	// RescaleNone leaves numeric columns untouched.
	RescaleNone Rescale = iota
	// RescaleStandard standardizes numeric columns to zero mean, unit variance.
	RescaleStandard
	// RescaleMinMax scales numeric columns into [0, 1].
	RescaleMinMax
)

type config struct {
	names       []string
	categorical []int
	autoMax     int
	rescale     Rescale
}

// Option configures dataset construction.
type Option func(*config) error

// WithColumnNames attaches attribute names. The count must match the number
// of columns in X.
func WithColumnNames(names ...string) Option {
	return func(c *config) error {
		c.names = names
		return nil
	}
}

// WithCategoricalColumns marks the given column indices as categorical.
func WithCategoricalColumns(indices ...int) Option {
	return func(c *config) error {
		c.categorical = indices
		return nil
	}
}

// WithAutoCategorical marks every column whose values are all integral and
// take at most maxLevels distinct values as categorical.
func WithAutoCategorical(maxLevels int) Option {
	return func(c *config) error {
		if maxLevels < 2 {
			return errors.NewConfigurationError("maxLevels", "must be >= 2", maxLevels)
		}
		c.autoMax = maxLevels
		return nil
	}
}

// WithRescale applies the given rescaling to numeric columns at fit time.
func WithRescale(r Rescale) Option {
	return func(c *config) error {
		if r != RescaleNone && r != RescaleStandard && r != RescaleMinMax {
			return errors.NewConfigurationError("rescale", "unknown rescale mode", r)
		}
		c.rescale = r
		return nil
	}
}

// Dataset is an immutable feature matrix with per-column kinds, optional
// column names and an optional target vector.
type Dataset struct {
	x       *mat.Dense
	numeric *mat.Dense
	kinds   []ColumnKind
	names   []string
	numIdx  []int
	catIdx  []int
	y       []float64
}

// New validates and constructs a Dataset. X is copied; the caller keeps
// ownership of its matrix. y may be nil or empty for an unsupervised
// dataset; otherwise its length must equal the number of rows.
func New(X mat.Matrix, y []float64, opts ...Option) (*Dataset, error) {
	if X == nil {
		return nil, errors.NewValueError("dataset.New", "nil feature matrix")
	}
	rows, cols := X.Dims()
	if rows < 1 || cols < 1 {
		return nil, errors.Wrap(errors.ErrEmptyData, "dataset.New")
	}
	if len(y) > 0 && len(y) != rows {
		return nil, errors.NewDimensionError("dataset.New", rows, len(y), 0)
	}
	if err := errors.CheckMatrix("dataset.New", X, rows, cols); err != nil {
		return nil, err
	}
	if err := errors.CheckVector("dataset.New", y); err != nil {
		return nil, err
	}

	var cfg config
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.names != nil && len(cfg.names) != cols {
		return nil, errors.NewDimensionError("dataset.New", cols, len(cfg.names), 1)
	}

	d := &Dataset{
		x:     mat.DenseCopyOf(X),
		kinds: make([]ColumnKind, cols),
	}
	if cfg.names != nil {
		d.names = append([]string(nil), cfg.names...)
	}
	if len(y) > 0 {
		d.y = append([]float64(nil), y...)
	}

	for _, j := range cfg.categorical {
		if j < 0 || j >= cols {
			return nil, errors.NewConfigurationError("categoricalColumns", "column index out of range", j)
		}
		d.kinds[j] = Categorical
	}
	if cfg.autoMax > 0 {
		d.detectCategorical(cfg.autoMax)
	}

	for j := 0; j < cols; j++ {
		if d.kinds[j] == Numeric {
			d.numIdx = append(d.numIdx, j)
		} else {
			d.catIdx = append(d.catIdx, j)
		}
	}

	if cfg.rescale != RescaleNone && len(d.numIdx) > 0 {
		if err := d.rescaleNumeric(cfg.rescale); err != nil {
			return nil, err
		}
	}
	d.numeric = d.sliceColumns(d.numIdx)

	return d, nil
}

// detectCategorical marks columns whose values are all integral with at most
// maxLevels distinct values.
func (d *Dataset) detectCategorical(maxLevels int) {
	rows, cols := d.x.Dims()
	for j := 0; j < cols; j++ {
		if d.kinds[j] == Categorical {
			continue
		}
		levels := make(map[float64]struct{})
		integral := true
		for i := 0; i < rows; i++ {
			v := d.x.At(i, j)
			if v != math.Trunc(v) {
				integral = false
				break
			}
			levels[v] = struct{}{}
			if len(levels) > maxLevels {
				break
			}
		}
		if integral && len(levels) <= maxLevels {
			d.kinds[j] = Categorical
		}
	}
}

func (d *Dataset) rescaleNumeric(mode Rescale) error {
	sub := d.sliceColumns(d.numIdx)

	var scaler interface {
		FitTransform(X mat.Matrix) (mat.Matrix, error)
	}
	if mode == RescaleStandard {
		scaler = preprocessing.NewStandardScaler()
	} else {
		scaler = preprocessing.NewMinMaxScaler(0, 1)
	}

	scaled, err := scaler.FitTransform(sub)
	if err != nil {
		return err
	}
	rows, _ := d.x.Dims()
	for k, j := range d.numIdx {
		for i := 0; i < rows; i++ {
			d.x.Set(i, j, scaled.At(i, k))
		}
	}
	return nil
}

// sliceColumns copies the given columns into a new matrix. Returns nil when
// cols is empty.
func (d *Dataset) sliceColumns(cols []int) *mat.Dense {
	if len(cols) == 0 {
		return nil
	}
	rows, _ := d.x.Dims()
	out := mat.NewDense(rows, len(cols), nil)
	for k, j := range cols {
		for i := 0; i < rows; i++ {
			out.Set(i, k, d.x.At(i, j))
		}
	}
	return out
}

// Rows returns the number of instances.
func (d *Dataset) Rows() int {
	r, _ := d.x.Dims()
	return r
}

// Attrs returns the number of attribute columns.
func (d *Dataset) Attrs() int {
	_, c := d.x.Dims()
	return c
}

// X returns the full attribute matrix. The matrix is owned by the dataset
// and must be treated as read-only.
func (d *Dataset) X() mat.Matrix {
	return d.x
}

// Numeric returns the numeric attribute columns as a matrix, or nil when the
// dataset has no numeric columns. Read-only.
func (d *Dataset) Numeric() *mat.Dense {
	return d.numeric
}

// Y returns the target labels, or nil for an unsupervised dataset. Read-only.
func (d *Dataset) Y() []float64 {
	return d.y
}

// HasTarget reports whether target labels are present.
func (d *Dataset) HasTarget() bool {
	return len(d.y) > 0
}

// Task detects the task type: supervised iff a non-empty target is present.
func (d *Dataset) Task() Task {
	if d.HasTarget() {
		return TaskSupervised
	}
	return TaskUnsupervised
}

// Kind returns the kind of column j.
func (d *Dataset) Kind(j int) ColumnKind {
	return d.kinds[j]
}

// Names returns the attribute names, or nil when none were provided.
func (d *Dataset) Names() []string {
	return d.names
}

// NumericIndices returns the indices of numeric columns in X.
func (d *Dataset) NumericIndices() []int {
	return d.numIdx
}

// CategoricalIndices returns the indices of categorical columns in X.
func (d *Dataset) CategoricalIndices() []int {
	return d.catIdx
}

// Column returns a copy of column j of X.
func (d *Dataset) Column(j int) []float64 {
	rows, _ := d.x.Dims()
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = d.x.At(i, j)
	}
	return out
}

// Resample returns a new Dataset whose rows are drawn from d with
// replacement, preserving the row count. The original is never mutated.
func (d *Dataset) Resample(rng *rand.Rand) *Dataset {
	rows, cols := d.x.Dims()
	x := mat.NewDense(rows, cols, nil)
	var y []float64
	if d.HasTarget() {
		y = make([]float64, rows)
	}
	for i := 0; i < rows; i++ {
		src := rng.IntN(rows)
		for j := 0; j < cols; j++ {
			x.Set(i, j, d.x.At(src, j))
		}
		if y != nil {
			y[i] = d.y[src]
		}
	}

	out := &Dataset{
		x:      x,
		kinds:  d.kinds,
		names:  d.names,
		numIdx: d.numIdx,
		catIdx: d.catIdx,
		y:      y,
	}
	out.numeric = out.sliceColumns(out.numIdx)
	return out
}
