// Package mfe is the public entry point of gomfe: a meta-feature
// extraction engine for tabular datasets in the style of pymfe. An
// Extractor is configured once with the measure groups or individual
// measures to compute and the summary functions that reduce vector
// outputs, fitted to a dataset, and then queried for meta-features,
// model-based features of a fitted tree, or bootstrap confidence
// intervals.
package mfe

import (
	"sort"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gomfe/core/dataset"
	"github.com/YuminosukeSato/gomfe/measure"
	"github.com/YuminosukeSato/gomfe/pkg/errors"
	"github.com/YuminosukeSato/gomfe/pkg/log"
	"github.com/YuminosukeSato/gomfe/summary"
	"github.com/YuminosukeSato/gomfe/tree"
)

// Extractor computes meta-features from a fitted dataset. Construct it
// with NewExtractor, call Fit once, then Extract as often as needed; the
// same fitted Extractor always reports the same feature names in the
// same order.
type Extractor struct {
	cfg      *config
	reg      *measure.Registry
	selected []*measure.Descriptor
	explicit bool
	sums     []*summary.Instance
	data     *dataset.Dataset
	logger   log.Logger
}

// NewExtractor validates the configuration and resolves the measure and
// summary selections. Unknown group, measure or summary names and
// malformed parameters fail here, before any data is touched.
func NewExtractor(opts ...Option) (*Extractor, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	sums, err := summary.Default().Resolve(cfg.summaries, cfg.summaryArgs)
	if err != nil {
		return nil, err
	}
	selected, err := cfg.registry.Resolve(cfg.groups, cfg.features)
	if err != nil {
		return nil, err
	}

	return &Extractor{
		cfg:      cfg,
		reg:      cfg.registry,
		selected: selected,
		explicit: len(cfg.features) > 0,
		sums:     sums,
		logger:   cfg.logger,
	}, nil
}

// Fit binds the Extractor to a dataset. X is copied; y may be nil for
// unsupervised data. Fitting again replaces the previous dataset.
func (ex *Extractor) Fit(X mat.Matrix, y []float64, fitOpts ...dataset.Option) error {
	d, err := dataset.New(X, y, fitOpts...)
	if err != nil {
		return err
	}
	ex.data = d
	ex.logger.Info("dataset fitted",
		log.SamplesKey, d.Rows(),
		log.AttributesKey, d.Attrs(),
		log.NumericKey, len(d.NumericIndices()),
		log.CategoricalKey, len(d.CategoricalIndices()),
		log.TaskKey, d.Task().String(),
	)
	return nil
}

// Extract computes the configured meta-features on the fitted dataset.
// Per-measure arguments override the measure defaults; unknown measure
// names or argument keys fail before any computation. Individual measure
// failures never abort the run, they surface as missing features.
func (ex *Extractor) Extract(args PerMeasureArgs) (*Result, error) {
	if ex.data == nil {
		return nil, errors.NewNotFittedError("Extractor", "Extract")
	}
	if err := ex.validateArgs(args); err != nil {
		return nil, err
	}
	logger := ex.logger.With(log.RunIDKey, uuid.NewString())
	return ex.run(ex.data, args, ex.cfg.seed, logger)
}

// ExtractFromModel computes the model-based meta-features of an already
// trained tree model, without requiring Fit: the model's structure
// snapshot replaces the internal model precomputation. The configured
// selection must contain at least one model-based measure.
func (ex *Extractor) ExtractFromModel(m tree.Introspector, args PerMeasureArgs) (*Result, error) {
	if m == nil {
		return nil, errors.NewValueError("ExtractFromModel", "nil model")
	}
	st := m.TreeStructure()
	if st == nil {
		return nil, errors.NewNotFittedError("Introspector", "TreeStructure")
	}
	var modelDescs []*measure.Descriptor
	for _, desc := range ex.selected {
		if desc.ModelDep {
			modelDescs = append(modelDescs, desc)
		}
	}
	if len(modelDescs) == 0 {
		return nil, errors.NewConfigurationError("features", "selection contains no model-based measures", ex.cfg.features)
	}
	if err := ex.validateArgs(args); err != nil {
		return nil, err
	}

	pre, ok := ex.reg.Precomputer(measure.PreModel)
	if !ok {
		return nil, errors.NewConfigurationError("registry", "model precomputation not registered", measure.PreModel)
	}
	env := &measure.Env{Data: ex.data, Cache: measure.NewCache(), Reg: ex.reg, Seed: ex.cfg.seed}
	for _, desc := range modelDescs {
		env.Cache.Put(pre.CacheKey(desc.MergedArgs(args[desc.Name])), st, nil)
	}

	logger := ex.logger.With(log.RunIDKey, uuid.NewString())
	res := &Result{}
	ex.dispatch(res, env, modelDescs, args, nil, logger)
	return res, nil
}

// validateArgs rejects arguments for unregistered measures and unknown or
// incompatible argument keys.
func (ex *Extractor) validateArgs(args PerMeasureArgs) error {
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		desc, ok := ex.reg.Lookup(name)
		if !ok {
			return errors.NewConfigurationError("args", "arguments given for an unknown measure", name)
		}
		if err := desc.ValidateArgs(args[name]); err != nil {
			return err
		}
	}
	return nil
}

// run executes the full pipeline on one dataset: task filtering,
// precomputation, dispatch and summarization.
func (ex *Extractor) run(d *dataset.Dataset, args PerMeasureArgs, seed uint64, logger log.Logger) (*Result, error) {
	task := d.Task()
	var report, compute []*measure.Descriptor
	incompatible := map[string]error{}
	for _, desc := range ex.selected {
		switch {
		case desc.Task.Matches(task):
			report = append(report, desc)
			compute = append(compute, desc)
		case ex.explicit:
			// Explicitly requested measures stay in the report as
			// missing; group-selected ones are silently excluded.
			report = append(report, desc)
			incompatible[desc.Name] = errors.NewIncompatibleMeasureError(desc.Name, task.String())
		}
	}

	plan, err := ex.reg.BuildPlan(compute, args)
	if err != nil {
		return nil, err
	}
	env := &measure.Env{Data: d, Cache: measure.NewCache(), Reg: ex.reg, Seed: seed}
	plan.Run(env)

	res := &Result{}
	ex.dispatch(res, env, report, args, incompatible, logger)
	return res, nil
}
