package mfe

import (
	"runtime"

	"github.com/YuminosukeSato/gomfe/measure"
	"github.com/YuminosukeSato/gomfe/pkg/errors"
	"github.com/YuminosukeSato/gomfe/pkg/log"
	"github.com/YuminosukeSato/gomfe/summary"
)

// PerMeasureArgs carries per-measure keyword arguments for one extraction
// run, keyed by measure name. Unknown measure names and unknown argument
// keys are rejected before any computation starts.
type PerMeasureArgs = map[string]measure.Args

// Option configures an Extractor. Options are applied at construction and
// validated there; an invalid option fails NewExtractor with a
// ConfigurationError.
type Option func(*config) error

type config struct {
	groups          []string
	features        []string
	summaries       []string
	summaryArgs     map[string]summary.Params
	scalarSummaries bool
	workers         int
	seed            uint64
	logger          log.Logger
	registry        *measure.Registry
}

func defaultConfig() *config {
	return &config{
		summaries:   []string{"mean", "sd"},
		summaryArgs: make(map[string]summary.Params),
		workers:     runtime.NumCPU(),
		seed:        1,
		logger:      log.GetLoggerWithName("mfe"),
		registry:    measure.Default(),
	}
}

// WithGroups selects the measure groups to extract. "all" or an empty
// selection means every registered group. Ignored when WithFeatures is
// also given.
func WithGroups(names ...string) Option {
	return func(c *config) error {
		c.groups = append([]string(nil), names...)
		return nil
	}
}

// WithFeatures selects individual measures by name, overriding any group
// selection. Unknown names fail construction with a suggestion for the
// closest registered name.
func WithFeatures(names ...string) Option {
	return func(c *config) error {
		c.features = append([]string(nil), names...)
		return nil
	}
}

// WithSummaries selects the summary functions applied to vector-valued
// measures. The default is {"mean", "sd"}.
func WithSummaries(names ...string) Option {
	return func(c *config) error {
		c.summaries = append([]string(nil), names...)
		return nil
	}
}

// WithSummaryArgs overrides parameters of one selected summary function,
// for example the probs of "quantiles" or the ddof of "sd".
func WithSummaryArgs(name string, params summary.Params) Option {
	return func(c *config) error {
		c.summaryArgs[name] = params
		return nil
	}
}

// WithScalarSummaries makes scalar measure outputs pass through the
// summary functions like one-element vectors, so every reported feature
// carries a summary suffix. By default scalars are reported unsuffixed.
func WithScalarSummaries(enabled bool) Option {
	return func(c *config) error {
		c.scalarSummaries = enabled
		return nil
	}
}

// WithWorkers caps the number of concurrent bootstrap replicates. The
// default is runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return errors.NewConfigurationError("workers", "worker count must be >= 1", n)
		}
		c.workers = n
		return nil
	}
}

// WithRandomSeed fixes the seed for every stochastic step of a run:
// fold shuffling, random landmarkers and bootstrap resampling. The
// default seed is 1; equal seeds give equal results.
func WithRandomSeed(seed uint64) Option {
	return func(c *config) error {
		c.seed = seed
		return nil
	}
}

// WithLogger overrides the logger used for run diagnostics.
func WithLogger(l log.Logger) Option {
	return func(c *config) error {
		if l == nil {
			return errors.NewConfigurationError("logger", "nil logger", nil)
		}
		c.logger = l
		return nil
	}
}

// withRegistry swaps the measure registry. Used by tests to inject
// failing precomputations.
func withRegistry(r *measure.Registry) Option {
	return func(c *config) error {
		c.registry = r
		return nil
	}
}
