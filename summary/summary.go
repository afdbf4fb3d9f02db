// Package summary implements the summarization engine: pluggable reduction
// functions that turn a vector-valued measure output into one or more
// reported scalar values. Summaries are registered once at process start;
// iteration order is registration order so extraction output stays
// deterministic.
package summary

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/YuminosukeSato/gomfe/pkg/errors"
)

// Params holds a summary function's parameters (ddof, probs, bins, ...).
type Params map[string]any

// clone returns a shallow copy.
func (p Params) clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Descriptor describes one summarization function: its name, parameter
// defaults, output width and the reduction itself. The key set of Defaults
// is the accepted-parameter set; unknown parameters are rejected at
// configuration time.
type Descriptor struct {
	Name     string
	Defaults Params

	// Width returns the output width for the given parameters. 1 for
	// scalar summaries; quantiles and histogram derive their width from
	// probs/bins.
	Width func(p Params) int

	// Reduce reduces a cleaned (finite, non-empty) vector. Returning
	// errors.ErrNotApplicable marks the summary as mathematically
	// undefined for this input; it is reported missing.
	Reduce func(values []float64, p Params) ([]float64, error)
}

// Instance binds a Descriptor to resolved parameters.
type Instance struct {
	Desc   *Descriptor
	Params Params
}

// Name returns the summary name.
func (in *Instance) Name() string {
	return in.Desc.Name
}

// Width returns the output width under the bound parameters.
func (in *Instance) Width() int {
	return in.Desc.Width(in.Params)
}

// Apply reduces values. Empty input is undefined for every summary except
// count and reports missing.
func (in *Instance) Apply(values []float64) ([]float64, error) {
	if len(values) == 0 && in.Desc.Name != "count" {
		return nil, errors.ErrNotApplicable
	}
	return in.Desc.Reduce(values, in.Params)
}

// Registry is an ordered catalogue of summary descriptors.
type Registry struct {
	ordered []*Descriptor
	byName  map[string]*Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Descriptor)}
}

// Register appends a descriptor. Duplicate names panic: registration runs
// once at process start and a duplicate is a programming error.
func (r *Registry) Register(d *Descriptor) {
	if _, ok := r.byName[d.Name]; ok {
		panic(fmt.Sprintf("summary: duplicate registration of %q", d.Name))
	}
	r.ordered = append(r.ordered, d)
	r.byName[d.Name] = d
}

// Names returns the registered summary names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.ordered))
	for i, d := range r.ordered {
		out[i] = d.Name
	}
	return out
}

// Resolve binds the named summaries to their parameters, applying overrides
// on top of defaults. Unknown summary names and unknown parameter keys fail
// with a ConfigurationError before any computation runs. The result follows
// the caller's name order.
func (r *Registry) Resolve(names []string, overrides map[string]Params) ([]*Instance, error) {
	if len(names) == 0 {
		return nil, errors.NewConfigurationError("summary", "at least one summary function is required", names)
	}

	out := make([]*Instance, 0, len(names))
	for _, name := range names {
		desc, ok := r.byName[name]
		if !ok {
			return nil, errors.NewConfigurationError("summary", "unknown summary function", name)
		}

		params := desc.Defaults.clone()
		if over, ok := overrides[name]; ok {
			for key, value := range over {
				if _, accepted := desc.Defaults[key]; !accepted {
					return nil, errors.NewConfigurationError(
						"summaryArgs", fmt.Sprintf("summary %q does not accept parameter %q", name, key), value)
				}
				params[key] = value
			}
		}
		out = append(out, &Instance{Desc: desc, Params: params})
	}

	for name := range overrides {
		if _, ok := r.byName[name]; !ok {
			return nil, errors.NewConfigurationError("summaryArgs", "unknown summary function", name)
		}
	}

	return out, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry holding the built-in summaries.
// It is built once and read-only afterwards.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		registerBuiltins(defaultRegistry)
	})
	return defaultRegistry
}

// paramInt reads an int parameter, accepting int or float64 values.
func paramInt(p Params, key string, fallback int) int {
	v, ok := p[key]
	if !ok {
		return fallback
	}
	switch value := v.(type) {
	case int:
		return value
	case float64:
		return int(value)
	default:
		return fallback
	}
}

// paramFloats reads a []float64 parameter.
func paramFloats(p Params, key string, fallback []float64) []float64 {
	v, ok := p[key]
	if !ok {
		return fallback
	}
	if value, ok := v.([]float64); ok {
		return value
	}
	return fallback
}

// sortedCopy returns values sorted ascending without mutating the input.
func sortedCopy(values []float64) []float64 {
	out := append([]float64(nil), values...)
	sort.Float64s(out)
	return out
}

// Quantile returns the linearly interpolated quantile of an ascending
// sorted, non-empty slice: h = p*(n-1), interpolated between the values at
// floor(h) and ceil(h). This matches numpy's default percentile, so
// p = 0, 0.5 and 1 yield the minimum, the median and the maximum.
func Quantile(p float64, sorted []float64) float64 {
	h := p * float64(len(sorted)-1)
	i := int(math.Floor(h))
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-math.Floor(h))*(sorted[i+1]-sorted[i])
}
