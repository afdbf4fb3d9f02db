package measure

import (
	"fmt"
	"math/rand/v2"

	"github.com/YuminosukeSato/gomfe/core/dataset"
	"github.com/YuminosukeSato/gomfe/pkg/errors"
)

// Group identifies a measure family. Families register in a fixed order
// and that order drives the output order of every extraction.
type Group string

const (
	GroupGeneral     Group = "general"
	GroupStatistical Group = "statistical"
	GroupInfoTheory  Group = "info-theory"
	GroupModelBased  Group = "model-based"
	GroupLandmarking Group = "landmarking"
	GroupClustering  Group = "clustering"
	GroupComplexity  Group = "complexity"
)

// Applicability states which task types a measure is defined for.
type Applicability int

const (
	AppliesBoth Applicability = iota
	AppliesSupervised
	AppliesUnsupervised
)

// Matches reports whether the detected task satisfies the applicability.
func (a Applicability) Matches(t dataset.Task) bool {
	switch a {
	case AppliesSupervised:
		return t == dataset.TaskSupervised
	case AppliesUnsupervised:
		return t == dataset.TaskUnsupervised
	default:
		return true
	}
}

func (a Applicability) String() string {
	switch a {
	case AppliesSupervised:
		return "supervised"
	case AppliesUnsupervised:
		return "unsupervised"
	default:
		return "both"
	}
}

// Output is the arity of a measure's raw result.
type Output int

const (
	OutputScalar Output = iota
	OutputVector
)

// Env is the read-only execution environment handed to measure and
// precomputation functions for one extraction run.
type Env struct {
	Data  *dataset.Dataset
	Cache *Cache
	Reg   *Registry
	Seed  uint64
}

// RNG returns a deterministic generator for the given stream offset. The
// same seed and offset always produce the same sequence.
func (e *Env) RNG(offset uint64) *rand.Rand {
	return rand.New(rand.NewPCG(e.Seed+offset, e.Seed+offset))
}

// Precomputed looks up a precomputation result for the given merged
// measure arguments. The lookup key is derived the same way the plan
// derived it, so a measure always sees the entry computed for its own
// argument signature.
func (e *Env) Precomputed(name string, args Args) (any, error) {
	pre, ok := e.Reg.Precomputer(name)
	if !ok {
		return nil, errors.NewConfigurationError("requires", "unknown precomputation", name)
	}
	value, err, ok := e.Cache.Lookup(pre.CacheKey(args))
	if !ok {
		return nil, errors.NewPrecomputationError(name, errors.New("value was not computed for this run"))
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// ComputeFunc computes a measure's raw value. Scalar measures return a
// single element; vector measures return the full vector.
type ComputeFunc func(env *Env, args Args) ([]float64, error)

// Descriptor is one registered measure.
type Descriptor struct {
	Name     string
	Group    Group
	Task     Applicability
	Output   Output
	Requires []string
	ModelDep bool
	Defaults Args
	Compute  ComputeFunc
}

// MergedArgs overlays the user arguments on the measure defaults.
func (d *Descriptor) MergedArgs(user Args) Args {
	return d.Defaults.Merge(user)
}

// ValidateArgs rejects argument keys the measure does not accept and
// values whose type is incompatible with the declared default. Runs at
// configuration time, before any computation.
func (d *Descriptor) ValidateArgs(user Args) error {
	for key, value := range user {
		def, ok := d.Defaults[key]
		if !ok {
			return errors.NewConfigurationError(
				"args", fmt.Sprintf("measure %q does not accept parameter %q", d.Name, key), value)
		}
		if !compatibleValue(def, value) {
			return errors.NewConfigurationError(
				"args", fmt.Sprintf("parameter %q of measure %q has incompatible type", key, d.Name), value)
		}
	}
	return nil
}

func compatibleValue(def, value any) bool {
	switch def.(type) {
	case int, float64:
		switch value.(type) {
		case int, float64:
			return true
		}
		return false
	case string:
		_, ok := value.(string)
		return ok
	case bool:
		_, ok := value.(bool)
		return ok
	case []float64:
		_, ok := value.([]float64)
		return ok
	default:
		return true
	}
}
