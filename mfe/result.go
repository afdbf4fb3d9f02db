package mfe

import "math"

// Feature is one reported value of an extraction: a measure name possibly
// suffixed with the summary that produced it. Missing features keep their
// position in the result; Value is meaningless while Missing is set and
// Cause, when present, explains the failure.
type Feature struct {
	Name    string
	Value   float64
	Missing bool
	Cause   error
}

// Result is the ordered outcome of one extraction run. The feature order
// is deterministic: measure registration order, then summary selection
// order within a measure.
type Result struct {
	features []Feature
}

// Features returns the features in report order.
func (r *Result) Features() []Feature {
	return r.features
}

// Len returns the number of reported features.
func (r *Result) Len() int {
	return len(r.features)
}

// Names returns the feature names in report order.
func (r *Result) Names() []string {
	out := make([]string, len(r.features))
	for i, f := range r.features {
		out[i] = f.Name
	}
	return out
}

// Values returns the feature values in report order. This is the flattened
// numeric view: missing features appear as NaN here and only here.
func (r *Result) Values() []float64 {
	out := make([]float64, len(r.features))
	for i, f := range r.features {
		if f.Missing {
			out[i] = math.NaN()
		} else {
			out[i] = f.Value
		}
	}
	return out
}

// Get returns the named feature and whether it exists.
func (r *Result) Get(name string) (Feature, bool) {
	for _, f := range r.features {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

func (r *Result) add(f Feature) {
	r.features = append(r.features, f)
}

// Interval is one feature's bootstrap confidence interval. Point carries
// the estimate from the original dataset; Lower and Upper are empirical
// percentile bounds over the replicates. Missing marks an interval that
// could not be formed, with Cause explaining why.
type Interval struct {
	Name    string
	Point   float64
	Lower   float64
	Upper   float64
	Level   float64
	Missing bool
	Cause   error
}
