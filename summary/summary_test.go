package summary

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/gomfe/pkg/errors"
)

func resolveOne(t *testing.T, name string, overrides map[string]Params) *Instance {
	t.Helper()
	instances, err := Default().Resolve([]string{name}, overrides)
	if err != nil {
		t.Fatalf("Resolve(%q) failed: %v", name, err)
	}
	return instances[0]
}

func TestBuiltinClosedForms(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	tests := []struct {
		name      string
		overrides map[string]Params
		want      []float64
		tolerance float64
	}{
		{name: "mean", want: []float64{5}, tolerance: 1e-12},
		{name: "sd", want: []float64{math.Sqrt(32.0 / 7.0)}, tolerance: 1e-12},
		{name: "var", want: []float64{32.0 / 7.0}, tolerance: 1e-12},
		{
			name:      "sd",
			overrides: map[string]Params{"sd": {"ddof": 0}},
			want:      []float64{2},
			tolerance: 1e-12,
		},
		{name: "median", want: []float64{4.5}, tolerance: 1e-12},
		{name: "min", want: []float64{2}, tolerance: 1e-12},
		{name: "max", want: []float64{9}, tolerance: 1e-12},
		{name: "range", want: []float64{7}, tolerance: 1e-12},
		{name: "count", want: []float64{8}, tolerance: 1e-12},
		{
			name:      "quantiles",
			overrides: map[string]Params{"quantiles": {"probs": []float64{0, 0.5, 1}}},
			want:      []float64{2, 4.5, 9},
			tolerance: 1e-12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := resolveOne(t, tt.name, tt.overrides)
			got, err := in.Apply(values)
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d values, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > tt.tolerance {
					t.Errorf("value %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestQuantile_LinearInterpolation(t *testing.T) {
	sorted := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	tests := []struct {
		name string
		p    float64
		want float64
	}{
		{"minimum", 0, 2},
		{"lower quartile", 0.25, 4},
		// h = 0.5*7 = 3.5 falls between the two middle values, so the
		// half quantile must agree with the median on even-length input.
		{"median", 0.5, 4.5},
		{"upper quartile", 0.75, 5.5},
		{"maximum", 1, 9},
		{"fractional offset", 0.1, 2 + 0.7*2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quantile(tt.p, sorted); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Quantile(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}

	t.Run("single value", func(t *testing.T) {
		if got := Quantile(0.5, []float64{3}); got != 3 {
			t.Errorf("Quantile(0.5) = %v, want 3", got)
		}
	})
}

func TestSkewnessKurtosis_SymmetricInput(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	in := resolveOne(t, "skewness", nil)
	got, err := in.Apply(values)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got[0]) > 1e-12 {
		t.Errorf("skewness of symmetric input = %v, want 0", got[0])
	}

	in = resolveOne(t, "kurtosis", nil)
	got, err = in.Apply(values)
	if err != nil {
		t.Fatal(err)
	}
	// Excess kurtosis of the discrete uniform {1..5} is -1.3.
	if math.Abs(got[0]-(-1.3)) > 1e-12 {
		t.Errorf("kurtosis = %v, want -1.3", got[0])
	}
}

func TestSdOfSingleValue_Missing(t *testing.T) {
	in := resolveOne(t, "sd", nil)

	_, err := in.Apply([]float64{42})
	if !errors.Is(err, errors.ErrNotApplicable) {
		t.Fatalf("sd of one value with ddof 1 should be missing, got %v", err)
	}

	// With ddof 0 the statistic is defined.
	in = resolveOne(t, "sd", map[string]Params{"sd": {"ddof": 0}})
	got, err := in.Apply([]float64{42})
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 0 {
		t.Errorf("sd = %v, want 0", got[0])
	}
}

func TestEmptyVector_Missing(t *testing.T) {
	for _, name := range []string{"mean", "sd", "median", "min", "max", "iqr", "histogram"} {
		in := resolveOne(t, name, nil)
		_, err := in.Apply(nil)
		if !errors.Is(err, errors.ErrNotApplicable) {
			t.Errorf("%s of empty vector should be missing, got %v", name, err)
		}
	}

	// count is the documented exception: an empty vector counts to zero.
	in := resolveOne(t, "count", nil)
	got, err := in.Apply(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 0 {
		t.Errorf("count = %v, want 0", got[0])
	}
}

func TestHistogram(t *testing.T) {
	in := resolveOne(t, "histogram", map[string]Params{"histogram": {"bins": 4}})

	got, err := in.Apply([]float64{0, 1, 2, 3, 4, 5, 6, 7})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 {
		t.Fatalf("got %d bins, want 4", len(got))
	}

	var total float64
	for _, frequency := range got {
		total += frequency
	}
	if math.Abs(total-1) > 1e-12 {
		t.Errorf("frequencies sum to %v, want 1", total)
	}
}

func TestHistogram_DegenerateRange(t *testing.T) {
	in := resolveOne(t, "histogram", map[string]Params{"histogram": {"bins": 3}})

	got, err := in.Apply([]float64{5, 5, 5})
	if err != nil {
		t.Fatal(err)
	}
	// All mass lands in bin 0 when the range is zero.
	if got[0] != 1 || got[1] != 0 || got[2] != 0 {
		t.Errorf("degenerate histogram = %v, want [1 0 0]", got)
	}
}

func TestResolve_Errors(t *testing.T) {
	t.Run("unknown summary", func(t *testing.T) {
		_, err := Default().Resolve([]string{"average"}, nil)
		var cfgErr *errors.ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigurationError, got %v", err)
		}
	})

	t.Run("unknown parameter", func(t *testing.T) {
		_, err := Default().Resolve([]string{"mean"}, map[string]Params{"mean": {"bins": 10}})
		var cfgErr *errors.ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigurationError, got %v", err)
		}
	})

	t.Run("override for unselected summary", func(t *testing.T) {
		_, err := Default().Resolve([]string{"mean"}, map[string]Params{"nope": {"x": 1}})
		var cfgErr *errors.ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigurationError, got %v", err)
		}
	})

	t.Run("empty selection", func(t *testing.T) {
		_, err := Default().Resolve(nil, nil)
		var cfgErr *errors.ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigurationError, got %v", err)
		}
	})
}

func TestWidth(t *testing.T) {
	in := resolveOne(t, "quantiles", nil)
	if in.Width() != 5 {
		t.Errorf("default quantiles width = %d, want 5", in.Width())
	}

	in = resolveOne(t, "quantiles", map[string]Params{"quantiles": {"probs": []float64{0, 1}}})
	if in.Width() != 2 {
		t.Errorf("overridden quantiles width = %d, want 2", in.Width())
	}

	in = resolveOne(t, "histogram", nil)
	if in.Width() != 10 {
		t.Errorf("default histogram width = %d, want 10", in.Width())
	}

	in = resolveOne(t, "mean", nil)
	if in.Width() != 1 {
		t.Errorf("mean width = %d, want 1", in.Width())
	}
}

func TestRegistrationOrder(t *testing.T) {
	names := Default().Names()
	want := []string{"mean", "sd", "var", "median", "min", "max", "range", "iqr",
		"skewness", "kurtosis", "quantiles", "histogram", "count"}

	if len(names) != len(want) {
		t.Fatalf("got %d summaries, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
