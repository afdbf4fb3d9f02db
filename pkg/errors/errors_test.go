package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestNewConfigurationError(t *testing.T) {
	tests := []struct {
		name    string
		param   string
		reason  string
		value   interface{}
		wantMsg string
	}{
		{
			name:    "unknown group",
			param:   "groups",
			reason:  "unknown group name",
			value:   "statisical",
			wantMsg: `gomfe: invalid configuration for "groups": unknown group name (got: statisical)`,
		},
		{
			name:    "bad sample count",
			param:   "sampleCount",
			reason:  "must be >= 1",
			value:   0,
			wantMsg: `gomfe: invalid configuration for "sampleCount": must be >= 1 (got: 0)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewConfigurationError(tt.param, tt.reason, tt.value)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			formatted := fmt.Sprintf("%+v", err)
			if !strings.Contains(formatted, "errors_test.go") {
				t.Error("Expected stack trace to contain test file name")
			}

			var cfgErr *ConfigurationError
			if !As(err, &cfgErr) {
				t.Error("Error should be castable to *ConfigurationError")
			}
		})
	}
}

func TestNewUnknownMeasureError(t *testing.T) {
	err := NewUnknownMeasureError("nr_enst", []string{"nr_inst"})

	want := `gomfe: unknown measure "nr_enst". Did you mean: nr_inst`
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var unkErr *UnknownMeasureError
	if !As(err, &unkErr) {
		t.Fatal("Error should be castable to *UnknownMeasureError")
	}
	if unkErr.Name != "nr_enst" {
		t.Errorf("Name = %v, want nr_enst", unkErr.Name)
	}
}

func TestNewUnknownMeasureError_NoSuggestions(t *testing.T) {
	err := NewUnknownMeasureError("zzz", nil)

	want := `gomfe: unknown measure "zzz"`
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestNewIncompatibleMeasureError(t *testing.T) {
	err := NewIncompatibleMeasureError("class_ent", "unsupervised")

	want := `gomfe: measure "class_ent" is not applicable to a unsupervised dataset`
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var incErr *IncompatibleMeasureError
	if !As(err, &incErr) {
		t.Error("Error should be castable to *IncompatibleMeasureError")
	}
}

func TestNewPrecomputationError(t *testing.T) {
	cause := New("eigen decomposition did not converge")
	err := NewPrecomputationError("eigen", cause)

	if !strings.Contains(err.Error(), `precomputation "eigen" failed`) {
		t.Errorf("unexpected message: %v", err.Error())
	}

	// The cause must stay reachable through the chain.
	if !Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}

	var pErr *PrecomputationError
	if !As(err, &pErr) {
		t.Fatal("Error should be castable to *PrecomputationError")
	}
	if pErr.Name != "eigen" {
		t.Errorf("Name = %v, want eigen", pErr.Name)
	}
}

func TestNewMeasureError(t *testing.T) {
	cause := NewPanicError("skewness", "index out of range")
	err := NewMeasureError("skewness", cause)

	if !strings.Contains(err.Error(), `measure "skewness" failed`) {
		t.Errorf("unexpected message: %v", err.Error())
	}

	var panicErr *PanicError
	if !As(err, &panicErr) {
		t.Error("expected the wrapped PanicError to be reachable via As")
	}
}

func TestNewCyclicDependencyError(t *testing.T) {
	err := NewCyclicDependencyError([]string{"a", "b", "a"})

	want := "gomfe: cyclic precomputation ordering involving: a -> b -> a"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var cycErr *CyclicDependencyError
	if !As(err, &cycErr) {
		t.Error("Error should be castable to *CyclicDependencyError")
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("Extractor", "Extract")

	want := "gomfe: Extractor: not fitted yet. Call Fit() before using Extract()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var nfErr *NotFittedError
	if !As(err, &nfErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Fit", 150, 149, 0)

	want := "gomfe: Fit: dimension mismatch on axis 0 (rows). Expected 150, got 149"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
}

func TestNewValueError(t *testing.T) {
	err := NewValueError("Fit", "non-finite value in input matrix")

	want := "gomfe: Fit: non-finite value in input matrix"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var valErr *ValueError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValueError")
	}
}

func TestSentinels(t *testing.T) {
	wrapped := Wrap(ErrNotApplicable, "t_mean")
	if !Is(wrapped, ErrNotApplicable) {
		t.Error("wrapped sentinel should match ErrNotApplicable")
	}

	if Is(ErrNotApplicable, ErrInsufficientBootstrapSamples) {
		t.Error("distinct sentinels must not match each other")
	}
}

func TestWarningHandler(t *testing.T) {
	var captured []error
	SetWarningHandler(func(w error) {
		captured = append(captured, w)
	})
	defer SetWarningHandler(func(w error) {})

	warning := NewExtractionWarning("one_nn", New("singular fold"))
	Warn(warning)

	if len(captured) != 1 {
		t.Fatalf("expected 1 captured warning, got %d", len(captured))
	}
	if !strings.Contains(captured[0].Error(), `measure "one_nn" failed`) {
		t.Errorf("unexpected warning message: %v", captured[0])
	}
}

func TestExtractionWarning_Unwrap(t *testing.T) {
	cause := New("division by zero")
	warning := NewExtractionWarning("sd", cause)

	if !Is(warning, cause) {
		t.Error("expected warning to unwrap to its cause")
	}
}
