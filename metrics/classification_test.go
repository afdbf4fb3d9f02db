package metrics

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/gomfe/pkg/errors"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     []float64
		yPred     []float64
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     []float64{0, 1, 2, 1},
			yPred:     []float64{0, 1, 2, 1},
			want:      1.0,
			tolerance: 1e-12,
		},
		{
			name:      "half correct",
			yTrue:     []float64{0, 1, 0, 1},
			yPred:     []float64{0, 0, 1, 1},
			want:      0.5,
			tolerance: 1e-12,
		},
		{
			name:    "empty input",
			yTrue:   nil,
			yPred:   nil,
			wantErr: true,
		},
		{
			name:    "length mismatch",
			yTrue:   []float64{0, 1},
			yPred:   []float64{0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Accuracy(tt.yTrue, tt.yPred)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("Accuracy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBalancedAccuracy(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     []float64
		yPred     []float64
		want      float64
		tolerance float64
	}{
		{
			name:      "balanced classes equal plain accuracy",
			yTrue:     []float64{0, 0, 1, 1},
			yPred:     []float64{0, 1, 1, 1},
			want:      0.75,
			tolerance: 1e-12,
		},
		{
			// Majority-class guessing scores 0.5, not 0.9.
			name:      "imbalanced classes",
			yTrue:     []float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
			yPred:     []float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			want:      0.5,
			tolerance: 1e-12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BalancedAccuracy(tt.yTrue, tt.yPred)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("BalancedAccuracy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCohenKappa(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     []float64
		yPred     []float64
		want      float64
		tolerance float64
	}{
		{
			name:      "perfect agreement",
			yTrue:     []float64{0, 1, 0, 1},
			yPred:     []float64{0, 1, 0, 1},
			want:      1.0,
			tolerance: 1e-12,
		},
		{
			// po = 0.5 equals pe = 0.5 for this contingency table.
			name:      "chance-level agreement",
			yTrue:     []float64{0, 0, 1, 1},
			yPred:     []float64{0, 1, 0, 1},
			want:      0.0,
			tolerance: 1e-12,
		},
		{
			name:      "single class degenerates to zero",
			yTrue:     []float64{1, 1, 1},
			yPred:     []float64{1, 1, 1},
			want:      0.0,
			tolerance: 1e-12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CohenKappa(tt.yTrue, tt.yPred)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("CohenKappa() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMetrics_DimensionError(t *testing.T) {
	for _, fn := range []func([]float64, []float64) (float64, error){
		Accuracy, BalancedAccuracy, CohenKappa,
	} {
		_, err := fn([]float64{0, 1, 2}, []float64{0, 1})
		var dimErr *errors.DimensionError
		if !errors.As(err, &dimErr) {
			t.Errorf("expected DimensionError, got %v", err)
		}
	}
}
