package landmark

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gomfe/core/model"
	"github.com/YuminosukeSato/gomfe/pkg/errors"
)

// separable returns a linearly separable two-class dataset.
func separable() (*mat.Dense, []float64) {
	X := mat.NewDense(10, 2, []float64{
		0.0, 0.2,
		0.1, 0.1,
		0.2, 0.0,
		0.3, 0.3,
		0.1, 0.4,
		4.0, 4.2,
		4.1, 4.1,
		4.2, 4.0,
		4.3, 4.3,
		4.1, 4.4,
	})
	y := []float64{0, 0, 0, 0, 0, 1, 1, 1, 1, 1}
	return X, y
}

func TestStratifiedKFold(t *testing.T) {
	_, y := separable()

	folds, err := StratifiedKFold(y, 5, 1)
	if err != nil {
		t.Fatalf("StratifiedKFold failed: %v", err)
	}
	if len(folds) != 5 {
		t.Fatalf("expected 5 folds, got %d", len(folds))
	}

	seen := make(map[int]int)
	for _, fold := range folds {
		// Every fold keeps the 50/50 class balance: one per class here.
		var zeros, ones int
		for _, i := range fold.TestIndices {
			seen[i]++
			if y[i] == 0 {
				zeros++
			} else {
				ones++
			}
		}
		if zeros != 1 || ones != 1 {
			t.Errorf("fold not stratified: %d zeros, %d ones", zeros, ones)
		}
		if len(fold.TrainIndices)+len(fold.TestIndices) != len(y) {
			t.Error("train + test must cover all rows")
		}
	}
	for i := range y {
		if seen[i] != 1 {
			t.Errorf("row %d appears %d times across test folds, want 1", i, seen[i])
		}
	}
}

func TestStratifiedKFold_Deterministic(t *testing.T) {
	_, y := separable()

	a, err := StratifiedKFold(y, 2, 7)
	if err != nil {
		t.Fatal(err)
	}
	b, err := StratifiedKFold(y, 2, 7)
	if err != nil {
		t.Fatal(err)
	}

	for f := range a {
		if len(a[f].TestIndices) != len(b[f].TestIndices) {
			t.Fatalf("fold %d sizes differ", f)
		}
		for k := range a[f].TestIndices {
			if a[f].TestIndices[k] != b[f].TestIndices[k] {
				t.Fatalf("fold %d differs at %d", f, k)
			}
		}
	}
}

func TestStratifiedKFold_Validation(t *testing.T) {
	if _, err := StratifiedKFold(nil, 2, 1); err == nil {
		t.Error("expected error for empty labels")
	}
	if _, err := StratifiedKFold([]float64{0, 1}, 1, 1); err == nil {
		t.Error("expected error for k < 2")
	}
	if _, err := StratifiedKFold([]float64{0, 1}, 3, 1); err == nil {
		t.Error("expected error for k > n")
	}
}

func TestLearners_SeparableData(t *testing.T) {
	X, y := separable()

	learners := []struct {
		name string
		clf  model.Classifier
	}{
		{"OneNN", NewOneNN()},
		{"GaussianNB", NewGaussianNB()},
		{"LinearDiscriminant", NewLinearDiscriminant()},
		{"Stump", NewStump(0)},
	}

	for _, tt := range learners {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.clf.Fit(X, y); err != nil {
				t.Fatalf("Fit failed: %v", err)
			}
			preds, err := tt.clf.Predict(X)
			if err != nil {
				t.Fatalf("Predict failed: %v", err)
			}
			for i, pred := range preds {
				if pred != y[i] {
					t.Errorf("row %d: predicted %v, want %v", i, pred, y[i])
				}
			}
		})
	}
}

func TestLearners_NotFitted(t *testing.T) {
	X := mat.NewDense(1, 2, nil)

	for _, clf := range []model.Classifier{NewOneNN(), NewGaussianNB(), NewLinearDiscriminant(), NewStump(0)} {
		_, err := clf.Predict(X)
		var nfErr *errors.NotFittedError
		if !errors.As(err, &nfErr) {
			t.Errorf("%T: expected NotFittedError, got %v", clf, err)
		}
	}
}

func TestStump_ConstantFeature(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{7, 7, 7, 7})
	y := []float64{0, 0, 1, 0}

	stump := NewStump(0)
	if err := stump.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if stump.Gain != 0 {
		t.Errorf("Gain = %v, want 0 for a constant attribute", stump.Gain)
	}

	preds, err := stump.Predict(X)
	if err != nil {
		t.Fatal(err)
	}
	for i, pred := range preds {
		if pred != 0 {
			t.Errorf("row %d: predicted %v, want majority class 0", i, pred)
		}
	}
}

func TestSubset(t *testing.T) {
	X, y := separable()

	sub := Subset(X, []int{0, 5})
	r, c := sub.Dims()
	if r != 2 || c != 2 {
		t.Fatalf("unexpected shape %dx%d", r, c)
	}
	if sub.At(1, 0) != X.At(5, 0) {
		t.Error("Subset copied wrong row")
	}

	labels := SubsetLabels(y, []int{0, 5})
	if labels[0] != 0 || labels[1] != 1 {
		t.Errorf("SubsetLabels = %v, want [0 1]", labels)
	}
}

func TestLinearDiscriminant_SingleClass(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	y := []float64{1, 1, 1}

	err := NewLinearDiscriminant().Fit(X, y)
	var valErr *errors.ValueError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValueError for single class, got %v", err)
	}
}
