package measure

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gomfe/core/dataset"
	"github.com/YuminosukeSato/gomfe/pkg/errors"
)

// computeOne resolves, precomputes and evaluates a single measure.
func computeOne(t *testing.T, d *dataset.Dataset, name string, user Args) ([]float64, error) {
	t.Helper()
	r := Default()
	desc, ok := r.Lookup(name)
	if !ok {
		t.Fatalf("measure %q not registered", name)
	}
	overrides := map[string]Args{}
	if user != nil {
		overrides[name] = user
	}
	plan, err := r.BuildPlan([]*Descriptor{desc}, overrides)
	if err != nil {
		t.Fatalf("BuildPlan failed: %v", err)
	}
	env := newEnv(d, r)
	plan.Run(env)
	return desc.Compute(env, desc.MergedArgs(user))
}

func wantValues(t *testing.T, got []float64, want []float64, tolerance float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d values %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > tolerance {
			t.Errorf("value %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestGeneralMeasures(t *testing.T) {
	d := twoBlobs(t)

	tests := []struct {
		name string
		want []float64
	}{
		{"attr_to_inst", []float64{2.0 / 6.0}},
		{"cat_to_num", []float64{0}},
		{"freq_class", []float64{0.5, 0.5}},
		{"inst_to_attr", []float64{3}},
		{"nr_attr", []float64{2}},
		{"nr_bin", []float64{0}},
		{"nr_cat", []float64{0}},
		{"nr_class", []float64{2}},
		{"nr_inst", []float64{6}},
		{"nr_num", []float64{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := computeOne(t, d, tt.name, nil)
			if err != nil {
				t.Fatalf("compute failed: %v", err)
			}
			wantValues(t, got, tt.want, 1e-12)
		})
	}
}

func TestStatisticalMeasures(t *testing.T) {
	d := twoBlobs(t)

	t.Run("mean", func(t *testing.T) {
		got, err := computeOne(t, d, "mean", nil)
		if err != nil {
			t.Fatal(err)
		}
		wantValues(t, got, []float64{7, 6}, 1e-12)
	})
	t.Run("range", func(t *testing.T) {
		got, err := computeOne(t, d, "range", nil)
		if err != nil {
			t.Fatal(err)
		}
		wantValues(t, got, []float64{12, 12}, 1e-12)
	})
	t.Run("cor of collinear attributes", func(t *testing.T) {
		got, err := computeOne(t, d, "cor", nil)
		if err != nil {
			t.Fatal(err)
		}
		// Both columns are the same line shifted, so |r| = 1.
		wantValues(t, got, []float64{1}, 1e-9)
	})
	t.Run("gravity", func(t *testing.T) {
		got, err := computeOne(t, d, "gravity", nil)
		if err != nil {
			t.Fatal(err)
		}
		// Class centroids are (2, 1) and (12, 11).
		wantValues(t, got, []float64{math.Sqrt(200)}, 1e-9)
	})
	t.Run("nr_cor_attr threshold override", func(t *testing.T) {
		got, err := computeOne(t, d, "nr_cor_attr", Args{"threshold": 0.99})
		if err != nil {
			t.Fatal(err)
		}
		wantValues(t, got, []float64{1}, 1e-12)
	})
	t.Run("sparsity", func(t *testing.T) {
		got, err := computeOne(t, d, "sparsity", nil)
		if err != nil {
			t.Fatal(err)
		}
		// Every value distinct: phi = n, so sparsity is 0 per attribute.
		wantValues(t, got, []float64{0, 0}, 1e-12)
	})
	t.Run("eigenvalues are descending", func(t *testing.T) {
		got, err := computeOne(t, d, "eigenvalues", nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d eigenvalues, want 2", len(got))
		}
		if got[0] < got[1] {
			t.Errorf("eigenvalues not descending: %v", got)
		}
	})
}

func TestInfoTheoryMeasures(t *testing.T) {
	d := twoBlobs(t)

	t.Run("class_ent of balanced classes", func(t *testing.T) {
		got, err := computeOne(t, d, "class_ent", nil)
		if err != nil {
			t.Fatal(err)
		}
		wantValues(t, got, []float64{1}, 1e-12)
	})
	t.Run("mut_inf of separating attributes", func(t *testing.T) {
		got, err := computeOne(t, d, "mut_inf", nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d values, want one per attribute", len(got))
		}
		// Binning cleanly separates the two blobs, so each attribute
		// carries the full class bit.
		for i, v := range got {
			if math.Abs(v-1) > 1e-9 {
				t.Errorf("mut_inf[%d] = %v, want 1", i, v)
			}
		}
	})
	t.Run("eq_num_attr", func(t *testing.T) {
		got, err := computeOne(t, d, "eq_num_attr", nil)
		if err != nil {
			t.Fatal(err)
		}
		wantValues(t, got, []float64{1}, 1e-9)
	})
	t.Run("attr_conc pair count", func(t *testing.T) {
		got, err := computeOne(t, d, "attr_conc", nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Errorf("got %d ordered pairs, want 2", len(got))
		}
	})
}

func TestModelBasedMeasures(t *testing.T) {
	d := twoBlobs(t)

	t.Run("single split tree", func(t *testing.T) {
		leaves, err := computeOne(t, d, "leaves", nil)
		if err != nil {
			t.Fatal(err)
		}
		wantValues(t, leaves, []float64{2}, 0)

		nodes, err := computeOne(t, d, "nodes", nil)
		if err != nil {
			t.Fatal(err)
		}
		wantValues(t, nodes, []float64{1}, 0)

		corrob, err := computeOne(t, d, "leaves_corrob", nil)
		if err != nil {
			t.Fatal(err)
		}
		wantValues(t, corrob, []float64{0.5, 0.5}, 1e-12)
	})
	t.Run("var_importance sums to one", func(t *testing.T) {
		got, err := computeOne(t, d, "var_importance", nil)
		if err != nil {
			t.Fatal(err)
		}
		var sum float64
		for _, v := range got {
			sum += v
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("importances sum to %v, want 1", sum)
		}
	})
	t.Run("leaves_per_class", func(t *testing.T) {
		got, err := computeOne(t, d, "leaves_per_class", nil)
		if err != nil {
			t.Fatal(err)
		}
		wantValues(t, got, []float64{0.5, 0.5}, 1e-12)
	})
}

func TestLandmarkingMeasures(t *testing.T) {
	d := twoBlobs(t)

	for _, name := range []string{"one_nn", "elite_nn", "naive_bayes", "best_node"} {
		t.Run(name, func(t *testing.T) {
			got, err := computeOne(t, d, name, Args{"folds": 3})
			if err != nil {
				t.Fatalf("compute failed: %v", err)
			}
			if len(got) != 3 {
				t.Fatalf("got %d fold scores, want 3", len(got))
			}
			// The blobs are linearly separable, every landmarker
			// classifies the held-out fold perfectly.
			for i, s := range got {
				if math.Abs(s-1) > 1e-12 {
					t.Errorf("fold %d score = %v, want 1", i, s)
				}
			}
		})
	}

	t.Run("default fold count exceeds rows", func(t *testing.T) {
		_, err := computeOne(t, d, "one_nn", nil)
		if err == nil {
			t.Fatal("10 folds over 6 rows should fail")
		}
	})

	t.Run("kappa score", func(t *testing.T) {
		got, err := computeOne(t, d, "one_nn", Args{"folds": 3, "score": "kappa"})
		if err != nil {
			t.Fatal(err)
		}
		for i, s := range got {
			if math.Abs(s-1) > 1e-12 {
				t.Errorf("fold %d kappa = %v, want 1", i, s)
			}
		}
	})
}

func TestClusteringMeasures(t *testing.T) {
	d := twoBlobs(t)

	t.Run("nre of balanced clusters", func(t *testing.T) {
		got, err := computeOne(t, d, "nre", nil)
		if err != nil {
			t.Fatal(err)
		}
		wantValues(t, got, []float64{math.Log(2)}, 1e-12)
	})
	t.Run("sc", func(t *testing.T) {
		got, err := computeOne(t, d, "sc", nil)
		if err != nil {
			t.Fatal(err)
		}
		wantValues(t, got, []float64{2}, 0)

		got, err = computeOne(t, d, "sc", Args{"size": 2})
		if err != nil {
			t.Fatal(err)
		}
		wantValues(t, got, []float64{0}, 0)
	})
	t.Run("well separated blobs", func(t *testing.T) {
		sil, err := computeOne(t, d, "sil", nil)
		if err != nil {
			t.Fatal(err)
		}
		if sil[0] < 0.7 {
			t.Errorf("silhouette = %v, want a high value for separated blobs", sil[0])
		}

		ch, err := computeOne(t, d, "ch", nil)
		if err != nil {
			t.Fatal(err)
		}
		if ch[0] <= 1 {
			t.Errorf("calinski-harabasz = %v, want well above 1", ch[0])
		}

		pb, err := computeOne(t, d, "pb", nil)
		if err != nil {
			t.Fatal(err)
		}
		// Same-cluster pairs are closer, so the correlation is negative.
		if pb[0] >= 0 {
			t.Errorf("point-biserial = %v, want negative", pb[0])
		}
	})
}

func TestComplexityMeasures(t *testing.T) {
	d := twoBlobs(t)

	tests := []struct {
		name      string
		want      []float64
		tolerance float64
	}{
		{"c1", []float64{1}, 1e-12},
		{"c2", []float64{0}, 1e-12},
		{"f3", []float64{0}, 1e-12},
		{"f4", []float64{0}, 1e-12},
		{"n1", []float64{1.0 / 3.0}, 1e-12},
		{"t2", []float64{2.0 / 6.0}, 1e-12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := computeOne(t, d, tt.name, nil)
			if err != nil {
				t.Fatalf("compute failed: %v", err)
			}
			wantValues(t, got, tt.want, tt.tolerance)
		})
	}

	t.Run("t3 and t4", func(t *testing.T) {
		t3, err := computeOne(t, d, "t3", nil)
		if err != nil {
			t.Fatal(err)
		}
		// One component carries over 95% of the variance of the
		// collinear columns.
		wantValues(t, t3, []float64{1.0 / 6.0}, 1e-12)

		t4, err := computeOne(t, d, "t4", nil)
		if err != nil {
			t.Fatal(err)
		}
		wantValues(t, t4, []float64{0.5}, 1e-12)
	})
}

func TestSupervisedMeasureOnUnsupervisedData(t *testing.T) {
	x := mat.NewDense(4, 2, []float64{1, 2, 3, 4, 5, 6, 7, 8})
	d, err := dataset.New(x, nil)
	if err != nil {
		t.Fatal(err)
	}

	desc, _ := Default().Lookup("nr_class")
	if desc.Task.Matches(d.Task()) {
		t.Error("nr_class should not apply to an unsupervised dataset")
	}

	// The classes precomputation itself degrades cleanly as well.
	_, err = computeOne(t, d, "nr_class", nil)
	var preErr *errors.PrecomputationError
	if !errors.As(err, &preErr) {
		t.Errorf("expected PrecomputationError without targets, got %v", err)
	}
}
