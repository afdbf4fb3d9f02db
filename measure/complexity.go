package measure

import (
	"math"

	"github.com/YuminosukeSato/gomfe/pkg/errors"
)

func registerComplexity(r *Registry) {
	r.Register(&Descriptor{
		Name:     "c1",
		Group:    GroupComplexity,
		Task:     AppliesSupervised,
		Output:   OutputScalar,
		Requires: []string{PreClasses},
		Compute: func(env *Env, args Args) ([]float64, error) {
			ci, err := classInfoOf(env, args)
			if err != nil {
				return nil, err
			}
			nc := len(ci.Labels)
			if nc < 2 {
				return nil, errors.Wrap(errors.ErrNotApplicable, "needs at least two classes")
			}
			var h float64
			for _, p := range ci.Freqs() {
				h += p * math.Log(p)
			}
			return scalar(-h / math.Log(float64(nc))), nil
		},
	})
	r.Register(&Descriptor{
		Name:     "c2",
		Group:    GroupComplexity,
		Task:     AppliesSupervised,
		Output:   OutputScalar,
		Requires: []string{PreClasses},
		Compute: func(env *Env, args Args) ([]float64, error) {
			ci, err := classInfoOf(env, args)
			if err != nil {
				return nil, err
			}
			nc := len(ci.Labels)
			if nc < 2 {
				return nil, errors.Wrap(errors.ErrNotApplicable, "needs at least two classes")
			}
			n := float64(len(ci.Assign))
			var ir float64
			for _, c := range ci.Counts {
				ir += float64(c) / (n - float64(c))
			}
			ir *= float64(nc-1) / float64(nc)
			return scalar(1 - 1/ir), nil
		},
	})
	r.Register(&Descriptor{
		Name:     "f3",
		Group:    GroupComplexity,
		Task:     AppliesSupervised,
		Output:   OutputScalar,
		Requires: []string{PreClasses},
		Compute: func(env *Env, args Args) ([]float64, error) {
			return overlapMeasure(env, args, featureEfficiencyF3)
		},
	})
	r.Register(&Descriptor{
		Name:     "f4",
		Group:    GroupComplexity,
		Task:     AppliesSupervised,
		Output:   OutputScalar,
		Requires: []string{PreClasses},
		Compute: func(env *Env, args Args) ([]float64, error) {
			return overlapMeasure(env, args, featureEfficiencyF4)
		},
	})
	r.Register(&Descriptor{
		Name:     "n1",
		Group:    GroupComplexity,
		Task:     AppliesSupervised,
		Output:   OutputScalar,
		Requires: []string{PreClasses, PreDistances},
		Defaults: Args{"scale": "min-max"},
		Compute:  computeBoundaryFraction,
	})
	r.Register(&Descriptor{
		Name:   "t2",
		Group:  GroupComplexity,
		Output: OutputScalar,
		Compute: func(env *Env, _ Args) ([]float64, error) {
			m := len(env.Data.NumericIndices())
			if m == 0 {
				return nil, errors.Wrap(errors.ErrNotApplicable, "no numeric attributes")
			}
			return scalar(float64(m) / float64(env.Data.Rows())), nil
		},
	})
	r.Register(&Descriptor{
		Name:     "t3",
		Group:    GroupComplexity,
		Output:   OutputScalar,
		Requires: []string{PreEigen},
		Compute: func(env *Env, args Args) ([]float64, error) {
			dims, err := principalDims(env, args, 0.95)
			if err != nil {
				return nil, err
			}
			return scalar(float64(dims) / float64(env.Data.Rows())), nil
		},
	})
	r.Register(&Descriptor{
		Name:     "t4",
		Group:    GroupComplexity,
		Output:   OutputScalar,
		Requires: []string{PreEigen},
		Compute: func(env *Env, args Args) ([]float64, error) {
			ei, err := eigenOf(env, args)
			if err != nil {
				return nil, err
			}
			dims, err := principalDims(env, args, 0.95)
			if err != nil {
				return nil, err
			}
			return scalar(float64(dims) / float64(len(ei.Values))), nil
		},
	})
}

// principalDims counts the leading eigenvalues of the covariance matrix
// needed to reach the given share of the total variance.
func principalDims(env *Env, args Args, share float64) (int, error) {
	ei, err := eigenOf(env, args)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, v := range ei.Values {
		if v > 0 {
			total += v
		}
	}
	if total <= 0 {
		return 0, errors.Wrap(errors.ErrNotApplicable, "covariance matrix has no variance")
	}
	var cum float64
	for i, v := range ei.Values {
		if v > 0 {
			cum += v
		}
		if cum/total >= share {
			return i + 1, nil
		}
	}
	return len(ei.Values), nil
}

// overlapMeasure averages a one-vs-one overlap statistic over every class
// pair, using the numeric attributes only.
func overlapMeasure(env *Env, args Args, pairStat func(rows [][]float64, inA []bool) float64) ([]float64, error) {
	ci, err := classInfoOf(env, args)
	if err != nil {
		return nil, err
	}
	if len(ci.Labels) < 2 {
		return nil, errors.Wrap(errors.ErrNotApplicable, "needs at least two classes")
	}
	num := env.Data.Numeric()
	if num == nil {
		return nil, errors.Wrap(errors.ErrNotApplicable, "no numeric attributes")
	}
	_, cols := num.Dims()

	var sum float64
	pairs := 0
	for a := 0; a < len(ci.Labels); a++ {
		for b := a + 1; b < len(ci.Labels); b++ {
			rows := make([][]float64, 0)
			inA := make([]bool, 0)
			for i, c := range ci.Assign {
				if c != a && c != b {
					continue
				}
				row := make([]float64, cols)
				for j := 0; j < cols; j++ {
					row[j] = num.At(i, j)
				}
				rows = append(rows, row)
				inA = append(inA, c == a)
			}
			sum += pairStat(rows, inA)
			pairs++
		}
	}
	return scalar(sum / float64(pairs)), nil
}

// overlapBounds computes, per feature, the overlapping interval of the
// two classes: [max of the per-class minima, min of the per-class maxima].
func overlapBounds(rows [][]float64, inA []bool) (lo, hi []float64) {
	cols := len(rows[0])
	minA := make([]float64, cols)
	maxA := make([]float64, cols)
	minB := make([]float64, cols)
	maxB := make([]float64, cols)
	firstA, firstB := true, true
	for i, row := range rows {
		if inA[i] {
			for j, v := range row {
				if firstA || v < minA[j] {
					minA[j] = v
				}
				if firstA || v > maxA[j] {
					maxA[j] = v
				}
			}
			firstA = false
		} else {
			for j, v := range row {
				if firstB || v < minB[j] {
					minB[j] = v
				}
				if firstB || v > maxB[j] {
					maxB[j] = v
				}
			}
			firstB = false
		}
	}
	lo = make([]float64, cols)
	hi = make([]float64, cols)
	for j := 0; j < cols; j++ {
		lo[j] = math.Max(minA[j], minB[j])
		hi[j] = math.Min(maxA[j], maxB[j])
	}
	return lo, hi
}

// overlapCount counts, per feature, the rows falling into the class
// overlap interval, and returns the feature with the fewest.
func overlapCount(rows [][]float64, lo, hi []float64) (bestFeature int, counts []int, within [][]bool) {
	cols := len(lo)
	counts = make([]int, cols)
	within = make([][]bool, len(rows))
	for i, row := range rows {
		within[i] = make([]bool, cols)
		for j, v := range row {
			if v >= lo[j] && v <= hi[j] {
				within[i][j] = true
				counts[j]++
			}
		}
	}
	bestFeature = 0
	for j := 1; j < cols; j++ {
		if counts[j] < counts[bestFeature] {
			bestFeature = j
		}
	}
	return bestFeature, counts, within
}

// featureEfficiencyF3 is the fraction of the pair's rows left inside the
// overlap region of the single most discriminative feature.
func featureEfficiencyF3(rows [][]float64, inA []bool) float64 {
	lo, hi := overlapBounds(rows, inA)
	best, counts, _ := overlapCount(rows, lo, hi)
	return float64(counts[best]) / float64(len(rows))
}

// featureEfficiencyF4 repeatedly removes the most discriminative feature
// and the rows it separates, until no rows or features remain. The result
// is the fraction of rows no feature could separate.
func featureEfficiencyF4(rows [][]float64, inA []bool) float64 {
	total := len(rows)
	remaining := 0
	for len(rows) > 0 && len(rows[0]) > 0 {
		lo, hi := overlapBounds(rows, inA)
		best, _, within := overlapCount(rows, lo, hi)

		keptRows := make([][]float64, 0, len(rows))
		keptInA := make([]bool, 0, len(rows))
		for i, row := range rows {
			if !within[i][best] {
				continue
			}
			kept := make([]float64, 0, len(row)-1)
			kept = append(kept, row[:best]...)
			kept = append(kept, row[best+1:]...)
			keptRows = append(keptRows, kept)
			keptInA = append(keptInA, inA[i])
		}
		rows, inA = keptRows, keptInA
		remaining = len(rows)
	}
	return float64(remaining) / float64(total)
}

// computeBoundaryFraction builds a minimum spanning tree over the min-max
// scaled distances and reports the fraction of instances incident to an
// edge joining different classes.
func computeBoundaryFraction(env *Env, args Args) ([]float64, error) {
	ci, di, err := classesWithDistances(env, args)
	if err != nil {
		return nil, err
	}
	n := len(ci.Assign)
	if n < 2 {
		return nil, errors.Wrap(errors.ErrNotApplicable, "needs at least two rows")
	}

	// Prim's algorithm over the dense distance matrix.
	inTree := make([]bool, n)
	parent := make([]int, n)
	best := make([]float64, n)
	for i := range best {
		best[i] = math.Inf(1)
		parent[i] = -1
	}
	best[0] = 0

	boundary := make(map[int]bool)
	for range best {
		next := -1
		for v := 0; v < n; v++ {
			if !inTree[v] && (next == -1 || best[v] < best[next]) {
				next = v
			}
		}
		inTree[next] = true
		if parent[next] >= 0 && ci.Assign[next] != ci.Assign[parent[next]] {
			boundary[next] = true
			boundary[parent[next]] = true
		}
		for v := 0; v < n; v++ {
			if !inTree[v] && di.D.At(next, v) < best[v] {
				best[v] = di.D.At(next, v)
				parent[v] = next
			}
		}
	}
	return scalar(float64(len(boundary)) / float64(n)), nil
}
