package measure

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gomfe/pkg/errors"
)

// registerClustering registers the measures that treat the target labels
// as a cluster assignment and judge how well separated the clusters are.
func registerClustering(r *Registry) {
	r.Register(&Descriptor{
		Name:     "ch",
		Group:    GroupClustering,
		Task:     AppliesSupervised,
		Output:   OutputScalar,
		Requires: []string{PreClasses},
		Compute:  computeCalinskiHarabasz,
	})
	r.Register(&Descriptor{
		Name:     "int",
		Group:    GroupClustering,
		Task:     AppliesSupervised,
		Output:   OutputScalar,
		Requires: []string{PreClasses, PreDistances},
		Compute: func(env *Env, args Args) ([]float64, error) {
			ci, di, err := classesWithDistances(env, args)
			if err != nil {
				return nil, err
			}
			k := len(ci.Labels)
			if k < 2 {
				return nil, errors.Wrap(errors.ErrNotApplicable, "needs at least two clusters")
			}
			var total float64
			groups := groupIndices(ci)
			for a := 0; a < k; a++ {
				for b := a + 1; b < k; b++ {
					total += normalizedInterDistSum(di.D, groups[a], groups[b])
				}
			}
			return scalar(total * 2 / (float64(k) * float64(k-1))), nil
		},
	})
	r.Register(&Descriptor{
		Name:     "nre",
		Group:    GroupClustering,
		Task:     AppliesSupervised,
		Output:   OutputScalar,
		Requires: []string{PreClasses},
		Compute: func(env *Env, args Args) ([]float64, error) {
			ci, err := classInfoOf(env, args)
			if err != nil {
				return nil, err
			}
			// Natural-log entropy of the cluster size distribution.
			var h float64
			for _, p := range ci.Freqs() {
				if p > 0 {
					h -= p * math.Log(p)
				}
			}
			return scalar(h), nil
		},
	})
	r.Register(&Descriptor{
		Name:     "pb",
		Group:    GroupClustering,
		Task:     AppliesSupervised,
		Output:   OutputScalar,
		Requires: []string{PreClasses, PreDistances},
		Compute:  computePointBiserial,
	})
	r.Register(&Descriptor{
		Name:     "sc",
		Group:    GroupClustering,
		Task:     AppliesSupervised,
		Output:   OutputScalar,
		Requires: []string{PreClasses},
		Defaults: Args{"size": 15},
		Compute: func(env *Env, args Args) ([]float64, error) {
			ci, err := classInfoOf(env, args)
			if err != nil {
				return nil, err
			}
			size := intArg(args, "size")
			small := 0
			for _, c := range ci.Counts {
				if c < size {
					small++
				}
			}
			return scalar(float64(small)), nil
		},
	})
	r.Register(&Descriptor{
		Name:     "sil",
		Group:    GroupClustering,
		Task:     AppliesSupervised,
		Output:   OutputScalar,
		Requires: []string{PreClasses, PreDistances},
		Compute:  computeSilhouette,
	})
	r.Register(&Descriptor{
		Name:     "vdb",
		Group:    GroupClustering,
		Task:     AppliesSupervised,
		Output:   OutputScalar,
		Requires: []string{PreClasses},
		Compute:  computeDaviesBouldin,
	})
	r.Register(&Descriptor{
		Name:     "vdu",
		Group:    GroupClustering,
		Task:     AppliesSupervised,
		Output:   OutputScalar,
		Requires: []string{PreClasses, PreDistances},
		Compute:  computeDunn,
	})
}

func classesWithDistances(env *Env, args Args) (*ClassInfo, *DistanceInfo, error) {
	ci, err := classInfoOf(env, args)
	if err != nil {
		return nil, nil, err
	}
	di, err := distancesOf(env, args)
	if err != nil {
		return nil, nil, err
	}
	return ci, di, nil
}

// groupIndices returns the row indices of each class.
func groupIndices(ci *ClassInfo) [][]int {
	out := make([][]int, len(ci.Labels))
	for i, k := range ci.Assign {
		out[k] = append(out[k], i)
	}
	return out
}

// normalizedInterDistSum sums the distances between every cross pair of
// the two groups, normalized by the pair count.
func normalizedInterDistSum(d *mat.SymDense, a, b []int) float64 {
	var sum float64
	for _, i := range a {
		for _, j := range b {
			sum += d.At(i, j)
		}
	}
	return sum / float64(len(a)*len(b))
}

// centroids returns the per-class mean of the numeric attributes and the
// overall mean.
func centroids(env *Env, ci *ClassInfo) (byClass *mat.Dense, overall []float64, ok bool) {
	n := env.Data.Numeric()
	if n == nil {
		return nil, nil, false
	}
	rows, cols := n.Dims()
	k := len(ci.Labels)

	byClass = mat.NewDense(k, cols, nil)
	overall = make([]float64, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := n.At(i, j)
			byClass.Set(ci.Assign[i], j, byClass.At(ci.Assign[i], j)+v)
			overall[j] += v
		}
	}
	for c := 0; c < k; c++ {
		for j := 0; j < cols; j++ {
			byClass.Set(c, j, byClass.At(c, j)/float64(ci.Counts[c]))
		}
	}
	for j := range overall {
		overall[j] /= float64(rows)
	}
	return byClass, overall, true
}

func computeCalinskiHarabasz(env *Env, args Args) ([]float64, error) {
	ci, err := classInfoOf(env, args)
	if err != nil {
		return nil, err
	}
	k := len(ci.Labels)
	n := env.Data.Rows()
	if k < 2 || n <= k {
		return nil, errors.Wrap(errors.ErrNotApplicable, "needs at least two clusters and more rows than clusters")
	}
	means, overall, ok := centroids(env, ci)
	if !ok {
		return nil, errors.Wrap(errors.ErrNotApplicable, "no numeric attributes")
	}

	num := env.Data.Numeric()
	_, cols := num.Dims()
	var between, within float64
	for c := 0; c < k; c++ {
		for j := 0; j < cols; j++ {
			d := means.At(c, j) - overall[j]
			between += float64(ci.Counts[c]) * d * d
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < cols; j++ {
			d := num.At(i, j) - means.At(ci.Assign[i], j)
			within += d * d
		}
	}
	if within == 0 {
		return nil, errors.Wrap(errors.ErrNotApplicable, "clusters collapse to single points")
	}
	return scalar((between / float64(k-1)) / (within / float64(n-k))), nil
}

// computePointBiserial correlates the pairwise distances with the binary
// same-cluster indicator.
func computePointBiserial(env *Env, args Args) ([]float64, error) {
	ci, di, err := classesWithDistances(env, args)
	if err != nil {
		return nil, err
	}
	n := len(ci.Assign)

	var sumSame, sumDiff float64
	var nSame, nDiff int
	dists := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := di.D.At(i, j)
			dists = append(dists, d)
			if ci.Assign[i] == ci.Assign[j] {
				sumSame += d
				nSame++
			} else {
				sumDiff += d
				nDiff++
			}
		}
	}
	if nSame == 0 || nDiff == 0 {
		return nil, errors.Wrap(errors.ErrNotApplicable, "needs both intra- and inter-cluster pairs")
	}

	_, m2, _, _ := sampleMoments(dists)
	sd := math.Sqrt(m2)
	if sd == 0 {
		return nil, errors.Wrap(errors.ErrNotApplicable, "all pairwise distances are equal")
	}
	total := float64(len(dists))
	meanSame := sumSame / float64(nSame)
	meanDiff := sumDiff / float64(nDiff)
	r := (meanSame - meanDiff) / sd *
		math.Sqrt(float64(nSame)*float64(nDiff)/(total*total))
	return scalar(r), nil
}

func computeSilhouette(env *Env, args Args) ([]float64, error) {
	ci, di, err := classesWithDistances(env, args)
	if err != nil {
		return nil, err
	}
	k := len(ci.Labels)
	if k < 2 {
		return nil, errors.Wrap(errors.ErrNotApplicable, "needs at least two clusters")
	}

	n := len(ci.Assign)
	var total float64
	for i := 0; i < n; i++ {
		own := ci.Assign[i]
		if ci.Counts[own] == 1 {
			// Singleton clusters contribute zero by convention.
			continue
		}
		sums := make([]float64, k)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			sums[ci.Assign[j]] += di.D.At(i, j)
		}
		a := sums[own] / float64(ci.Counts[own]-1)
		b := math.Inf(1)
		for c := 0; c < k; c++ {
			if c == own || ci.Counts[c] == 0 {
				continue
			}
			b = math.Min(b, sums[c]/float64(ci.Counts[c]))
		}
		if denom := math.Max(a, b); denom > 0 {
			total += (b - a) / denom
		}
	}
	return scalar(total / float64(n)), nil
}

func computeDaviesBouldin(env *Env, args Args) ([]float64, error) {
	ci, err := classInfoOf(env, args)
	if err != nil {
		return nil, err
	}
	k := len(ci.Labels)
	if k < 2 {
		return nil, errors.Wrap(errors.ErrNotApplicable, "needs at least two clusters")
	}
	means, _, ok := centroids(env, ci)
	if !ok {
		return nil, errors.Wrap(errors.ErrNotApplicable, "no numeric attributes")
	}

	num := env.Data.Numeric()
	rows, cols := num.Dims()

	// Mean distance of each cluster's members to its centroid.
	scatter := make([]float64, k)
	for i := 0; i < rows; i++ {
		var sum float64
		for j := 0; j < cols; j++ {
			d := num.At(i, j) - means.At(ci.Assign[i], j)
			sum += d * d
		}
		scatter[ci.Assign[i]] += math.Sqrt(sum)
	}
	for c := 0; c < k; c++ {
		scatter[c] /= float64(ci.Counts[c])
	}

	var db float64
	for a := 0; a < k; a++ {
		worst := 0.0
		for b := 0; b < k; b++ {
			if a == b {
				continue
			}
			var sep float64
			for j := 0; j < cols; j++ {
				d := means.At(a, j) - means.At(b, j)
				sep += d * d
			}
			sep = math.Sqrt(sep)
			if sep == 0 {
				return nil, errors.Wrap(errors.ErrNotApplicable, "coincident cluster centroids")
			}
			worst = math.Max(worst, (scatter[a]+scatter[b])/sep)
		}
		db += worst
	}
	return scalar(db / float64(k)), nil
}

func computeDunn(env *Env, args Args) ([]float64, error) {
	ci, di, err := classesWithDistances(env, args)
	if err != nil {
		return nil, err
	}
	k := len(ci.Labels)
	if k < 2 {
		return nil, errors.Wrap(errors.ErrNotApplicable, "needs at least two clusters")
	}
	groups := groupIndices(ci)

	minInter := math.Inf(1)
	for a := 0; a < k; a++ {
		for b := a + 1; b < k; b++ {
			pairCount := float64(len(groups[a]) * len(groups[b]))
			for _, i := range groups[a] {
				for _, j := range groups[b] {
					minInter = math.Min(minInter, di.D.At(i, j)/pairCount)
				}
			}
		}
	}

	maxIntra := 0.0
	for _, group := range groups {
		for x := 0; x < len(group); x++ {
			for y := x + 1; y < len(group); y++ {
				maxIntra = math.Max(maxIntra, di.D.At(group[x], group[y]))
			}
		}
	}
	return scalar(minInter / (maxIntra + 1e-8)), nil
}
