package measure

import (
	"math"

	"github.com/YuminosukeSato/gomfe/core/dataset"
	"github.com/YuminosukeSato/gomfe/pkg/errors"
)

func scalar(v float64) []float64 {
	return []float64{v}
}

func distinctCount(col []float64) int {
	seen := make(map[float64]bool, len(col))
	for _, v := range col {
		seen[v] = true
	}
	return len(seen)
}

// numericColumns returns one slice per numeric attribute.
func numericColumns(d *dataset.Dataset) [][]float64 {
	idx := d.NumericIndices()
	out := make([][]float64, len(idx))
	for k, j := range idx {
		out[k] = d.Column(j)
	}
	return out
}

// perNumericColumn applies f to every numeric column. Datasets without
// numeric attributes make column-wise measures undefined.
func perNumericColumn(env *Env, f func(col []float64) float64) ([]float64, error) {
	cols := numericColumns(env.Data)
	if len(cols) == 0 {
		return nil, errors.Wrap(errors.ErrNotApplicable, "no numeric attributes")
	}
	out := make([]float64, len(cols))
	for k, col := range cols {
		out[k] = f(col)
	}
	return out, nil
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleMoments returns the mean and the population central moments m2,
// m3, m4 of the values.
func sampleMoments(values []float64) (mean, m2, m3, m4 float64) {
	mean = meanOf(values)
	n := float64(len(values))
	for _, v := range values {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
		m4 += d * d * d * d
	}
	return mean, m2 / n, m3 / n, m4 / n
}

// entropyFromCounts computes -sum(p*log2(p)) over the non-zero counts.
func entropyFromCounts(counts []int, total int) float64 {
	if total == 0 {
		return 0
	}
	var h float64
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / float64(total)
		h -= p * math.Log2(p)
	}
	return h
}

// codeCounts tallies the frequency of each code in a dense-coded column.
func codeCounts(codes []int) []int {
	max := 0
	for _, c := range codes {
		if c > max {
			max = c
		}
	}
	counts := make([]int, max+1)
	for _, c := range codes {
		counts[c]++
	}
	return counts
}

// entropyOfCodes is the Shannon entropy (base 2) of a coded column.
func entropyOfCodes(codes []int) float64 {
	return entropyFromCounts(codeCounts(codes), len(codes))
}

// jointEntropy is the Shannon entropy (base 2) of the joint distribution
// of two coded columns of equal length.
func jointEntropy(a, b []int) float64 {
	counts := make(map[[2]int]int, len(a))
	for i := range a {
		counts[[2]int{a[i], b[i]}]++
	}
	n := float64(len(a))
	var h float64
	for _, c := range counts {
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}

// concentration is the Goodman and Kruskal tau association between two
// coded columns: how well knowing x predicts y. Returns NaN when y is
// constant.
func concentration(x, y []int) float64 {
	n := float64(len(x))
	joint := make(map[[2]int]int, len(x))
	xCounts := make(map[int]int)
	yCounts := make(map[int]int)
	for i := range x {
		joint[[2]int{x[i], y[i]}]++
		xCounts[x[i]]++
		yCounts[y[i]]++
	}

	var condConc float64
	for pair, c := range joint {
		pij := float64(c) / n
		pi := float64(xCounts[pair[0]]) / n
		condConc += pij * pij / pi
	}

	var margConc float64
	for _, c := range yCounts {
		pj := float64(c) / n
		margConc += pj * pj
	}

	if margConc == 1 {
		return math.NaN()
	}
	return (condConc - margConc) / (1 - margConc)
}
