// Package tree implements a CART decision-tree classifier with structural
// introspection. The model-based measure group consumes the tree only
// through the Structure snapshot, so any model satisfying Introspector can
// feed the model adapter.
package tree

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gomfe/core/model"
	"github.com/YuminosukeSato/gomfe/core/parallel"
	"github.com/YuminosukeSato/gomfe/pkg/errors"
)

// Node is a single node of the fitted tree. Leaf nodes have Left and Right
// set to -1 and Feature set to -1.
type Node struct {
	ID     int
	Parent int
	Left   int
	Right  int
	Depth  int

	// Split information (internal nodes).
	Feature   int
	Threshold float64
	Gain      float64

	// Class distribution over Classifier.Classes(), and the majority class.
	Counts  []int
	Samples int
	Class   float64
}

// IsLeaf reports whether the node is terminal.
func (n *Node) IsLeaf() bool {
	return n.Left == -1 && n.Right == -1
}

// Classifier is a CART decision tree using Gini impurity.
type Classifier struct {
	model.BaseEstimator

	maxDepth        int
	minSamplesSplit int

	nodes       []Node
	classes     []float64
	classIndex  map[float64]int
	nFeatures   int
	importances []float64
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithMaxDepth limits tree depth; 0 means unlimited.
func WithMaxDepth(d int) Option {
	return func(c *Classifier) {
		c.maxDepth = d
	}
}

// WithMinSamplesSplit sets the minimum node size eligible for splitting.
func WithMinSamplesSplit(n int) Option {
	return func(c *Classifier) {
		c.minSamplesSplit = n
	}
}

// NewClassifier creates a CART classifier.
func NewClassifier(options ...Option) *Classifier {
	c := &Classifier{
		minSamplesSplit: 2,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Fit builds the tree from X and class labels y.
func (c *Classifier) Fit(X mat.Matrix, y []float64) error {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return errors.Wrap(errors.ErrEmptyData, "tree.Fit")
	}
	if len(y) != rows {
		return errors.NewDimensionError("tree.Fit", rows, len(y), 0)
	}

	c.Reset()
	c.nFeatures = cols
	c.nodes = c.nodes[:0]
	c.importances = make([]float64, cols)

	c.classes = distinctSorted(y)
	c.classIndex = make(map[float64]int, len(c.classes))
	for i, label := range c.classes {
		c.classIndex[label] = i
	}

	idx := make([]int, rows)
	for i := range idx {
		idx[i] = i
	}
	c.buildNode(X, y, idx, -1, 0)

	// Normalize accumulated impurity decreases into importances.
	var total float64
	for _, v := range c.importances {
		total += v
	}
	if total > 0 {
		for j := range c.importances {
			c.importances[j] /= total
		}
	}

	c.SetFitted()
	return nil
}

// buildNode grows the subtree over the rows in idx and returns its node ID.
func (c *Classifier) buildNode(X mat.Matrix, y []float64, idx []int, parent, depth int) int {
	counts := make([]int, len(c.classes))
	for _, i := range idx {
		counts[c.classIndex[y[i]]]++
	}

	id := len(c.nodes)
	c.nodes = append(c.nodes, Node{
		ID:      id,
		Parent:  parent,
		Left:    -1,
		Right:   -1,
		Depth:   depth,
		Feature: -1,
		Counts:  counts,
		Samples: len(idx),
		Class:   c.majority(counts),
	})

	if len(idx) < c.minSamplesSplit || isPure(counts) {
		return id
	}
	if c.maxDepth > 0 && depth >= c.maxDepth {
		return id
	}

	feature, threshold, gain := c.bestSplit(X, y, idx, counts)
	if feature < 0 {
		return id
	}

	var left, right []int
	for _, i := range idx {
		if X.At(i, feature) <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return id
	}

	c.importances[feature] += gain * float64(len(idx))

	c.nodes[id].Feature = feature
	c.nodes[id].Threshold = threshold
	c.nodes[id].Gain = gain
	leftID := c.buildNode(X, y, left, id, depth+1)
	rightID := c.buildNode(X, y, right, id, depth+1)
	c.nodes[id].Left = leftID
	c.nodes[id].Right = rightID
	return id
}

type splitCandidate struct {
	threshold float64
	gain      float64
	valid     bool
}

// bestSplit searches every feature for the threshold with the largest Gini
// gain. The per-feature search is independent, so it parallelizes over
// feature chunks.
func (c *Classifier) bestSplit(X mat.Matrix, y []float64, idx []int, counts []int) (int, float64, float64) {
	parentImpurity := gini(counts, len(idx))
	candidates := make([]splitCandidate, c.nFeatures)

	parallel.ParallelizeWithThreshold(c.nFeatures, 8, func(start, end int) {
		for j := start; j < end; j++ {
			candidates[j] = c.bestSplitOnFeature(X, y, idx, counts, j, parentImpurity)
		}
	})

	bestFeature := -1
	var bestThreshold, bestGain float64
	for j, cand := range candidates {
		if cand.valid && cand.gain > bestGain {
			bestFeature = j
			bestThreshold = cand.threshold
			bestGain = cand.gain
		}
	}
	if bestGain <= 1e-12 {
		return -1, 0, 0
	}
	return bestFeature, bestThreshold, bestGain
}

func (c *Classifier) bestSplitOnFeature(X mat.Matrix, y []float64, idx []int, counts []int, feature int, parentImpurity float64) splitCandidate {
	n := len(idx)
	order := make([]int, n)
	copy(order, idx)
	sort.Slice(order, func(a, b int) bool {
		return X.At(order[a], feature) < X.At(order[b], feature)
	})

	leftCounts := make([]int, len(c.classes))
	rightCounts := make([]int, len(c.classes))
	copy(rightCounts, counts)

	var best splitCandidate
	for k := 0; k < n-1; k++ {
		ci := c.classIndex[y[order[k]]]
		leftCounts[ci]++
		rightCounts[ci]--

		v, next := X.At(order[k], feature), X.At(order[k+1], feature)
		if v == next {
			continue
		}

		nLeft := k + 1
		nRight := n - nLeft
		weighted := (float64(nLeft)*gini(leftCounts, nLeft) +
			float64(nRight)*gini(rightCounts, nRight)) / float64(n)
		gain := parentImpurity - weighted
		if !best.valid || gain > best.gain {
			best = splitCandidate{
				threshold: (v + next) / 2,
				gain:      gain,
				valid:     true,
			}
		}
	}
	return best
}

func (c *Classifier) majority(counts []int) float64 {
	best := 0
	for i, count := range counts {
		if count > counts[best] {
			best = i
		}
	}
	return c.classes[best]
}

// Predict returns the predicted class label for each row of X.
func (c *Classifier) Predict(X mat.Matrix) ([]float64, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("tree.Classifier", "Predict")
	}
	rows, cols := X.Dims()
	if cols != c.nFeatures {
		return nil, errors.NewDimensionError("tree.Predict", c.nFeatures, cols, 1)
	}

	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		nodeID := 0
		for {
			node := &c.nodes[nodeID]
			if node.IsLeaf() {
				out[i] = node.Class
				break
			}
			if X.At(i, node.Feature) <= node.Threshold {
				nodeID = node.Left
			} else {
				nodeID = node.Right
			}
		}
	}
	return out, nil
}

// Classes returns the distinct class labels seen at fit time, sorted.
func (c *Classifier) Classes() []float64 {
	return c.classes
}

// Nodes returns the fitted nodes. Read-only.
func (c *Classifier) Nodes() []Node {
	return c.nodes
}

func gini(counts []int, total int) float64 {
	if total == 0 {
		return 0
	}
	impurity := 1.0
	for _, count := range counts {
		p := float64(count) / float64(total)
		impurity -= p * p
	}
	return impurity
}

func isPure(counts []int) bool {
	nonzero := 0
	for _, count := range counts {
		if count > 0 {
			nonzero++
		}
	}
	return nonzero <= 1
}

func distinctSorted(values []float64) []float64 {
	seen := make(map[float64]struct{})
	var out []float64
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}

var _ model.Classifier = (*Classifier)(nil)
