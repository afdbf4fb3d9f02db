package tree

// StructureNode is one node of a Structure snapshot.
type StructureNode struct {
	ID      int
	Depth   int
	Leaf    bool
	Feature int // -1 for leaves
	Class   float64
	Samples int
	// Purity is the fraction of the node's samples belonging to its
	// majority class.
	Purity float64
}

// Structure is the read-only snapshot of a fitted tree that the model-based
// measures operate on. It decouples the measures from any particular tree
// implementation.
type Structure struct {
	Nodes       []StructureNode
	Classes     []float64
	NFeatures   int
	Importances []float64
}

// Introspector is the minimal structural capability the model adapter
// requires from an externally supplied trained model.
type Introspector interface {
	// TreeStructure returns a snapshot of the model's tree structure.
	TreeStructure() *Structure
}

// TreeStructure implements Introspector for the CART classifier.
func (c *Classifier) TreeStructure() *Structure {
	if !c.IsFitted() {
		return nil
	}

	nodes := make([]StructureNode, len(c.nodes))
	for i, n := range c.nodes {
		maxCount := 0
		for _, count := range n.Counts {
			if count > maxCount {
				maxCount = count
			}
		}
		purity := 0.0
		if n.Samples > 0 {
			purity = float64(maxCount) / float64(n.Samples)
		}
		nodes[i] = StructureNode{
			ID:      n.ID,
			Depth:   n.Depth,
			Leaf:    n.IsLeaf(),
			Feature: n.Feature,
			Class:   n.Class,
			Samples: n.Samples,
			Purity:  purity,
		}
	}

	importances := make([]float64, len(c.importances))
	copy(importances, c.importances)

	classes := make([]float64, len(c.classes))
	copy(classes, c.classes)

	return &Structure{
		Nodes:       nodes,
		Classes:     classes,
		NFeatures:   c.nFeatures,
		Importances: importances,
	}
}

// Leaves returns the leaf nodes.
func (s *Structure) Leaves() []StructureNode {
	var out []StructureNode
	for _, n := range s.Nodes {
		if n.Leaf {
			out = append(out, n)
		}
	}
	return out
}

// Internal returns the non-leaf nodes.
func (s *Structure) Internal() []StructureNode {
	var out []StructureNode
	for _, n := range s.Nodes {
		if !n.Leaf {
			out = append(out, n)
		}
	}
	return out
}

// MaxDepth returns the depth of the deepest node.
func (s *Structure) MaxDepth() int {
	max := 0
	for _, n := range s.Nodes {
		if n.Depth > max {
			max = n.Depth
		}
	}
	return max
}

// RootSamples returns the number of training rows at the root, or 0 for an
// empty structure.
func (s *Structure) RootSamples() int {
	if len(s.Nodes) == 0 {
		return 0
	}
	return s.Nodes[0].Samples
}

var _ Introspector = (*Classifier)(nil)
