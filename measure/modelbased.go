package measure

import (
	"math"

	"github.com/YuminosukeSato/gomfe/pkg/errors"
	"github.com/YuminosukeSato/gomfe/tree"
)

// registerModelBased registers the measures computed from a fitted tree
// structure. All of them forward max_depth to the model precomputation
// and can also run against an externally supplied model.
func registerModelBased(r *Registry) {
	register := func(name string, output Output, compute func(s *tree.Structure) ([]float64, error)) {
		r.Register(&Descriptor{
			Name:     name,
			Group:    GroupModelBased,
			Task:     AppliesSupervised,
			Output:   output,
			Requires: []string{PreModel},
			ModelDep: true,
			Defaults: Args{"max_depth": 0},
			Compute: func(env *Env, args Args) ([]float64, error) {
				s, err := modelOf(env, args)
				if err != nil {
					return nil, err
				}
				return compute(s)
			},
		})
	}

	register("leaves", OutputScalar, func(s *tree.Structure) ([]float64, error) {
		return scalar(float64(len(s.Leaves()))), nil
	})
	register("leaves_branch", OutputVector, func(s *tree.Structure) ([]float64, error) {
		leaves := s.Leaves()
		out := make([]float64, len(leaves))
		for i, leaf := range leaves {
			out[i] = float64(leaf.Depth)
		}
		return out, nil
	})
	register("leaves_corrob", OutputVector, func(s *tree.Structure) ([]float64, error) {
		leaves := s.Leaves()
		root := float64(s.RootSamples())
		out := make([]float64, len(leaves))
		for i, leaf := range leaves {
			out[i] = float64(leaf.Samples) / root
		}
		return out, nil
	})
	register("leaves_homo", OutputVector, func(s *tree.Structure) ([]float64, error) {
		leaves := s.Leaves()
		total := float64(len(leaves))
		root := float64(s.RootSamples())
		out := make([]float64, len(leaves))
		for i, leaf := range leaves {
			// Leaves near the root covering many instances score low,
			// deep low-support leaves score high.
			out[i] = total / (float64(leaf.Depth) * float64(leaf.Samples) / root)
		}
		return out, nil
	})
	register("leaves_per_class", OutputVector, func(s *tree.Structure) ([]float64, error) {
		leaves := s.Leaves()
		out := make([]float64, len(s.Classes))
		for _, leaf := range leaves {
			for k, class := range s.Classes {
				if leaf.Class == class {
					out[k]++
					break
				}
			}
		}
		for k := range out {
			out[k] /= float64(len(leaves))
		}
		return out, nil
	})
	register("nodes", OutputScalar, func(s *tree.Structure) ([]float64, error) {
		return scalar(float64(len(s.Internal()))), nil
	})
	register("nodes_per_attr", OutputScalar, func(s *tree.Structure) ([]float64, error) {
		return scalar(float64(len(s.Internal())) / float64(s.NFeatures)), nil
	})
	register("nodes_per_inst", OutputScalar, func(s *tree.Structure) ([]float64, error) {
		return scalar(float64(len(s.Internal())) / float64(s.RootSamples())), nil
	})
	register("nodes_per_level", OutputVector, func(s *tree.Structure) ([]float64, error) {
		internal := s.Internal()
		if len(internal) == 0 {
			return nil, errors.Wrap(errors.ErrNotApplicable, "tree has no internal nodes")
		}
		maxDepth := 0
		for _, n := range internal {
			if n.Depth > maxDepth {
				maxDepth = n.Depth
			}
		}
		out := make([]float64, maxDepth+1)
		for _, n := range internal {
			out[n.Depth]++
		}
		return out, nil
	})
	register("nodes_repeated", OutputVector, func(s *tree.Structure) ([]float64, error) {
		counts := make([]int, s.NFeatures)
		for _, n := range s.Internal() {
			counts[n.Feature]++
		}
		out := make([]float64, 0, s.NFeatures)
		for _, c := range counts {
			if c > 0 {
				out = append(out, float64(c))
			}
		}
		if len(out) == 0 {
			return nil, errors.Wrap(errors.ErrNotApplicable, "tree has no internal nodes")
		}
		return out, nil
	})
	register("tree_depth", OutputVector, func(s *tree.Structure) ([]float64, error) {
		out := make([]float64, len(s.Nodes))
		for i, n := range s.Nodes {
			out[i] = float64(n.Depth)
		}
		return out, nil
	})
	register("tree_imbalance", OutputVector, func(s *tree.Structure) ([]float64, error) {
		leaves := s.Leaves()
		root := float64(s.RootSamples())
		out := make([]float64, len(leaves))
		for i, leaf := range leaves {
			p := float64(leaf.Samples) / root
			out[i] = -p * math.Log2(p)
		}
		return out, nil
	})
	register("tree_shape", OutputVector, func(s *tree.Structure) ([]float64, error) {
		leaves := s.Leaves()
		out := make([]float64, len(leaves))
		for i, leaf := range leaves {
			// The probability of reaching the leaf by random walk is
			// 2^-depth; the shape is that probability's entropy term.
			q := math.Pow(2, -float64(leaf.Depth))
			out[i] = -q * math.Log2(q)
		}
		return out, nil
	})
	register("var_importance", OutputVector, func(s *tree.Structure) ([]float64, error) {
		out := make([]float64, len(s.Importances))
		copy(out, s.Importances)
		return out, nil
	})
}
