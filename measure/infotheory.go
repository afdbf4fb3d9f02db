package measure

import (
	"github.com/YuminosukeSato/gomfe/pkg/errors"
)

func registerInfoTheory(r *Registry) {
	r.Register(&Descriptor{
		Name:     "attr_conc",
		Group:    GroupInfoTheory,
		Output:   OutputVector,
		Requires: []string{PreBinned},
		Defaults: Args{"bins": 0},
		Compute: func(env *Env, args Args) ([]float64, error) {
			bi, err := binnedOf(env, args)
			if err != nil {
				return nil, err
			}
			if len(bi.Codes) < 2 {
				return nil, errors.Wrap(errors.ErrNotApplicable, "needs at least two attributes")
			}
			out := make([]float64, 0, len(bi.Codes)*(len(bi.Codes)-1))
			for i := range bi.Codes {
				for j := range bi.Codes {
					if i == j {
						continue
					}
					out = append(out, concentration(bi.Codes[i], bi.Codes[j]))
				}
			}
			return out, nil
		},
	})
	r.Register(&Descriptor{
		Name:     "attr_ent",
		Group:    GroupInfoTheory,
		Output:   OutputVector,
		Requires: []string{PreBinned},
		Defaults: Args{"bins": 0},
		Compute: func(env *Env, args Args) ([]float64, error) {
			bi, err := binnedOf(env, args)
			if err != nil {
				return nil, err
			}
			out := make([]float64, len(bi.Codes))
			for j, codes := range bi.Codes {
				out[j] = entropyOfCodes(codes)
			}
			return out, nil
		},
	})
	r.Register(&Descriptor{
		Name:     "class_conc",
		Group:    GroupInfoTheory,
		Task:     AppliesSupervised,
		Output:   OutputVector,
		Requires: []string{PreBinned, PreClasses},
		Defaults: Args{"bins": 0},
		Compute: func(env *Env, args Args) ([]float64, error) {
			bi, ci, err := binnedWithClasses(env, args)
			if err != nil {
				return nil, err
			}
			out := make([]float64, len(bi.Codes))
			for j, codes := range bi.Codes {
				out[j] = concentration(codes, ci.Assign)
			}
			return out, nil
		},
	})
	r.Register(&Descriptor{
		Name:     "class_ent",
		Group:    GroupInfoTheory,
		Task:     AppliesSupervised,
		Output:   OutputScalar,
		Requires: []string{PreClasses},
		Compute: func(env *Env, args Args) ([]float64, error) {
			ci, err := classInfoOf(env, args)
			if err != nil {
				return nil, err
			}
			return scalar(entropyFromCounts(ci.Counts, len(ci.Assign))), nil
		},
	})
	r.Register(&Descriptor{
		Name:     "eq_num_attr",
		Group:    GroupInfoTheory,
		Task:     AppliesSupervised,
		Output:   OutputScalar,
		Requires: []string{PreBinned, PreClasses},
		Defaults: Args{"bins": 0},
		Compute: func(env *Env, args Args) ([]float64, error) {
			bi, ci, err := binnedWithClasses(env, args)
			if err != nil {
				return nil, err
			}
			classEnt := entropyFromCounts(ci.Counts, len(ci.Assign))
			mi := meanOf(mutualInformation(bi, ci))
			if mi <= 0 {
				return nil, errors.Wrap(errors.ErrNotApplicable, "no attribute shares information with the class")
			}
			return scalar(classEnt / mi), nil
		},
	})
	r.Register(&Descriptor{
		Name:     "joint_ent",
		Group:    GroupInfoTheory,
		Task:     AppliesSupervised,
		Output:   OutputVector,
		Requires: []string{PreBinned, PreClasses},
		Defaults: Args{"bins": 0},
		Compute: func(env *Env, args Args) ([]float64, error) {
			bi, ci, err := binnedWithClasses(env, args)
			if err != nil {
				return nil, err
			}
			out := make([]float64, len(bi.Codes))
			for j, codes := range bi.Codes {
				out[j] = jointEntropy(codes, ci.Assign)
			}
			return out, nil
		},
	})
	r.Register(&Descriptor{
		Name:     "mut_inf",
		Group:    GroupInfoTheory,
		Task:     AppliesSupervised,
		Output:   OutputVector,
		Requires: []string{PreBinned, PreClasses},
		Defaults: Args{"bins": 0},
		Compute: func(env *Env, args Args) ([]float64, error) {
			bi, ci, err := binnedWithClasses(env, args)
			if err != nil {
				return nil, err
			}
			return mutualInformation(bi, ci), nil
		},
	})
	r.Register(&Descriptor{
		Name:     "ns_ratio",
		Group:    GroupInfoTheory,
		Task:     AppliesSupervised,
		Output:   OutputScalar,
		Requires: []string{PreBinned, PreClasses},
		Defaults: Args{"bins": 0},
		Compute: func(env *Env, args Args) ([]float64, error) {
			bi, ci, err := binnedWithClasses(env, args)
			if err != nil {
				return nil, err
			}
			attrEnt := make([]float64, len(bi.Codes))
			for j, codes := range bi.Codes {
				attrEnt[j] = entropyOfCodes(codes)
			}
			mi := meanOf(mutualInformation(bi, ci))
			if mi <= 0 {
				return nil, errors.Wrap(errors.ErrNotApplicable, "no attribute shares information with the class")
			}
			return scalar((meanOf(attrEnt) - mi) / mi), nil
		},
	})
}

func binnedWithClasses(env *Env, args Args) (*BinnedInfo, *ClassInfo, error) {
	bi, err := binnedOf(env, args)
	if err != nil {
		return nil, nil, err
	}
	ci, err := classInfoOf(env, args)
	if err != nil {
		return nil, nil, err
	}
	return bi, ci, nil
}

// mutualInformation computes I(X_j; Y) = H(X_j) + H(Y) - H(X_j, Y) for
// every attribute.
func mutualInformation(bi *BinnedInfo, ci *ClassInfo) []float64 {
	classEnt := entropyFromCounts(ci.Counts, len(ci.Assign))
	out := make([]float64, len(bi.Codes))
	for j, codes := range bi.Codes {
		out[j] = entropyOfCodes(codes) + classEnt - jointEntropy(codes, ci.Assign)
	}
	return out
}
