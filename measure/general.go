package measure

import (
	"github.com/YuminosukeSato/gomfe/pkg/errors"
)

func registerGeneral(r *Registry) {
	r.Register(&Descriptor{
		Name:   "attr_to_inst",
		Group:  GroupGeneral,
		Output: OutputScalar,
		Compute: func(env *Env, _ Args) ([]float64, error) {
			return scalar(float64(env.Data.Attrs()) / float64(env.Data.Rows())), nil
		},
	})
	r.Register(&Descriptor{
		Name:   "cat_to_num",
		Group:  GroupGeneral,
		Output: OutputScalar,
		Compute: func(env *Env, _ Args) ([]float64, error) {
			numeric := len(env.Data.NumericIndices())
			if numeric == 0 {
				return nil, errors.Wrap(errors.ErrNotApplicable, "no numeric attributes")
			}
			return scalar(float64(len(env.Data.CategoricalIndices())) / float64(numeric)), nil
		},
	})
	r.Register(&Descriptor{
		Name:     "freq_class",
		Group:    GroupGeneral,
		Task:     AppliesSupervised,
		Output:   OutputVector,
		Requires: []string{PreClasses},
		Compute: func(env *Env, args Args) ([]float64, error) {
			ci, err := classInfoOf(env, args)
			if err != nil {
				return nil, err
			}
			return ci.Freqs(), nil
		},
	})
	r.Register(&Descriptor{
		Name:   "inst_to_attr",
		Group:  GroupGeneral,
		Output: OutputScalar,
		Compute: func(env *Env, _ Args) ([]float64, error) {
			return scalar(float64(env.Data.Rows()) / float64(env.Data.Attrs())), nil
		},
	})
	r.Register(&Descriptor{
		Name:   "nr_attr",
		Group:  GroupGeneral,
		Output: OutputScalar,
		Compute: func(env *Env, _ Args) ([]float64, error) {
			return scalar(float64(env.Data.Attrs())), nil
		},
	})
	r.Register(&Descriptor{
		Name:   "nr_bin",
		Group:  GroupGeneral,
		Output: OutputScalar,
		Compute: func(env *Env, _ Args) ([]float64, error) {
			binary := 0
			for j := 0; j < env.Data.Attrs(); j++ {
				if distinctCount(env.Data.Column(j)) == 2 {
					binary++
				}
			}
			return scalar(float64(binary)), nil
		},
	})
	r.Register(&Descriptor{
		Name:   "nr_cat",
		Group:  GroupGeneral,
		Output: OutputScalar,
		Compute: func(env *Env, _ Args) ([]float64, error) {
			return scalar(float64(len(env.Data.CategoricalIndices()))), nil
		},
	})
	r.Register(&Descriptor{
		Name:     "nr_class",
		Group:    GroupGeneral,
		Task:     AppliesSupervised,
		Output:   OutputScalar,
		Requires: []string{PreClasses},
		Compute: func(env *Env, args Args) ([]float64, error) {
			ci, err := classInfoOf(env, args)
			if err != nil {
				return nil, err
			}
			return scalar(float64(len(ci.Labels))), nil
		},
	})
	r.Register(&Descriptor{
		Name:   "nr_inst",
		Group:  GroupGeneral,
		Output: OutputScalar,
		Compute: func(env *Env, _ Args) ([]float64, error) {
			return scalar(float64(env.Data.Rows())), nil
		},
	})
	r.Register(&Descriptor{
		Name:   "nr_num",
		Group:  GroupGeneral,
		Output: OutputScalar,
		Compute: func(env *Env, _ Args) ([]float64, error) {
			return scalar(float64(len(env.Data.NumericIndices()))), nil
		},
	})
}
