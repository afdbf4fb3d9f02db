package measure

import (
	"github.com/YuminosukeSato/gomfe/pkg/errors"
)

// Precomputer is a named precomputation step. Defaults declares its own
// parameter set; only those keys participate in the cache key, so two
// measures whose merged arguments agree on the precomputer's parameters
// share one entry. After lists precomputations that must run earlier in
// the same run because this one reads their cached results.
type Precomputer struct {
	Name     string
	Task     Applicability
	After    []string
	Defaults Args
	Run      func(env *Env, args Args) (any, error)
}

// CacheKey derives the run-cache key for this precomputer under the given
// merged measure arguments.
func (p *Precomputer) CacheKey(args Args) string {
	effective := p.Defaults.Merge(args.Restrict(p.Defaults))
	return p.Name + "(" + effective.Signature() + ")"
}

type planStep struct {
	pre  *Precomputer
	args Args
	key  string
}

// Plan is the ordered set of distinct precomputation steps one extraction
// run needs. Steps run exactly once each, single-threaded.
type Plan struct {
	steps []planStep
}

// Len returns the number of distinct steps in the plan.
func (p *Plan) Len() int {
	return len(p.steps)
}

// BuildPlan walks the selected measures, collects the distinct
// (precomputation, signature) pairs their merged arguments imply, pulls in
// declared After dependencies, and orders the steps by registration order
// subject to the After edges. A dependency cycle fails the whole run with
// a CyclicDependencyError.
func (r *Registry) BuildPlan(selected []*Descriptor, overrides map[string]Args) (*Plan, error) {
	plan := &Plan{}
	seen := make(map[string]bool)

	add := func(pre *Precomputer, args Args) {
		key := pre.CacheKey(args)
		if seen[key] {
			return
		}
		seen[key] = true
		effective := pre.Defaults.Merge(args.Restrict(pre.Defaults))
		plan.steps = append(plan.steps, planStep{pre: pre, args: effective, key: key})
	}

	for _, d := range selected {
		merged := d.MergedArgs(overrides[d.Name])
		for _, name := range d.Requires {
			pre, ok := r.Precomputer(name)
			if !ok {
				return nil, errors.NewConfigurationError(
					"requires", "measure requires an unknown precomputation", name)
			}
			add(pre, merged)
		}
	}

	// Close over After edges: a precomputer that reads another one's
	// cached result needs that step in the plan under its default
	// parameters.
	for i := 0; i < len(plan.steps); i++ {
		for _, name := range plan.steps[i].pre.After {
			pre, ok := r.Precomputer(name)
			if !ok {
				return nil, errors.NewConfigurationError(
					"after", "precomputation orders after an unknown precomputation", name)
			}
			add(pre, nil)
		}
	}

	order, err := r.topoOrder(plan.steps)
	if err != nil {
		return nil, err
	}

	ordered := make([]planStep, 0, len(plan.steps))
	for _, name := range order {
		for _, s := range plan.steps {
			if s.pre.Name == name {
				ordered = append(ordered, s)
			}
		}
	}
	plan.steps = ordered
	return plan, nil
}

// topoOrder runs Kahn's algorithm over the precomputer names present in
// the steps, with ties broken by registration order.
func (r *Registry) topoOrder(steps []planStep) ([]string, error) {
	present := make(map[string]bool)
	for _, s := range steps {
		present[s.pre.Name] = true
	}

	// Names in registration order so the result is deterministic.
	names := make([]string, 0, len(present))
	for _, p := range r.precomputers {
		if present[p.Name] {
			names = append(names, p.Name)
		}
	}

	indegree := make(map[string]int, len(names))
	dependents := make(map[string][]string, len(names))
	for _, name := range names {
		pre, _ := r.Precomputer(name)
		for _, after := range pre.After {
			if !present[after] {
				continue
			}
			indegree[name]++
			dependents[after] = append(dependents[after], name)
		}
	}

	order := make([]string, 0, len(names))
	done := make(map[string]bool, len(names))
	for len(order) < len(names) {
		progressed := false
		for _, name := range names {
			if done[name] || indegree[name] > 0 {
				continue
			}
			done[name] = true
			order = append(order, name)
			for _, dep := range dependents[name] {
				indegree[dep]--
			}
			progressed = true
		}
		if !progressed {
			cycle := make([]string, 0)
			for _, name := range names {
				if !done[name] {
					cycle = append(cycle, name)
				}
			}
			return nil, errors.NewCyclicDependencyError(cycle)
		}
	}
	return order, nil
}

// Run executes every step once, in plan order. A step whose task
// applicability does not match the dataset is recorded as unavailable
// without running; a step that errors or panics is recorded in the cache
// as unavailable and never retried. Later steps still run.
func (p *Plan) Run(env *Env) {
	for _, s := range p.steps {
		if _, _, ok := env.Cache.Lookup(s.key); ok {
			continue
		}
		if env.Data != nil && !s.pre.Task.Matches(env.Data.Task()) {
			env.Cache.Put(s.key, nil, errors.NewPrecomputationError(s.pre.Name,
				errors.Wrapf(errors.ErrNotApplicable, "%s dataset", env.Data.Task())))
			continue
		}
		value, err := runStep(env, s)
		if err != nil {
			env.Cache.Put(s.key, nil, errors.NewPrecomputationError(s.pre.Name, err))
			continue
		}
		env.Cache.Put(s.key, value, nil)
	}
}

func runStep(env *Env, s planStep) (value any, err error) {
	defer errors.Recover(&err, "precompute "+s.pre.Name)
	return s.pre.Run(env, s.args)
}
