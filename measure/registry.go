package measure

import (
	"fmt"
	"sort"
	"sync"

	"github.com/YuminosukeSato/gomfe/pkg/errors"
)

// Registry holds the measure catalogue and the precomputers it depends
// on. Registration happens once during initialization; afterwards the
// registry is read-only and safe for concurrent use.
type Registry struct {
	measures     []*Descriptor
	byName       map[string]*Descriptor
	precomputers []*Precomputer
	preByName    map[string]*Precomputer
}

// NewRegistry returns an empty registry. Production code uses Default();
// an empty registry exists so stub measures and failing precomputers can
// be injected in tests.
func NewRegistry() *Registry {
	return &Registry{
		byName:    make(map[string]*Descriptor),
		preByName: make(map[string]*Precomputer),
	}
}

// Register adds a measure descriptor. Duplicate names are a programming
// error and panic during initialization.
func (r *Registry) Register(d *Descriptor) {
	if _, ok := r.byName[d.Name]; ok {
		panic(fmt.Sprintf("measure: duplicate registration of %q", d.Name))
	}
	r.measures = append(r.measures, d)
	r.byName[d.Name] = d
}

// RegisterPrecomputer adds a precomputation step.
func (r *Registry) RegisterPrecomputer(p *Precomputer) {
	if _, ok := r.preByName[p.Name]; ok {
		panic(fmt.Sprintf("measure: duplicate precomputer registration of %q", p.Name))
	}
	r.precomputers = append(r.precomputers, p)
	r.preByName[p.Name] = p
}

// Measures returns every registered descriptor in registration order.
func (r *Registry) Measures() []*Descriptor {
	out := make([]*Descriptor, len(r.measures))
	copy(out, r.measures)
	return out
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Precomputer returns the precomputer registered under name.
func (r *Registry) Precomputer(name string) (*Precomputer, bool) {
	p, ok := r.preByName[name]
	return p, ok
}

// Groups returns the distinct groups in registration order.
func (r *Registry) Groups() []Group {
	seen := make(map[Group]bool)
	out := make([]Group, 0)
	for _, d := range r.measures {
		if !seen[d.Group] {
			seen[d.Group] = true
			out = append(out, d.Group)
		}
	}
	return out
}

// Resolve selects descriptors by group and feature names. Explicit feature
// names override the group selection entirely. Unknown feature names fail
// with an UnknownMeasureError carrying the closest registered names;
// unknown group names fail with a ConfigurationError. The result follows
// registration order regardless of the request order.
func (r *Registry) Resolve(groups []string, features []string) ([]*Descriptor, error) {
	if len(features) > 0 {
		wanted := make(map[string]bool, len(features))
		for _, name := range features {
			if _, ok := r.byName[name]; !ok {
				return nil, errors.NewUnknownMeasureError(name, r.closest(name))
			}
			wanted[name] = true
		}
		out := make([]*Descriptor, 0, len(wanted))
		for _, d := range r.measures {
			if wanted[d.Name] {
				out = append(out, d)
			}
		}
		return out, nil
	}

	all := len(groups) == 0
	wanted := make(map[Group]bool, len(groups))
	for _, g := range groups {
		if g == "all" {
			all = true
			continue
		}
		known := false
		for _, rg := range r.Groups() {
			if Group(g) == rg {
				known = true
				break
			}
		}
		if !known {
			return nil, errors.NewConfigurationError("groups", "unknown measure group", g)
		}
		wanted[Group(g)] = true
	}

	out := make([]*Descriptor, 0, len(r.measures))
	for _, d := range r.measures {
		if all || wanted[d.Group] {
			out = append(out, d)
		}
	}
	return out, nil
}

// closest returns up to three registered names within a small edit
// distance of name, nearest first.
func (r *Registry) closest(name string) []string {
	type scored struct {
		name string
		dist int
	}
	candidates := make([]scored, 0)
	for _, d := range r.measures {
		dist := editDistance(name, d.Name)
		if dist <= 3 {
			candidates = append(candidates, scored{d.Name, dist})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].name < candidates[j].name
	})
	if len(candidates) > 3 {
		candidates = candidates[:3]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.name
	}
	return out
}

func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry with the full catalogue. It
// is built once and read-only afterwards.
func Default() *Registry {
	defaultOnce.Do(func() {
		r := NewRegistry()
		registerPrecomputers(r)
		registerGeneral(r)
		registerStatistical(r)
		registerInfoTheory(r)
		registerModelBased(r)
		registerLandmarking(r)
		registerClustering(r)
		registerComplexity(r)
		defaultRegistry = r
	})
	return defaultRegistry
}
