package measure

import (
	"fmt"
	"sort"
	"strings"
)

// Args holds the per-measure keyword arguments. The key set accepted by a
// measure is exactly the key set of its descriptor's Defaults.
type Args map[string]any

// Clone returns a shallow copy of the argument map.
func (a Args) Clone() Args {
	out := make(Args, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Merge overlays over on top of a and returns the combined map. Neither
// input is mutated; keys in over win.
func (a Args) Merge(over Args) Args {
	out := a.Clone()
	for k, v := range over {
		out[k] = v
	}
	return out
}

// Restrict keeps only the keys that also appear in allowed. Precomputation
// cache keys are built from merged measure args restricted to the
// precomputer's own parameter set.
func (a Args) Restrict(allowed Args) Args {
	out := make(Args, len(allowed))
	for k, v := range a {
		if _, ok := allowed[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Signature renders the arguments as a canonical string with sorted keys.
// Equal argument maps always produce equal signatures.
func (a Args) Signature() string {
	if len(a) == 0 {
		return ""
	}
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s=%v", k, a[k])
	}
	return b.String()
}

// intArg reads an integer argument, accepting both int and float64 values
// so user maps built from generic sources still work.
func intArg(a Args, key string) int {
	switch v := a[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func floatArg(a Args, key string) float64 {
	switch v := a[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func stringArg(a Args, key string) string {
	if v, ok := a[key].(string); ok {
		return v
	}
	return ""
}
