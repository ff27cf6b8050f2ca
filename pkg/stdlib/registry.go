// Package stdlib answers whether an import names a module shipped with the
// language itself. Lookups are static and need no project context.
//
// Each registry checks in two tiers. The cheap tier accepts unqualified names
// (where the ecosystem reserves them for the standard library) and names whose
// top segment is a known standard root. Only when that is inconclusive does the
// registry consult its list of hierarchical standard paths, which matters for
// Go where net/http is standard but net/foo is not.
package stdlib

import (
	"strings"

	"github.com/Sumatoshi-tech/importcheck/pkg/ecosystem"
)

// Registry is a static table of standard module names for one ecosystem.
type Registry struct {
	sep        string
	flatAccept bool
	schemes    []string
	top        map[string]struct{}
	full       map[string]struct{}
	roots      []string
}

func newRegistry(sep string, flatAccept bool, top, full, roots, schemes []string) *Registry {
	return &Registry{
		sep:        sep,
		flatAccept: flatAccept,
		schemes:    schemes,
		top:        toSet(top),
		full:       toSet(full),
		roots:      roots,
	}
}

// Contains reports whether name is part of the standard library.
func (r *Registry) Contains(name string) bool {
	if r == nil || name == "" {
		return false
	}

	for _, scheme := range r.schemes {
		if strings.HasPrefix(name, scheme) {
			return true
		}
	}

	if r.flatAccept && !strings.Contains(name, r.sep) {
		return true
	}

	topSegment, _, _ := strings.Cut(name, r.sep)
	if _, ok := r.top[topSegment]; ok {
		return true
	}

	if _, ok := r.full[name]; ok {
		return true
	}

	for _, root := range r.roots {
		if name == root || strings.HasPrefix(name, root+r.sep) {
			return true
		}
	}

	return false
}

var registries = map[ecosystem.Ecosystem]*Registry{
	ecosystem.JavaScript: newRegistry("/", false, nodeBuiltins, nil, nil, []string{"node:", "bun:"}),
	ecosystem.Python:     newRegistry(".", false, pythonModules, nil, nil, nil),
	ecosystem.Go:         newRegistry("/", true, nil, goPackages, nil, nil),
	ecosystem.Ruby:       newRegistry("/", false, rubyLibraries, nil, nil, nil),
	ecosystem.CSharp:     newRegistry(".", false, dotnetRoots, nil, nil, nil),
	ecosystem.Rust:       newRegistry("::", false, rustCrates, nil, nil, nil),
	ecosystem.Java:       newRegistry(".", false, javaRoots, nil, javaQualifiedRoots, nil),
	ecosystem.Kotlin:     newRegistry(".", false, append(append([]string{}, javaRoots...), kotlinRoots...), nil, javaQualifiedRoots, nil),
}

// For returns the registry of an ecosystem, or nil when none is defined.
func For(eco ecosystem.Ecosystem) *Registry {
	return registries[eco]
}

// Contains reports whether name is a standard module of eco.
func Contains(eco ecosystem.Ecosystem, name string) bool {
	return For(eco).Contains(name)
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}

	return set
}
