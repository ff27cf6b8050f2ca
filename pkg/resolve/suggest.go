package resolve

import (
	"maps"
	"strings"

	"github.com/Sumatoshi-tech/importcheck/pkg/ecosystem"
	"github.com/Sumatoshi-tech/importcheck/pkg/levenshtein"
	"github.com/Sumatoshi-tech/importcheck/pkg/manifest"
)

// goModuleSegments is how much of a Go import path is compared against
// required module paths.
const goModuleSegments = 3

// suggest returns the declared dependency closest to an undeclared package
// name, or "" when none is near enough.
func suggest(scope *Scope, file *File, eco ecosystem.Ecosystem, spec string) string {
	name := dependencyName(eco, spec)
	if name == "" {
		return ""
	}

	deps := scope.Manifests.For(eco, file.Source.Dir())

	var ctx levenshtein.Context

	best, ok := ctx.Closest(name, maps.Keys(deps.Names), levenshtein.Threshold(name))
	if !ok {
		return ""
	}

	return best
}

// dependencyName maps a package specifier to the form its manifest declares.
func dependencyName(eco ecosystem.Ecosystem, spec string) string {
	switch eco {
	case ecosystem.JavaScript:
		return manifest.PackageName(spec)
	case ecosystem.Ruby:
		name, _, _ := strings.Cut(spec, "/")

		return name
	case ecosystem.Rust:
		name, _, _ := strings.Cut(spec, "::")

		return name
	case ecosystem.Go:
		parts := strings.SplitN(spec, "/", goModuleSegments+1)

		return strings.Join(parts[:min(len(parts), goModuleSegments)], "/")
	default:
		return ""
	}
}
