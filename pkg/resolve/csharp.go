package resolve

import (
	"context"
	"strings"

	"github.com/Sumatoshi-tech/importcheck/pkg/ecosystem"
	"github.com/Sumatoshi-tech/importcheck/pkg/extract"
	"github.com/Sumatoshi-tech/importcheck/pkg/stdlib"
)

type csharpStrategy struct {
	extract.Extractor
}

func (csharpStrategy) Resolve(_ context.Context, scope *Scope, file *File, ref extract.Reference) Verdict {
	if v, gated := packageGate(scope); gated {
		return v
	}

	spec := ref.Specifier
	if stdlib.Contains(ecosystem.CSharp, spec) {
		return resolved()
	}

	namespace := spec
	if ref.Static {
		// "using static A.B.Type;" names a type inside namespace A.B.
		if i := strings.LastIndex(spec, "."); i > 0 {
			namespace = spec[:i]
		}
	}

	if declaresNamespace(scope.Namespaces(), namespace) {
		return resolved()
	}

	packages := scope.Manifests.For(ecosystem.CSharp, file.Source.Dir())
	if packages.HasNamespace(spec) {
		return resolved()
	}

	if !packages.Found {
		return skipped(ReasonNoContext)
	}

	return hallucinated(ReasonNamespaceNotFound)
}

// declaresNamespace accepts a declared namespace or any ancestor of one.
func declaresNamespace(declared map[string]struct{}, namespace string) bool {
	if _, ok := declared[namespace]; ok {
		return true
	}

	for ns := range declared {
		if strings.HasPrefix(ns, namespace+".") {
			return true
		}
	}

	return false
}
