package resolve

import (
	"context"
	"strings"

	"github.com/Sumatoshi-tech/importcheck/pkg/ecosystem"
	"github.com/Sumatoshi-tech/importcheck/pkg/extract"
	"github.com/Sumatoshi-tech/importcheck/pkg/stdlib"
)

type rubyStrategy struct {
	extract.Extractor
}

func (rubyStrategy) Resolve(_ context.Context, scope *Scope, file *File, ref extract.Reference) Verdict {
	spec := strings.TrimSuffix(ref.Specifier, ".rb")
	dir := file.Source.Dir()

	if Classify(ecosystem.Ruby, spec) == Relative {
		target := joinRel(dir, spec)
		if outsideRoot(target) {
			return skipped(ReasonNoContext)
		}

		if scope.Index.Contains(target+".rb") || scope.Index.Contains(target) {
			return resolved()
		}

		return hallucinated(ReasonFileNotFound)
	}

	if v, gated := packageGate(scope); gated {
		return v
	}

	if stdlib.Contains(ecosystem.Ruby, spec) {
		return resolved()
	}

	if _, ok := scope.rubyLoadPaths()[spec]; ok {
		return resolved()
	}

	gems := scope.Manifests.For(ecosystem.Ruby, dir)
	if gems.HasGem(spec) {
		return resolved()
	}

	if !gems.Found {
		return skipped(ReasonNoContext)
	}

	return hallucinated(ReasonNotDeclared)
}
