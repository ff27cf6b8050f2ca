package resolve

import (
	"context"
	"path"
	"strings"

	"github.com/Sumatoshi-tech/importcheck/pkg/ecosystem"
	"github.com/Sumatoshi-tech/importcheck/pkg/extract"
	"github.com/Sumatoshi-tech/importcheck/pkg/manifest"
	"github.com/Sumatoshi-tech/importcheck/pkg/stdlib"
)

type goStrategy struct {
	extract.Extractor
}

func (goStrategy) Resolve(_ context.Context, scope *Scope, file *File, ref extract.Reference) Verdict {
	spec := ref.Specifier
	dir := file.Source.Dir()

	if Classify(ecosystem.Go, spec) == Relative {
		target := joinRel(dir, spec)
		if outsideRoot(target) {
			return skipped(ReasonNoContext)
		}

		if scope.Index.DirHasExt(target, ".go") {
			return resolved()
		}

		return hallucinated(ReasonFileNotFound)
	}

	if v, gated := packageGate(scope); gated {
		return v
	}

	if stdlib.Contains(ecosystem.Go, spec) {
		return resolved()
	}

	mods := scope.Manifests.For(ecosystem.Go, dir)

	if modPath, modDir, ok := longestModule(mods, spec); ok {
		rest := strings.TrimPrefix(strings.TrimPrefix(spec, modPath), "/")
		if scope.Index.DirHasExt(path.Join(modDir, rest), ".go") {
			return resolved()
		}

		if rest == "" {
			rest = modPath
		}

		return hallucinated(ReasonPackageDirNotFound + ": " + rest)
	}

	if declaredModule(mods, spec) {
		return resolved()
	}

	top, _, _ := strings.Cut(spec, "/")
	if strings.Contains(top, ".") {
		return resolved()
	}

	if !mods.Found {
		return skipped(ReasonNoContext)
	}

	return hallucinated(ReasonNotDeclared)
}

// longestModule finds the local module whose path is the longest prefix of spec.
func longestModule(mods *manifest.Set, spec string) (string, string, bool) {
	best, bestDir := "", ""

	for modPath, modDir := range mods.Modules {
		if spec != modPath && !strings.HasPrefix(spec, modPath+"/") {
			continue
		}

		if len(modPath) > len(best) {
			best, bestDir = modPath, modDir
		}
	}

	return best, bestDir, best != ""
}

// declaredModule reports whether spec is a required module or a package in one.
func declaredModule(mods *manifest.Set, spec string) bool {
	if mods.Has(spec) {
		return true
	}

	for name := range mods.Names {
		if strings.HasPrefix(spec, name+"/") {
			return true
		}
	}

	return false
}
