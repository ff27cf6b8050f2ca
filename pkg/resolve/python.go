package resolve

import (
	"context"
	"path"
	"strings"

	"github.com/Sumatoshi-tech/importcheck/pkg/ecosystem"
	"github.com/Sumatoshi-tech/importcheck/pkg/extract"
	"github.com/Sumatoshi-tech/importcheck/pkg/stdlib"
)

type pythonStrategy struct {
	extract.Extractor
}

// Resolve checks relative imports against the tree. Absolute imports are
// only verified when their top-level segment is a project module; Python has
// no dependency manifest to compare third-party names against.
func (pythonStrategy) Resolve(_ context.Context, scope *Scope, file *File, ref extract.Reference) Verdict {
	spec := ref.Specifier
	dir := file.Source.Dir()

	if Classify(ecosystem.Python, spec) == Relative {
		return pythonRelative(scope.Index, dir, spec)
	}

	if v, gated := packageGate(scope); gated {
		return v
	}

	if stdlib.Contains(ecosystem.Python, spec) {
		return resolved()
	}

	top, _, _ := strings.Cut(spec, ".")
	modulePath := strings.ReplaceAll(spec, ".", "/")
	local := false

	for _, root := range pythonRoots(dir) {
		if !scope.pythonTopLevel(root, top) {
			continue
		}

		local = true

		if pythonModuleExists(scope.Index, path.Join(root, modulePath)) {
			return resolved()
		}
	}

	if local {
		return hallucinated(ReasonModuleNotFound)
	}

	return skipped(ReasonNoContext)
}

// pythonRelative resolves "from ..pkg.mod import x": n leading dots climb
// n-1 directories from the importing file.
func pythonRelative(index *ProjectFileIndex, dir, spec string) Verdict {
	rest := strings.TrimLeft(spec, ".")
	levels := len(spec) - len(rest)

	base := dir
	for range levels - 1 {
		base = path.Join(base, "..")
	}

	if rest == "" {
		return resolved()
	}

	target := joinRel(base, strings.ReplaceAll(rest, ".", "/"))
	if outsideRoot(target) {
		return skipped(ReasonNoContext)
	}

	if pythonModuleExists(index, target) {
		return resolved()
	}

	return hallucinated(ReasonFileNotFound)
}

func pythonRoots(dir string) []string {
	roots := []string{"", "src"}
	if dir != "" && dir != "src" {
		roots = append(roots, dir)
	}

	return roots
}

func pythonModuleExists(index *ProjectFileIndex, target string) bool {
	return index.Contains(target+".py") ||
		index.Contains(target+".pyi") ||
		index.Contains(target+"/__init__.py") ||
		index.HasExtUnder(target, ".py") ||
		index.HasExtUnder(target, ".pyi")
}

// pythonTopLevel reports whether top names a module or package of the
// project under root.
func (s *Scope) pythonTopLevel(root, top string) bool {
	return s.pythonLocal.Get(root+"\x00"+top, func() bool {
		return pythonModuleExists(s.Index, path.Join(root, top))
	})
}
