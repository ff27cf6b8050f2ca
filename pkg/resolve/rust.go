package resolve

import (
	"context"
	"path"
	"regexp"
	"strings"

	"github.com/Sumatoshi-tech/importcheck/pkg/ecosystem"
	"github.com/Sumatoshi-tech/importcheck/pkg/extract"
	"github.com/Sumatoshi-tech/importcheck/pkg/manifest"
	"github.com/Sumatoshi-tech/importcheck/pkg/stdlib"
)

// rustPathRoots are path keywords relative to the current crate or module.
var rustPathRoots = map[string]struct{}{"crate": {}, "self": {}, "super": {}, "Self": {}}

var rsItemPattern = regexp.MustCompile(
	`(?m)^\s*(?:pub(?:\s*\([^)]*\))?\s+)?(?:(?:async|unsafe|const|extern\s+"[^"]*")\s+)*` +
		`(?:mod|struct|enum|trait|type|fn|const|static|union|macro_rules!)\s+(\w+)`)

type rustStrategy struct {
	extract.Extractor
}

func (rustStrategy) Resolve(_ context.Context, scope *Scope, file *File, ref extract.Reference) Verdict {
	root, _, _ := strings.Cut(ref.Specifier, "::")
	if _, ok := rustPathRoots[root]; ok {
		return resolved()
	}

	if v, gated := packageGate(scope); gated {
		return v
	}

	if stdlib.Contains(ecosystem.Rust, root) {
		return resolved()
	}

	dir := file.Source.Dir()

	crates := scope.Manifests.For(ecosystem.Rust, dir)
	if crates.Has(manifest.CrateName(root)) {
		return resolved()
	}

	if rustLocalModule(scope.Index, dir, root) {
		return resolved()
	}

	if _, ok := file.items()[root]; ok {
		return resolved()
	}

	if !crates.Found {
		return skipped(ReasonNoContext)
	}

	return hallucinated(ReasonNotDeclared)
}

// rustLocalModule looks for root as a module file or directory in the
// importing file's directory or any ancestor, which covers src/ of the crate.
func rustLocalModule(index *ProjectFileIndex, dir, root string) bool {
	for d := dir; ; d = dirOf(d) {
		base := path.Join(d, root)
		if index.Contains(base+".rs") || index.Contains(base+"/mod.rs") || index.HasExtUnder(base, ".rs") {
			return true
		}

		if d == "" {
			return false
		}
	}
}

// items returns the names of items declared in the file itself, so that
// "use Color::*;" next to "enum Color" resolves.
func (f *File) items() map[string]struct{} {
	if f.rustItems != nil {
		return f.rustItems
	}

	f.rustItems = make(map[string]struct{})
	for _, m := range rsItemPattern.FindAllSubmatch(f.Content, -1) {
		f.rustItems[string(m[1])] = struct{}{}
	}

	return f.rustItems
}
