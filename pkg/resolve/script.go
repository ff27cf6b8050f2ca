package resolve

import (
	"context"
	"path"
	"regexp"
	"strings"

	"github.com/Sumatoshi-tech/importcheck/pkg/alias"
	"github.com/Sumatoshi-tech/importcheck/pkg/ecosystem"
	"github.com/Sumatoshi-tech/importcheck/pkg/extract"
	"github.com/Sumatoshi-tech/importcheck/pkg/manifest"
	"github.com/Sumatoshi-tech/importcheck/pkg/stdlib"
)

var (
	// urlSchemePattern matches "https:", "data:", "npm:", "virtual:" and
	// similar loader prefixes that cannot be checked against the tree.
	urlSchemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]*:`)
	// npmNamePattern accepts names that could be published to a registry.
	npmNamePattern = regexp.MustCompile(`^(?:@[a-z0-9][a-z0-9\-._~]*/)?[a-z0-9][a-z0-9\-._~]*$`)
)

type scriptStrategy struct {
	extract.Extractor
}

func (scriptStrategy) Resolve(_ context.Context, scope *Scope, file *File, ref extract.Reference) Verdict {
	spec, _, _ := strings.Cut(ref.Specifier, "?")
	dir := file.Source.Dir()

	if Classify(ecosystem.JavaScript, spec) == Relative {
		target := joinRel(dir, spec)
		if strings.HasPrefix(spec, "/") {
			target = normalize(spec)
		}

		if outsideRoot(target) {
			return skipped(ReasonNoContext)
		}

		if scriptExists(scope.Index, target) {
			return resolved()
		}

		return hallucinated(ReasonFileNotFound)
	}

	switch scope.Aliases.Resolve(dir, spec) {
	case alias.Resolved:
		return resolved()
	case alias.Missing:
		// Catch-all rules such as "*" also match builtins and packages.
		if stdlib.Contains(ecosystem.JavaScript, spec) || declaredPackage(scope, dir, spec) {
			return resolved()
		}

		if !scope.Options.CheckRelative {
			return skipped(ReasonDisabled)
		}

		return hallucinated(ReasonAliasTargetMissing)
	case alias.NoMatch:
	}

	if v, gated := packageGate(scope); gated {
		return v
	}

	if stdlib.Contains(ecosystem.JavaScript, spec) {
		return resolved()
	}

	if urlSchemePattern.MatchString(spec) {
		return skipped(ReasonUnverifiable)
	}

	if base, ok := scope.Aliases.BaseURL(dir); ok && scriptExists(scope.Index, path.Join(base, spec)) {
		return resolved()
	}

	name := manifest.PackageName(spec)
	if !npmNamePattern.MatchString(strings.ToLower(name)) {
		// "#internal", "~/x", "$lib/x": resolved by package.json imports or
		// bundler configuration that is not modeled here.
		return skipped(ReasonUnverifiable)
	}

	if declaredPackage(scope, dir, spec) {
		return resolved()
	}

	if !scope.Manifests.For(ecosystem.JavaScript, dir).Found {
		return skipped(ReasonNoContext)
	}

	return hallucinated(ReasonNotDeclared)
}

// declaredPackage reports whether the package named by spec is declared in
// the manifests in scope of dir or installed under node_modules.
func declaredPackage(scope *Scope, dir, spec string) bool {
	name := manifest.PackageName(spec)

	return scope.Manifests.For(ecosystem.JavaScript, dir).Has(name) || scope.Manifests.HasInstalled(dir, name)
}

func scriptExists(index *ProjectFileIndex, target string) bool {
	for _, candidate := range ecosystem.ScriptCandidates(target) {
		if index.Contains(candidate) {
			return true
		}
	}

	return false
}
