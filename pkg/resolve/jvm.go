package resolve

import (
	"context"
	"strings"

	"github.com/Sumatoshi-tech/importcheck/pkg/ecosystem"
	"github.com/Sumatoshi-tech/importcheck/pkg/extract"
	"github.com/Sumatoshi-tech/importcheck/pkg/stdlib"
)

// Classes produced by annotation processors and build plugins. They
// never exist as project sources.
var (
	generatedNames    = map[string]struct{}{"R": {}, "BuildConfig": {}}
	generatedPrefixes = []string{"Dagger", "AutoValue_"}
	generatedSuffixes = []string{"_Factory", "_MembersInjector", "Binding", "Grpc", "OuterClass", "_"}
)

type jvmStrategy struct {
	extract.Extractor

	eco ecosystem.Ecosystem
}

// Resolve verifies project packages against the declared-package index and
// external ones against the build files' group ids.
func (s jvmStrategy) Resolve(_ context.Context, scope *Scope, file *File, ref extract.Reference) Verdict {
	if v, gated := packageGate(scope); gated {
		return v
	}

	spec := ref.Specifier
	if stdlib.Contains(s.eco, spec) {
		return resolved()
	}

	build := scope.Manifests.For(s.eco, file.Source.Dir())

	if v, matched := s.projectPackage(scope.Packages(), ref); matched {
		if v.Outcome == Hallucinated && build.HasGroupPrefix(spec) {
			return resolved()
		}

		return v
	}

	if build.HasGroupPrefix(spec) {
		return resolved()
	}

	if !build.Found {
		return skipped(ReasonNoContext)
	}

	return hallucinated(ReasonNotDeclared)
}

// projectPackage walks from the longest dotted prefix of the import to the
// shortest, looking for a package the project declares.
func (s jvmStrategy) projectPackage(packages map[string]map[string]struct{}, ref extract.Reference) (Verdict, bool) {
	segments := strings.Split(ref.Specifier, ".")

	for i := len(segments); i > 0; i-- {
		types, ok := packages[strings.Join(segments[:i], ".")]
		if !ok {
			continue
		}

		if i == len(segments) || s.eco == ecosystem.Kotlin {
			return resolved(), true
		}

		if declaresType(types, segments[i]) {
			return resolved(), true
		}

		return hallucinated(ReasonClassNotFound + ": " + segments[i]), true
	}

	return Verdict{}, false
}

func declaresType(types map[string]struct{}, name string) bool {
	if _, ok := types[name]; ok {
		return true
	}

	// Kotlin top-level declarations in Foo.kt compile to class FooKt.
	if _, ok := types[strings.TrimSuffix(name, "Kt")]; ok && strings.HasSuffix(name, "Kt") {
		return true
	}

	if _, ok := generatedNames[name]; ok {
		return true
	}

	for _, prefix := range generatedPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}

	for _, suffix := range generatedSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}

	return false
}
