package resolve

import (
	"context"

	"github.com/Sumatoshi-tech/importcheck/pkg/ecosystem"
	"github.com/Sumatoshi-tech/importcheck/pkg/extract"
)

// File is one source file under resolution.
type File struct {
	Source  ecosystem.SourceFile
	Content []byte

	rustItems map[string]struct{}
}

// Strategy extracts and resolves the references of one ecosystem.
// Implementations hold no per-scan state; everything shared lives in Scope.
type Strategy interface {
	extract.Extractor
	Resolve(ctx context.Context, scope *Scope, file *File, ref extract.Reference) Verdict
}

var strategies = map[ecosystem.Ecosystem]Strategy{
	ecosystem.JavaScript: scriptStrategy{mustExtractor(ecosystem.JavaScript)},
	ecosystem.Python:     pythonStrategy{mustExtractor(ecosystem.Python)},
	ecosystem.Go:         goStrategy{mustExtractor(ecosystem.Go)},
	ecosystem.Ruby:       rubyStrategy{mustExtractor(ecosystem.Ruby)},
	ecosystem.CSharp:     csharpStrategy{mustExtractor(ecosystem.CSharp)},
	ecosystem.Rust:       rustStrategy{mustExtractor(ecosystem.Rust)},
	ecosystem.Java:       jvmStrategy{Extractor: mustExtractor(ecosystem.Java), eco: ecosystem.Java},
	ecosystem.Kotlin:     jvmStrategy{Extractor: mustExtractor(ecosystem.Kotlin), eco: ecosystem.Kotlin},
}

// StrategyFor returns the strategy registered for an ecosystem.
func StrategyFor(eco ecosystem.Ecosystem) (Strategy, bool) {
	s, ok := strategies[eco]

	return s, ok
}

func mustExtractor(eco ecosystem.Ecosystem) extract.Extractor {
	ex, ok := extract.For(eco)
	if !ok {
		panic("no extractor for " + string(eco))
	}

	return ex
}

// packageGate returns a skip verdict when package verification is disabled.
func packageGate(scope *Scope) (Verdict, bool) {
	if !scope.Options.CheckPackages {
		return skipped(ReasonDisabled), true
	}

	return Verdict{}, false
}
