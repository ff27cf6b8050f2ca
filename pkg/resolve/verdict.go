package resolve

import (
	"fmt"
	"strings"

	"github.com/Sumatoshi-tech/importcheck/pkg/ecosystem"
)

// Outcome is the tri-state result of resolving one reference.
type Outcome int

const (
	// Resolved means the reference names a real file, package or module.
	Resolved Outcome = iota
	// Hallucinated means the project context proves the reference wrong.
	Hallucinated
	// Skipped means there is not enough context to decide.
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Resolved:
		return "resolved"
	case Hallucinated:
		return "hallucinated"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Skip reasons.
const (
	ReasonIgnored      = "ignored"
	ReasonDisabled     = "disabled"
	ReasonNoContext    = "no context"
	ReasonUnverifiable = "unverifiable"
)

// Hallucination reasons.
const (
	ReasonFileNotFound       = "file not found"
	ReasonAliasTargetMissing = "alias target missing"
	ReasonPackageDirNotFound = "package directory not found"
	ReasonNotDeclared        = "not declared in any manifest"
	ReasonModuleNotFound     = "local module not found"
	ReasonNamespaceNotFound  = "namespace not declared in project"
	ReasonClassNotFound      = "class not found in package"
)

// Verdict is the outcome plus a human-readable reason. Resolved verdicts
// carry no reason.
type Verdict struct {
	Outcome Outcome
	Reason  string
}

func resolved() Verdict { return Verdict{Outcome: Resolved} }

func hallucinated(reason string) Verdict { return Verdict{Outcome: Hallucinated, Reason: reason} }

func skipped(reason string) Verdict { return Verdict{Outcome: Skipped, Reason: reason} }

func (v Verdict) String() string {
	if v.Reason == "" {
		return v.Outcome.String()
	}

	return v.Outcome.String() + "(" + v.Reason + ")"
}

// SpecifierKind classifies a raw specifier by its text alone.
type SpecifierKind int

const (
	// PackageOrNamespace is anything that is not path-relative.
	PackageOrNamespace SpecifierKind = iota
	// Relative starts with a path-relative marker.
	Relative
	// Aliased matched a configured path alias rule. It is never returned
	// by Classify; only the script strategy discovers it.
	Aliased
)

func (k SpecifierKind) String() string {
	switch k {
	case Relative:
		return "relative"
	case Aliased:
		return "aliased"
	default:
		return "package"
	}
}

// Classify determines the kind of a specifier without any I/O. Python
// relative imports start with a dot; script and Ruby specifiers use "./",
// "../" and, for scripts, project-absolute "/".
func Classify(eco ecosystem.Ecosystem, spec string) SpecifierKind {
	switch eco {
	case ecosystem.Python:
		if strings.HasPrefix(spec, ".") {
			return Relative
		}
	case ecosystem.JavaScript:
		if strings.HasPrefix(spec, "/") && !strings.HasPrefix(spec, "//") {
			return Relative
		}
	}

	if spec == "." || spec == ".." || strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") {
		return Relative
	}

	return PackageOrNamespace
}
