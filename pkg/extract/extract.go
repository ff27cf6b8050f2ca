// Package extract pulls import references out of source text.
//
// Script files (JavaScript and TypeScript) are walked as tree-sitter syntax
// trees. The remaining ecosystems use anchored line patterns after comments
// are stripped; their statement forms are single-line by convention, so the
// scanners accept being approximate inside unusual multi-line constructs.
package extract

import (
	"bytes"
	"iter"
	"strings"

	"github.com/Sumatoshi-tech/importcheck/pkg/ecosystem"
)

// Reference is one syntactic import, use, or require occurrence.
type Reference struct {
	File      string              `json:"file"`
	Line      int                 `json:"line"`
	Specifier string              `json:"specifier"`
	Ecosystem ecosystem.Ecosystem `json:"ecosystem"`

	// Static marks Java "import static" and C# "using static".
	Static bool `json:"static,omitempty"`
	// Wildcard marks package-level imports (Java/Kotlin ".*", Rust "::*").
	// The specifier then names the package itself.
	Wildcard bool `json:"wildcard,omitempty"`
	// Dynamic marks runtime imports (import(), require(), import_module).
	Dynamic bool `json:"dynamic,omitempty"`
}

// Extractor produces the references of one file. The sequence is lazy and
// restartable: ranging over it again rescans the content.
type Extractor interface {
	Extract(path string, content []byte) iter.Seq[Reference]
}

var extractors = map[ecosystem.Ecosystem]Extractor{
	ecosystem.JavaScript: NewScriptExtractor(),
	ecosystem.Python:     lineScanner{eco: ecosystem.Python, comments: pythonComments, matcher: pythonMatcher},
	ecosystem.Go:         lineScanner{eco: ecosystem.Go, comments: cStyleComments, matcher: goMatcher},
	ecosystem.Ruby:       lineScanner{eco: ecosystem.Ruby, comments: rubyComments, matcher: rubyMatcher},
	ecosystem.CSharp:     lineScanner{eco: ecosystem.CSharp, comments: cStyleComments, matcher: csharpMatcher},
	ecosystem.Rust:       lineScanner{eco: ecosystem.Rust, comments: cStyleComments, matcher: rustMatcher},
	ecosystem.Java:       lineScanner{eco: ecosystem.Java, comments: cStyleComments, matcher: javaMatcher},
	ecosystem.Kotlin:     lineScanner{eco: ecosystem.Kotlin, comments: cStyleComments, matcher: kotlinMatcher},
}

// For returns the extractor for an ecosystem.
func For(eco ecosystem.Ecosystem) (Extractor, bool) {
	e, ok := extractors[eco]

	return e, ok
}

// matchFunc inspects one comment-free line. It returns the references found
// and false once no further imports can follow.
type matchFunc func(line string) ([]Reference, bool)

// lineScanner drives a per-ecosystem matcher over the lines of a file. Both
// constructors are called once per scan so that block state never leaks
// between files or between repeated iterations.
type lineScanner struct {
	eco      ecosystem.Ecosystem
	comments func() func(string) string
	matcher  func() matchFunc
}

func (s lineScanner) Extract(path string, content []byte) iter.Seq[Reference] {
	return func(yield func(Reference) bool) {
		strip := s.comments()
		match := s.matcher()
		lineNo := 0

		for raw := range bytes.Lines(content) {
			lineNo++

			line := strip(strings.TrimRight(string(raw), "\r\n"))
			if strings.TrimSpace(line) == "" {
				continue
			}

			refs, more := match(line)

			for _, ref := range refs {
				ref.File = path
				ref.Line = lineNo
				ref.Ecosystem = s.eco

				if !yield(ref) {
					return
				}
			}

			if !more {
				return
			}
		}
	}
}

func refs(specs ...string) []Reference {
	out := make([]Reference, 0, len(specs))

	for _, spec := range specs {
		if spec != "" {
			out = append(out, Reference{Specifier: spec})
		}
	}

	return out
}
