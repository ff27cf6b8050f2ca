package extract

import (
	"context"
	"iter"
	"path"
	"strings"
	"sync"
	"unsafe"

	sitter "github.com/alexaandru/go-tree-sitter-bare"
	"github.com/alexaandru/go-sitter-forest/javascript"
	"github.com/alexaandru/go-sitter-forest/tsx"
	"github.com/alexaandru/go-sitter-forest/typescript"

	"github.com/Sumatoshi-tech/importcheck/pkg/ecosystem"
)

type grammar string

const (
	grammarJavaScript grammar = "javascript"
	grammarTypeScript grammar = "typescript"
	grammarTSX        grammar = "tsx"
)

var grammarFuncs = map[grammar]func() unsafe.Pointer{
	grammarJavaScript: javascript.GetLanguage,
	grammarTypeScript: typescript.GetLanguage,
	grammarTSX:        tsx.GetLanguage,
}

// grammarFor picks the grammar by extension. Plain JavaScript grammar
// already understands JSX.
func grammarFor(filePath string) grammar {
	name := strings.ToLower(path.Base(filePath))

	switch {
	case strings.HasSuffix(name, ".tsx"):
		return grammarTSX
	case strings.HasSuffix(name, ".ts"), strings.HasSuffix(name, ".mts"), strings.HasSuffix(name, ".cts"):
		return grammarTypeScript
	default:
		return grammarJavaScript
	}
}

// ScriptExtractor walks JavaScript and TypeScript syntax trees. Parsers are
// pooled per grammar; languages are created once.
type ScriptExtractor struct {
	pools map[grammar]*sync.Pool
}

// NewScriptExtractor creates an extractor with one parser pool per grammar.
func NewScriptExtractor() *ScriptExtractor {
	e := &ScriptExtractor{pools: make(map[grammar]*sync.Pool, len(grammarFuncs))}

	for g, fn := range grammarFuncs {
		lang := sync.OnceValue(func() *sitter.Language { return sitter.NewLanguage(fn()) })

		e.pools[g] = &sync.Pool{
			New: func() any {
				p := sitter.NewParser()
				p.SetLanguage(lang())

				return p
			},
		}
	}

	return e
}

// Extract reports static imports, re-exports, import-equals requires and
// dynamic import()/require() calls whose argument is a literal string.
// Unparseable content yields no references.
func (e *ScriptExtractor) Extract(filePath string, content []byte) iter.Seq[Reference] {
	return func(yield func(Reference) bool) {
		pool := e.pools[grammarFor(filePath)]

		parser, ok := pool.Get().(*sitter.Parser)
		if !ok {
			return
		}
		defer pool.Put(parser)

		tree, err := parser.ParseString(context.Background(), nil, content)
		if err != nil {
			return
		}
		defer tree.Close()

		root := tree.RootNode()
		if root.IsNull() {
			return
		}

		w := scriptWalker{file: filePath, content: content, yield: yield}
		w.walk(root)
	}
}

type scriptWalker struct {
	file    string
	content []byte
	yield   func(Reference) bool
	stopped bool
}

func (w *scriptWalker) walk(n sitter.Node) {
	if w.stopped {
		return
	}

	switch n.Type() {
	case "comment":
		return
	case "import_statement", "export_statement":
		if source := n.ChildByFieldName("source"); !source.IsNull() {
			w.emit(n, source, false)
		}
	case "import_require_clause":
		source := n.ChildByFieldName("source")
		if source.IsNull() {
			source = findNamedChild(n, "string")
		}

		if !source.IsNull() {
			w.emit(n, source, false)
		}

		return
	case "call_expression":
		w.call(n)
	}

	for idx := range n.NamedChildCount() {
		w.walk(n.NamedChild(idx))

		if w.stopped {
			return
		}
	}
}

// call handles import("x"), require("x") and require(`x`).
func (w *scriptWalker) call(n sitter.Node) {
	fn := n.ChildByFieldName("function")
	if fn.IsNull() {
		return
	}

	switch fn.Type() {
	case "import":
	case "identifier":
		if w.text(fn) != "require" {
			return
		}
	default:
		return
	}

	args := n.ChildByFieldName("arguments")
	if args.IsNull() || args.NamedChildCount() == 0 {
		return
	}

	w.emit(n, args.NamedChild(0), true)
}

// emit reports the literal held by lit; stmt positions the line number.
func (w *scriptWalker) emit(stmt, lit sitter.Node, dynamic bool) {
	spec, ok := w.literal(lit)
	if !ok || spec == "" {
		return
	}

	ref := Reference{
		File:      w.file,
		Line:      int(stmt.StartPoint().Row) + 1,
		Specifier: spec,
		Ecosystem: ecosystem.JavaScript,
		Dynamic:   dynamic,
	}

	if !w.yield(ref) {
		w.stopped = true
	}
}

// literal returns the value of a string or a substitution-free template.
func (w *scriptWalker) literal(n sitter.Node) (string, bool) {
	switch n.Type() {
	case "string":
	case "template_string":
		for idx := range n.NamedChildCount() {
			if n.NamedChild(idx).Type() == "template_substitution" {
				return "", false
			}
		}
	default:
		return "", false
	}

	raw := w.text(n)
	if len(raw) < 2 {
		return "", false
	}

	return raw[1 : len(raw)-1], true
}

func (w *scriptWalker) text(n sitter.Node) string {
	start, end := n.StartByte(), n.EndByte()
	if end > uint(len(w.content)) || start > end {
		return ""
	}

	return string(w.content[start:end])
}

func findNamedChild(n sitter.Node, typ string) sitter.Node {
	for idx := range n.NamedChildCount() {
		if child := n.NamedChild(idx); child.Type() == typ {
			return child
		}
	}

	return sitter.Node{}
}
