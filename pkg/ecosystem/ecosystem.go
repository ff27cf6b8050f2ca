// Package ecosystem maps source files to the language ecosystem whose import
// rules apply to them.
package ecosystem

import (
	"path"
	"strings"

	"github.com/src-d/enry/v2"
)

// Ecosystem identifies one of the supported source ecosystems.
type Ecosystem string

// Supported ecosystems.
const (
	JavaScript Ecosystem = "javascript"
	Python     Ecosystem = "python"
	Go         Ecosystem = "go"
	Ruby       Ecosystem = "ruby"
	CSharp     Ecosystem = "csharp"
	Rust       Ecosystem = "rust"
	Java       Ecosystem = "java"
	Kotlin     Ecosystem = "kotlin"
)

// All lists every supported ecosystem in a stable order.
var All = []Ecosystem{JavaScript, Python, Go, Ruby, CSharp, Rust, Java, Kotlin}

// linguistNames maps enry (linguist) language names to ecosystems.
var linguistNames = map[string]Ecosystem{
	"JavaScript": JavaScript,
	"TypeScript": JavaScript,
	"TSX":        JavaScript,
	"JSX":        JavaScript,
	"Python":     Python,
	"Go":         Go,
	"Ruby":       Ruby,
	"C#":         CSharp,
	"Rust":       Rust,
	"Java":       Java,
	"Kotlin":     Kotlin,
}

// fallbackExtensions covers extensions that older linguist data does not know.
var fallbackExtensions = map[string]Ecosystem{
	".mts": JavaScript,
	".cts": JavaScript,
	".mjs": JavaScript,
	".cjs": JavaScript,
	".tsx": JavaScript,
	".jsx": JavaScript,
	".pyi": Python,
	".kts": Kotlin,
}

// SourceFile is a project-relative source file with its inferred ecosystem.
type SourceFile struct {
	Path      string
	Ecosystem Ecosystem
	Ext       string
}

// FromPath infers the ecosystem of a file from its name.
// The boolean is false when no supported ecosystem claims the extension.
func FromPath(filePath string) (Ecosystem, bool) {
	name := path.Base(filepathToSlash(filePath))
	ext := strings.ToLower(path.Ext(name))

	if ext == "" {
		return "", false
	}

	if eco, ok := fallbackExtensions[ext]; ok {
		return eco, true
	}

	for _, lang := range enry.GetLanguagesByExtension(strings.ToLower(name), nil, nil) {
		if eco, ok := linguistNames[lang]; ok {
			return eco, true
		}
	}

	return "", false
}

// NewSourceFile builds a SourceFile for a project-relative path.
func NewSourceFile(relPath string) (SourceFile, bool) {
	slashed := filepathToSlash(relPath)

	eco, ok := FromPath(slashed)
	if !ok {
		return SourceFile{}, false
	}

	return SourceFile{
		Path:      slashed,
		Ecosystem: eco,
		Ext:       strings.ToLower(path.Ext(slashed)),
	}, true
}

// Dir returns the project-relative directory of the file ("" for the root).
func (f SourceFile) Dir() string {
	dir := path.Dir(f.Path)
	if dir == "." {
		return ""
	}

	return dir
}

// IsTypeScript reports whether the file is TypeScript rather than JavaScript.
func (f SourceFile) IsTypeScript() bool {
	switch f.Ext {
	case ".ts", ".tsx", ".mts", ".cts":
		return true
	default:
		return false
	}
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
