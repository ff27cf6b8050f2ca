// Package manifest discovers and parses dependency manifests and reports, for
// a source file, which external names its ecosystem declares.
//
// Malformed manifests are treated as absent. A scan never fails because one
// manifest could not be parsed.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Sumatoshi-tech/importcheck/pkg/ecosystem"
	"github.com/Sumatoshi-tech/importcheck/pkg/memo"
)

// ErrManifestParse marks a manifest that exists but could not be parsed.
var ErrManifestParse = errors.New("manifest parse failure")

// Set is the dependency context of one resolution scope.
type Set struct {
	// Names holds declared package, crate, gem or namespace-root names.
	Names map[string]struct{}
	// Modules maps Go module paths to their project-relative directory.
	Modules map[string]string
	// ModulePath is the Go module path of the nearest go.mod.
	ModulePath string
	// Found is false when no manifest for the ecosystem was discovered.
	Found bool
}

func newSet() *Set {
	return &Set{Names: make(map[string]struct{})}
}

// Has reports whether name was declared.
func (s *Set) Has(name string) bool {
	if s == nil {
		return false
	}

	_, ok := s.Names[name]

	return ok
}

func (s *Set) add(names ...string) {
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			s.Names[n] = struct{}{}
		}
	}
}

func (s *Set) merge(other *Set) {
	if other == nil {
		return
	}

	for n := range other.Names {
		s.Names[n] = struct{}{}
	}

	if other.Found {
		s.Found = true
	}
}

var emptySet = &Set{Names: map[string]struct{}{}}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Resolver computes dependency sets lazily and caches them per directory or
// per project root for the lifetime of one scan.
type Resolver struct {
	root   string
	logger *slog.Logger

	npmFiles   memo.Table[string, *Set]
	npmDirs    memo.Table[string, *Set]
	installed  memo.Table[string, bool]
	goDirs     memo.Table[string, *Set]
	goWork     memo.Table[string, map[string]string]
	rubySet    memo.Table[string, *Set]
	csharpDirs memo.Table[string, *Set]
	cargoFiles memo.Table[string, *Set]
	cargoDirs  memo.Table[string, *Set]
	jvmFiles   memo.Table[string, *Set]
	jvmDirs    memo.Table[string, *Set]
}

// NewResolver creates a resolver for the project rooted at root (absolute path).
func NewResolver(root string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}

	return &Resolver{root: root, logger: logger}
}

// For returns the dependency set in scope for files in the project-relative
// directory dir.
func (r *Resolver) For(eco ecosystem.Ecosystem, dir string) *Set {
	dir = cleanDir(dir)

	switch eco {
	case ecosystem.JavaScript:
		return r.npmDirs.Get(dir, func() *Set { return r.npmScope(dir) })
	case ecosystem.Go:
		return r.goDirs.Get(dir, func() *Set { return r.goScope(dir) })
	case ecosystem.Ruby:
		return r.rubySet.Get("", r.rubyScope)
	case ecosystem.CSharp:
		return r.csharpDirs.Get(dir, func() *Set { return r.csharpScope(dir) })
	case ecosystem.Rust:
		return r.cargoDirs.Get(dir, func() *Set { return r.cargoScope(dir) })
	case ecosystem.Java, ecosystem.Kotlin:
		return r.jvmDirs.Get(dir, func() *Set { return r.jvmScope(dir) })
	default:
		return emptySet
	}
}

// readFile reads a project-relative file. Missing files report ok=false
// silently; other read errors are logged and also report ok=false.
func (r *Resolver) readFile(rel string) ([]byte, bool) {
	data, err := os.ReadFile(r.abs(rel))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.logger.Debug("manifest read failed", "file", rel, "error", err)
		}

		return nil, false
	}

	return bytes.TrimPrefix(data, utf8BOM), true
}

// listDir returns the names of regular files in a project-relative directory.
func (r *Resolver) listDir(rel string) []string {
	entries, err := os.ReadDir(r.abs(rel))
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))

	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}

	return names
}

func (r *Resolver) isDir(rel string) bool {
	info, err := os.Stat(r.abs(rel))

	return err == nil && info.IsDir()
}

func (r *Resolver) abs(rel string) string {
	return filepath.Join(r.root, filepath.FromSlash(rel))
}

func (r *Resolver) parseFailed(file string, err error) {
	r.logger.Warn("ignoring malformed manifest", "file", file, "error", fmt.Errorf("%w: %w", ErrManifestParse, err))
}

// ancestors returns dir and every parent directory up to the project root,
// nearest first. The root is represented by "".
func ancestors(dir string) []string {
	dir = cleanDir(dir)
	out := []string{dir}

	for dir != "" {
		dir = parentDir(dir)
		out = append(out, dir)
	}

	return out
}

func parentDir(dir string) string {
	parent := path.Dir(dir)
	if parent == "." || parent == "/" {
		return ""
	}

	return parent
}

func cleanDir(dir string) string {
	dir = strings.Trim(filepath.ToSlash(dir), "/")
	if dir == "" || dir == "." {
		return ""
	}

	return path.Clean(dir)
}

func join(dir, name string) string {
	if dir == "" {
		return name
	}

	return dir + "/" + name
}
