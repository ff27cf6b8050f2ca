package resolve

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/Sumatoshi-tech/importcheck/pkg/alias"
	"github.com/Sumatoshi-tech/importcheck/pkg/manifest"
	"github.com/Sumatoshi-tech/importcheck/pkg/memo"
)

// Sentinel errors for per-file failures. They are logged, never returned
// from a scan.
var (
	ErrFileRead             = errors.New("source file read failure")
	ErrUnsupportedEcosystem = errors.New("unsupported ecosystem")
)

// DefaultIgnoreExpressions suppress asset and bundler-query imports.
var DefaultIgnoreExpressions = []string{
	`\.(css|scss|sass|less|styl|pcss|svg|png|jpe?g|gif|webp|avif|ico|bmp|woff2?|ttf|eot|otf|mp4|webm|mp3|wav|ogg|html?|md|mdx|txt|graphql|gql)$`,
	`\?(raw|url|inline|worker|sharedworker)$`,
}

// Options control what the engine verifies.
type Options struct {
	CheckRelative  bool
	CheckPackages  bool
	IgnorePatterns []*regexp.Regexp
	// Workers bounds concurrent file processing; zero means one per CPU.
	Workers int
}

// DefaultOptions enables every check with the default ignore patterns.
func DefaultOptions() Options {
	patterns := make([]*regexp.Regexp, 0, len(DefaultIgnoreExpressions))
	for _, expr := range DefaultIgnoreExpressions {
		patterns = append(patterns, regexp.MustCompile(expr))
	}

	return Options{
		CheckRelative:  true,
		CheckPackages:  true,
		IgnorePatterns: patterns,
		Workers:        runtime.NumCPU(),
	}
}

func (o Options) ignored(spec string) bool {
	for _, re := range o.IgnorePatterns {
		if re.MatchString(spec) {
			return true
		}
	}

	return false
}

// Scope is the state shared by every file of one scan: the project root,
// its file index, the manifest and alias resolvers, and memo tables for
// indexes derived from project sources. A Scope must not outlive its scan.
type Scope struct {
	Root      string
	Index     *ProjectFileIndex
	Manifests *manifest.Resolver
	Aliases   *alias.Resolver
	Options   Options
	Logger    *slog.Logger

	namespaces  memo.Table[string, map[string]struct{}]
	packages    memo.Table[string, map[string]map[string]struct{}]
	rubyFiles   memo.Table[string, map[string]struct{}]
	pythonLocal memo.Table[string, bool]
}

// NewScope builds a fresh scope for a scan of root.
func NewScope(root string, index *ProjectFileIndex, opts Options, logger *slog.Logger) *Scope {
	if logger == nil {
		logger = slog.Default()
	}

	return &Scope{
		Root:      root,
		Index:     index,
		Manifests: manifest.NewResolver(root, logger),
		Aliases:   alias.NewResolver(root, index, logger),
		Options:   opts,
		Logger:    logger,
	}
}

// ReadFile reads a project-relative file.
func (s *Scope) ReadFile(rel string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.Root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileRead, rel, err)
	}

	return data, nil
}

var csNamespacePattern = regexp.MustCompile(`(?m)^\s*namespace\s+([A-Za-z_][\w.]*)\s*[;{]?`)

// Namespaces returns every namespace declared by the project's C# sources.
func (s *Scope) Namespaces() map[string]struct{} {
	return s.namespaces.Get("", func() map[string]struct{} {
		declared := make(map[string]struct{})

		for _, file := range s.Index.FilesWithExt(".cs") {
			data, err := s.ReadFile(file)
			if err != nil {
				s.Logger.Debug("skipping namespace source", "file", file, "error", err)

				continue
			}

			for _, m := range csNamespacePattern.FindAllSubmatch(data, -1) {
				declared[string(m[1])] = struct{}{}
			}
		}

		return declared
	})
}

var jvmPackagePattern = regexp.MustCompile(`(?m)^\s*package\s+([\w.` + "`" + `]+)`)

// Packages maps every package declared by the project's Java and Kotlin
// sources to the base names of the files that declare it.
func (s *Scope) Packages() map[string]map[string]struct{} {
	return s.packages.Get("", func() map[string]map[string]struct{} {
		declared := make(map[string]map[string]struct{})

		for _, file := range s.Index.FilesWithExt(".java", ".kt", ".kts") {
			data, err := s.ReadFile(file)
			if err != nil {
				s.Logger.Debug("skipping package source", "file", file, "error", err)

				continue
			}

			pkg := ""
			if m := jvmPackagePattern.FindSubmatch(data); m != nil {
				pkg = strings.ReplaceAll(string(m[1]), "`", "")
			}

			types, ok := declared[pkg]
			if !ok {
				types = make(map[string]struct{})
				declared[pkg] = types
			}

			base := path.Base(file)
			types[strings.TrimSuffix(base, path.Ext(base))] = struct{}{}
		}

		return declared
	})
}

// rubyLoadPaths holds every .rb file as each of its path suffixes without
// the extension, so "widgets/parser" matches lib/my_gem/widgets/parser.rb.
func (s *Scope) rubyLoadPaths() map[string]struct{} {
	return s.rubyFiles.Get("", func() map[string]struct{} {
		suffixes := make(map[string]struct{})

		for _, file := range s.Index.FilesWithExt(".rb") {
			trimmed := strings.TrimSuffix(file, path.Ext(file))
			segments := strings.Split(trimmed, "/")

			for i := range segments {
				suffixes[strings.Join(segments[i:], "/")] = struct{}{}
			}
		}

		return suffixes
	})
}

func joinRel(dir, rel string) string {
	return normalize(path.Join(dir, rel))
}

// outsideRoot reports whether a normalized path escapes the project root,
// where the file index has no ground truth.
func outsideRoot(p string) bool {
	return p == ".." || strings.HasPrefix(p, "../")
}
