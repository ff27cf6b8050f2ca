// Package project enumerates the files of a project tree for a scan.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar"
	"github.com/src-d/enry/v2"

	"github.com/Sumatoshi-tech/importcheck/pkg/ecosystem"
	"github.com/Sumatoshi-tech/importcheck/pkg/resolve"
	"github.com/Sumatoshi-tech/importcheck/pkg/textutil"
)

// Sentinel errors.
var (
	ErrNotDirectory   = errors.New("project root is not a directory")
	ErrInvalidExclude = errors.New("invalid exclude pattern")
)

// skipDirs are dependency, build-output and VCS directories never walked.
var skipDirs = map[string]struct{}{
	".git":         {}, ".hg": {}, ".svn": {},
	"node_modules": {}, "bower_components": {}, "vendor": {},
	"target":       {}, "dist": {}, "__pycache__": {},
	".venv":        {}, "venv": {}, ".tox": {}, ".gradle": {}, ".idea": {},
}

// Options control enumeration.
type Options struct {
	// Exclude holds doublestar globs matched against project-relative paths.
	Exclude []string
	// MaxFileSize drops larger files from the sources; zero means no limit.
	MaxFileSize int64
	Logger      *slog.Logger
}

// Project is an enumerated tree.
type Project struct {
	// Root is the absolute project root.
	Root string
	// Index holds every walked file.
	Index *resolve.ProjectFileIndex
	// Sources are the files to scan, sorted.
	Sources []string
}

// Enumerate walks root. Every regular file outside the skipped directories
// enters the index; files of a supported ecosystem that are not vendored,
// excluded, oversized or binary become sources.
func Enumerate(root string, opts Options) (*Project, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", abs, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	}

	var all, sources []string

	err = filepath.WalkDir(abs, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) || errors.Is(walkErr, fs.ErrNotExist) {
				logger.Debug("skipping unreadable path", "path", path, "error", walkErr)

				if entry != nil && entry.IsDir() {
					return filepath.SkipDir
				}

				return nil
			}

			return walkErr
		}

		rel, relErr := filepath.Rel(abs, path)
		if relErr != nil {
			return fmt.Errorf("relative path of %s: %w", path, relErr)
		}

		rel = filepath.ToSlash(rel)

		if entry.IsDir() {
			if rel != "." && skipDir(entry.Name()) {
				return filepath.SkipDir
			}

			return nil
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		all = append(all, rel)

		source, srcErr := isSource(path, rel, entry, opts, logger)
		if srcErr != nil {
			return srcErr
		}

		if source {
			sources = append(sources, rel)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", abs, err)
	}

	return &Project{Root: abs, Index: resolve.NewProjectFileIndex(all), Sources: sources}, nil
}

// skipDir reports whether a directory is never walked. enry's vendor rules
// only gate sources; they also match directories such as pkg/cache.
func skipDir(name string) bool {
	if _, ok := skipDirs[name]; ok {
		return true
	}

	return strings.HasPrefix(name, ".")
}

func isSource(path, rel string, entry fs.DirEntry, opts Options, logger *slog.Logger) (bool, error) {
	if _, ok := ecosystem.FromPath(rel); !ok {
		return false, nil
	}

	if enry.IsVendor(rel) {
		return false, nil
	}

	excluded, err := matchesAny(opts.Exclude, rel)
	if err != nil || excluded {
		return false, err
	}

	if opts.MaxFileSize > 0 {
		info, infoErr := entry.Info()
		if infoErr != nil {
			logger.Debug("skipping file", "file", rel, "error", infoErr)

			return false, nil
		}

		if info.Size() > opts.MaxFileSize {
			logger.Debug("skipping oversized file", "file", rel, "size", info.Size())

			return false, nil
		}
	}

	binary, err := textutil.IsBinaryFile(path)
	if err != nil {
		logger.Debug("skipping file", "file", rel, "error", err)

		return false, nil
	}

	return !binary, nil
}

func matchesAny(patterns []string, rel string) (bool, error) {
	for _, pattern := range patterns {
		pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")

		ok, err := doublestar.Match(pattern, rel)
		if err != nil {
			return false, fmt.Errorf("%w %q: %w", ErrInvalidExclude, pattern, err)
		}

		if ok {
			return true, nil
		}
	}

	return false, nil
}
