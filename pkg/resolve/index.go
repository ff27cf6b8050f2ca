package resolve

import (
	"path"
	"slices"
	"strings"
)

// ProjectFileIndex is the set of project-relative, forward-slash file paths
// in scope for a scan. It is immutable once built.
type ProjectFileIndex struct {
	files     map[string]struct{}
	children  map[string][]string
	extsUnder map[string]map[string]struct{}
	sorted    []string
}

// NewProjectFileIndex indexes the given project-relative paths.
func NewProjectFileIndex(paths []string) *ProjectFileIndex {
	idx := &ProjectFileIndex{
		files:     make(map[string]struct{}, len(paths)),
		children:  make(map[string][]string),
		extsUnder: make(map[string]map[string]struct{}),
	}

	for _, p := range paths {
		p = normalize(p)
		if p == "" {
			continue
		}

		if _, dup := idx.files[p]; dup {
			continue
		}

		idx.files[p] = struct{}{}
		idx.sorted = append(idx.sorted, p)

		dir := dirOf(p)
		idx.children[dir] = append(idx.children[dir], path.Base(p))

		ext := strings.ToLower(path.Ext(p))

		for d := dir; ; d = dirOf(d) {
			exts, ok := idx.extsUnder[d]
			if !ok {
				exts = make(map[string]struct{})
				idx.extsUnder[d] = exts
			}

			exts[ext] = struct{}{}

			if d == "" {
				break
			}
		}
	}

	slices.Sort(idx.sorted)

	return idx
}

// Contains reports whether rel is an indexed file.
func (idx *ProjectFileIndex) Contains(rel string) bool {
	_, ok := idx.files[normalize(rel)]

	return ok
}

// HasDir reports whether any indexed file lives at or below dir.
func (idx *ProjectFileIndex) HasDir(dir string) bool {
	_, ok := idx.extsUnder[normalize(dir)]

	return ok
}

// HasExtUnder reports whether a file with extension ext lives at or below dir.
func (idx *ProjectFileIndex) HasExtUnder(dir, ext string) bool {
	_, ok := idx.extsUnder[normalize(dir)][ext]

	return ok
}

// DirHasExt reports whether dir directly contains a file with extension ext.
func (idx *ProjectFileIndex) DirHasExt(dir, ext string) bool {
	for _, name := range idx.children[normalize(dir)] {
		if strings.EqualFold(path.Ext(name), ext) {
			return true
		}
	}

	return false
}

// FilesWithExt returns the sorted indexed paths carrying one of exts.
func (idx *ProjectFileIndex) FilesWithExt(exts ...string) []string {
	var out []string

	for _, p := range idx.sorted {
		if slices.Contains(exts, strings.ToLower(path.Ext(p))) {
			out = append(out, p)
		}
	}

	return out
}

// Len returns the number of indexed files.
func (idx *ProjectFileIndex) Len() int {
	return len(idx.files)
}

func normalize(p string) string {
	p = path.Clean(strings.ReplaceAll(p, "\\", "/"))
	if p == "." || p == "/" {
		return ""
	}

	return strings.TrimPrefix(p, "/")
}

func dirOf(p string) string {
	d := path.Dir(p)
	if d == "." || d == "/" {
		return ""
	}

	return d
}
