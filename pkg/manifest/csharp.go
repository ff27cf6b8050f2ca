package manifest

import (
	"encoding/xml"
	"strings"
)

const csprojSuffix = ".csproj"

var msbuildPropsFiles = []string{"Directory.Packages.props", "Directory.Build.props"}

type msbuildProject struct {
	ItemGroups []msbuildItemGroup `xml:"ItemGroup"`
}

type msbuildItemGroup struct {
	PackageReferences []msbuildItem `xml:"PackageReference"`
	PackageVersions   []msbuildItem `xml:"PackageVersion"`
}

type msbuildItem struct {
	Include string `xml:"Include,attr"`
	Update  string `xml:"Update,attr"`
}

// csharpScope reads the project files at the root and in the nearest
// ancestor directory that has any, plus root-level MSBuild props files.
func (r *Resolver) csharpScope(dir string) *Set {
	set := newSet()

	r.addCsprojDir(set, "")

	for _, d := range ancestors(dir) {
		if d == "" {
			break
		}

		if r.addCsprojDir(set, d) {
			break
		}
	}

	for _, props := range msbuildPropsFiles {
		if data, ok := r.readFile(props); ok {
			r.addPackageReferences(set, props, data)
		}
	}

	return set
}

// addCsprojDir adds every *.csproj in dir and reports whether one was found.
func (r *Resolver) addCsprojDir(set *Set, dir string) bool {
	found := false

	for _, name := range r.listDir(dir) {
		if !strings.HasSuffix(strings.ToLower(name), csprojSuffix) {
			continue
		}

		file := join(dir, name)

		data, ok := r.readFile(file)
		if !ok {
			continue
		}

		if r.addPackageReferences(set, file, data) {
			found = true
			set.Found = true
		}
	}

	return found
}

func (r *Resolver) addPackageReferences(set *Set, file string, data []byte) bool {
	var project msbuildProject

	err := xml.Unmarshal(data, &project)
	if err != nil {
		r.parseFailed(file, err)

		return false
	}

	for _, group := range project.ItemGroups {
		items := append(append([]msbuildItem{}, group.PackageReferences...), group.PackageVersions...)
		for _, item := range items {
			name := item.Include
			if name == "" {
				name = item.Update
			}

			addPackageName(set, name)
		}
	}

	return true
}

// addPackageName adds a NuGet package id and its first dot-segment, since a
// package's root namespace usually matches its id prefix. Ids are
// case-insensitive and stored lowercased.
func addPackageName(set *Set, name string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return
	}

	root, _, _ := strings.Cut(name, ".")
	set.add(name, root)
}

// HasNamespace reports whether a namespace is covered by a declared package:
// an exact id, a namespace below an id, or a matching first segment. The
// comparison ignores case.
func (s *Set) HasNamespace(namespace string) bool {
	if s == nil {
		return false
	}

	namespace = strings.ToLower(namespace)

	root, _, _ := strings.Cut(namespace, ".")
	if s.Has(namespace) || s.Has(root) {
		return true
	}

	for name := range s.Names {
		if strings.HasPrefix(namespace, name+".") {
			return true
		}
	}

	return false
}
