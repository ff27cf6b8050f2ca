package manifest

import (
	"encoding/json"
	"strings"
)

const packageJSON = "package.json"

var npmDependencyFields = []string{
	"dependencies",
	"devDependencies",
	"peerDependencies",
	"optionalDependencies",
}

// npmScope merges the nearest package.json with the root one. A file deep
// in a workspace package may rely on dependencies hoisted to the root.
func (r *Resolver) npmScope(dir string) *Set {
	set := newSet()

	for _, d := range ancestors(dir) {
		if nearest := r.npmManifest(d); nearest != nil {
			set.merge(nearest)

			break
		}
	}

	set.merge(r.npmManifest(""))

	return set
}

// npmManifest parses the package.json of one directory, nil when absent.
func (r *Resolver) npmManifest(dir string) *Set {
	return r.npmFiles.Get(dir, func() *Set {
		file := join(dir, packageJSON)

		data, ok := r.readFile(file)
		if !ok {
			return nil
		}

		set, err := parsePackageJSON(data)
		if err != nil {
			r.parseFailed(file, err)

			return nil
		}

		return set
	})
}

func parsePackageJSON(data []byte) (*Set, error) {
	var doc map[string]any

	err := json.Unmarshal(data, &doc)
	if err != nil {
		return nil, err
	}

	set := newSet()
	set.Found = true

	if name, ok := doc["name"].(string); ok {
		set.add(name)
	}

	for _, field := range npmDependencyFields {
		deps, ok := doc[field].(map[string]any)
		if !ok {
			continue
		}

		for name := range deps {
			set.add(name)
		}
	}

	return set, nil
}

// HasInstalled reports whether node_modules/<name> exists in dir or any
// ancestor up to the project root. Manifests can lag actual installation.
func (r *Resolver) HasInstalled(dir, name string) bool {
	if name == "" || strings.Contains(name, "..") {
		return false
	}

	for _, d := range ancestors(dir) {
		candidate := join(join(d, "node_modules"), name)
		if r.installed.Get(candidate, func() bool { return r.isDir(candidate) }) {
			return true
		}
	}

	return false
}

// PackageName returns the installable package part of a bare specifier:
// "@scope/pkg/sub" yields "@scope/pkg" and "pkg/sub" yields "pkg".
func PackageName(specifier string) string {
	parts := strings.Split(specifier, "/")

	if strings.HasPrefix(specifier, "@") {
		if len(parts) < 2 {
			return specifier
		}

		return parts[0] + "/" + parts[1]
	}

	return parts[0]
}
