package manifest

import (
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const cargoManifest = "Cargo.toml"

var cargoDependencyTables = []string{"dependencies", "dev-dependencies", "build-dependencies"}

// cargoScope merges the nearest Cargo.toml with the root one, so workspace
// member crates see both their own and the workspace-level dependencies.
func (r *Resolver) cargoScope(dir string) *Set {
	set := newSet()

	for _, d := range ancestors(dir) {
		if nearest := r.cargoManifest(d); nearest != nil {
			set.merge(nearest)

			break
		}
	}

	set.merge(r.cargoManifest(""))

	return set
}

func (r *Resolver) cargoManifest(dir string) *Set {
	return r.cargoFiles.Get(dir, func() *Set {
		file := join(dir, cargoManifest)

		data, ok := r.readFile(file)
		if !ok {
			return nil
		}

		set, err := parseCargoManifest(data)
		if err != nil {
			r.parseFailed(file, err)

			return nil
		}

		return set
	})
}

func parseCargoManifest(data []byte) (*Set, error) {
	var doc map[string]any

	err := toml.Unmarshal(data, &doc)
	if err != nil {
		return nil, err
	}

	set := newSet()
	set.Found = true

	addCargoTables(set, doc)

	if workspace, ok := doc["workspace"].(map[string]any); ok {
		addCargoTables(set, workspace)
	}

	if targets, ok := doc["target"].(map[string]any); ok {
		for _, cfg := range targets {
			if table, isTable := cfg.(map[string]any); isTable {
				addCargoTables(set, table)
			}
		}
	}

	for _, section := range []string{"package", "lib"} {
		if table, ok := doc[section].(map[string]any); ok {
			if name, isString := table["name"].(string); isString {
				set.add(CrateName(name))
			}
		}
	}

	return set, nil
}

func addCargoTables(set *Set, doc map[string]any) {
	for _, tableName := range cargoDependencyTables {
		deps, ok := doc[tableName].(map[string]any)
		if !ok {
			continue
		}

		for name, spec := range deps {
			set.add(CrateName(name))

			if detail, isTable := spec.(map[string]any); isTable {
				if pkg, hasPkg := detail["package"].(string); hasPkg {
					set.add(CrateName(pkg))
				}
			}
		}
	}
}

// CrateName normalizes a declared crate name to the identifier used in paths.
func CrateName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), "-", "_")
}
