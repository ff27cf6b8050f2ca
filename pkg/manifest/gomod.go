package manifest

import (
	"errors"
	"path"
	"strings"

	"golang.org/x/mod/modfile"
)

const (
	goModFile  = "go.mod"
	goWorkFile = "go.work"
)

var errNoModuleDirective = errors.New("go.mod has no module directive")

// goScope finds the nearest go.mod walking up from dir. Modules listed in a
// root go.work are added as extra module prefixes.
func (r *Resolver) goScope(dir string) *Set {
	set := newSet()
	set.Modules = make(map[string]string)

	for _, d := range ancestors(dir) {
		file := join(d, goModFile)

		data, ok := r.readFile(file)
		if !ok {
			continue
		}

		mod, err := parseGoMod(file, data)
		if err != nil {
			r.parseFailed(file, err)

			continue
		}

		set.Found = true
		set.ModulePath = mod.Module.Mod.Path
		set.Modules[set.ModulePath] = d

		for _, req := range mod.Require {
			set.add(req.Mod.Path)
		}

		addLocalReplaces(set, d, mod.Replace)

		break
	}

	workModules := r.goWork.Get("", r.goWorkModules)
	for modPath, modDir := range workModules {
		set.Found = true

		if _, exists := set.Modules[modPath]; !exists {
			set.Modules[modPath] = modDir
		}
	}

	return set
}

// addLocalReplaces maps modules replaced by a directory inside the project
// to that directory. Replacements outside the project only count as declared.
func addLocalReplaces(set *Set, modDir string, replaces []*modfile.Replace) {
	for _, rep := range replaces {
		set.add(rep.Old.Path)

		if !modfile.IsDirectoryPath(rep.New.Path) {
			continue
		}

		target := path.Join(modDir, rep.New.Path)
		if target == ".." || strings.HasPrefix(target, "../") || path.IsAbs(target) {
			continue
		}

		set.Modules[rep.Old.Path] = cleanDir(target)
	}
}

// goWorkModules maps module paths of every go.work "use" directory to that directory.
func (r *Resolver) goWorkModules() map[string]string {
	modules := make(map[string]string)

	data, ok := r.readFile(goWorkFile)
	if !ok {
		return modules
	}

	work, err := modfile.ParseWork(goWorkFile, data, nil)
	if err != nil {
		r.parseFailed(goWorkFile, err)

		return modules
	}

	for _, use := range work.Use {
		useDir := cleanDir(path.Clean(strings.TrimPrefix(use.Path, "./")))
		file := join(useDir, goModFile)

		modData, found := r.readFile(file)
		if !found {
			continue
		}

		modPath := modfile.ModulePath(modData)
		if modPath != "" {
			modules[modPath] = useDir
		}
	}

	return modules
}

func parseGoMod(file string, data []byte) (*modfile.File, error) {
	mod, err := modfile.ParseLax(file, data, nil)
	if err != nil {
		return nil, err
	}

	if mod.Module == nil || mod.Module.Mod.Path == "" {
		return nil, errNoModuleDirective
	}

	return mod, nil
}
