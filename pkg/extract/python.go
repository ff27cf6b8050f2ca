package extract

import (
	"regexp"
	"strings"
)

var (
	pyImportPattern  = regexp.MustCompile(`^\s*import\s+(.+)$`)
	pyFromPattern    = regexp.MustCompile(`^\s*from\s+(\.*[\w.]*)\s+import\b`)
	pyDynamicPattern = regexp.MustCompile(`(?:\bimportlib\.import_module|\b__import__)\(\s*['"]([\w.]+)['"]`)
	pyModulePattern  = regexp.MustCompile(`^[A-Za-z_][\w.]*$`)
)

func pythonMatcher() matchFunc {
	return func(line string) ([]Reference, bool) {
		var out []Reference

		if m := pyFromPattern.FindStringSubmatch(line); m != nil {
			out = append(out, refs(m[1])...)
		} else if m := pyImportPattern.FindStringSubmatch(line); m != nil {
			out = append(out, refs(pythonImportList(m[1])...)...)
		}

		for _, m := range pyDynamicPattern.FindAllStringSubmatch(line, -1) {
			// importlib.import_module(".x", package) depends on a runtime argument.
			if strings.HasPrefix(m[1], ".") {
				continue
			}

			out = append(out, Reference{Specifier: m[1], Dynamic: true})
		}

		return out, true
	}
}

// pythonImportList splits "a.b, c as d" into module names.
func pythonImportList(list string) []string {
	list, _, _ = strings.Cut(list, ";")

	var names []string

	for _, item := range strings.Split(list, ",") {
		name, _, _ := strings.Cut(strings.TrimSpace(item), " ")
		name = strings.Trim(name, "()\\")

		if pyModulePattern.MatchString(name) {
			names = append(names, name)
		}
	}

	return names
}
