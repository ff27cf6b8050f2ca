package manifest

import (
	"regexp"
	"strings"
)

const (
	gemfile       = "Gemfile"
	gemfileLock   = "Gemfile.lock"
	gemspecSuffix = ".gemspec"
)

var (
	gemDeclPattern     = regexp.MustCompile(`^\s*gem\s*\(?\s*['"]([^'"]+)['"]`)
	gemspecDepPattern  = regexp.MustCompile(`\.add_(?:runtime_|development_)?dependency\s*\(?\s*['"]([^'"]+)['"]`)
	gemspecNamePattern = regexp.MustCompile(`\.name\s*=\s*['"]([^'"]+)['"]`)
	lockSpecPattern    = regexp.MustCompile(`^ {4}([A-Za-z0-9_.\-]+) \(`)
)

// rubyScope unions the Gemfile declarations with every root gemspec.
// Gemfile.lock specs are included so transitive gems are not accused.
func (r *Resolver) rubyScope() *Set {
	set := newSet()

	if data, ok := r.readFile(gemfile); ok {
		set.Found = true
		set.add(matchLines(gemDeclPattern, string(data))...)
	}

	for _, name := range r.listDir("") {
		if !strings.HasSuffix(name, gemspecSuffix) {
			continue
		}

		data, ok := r.readFile(name)
		if !ok {
			continue
		}

		set.Found = true
		content := string(data)
		set.add(matchAll(gemspecDepPattern, content)...)
		set.add(matchAll(gemspecNamePattern, content)...)
	}

	if set.Found {
		if data, ok := r.readFile(gemfileLock); ok {
			set.add(matchLines(lockSpecPattern, string(data))...)
		}
	}

	return set
}

// GemRequireNames returns the names a require path may belong to:
// "active_support/core_ext" may come from the activesupport gem, and
// "net/http/persistent" from net-http-persistent.
func GemRequireNames(requirePath string) []string {
	top, _, _ := strings.Cut(requirePath, "/")
	names := []string{requirePath, top, strings.ReplaceAll(requirePath, "/", "-")}

	segments := strings.Split(requirePath, "/")
	for i := 2; i < len(segments); i++ {
		names = append(names, strings.Join(segments[:i], "-"))
	}

	return names
}

// HasGem reports whether any declared gem matches the require path, ignoring
// the underscore and hyphen spelling differences between gem and file names.
func (s *Set) HasGem(requirePath string) bool {
	if s == nil {
		return false
	}

	for _, candidate := range GemRequireNames(requirePath) {
		if s.Has(candidate) {
			return true
		}

		squashed := squashGemName(candidate)
		for name := range s.Names {
			if squashGemName(name) == squashed {
				return true
			}
		}
	}

	return false
}

func squashGemName(name string) string {
	return strings.NewReplacer("_", "", "-", "").Replace(strings.ToLower(name))
}

func matchLines(re *regexp.Regexp, content string) []string {
	var out []string

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}

		if m := re.FindStringSubmatch(line); len(m) > 1 {
			out = append(out, m[1])
		}
	}

	return out
}

func matchAll(re *regexp.Regexp, content string) []string {
	var out []string

	for _, m := range re.FindAllStringSubmatch(content, -1) {
		if len(m) > 1 {
			out = append(out, m[1])
		}
	}

	return out
}
