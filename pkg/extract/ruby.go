package extract

import (
	"regexp"
	"strings"
)

var (
	rbRequirePattern  = regexp.MustCompile(`(?:^|[;\s])require\s*\(?\s*['"]([^'"]+)['"]`)
	rbRelativePattern = regexp.MustCompile(`(?:^|[;\s])require_relative\s*\(?\s*['"]([^'"]+)['"]`)
	rbAutoloadPattern = regexp.MustCompile(`\bautoload\s*\(?\s*:?\w+\s*,\s*['"]([^'"]+)['"]`)
)

func rubyMatcher() matchFunc {
	return func(line string) ([]Reference, bool) {
		var out []Reference

		for _, m := range rbRequirePattern.FindAllStringSubmatch(line, -1) {
			out = append(out, refs(m[1])...)
		}

		for _, m := range rbRelativePattern.FindAllStringSubmatch(line, -1) {
			out = append(out, refs(relativeRequire(m[1]))...)
		}

		for _, m := range rbAutoloadPattern.FindAllStringSubmatch(line, -1) {
			out = append(out, refs(m[1])...)
		}

		return out, true
	}
}

// relativeRequire turns a require_relative argument into a relative
// specifier so that it is resolved against the requiring file.
func relativeRequire(p string) string {
	if strings.HasPrefix(p, "./") || strings.HasPrefix(p, "../") || strings.HasPrefix(p, "/") {
		return p
	}

	return "./" + p
}
