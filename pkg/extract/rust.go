package extract

import (
	"regexp"
	"strings"
)

var (
	rsUsePattern    = regexp.MustCompile(`^\s*(?:pub(?:\s*\([^)]*\))?\s+)?use\s+(?:::)?([\w:]+)`)
	rsExternPattern = regexp.MustCompile(`^\s*(?:pub(?:\s*\([^)]*\))?\s+)?extern\s+crate\s+(\w+)`)
)

func rustMatcher() matchFunc {
	return func(line string) ([]Reference, bool) {
		if m := rsExternPattern.FindStringSubmatch(line); m != nil {
			return refs(m[1]), true
		}

		loc := rsUsePattern.FindStringSubmatchIndex(line)
		if loc == nil {
			return nil, true
		}

		spec := strings.TrimSuffix(line[loc[2]:loc[3]], "::")
		if spec == "" {
			return nil, true
		}

		wildcard := strings.HasPrefix(strings.TrimLeft(line[loc[1]:], " :"), "*")

		return []Reference{{Specifier: spec, Wildcard: wildcard}}, true
	}
}
