package extract

import (
	"regexp"
	"strings"
)

var (
	goSinglePattern    = regexp.MustCompile("^\\s*import\\s+(?:[\\w.]+\\s+)?[\"`]([^\"`]+)[\"`]")
	goBlockOpenPattern = regexp.MustCompile(`^\s*import\s*\(`)
	goSpecPattern      = regexp.MustCompile("^\\s*(?:[\\w.]+\\s+)?[\"`]([^\"`]+)[\"`]")
	goDeclPattern      = regexp.MustCompile(`^(?:func|type|var|const)\b`)
)

// goMatcher tracks import blocks and stops at the first top-level
// declaration, since imports must precede all of them.
func goMatcher() matchFunc {
	inBlock := false

	blockLine := func(line string) []Reference {
		var out []Reference

		rest := line
		for strings.TrimSpace(rest) != "" {
			trimmed := strings.TrimSpace(rest)
			if strings.HasPrefix(trimmed, ")") {
				inBlock = false

				return out
			}

			loc := goSpecPattern.FindStringSubmatchIndex(rest)
			if loc == nil {
				break
			}

			out = append(out, refs(rest[loc[2]:loc[3]])...)
			rest = strings.TrimLeft(rest[loc[1]:], " \t;")
		}

		return out
	}

	return func(line string) ([]Reference, bool) {
		if inBlock {
			return blockLine(line), true
		}

		if loc := goBlockOpenPattern.FindStringIndex(line); loc != nil {
			inBlock = true

			return blockLine(line[loc[1]:]), true
		}

		if m := goSinglePattern.FindStringSubmatch(line); m != nil {
			return refs(m[1]), true
		}

		return nil, !goDeclPattern.MatchString(line)
	}
}
