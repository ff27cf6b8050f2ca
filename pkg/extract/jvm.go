package extract

import (
	"regexp"
	"strings"
)

var (
	javaImportPattern   = regexp.MustCompile(`^\s*import\s+(static\s+)?([\w.]+?)(\.\*)?\s*;`)
	kotlinImportPattern = regexp.MustCompile("^\\s*import\\s+([\\w.`]+?)(\\.\\*)?(?:\\s+as\\s+\\w+)?\\s*;?\\s*$")
)

func javaMatcher() matchFunc {
	return func(line string) ([]Reference, bool) {
		m := javaImportPattern.FindStringSubmatch(line)
		if m == nil {
			return nil, true
		}

		return []Reference{{Specifier: m[2], Static: m[1] != "", Wildcard: m[3] != ""}}, true
	}
}

func kotlinMatcher() matchFunc {
	return func(line string) ([]Reference, bool) {
		m := kotlinImportPattern.FindStringSubmatch(line)
		if m == nil {
			return nil, true
		}

		spec := strings.ReplaceAll(m[1], "`", "")

		return []Reference{{Specifier: spec, Wildcard: m[2] != ""}}, true
	}
}
