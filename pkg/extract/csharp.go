package extract

import "regexp"

// csUsingPattern matches using directives. "using (...)" statements and
// "using var x = ...;" declarations fail the trailing ";" requirement.
var csUsingPattern = regexp.MustCompile(
	`^\s*(?:global\s+)?using\s+(static\s+)?(?:\w+\s*=\s*)?(?:global::)?([A-Za-z_][\w.]*)\s*;`)

func csharpMatcher() matchFunc {
	return func(line string) ([]Reference, bool) {
		m := csUsingPattern.FindStringSubmatch(line)
		if m == nil {
			return nil, true
		}

		return []Reference{{Specifier: m[2], Static: m[1] != ""}}, true
	}
}
