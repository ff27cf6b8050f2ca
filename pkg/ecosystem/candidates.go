package ecosystem

import (
	"path"
	"strings"
)

// ScriptExtensions are the source suffixes tried when a script specifier
// names a file without one.
var ScriptExtensions = []string{
	".ts", ".tsx", ".d.ts", ".js", ".jsx", ".mjs", ".cjs", ".mts", ".cts", ".vue", ".svelte", ".json",
}

// runtimeExtensions are suffixes produced by a build step; "./util.js" in a
// TypeScript file usually points at util.ts.
var runtimeExtensions = []string{".js", ".jsx", ".mjs", ".cjs"}

// ScriptCandidates expands a project-relative path into every file that a
// script import of it could load: the literal path, the path with each
// source extension, the index file of a directory, and for runtime
// extensions the sibling source file.
func ScriptCandidates(p string) []string {
	p = path.Clean(p)
	if p == "." || p == "/" {
		p = ""
	}

	out := make([]string, 0, 2*len(ScriptExtensions)+1)
	if p != "" {
		out = append(out, p)

		for _, ext := range ScriptExtensions {
			out = append(out, p+ext)
		}
	}

	index := "index"
	if p != "" {
		index = p + "/index"
	}

	for _, ext := range ScriptExtensions {
		out = append(out, index+ext)
	}

	for _, rt := range runtimeExtensions {
		stem, ok := strings.CutSuffix(p, rt)
		if !ok || stem == "" {
			continue
		}

		for _, ext := range ScriptExtensions {
			out = append(out, stem+ext)
		}

		break
	}

	return out
}
