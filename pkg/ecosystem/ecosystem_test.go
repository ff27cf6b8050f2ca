package ecosystem_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/importcheck/pkg/ecosystem"
)

func TestFromPath(t *testing.T) {
	t.Parallel()

	cases := map[string]ecosystem.Ecosystem{
		"src/app.ts":              ecosystem.JavaScript,
		"src/App.tsx":             ecosystem.JavaScript,
		"lib/index.js":            ecosystem.JavaScript,
		"lib/esm.mjs":             ecosystem.JavaScript,
		"lib/config.cts":          ecosystem.JavaScript,
		"pkg/mod.py":              ecosystem.Python,
		"cmd/main.go":             ecosystem.Go,
		"lib/thing.rb":            ecosystem.Ruby,
		"Services/UserService.cs": ecosystem.CSharp,
		"src/lib.rs":              ecosystem.Rust,
		"src/main/java/App.java":  ecosystem.Java,
		"src/main/kotlin/App.kt":  ecosystem.Kotlin,
		"build.gradle.kts":        ecosystem.Kotlin,
		`windows\style\handler.go`: ecosystem.Go,
	}

	for p, want := range cases {
		got, ok := ecosystem.FromPath(p)
		require.True(t, ok, p)
		assert.Equal(t, want, got, p)
	}
}

func TestFromPath_Unsupported(t *testing.T) {
	t.Parallel()

	for _, p := range []string{"README.md", "Makefile", "styles/site.css", "noext"} {
		_, ok := ecosystem.FromPath(p)
		assert.False(t, ok, p)
	}
}

func TestNewSourceFile(t *testing.T) {
	t.Parallel()

	f, ok := ecosystem.NewSourceFile(`src\utils\logger.TS`)
	require.True(t, ok)

	assert.Equal(t, "src/utils/logger.TS", f.Path)
	assert.Equal(t, ".ts", f.Ext)
	assert.Equal(t, "src/utils", f.Dir())
	assert.True(t, f.IsTypeScript())

	root, ok := ecosystem.NewSourceFile("main.go")
	require.True(t, ok)
	assert.Empty(t, root.Dir())
	assert.False(t, root.IsTypeScript())
}

func TestScriptCandidates(t *testing.T) {
	t.Parallel()

	got := ecosystem.ScriptCandidates("src/utils/logger")

	assert.Equal(t, "src/utils/logger", got[0])
	assert.Contains(t, got, "src/utils/logger.ts")
	assert.Contains(t, got, "src/utils/logger.d.ts")
	assert.Contains(t, got, "src/utils/logger/index.tsx")
	assert.Contains(t, got, "src/utils/logger/index.js")
}

func TestScriptCandidates_RuntimeExtension(t *testing.T) {
	t.Parallel()

	got := ecosystem.ScriptCandidates("./lib/../lib/util.js")

	assert.Equal(t, "lib/util.js", got[0])
	assert.Contains(t, got, "lib/util.ts")
	assert.Contains(t, got, "lib/util.tsx")
	assert.NotContains(t, got, "lib/util.ts.ts")
}

func TestScriptCandidates_Root(t *testing.T) {
	t.Parallel()

	got := ecosystem.ScriptCandidates(".")

	assert.Contains(t, got, "index.ts")
	assert.NotContains(t, got, ".")
	assert.NotContains(t, got, "")
}
