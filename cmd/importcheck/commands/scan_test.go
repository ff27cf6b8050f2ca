package commands_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/importcheck/cmd/importcheck/commands"
	"github.com/Sumatoshi-tech/importcheck/pkg/config"
	"github.com/Sumatoshi-tech/importcheck/pkg/report"
)

const mainWithMissingPackage = `package main

import (
	"fmt"

	"example.com/app/internal/real"
	"example.com/app/internal/ghost"
)

func main() { fmt.Println(real.X, ghost.Y) }
`

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()

	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
		require.NoError(t, os.WriteFile(abs, []byte(content), 0o600))
	}

	return root
}

func goProject(t *testing.T, extra map[string]string) string {
	t.Helper()

	files := map[string]string{
		"go.mod":                "module example.com/app\n\ngo 1.22\n",
		"main.go":               mainWithMissingPackage,
		"internal/real/real.go": "package real\n\nconst X = 1\n",
	}

	for k, v := range extra {
		files[k] = v
	}

	return writeTree(t, files)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd := commands.NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestScan_ReportsAndFails(t *testing.T) {
	t.Parallel()

	root := goProject(t, nil)

	out, err := execute(t, "scan", root, "--format", "json")
	require.ErrorIs(t, err, commands.ErrHallucinationsFound)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))

	require.Len(t, rep.Files, 1)
	assert.Equal(t, "main.go", rep.Files[0].File)
	require.Len(t, rep.Files[0].Records, 1)
	assert.Equal(t, "example.com/app/internal/ghost", rep.Files[0].Records[0].Specifier)
	assert.Equal(t, 7, rep.Files[0].Records[0].Line)
	assert.Equal(t, 3, rep.Stats.References)
}

func TestScan_NoFailFlag(t *testing.T) {
	t.Parallel()

	root := goProject(t, nil)

	out, err := execute(t, "scan", root, "--fail=false", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "example.com/app/internal/ghost")
}

func TestScan_CleanProject(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"go.mod":  "module example.com/app\n\ngo 1.22\n",
		"main.go": "package main\n\nimport \"fmt\"\n\nfunc main() { fmt.Println() }\n",
	})

	out, err := execute(t, "scan", root, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "hallucinated: 0")
}

func TestScan_ConfigFileAndExclude(t *testing.T) {
	t.Parallel()

	root := goProject(t, map[string]string{
		config.DefaultFileName: "ignore_patterns:\n  - 'ghost$'\noutput:\n  format: json\n",
	})

	out, err := execute(t, "scan", root)
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Empty(t, rep.Files)
	assert.Equal(t, 1, rep.Stats.SkipReasons["ignored"])

	out, err = execute(t, "scan", root, "--config", filepath.Join(root, config.DefaultFileName), "--exclude", "main.go", "--exclude", "internal/**")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Zero(t, rep.Stats.Files)
}

func TestScan_Disabled(t *testing.T) {
	t.Parallel()

	root := goProject(t, map[string]string{config.DefaultFileName: "enabled: false\n"})

	out, err := execute(t, "scan", root)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestScan_MetricsFile(t *testing.T) {
	t.Parallel()

	root := goProject(t, nil)
	metrics := filepath.Join(t.TempDir(), "importcheck.prom")

	_, err := execute(t, "scan", root, "--fail=false", "--quiet", "--metrics-file", metrics)
	require.NoError(t, err)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), "importcheck_files_scanned")
	assert.Contains(t, string(data), `verdict="hallucinated"`)
}

func TestScan_InvalidFlags(t *testing.T) {
	t.Parallel()

	root := goProject(t, nil)

	_, err := execute(t, "scan", root, "--format", "xml")
	require.ErrorIs(t, err, config.ErrInvalidFormat)

	_, err = execute(t, "scan", root, "--workers", "-1")
	require.ErrorIs(t, err, config.ErrInvalidWorkers)

	_, err = execute(t, "scan", filepath.Join(root, "main.go"))
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "importcheck ")
	assert.Contains(t, out, "commit: ")
}
