package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/importcheck/pkg/config"
	"github.com/Sumatoshi-tech/importcheck/pkg/observability"
	"github.com/Sumatoshi-tech/importcheck/pkg/resolve"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, config.DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig("", t.TempDir())
	require.NoError(t, err)

	assert.True(t, cfg.Enabled)
	assert.True(t, cfg.CheckRelative)
	assert.True(t, cfg.CheckPackages)
	assert.Equal(t, resolve.DefaultIgnoreExpressions, cfg.IgnorePatterns)
	assert.Equal(t, config.DefaultOutputFormat, cfg.Output.Format)
	assert.True(t, cfg.Output.Fail)
	assert.Equal(t, int64(1<<20), cfg.MaxFileSizeBytes())

	opts := cfg.ResolveOptions()
	assert.True(t, opts.CheckRelative)
	assert.Len(t, opts.IgnorePatterns, len(resolve.DefaultIgnoreExpressions))
	assert.Zero(t, opts.Workers)
}

func TestLoadConfig_ProjectFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfig(t, root, `check_relative: false
ignore_patterns:
  - '^@generated/'
scan:
  workers: 3
  exclude: ["fixtures/**"]
  max_file_size: 256KB
output:
  format: json
  fail: false
logging:
  level: debug
  format: json
telemetry:
  metrics_file: out/importcheck.prom
  otlp_headers: "x-team=gate"
`)

	cfg, err := config.LoadConfig("", root)
	require.NoError(t, err)

	assert.False(t, cfg.CheckRelative)
	assert.True(t, cfg.CheckPackages)
	assert.Equal(t, []string{"^@generated/"}, cfg.IgnorePatterns)
	assert.Equal(t, []string{"fixtures/**"}, cfg.Scan.Exclude)
	assert.Equal(t, int64(256000), cfg.MaxFileSizeBytes())
	assert.False(t, cfg.Output.Fail)

	opts := cfg.ResolveOptions()
	assert.Equal(t, 3, opts.Workers)
	require.Len(t, opts.IgnorePatterns, 1)
	assert.True(t, opts.IgnorePatterns[0].MatchString("@generated/client"))

	obs := cfg.Observability("1.0.0", observability.ModeCI)
	assert.True(t, obs.LogJSON)
	assert.Equal(t, "out/importcheck.prom", obs.MetricsFile)
	assert.Equal(t, map[string]string{"x-team": "gate"}, obs.OTLPHeaders)
	assert.Equal(t, observability.ModeCI, obs.Mode)
	assert.Equal(t, "1.0.0", obs.ServiceVersion)
}

func TestLoadConfig_ExplicitPathMustExist(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), "")
	require.Error(t, err)
}

func TestLoadConfig_Validation(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		content string
		want    error
	}{
		"bad pattern":   {content: "ignore_patterns: ['([']\n", want: config.ErrInvalidPattern},
		"negative pool": {content: "scan:\n  workers: -1\n", want: config.ErrInvalidWorkers},
		"bad format":    {content: "output:\n  format: xml\n", want: config.ErrInvalidFormat},
		"bad log fmt":   {content: "logging:\n  format: logfmt\n", want: config.ErrInvalidFormat},
		"bad size":      {content: "scan:\n  max_file_size: huge\n", want: config.ErrInvalidFileSize},
		"bad level":     {content: "logging:\n  level: chatty\n", want: config.ErrInvalidLogLevel},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := writeConfig(t, t.TempDir(), tc.content)

			_, err := config.LoadConfig(path, "")
			require.ErrorIs(t, err, tc.want)
		})
	}
}
