package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/importcheck/pkg/config"
	"github.com/Sumatoshi-tech/importcheck/pkg/observability"
	"github.com/Sumatoshi-tech/importcheck/pkg/project"
	"github.com/Sumatoshi-tech/importcheck/pkg/report"
	"github.com/Sumatoshi-tech/importcheck/pkg/resolve"
	"github.com/Sumatoshi-tech/importcheck/pkg/version"
)

// ErrHallucinationsFound is returned by scan when records were emitted and
// output.fail is set.
var ErrHallucinationsFound = errors.New("hallucinated imports found")

// ScanCommand holds the flags of the scan command.
type ScanCommand struct {
	global *globalFlags

	configPath  string
	format      string
	noColor     bool
	fail        bool
	metricsFile string
	workers     int
	exclude     []string
}

// NewScanCommand creates the scan command.
func NewScanCommand(global *globalFlags) *cobra.Command {
	if global == nil {
		global = &globalFlags{}
	}

	sc := &ScanCommand{global: global}

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Check the imports of a project tree",
		Long: `Scan every supported source file under path (default ".") and report
imports that resolve to no project file, declared dependency or standard
library module.

Configuration is read from .importcheck.yaml in path, or from --config.
Environment variables prefixed with IMPORTCHECK_ override file values.`,
		Args: cobra.MaximumNArgs(1),
		RunE: sc.run,
	}

	cmd.Flags().StringVarP(&sc.configPath, "config", "c", "", "Config file (default: <path>/.importcheck.yaml)")
	cmd.Flags().StringVarP(&sc.format, "format", "f", config.DefaultOutputFormat, "Output format: text, json, yaml")
	cmd.Flags().BoolVar(&sc.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&sc.fail, "fail", config.DefaultOutputFail, "Exit non-zero when hallucinated imports are found")
	cmd.Flags().StringVar(&sc.metricsFile, "metrics-file", "", "Write scan metrics in Prometheus text format to this file")
	cmd.Flags().IntVarP(&sc.workers, "workers", "w", config.DefaultScanWorkers, "Number of parallel workers (0 = use CPU count)")
	cmd.Flags().StringSliceVarP(&sc.exclude, "exclude", "e", nil, "Glob patterns of files to skip (example: 'testdata/**')")

	return cmd
}

func (sc *ScanCommand) run(cmd *cobra.Command, args []string) (err error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	cfg, err := config.LoadConfig(sc.configPath, root)
	if err != nil {
		return err
	}

	err = sc.applyFlags(cmd, cfg)
	if err != nil {
		return err
	}

	providers, err := observability.Init(sc.observabilityConfig(cfg), cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	defer func() {
		shutdownErr := providers.Shutdown(context.Background())
		if shutdownErr != nil {
			providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)

			if errors.Is(shutdownErr, observability.ErrMetricsFile) {
				err = errors.Join(err, shutdownErr)
			}
		}
	}()

	logger := providers.Logger

	if !cfg.Enabled {
		logger.Info("import check disabled by configuration")

		return nil
	}

	proj, err := project.Enumerate(root, project.Options{
		Exclude:     cfg.Scan.Exclude,
		MaxFileSize: cfg.MaxFileSizeBytes(),
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	logger.Debug("project enumerated", "root", proj.Root, "files", proj.Index.Len(), "sources", len(proj.Sources))

	engine := resolve.NewEngine(cfg.ResolveOptions(), logger, providers.Metrics)

	result, err := engine.Scan(cmd.Context(), proj.Root, proj.Sources, proj.Index)
	if err != nil {
		return err
	}

	return sc.render(cmd, cfg, proj.Root, result, logger)
}

func (sc *ScanCommand) render(
	cmd *cobra.Command,
	cfg *config.Config,
	root string,
	result *resolve.Result,
	logger *slog.Logger,
) error {
	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	if !sc.global.quiet || len(result.Records) > 0 || format != report.FormatText {
		err = report.Write(cmd.OutOrStdout(), format, report.New(root, result), report.Options{NoColor: cfg.Output.NoColor})
		if err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	logger.Debug("scan finished", "hallucinated", len(result.Records), "duration", result.Duration)

	if len(result.Records) > 0 && cfg.Output.Fail {
		return fmt.Errorf("%w: %d", ErrHallucinationsFound, len(result.Records))
	}

	return nil
}

// applyFlags overrides config values with explicitly set flags.
func (sc *ScanCommand) applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("format") {
		format, err := report.ParseFormat(sc.format)
		if err != nil {
			return fmt.Errorf("%w: %w", config.ErrInvalidFormat, err)
		}

		cfg.Output.Format = string(format)
	}

	if flags.Changed("workers") {
		if sc.workers < 0 {
			return fmt.Errorf("%w: %d", config.ErrInvalidWorkers, sc.workers)
		}

		cfg.Scan.Workers = sc.workers
	}

	if flags.Changed("no-color") {
		cfg.Output.NoColor = sc.noColor
	}

	if flags.Changed("fail") {
		cfg.Output.Fail = sc.fail
	}

	if flags.Changed("metrics-file") {
		cfg.Telemetry.MetricsFile = sc.metricsFile
	}

	cfg.Scan.Exclude = append(cfg.Scan.Exclude, sc.exclude...)

	return nil
}

func (sc *ScanCommand) observabilityConfig(cfg *config.Config) observability.Config {
	mode := observability.ModeCLI

	if ci, parseErr := strconv.ParseBool(os.Getenv("CI")); parseErr == nil && ci {
		mode = observability.ModeCI
	}

	obsCfg := cfg.Observability(version.Resolved(), mode)

	switch {
	case sc.global.verbose:
		obsCfg.LogLevel = slog.LevelDebug
	case sc.global.quiet:
		obsCfg.LogLevel = slog.LevelError
	}

	return obsCfg
}
