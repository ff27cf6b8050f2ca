package resolve

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/importcheck/pkg/ecosystem"
	"github.com/Sumatoshi-tech/importcheck/pkg/extract"
	"github.com/Sumatoshi-tech/importcheck/pkg/observability"
)

const tracerName = "github.com/Sumatoshi-tech/importcheck/pkg/resolve"

// ErrScanCanceled is returned when the context ends before every file was
// scheduled. The partial result is still returned.
var ErrScanCanceled = errors.New("scan canceled")

// Record is one hallucinated import. Suggestion names the nearest declared
// dependency when the package was not declared.
type Record struct {
	File       string              `json:"file"      yaml:"file"`
	Line       int                 `json:"line"      yaml:"line"`
	Specifier  string              `json:"specifier" yaml:"specifier"`
	Ecosystem  ecosystem.Ecosystem `json:"ecosystem" yaml:"ecosystem"`
	Kind       string              `json:"kind"      yaml:"kind"`
	Reason     string              `json:"reason"    yaml:"reason"`
	Suggestion string              `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// Stats counts verdicts across a scan.
type Stats struct {
	Files        int            `json:"files"         yaml:"files"`
	FilesSkipped int            `json:"files_skipped" yaml:"files_skipped"`
	References   int            `json:"references"    yaml:"references"`
	Resolved     int            `json:"resolved"      yaml:"resolved"`
	Hallucinated int            `json:"hallucinated"  yaml:"hallucinated"`
	Skipped      int            `json:"skipped"       yaml:"skipped"`
	SkipReasons  map[string]int `json:"skip_reasons"  yaml:"skip_reasons"`
}

// Result is the outcome of one scan. Records are sorted by file, line and
// specifier.
type Result struct {
	Records  []Record      `json:"records"  yaml:"records"`
	Stats    Stats         `json:"stats"    yaml:"stats"`
	Duration time.Duration `json:"-"        yaml:"-"`

	byKey map[verdictKey]int
}

// Engine resolves the imports of a set of project files.
type Engine struct {
	Options Options
	Logger  *slog.Logger
	// Metrics may be nil.
	Metrics *observability.ScanMetrics
}

// NewEngine creates an engine with the given options.
func NewEngine(opts Options, logger *slog.Logger, metrics *observability.ScanMetrics) *Engine {
	return &Engine{Options: opts, Logger: logger, Metrics: metrics}
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}

	return e.Logger
}

func (e *Engine) workers() int {
	if e.Options.Workers > 0 {
		return e.Options.Workers
	}

	return runtime.NumCPU()
}

// Scan extracts and resolves the references of files, project-relative paths
// under root. Files that cannot be read or belong to no ecosystem are logged
// and skipped; a single file never fails the scan.
func (e *Engine) Scan(ctx context.Context, root string, files []string, index *ProjectFileIndex) (*Result, error) {
	start := time.Now()
	logger := e.logger()

	if index == nil {
		index = NewProjectFileIndex(files)
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "importcheck.scan",
		trace.WithAttributes(
			attribute.String("scan.root", root),
			attribute.Int("scan.files", len(files)),
			attribute.Int("scan.workers", e.workers()),
		))
	defer span.End()

	scope := NewScope(root, index, e.Options, logger)
	tallies := make([]fileTally, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers())

	var canceled error

	for i, rel := range files {
		if err := gctx.Err(); err != nil {
			canceled = fmt.Errorf("%w: %w", ErrScanCanceled, err)

			break
		}

		g.Go(func() error {
			tallies[i] = e.scanFile(gctx, scope, filepath.ToSlash(rel))

			return nil
		})
	}

	_ = g.Wait()

	result := merge(tallies)
	result.Duration = time.Since(start)

	span.SetAttributes(
		attribute.Int("scan.references", result.Stats.References),
		attribute.Int("scan.hallucinated", result.Stats.Hallucinated),
	)

	e.Metrics.RecordScan(ctx, result.metricStats())

	logger.InfoContext(ctx, "scan complete",
		"files", result.Stats.Files,
		"references", result.Stats.References,
		"hallucinated", result.Stats.Hallucinated,
		"skipped", result.Stats.Skipped,
		"duration", result.Duration)

	return result, canceled
}

// fileTally is the per-file output, merged once all workers are done.
type fileTally struct {
	scanned bool
	records []Record
	counts  map[verdictKey]int
}

type verdictKey struct {
	eco     ecosystem.Ecosystem
	outcome Outcome
	reason  string
}

func (e *Engine) scanFile(ctx context.Context, scope *Scope, rel string) fileTally {
	logger := scope.Logger

	src, ok := ecosystem.NewSourceFile(rel)
	if !ok {
		logger.DebugContext(ctx, "skipping file", "file", rel, "error", ErrUnsupportedEcosystem)

		return fileTally{}
	}

	strategy, ok := StrategyFor(src.Ecosystem)
	if !ok {
		logger.DebugContext(ctx, "skipping file", "file", rel,
			"error", fmt.Errorf("%w: %s", ErrUnsupportedEcosystem, src.Ecosystem))

		return fileTally{}
	}

	content, err := scope.ReadFile(src.Path)
	if err != nil {
		logger.WarnContext(ctx, "skipping file", "file", rel, "error", err)

		return fileTally{}
	}

	file := &File{Source: src, Content: content}
	tally := fileTally{scanned: true, counts: make(map[verdictKey]int)}

	for ref := range strategy.Extract(src.Path, content) {
		v := decide(ctx, strategy, scope, file, ref)
		tally.counts[verdictKey{eco: ref.Ecosystem, outcome: v.Outcome, reason: v.Reason}]++

		if v.Outcome != Hallucinated {
			continue
		}

		rec := Record{
			File:      ref.File,
			Line:      ref.Line,
			Specifier: ref.Specifier,
			Ecosystem: ref.Ecosystem,
			Kind:      kindOf(ref, v).String(),
			Reason:    v.Reason,
		}

		if v.Reason == ReasonNotDeclared {
			rec.Suggestion = suggest(scope, file, ref.Ecosystem, ref.Specifier)
		}

		tally.records = append(tally.records, rec)
	}

	return tally
}

// decide applies the checks shared by every ecosystem before handing the
// reference to its strategy.
func decide(ctx context.Context, strategy Strategy, scope *Scope, file *File, ref extract.Reference) Verdict {
	if scope.Options.ignored(ref.Specifier) {
		return skipped(ReasonIgnored)
	}

	if Classify(ref.Ecosystem, ref.Specifier) == Relative && !scope.Options.CheckRelative {
		return skipped(ReasonDisabled)
	}

	return strategy.Resolve(ctx, scope, file, ref)
}

func kindOf(ref extract.Reference, v Verdict) SpecifierKind {
	if v.Reason == ReasonAliasTargetMissing {
		return Aliased
	}

	return Classify(ref.Ecosystem, ref.Specifier)
}

func merge(tallies []fileTally) *Result {
	result := &Result{
		Records: []Record{},
		Stats:   Stats{SkipReasons: make(map[string]int)},
	}
	byKey := make(map[verdictKey]int)

	for _, t := range tallies {
		if !t.scanned {
			result.Stats.FilesSkipped++

			continue
		}

		result.Stats.Files++
		result.Records = append(result.Records, t.records...)

		for key, n := range t.counts {
			byKey[key] += n
		}
	}

	for key, n := range byKey {
		result.Stats.References += n

		switch key.outcome {
		case Resolved:
			result.Stats.Resolved += n
		case Hallucinated:
			result.Stats.Hallucinated += n
		case Skipped:
			result.Stats.Skipped += n
			result.Stats.SkipReasons[key.reason] += n
		}
	}

	result.byKey = byKey

	slices.SortFunc(result.Records, compareRecords)

	return result
}

func compareRecords(a, b Record) int {
	return cmp.Or(
		cmp.Compare(a.File, b.File),
		cmp.Compare(a.Line, b.Line),
		cmp.Compare(a.Specifier, b.Specifier),
		cmp.Compare(a.Reason, b.Reason),
	)
}

func (r *Result) metricStats() observability.ScanStats {
	stats := observability.ScanStats{
		Files:        int64(r.Stats.Files),
		FilesSkipped: int64(r.Stats.FilesSkipped),
		Duration:     r.Duration,
		References:   make(map[observability.ReferenceKey]int64, len(r.byKey)),
	}

	for key, n := range r.byKey {
		stats.References[observability.ReferenceKey{
			Ecosystem: string(key.eco),
			Verdict:   key.outcome.String(),
		}] += int64(n)
	}

	return stats
}
