package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricFilesScanned    = "importcheck.files.scanned"
	metricFilesSkipped    = "importcheck.files.skipped"
	metricReferencesTotal = "importcheck.references.total"
	metricScanDuration    = "importcheck.scan.duration.seconds"

	attrEcosystem = "ecosystem"
	attrVerdict   = "verdict"
)

// durationBucketBoundaries covers 10ms to 10 minutes.
var durationBucketBoundaries = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600}

// ReferenceKey groups reference counts by ecosystem and verdict.
type ReferenceKey struct {
	Ecosystem string
	Verdict   string
}

// ScanStats holds the statistics of one completed scan.
type ScanStats struct {
	Files        int64
	FilesSkipped int64
	Duration     time.Duration
	References   map[ReferenceKey]int64
}

// ScanMetrics holds the OTel instruments for scan metrics.
type ScanMetrics struct {
	filesScanned metric.Int64Counter
	filesSkipped metric.Int64Counter
	references   metric.Int64Counter
	duration     metric.Float64Histogram
}

// NewScanMetrics creates scan metric instruments from the given meter.
func NewScanMetrics(mt metric.Meter) (*ScanMetrics, error) {
	scanned, err := mt.Int64Counter(metricFilesScanned,
		metric.WithDescription("Source files whose imports were checked"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricFilesScanned, err)
	}

	skippedFiles, err := mt.Int64Counter(metricFilesSkipped,
		metric.WithDescription("Files skipped as unreadable or unsupported"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricFilesSkipped, err)
	}

	refs, err := mt.Int64Counter(metricReferencesTotal,
		metric.WithDescription("Import references by ecosystem and verdict"),
		metric.WithUnit("{reference}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricReferencesTotal, err)
	}

	dur, err := mt.Float64Histogram(metricScanDuration,
		metric.WithDescription("Scan duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricScanDuration, err)
	}

	return &ScanMetrics{
		filesScanned: scanned,
		filesSkipped: skippedFiles,
		references:   refs,
		duration:     dur,
	}, nil
}

// RecordScan records the statistics of a completed scan.
// Safe to call on a nil receiver (no-op).
func (sm *ScanMetrics) RecordScan(ctx context.Context, stats ScanStats) {
	if sm == nil {
		return
	}

	sm.filesScanned.Add(ctx, stats.Files)
	sm.filesSkipped.Add(ctx, stats.FilesSkipped)
	sm.duration.Record(ctx, stats.Duration.Seconds())

	for key, n := range stats.References {
		sm.references.Add(ctx, n, metric.WithAttributes(
			attribute.String(attrEcosystem, key.Ecosystem),
			attribute.String(attrVerdict, key.Verdict),
		))
	}
}
