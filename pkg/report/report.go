// Package report groups hallucinated-import records by file and renders
// them for people and machines.
package report

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/importcheck/pkg/resolve"
)

// Format selects a renderer.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

// ErrUnknownFormat is returned for a format name that has no renderer.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if slices.Contains(Formats, f) {
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FileReport holds the records of one file, ordered by line.
type FileReport struct {
	File    string           `json:"file"    yaml:"file"`
	Records []resolve.Record `json:"records" yaml:"records"`
}

// Report is the serialized form of a scan.
type Report struct {
	Root  string        `json:"root"  yaml:"root"`
	Files []FileReport  `json:"files" yaml:"files"`
	Stats resolve.Stats `json:"stats" yaml:"stats"`
}

// Group collects records into one FileReport per file. Files are sorted by
// path and records by line then specifier.
func Group(records []resolve.Record) []FileReport {
	byFile := make(map[string][]resolve.Record)

	for _, rec := range records {
		byFile[rec.File] = append(byFile[rec.File], rec)
	}

	out := make([]FileReport, 0, len(byFile))

	for file, recs := range byFile {
		slices.SortFunc(recs, func(a, b resolve.Record) int {
			return cmp.Or(cmp.Compare(a.Line, b.Line), cmp.Compare(a.Specifier, b.Specifier))
		})

		out = append(out, FileReport{File: file, Records: recs})
	}

	slices.SortFunc(out, func(a, b FileReport) int { return cmp.Compare(a.File, b.File) })

	return out
}

// New builds the report of a scan result.
func New(root string, result *resolve.Result) Report {
	return Report{Root: root, Files: Group(result.Records), Stats: result.Stats}
}

// Options control rendering.
type Options struct {
	NoColor bool
}

// Write renders rep in the given format.
func Write(w io.Writer, format Format, rep Report, opts Options) error {
	switch format {
	case FormatText:
		return writeText(w, rep, opts)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		err := enc.Encode(rep)
		if err != nil {
			return fmt.Errorf("encode json report: %w", err)
		}

		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		err := enc.Encode(rep)
		if err != nil {
			return fmt.Errorf("encode yaml report: %w", err)
		}

		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
