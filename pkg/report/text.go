package report

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/importcheck/pkg/resolve"
)

type palette struct {
	file      *color.Color
	specifier *color.Color
	ok        *color.Color
	dim       *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		file:      color.New(color.FgCyan, color.Bold),
		specifier: color.New(color.FgRed),
		ok:        color.New(color.FgGreen),
		dim:       color.New(color.Faint),
	}

	if noColor {
		for _, c := range []*color.Color{p.file, p.specifier, p.ok, p.dim} {
			c.DisableColor()
		}
	}

	return p
}

func reason(rec resolve.Record) string {
	if rec.Suggestion == "" {
		return rec.Reason
	}

	return fmt.Sprintf("%s (did you mean %q?)", rec.Reason, rec.Suggestion)
}

func writeText(w io.Writer, rep Report, opts Options) error {
	p := newPalette(opts.NoColor)

	var b strings.Builder

	for _, fr := range rep.Files {
		b.WriteString(p.file.Sprint(fr.File))
		b.WriteByte('\n')

		tbl := table.NewWriter()
		tbl.SetStyle(table.StyleLight)
		tbl.Style().Options.DrawBorder = false
		tbl.Style().Options.SeparateColumns = false
		tbl.Style().Options.SeparateHeader = false
		tbl.AppendHeader(table.Row{"LINE", "IMPORT", "KIND", "REASON"})

		for _, rec := range fr.Records {
			tbl.AppendRow(table.Row{
				strconv.Itoa(rec.Line),
				p.specifier.Sprint(rec.Specifier),
				rec.Kind,
				reason(rec),
			})
		}

		b.WriteString(tbl.Render())
		b.WriteString("\n\n")
	}

	b.WriteString(summary(rep, p))
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("write text report: %w", err)
	}

	return nil
}

func summary(rep Report, p palette) string {
	stats := rep.Stats

	checked := fmt.Sprintf("%s checked in %s",
		english.Plural(stats.References, "import", "imports"),
		english.Plural(stats.Files, "file", "files"))

	skipped := ""
	if stats.Skipped > 0 {
		reasons := slices.Sorted(maps.Keys(stats.SkipReasons))
		parts := make([]string, 0, len(reasons))

		for _, reason := range reasons {
			parts = append(parts, fmt.Sprintf("%s %s", humanize.Comma(int64(stats.SkipReasons[reason])), reason))
		}

		skipped = p.dim.Sprintf(" (%s skipped: %s)", humanize.Comma(int64(stats.Skipped)), strings.Join(parts, ", "))
	}

	if stats.Hallucinated == 0 {
		return p.ok.Sprint("No hallucinated imports") + ", " + checked + skipped
	}

	return p.specifier.Sprint(english.Plural(stats.Hallucinated, "hallucinated import", "hallucinated imports")) +
		" in " + english.Plural(len(rep.Files), "file", "files") + ", " + checked + skipped
}
