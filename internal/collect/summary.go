package collect

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"
)

const (
	summaryGroupHeaderConstant        = "Group"
	summaryRepositoriesHeaderConstant = "Repositories"
	summaryContributorsHeaderConstant = "Contributors"
	summaryCommitsHeaderConstant      = "Commits"
	summaryReportHeaderConstant       = "Report"
	summaryCaptionTemplateConstant    = "Completed in %s"
	summaryLineTerminatorConstant     = "\n"
)

// SummaryRenderer prints the per-group totals of a collection run as a table.
type SummaryRenderer struct {
	writer  io.Writer
	colored bool
}

// NewSummaryRenderer constructs a renderer for writer. Colors are enabled only when writer is a terminal.
func NewSummaryRenderer(writer io.Writer) SummaryRenderer {
	colored := false
	if file, isFile := writer.(*os.File); isFile {
		colored = term.IsTerminal(int(file.Fd()))
	}
	return SummaryRenderer{writer: writer, colored: colored}
}

// Render writes the summary table.
func (renderer SummaryRenderer) Render(result Result) error {
	tableWriter := table.NewWriter()
	if renderer.colored {
		tableWriter.SetStyle(table.StyleColoredBright)
	} else {
		tableWriter.SetStyle(table.StyleLight)
	}
	tableWriter.Style().Format.Footer = text.FormatDefault

	tableWriter.AppendHeader(table.Row{
		summaryGroupHeaderConstant,
		summaryRepositoriesHeaderConstant,
		summaryContributorsHeaderConstant,
		summaryCommitsHeaderConstant,
		summaryReportHeaderConstant,
	})
	for _, group := range result.Groups {
		tableWriter.AppendRow(summaryRow(group))
	}
	tableWriter.AppendFooter(summaryRow(result.Combined))
	tableWriter.SetCaption(summaryCaptionTemplateConstant, result.Elapsed.Round(time.Second))

	_, writeError := fmt.Fprint(renderer.writer, tableWriter.Render()+summaryLineTerminatorConstant)
	return writeError
}

func summaryRow(summary GroupSummary) table.Row {
	return table.Row{
		summary.Name,
		humanize.Comma(int64(summary.Repositories)),
		humanize.Comma(int64(summary.Contributors)),
		humanize.Comma(int64(summary.Commits)),
		summary.ReportPath,
	}
}
