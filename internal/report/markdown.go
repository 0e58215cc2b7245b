package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/scamguard/internal/model"
)

// MarkdownWriter outputs reports in Markdown format for sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the summary in Markdown format.
func (w *MarkdownWriter) Write(summary *Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeAlert(md, summary)
	for _, e := range summary.Entries {
		w.writeEntry(md, e)
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title, the status table and the chart.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *Summary) {
	md.H1("Scamguard Report")
	md.PlainText("")
	md.PlainTextf("Generated %s", summary.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	md.PlainText("")

	rows := [][]string{
		{"🔴 Danger", strconv.Itoa(summary.Danger)},
		{"🟡 Warning", strconv.Itoa(summary.Warning)},
		{"🟢 Safe", strconv.Itoa(summary.Safe)},
	}
	if summary.Failed > 0 {
		rows = append(rows, []string{"⚪ Failed", strconv.Itoa(summary.Failed)})
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(summary.Total()) + "**"})
	md.Table(markdown.TableSet{
		Header: []string{"Status", "Pages"},
		Rows:   rows,
	})
	md.PlainText("")

	if summary.Total() > 1 {
		w.writePieChart(md, summary)
	}
}

// writePieChart writes a mermaid pie chart of the status distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Page Status Distribution"),
		piechart.WithShowData(true),
	)

	if summary.Danger > 0 {
		chart.LabelAndIntValue("Danger", uint64(summary.Danger))
	}
	if summary.Warning > 0 {
		chart.LabelAndIntValue("Warning", uint64(summary.Warning))
	}
	if summary.Safe > 0 {
		chart.LabelAndIntValue("Safe", uint64(summary.Safe))
	}
	if summary.Failed > 0 {
		chart.LabelAndIntValue("Failed", uint64(summary.Failed))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes a GitHub alert matching the worst status.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *Summary) {
	switch summary.Worst() {
	case model.StatusDanger:
		md.Cautionf("%d page(s) look like scams. Do not enter personal or payment details.", summary.Danger)
	case model.StatusWarning:
		md.Warningf("%d page(s) show scam signals. Proceed with care.", summary.Warning)
	case model.StatusSafe:
		md.Tip("No scam signals detected.")
	default:
		md.Note("No page could be scanned.")
	}
	md.PlainText("")
}

// writeEntry writes one page section.
func (w *MarkdownWriter) writeEntry(md *markdown.Markdown, e Entry) {
	md.H2(e.URL)
	md.PlainText("")

	if e.Result == nil {
		md.PlainTextf("Scan failed: %s", e.Error)
		md.PlainText("")
		return
	}

	rows := [][]string{
		{"Status", statusIndicator(e.Result.Status) + " " + e.Result.Status.String()},
		{"Score", strconv.Itoa(e.Result.Score)},
	}
	if e.Domain != "" {
		rows = append(rows, []string{"Domain", "`" + e.Domain + "`"})
	}
	if e.Title != "" {
		rows = append(rows, []string{"Title", e.Title})
	}
	if e.Decision != nil {
		rows = append(rows, []string{"Action", actionText(e)})
	}
	if e.SecretForms > 0 {
		rows = append(rows, []string{"Sensitive forms", strconv.Itoa(e.SecretForms)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(e.Result.Issues) > 0 {
		md.H3("Issues")
		md.PlainText("")
		md.BulletList(e.Result.Issues...)
		md.PlainText("")
	}
	if e.Excerpt != "" {
		md.Details("Excerpt", e.Excerpt)
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [scamguard](https://github.com/nao1215/scamguard)*")
}
