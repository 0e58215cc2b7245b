package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/scamguard/internal/model"
)

// SimpleWriter outputs human-readable text reports for terminal display.
type SimpleWriter struct {
	baseWriter

	// verbose adds title, excerpt and form details.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the summary in human-readable format.
func (w *SimpleWriter) Write(summary *Summary) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, summary)
	for _, e := range summary.Entries {
		w.writeEntry(&sb, e)
	}
	if summary.Total() > 1 {
		w.writeTotals(&sb, summary)
	}

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report banner.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, summary *Summary) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         SCAMGUARD REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "Generated: %s\n\n", summary.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
}

// writeEntry writes one scanned page.
func (w *SimpleWriter) writeEntry(sb *strings.Builder, e Entry) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "URL:     %s\n", e.URL)

	if e.Result == nil {
		fmt.Fprintf(sb, "Status:  FAILED - %s\n\n", e.Error)
		return
	}

	fmt.Fprintf(sb, "Status:  [%s] %s (score %d)\n",
		statusIndicator(e.Result.Status),
		strings.ToUpper(e.Result.Status.String()),
		e.Result.Score,
	)
	if e.Decision != nil {
		fmt.Fprintf(sb, "Action:  %s\n", actionText(e))
	}
	if w.verbose {
		if e.Title != "" {
			fmt.Fprintf(sb, "Title:   %s\n", e.Title)
		}
		if e.SecretForms > 0 {
			fmt.Fprintf(sb, "Forms:   %d asking for passwords, card data or codes\n", e.SecretForms)
		}
		if e.Excerpt != "" {
			fmt.Fprintf(sb, "Excerpt: %s\n", e.Excerpt)
		}
		if !e.ScannedAt.IsZero() {
			fmt.Fprintf(sb, "Scanned: %s\n", e.ScannedAt.Format("2006-01-02 15:04:05 MST"))
		}
	}

	if len(e.Result.Issues) == 0 {
		sb.WriteString("Issues:  none\n\n")
		return
	}
	sb.WriteString("Issues:\n")
	for _, issue := range e.Result.Issues {
		fmt.Fprintf(sb, "  * %s\n", issue)
	}
	sb.WriteString("\n")
}

// writeTotals writes status counts for multi-page reports.
func (w *SimpleWriter) writeTotals(sb *strings.Builder, summary *Summary) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "  DANGER:  %d\n", summary.Danger)
	fmt.Fprintf(sb, "  WARNING: %d\n", summary.Warning)
	fmt.Fprintf(sb, "  SAFE:    %d\n", summary.Safe)
	if summary.Failed > 0 {
		fmt.Fprintf(sb, "  FAILED:  %d\n", summary.Failed)
	}
	fmt.Fprintf(sb, "  TOTAL:   %d pages\n", summary.Total())
}

// statusIndicator returns a visual indicator for the status.
func statusIndicator(s model.Status) string {
	switch s {
	case model.StatusDanger:
		return "!!!"
	case model.StatusWarning:
		return "!"
	case model.StatusSafe:
		return "ok"
	default:
		return "?"
	}
}

// actionText describes the decision in a few words.
func actionText(e Entry) string {
	d := e.Decision
	parts := make([]string, 0, 2)
	if d.Block {
		parts = append(parts, "block, redirect to "+d.RedirectTo)
	}
	if d.Notify {
		parts = append(parts, "notify")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "; ")
}
