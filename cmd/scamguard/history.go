package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/scamguard/internal/database"
	"github.com/nao1215/scamguard/internal/model"
	"github.com/nao1215/scamguard/internal/report"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [domain]",
		Short: "Show recent scan results",
		Long: `History prints stored scan results, newest first. Only results inside the
retention window are shown unless --all is given.

Examples:
  # Recent scans of every domain
  scamguard history

  # Recent scans of one domain as JSON
  scamguard history -j scam.example

  # Delete results older than the retention window
  scamguard history --purge

  # Show list edits, reports, notifications and blocks
  scamguard history --activity`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of entries (0 for all)")
	cmd.Flags().BoolP("all", "a", false, "Include results outside the retention window")
	cmd.Flags().Bool("purge", false, "Delete results outside the retention window")
	cmd.Flags().Bool("activity", false, "Show the activity log instead of scan results")
	cmd.Flags().BoolP("json", "j", false, "Output JSON")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	purge, err := cmd.Flags().GetBool("purge")
	if err != nil {
		return err
	}
	activity, err := cmd.Flags().GetBool("activity")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	if err := e.openDB(cmd.Context()); err != nil {
		return err
	}
	defer e.close()

	ctx := cmd.Context()
	now := time.Now()
	cutoff := now.Add(-e.settings().Retention)

	switch {
	case purge:
		n, err := e.db.PurgeScanRecordsBefore(ctx, cutoff)
		if err != nil {
			return err
		}
		fmt.Fprintf(e.out, "Removed %d expired scan results\n", n)
		return nil

	case activity:
		entries, err := e.db.ListActivity(ctx, limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(e.out, "No activity.")
			return nil
		}
		tw := tabwriter.NewWriter(e.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TIME\tKIND\tSUBJECT\tDETAIL")
		for _, a := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.At.Local().Format("2006-01-02 15:04:05"), a.Kind, a.Subject, a.Detail)
		}
		return tw.Flush()
	}

	filter := database.HistoryFilter{Limit: limit}
	if len(args) == 1 {
		filter.Domain = model.HostnameASCII(args[0])
	}
	if !all {
		filter.Since = cutoff
	}

	records, err := e.db.ScanHistory(ctx, filter)
	if err != nil {
		return err
	}

	entries := make([]report.Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, report.EntryFromRecord(r))
	}
	summary := report.NewSummary(entries, now)

	if asJSON {
		_, err = report.NewJSONWriter(e.out, report.WithPrettyPrint()).Write(summary)
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(e.out, "No scan results.")
		return nil
	}
	_, err = report.NewSimpleWriter(e.out, report.WithVerbose(true)).Write(summary)
	return err
}
