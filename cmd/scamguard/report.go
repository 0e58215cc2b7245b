package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nao1215/scamguard/internal/guard"
	"github.com/nao1215/scamguard/internal/model"
)

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Submit and list scam reports",
		Long: `Report records URLs that users flag as scams.

When auto_blacklist_on_report is enabled, the reported domain is added to
the blacklist unless an existing entry already covers it, and the blocking
rules are recompiled.

Examples:
  scamguard report submit http://free-scholarship-ng.tk/apply --reason "asks for BVN"
  scamguard report list`,
	}

	cmd.AddCommand(newReportSubmitCmd())
	cmd.AddCommand(newReportListCmd())

	return cmd
}

// newReportSubmitCmd creates "report submit <url>".
func newReportSubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit <url>",
		Short: "Report a URL as a scam",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reason, err := cmd.Flags().GetString("reason")
			if err != nil {
				return err
			}
			email, err := cmd.Flags().GetString("email")
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

			svc := guard.NewReportService(e.db, e.keeper(), e.settings(), e.logger)
			stored, err := svc.Submit(cmd.Context(), model.Report{
				ReportedURL:   args[0],
				Reason:        reason,
				ReporterEmail: email,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(e.out, "Report #%d stored for %s\n", stored.ID, stored.Domain)
			if stored.Blacklisted {
				fmt.Fprintf(e.out, "%s added to blacklist\n", stored.Domain)
			}
			return nil
		},
	}

	cmd.Flags().StringP("reason", "r", "", "Why the URL is a scam (required)")
	cmd.Flags().StringP("email", "e", "", "Contact address of the reporter")

	return cmd
}

// newReportListCmd creates "report list".
func newReportListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print received reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, err := cmd.Flags().GetInt("limit")
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

			reports, err := e.db.ListReports(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(reports) == 0 {
				fmt.Fprintln(e.out, "No reports.")
				return nil
			}

			tw := tabwriter.NewWriter(e.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tREPORTED\tDOMAIN\tBLACKLISTED\tREASON")
			for _, r := range reports {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%t\t%s\n",
					r.ID, r.ReportedAt.Local().Format("2006-01-02 15:04"), r.Domain, r.Blacklisted, r.Reason)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of reports (0 for all)")

	return cmd
}
