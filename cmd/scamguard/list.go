package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/scamguard/internal/database"
	"github.com/nao1215/scamguard/internal/domain"
)

// NewListCmd creates the list command and its subcommands.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Manage the whitelist and blacklist",
		Long: `List shows and edits the stored whitelist and blacklist.

Patterns are hostnames ("scam.example") or wildcards ("*.scam.example")
that match the domain itself and every subdomain. A leading "www." and
letter case are ignored. Whitelisted domains are never flagged.

Examples:
  scamguard list show
  scamguard list add blacklist "*.scam.example" free-money.tk
  scamguard list remove whitelist bank.example
  scamguard list check login.scam.example`,
	}

	cmd.AddCommand(newListShowCmd())
	cmd.AddCommand(newListEditCmd("add", "Add patterns to a list"))
	cmd.AddCommand(newListEditCmd("remove", "Remove patterns from a list"))
	cmd.AddCommand(newListCheckCmd())

	return cmd
}

// newListShowCmd creates "list show [whitelist|blacklist]".
func newListShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [whitelist|blacklist]",
		Short: "Print list entries",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lists := []database.List{database.Whitelist, database.Blacklist}
			if len(args) == 1 {
				l, err := database.ParseList(args[0])
				if err != nil {
					return err
				}
				lists = []database.List{l}
			}

			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			if err := e.openDB(cmd.Context()); err != nil {
				return err
			}
			defer e.close()

			for _, l := range lists {
				entries, err := e.db.ListEntries(cmd.Context(), l)
				if err != nil {
					return err
				}
				fmt.Fprintf(e.out, "%s (%d)\n", l, len(entries))
				for _, p := range entries {
					fmt.Fprintf(e.out, "  %s\n", p)
				}
			}
			return nil
		},
	}
}

// newListEditCmd creates "list add" or "list remove". Every edit
// recompiles the blocking rules.
func newListEditCmd(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <whitelist|blacklist> <pattern>...",
		Short: short,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := database.ParseList(args[0])
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

			keeper := e.keeper()
			edit := keeper.Add
			if action == "remove" {
				edit = keeper.Remove
			}

			for _, pattern := range args[1:] {
				changed, err := edit(cmd.Context(), list, pattern)
				if err != nil && !changed {
					return fmt.Errorf("failed to %s %q: %w", action, pattern, err)
				}
				if err != nil {
					e.logger.Warn("list updated but blocking rules not published", "pattern", pattern, "error", err)
				}

				normalized := domain.Normalize(pattern)
				switch {
				case changed && action == "add":
					fmt.Fprintf(e.out, "added %s to %s\n", normalized, list)
				case changed:
					fmt.Fprintf(e.out, "removed %s from %s\n", normalized, list)
				case action == "add":
					fmt.Fprintf(e.out, "%s is already in %s\n", normalized, list)
				default:
					fmt.Fprintf(e.out, "%s is not in %s\n", normalized, list)
				}
			}
			return nil
		},
	}
}

// newListCheckCmd creates "list check <domain>".
func newListCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <domain>",
		Short: "Show which lists match a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd)
			if err != nil {
				return err
			}
			if err := e.openDB(cmd.Context()); err != nil {
				return err
			}
			defer e.close()

			lists, err := e.db.Lists(cmd.Context())
			if err != nil {
				return err
			}

			host := domain.Normalize(args[0])
			m := domain.Resolve(host, lists)
			fmt.Fprintf(e.out, "domain:      %s\n", host)
			fmt.Fprintf(e.out, "whitelisted: %t\n", m.Whitelisted)
			fmt.Fprintf(e.out, "blacklisted: %t\n", m.Blacklisted)

			verdict := "unlisted"
			switch {
			case m.Whitelisted:
				verdict = "trusted"
			case m.Blacklisted:
				verdict = "blocked"
			}
			fmt.Fprintf(e.out, "verdict:     %s\n", verdict)
			return nil
		},
	}
}
