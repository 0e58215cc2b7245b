// Package main provides the entry point for the scamguard CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/scamguard/internal/config"
)

// NewRootCmd creates the root command for scamguard.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scamguard",
		Short: "Heuristic scam detection for web pages",
		Long: `scamguard scores web pages for scam signals and decides whether to warn
about or block them.

A page is scored from its URL and visible text: missing HTTPS, suspicious
top-level domains, URL shorteners, blacklisted hosts and fraud keywords each
add to the score. Scores of 40 and above are a warning, 70 and above danger.
Whitelisted domains are always safe.

Lists, reports and scan history are stored under the XDG data directory.
Environment variables from ./.env are loaded before any command runs.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return config.LoadDotEnv()
		},
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .scamguard in current or home directory)")
	cmd.PersistentFlags().String("data-dir", "",
		"Directory holding the scamguard database (default: XDG data directory)")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewRulesCmd())
	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewWatchCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
