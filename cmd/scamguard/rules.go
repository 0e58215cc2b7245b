package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/scamguard/internal/blocking"
	"github.com/nao1215/scamguard/internal/guard"
)

// NewRulesCmd creates the rules command.
func NewRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Work with browser blocking rules",
	}
	cmd.AddCommand(newRulesCompileCmd())
	return cmd
}

// newRulesCompileCmd creates "rules compile".
func newRulesCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile the blacklist into declarativeNetRequest rules",
		Long: `Compile turns every blacklist entry that is not whitelisted into a
redirect rule for the browser's declarativeNetRequest API. Blocked
navigations are sent to the configured redirect target.

Without --output the rules are printed as JSON. With --output the file is
replaced atomically and the recompilation is recorded in the activity log.

Examples:
  scamguard rules compile
  scamguard rules compile -o extension/rules.json`,
		Args: cobra.NoArgs,
		RunE: runRulesCompileCmd,
	}

	cmd.Flags().StringP("output", "o", "",
		"Write the rules to this file instead of stdout")

	return cmd
}

// runRulesCompileCmd executes the rules compile command.
func runRulesCompileCmd(cmd *cobra.Command, _ []string) error {
	output, err := cmd.Flags().GetString("output")
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

	if output == "" {
		rules, err := e.keeper().Compile(cmd.Context())
		if err != nil {
			return err
		}
		enc := json.NewEncoder(e.out)
		enc.SetIndent("", "  ")
		return enc.Encode(rules)
	}

	updater := blocking.NewUpdater(blocking.NewFileSink(output), blocking.WithLogger(e.logger))
	keeper := guard.NewKeeper(e.db, e.settings(),
		guard.WithUpdater(updater),
		guard.WithKeeperLogger(e.logger),
	)
	rules, err := keeper.Sync(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Wrote %d rules to %s\n", len(rules), output)
	return nil
}
