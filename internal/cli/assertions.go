package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/perfreport/pkg/artifacts"
	"github.com/matzehuels/perfreport/pkg/errors"
)

// assertionsCommand creates the assertions command group.
func (c *CLI) assertionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assertions",
		Short: "Show or replace stored assertion results",
	}

	cmd.AddCommand(c.assertionsShowCommand())
	cmd.AddCommand(c.assertionsImportCommand())

	return cmd
}

// assertionsShowCommand creates the "assertions show" subcommand.
func (c *CLI) assertionsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print stored assertion results, one JSON record per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			results, err := store.LoadAssertionResults(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(results) == 0 {
				printInfo(out, "No assertion results")
				return nil
			}
			for _, r := range results {
				var buf bytes.Buffer
				if err := json.Compact(&buf, r); err != nil {
					return err
				}
				fmt.Fprintln(out, buf.String())
			}
			return nil
		},
	}
}

// assertionsImportCommand creates the "assertions import" subcommand.
func (c *CLI) assertionsImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file|-]",
		Short: "Replace stored assertion results with a JSON array",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := "-"
			if len(args) == 1 {
				src = args[0]
			}
			data, err := readInput(cmd, src)
			if err != nil {
				return err
			}
			var results []json.RawMessage
			if err := json.Unmarshal(data, &results); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "assertion results must be a JSON array")
			}

			store, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SaveAssertionResults(cmd.Context(), results); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSuccess(out, "Stored %d assertion results", len(results))
			printFile(out, artifactPath(store, artifacts.AssertionResultsName))
			return nil
		},
	}
}
