package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/perfreport/pkg/errors"
)

// reportCommand creates the report command.
func (c *CLI) reportCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "report [id]",
		Short: "Print a rendered HTML report",
		Long: `Print the rendered HTML report for a saved result. Without an ID the
most recent result is used. With --out the report is written to a file.`,
		Example: `  perfreport report
  perfreport report lhr-1700000000000 -o report.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			var id string
			if len(args) == 1 {
				id = args[0]
			} else {
				ids, err := store.ListSaved(cmd.Context())
				if err != nil {
					return err
				}
				if len(ids) == 0 {
					return errors.New(errors.ErrCodeNotFound, "no saved results")
				}
				id = ids[len(ids)-1]
			}

			html, err := store.LoadReport(cmd.Context(), id)
			if err != nil {
				return err
			}
			if out == "" {
				fmt.Fprint(cmd.OutOrStdout(), html)
				return nil
			}
			if err := os.WriteFile(out, []byte(html), 0644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			printSuccess(cmd.OutOrStdout(), "Wrote report %s", id)
			printFile(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the report to this file")
	return cmd
}
