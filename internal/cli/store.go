package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// clearCommand creates the clear command.
func (c *CLI) clearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all saved results and reports",
		Long: `Remove every saved Lighthouse result (lhr-*.json) and rendered report
(lhr-*.html). Other files in the directory, such as assertion results and
the link map, are left in place.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			dir, err := store.Directory(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if removed == 0 {
				printInfo(out, "Nothing to clear")
				return nil
			}
			printSuccess(out, "Cleared %d saved files", removed)
			printDetail(out, "Directory: %s", dir)
			return nil
		},
	}
}

// pathCommand creates the path command.
func (c *CLI) pathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the artifact directory, creating it if needed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			dir, err := store.Directory(cmd.Context())
			if err != nil {
				return fmt.Errorf("get artifact dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
