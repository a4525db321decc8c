package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/perfreport/pkg/artifacts"
)

// saveCommand creates the save command.
func (c *CLI) saveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save [file|-]",
		Short: "Save a Lighthouse result and render its HTML report",
		Long: `Save a Lighthouse result (JSON) verbatim and write a rendered HTML report
next to it. Reads from stdin when the argument is "-" or omitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := "-"
			if len(args) == 1 {
				src = args[0]
			}
			raw, err := readInput(cmd, src)
			if err != nil {
				return err
			}

			store, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			prog := newProgress(c.Logger)
			id, err := store.Save(cmd.Context(), raw)
			if err != nil {
				if id != "" {
					printWarning(cmd.ErrOrStderr(), "Raw result kept as %s", artifactPath(store, artifacts.RawResultName(id)))
				}
				return err
			}
			prog.done("Saved " + id)

			out := cmd.OutOrStdout()
			printSuccess(out, "Saved %s", id)
			printFile(out, artifactPath(store, artifacts.RawResultName(id)))
			printFile(out, artifactPath(store, artifacts.ReportName(id)))
			return nil
		},
	}
}

// readInput reads src, treating "-" as the command's stdin.
func readInput(cmd *cobra.Command, src string) ([]byte, error) {
	if src == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src, err)
	}
	return data, nil
}
