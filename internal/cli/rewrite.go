package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/perfreport/pkg/urlrewrite"
)

// rewriteCommand creates the rewrite command.
func (c *CLI) rewriteCommand() *cobra.Command {
	var patterns []string

	cmd := &cobra.Command{
		Use:   "rewrite <url>...",
		Short: "Apply URL replacement patterns",
		Long: `Apply sed-like replacement patterns (s/needle/replacement/flags) to each URL
and print the result. Patterns run in order, each on the previous output.

Flags: g (all matches), i (ignore case), m (multiline), L (literal needle).
Without --pattern, the patterns from the config file are used.`,
		Example: `  perfreport rewrite http://localhost:8080/docs -p 's#http://localhost:\d+#https://staging.example.com#'
  perfreport rewrite 'http://x/a?utm=1' -p 's/\?.*$//' -p 's/x/example.com/'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rw, err := urlrewrite.NewRewriter(c.patterns(patterns))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, url := range args {
				rewritten, err := rw.Rewrite(url)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, rewritten)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&patterns, "pattern", "p", nil, "replacement pattern (repeatable)")
	return cmd
}

// patterns returns the flag patterns, or the configured ones when no flag
// was given.
func (c *CLI) patterns(fromFlags []string) []string {
	if len(fromFlags) > 0 {
		return fromFlags
	}
	return c.config().Rewrite.Patterns
}
