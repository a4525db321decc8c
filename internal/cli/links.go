package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/perfreport/pkg/artifacts"
	"github.com/matzehuels/perfreport/pkg/errors"
	"github.com/matzehuels/perfreport/pkg/render"
	"github.com/matzehuels/perfreport/pkg/urlrewrite"
)

// linksCommand creates the links command.
func (c *CLI) linksCommand() *cobra.Command {
	var patterns []string

	cmd := &cobra.Command{
		Use:   "links",
		Short: "Write links.json mapping tested URLs to rewritten links",
		Long: `For every saved result, rewrite its requested URL with the replacement
patterns and write the mapping to links.json in the artifact directory.
The file is replaced on every run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rw, err := urlrewrite.NewRewriter(c.patterns(patterns))
			if err != nil {
				return err
			}

			store, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			results, err := store.LoadSaved(cmd.Context(), "")
			if err != nil {
				return err
			}
			links, skipped, err := buildLinks(results, rw)
			if err != nil {
				return err
			}
			if err := store.WriteURLLinkMap(cmd.Context(), links); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if rw.Len() == 0 {
				printWarning(out, "No rewrite patterns configured; links point at the tested URLs")
			}
			printSuccess(out, "Wrote %d links", len(links))
			if skipped > 0 {
				printDetail(out, "Skipped %d results without a valid requested URL", skipped)
			}
			printFile(out, artifactPath(store, artifacts.LinksName))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&patterns, "pattern", "p", nil, "replacement pattern (repeatable)")
	return cmd
}

// buildLinks maps each result's requested URL to its rewritten form.
// Results that do not decode or lack a valid http(s) URL are counted as
// skipped.
func buildLinks(results []artifacts.Result, rw *urlrewrite.Rewriter) (map[string]string, int, error) {
	links := make(map[string]string, len(results))
	skipped := 0
	for _, r := range results {
		s, err := render.Summarize(r.Raw)
		if err != nil || errors.ValidateURL(s.RequestedURL) != nil {
			skipped++
			continue
		}
		link, err := rw.Rewrite(s.RequestedURL)
		if err != nil {
			return nil, 0, err
		}
		links[s.RequestedURL] = link
	}
	return links, skipped, nil
}
