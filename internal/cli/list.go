package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/perfreport/pkg/artifacts"
	"github.com/matzehuels/perfreport/pkg/render"
)

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved Lighthouse results",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			results, err := store.LoadSaved(cmd.Context(), from)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(results) == 0 {
				printInfo(out, "No saved results")
				return nil
			}

			slices.SortFunc(results, func(a, b artifacts.Result) int {
				return artifacts.CompareIDs(a.ID, b.ID)
			})

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, summaryRow(r))
			}
			fmt.Fprintln(out, renderTable([]string{"ID", "Fetched", "URL", "Perf", "A11y", "BP", "SEO"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "read results from this file or directory instead of the store")
	return cmd
}

// summaryRow formats one result for the list table. Results that cannot
// be decoded still get a row so the ID stays visible.
func summaryRow(r artifacts.Result) []string {
	id := r.ID
	if id == "" {
		id = "-"
	}
	s, err := render.Summarize(r.Raw)
	if err != nil {
		return []string{id, "-", StyleWarning.Render("invalid JSON"), "", "", "", ""}
	}

	fetched := "-"
	if !s.FetchTime.IsZero() {
		fetched = s.FetchTime.Local().Format("2006-01-02 15:04")
	}
	url := s.RequestedURL
	if url == "" {
		url = s.FinalURL
	}

	scores := map[string]*int{}
	for _, cat := range s.Categories {
		scores[cat.ID] = cat.Score
	}
	return []string{
		id, fetched, url,
		formatScore(scores["performance"]),
		formatScore(scores["accessibility"]),
		formatScore(scores["best-practices"]),
		formatScore(scores["seo"]),
	}
}
