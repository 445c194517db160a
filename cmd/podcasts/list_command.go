package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/northkevin/podcasts-cli/internal/catalog"
	"github.com/northkevin/podcasts-cli/internal/notes"
)

const listTitleWidth = 60

func newListPodcastsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list-podcasts",
		Short: "List catalogued episodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := ctx.openCatalog()
			if err != nil {
				return err
			}
			entries := cat.Entries()
			if asJSON {
				if entries == nil {
					entries = []catalog.Entry{}
				}
				return writeJSON(cmd, entries)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No podcasts in catalog")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					e.EpisodeID,
					string(e.Status),
					string(e.Platform),
					notes.FormatShort(e.DurationSeconds),
					truncate(e.Title, listTitleWidth),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Status", "Platform", "Duration", "Title"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			fmt.Fprintf(out, "%d episode(s) in %s\n", len(entries), cat.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the catalog entries as JSON")
	return cmd
}

func truncate(value string, width int) string {
	runes := []rune(value)
	if len(runes) <= width {
		return value
	}
	return string(runes[:width-1]) + "…"
}
