package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/northkevin/podcasts-cli/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var list bool

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the log of the previous run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ctx.config.Paths.LogDir
			if dir == "" {
				return errors.New("file logging is disabled; set paths.log_dir in the config file")
			}
			current := ""
			if ctx.run != nil {
				current = ctx.run.LogPath
			}
			out := cmd.OutOrStdout()

			if list {
				runs, err := logs.List(dir)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(runs))
				for _, r := range runs {
					if r.Path == current {
						continue
					}
					rows = append(rows, []string{filepath.Base(r.Path), humanize.Bytes(uint64(r.Size))})
				}
				if len(rows) == 0 {
					fmt.Fprintln(out, "No run logs found")
					return nil
				}
				fmt.Fprintln(out, renderTable([]string{"Log", "Size"}, rows, []columnAlignment{alignLeft, alignRight}))
				return nil
			}

			latest, err := logs.Latest(dir, current)
			if err != nil {
				return err
			}
			tail, err := logs.Tail(latest.Path, lines)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "==> %s <==\n", latest.Path)
			for _, line := range tail {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of lines to show (0 for all)")
	cmd.Flags().BoolVar(&list, "list", false, "List run logs instead of showing one")
	return cmd
}
