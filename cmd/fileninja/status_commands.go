package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the daemon's runtime state",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := ctx.client().Status(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Running:          %s (pid %d)\n", yesNo(status.Running), status.PID)
			fmt.Fprintf(out, "Auto-organize:    %s\n", yesNo(status.AutoOrganize))
			fmt.Fprintf(out, "Pending files:    %d\n", status.PendingCount)
			fmt.Fprintf(out, "Organized folder: %s\n", status.OrganizedFolder)
			fmt.Fprintf(out, "Database:         %s\n", status.DatabasePath)
			if len(status.WatchedRoots) > 0 {
				fmt.Fprintf(out, "Watching:         %s\n", strings.Join(status.WatchedRoots, ", "))
			} else {
				fmt.Fprintln(out, "Watching:         (nothing)")
			}
			return nil
		},
	}
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show organization statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := ctx.client().Stats(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			org := stats.Organization
			fmt.Fprintf(out, "Organized tree: %d file(s), %s\n",
				org.TotalFiles, humanize.Bytes(uint64(org.TotalSize)))

			if len(org.ByCategory) > 0 {
				rows := make([][]string, 0, len(org.ByCategory))
				for _, name := range org.Categories() {
					entry := org.ByCategory[name]
					rows = append(rows, []string{
						name,
						fmt.Sprintf("%d", entry.Count),
						humanize.Bytes(uint64(entry.Size)),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Category", "Files", "Size"}, rows,
					alignLeft, alignRight, alignRight))
			}

			hist := stats.History
			fmt.Fprintf(out, "\nLifetime moves: %d file(s), %s\n",
				hist.TotalMoves, humanize.Bytes(uint64(hist.TotalBytes)))

			if len(hist.PopularTags) > 0 {
				parts := make([]string, 0, len(hist.PopularTags))
				for _, tag := range hist.PopularTags {
					parts = append(parts, fmt.Sprintf("%s (%d)", tag.Tag, tag.Count))
				}
				fmt.Fprintf(out, "Popular tags:   %s\n", strings.Join(parts, ", "))
			}
			if len(hist.LastSevenDays) > 0 {
				days := make([]string, 0, len(hist.LastSevenDays))
				for _, day := range hist.LastSevenDays {
					days = append(days, fmt.Sprintf("%s: %d", day.Date, day.Count))
				}
				sort.Strings(days)
				fmt.Fprintf(out, "Last 7 days:    %s\n", strings.Join(days, "  "))
			}
			return nil
		},
	}
}
