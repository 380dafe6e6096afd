package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var category string
	var tag string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently organized files",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := ctx.client().History(cmd.Context(), limit, category, tag)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(resp.Entries) == 0 {
				fmt.Fprintln(out, "No matching history entries.")
				return nil
			}

			rows := make([][]string, 0, len(resp.Entries))
			for _, entry := range resp.Entries {
				tags := "-"
				if len(entry.Tags) > 0 {
					tags = strings.Join(entry.Tags, ", ")
				}
				rows = append(rows, []string{
					entry.MovedAt.Local().Format("2006-01-02 15:04"),
					entry.OriginalName,
					entry.Category,
					humanize.Bytes(uint64(entry.SizeBytes)),
					tags,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Moved", "File", "Category", "Size", "Tags"}, rows,
				alignLeft, alignLeft, alignLeft, alignRight, alignLeft))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show")
	cmd.Flags().StringVar(&category, "category", "", "Only entries for this category")
	cmd.Flags().StringVar(&tag, "tag", "", "Only entries carrying this tag")
	return cmd
}

func newFilesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "files [path]",
		Short: "List the organized folder tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			resp, err := ctx.client().Files(cmd.Context(), path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(resp.Entries) == 0 {
				fmt.Fprintln(out, "Empty folder.")
				return nil
			}

			rows := make([][]string, 0, len(resp.Entries))
			for _, entry := range resp.Entries {
				kind := "file"
				size := humanize.Bytes(uint64(entry.SizeBytes))
				if entry.IsDir {
					kind = "dir"
					size = "-"
				}
				rows = append(rows, []string{entry.Name, kind, size,
					entry.ModifiedAt.Local().Format("2006-01-02 15:04")})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Name", "Type", "Size", "Modified"}, rows,
				alignLeft, alignLeft, alignRight, alignLeft))
			return nil
		},
	}
}
