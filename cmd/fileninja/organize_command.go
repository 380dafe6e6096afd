package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fileninja/internal/config"
	"fileninja/internal/history"
	"fileninja/internal/logging"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "organize [folder]",
		Short: "Organize existing files in a folder (or all watched folders)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder := ""
			if len(args) == 1 {
				folder = args[0]
			}

			if !local {
				resp, err := ctx.client().Organize(cmd.Context(), folder)
				if err == nil {
					if resp.Started {
						fmt.Fprintln(cmd.OutOrStdout(), "Organize run started; check `fileninja history` for results.")
					}
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Daemon unavailable (%v); organizing locally.\n", err)
			}

			return organizeLocally(cmd, ctx, folder)
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Organize without the daemon, even if one is running")
	return cmd
}

func organizeLocally(cmd *cobra.Command, ctx *commandContext, folder string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	roots := cfg.WatchedFolders
	if folder != "" {
		expanded, err := config.ExpandPath(folder)
		if err != nil {
			return fmt.Errorf("resolve folder: %w", err)
		}
		roots = []string{expanded}
	}

	store, err := history.Open(cfg)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	parts, err := buildComponents(cfg, store, logging.NewNop())
	if err != nil {
		return err
	}

	summary := parts.scanner.Scan(cmd.Context(), roots)
	fmt.Fprintf(cmd.OutOrStdout(), "Organized %d file(s), skipped %d, failed %d.\n",
		summary.Organized, summary.Skipped, summary.Failed)
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed to organize", summary.Failed)
	}
	return nil
}
