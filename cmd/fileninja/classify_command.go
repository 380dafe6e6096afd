package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fileninja/internal/classify"
	"fileninja/internal/config"
	"fileninja/internal/logging"
	"fileninja/internal/organize"
)

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <name>...",
		Short: "Preview where file names would be organized, without moving anything",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			rules, err := config.LoadRules(cfg)
			if err != nil {
				return fmt.Errorf("load rules: %w", err)
			}
			classifier := classify.New(rules)
			relocator := organize.NewRelocator(cfg.OrganizedFolder, classifier, nil, logging.NewNop())

			rows := make([][]string, 0, len(args))
			for _, name := range args {
				result := classifier.Classify(name)
				tags := "-"
				if len(result.Tags) > 0 {
					tags = strings.Join(result.Tags, ", ")
				}
				rows = append(rows, []string{name, relocator.DestinationFolder(result), tags})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"File", "Destination", "Tags"}, rows))
			return nil
		},
	}
}
