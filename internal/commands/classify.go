package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/classify"
	"github.com/tally-dev/tally/internal/rules"
)

func newClassifyCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "classify <description>",
		Short: "Classify a description against the vendor rule table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			ruleSet, err := rules.Load(cfg.Rules.Path)
			if err != nil {
				return err
			}

			vendor, category, tag := classify.New(ruleSet).Classify(args[0])
			if vendor == "" && category == "" && tag == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "unclassified")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "vendor: %s\ncategory: %s\ntag: %s\n", vendor, category, tag)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "tally.yaml", "config file path")

	return cmd
}
