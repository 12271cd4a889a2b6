package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/config"
)

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new tally project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, cmd.OutOrStdout())
		},
	}
	return cmd
}

func runInit(dir string, out io.Writer) error {
	dirs := []string{
		"import",
		filepath.Join("import", "processed"),
		"logs",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default()
	if err := config.Save(filepath.Join(dir, "tally.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Seed an empty rule table so classification starts in a known state.
	rulesPath := filepath.Join(dir, cfg.Rules.Path)
	if _, err := os.Stat(rulesPath); os.IsNotExist(err) {
		if err := os.WriteFile(rulesPath, []byte("keyword,vendor,category,tag\n"), 0o644); err != nil {
			return fmt.Errorf("writing rule table: %w", err)
		}
	}

	fmt.Fprintf(out, "Initialized tally project in %s\n", dir)
	return nil
}
