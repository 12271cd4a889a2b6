package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/ledger"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/report"
)

func newReportCommand() *cobra.Command {
	var configPath string
	var from, to string
	var methods []string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize the ledger by tag, category, and vendor",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			filter := report.Filter{Methods: methods}
			if filter.From, err = parseFilterDate(from); err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			if filter.To, err = parseFilterDate(to); err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			records, err := ledger.NewStore(cfg.Ledger.Path).Load()
			if err != nil {
				return err
			}

			sum := report.Summarize(records, filter)
			printSummary(cmd.OutOrStdout(), sum)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "tally.yaml", "config file path")
	cmd.Flags().StringVar(&from, "from", "", "start date (MM/DD/YY or YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (MM/DD/YY or YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&methods, "method", nil, "payment methods to include (repeatable)")

	return cmd
}

func parseFilterDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{model.DateFormat, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func printSummary(out io.Writer, sum *report.Summary) {
	fmt.Fprintf(out, "%d transactions\n", sum.Rows)
	printGroup(out, "By tag", sum.ByTag)
	printGroup(out, "By category", sum.ByCategory)
	printGroup(out, "By vendor", sum.ByVendor)
}

func printGroup(out io.Writer, title string, group []report.Line) {
	fmt.Fprintf(out, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, line := range group {
		key := line.Key
		if key == "" {
			key = "(unclassified)"
		}
		fmt.Fprintf(tw, "%s\t%s\n", key, line.Total.StringFixed(2))
	}
	tw.Flush()
}
