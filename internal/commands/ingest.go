package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/classify"
	"github.com/tally-dev/tally/internal/config"
	"github.com/tally-dev/tally/internal/ingest"
	"github.com/tally-dev/tally/internal/ledger"
	"github.com/tally-dev/tally/internal/logging"
	"github.com/tally-dev/tally/internal/rules"
	"github.com/tally-dev/tally/internal/runlog"
	"github.com/tally-dev/tally/internal/source"
)

func newIngestCommand() *cobra.Command {
	var configPath string
	var yes bool
	var flip bool

	cmd := &cobra.Command{
		Use:   "ingest [file...]",
		Short: "Ingest statement exports into the ledger",
		Long: `Ingest normalizes one or more statement exports (CSV or spreadsheet)
into canonical ledger records, classifies them against the vendor rule
table, and appends them to the ledger after confirmation.

With no arguments, the configured import directory is scanned and every
statement file found there is ingested; files committed from the import
directory are moved to its processed/ subdirectory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(configPath, args, yes, flip, cmd)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "tally.yaml", "config file path")
	cmd.Flags().BoolVar(&yes, "yes", false, "answer prompts non-interactively: commit without confirmation, skip unresolved columns")
	cmd.Flags().BoolVar(&flip, "flip", false, "with --yes, confirm the sign-flip heuristic when it triggers")

	return cmd
}

func runIngest(configPath string, args []string, yes, flip bool, cmd *cobra.Command) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	log := logging.New()

	ruleSet, found, err := rules.LoadOrEmpty(cfg.Rules.Path)
	if err != nil {
		return err
	}
	if !found {
		log.Warn().Str("path", cfg.Rules.Path).Msg("rule source not found, all rows will be unclassified")
	}

	svc := ingest.NewService(
		classify.New(ruleSet),
		ledger.NewStore(cfg.Ledger.Path),
		source.Options{
			HeaderRow:     cfg.Spreadsheet.HeaderRow,
			StatementCell: cfg.Spreadsheet.StatementCell,
		},
		log,
	)

	var prompter ingest.Prompter
	if yes {
		prompter = autoPrompter{flip: flip, commit: true}
	} else {
		prompter = newTerminalPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	paths := args
	fromImportDir := false
	if len(paths) == 0 {
		files, err := source.Scan(cfg.Import.Dir)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No statement files found in %s\n", cfg.Import.Dir)
			return nil
		}
		for _, f := range files {
			paths = append(paths, f.Path)
		}
		fromImportDir = true
	}

	var entries []runlog.Entry
	var failures []error
	for _, path := range paths {
		res, err := svc.IngestFile(path, prompter)
		if err != nil {
			// Fatal for this file only; the rest of the batch continues.
			log.Error().Str("file", path).Err(err).Msg("ingestion failed")
			failures = append(failures, err)
			continue
		}

		reportResult(cmd, res)
		entries = append(entries, runlog.Entry{
			Timestamp:     time.Now(),
			File:          filepath.Base(path),
			Records:       len(res.Records),
			Statement:     res.Statement,
			PaymentMethod: res.PaymentMethod,
			Warnings:      res.Warnings.Total(),
			Committed:     res.Committed,
		})

		if res.Committed && fromImportDir {
			if err := source.MarkProcessed(cfg.Import.Dir, filepath.Base(path)); err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}
		}
	}

	if err := runlog.Append(".", entries); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write ingest log: %v\n", err)
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d files failed to ingest", len(failures), len(paths))
	}
	return nil
}

func reportResult(cmd *cobra.Command, res *ingest.Result) {
	out := cmd.OutOrStdout()
	if res.Committed {
		fmt.Fprintf(out, "%s: committed %d records (statement %q", res.File, len(res.Records), res.Statement)
		if res.PaymentMethod != "" {
			fmt.Fprintf(out, ", method %s", res.PaymentMethod)
		}
		fmt.Fprintln(out, ")")
	} else {
		fmt.Fprintf(out, "%s: no changes were made to the ledger\n", res.File)
	}

	w := res.Warnings
	if w.DateParseFailures > 0 {
		fmt.Fprintf(out, "  warning: %d dates could not be parsed\n", w.DateParseFailures)
	}
	if w.CoercionFailures > 0 {
		fmt.Fprintf(out, "  warning: %d amounts could not be parsed\n", w.CoercionFailures)
	}
	if w.AmountDefaulted {
		fmt.Fprintln(out, "  warning: no amount column resolved, amounts defaulted to 0")
	}
	for _, f := range w.SkippedFields {
		fmt.Fprintf(out, "  warning: column for %q skipped\n", f)
	}
}

// loadConfig reads the config file, or falls back to defaults when the
// default config file is absent.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, os.ErrNotExist) && path == "tally.yaml" {
		return config.Default(), nil
	}
	return nil, err
}
