package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ghamerly/problem-style-check/internal/issuelog"
	"github.com/ghamerly/problem-style-check/internal/pipeline"
	"github.com/ghamerly/problem-style-check/internal/registry"
	"github.com/ghamerly/problem-style-check/internal/speller"
)

var noReportFile bool

var checkCmd = &cobra.Command{
	Use:   "check [root] [problem ...]",
	Short: "Audit the problem packages under a directory",
	Long: `Audit every problem package under root (default: the current
directory), or only the named packages. The report is printed to stdout and
also written to a timestamped problem-check-log file unless --no-report-file
is given.`,
	Args: cobra.ArbitraryArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&noReportFile, "no-report-file", false, "print the report to stdout only")
	checkCmd.Flags().Bool("warn-redundant-defaults", true, "warn when problem.yaml restates a default value")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if cmd.Flags().Changed("warn-redundant-defaults") {
		cfg.WarnRedundantDefaults, _ = cmd.Flags().GetBool("warn-redundant-defaults")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	root := "."
	var only []string
	if len(args) > 0 {
		root = args[0]
		only = args[1:]
	}

	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	dicts, err := speller.Load(cfg.DictionariesDir, log)
	if err != nil {
		log.Warn("no spelling dictionaries, spelling checks disabled", "dir", cfg.DictionariesDir, "error", err)
		dicts = nil
	}

	src := registry.First(cfg.NameServiceURL, cfg.NameServiceKey, cfg.NameDB, cfg.NameListURL, cfg.NameCacheFile)

	orch := pipeline.NewOrchestrator(cfg, dicts, src, log)
	issues, err := orch.Audit(cmd.Context(), root, only)
	if err != nil {
		return err
	}

	// The report goes to stdout and, unless disabled, to the timestamped
	// log file, header first.
	var out io.Writer = os.Stdout
	if !noReportFile {
		name := issuelog.ReportFilename(time.Now())
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("create report file: %w", err)
		}
		defer f.Close()
		out = io.MultiWriter(os.Stdout, f)
		fmt.Fprintf(out, "%s\n", issuelog.ReportHeader(name))
	}
	if err := issues.Render(out); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
