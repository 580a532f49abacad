package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/giygas/vaccines-api/catalog"
	"github.com/giygas/vaccines-api/compare"
	"github.com/giygas/vaccines-api/config"
	"github.com/giygas/vaccines-api/data"
	"github.com/giygas/vaccines-api/dataset"
	"github.com/giygas/vaccines-api/handlers"
	"github.com/giygas/vaccines-api/health"
	"github.com/giygas/vaccines-api/interfaces"
	"github.com/giygas/vaccines-api/logging"
	"github.com/giygas/vaccines-api/scheduler"
	"github.com/giygas/vaccines-api/server"
	"github.com/giygas/vaccines-api/validation"
)

const (
	logDir          = "logs"
	shutdownTimeout = 30 * time.Second
)

var errQualityIssues = errors.New("dataset has data quality issues")

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "vaccines-api",
		Short:         "Vaccines, pathogens, manufacturers and licensers reference API",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), verbose)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable info logging in test environments")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), verbose)
		},
	}

	root.AddCommand(serve, newValidateCmd(), newSearchCmd())
	return root
}

func newValidateCmd() *cobra.Command {
	var (
		dataDir string
		strict  bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load a dataset and print its data quality report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.InitLogger(logging.Options{Level: "error"})
			defer logging.Close() //nolint:errcheck

			loader := dataset.NewLoader(dataDir)
			cat, report, err := scheduler.LoadSnapshot(cmd.Context(), loader, validation.NewDataValidator())
			if err != nil {
				return err
			}

			printReport(cmd.OutOrStdout(), loader.Source(), cat, report)
			if strict && report.HasIssues() {
				return errQualityIssues
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Dataset directory (default: bundled seed)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when the report lists any issue")
	return cmd
}

func newSearchCmd() *cobra.Command {
	var dataDir, letter, keyword string

	tabNames := make([]string, 0, len(catalog.Tabs()))
	for _, t := range catalog.Tabs() {
		tabNames = append(tabNames, string(t))
	}

	cmd := &cobra.Command{
		Use:       "search <tab>",
		Short:     "Print the visible entries of a browse tab",
		Long:      "Print the visible entries of a browse tab, one per line.\nTabs: " + strings.Join(tabNames, ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: tabNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.InitLogger(logging.Options{Level: "error"})
			defer logging.Close() //nolint:errcheck

			tab, err := catalog.ParseTab(args[0])
			if err != nil {
				return err
			}

			validator := validation.NewDataValidator()
			if err := validator.ValidateLetter(letter); err != nil {
				return fmt.Errorf("invalid --letter: %w", err)
			}
			if err := validator.ValidateKeyword(keyword); err != nil {
				return fmt.Errorf("invalid --keyword: %w", err)
			}

			cat, _, err := scheduler.LoadSnapshot(cmd.Context(), dataset.NewLoader(dataDir), validator)
			if err != nil {
				return err
			}

			result, err := cat.FilterEntities(tab, strings.TrimSpace(letter), strings.TrimSpace(keyword))
			if err != nil {
				return err
			}
			for _, name := range result.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Dataset directory (default: bundled seed)")
	cmd.Flags().StringVar(&letter, "letter", "", "Starting letter filter")
	cmd.Flags().StringVar(&keyword, "keyword", "", "Keyword filter")
	return cmd
}

func printReport(w io.Writer, source string, cat *catalog.Catalog, report *interfaces.DataQualityReport) {
	fmt.Fprintf(w, "Source: %s\n", source)
	counts := cat.Counts()
	for _, name := range []string{"pathogens", "vaccines", "manufacturers", "licensers", "pipeline_vaccines", "nitags"} {
		fmt.Fprintf(w, "  %-18s %d\n", name, counts[name])
	}

	if !report.HasIssues() {
		fmt.Fprintln(w, "No data quality issues found")
		return
	}

	fmt.Fprintln(w, "Data quality issues:")
	ids := []struct {
		label string
		ids   []int
	}{
		{"duplicate pathogen ids", report.DuplicatePathogenIDs},
		{"duplicate vaccine ids", report.DuplicateVaccineIDs},
		{"duplicate manufacturer ids", report.DuplicateManufacturerIDs},
		{"duplicate licenser ids", report.DuplicateLicenserIDs},
		{"vaccines referencing a missing pathogen", report.DanglingPathogenRefs},
		{"vaccines referencing a missing manufacturer", report.DanglingManufacturerRefs},
		{"vaccines referencing a missing licenser", report.DanglingLicenserRefs},
		{"vaccines whose type disagrees with their pathogens", report.VaccineTypeMismatches},
	}
	for _, entry := range ids {
		if len(entry.ids) > 0 {
			fmt.Fprintf(w, "  %s: %v\n", entry.label, entry.ids)
		}
	}
	if len(report.UnknownProfileTypes) > 0 {
		fmt.Fprintf(w, "  profiles from unknown licensers: %s\n", strings.Join(report.UnknownProfileTypes, ", "))
	}
	if report.VaccinesWithoutProfiles > 0 {
		fmt.Fprintf(w, "  vaccines without product profiles: %d\n", report.VaccinesWithoutProfiles)
	}
	if report.PipelineWithoutPathogen > 0 {
		fmt.Fprintf(w, "  candidates matching no pathogen: %d\n", report.PipelineWithoutPathogen)
	}
}

func runServe(ctx context.Context, verbose bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.InitLogger(logging.Options{
		Dir:            logDir,
		Env:            cfg.Env,
		Level:          cfg.LogLevel,
		RetentionWeeks: cfg.LogRetentionWeeks,
		MaxFileSize:    cfg.MaxLogFileSize,
		Verbose:        verbose,
	})
	defer logging.Close() //nolint:errcheck

	policy, err := compare.ParseCapPolicy(cfg.CompareCapPolicy)
	if err != nil {
		return err
	}
	compareOpts := compare.Options{MaxVaccines: cfg.CompareMaxVaccines, Policy: policy}

	store := data.NewDataContainer()
	store.SetServerStartTime(time.Now())

	loader := dataset.NewLoader(cfg.DataDir)
	validator := validation.NewDataValidator()
	sessions := compare.NewSessionStore(cfg.SessionTTL)

	// The bundled seed never changes, so only a data directory is reloaded.
	reloading := cfg.DataDir != ""
	checker := health.NewHealthChecker(store, cfg.ReloadTimes, reloading)

	sched := scheduler.NewScheduler(store, loader, validator, sessions, checker, scheduler.Options{
		ReloadTimes: cfg.ReloadTimes,
		Reload:      reloading,
	})
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	logging.Info("Configuration loaded",
		"env", cfg.Env.String(),
		"source", loader.Source(),
		"reload", reloading,
		"compare_max_vaccines", compareOpts.MaxVaccines,
		"compare_cap_policy", string(compareOpts.Policy),
	)

	handler := handlers.NewHTTPHandler(store, validator, checker, sessions, compareOpts)
	srv := server.NewServer(cfg, handler)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
