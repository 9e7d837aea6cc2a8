package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"fecreport/internal/config"
	apperrors "fecreport/internal/errors"
	"fecreport/internal/fec"
	"fecreport/internal/observability"
	"fecreport/internal/report"
)

var (
	flagInput  string
	flagOutput string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fecreport",
		Short: "Generate the candidate campaign-finance summary report",
		Long: "fecreport loads one FEC candidate summary file and produces a fixed " +
			"sequence of seven charts with their captions: a one-shot batch run with " +
			"no service and no state beyond the input file and the rendered images.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.Flags().StringVarP(&flagInput, "input", "i", "", "candidate summary file (overrides FEC_CSV_FILE)")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "chart output directory (overrides FEC_OUTPUT_DIR)")

	if err := rootCmd.Execute(); err != nil {
		slog.Error("report failed", "error", err)
		os.Exit(apperrors.ExitCode(err))
	}
}

func run(cmd *cobra.Command, args []string) error {
	// .env is optional; environment variables win when both are present
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return apperrors.ConfigWrap(err, "load configuration")
	}
	if flagInput != "" {
		cfg.Input.CSVFile = flagInput
	}
	if flagOutput != "" {
		cfg.Output.Dir = flagOutput
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting report run",
		"input", cfg.Input.CSVFile,
		"output", cfg.Output.Dir,
		"workers", cfg.Run.Workers,
	)

	start := time.Now()

	loader := fec.NewLoader(logger)
	records, err := loader.Load(ctx, cfg.Input.CSVFile)
	if err != nil {
		return err
	}

	reporter := report.NewReporter(logger, cfg)
	if err := reporter.Generate(ctx, records); err != nil {
		return err
	}

	logger.Info("report complete",
		"records", len(records),
		"duration", time.Since(start),
	)
	return nil
}
