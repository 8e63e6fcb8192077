package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/iho/txengine/internal/adapter/csvio"
	"github.com/iho/txengine/internal/adapter/idgen"
	"github.com/iho/txengine/internal/adapter/repository/memory"
	"github.com/iho/txengine/internal/infrastructure/config"
	"github.com/iho/txengine/internal/infrastructure/logger"
	"github.com/iho/txengine/internal/infrastructure/metrics"
	"github.com/iho/txengine/internal/usecase"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "txengine <input.csv>",
		Short: "Replay a CSV stream of client transactions",
		Long: `Reads deposit, withdrawal, dispute, resolve and chargeback events from a CSV
file, applies them in order and prints the final state of every client account
as CSV on stdout. Diagnostics go to stderr.

Configuration is read from the environment: LOG_LEVEL, LOG_FORMAT,
REPORT_ORDER, FREEZE_LOCKED_ACCOUNTS, METRICS_FILE, INPUT_OPEN_RETRIES and
INPUT_OPEN_TIMEOUT.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd.Context(), args[0], stdout, stderr)
			if err != nil {
				fmt.Fprintf(stderr, "error: %v\n", err)
			}
			return err
		},
	}
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)
	return cmd
}

func run(ctx context.Context, path string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	runID, err := idgen.NewRunIDSource().Next()
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		RunID:  runID,
		Output: stderr,
	})

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	file, err := csvio.NewOpener(cfg.InputOpenRetries, cfg.InputOpenTimeout, log).Open(ctx, path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	source, err := csvio.NewReader(file)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	// Initialize repositories
	ledgerRepo := memory.NewLedgerRepository()
	accountRepo := memory.NewAccountRepository()

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(ledgerRepo, accountRepo, usecase.AccountPolicy{
		FreezeLocked: cfg.FreezeLockedAccounts,
	}, m)
	processUC := usecase.NewProcessUseCase(accountUC, m, log)
	reportUC := usecase.NewReportUseCase(accountRepo, cfg.ReportOrder, m)

	log.Info().Str("input", path).Msg("processing events")

	summary, err := processUC.Run(ctx, source)
	if err != nil {
		return fmt.Errorf("process events: %w", err)
	}

	reports, err := reportUC.Build(ctx)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	if err := csvio.NewWriter(stdout).Write(ctx, reports); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteToTextfile(cfg.MetricsFile, registry); err != nil {
			log.Error().Err(err).Str("path", cfg.MetricsFile).Msg("failed to write metrics")
		}
	}

	log.Info().
		Int("rows", summary.Rows).
		Int("accepted", summary.Accepted).
		Int("rejected", summary.Rejected).
		Int("malformed", summary.Malformed).
		Int("transactions", ledgerRepo.Len(ctx)).
		Int("accounts", len(reports)).
		Msg("processing complete")

	return nil
}
