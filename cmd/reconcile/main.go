// Command reconcile records history outcomes for activities that ended within
// the lookback window. It is meant to be run periodically by an external
// scheduler and exits non-zero when any activity or booking failed.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"activity-ledger/cmd/bootstrap"
	"activity-ledger/internal/pkg/config"
	"activity-ledger/internal/usecase/commands"

	"go.uber.org/fx"
)

func main() {
	lookback := flag.Duration("lookback", 0, "reconcile activities that ended within this window (default RECONCILE_LOOKBACK)")
	flag.Parse()

	var (
		history commands.HistoryCommands
		cfg     config.Config
	)
	app := fx.New(
		bootstrap.CoreModule,
		fx.NopLogger,
		fx.Populate(&history, &cfg),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		slog.Error("reconcile failed to start", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, history, pickLookback(*lookback, cfg.Reconcile.Lookback))
	stop()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil {
		slog.Error("reconcile failed to stop cleanly", "error", err)
	}
	os.Exit(code)
}

func pickLookback(flagValue, configured time.Duration) time.Duration {
	if flagValue > 0 {
		return flagValue
	}
	return configured
}

func run(ctx context.Context, history commands.HistoryCommands, lookback time.Duration) int {
	slog.Info("reconciling ended activities", "lookback", lookback)

	summary, err := history.ReconcileEnded(ctx, lookback)
	if err != nil {
		slog.Error("reconcile aborted", "error", err)
		return 1
	}

	failed := len(summary.Errors)
	for id, err := range summary.Errors {
		slog.Error("activity not reconciled", "activity_id", id, "error", err)
	}
	for _, res := range summary.Activities {
		failed += len(res.Failures)
	}

	slog.Info("reconcile finished",
		"activities", len(summary.Activities),
		"activity_errors", len(summary.Errors),
		"failed", failed)
	if failed > 0 {
		return 2
	}
	return 0
}
