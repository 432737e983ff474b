package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rxtech-lab/argo-trend/internal/engine"
	"github.com/rxtech-lab/argo-trend/internal/metrics"
	"github.com/rxtech-lab/argo-trend/internal/report"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the strategy over the configured bar source",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "Path to the run config YAML",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "Serve prometheus metrics on this address, e.g. :9090",
			},
			&cli.BoolFlag{
				Name:  "report",
				Usage: "Print one line per period",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "progress",
				Usage: "Show a progress bar instead of the period report",
			},
		},
		Action: runAction,
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	config, err := engine.LoadRunConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	log, err := newLogger(cmd)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	defer func() { _ = log.Sync() }()

	registry := prometheus.NewRegistry()
	options := engine.Options{
		Metrics: metrics.NewMetrics(registry),
		Logger:  log,
	}

	out := cmd.Root().Writer

	if cmd.Bool("progress") {
		var bar *progressbar.ProgressBar

		options.OnProgress = func(processed int, total int) {
			if bar == nil {
				// unknown totals get a spinner
				size := int64(total)
				if size <= 0 {
					size = -1
				}

				bar = progressbar.Default(size)
			}

			_ = bar.Set(processed)
		}
	} else if cmd.Bool("report") {
		options.Renderer = report.NewRenderer(out)
	}

	eng, err := engine.NewEngine(config, options)
	if err != nil {
		return err
	}

	metrics.RegisterNotificationStats(registry, eng.Dispatcher())

	if addr := cmd.String("metrics-addr"); addr != "" {
		server := metrics.NewServer(addr, registry, log.Named("metrics"))
		server.Start()

		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := server.Stop(stopCtx); err != nil {
				log.Warn("Failed to stop metrics server", zap.Error(err))
			}
		}()
	}

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, runErr := eng.Run(runCtx)

	closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := eng.Close(closeCtx); err != nil {
		log.Warn("Failed to close engine", zap.Error(err))
	}

	summaryJSON, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(out, string(summaryJSON))

	return runErr
}
