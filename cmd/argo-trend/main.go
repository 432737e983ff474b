package main

import (
	"context"
	"log"
	"os"

	"github.com/rxtech-lab/argo-trend/internal/logger"
	"github.com/rxtech-lab/argo-trend/internal/version"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap/zapcore"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "argo-trend",
		Usage:   "Run the trend_ema_dema signal engine",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
				Value: "info",
			},
		},
		Commands: []*cli.Command{
			runCommand(),
			schemaCommand(),
			phenotypesCommand(),
		},
	}
}

// newLogger builds the logger named by the root --log-level flag.
func newLogger(cmd *cli.Command) (*logger.Logger, error) {
	level, err := zapcore.ParseLevel(cmd.String("log-level"))
	if err != nil {
		return nil, err
	}

	return logger.NewLoggerWithLevel(level)
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
