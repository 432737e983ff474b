package main

import (
	"context"
	"fmt"

	"github.com/rxtech-lab/argo-trend/internal/strategy"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

func phenotypesCommand() *cli.Command {
	return &cli.Command{
		Name:  "phenotypes",
		Usage: "Print the tunable option ranges of trend_ema_dema",
		Action: func(_ context.Context, cmd *cli.Command) error {
			data, err := yaml.Marshal(strategy.Phenotypes())
			if err != nil {
				return fmt.Errorf("failed to marshal phenotypes: %w", err)
			}

			_, err = cmd.Root().Writer.Write(data)

			return err
		},
	}
}
