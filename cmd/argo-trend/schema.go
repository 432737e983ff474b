package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/argo-trend/internal/engine"
	"github.com/rxtech-lab/argo-trend/internal/version"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Write the run config JSON schema and a sample config",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Output directory",
				Value:   "config",
			},
		},
		Action: schemaAction,
	}
}

// sampleConfigName is the sample YAML written next to the schema.
func sampleConfigName() string {
	return strings.TrimSuffix(engine.SchemaFileName, filepath.Ext(engine.SchemaFileName)) + ".yaml"
}

func schemaAction(_ context.Context, cmd *cli.Command) error {
	dir := cmd.String("dir")
	out := cmd.Root().Writer

	config := engine.DefaultRunConfig()
	config.Version = version.GetVersion()

	schemaJSON, err := config.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	schemaPath := filepath.Join(dir, engine.SchemaFileName)
	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0o644); err != nil {
		return fmt.Errorf("failed to write schema to file: %w", err)
	}

	fmt.Fprintf(out, "Schema successfully generated at %s\n", schemaPath)

	// an existing sample config is left alone
	samplePath := filepath.Join(dir, sampleConfigName())
	if _, err := os.Stat(samplePath); !os.IsNotExist(err) {
		return nil
	}

	yamlBytes, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal sample config to yaml: %w", err)
	}

	yamlBytes = append([]byte("# yaml-language-server: $schema="+engine.SchemaFileName+"\n"), yamlBytes...)

	if err := os.WriteFile(samplePath, yamlBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write sample config to file: %w", err)
	}

	fmt.Fprintf(out, "Sample config successfully generated at %s\n", samplePath)

	return nil
}
