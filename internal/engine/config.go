package engine

import (
	"encoding/json"
	"os"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-trend/internal/notification"
	"github.com/rxtech-lab/argo-trend/internal/strategy"
	"github.com/rxtech-lab/argo-trend/internal/types"
	"github.com/rxtech-lab/argo-trend/internal/version"
	"github.com/rxtech-lab/argo-trend/pkg/errors"
	"gopkg.in/yaml.v3"
)

// SchemaFileName is the file the schema command writes the run config schema to.
const SchemaFileName = "argo-trend-config.json"

// DataSourceKind selects where bars come from.
type DataSourceKind string

const (
	DataSourceFile    DataSourceKind = "file"
	DataSourceBinance DataSourceKind = "binance"
)

// DataConfig describes the bar source of a run.
type DataConfig struct {
	Source    DataSourceKind             `yaml:"source" json:"source" jsonschema:"title=Source,description=file reads a parquet or csv file and binance fetches klines,enum=file,enum=binance,default=file" validate:"required,oneof=file binance"`
	Path      string                     `yaml:"path" json:"path" jsonschema:"title=Path,description=Parquet or csv file with time and OHLCV columns" validate:"required_if=Source file"`
	Symbol    string                     `yaml:"symbol" json:"symbol" jsonschema:"title=Symbol,description=Only rows of this symbol are read from the file. Defaults to the selector symbol"`
	StartTime optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional first bar time"`
	EndTime   optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional last bar time"`
}

type dataConfigYAML struct {
	Source    DataSourceKind `yaml:"source"`
	Path      string         `yaml:"path,omitempty"`
	Symbol    string         `yaml:"symbol,omitempty"`
	StartTime *time.Time     `yaml:"start_time,omitempty"`
	EndTime   *time.Time     `yaml:"end_time,omitempty"`
}

// UnmarshalYAML maps the optional times. Missing keys keep their current values.
func (d *DataConfig) UnmarshalYAML(node *yaml.Node) error {
	config := dataConfigYAML{Source: d.Source, Path: d.Path, Symbol: d.Symbol}
	if err := node.Decode(&config); err != nil {
		return err
	}

	d.Source = config.Source
	d.Path = config.Path
	d.Symbol = config.Symbol

	if config.StartTime != nil {
		d.StartTime = optional.Some(*config.StartTime)
	}

	if config.EndTime != nil {
		d.EndTime = optional.Some(*config.EndTime)
	}

	return nil
}

// MarshalYAML writes the optional times only when set.
func (d DataConfig) MarshalYAML() (any, error) {
	config := dataConfigYAML{Source: d.Source, Path: d.Path, Symbol: d.Symbol}

	if d.StartTime.IsSome() {
		start := d.StartTime.Unwrap()
		config.StartTime = &start
	}

	if d.EndTime.IsSome() {
		end := d.EndTime.Unwrap()
		config.EndTime = &end
	}

	return config, nil
}

// RunConfig is the configuration file of one run.
type RunConfig struct {
	Version      string              `yaml:"version,omitempty" json:"version,omitempty" jsonschema:"title=Version,description=argo-trend version the config was written for. Major and minor must match the binary"`
	Mode         types.Mode          `yaml:"mode" json:"mode" jsonschema:"title=Mode,description=sim replays stored bars silently while paper and live deliver notifications,default=sim" validate:"required,oneof=sim paper live"`
	Selector     string              `yaml:"selector" json:"selector" jsonschema:"title=Selector,description=Market written as exchange.ASSET-CURRENCY,default=binance.BTC-USDT" validate:"required"`
	Silent       bool                `yaml:"silent" json:"silent" jsonschema:"title=Silent,description=Suppress the RSI latch messages"`
	Strategy     strategy.Config     `yaml:"strategy" json:"strategy" jsonschema:"title=Strategy,description=trend_ema_dema options"`
	Notification notification.Config `yaml:"notification" json:"notification" jsonschema:"title=Notification,description=Notification sinks"`
	Data         DataConfig          `yaml:"data" json:"data" jsonschema:"title=Data,description=Bar source"`
	ResultsDir   string              `yaml:"results_dir" json:"results_dir" jsonschema:"title=Results Directory,description=Marks fills and the summary are written here when set,default=results"`
}

// DefaultRunConfig returns a sim run over a parquet file with the stock strategy options.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Version:      "",
		Mode:         types.ModeSim,
		Selector:     "binance.BTC-USDT",
		Silent:       false,
		Strategy:     strategy.DefaultConfig(),
		Notification: notification.DefaultConfig(),
		Data: DataConfig{
			Source:    DataSourceFile,
			Path:      "data/BTCUSDT.parquet",
			StartTime: optional.None[time.Time](),
			EndTime:   optional.None[time.Time](),
		},
		ResultsDir: "results",
	}
}

// ParseRunConfig decodes YAML over the defaults and validates the result.
func ParseRunConfig(data []byte) (RunConfig, error) {
	config := DefaultRunConfig()

	if err := yaml.Unmarshal(data, &config); err != nil {
		return RunConfig{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse run config", err)
	}

	if err := config.Validate(); err != nil {
		return RunConfig{}, err
	}

	return config, nil
}

// LoadRunConfig reads and parses the config file at path.
func LoadRunConfig(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read %s", path)
	}

	return ParseRunConfig(data)
}

// Validate checks the run options and every nested config.
func (c *RunConfig) Validate() error {
	switch c.Mode {
	case types.ModeSim, types.ModePaper, types.ModeLive:
	default:
		return errors.Newf(errors.ErrCodeInvalidMode, "mode %q must be one of sim, paper, live", c.Mode)
	}

	validate := validator.New()
	if err := validate.StructPartial(c, "Mode", "Selector"); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid run config", err)
	}

	if err := validate.Struct(&c.Data); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid data config", err)
	}

	if c.Data.StartTime.IsSome() && c.Data.EndTime.IsSome() && c.Data.EndTime.Unwrap().Before(c.Data.StartTime.Unwrap()) {
		return errors.New(errors.ErrCodeInvalidConfiguration, "data end_time is before start_time")
	}

	if _, err := types.ParseSelector(c.Selector); err != nil {
		return err
	}

	if err := version.CheckConfigVersion(version.GetVersion(), c.Version); err != nil {
		return err
	}

	if err := c.Strategy.Validate(); err != nil {
		return err
	}

	return c.Notification.Validate()
}

// GenerateSchema generates the JSON schema of RunConfig.
func (c *RunConfig) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		DoNotReference:             true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			switch t {
			case reflect.TypeOf(optional.Option[time.Time]{}):
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			case reflect.TypeOf(types.Mode("")):
				return &jsonschema.Schema{
					Type: "string",
					Enum: types.AllModes,
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)
	schema.Title = "argo-trend-config"
	schema.Description = "Configuration schema for a trend_ema_dema run"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates the JSON schema of RunConfig as indented JSON.
func (c *RunConfig) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
