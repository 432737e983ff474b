package strategy

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-trend/pkg/errors"
	"gopkg.in/yaml.v3"
)

var periodPattern = regexp.MustCompile(`^[1-9][0-9]*[smhd]$`)

// Config holds the tunable options of the trend_ema_dema strategy.
type Config struct {
	Period         string      `yaml:"period" json:"period" jsonschema:"title=Period,description=Period length (same as period_length),default=2m,pattern=^[1-9][0-9]*[smhd]$" validate:"required,period"`
	MinPeriods     int         `yaml:"min_periods" json:"min_periods" jsonschema:"title=Min Periods,description=Number of history periods before any decision is made,default=52,minimum=1" validate:"gte=1"`
	EMATrendPeriod int         `yaml:"ema_trend_period" json:"ema_trend_period" jsonschema:"title=Trend EMA Period,description=Number of periods for the trend EMA,default=26,minimum=1" validate:"gte=1"`
	EMAShortPeriod int         `yaml:"ema_short_period" json:"ema_short_period" jsonschema:"title=Short EMA Period,description=Number of periods for the shorter EMA,default=10,minimum=1" validate:"gte=1"`
	EMALongPeriod  int         `yaml:"ema_long_period" json:"ema_long_period" jsonschema:"title=Long EMA Period,description=Number of periods for the longer EMA,default=21,minimum=1" validate:"gte=1"`
	NeutralRate    NeutralRate `yaml:"neutral_rate" json:"neutral_rate"`
	OversoldRSI    float64     `yaml:"oversold_rsi" json:"oversold_rsi" jsonschema:"title=Oversold RSI,description=Buy when RSI reaches this value (0 disables),default=10,minimum=0,maximum=100" validate:"gte=0,lte=100"`
	OverboughtRSI  float64     `yaml:"overbought_rsi" json:"overbought_rsi" jsonschema:"title=Overbought RSI,description=Sell when RSI reaches this value (0 disables),default=90,minimum=0,maximum=100" validate:"gte=0,lte=100"`
	RSIPeriods     int         `yaml:"rsi_periods" json:"rsi_periods" jsonschema:"title=RSI Periods,description=Number of periods for both RSI oscillators,default=14,minimum=1" validate:"gte=1"`
}

// DefaultConfig returns the stock option values.
func DefaultConfig() Config {
	return Config{
		Period:         "2m",
		MinPeriods:     52,
		EMATrendPeriod: 26,
		EMAShortPeriod: 10,
		EMALongPeriod:  21,
		NeutralRate:    AutoNeutralRate(),
		OversoldRSI:    10,
		OverboughtRSI:  90,
		RSIPeriods:     14,
	}
}

// UnmarshalYAML decodes over the receiver's current values so that missing
// keys keep their defaults. period_length is accepted as an alias of period;
// when both are given, period wins.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	type plain Config
	if err := node.Decode((*plain)(c)); err != nil {
		return err
	}

	var alias struct {
		Period       string `yaml:"period"`
		PeriodLength string `yaml:"period_length"`
	}

	if err := node.Decode(&alias); err != nil {
		return err
	}

	if alias.Period == "" && alias.PeriodLength != "" {
		c.Period = alias.PeriodLength
	}

	return nil
}

// Validate checks every option.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("period", func(fl validator.FieldLevel) bool {
		return periodPattern.MatchString(fl.Field().String())
	}); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to register period validation", err)
	}

	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid trend_ema_dema config", err)
	}

	if err := c.NeutralRate.Validate(); err != nil {
		return err
	}

	return nil
}

// PeriodDuration converts Period into a duration.
func (c *Config) PeriodDuration() (time.Duration, error) {
	if !periodPattern.MatchString(c.Period) {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "invalid period %q", c.Period)
	}

	unit := c.Period[len(c.Period)-1]
	if unit == 'd' {
		d, err := time.ParseDuration(c.Period[:len(c.Period)-1] + "h")
		if err != nil {
			return 0, errors.Wrapf(errors.ErrCodeInvalidPeriod, err, "invalid period %q", c.Period)
		}

		return d * 24, nil
	}

	d, err := time.ParseDuration(c.Period)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeInvalidPeriod, err, "invalid period %q", c.Period)
	}

	return d, nil
}

// StdDevWindow is the window of the auto neutral band.
func (c *Config) StdDevWindow() int {
	window := c.EMATrendPeriod / 2
	if window < 1 {
		return 1
	}

	return window
}
