package strategy

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-trend/pkg/errors"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) TestDefaultConfig() {
	config := DefaultConfig()

	suite.Equal("2m", config.Period)
	suite.Equal(52, config.MinPeriods)
	suite.Equal(26, config.EMATrendPeriod)
	suite.Equal(10, config.EMAShortPeriod)
	suite.Equal(21, config.EMALongPeriod)
	suite.True(config.NeutralRate.Auto)
	suite.Equal(10.0, config.OversoldRSI)
	suite.Equal(90.0, config.OverboughtRSI)
	suite.Equal(14, config.RSIPeriods)
	suite.Equal(13, config.StdDevWindow())
	suite.NoError(config.Validate())
}

func (suite *ConfigTestSuite) TestValidate() {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad period unit", func(c *Config) { c.Period = "2x" }},
		{"zero period", func(c *Config) { c.Period = "0m" }},
		{"empty period", func(c *Config) { c.Period = "" }},
		{"zero min periods", func(c *Config) { c.MinPeriods = 0 }},
		{"zero trend period", func(c *Config) { c.EMATrendPeriod = 0 }},
		{"zero short period", func(c *Config) { c.EMAShortPeriod = 0 }},
		{"zero long period", func(c *Config) { c.EMALongPeriod = 0 }},
		{"overbought above 100", func(c *Config) { c.OverboughtRSI = 101 }},
		{"negative oversold", func(c *Config) { c.OversoldRSI = -1 }},
		{"zero rsi periods", func(c *Config) { c.RSIPeriods = 0 }},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			config := DefaultConfig()
			tt.mutate(&config)

			err := config.Validate()
			suite.Error(err)
			suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
		})
	}
}

func (suite *ConfigTestSuite) TestValidateNegativeNeutralRate() {
	config := DefaultConfig()
	config.NeutralRate = FixedNeutralRate(-0.1)

	err := config.Validate()
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidNeutralRate))
}

func (suite *ConfigTestSuite) TestDisabledThresholdsAreValid() {
	config := DefaultConfig()
	config.OverboughtRSI = 0
	config.OversoldRSI = 0
	config.NeutralRate = FixedNeutralRate(0)

	suite.NoError(config.Validate())
}

func (suite *ConfigTestSuite) TestUnmarshalYAMLKeepsDefaults() {
	config := DefaultConfig()
	err := yaml.Unmarshal([]byte("ema_short_period: 5\nneutral_rate: 0.06\n"), &config)
	suite.Require().NoError(err)

	suite.Equal(5, config.EMAShortPeriod)
	suite.Equal(FixedNeutralRate(0.06), config.NeutralRate)
	suite.Equal(21, config.EMALongPeriod)
	suite.Equal("2m", config.Period)
}

func (suite *ConfigTestSuite) TestPeriodLengthAlias() {
	config := DefaultConfig()
	suite.Require().NoError(yaml.Unmarshal([]byte("period_length: 15m\n"), &config))
	suite.Equal("15m", config.Period)

	config = DefaultConfig()
	suite.Require().NoError(yaml.Unmarshal([]byte("period: 5m\nperiod_length: 15m\n"), &config))
	suite.Equal("5m", config.Period)
}

func (suite *ConfigTestSuite) TestUnmarshalYAMLRejectsBadNeutralRate() {
	config := DefaultConfig()
	err := yaml.Unmarshal([]byte("neutral_rate: fast\n"), &config)

	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidNeutralRate))
}

func (suite *ConfigTestSuite) TestPeriodDuration() {
	tests := []struct {
		period   string
		expected time.Duration
	}{
		{"30s", 30 * time.Second},
		{"2m", 2 * time.Minute},
		{"4h", 4 * time.Hour},
		{"1d", 24 * time.Hour},
	}

	for _, tt := range tests {
		suite.Run(tt.period, func() {
			config := DefaultConfig()
			config.Period = tt.period

			d, err := config.PeriodDuration()
			suite.NoError(err)
			suite.Equal(tt.expected, d)
		})
	}

	config := DefaultConfig()
	config.Period = "2w"
	_, err := config.PeriodDuration()
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}

func (suite *ConfigTestSuite) TestStdDevWindowMinimum() {
	config := DefaultConfig()
	config.EMATrendPeriod = 1
	suite.Equal(1, config.StdDevWindow())

	config.EMATrendPeriod = 7
	suite.Equal(3, config.StdDevWindow())
}

func (suite *ConfigTestSuite) TestJSONSchema() {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	schema := r.Reflect(DefaultConfig())

	data, err := json.Marshal(schema)
	suite.Require().NoError(err)

	out := string(data)
	suite.Contains(out, `"ema_trend_period"`)
	suite.Contains(out, `"oneOf"`)
	suite.Contains(out, `"const":"auto"`)
}
