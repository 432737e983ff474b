package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rxtech-lab/argo-trend/internal/engine"
	"github.com/rxtech-lab/argo-trend/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ArgoTrendCmdTestSuite struct {
	suite.Suite
	tempDir string
	out     *bytes.Buffer
}

func TestArgoTrendCmdSuite(t *testing.T) {
	suite.Run(t, new(ArgoTrendCmdTestSuite))
}

func (suite *ArgoTrendCmdTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
	suite.out = &bytes.Buffer{}
}

func (suite *ArgoTrendCmdTestSuite) run(args ...string) error {
	app := newApp()
	app.Writer = suite.out
	app.ErrWriter = suite.out

	return app.Run(context.Background(), append([]string{"argo-trend", "--log-level", "error"}, args...))
}

// writeRun writes forty one minute bars and a sim config that reads them.
func (suite *ArgoTrendCmdTestSuite) writeRun(resultsDir string) string {
	var content strings.Builder

	content.WriteString("time,symbol,open,high,low,close,volume\n")

	for i := 0; i < 40; i++ {
		price := 100 + float64(i%7)
		fmt.Fprintf(&content, "2024-01-01 00:%02d:00,BTCUSDT,%.1f,%.1f,%.1f,%.1f,1.0\n", i, price, price+1, price-1, price)
	}

	dataPath := filepath.Join(suite.tempDir, "bars.csv")
	suite.Require().NoError(os.WriteFile(dataPath, []byte(content.String()), 0o600))

	config := fmt.Sprintf(`mode: sim
selector: binance.BTC-USDT
strategy:
  period: 1m
  min_periods: 5
  ema_trend_period: 3
  ema_short_period: 2
  ema_long_period: 4
  rsi_periods: 3
data:
  source: file
  path: %q
  symbol: BTCUSDT
results_dir: %q
`, dataPath, resultsDir)

	configPath := filepath.Join(suite.tempDir, "config.yaml")
	suite.Require().NoError(os.WriteFile(configPath, []byte(config), 0o600))

	return configPath
}

func (suite *ArgoTrendCmdTestSuite) TestSchemaCommand() {
	dir := filepath.Join(suite.tempDir, "config")

	suite.Require().NoError(suite.run("schema", "--dir", dir))

	schemaContent, err := os.ReadFile(filepath.Join(dir, engine.SchemaFileName))
	suite.Require().NoError(err)
	suite.Contains(string(schemaContent), "argo-trend-config")

	sampleContent, err := os.ReadFile(filepath.Join(dir, sampleConfigName()))
	suite.Require().NoError(err)
	suite.True(strings.HasPrefix(string(sampleContent), "# yaml-language-server: $schema="+engine.SchemaFileName))

	// the sample config is a valid run config
	_, err = engine.ParseRunConfig(sampleContent)
	suite.NoError(err)
}

func (suite *ArgoTrendCmdTestSuite) TestSchemaCommandKeepsSampleConfig() {
	dir := filepath.Join(suite.tempDir, "config")
	samplePath := filepath.Join(dir, sampleConfigName())

	suite.Require().NoError(os.MkdirAll(dir, 0o755))
	suite.Require().NoError(os.WriteFile(samplePath, []byte("mode: paper\n"), 0o600))

	suite.Require().NoError(suite.run("schema", "--dir", dir))

	content, err := os.ReadFile(samplePath)
	suite.Require().NoError(err)
	suite.Equal("mode: paper\n", string(content))
}

func (suite *ArgoTrendCmdTestSuite) TestPhenotypesCommand() {
	suite.Require().NoError(suite.run("phenotypes"))

	output := suite.out.String()
	suite.Contains(output, "ema_short_period")
	suite.Contains(output, "rsi_periods")
	suite.Contains(output, "listOption")
}

func (suite *ArgoTrendCmdTestSuite) TestRunCommand() {
	resultsDir := filepath.Join(suite.tempDir, "results")
	configPath := suite.writeRun(resultsDir)

	suite.Require().NoError(suite.run("run", "--config", configPath))

	suite.Contains(suite.out.String(), "2024-01-01 00:39")

	data, err := os.ReadFile(filepath.Join(resultsDir, "summary.json"))
	suite.Require().NoError(err)

	var summary engine.Summary

	suite.Require().NoError(json.Unmarshal(data, &summary))
	suite.Equal(40, summary.Periods)
	suite.Positive(summary.Preroll)
	suite.LessOrEqual(summary.Preroll, 5)
	suite.Equal(summary.Buys+summary.Sells, summary.Fills)
	suite.FileExists(filepath.Join(resultsDir, "marks.parquet"))
}

func (suite *ArgoTrendCmdTestSuite) TestRunCommandWithoutReport() {
	configPath := suite.writeRun("")

	suite.Require().NoError(suite.run("run", "--config", configPath, "--report=false"))

	suite.NotContains(suite.out.String(), "2024-01-01 00:39")
	suite.Contains(suite.out.String(), `"periods": 40`)
}

func (suite *ArgoTrendCmdTestSuite) TestRunCommandRejectsInvalidConfig() {
	configPath := filepath.Join(suite.tempDir, "config.yaml")
	suite.Require().NoError(os.WriteFile(configPath, []byte("mode: backtest\n"), 0o600))

	err := suite.run("run", "--config", configPath)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidMode))
}

func (suite *ArgoTrendCmdTestSuite) TestRunCommandRejectsLogLevel() {
	configPath := suite.writeRun("")

	app := newApp()
	app.Writer = suite.out
	app.ErrWriter = suite.out

	err := app.Run(context.Background(), []string{"argo-trend", "--log-level", "loud", "run", "--config", configPath})
	suite.Error(err)
}
