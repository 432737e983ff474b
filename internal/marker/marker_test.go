package marker

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-trend/internal/logger"
	"github.com/rxtech-lab/argo-trend/internal/types"
	"github.com/stretchr/testify/suite"
)

type MarkerTestSuite struct {
	suite.Suite
	base time.Time
}

func TestMarkerSuite(t *testing.T) {
	suite.Run(t, new(MarkerTestSuite))
}

func (suite *MarkerTestSuite) SetupTest() {
	suite.base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func (suite *MarkerTestSuite) signal(at time.Time, signalType types.SignalType) types.Signal {
	return types.Signal{
		Time:   at,
		Type:   signalType,
		Name:   "trend_ema_dema",
		Reason: "bullish_crossover",
		Symbol: "BTCUSDT",
		Price:  101.5,
		Trend:  types.TrendUp,
	}
}

// markers returns one instance of every implementation.
func (suite *MarkerTestSuite) markers() map[string]Marker {
	duck, err := NewDuckDBMarker(logger.NewNopLogger())
	suite.Require().NoError(err)

	return map[string]Marker{
		"memory": NewMemoryMarker(),
		"duckdb": duck,
	}
}

func (suite *MarkerTestSuite) TestSignalMark() {
	mark := SignalMark(suite.signal(suite.base, types.SignalTypeBuy), "entering bullish market")

	suite.NotEmpty(mark.Id)
	suite.Equal(CategorySignal, mark.Category)
	suite.Equal(types.MarkColorGreen, mark.Color)
	suite.Equal(types.MarkShapeTriangle, mark.Shape)
	suite.Equal("buy", mark.Title)
	suite.Equal(101.5, mark.Price)
	suite.True(mark.Signal.IsSome())
}

func (suite *MarkerTestSuite) TestLatchMark() {
	mark := LatchMark("BTCUSDT", suite.base, 99, "overbought", "overbought at 91.20 RSI, preparing to sell")

	suite.Equal(CategoryLatch, mark.Category)
	suite.Equal(types.MarkShapeSquare, mark.Shape)
	suite.True(mark.Signal.IsNone())
}

func (suite *MarkerTestSuite) TestMarksOrderedByTime() {
	for name, m := range suite.markers() {
		suite.Run(name, func() {
			defer m.Close()

			later := SignalMark(suite.signal(suite.base.Add(time.Minute), types.SignalTypeSell), "")
			earlier := LatchMark("BTCUSDT", suite.base, 100, "oversold", "oversold at 8.00 RSI, preparing to buy")

			suite.Require().NoError(m.Mark(later))
			suite.Require().NoError(m.Mark(earlier))

			marks, err := m.Marks()
			suite.Require().NoError(err)
			suite.Require().Len(marks, 2)

			suite.Equal(earlier.Id, marks[0].Id)
			suite.True(marks[0].Signal.IsNone())
			suite.Equal(later.Id, marks[1].Id)
			suite.Require().True(marks[1].Signal.IsSome())
			suite.Equal(types.SignalTypeSell, marks[1].Signal.Unwrap().Type)
			suite.Equal("bullish_crossover", marks[1].Signal.Unwrap().Reason)
			suite.Equal(types.TrendUp, marks[1].Signal.Unwrap().Trend)
		})
	}
}

func (suite *MarkerTestSuite) TestMemoryWrite() {
	m := NewMemoryMarker()
	suite.Require().NoError(m.Mark(SignalMark(suite.signal(suite.base, types.SignalTypeBuy), "entering bullish market")))

	dir := filepath.Join(suite.T().TempDir(), "results")
	suite.Require().NoError(m.Write(dir))

	data, err := os.ReadFile(filepath.Join(dir, "marks.json"))
	suite.Require().NoError(err)

	var rows []map[string]any

	suite.Require().NoError(json.Unmarshal(data, &rows))
	suite.Require().Len(rows, 1)
	suite.Equal("buy", rows[0]["signal"])
	suite.Equal("2024-01-01T00:00:00Z", rows[0]["time"])
}

func (suite *MarkerTestSuite) TestDuckDBWrite() {
	m, err := NewDuckDBMarker(nil)
	suite.Require().NoError(err)

	defer m.Close()

	suite.Require().NoError(m.Mark(SignalMark(suite.signal(suite.base, types.SignalTypeBuy), "")))
	suite.Require().NoError(m.Mark(LatchMark("BTCUSDT", suite.base.Add(time.Minute), 100, "overbought", "")))

	dir := filepath.Join(suite.T().TempDir(), "results")
	suite.Require().NoError(m.Write(dir))

	db, err := sql.Open("duckdb", "")
	suite.Require().NoError(err)

	defer db.Close()

	var count int

	err = db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM read_parquet('%s')", filepath.Join(dir, "marks.parquet"))).Scan(&count)
	suite.Require().NoError(err)
	suite.Equal(2, count)
}
