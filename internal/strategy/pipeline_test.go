package strategy

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-trend/internal/indicator"
	"github.com/rxtech-lab/argo-trend/internal/types"
	"github.com/stretchr/testify/suite"
)

type PipelineTestSuite struct {
	suite.Suite
	start time.Time
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineTestSuite))
}

func (suite *PipelineTestSuite) SetupTest() {
	suite.start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func (suite *PipelineTestSuite) bar(i int, price float64) types.MarketData {
	return types.MarketData{
		Symbol: "BTCUSDT",
		Time:   suite.start.Add(time.Duration(i) * 2 * time.Minute),
		Open:   price,
		High:   price,
		Low:    price,
		Close:  price,
	}
}

// run feeds prices through p with a fresh post-preroll state.
func (suite *PipelineTestSuite) run(p *Pipeline, state *State, prices ...float64) ([]PeriodRecord, [][]LatchEvent) {
	records := make([]PeriodRecord, 0, len(prices))
	events := make([][]LatchEvent, 0, len(prices))
	prev := optional.None[PeriodRecord]()

	for i, price := range prices {
		record, latches := p.Calculate(state, suite.bar(i, price), prev)
		records = append(records, record)
		events = append(events, latches)
		prev = optional.Some(record)
	}

	return records, events
}

func smallConfig() Config {
	config := DefaultConfig()
	config.EMATrendPeriod = 2
	config.EMAShortPeriod = 2
	config.EMALongPeriod = 3
	config.RSIPeriods = 1

	return config
}

func (suite *PipelineTestSuite) TestWarmup() {
	state := NewState()
	records, _ := suite.run(NewPipeline(smallConfig(), nil), state, 10, 11, 12)

	first := records[0]
	suite.Equal(suite.start, first.Time)
	suite.Equal(10.0, first.Close)
	suite.True(first.EMATrend.IsNone())
	suite.True(first.EMAShort.IsNone())
	suite.True(first.DEMAHistogram.IsNone())
	suite.True(first.EMATrendRate.IsNone())
	suite.True(first.EMATrendStdDev.IsNone())

	second := records[1]
	suite.InDelta(10.5, second.EMATrend.Unwrap(), 1e-9)
	suite.InDelta(10.5, second.EMAShort.Unwrap(), 1e-9)
	suite.True(second.EMALong.IsNone())
	suite.True(second.DEMAHistogram.IsNone(), "histogram needs both EMAs")
	suite.True(second.EMATrendRate.IsNone(), "previous trend EMA was undefined")

	third := records[2]
	suite.InDelta(11.5, third.EMATrend.Unwrap(), 1e-9)
	suite.InDelta(11.0, third.EMALong.Unwrap(), 1e-9)
	suite.InDelta(0.5, third.DEMAHistogram.Unwrap(), 1e-9)
	suite.InDelta((11.5-10.5)/10.5*100, third.EMATrendRate.Unwrap(), 1e-9)
	// window of floor(2/2) = 1 rate
	suite.InDelta(0.0, third.EMATrendStdDev.Unwrap(), 1e-12)
}

func (suite *PipelineTestSuite) TestAutoStdDevWindow() {
	config := smallConfig()
	config.EMATrendPeriod = 4
	config.EMAShortPeriod = 1
	config.EMALongPeriod = 1

	records, _ := suite.run(NewPipeline(config, nil), NewState(), 10, 10, 10, 10, 12, 15, 15)

	// trend EMA is defined from the fourth bar, the rate from the fifth,
	// and the stddev once two rates have been seen
	suite.True(records[4].EMATrendRate.IsSome())
	suite.True(records[4].EMATrendStdDev.IsNone())
	suite.True(records[5].EMATrendStdDev.IsSome())

	r1 := records[4].EMATrendRate.Unwrap()
	r2 := records[5].EMATrendRate.Unwrap()
	suite.InDelta(abs(r1-r2)/2, records[5].EMATrendStdDev.Unwrap(), 1e-9)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}

func (suite *PipelineTestSuite) TestFixedNeutralRate() {
	config := smallConfig()
	config.NeutralRate = FixedNeutralRate(0.25)
	registry := indicator.NewRegistry()

	records, _ := suite.run(NewPipeline(config, registry), NewState(), 10, 11, 12)

	for _, record := range records {
		suite.InDelta(0.25, record.EMATrendStdDev.Unwrap(), 1e-12)
	}

	suite.NotContains(registry.List(), SeriesEMATrendStdDev)
}

func (suite *PipelineTestSuite) TestTrendRateDivisionGuard() {
	prev := optional.Some(PeriodRecord{EMATrend: optional.Some(0.0)})
	suite.True(trendRate(optional.Some(1.0), prev).IsNone())

	suite.True(trendRate(optional.Some(1.0), optional.None[PeriodRecord]()).IsNone())
	suite.True(trendRate(optional.None[float64](), optional.Some(PeriodRecord{EMATrend: optional.Some(2.0)})).IsNone())

	rate := trendRate(optional.Some(3.0), optional.Some(PeriodRecord{EMATrend: optional.Some(2.0)}))
	suite.InDelta(50.0, rate.Unwrap(), 1e-9)
}

func (suite *PipelineTestSuite) TestOverboughtLatch() {
	state := NewState()
	state.InPreroll = false

	records, events := suite.run(NewPipeline(smallConfig(), nil), state, 10, 11, 12)

	suite.True(records[0].OverboughtRSI.IsNone())
	suite.InDelta(100.0, records[1].OverboughtRSI.Unwrap(), 1e-9)
	suite.Require().Len(events[1], 1)
	suite.Equal(LatchEvent{Kind: LatchOverbought, RSI: 100}, events[1][0])
	suite.Equal("overbought at 100.00 RSI, preparing to sell", events[1][0].Message())
	suite.True(state.Overbought)
	suite.False(state.Oversold)

	suite.Empty(events[2], "latch is set only once until cleared")
}

func (suite *PipelineTestSuite) TestOversoldLatch() {
	state := NewState()
	state.InPreroll = false

	_, events := suite.run(NewPipeline(smallConfig(), nil), state, 10, 9)

	suite.Require().Len(events[1], 1)
	suite.Equal(LatchOversold, events[1][0].Kind)
	suite.Equal("oversold at 0.00 RSI, preparing to buy", events[1][0].Message())
	suite.True(state.Oversold)
	suite.False(state.Overbought)
}

func (suite *PipelineTestSuite) TestLatchRetriggersAfterClear() {
	state := NewState()
	state.InPreroll = false
	p := NewPipeline(smallConfig(), nil)

	_, events := suite.run(p, state, 10, 11)
	suite.Len(events[1], 1)

	state.Overbought = false
	_, latches := p.Calculate(state, suite.bar(2, 12), optional.None[PeriodRecord]())
	suite.Len(latches, 1)
	suite.True(state.Overbought)
}

func (suite *PipelineTestSuite) TestLatchBlockedBySuppression() {
	state := NewState()
	state.InPreroll = false
	state.CancelUp = true
	state.CancelDown = true

	_, up := suite.run(NewPipeline(smallConfig(), nil), state, 10, 11)
	suite.Empty(up[1])

	_, down := suite.run(NewPipeline(smallConfig(), nil), state, 10, 9)
	suite.Empty(down[1])

	suite.False(state.Overbought)
	suite.False(state.Oversold)
}

func (suite *PipelineTestSuite) TestLatchBlockedDuringPreroll() {
	state := NewState()

	records, events := suite.run(NewPipeline(smallConfig(), nil), state, 10, 11)

	suite.True(records[1].OverboughtRSI.IsSome(), "RSI still warms up during preroll")
	suite.Empty(events[1])
	suite.False(state.Overbought)
}

func (suite *PipelineTestSuite) TestDisabledThresholds() {
	config := smallConfig()
	config.OverboughtRSI = 0
	config.OversoldRSI = 0
	registry := indicator.NewRegistry()

	state := NewState()
	state.InPreroll = false

	records, events := suite.run(NewPipeline(config, registry), state, 10, 11, 9)

	for i, record := range records {
		suite.True(record.OverboughtRSI.IsNone())
		suite.True(record.OversoldRSI.IsNone())
		suite.Empty(events[i])
	}

	suite.NotContains(registry.List(), SeriesOverboughtRSI)
	suite.NotContains(registry.List(), SeriesOversoldRSI)
}

func (suite *PipelineTestSuite) TestBothLatchesInOnePeriod() {
	config := smallConfig()
	config.OverboughtRSI = 50
	config.OversoldRSI = 100

	state := NewState()
	state.InPreroll = false

	_, events := suite.run(NewPipeline(config, nil), state, 10, 11)

	suite.Require().Len(events[1], 2)
	suite.Equal(LatchOverbought, events[1][0].Kind)
	suite.Equal(LatchOversold, events[1][1].Kind)
	suite.True(state.Overbought)
	suite.True(state.Oversold)
}
