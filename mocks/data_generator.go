package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-trend/internal/types"
)

// BarGenerator produces synthetic bars for strategy and engine tests. A fixed
// seed gives the same bars on every run.
type BarGenerator struct {
	rng *rand.Rand
}

func NewBarGenerator(seed int64) *BarGenerator {
	return &BarGenerator{rng: rand.New(rand.NewSource(seed))}
}

// BarSeries describes the bars to produce.
type BarSeries struct {
	Symbol   string
	Start    time.Time
	Interval time.Duration
	Count    int
	// Base is the price the series oscillates around
	Base float64
	// Noise is the largest relative jitter added to each close
	Noise float64
	// Volume is the mean volume of a bar
	Volume float64
}

// DefaultBarSeries returns 500 two minute BTCUSDT bars around 100.
func DefaultBarSeries() BarSeries {
	return BarSeries{
		Symbol:   "BTCUSDT",
		Start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Interval: 2 * time.Minute,
		Count:    500,
		Base:     100,
		Noise:    0.001,
		Volume:   10,
	}
}

// Wave returns bars whose close follows a sine of wavelength bars and
// relative amplitude, so the trend reverses every half wavelength.
func (g *BarGenerator) Wave(series BarSeries, wavelength int, amplitude float64) []types.MarketData {
	closes := make([]float64, series.Count)

	for i := range closes {
		phase := 2 * math.Pi * float64(i) / float64(wavelength)
		closes[i] = series.Base * (1 + amplitude*math.Sin(phase) + g.jitter(series.Noise))
	}

	return g.bars(series, closes)
}

func (g *BarGenerator) jitter(noise float64) float64 {
	return noise * (2*g.rng.Float64() - 1)
}

// bars opens each bar at the previous close and widens high and low by up to
// half the noise.
func (g *BarGenerator) bars(series BarSeries, closes []float64) []types.MarketData {
	bars := make([]types.MarketData, len(closes))
	open := series.Base

	for i, c := range closes {
		spread := math.Abs(g.jitter(series.Noise/2)) * c

		bars[i] = types.MarketData{
			Symbol: series.Symbol,
			Time:   series.Start.Add(time.Duration(i) * series.Interval),
			Open:   round4(open),
			High:   round4(math.Max(open, c) + spread),
			Low:    round4(math.Min(open, c) - spread),
			Close:  round4(c),
			Volume: round4(series.Volume * (1 + g.jitter(0.5))),
		}

		open = c
	}

	return bars
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
