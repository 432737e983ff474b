package strategy

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-trend/internal/types"
)

// Branch names the state machine branch that decided a period.
type Branch string

const (
	BranchNone             Branch = "none"
	BranchPreroll          Branch = "preroll"
	BranchOverbought       Branch = "overbought"
	BranchOversold         Branch = "oversold"
	BranchBullishCrossover Branch = "bullish_crossover"
	BranchBearishCrossover Branch = "bearish_crossover"
	BranchTrendUp          Branch = "trend_up"
	BranchTrendDown        Branch = "trend_down"
)

// Crossover notices.
const (
	NoticeBullish = "entering bullish market"
	NoticeBearish = "entering bearish market"
)

// Decision is the outcome of one period.
type Decision struct {
	Signal types.SignalType
	Branch Branch
	// Notice is set on histogram crossovers and empty otherwise
	Notice string
}

// Decide runs the signal state machine for one period. The first matching
// branch wins:
//
//  1. preroll: no decision
//  2. overbought latch: sell, and suppress trend-band buys
//  3. oversold latch: buy, and suppress trend-band sells
//  4. histogram crossing above zero: buy
//  5. histogram above zero with the trend rate outside the neutral band:
//     buy on an up trend, sell on a down trend, once per trend entry
//  6. histogram crossing below zero: sell
//
// Anything undefined at a comparison skips that branch. state.Signal is
// reset every call and mirrors the returned signal.
func Decide(state *State, cur PeriodRecord, prev optional.Option[PeriodRecord]) Decision {
	state.Signal = types.SignalTypeNone

	if state.InPreroll {
		return Decision{Signal: types.SignalTypeNone, Branch: BranchPreroll}
	}

	if cur.OverboughtRSI.IsSome() && state.Overbought {
		state.Overbought = false
		state.Trend = types.TrendOverbought
		state.CancelUp = true

		return emit(state, types.SignalTypeSell, BranchOverbought, "")
	}

	if cur.OversoldRSI.IsSome() && state.Oversold {
		state.Oversold = false
		state.Trend = types.TrendOversold
		state.CancelDown = true

		return emit(state, types.SignalTypeBuy, BranchOversold, "")
	}

	if decision, ok := decideHistogram(state, cur, prev); ok {
		return decision
	}

	return Decision{Signal: types.SignalTypeNone, Branch: BranchNone}
}

func decideHistogram(state *State, cur PeriodRecord, prev optional.Option[PeriodRecord]) (Decision, bool) {
	if cur.DEMAHistogram.IsNone() || prev.IsNone() || prev.Unwrap().DEMAHistogram.IsNone() {
		return Decision{}, false
	}

	histogram := cur.DEMAHistogram.Unwrap()
	last := prev.Unwrap().DEMAHistogram.Unwrap()

	switch {
	case histogram > 0:
		if last <= 0 {
			state.CancelDown = false

			return emit(state, types.SignalTypeBuy, BranchBullishCrossover, NoticeBullish), true
		}

		if cur.EMATrendRate.IsNone() || cur.EMATrendStdDev.IsNone() {
			return Decision{}, false
		}

		rate := cur.EMATrendRate.Unwrap()
		band := cur.EMATrendStdDev.Unwrap()

		if !state.CancelUp && rate > band {
			enterTrend(state, types.TrendUp)
			state.CancelDown = false

			return emit(state, actedSignal(state, types.SignalTypeBuy), BranchTrendUp, ""), true
		}

		if !state.CancelDown && rate < -band {
			enterTrend(state, types.TrendDown)
			state.CancelUp = false

			return emit(state, actedSignal(state, types.SignalTypeSell), BranchTrendDown, ""), true
		}
	case histogram < 0:
		if last >= 0 {
			state.CancelUp = false

			return emit(state, types.SignalTypeSell, BranchBearishCrossover, NoticeBearish), true
		}
	}

	return Decision{}, false
}

// enterTrend sets the trend, forgetting a previous trade when the trend is new.
func enterTrend(state *State, trend types.Trend) {
	if state.Trend != trend {
		state.ActedOnTrend = false
	}

	state.Trend = trend
}

func actedSignal(state *State, signal types.SignalType) types.SignalType {
	if state.ActedOnTrend {
		return types.SignalTypeNone
	}

	return signal
}

func emit(state *State, signal types.SignalType, branch Branch, notice string) Decision {
	state.Signal = signal

	return Decision{Signal: signal, Branch: branch, Notice: notice}
}
