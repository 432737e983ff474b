package strategy

import "github.com/rxtech-lab/argo-trend/internal/types"

// State is the decision state carried from one period to the next.
//
// The pipeline sets the Overbought and Oversold latches, Decide owns every
// other transition, and ActedOnTrend is set only by TrendEMADEMA.AcknowledgeTrade
// once the executor reports a fill.
type State struct {
	Trend  types.Trend
	Signal types.SignalType

	Overbought bool
	Oversold   bool

	CancelUp   bool
	CancelDown bool

	ActedOnTrend bool
	InPreroll    bool
}

// NewState returns the state of a fresh strategy, which starts in preroll.
func NewState() *State {
	return &State{
		Trend:     types.TrendNone,
		Signal:    types.SignalTypeNone,
		InPreroll: true,
	}
}
