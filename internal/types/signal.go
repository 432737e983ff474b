package types

import "time"

type SignalType string

const (
	// SignalTypeBuy tells the executor to buy
	SignalTypeBuy SignalType = "buy"
	// SignalTypeSell tells the executor to sell
	SignalTypeSell SignalType = "sell"
	// SignalTypeNone means the period produced no signal
	SignalTypeNone SignalType = "none"
)

// IsAction reports whether the signal asks the executor to trade.
func (s SignalType) IsAction() bool {
	return s == SignalTypeBuy || s == SignalTypeSell
}

func (s SignalType) String() string {
	if s == "" {
		return string(SignalTypeNone)
	}

	return string(s)
}

type Signal struct {
	// Time is the time of the bar that produced the signal
	Time time.Time
	// Type is the type of the signal
	Type SignalType
	// Name is the name of the strategy that emitted the signal
	Name string
	// Reason is the state machine branch that fired
	Reason string
	// Symbol is the symbol of the signal
	Symbol string
	// Price is the close of the bar that produced the signal
	Price float64
	// Trend is the strategy trend after the decision
	Trend Trend
}
