// Package trading turns emitted signals into fills.
package trading

import (
	"context"
	"time"

	"github.com/rxtech-lab/argo-trend/internal/types"
)

// Fill is an executed signal.
type Fill struct {
	Id     string           `json:"id"`
	Symbol string           `json:"symbol"`
	Side   types.SignalType `json:"side"`
	Price  float64          `json:"price"`
	Time   time.Time        `json:"time"`
	Reason string           `json:"reason"`
}

// Executor executes buy and sell signals.
type Executor interface {
	// Execute fills the signal. Signals that do not ask for a trade are rejected.
	Execute(ctx context.Context, signal types.Signal) (Fill, error)
	// Fills returns every fill made so far in execution order
	Fills() []Fill
}
