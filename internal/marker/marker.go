// Package marker records chart marks for emitted signals and RSI latch events.
package marker

import (
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-trend/internal/types"
)

const (
	CategorySignal = "signal"
	CategoryLatch  = "latch"
)

// Marker records marks in the order they arrive.
type Marker interface {
	// Mark records one mark
	Mark(mark types.Mark) error
	// Marks returns all recorded marks ordered by time
	Marks() ([]types.Mark, error)
	// Write exports the marks into dir
	Write(dir string) error
	// Close releases any resources
	Close() error
}

// SignalMark builds the mark for an emitted signal.
func SignalMark(signal types.Signal, message string) types.Mark {
	shape := types.MarkShapeTriangle
	if !signal.Type.IsAction() {
		shape = types.MarkShapeCircle
	}

	return types.Mark{
		Id:       uuid.NewString(),
		Symbol:   signal.Symbol,
		Time:     signal.Time,
		Price:    signal.Price,
		Color:    types.MarkColorForSignal(signal.Type),
		Shape:    shape,
		Title:    signal.Type.String(),
		Message:  message,
		Category: CategorySignal,
		Signal:   optional.Some(signal),
	}
}

// LatchMark builds the mark for an overbought or oversold latch.
func LatchMark(symbol string, at time.Time, price float64, title string, message string) types.Mark {
	return types.Mark{
		Id:       uuid.NewString(),
		Symbol:   symbol,
		Time:     at,
		Price:    price,
		Color:    types.MarkColorYellow,
		Shape:    types.MarkShapeSquare,
		Title:    title,
		Message:  message,
		Category: CategoryLatch,
		Signal:   optional.None[types.Signal](),
	}
}
