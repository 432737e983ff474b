package types

import (
	"time"

	"github.com/moznion/go-optional"
)

type MarkShape string

const (
	MarkShapeCircle   MarkShape = "circle"
	MarkShapeSquare   MarkShape = "square"
	MarkShapeTriangle MarkShape = "triangle"
)

type MarkColor string

const (
	MarkColorRed    MarkColor = "red"
	MarkColorGreen  MarkColor = "green"
	MarkColorBlue   MarkColor = "blue"
	MarkColorYellow MarkColor = "yellow"
	MarkColorPurple MarkColor = "purple"
	MarkColorOrange MarkColor = "orange"
)

// Mark records a point in time worth showing on a chart: an emitted signal or
// an RSI latch event.
type Mark struct {
	Id       string
	Symbol   string
	Time     time.Time
	Price    float64
	Color    MarkColor
	Shape    MarkShape
	Title    string
	Message  string
	Category string
	Signal   optional.Option[Signal]
}

// MarkColorForSignal returns the chart color used for a signal type.
func MarkColorForSignal(signalType SignalType) MarkColor {
	switch signalType {
	case SignalTypeBuy:
		return MarkColorGreen
	case SignalTypeSell:
		return MarkColorRed
	default:
		return MarkColorBlue
	}
}
