package indicator

import (
	"github.com/sdcoffey/big"
)

// maxHistory bounds the values kept per series. techan caches one result per
// index, so long runs compact the history down to a seed of the current state.
const maxHistory = 4096

// series is an append-only techan.Indicator over the streamed values.
type series struct {
	values []big.Decimal
}

// Calculate implements techan.Indicator.
func (s *series) Calculate(index int) big.Decimal {
	return s.values[index]
}

// add appends value and returns its index.
func (s *series) add(value float64) int {
	s.values = append(s.values, big.NewDecimal(value))

	return len(s.values) - 1
}

// seeded returns a series of n copies of value. An SMA seeded EMA or MMA over
// it starts exactly at value.
func seeded(value big.Decimal, n int) *series {
	values := make([]big.Decimal, n)
	for i := range values {
		values[i] = value
	}

	return &series{values: values}
}

// tail returns a series holding the last n values of s.
func (s *series) tail(n int) *series {
	if n > len(s.values) {
		n = len(s.values)
	}

	values := make([]big.Decimal, n)
	copy(values, s.values[len(s.values)-n:])

	return &series{values: values}
}
