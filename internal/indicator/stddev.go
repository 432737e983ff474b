package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-trend/internal/types"
	"github.com/sdcoffey/techan"
)

// StdDev is the population standard deviation over the last window observations.
type StdDev struct {
	window int
	count  int
	values *series
	stddev techan.Indicator
	value  float64
}

// NewStdDev creates a rolling standard deviation. Windows below 1 are treated as 1.
func NewStdDev(window int) *StdDev {
	stddev := &StdDev{window: clampPeriod(window)}
	stddev.Reset()

	return stddev
}

// Name returns the name of the indicator.
func (s *StdDev) Name() types.IndicatorType {
	return types.IndicatorTypeStdDev
}

func (s *StdDev) Period() int { return s.window }

// Update feeds the next observation.
func (s *StdDev) Update(value float64) optional.Option[float64] {
	s.count++

	index := s.values.add(value)
	if !s.Ready() {
		return optional.None[float64]()
	}

	s.value = s.stddev.Calculate(index).Float()

	if len(s.values.values) >= maxHistory {
		s.track(s.values.tail(s.window))
	}

	return s.Value()
}

func (s *StdDev) Value() optional.Option[float64] {
	if !s.Ready() {
		return optional.None[float64]()
	}

	return optional.Some(s.value)
}

func (s *StdDev) Ready() bool { return s.count >= s.window }

func (s *StdDev) Reset() {
	s.count = 0
	s.value = 0
	s.track(&series{})
}

func (s *StdDev) track(values *series) {
	s.values = values
	s.stddev = techan.NewWindowedStandardDeviationIndicator(values, s.window)
}
