package indicator

import (
	"sort"
	"sync"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-trend/internal/types"
	"github.com/rxtech-lab/argo-trend/pkg/errors"
)

// Registry holds one streaming indicator per named series, e.g. "ema_trend"
// or "overbought_rsi".
type Registry interface {
	Register(seriesID string, indicator Indicator) error
	Get(seriesID string) (Indicator, error)
	// Update feeds value into the series, creating it with the given kind and
	// period on first use. A series whose kind or period changed is rebuilt.
	Update(seriesID string, kind types.IndicatorType, period int, value float64) optional.Option[float64]
	List() []string
	Remove(seriesID string) error
	Reset()
}

// RegistryV1 is the default Registry.
type RegistryV1 struct {
	series map[string]Indicator
	mu     sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() Registry {
	return &RegistryV1{
		series: make(map[string]Indicator),
		mu:     sync.RWMutex{},
	}
}

// Register adds an indicator under seriesID.
func (r *RegistryV1) Register(seriesID string, indicator Indicator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.series[seriesID]; exists {
		return errors.Newf(errors.ErrCodeIndicatorAlreadyExists, "series %s already registered", seriesID)
	}

	r.series[seriesID] = indicator

	return nil
}

// Get retrieves the indicator of a series.
func (r *RegistryV1) Get(seriesID string) (Indicator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	indicator, exists := r.series[seriesID]
	if !exists {
		return nil, errors.Newf(errors.ErrCodeIndicatorNotFound, "series %s not found", seriesID)
	}

	return indicator, nil
}

// Update implements Registry. Unknown kinds yield None.
func (r *RegistryV1) Update(seriesID string, kind types.IndicatorType, period int, value float64) optional.Option[float64] {
	r.mu.Lock()
	defer r.mu.Unlock()

	indicator, exists := r.series[seriesID]
	if !exists || indicator.Name() != kind || indicator.Period() != clampPeriod(period) {
		created, ok := New(kind, period)
		if !ok {
			return optional.None[float64]()
		}

		indicator = created
		r.series[seriesID] = indicator
	}

	return indicator.Update(value)
}

// List returns the registered series ids in sorted order.
func (r *RegistryV1) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.series))
	for name := range r.series {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Remove deletes a series.
func (r *RegistryV1) Remove(seriesID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.series[seriesID]; !exists {
		return errors.Newf(errors.ErrCodeIndicatorNotFound, "series %s not found", seriesID)
	}

	delete(r.series, seriesID)

	return nil
}

// Reset clears the observations of every series but keeps them registered.
func (r *RegistryV1) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, indicator := range r.series {
		indicator.Reset()
	}
}
