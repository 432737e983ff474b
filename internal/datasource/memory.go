package datasource

import (
	"context"
	"sort"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-trend/internal/types"
)

// MemoryDataSource serves bars held in memory. Bars are sorted by time on creation.
type MemoryDataSource struct {
	bars []types.MarketData
}

func NewMemoryDataSource(bars []types.MarketData) *MemoryDataSource {
	sorted := make([]types.MarketData, len(bars))
	copy(sorted, bars)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	return &MemoryDataSource{bars: sorted}
}

// ReadAll implements DataSource.
func (m *MemoryDataSource) ReadAll(_ context.Context, start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.MarketData, error) bool) {
	return func(yield func(types.MarketData, error) bool) {
		for _, bar := range m.bars {
			if !inRange(bar.Time, start, end) {
				continue
			}

			if !yield(bar, nil) {
				return
			}
		}
	}
}

// Count implements DataSource.
func (m *MemoryDataSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	count := 0

	for _, bar := range m.bars {
		if inRange(bar.Time, start, end) {
			count++
		}
	}

	return count, nil
}

// Close implements DataSource.
func (m *MemoryDataSource) Close() error {
	return nil
}
