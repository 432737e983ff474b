// Package datasource reads finalized price bars in time order.
package datasource

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-trend/internal/types"
)

type DataSource interface {
	// ReadAll yields the bars between start and end, both inclusive, in ascending time order.
	// An error is yielded once and ends the sequence. Cancelling ctx stops the read.
	ReadAll(ctx context.Context, start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.MarketData, error) bool)
	// Count returns the number of bars ReadAll would yield for the same range
	Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error)
	// Close releases any resources
	Close() error
}

// inRange reports whether t lies within the optional bounds.
func inRange(t time.Time, start optional.Option[time.Time], end optional.Option[time.Time]) bool {
	if start.IsSome() && t.Before(start.Unwrap()) {
		return false
	}

	if end.IsSome() && t.After(end.Unwrap()) {
		return false
	}

	return true
}
