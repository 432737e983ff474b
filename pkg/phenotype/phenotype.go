// Package phenotype describes the search space of tunable strategy options.
//
// A Set maps option names to descriptors that an external hyperparameter
// optimizer samples from. Descriptors are metadata: nothing in the signal
// engine evaluates them.
package phenotype

import (
	"math"
	"slices"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-trend/pkg/errors"
)

// Kind is the sampling rule of a descriptor.
type Kind string

const (
	// KindInt samples an integer in [Min, Max].
	KindInt Kind = "int"
	// KindInt0 samples an integer in [Min, Max] or 0, where 0 disables the option.
	KindInt0 Kind = "int0"
	// KindFloat samples a float in [Min, Max].
	KindFloat Kind = "float"
	// KindIntPeriod samples an integer in [Min, Max] suffixed with Period, e.g. "15m".
	KindIntPeriod Kind = "intperiod"
	// KindList picks one of Options.
	KindList Kind = "listOption"
)

// Descriptor is the search range of one option.
type Descriptor struct {
	Kind    Kind     `yaml:"type" json:"type" validate:"required,oneof=int int0 float intperiod listOption"`
	Min     float64  `yaml:"min,omitempty" json:"min,omitempty" validate:"ltefield=Max"`
	Max     float64  `yaml:"max,omitempty" json:"max,omitempty"`
	Period  string   `yaml:"period,omitempty" json:"period,omitempty" validate:"omitempty,oneof=s m h d"`
	Options []string `yaml:"options,omitempty" json:"options,omitempty"`
}

// Range is an integer range.
func Range(minValue, maxValue int) Descriptor {
	return Descriptor{Kind: KindInt, Min: float64(minValue), Max: float64(maxValue)}
}

// Range0 is an integer range that may also be 0.
func Range0(minValue, maxValue int) Descriptor {
	return Descriptor{Kind: KindInt0, Min: float64(minValue), Max: float64(maxValue)}
}

// RangeFloat is a float range.
func RangeFloat(minValue, maxValue float64) Descriptor {
	return Descriptor{Kind: KindFloat, Min: minValue, Max: maxValue}
}

// RangePeriod is an integer range of period lengths in the given unit.
func RangePeriod(minValue, maxValue int, unit string) Descriptor {
	return Descriptor{Kind: KindIntPeriod, Min: float64(minValue), Max: float64(maxValue), Period: unit}
}

// ListOption is a choice between options.
func ListOption(options ...string) Descriptor {
	return Descriptor{Kind: KindList, Options: options}
}

// Validate checks that the descriptor is well formed.
func (d Descriptor) Validate() error {
	validate := validator.New()
	if err := validate.Struct(d); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, "invalid phenotype", err)
	}

	if d.Kind == KindIntPeriod && d.Period == "" {
		return errors.New(errors.ErrCodeMissingParameter, "period range needs a unit")
	}

	if d.Kind == KindList && len(d.Options) == 0 {
		return errors.New(errors.ErrCodeMissingParameter, "list option needs at least one choice")
	}

	return nil
}

// Contains reports whether a numeric value lies in the search range.
// List descriptors never contain numbers.
func (d Descriptor) Contains(value float64) bool {
	switch d.Kind {
	case KindInt, KindIntPeriod:
		return isWhole(value) && value >= d.Min && value <= d.Max
	case KindInt0:
		return value == 0 || (isWhole(value) && value >= d.Min && value <= d.Max)
	case KindFloat:
		return value >= d.Min && value <= d.Max
	default:
		return false
	}
}

// ContainsOption reports whether option is one of a list descriptor's choices.
func (d Descriptor) ContainsOption(option string) bool {
	if d.Kind != KindList {
		return false
	}

	return slices.Contains(d.Options, option)
}

func isWhole(value float64) bool {
	return value == math.Trunc(value)
}

// Set is a named collection of descriptors.
type Set map[string]Descriptor

// Names returns the option names in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Merge returns a new set holding the descriptors of s and other.
// Entries of other win on conflict.
func (s Set) Merge(other Set) Set {
	merged := make(Set, len(s)+len(other))
	for name, d := range s {
		merged[name] = d
	}

	for name, d := range other {
		merged[name] = d
	}

	return merged
}

// Validate validates every descriptor of the set.
func (s Set) Validate() error {
	for _, name := range s.Names() {
		if err := s[name].Validate(); err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidParameter, err, "phenotype %s", name)
		}
	}

	return nil
}
