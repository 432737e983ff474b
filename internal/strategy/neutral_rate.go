package strategy

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-trend/pkg/errors"
	"gopkg.in/yaml.v3"
)

// NeutralRateAuto is the sentinel that selects the adaptive stddev band.
const NeutralRateAuto = "auto"

// NeutralRate is the half width of the band around a zero trend rate inside
// which no trend signal fires. Auto derives the band from the rolling
// standard deviation of the trend rate; otherwise Value is used as is and 0
// collapses the band.
type NeutralRate struct {
	Auto  bool
	Value float64
}

// AutoNeutralRate returns the adaptive band.
func AutoNeutralRate() NeutralRate {
	return NeutralRate{Auto: true}
}

// FixedNeutralRate returns a constant band.
func FixedNeutralRate(value float64) NeutralRate {
	return NeutralRate{Value: value}
}

// ParseNeutralRate parses "auto" or a non-negative number.
func ParseNeutralRate(s string) (NeutralRate, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, NeutralRateAuto) {
		return AutoNeutralRate(), nil
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return NeutralRate{}, errors.Wrapf(errors.ErrCodeInvalidNeutralRate, err, "neutral_rate must be %q or a number, got %q", NeutralRateAuto, s)
	}

	rate := FixedNeutralRate(value)
	if err := rate.Validate(); err != nil {
		return NeutralRate{}, err
	}

	return rate, nil
}

// Validate rejects negative fixed bands.
func (n NeutralRate) Validate() error {
	if !n.Auto && n.Value < 0 {
		return errors.Newf(errors.ErrCodeInvalidNeutralRate, "neutral_rate must not be negative, got %v", n.Value)
	}

	return nil
}

func (n NeutralRate) String() string {
	if n.Auto {
		return NeutralRateAuto
	}

	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// UnmarshalYAML accepts a scalar "auto" or number.
func (n *NeutralRate) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Newf(errors.ErrCodeInvalidNeutralRate, "neutral_rate must be a scalar (line %d)", node.Line)
	}

	rate, err := ParseNeutralRate(node.Value)
	if err != nil {
		return err
	}

	*n = rate

	return nil
}

// MarshalYAML writes "auto" or the number.
func (n NeutralRate) MarshalYAML() (any, error) {
	if n.Auto {
		return NeutralRateAuto, nil
	}

	return n.Value, nil
}

// UnmarshalJSON accepts "auto", a number, or a numeric string.
func (n *NeutralRate) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidNeutralRate, "failed to decode neutral_rate", err)
	}

	switch v := raw.(type) {
	case string:
		rate, err := ParseNeutralRate(v)
		if err != nil {
			return err
		}

		*n = rate
	case float64:
		rate := FixedNeutralRate(v)
		if err := rate.Validate(); err != nil {
			return err
		}

		*n = rate
	default:
		return errors.Newf(errors.ErrCodeInvalidNeutralRate, "neutral_rate must be %q or a number, got %s", NeutralRateAuto, string(data))
	}

	return nil
}

// MarshalJSON writes "auto" or the number.
func (n NeutralRate) MarshalJSON() ([]byte, error) {
	if n.Auto {
		return json.Marshal(NeutralRateAuto)
	}

	return json.Marshal(n.Value)
}

// JSONSchema describes the two accepted forms.
func (NeutralRate) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Title:       "Neutral Rate",
		Description: `Avoid trades while abs(trend rate) is under this value. "auto" uses the rolling stddev of the trend rate, 0 disables the band`,
		Default:     NeutralRateAuto,
		OneOf: []*jsonschema.Schema{
			{Type: "string", Const: NeutralRateAuto},
			{Type: "number", Minimum: json.Number("0")},
		},
	}
}
