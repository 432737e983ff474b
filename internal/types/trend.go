package types

// Trend is the market state label kept by the strategy between periods.
type Trend string

const (
	TrendNone       Trend = "none"
	TrendUp         Trend = "up"
	TrendDown       Trend = "down"
	TrendOverbought Trend = "overbought"
	TrendOversold   Trend = "oversold"
)

func (t Trend) String() string {
	if t == "" {
		return string(TrendNone)
	}

	return string(t)
}
