package types

// Tag is the qualitative label attached to a report column. The reporting
// layer decides how each tag is styled.
type Tag string

const (
	TagBullish Tag = "bullish"
	TagBearish Tag = "bearish"
	TagNeutral Tag = "neutral"
)
