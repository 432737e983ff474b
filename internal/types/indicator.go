package types

type IndicatorType string

const (
	IndicatorTypeEMA    IndicatorType = "ema"
	IndicatorTypeRSI    IndicatorType = "rsi"
	IndicatorTypeStdDev IndicatorType = "stddev"
)
