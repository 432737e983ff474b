package strategy

import (
	"fmt"
	"strings"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-trend/internal/types"
	"github.com/shopspring/decimal"
)

// ColumnWidth is the width of every report column.
const ColumnWidth = 10

// Column is one formatted report cell and its display tag.
type Column struct {
	Text string
	Tag  types.Tag
}

// Report formats the trend rate and histogram of rec. During warm-up, when
// the histogram is undefined, it returns a single blank column.
func Report(rec PeriodRecord) []Column {
	if rec.DEMAHistogram.IsNone() {
		return []Column{blankColumn()}
	}

	histogram := rec.DEMAHistogram.Unwrap()

	histogramTag := types.TagBearish
	if histogram > 0 {
		histogramTag = types.TagBullish
	}

	rate := blankColumn()
	if rec.EMATrendRate.IsSome() {
		rate = Column{
			Text: formatSigned(rec.EMATrendRate.Unwrap()),
			Tag:  rateTag(rec.EMATrendRate, rec.EMATrendStdDev),
		}
	}

	return []Column{
		rate,
		{Text: formatSigned(histogram), Tag: histogramTag},
	}
}

func rateTag(rate, band optional.Option[float64]) types.Tag {
	if rate.IsNone() || band.IsNone() {
		return types.TagNeutral
	}

	switch {
	case rate.Unwrap() > band.Unwrap():
		return types.TagBullish
	case rate.Unwrap() <= -band.Unwrap():
		return types.TagBearish
	default:
		return types.TagNeutral
	}
}

// formatSigned renders v as +0.0000 right aligned to ColumnWidth.
func formatSigned(v float64) string {
	d := decimal.NewFromFloat(v).Round(4)

	text := d.StringFixed(4)
	if d.Sign() >= 0 {
		text = "+" + text
	}

	return fmt.Sprintf("%*s", ColumnWidth, text)
}

func blankColumn() Column {
	return Column{Text: strings.Repeat(" ", ColumnWidth), Tag: types.TagNeutral}
}
