package strategy

import "github.com/rxtech-lab/argo-trend/pkg/phenotype"

// CommonPhenotypes is the search space shared by every strategy.
func CommonPhenotypes() phenotype.Set {
	return phenotype.Set{
		"order_type":             phenotype.ListOption("maker", "taker"),
		"period_length":          phenotype.RangePeriod(10, 120, "m"),
		"min_periods":            phenotype.Range(1, 100),
		"markdown_buy_pct":       phenotype.RangeFloat(-1, 5),
		"markup_sell_pct":        phenotype.RangeFloat(-1, 5),
		"profit_stop_enable_pct": phenotype.Range0(1, 20),
		"profit_stop_pct":        phenotype.Range(1, 20),
		"max_buy_loss_pct":       phenotype.RangeFloat(0.001, 4),
		"max_sell_loss_pct":      phenotype.RangeFloat(0.001, 4),
		"sell_stop_pct":          phenotype.RangeFloat(1, 4),
		"buy_stop_pct":           phenotype.RangeFloat(1, 4),
	}
}

// Phenotypes is the search space of trend_ema_dema, common options included.
func Phenotypes() phenotype.Set {
	return CommonPhenotypes().Merge(phenotype.Set{
		"ema_short_period": phenotype.Range(1, 20),
		"ema_long_period":  phenotype.Range(20, 100),
		"ema_trend_period": phenotype.Range(1, 40),
		"overbought_rsi":   phenotype.Range(70, 100),
		"oversold_rsi":     phenotype.Range(0, 30),
		"rsi_periods":      phenotype.Range(1, 200),
	})
}
