package types

import (
	"fmt"
	"strings"

	"github.com/rxtech-lab/argo-trend/pkg/errors"
)

// Selector names one market, written as exchange.ASSET-CURRENCY, e.g. binance.BTC-USDT.
type Selector struct {
	Exchange string
	Asset    string
	Currency string
}

// ParseSelector parses a selector string. Asset and currency are upper-cased.
func ParseSelector(s string) (Selector, error) {
	exchange, product, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok || exchange == "" {
		return Selector{}, errors.Newf(errors.ErrCodeInvalidSelector, "selector %q must look like exchange.ASSET-CURRENCY", s)
	}

	asset, currency, ok := strings.Cut(product, "-")
	if !ok || asset == "" || currency == "" {
		return Selector{}, errors.Newf(errors.ErrCodeInvalidSelector, "selector %q must look like exchange.ASSET-CURRENCY", s)
	}

	return Selector{
		Exchange: strings.ToLower(exchange),
		Asset:    strings.ToUpper(asset),
		Currency: strings.ToUpper(currency),
	}, nil
}

// ProductID returns ASSET-CURRENCY.
func (s Selector) ProductID() string {
	return s.Asset + "-" + s.Currency
}

// Symbol returns the exchange ticker, e.g. BTCUSDT.
func (s Selector) Symbol() string {
	return s.Asset + s.Currency
}

func (s Selector) String() string {
	return fmt.Sprintf("%s.%s", s.Exchange, s.ProductID())
}
