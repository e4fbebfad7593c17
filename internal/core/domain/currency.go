package domain

import (
	"fmt"
	"strings"
)

// Currency is a settlement currency. Prices are authored independently per
// currency; there is no fixed exchange rate between them.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyV   Currency = "V" // Verde, community currency
	CurrencyY   Currency = "Y" // Yield, gift currency
)

// Currencies lists every supported settlement currency in display order.
var Currencies = []Currency{CurrencyUSD, CurrencyV, CurrencyY}

func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyV, CurrencyY:
		return true
	}
	return false
}

func (c Currency) String() string {
	return string(c)
}

// ParseCurrency accepts a currency code in any letter case. An empty string
// resolves to USD.
func ParseCurrency(s string) (Currency, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CurrencyUSD, nil
	}
	c := Currency(strings.ToUpper(s))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCurrency, s)
	}
	return c, nil
}
