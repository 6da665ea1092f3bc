package types

import (
	ierr "github.com/gymmawy/gymmawy/internal/errors"
)

// Currency is one of the currencies the store sells in. There is no purchase
// time conversion between them; a plan either has a price row for a currency
// or the purchase fails.
type Currency string

const (
	CurrencyEGP Currency = "EGP"
	CurrencySAR Currency = "SAR"
	CurrencyAED Currency = "AED"
	CurrencyUSD Currency = "USD"
)

func (c Currency) String() string {
	return string(c)
}

func (c Currency) Validate() error {
	switch c {
	case CurrencyEGP, CurrencySAR, CurrencyAED, CurrencyUSD:
		return nil
	default:
		return ierr.NewErrorf("invalid currency: %s", c).
			WithHint("Currency must be one of EGP, SAR, AED, USD").
			Mark(ierr.ErrValidation)
	}
}

// Currencies lists every supported currency in a stable order.
func Currencies() []Currency {
	return []Currency{CurrencyEGP, CurrencySAR, CurrencyAED, CurrencyUSD}
}

// GetCurrencyPrecision returns the number of decimal places amounts in the
// given currency are rounded to. All supported currencies use two.
func GetCurrencyPrecision(currency Currency) int32 {
	return 2
}
