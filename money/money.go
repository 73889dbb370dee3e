// Package money provides currency-tagged amounts.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 currency code.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	JPY Currency = "JPY"
	KRW Currency = "KRW"
	GBP Currency = "GBP"
)

// minorUnits holds the number of decimal places for currencies that do not use two.
var minorUnits = map[Currency]int32{
	JPY: 0,
	KRW: 0,
}

// ParseCurrency validates and normalizes a three-letter currency code.
func ParseCurrency(s string) (Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if len(code) != 3 {
		return "", fmt.Errorf("invalid currency code %q", s)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("invalid currency code %q", s)
		}
	}
	return Currency(code), nil
}

// MinorUnits returns the number of decimal places used when rounding amounts in c.
func (c Currency) MinorUnits() int32 {
	if n, ok := minorUnits[c]; ok {
		return n
	}
	return 2
}

func (c Currency) String() string { return string(c) }

// Amount is a decimal quantity of a single currency.
type Amount struct {
	Currency Currency
	Value    decimal.Decimal
}

// Of builds an amount from a decimal value.
func Of(c Currency, value decimal.Decimal) Amount {
	return Amount{Currency: c, Value: value}
}

// OfFloat builds an amount from a float64 value.
func OfFloat(c Currency, value float64) Amount {
	return Amount{Currency: c, Value: decimal.NewFromFloat(value)}
}

// FromMinor builds an amount from integer minor units, e.g. cents for USD.
func FromMinor(c Currency, units int64) Amount {
	return Amount{Currency: c, Value: decimal.New(units, -c.MinorUnits())}
}

// Zero returns a zero amount in c.
func Zero(c Currency) Amount { return Amount{Currency: c, Value: decimal.Zero} }

// Add sums two amounts of the same currency.
func (a Amount) Add(b Amount) (Amount, error) {
	if a.Currency != b.Currency {
		return Amount{}, fmt.Errorf("currency mismatch: %s vs %s", a.Currency, b.Currency)
	}
	return Amount{Currency: a.Currency, Value: a.Value.Add(b.Value)}, nil
}

func (a Amount) Neg() Amount { return Amount{Currency: a.Currency, Value: a.Value.Neg()} }
func (a Amount) Mul(s decimal.Decimal) Amount {
	return Amount{Currency: a.Currency, Value: a.Value.Mul(s)}
}
func (a Amount) IsNegative() bool { return a.Value.IsNegative() }
func (a Amount) IsZero() bool     { return a.Value.IsZero() }

// Rounded rounds the value to the currency's minor units.
func (a Amount) Rounded() Amount {
	return Amount{Currency: a.Currency, Value: a.Value.Round(a.Currency.MinorUnits())}
}

// Minor returns the amount in integer minor units, rounded half away from zero.
func (a Amount) Minor() int64 {
	return a.Value.Shift(a.Currency.MinorUnits()).Round(0).IntPart()
}

func (a Amount) String() string {
	return fmt.Sprintf("%s %s", a.Currency, a.Value.StringFixed(a.Currency.MinorUnits()))
}
