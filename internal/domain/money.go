package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency codes with a known won exchange rate.
const (
	CurrencyKRW = "KRW"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
)

var wonPerUnit = map[string]decimal.Decimal{
	CurrencyKRW: decimal.NewFromInt(1),
	CurrencyUSD: decimal.NewFromInt(1300),
	CurrencyEUR: decimal.NewFromInt(1400),
}

// Money is an amount in a currency. Amounts are decimal; there is no float
// arithmetic anywhere on the price path.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// NewMoney builds a Money from an integer amount.
func NewMoney(amount int64, currency string) Money {
	return Money{Amount: decimal.NewFromInt(amount), Currency: strings.ToUpper(currency)}
}

// ParseMoney builds a Money from a decimal string such as "129.99".
func ParseMoney(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	return Money{Amount: d, Currency: strings.ToUpper(currency)}, nil
}

// ToKRW converts m to won and rounds to the nearest 100.
func (m Money) ToKRW() (Money, error) {
	rate, ok := wonPerUnit[strings.ToUpper(m.Currency)]
	if !ok {
		return Money{}, fmt.Errorf("no exchange rate for currency %q", m.Currency)
	}
	return Money{Amount: m.Amount.Mul(rate).Round(-2), Currency: CurrencyKRW}, nil
}

// String renders the amount and currency, e.g. "129.99 USD".
func (m Money) String() string {
	return m.Amount.String() + " " + m.Currency
}

// DiscountRate returns the whole-percent reduction from original to current,
// or 0 when the original price is not higher. Amounts in different
// currencies are compared in won.
func DiscountRate(original, current Money) int {
	o, c := original, current
	if !strings.EqualFold(o.Currency, c.Currency) {
		var err error
		if o, err = o.ToKRW(); err != nil {
			return 0
		}
		if c, err = c.ToKRW(); err != nil {
			return 0
		}
	}
	if !o.Amount.IsPositive() || o.Amount.LessThanOrEqual(c.Amount) {
		return 0
	}
	pct := o.Amount.Sub(c.Amount).Div(o.Amount).Mul(decimal.NewFromInt(100)).Round(0)
	return int(pct.IntPart())
}
