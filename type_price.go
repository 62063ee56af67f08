package gbce

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Price is a monetary amount expressed in pence.
type Price struct {
	value decimal.Decimal
}

// P returns the Price of value pence.
func P(value float64) Price {
	return Price{value: decimal.NewFromFloat(value)}
}

func (p Price) IsZero() bool           { return p.value.IsZero() }
func (p Price) IsPositive() bool       { return p.value.IsPositive() }
func (p Price) IsNegative() bool       { return p.value.IsNegative() }
func (p Price) Equal(q Price) bool     { return p.value.Equal(q.value) }
func (p Price) Add(q Price) Price      { return Price{value: p.value.Add(q.value)} }
func (p Price) Mul(quantity int) Price { return Price{value: p.value.Mul(decimal.NewFromInt(int64(quantity)))} }
func (p Price) Float64() float64       { return p.value.InexactFloat64() }
func (p Price) String() string         { return p.value.String() }

// Div returns p/q as a float. q must not be zero.
func (p Price) Div(q Price) float64 { return p.value.Div(q.value).InexactFloat64() }

// Display formats p in pounds sterling, rounded to the penny (40 pence is "£0.40").
func (p Price) Display() string {
	return money.New(p.value.Round(0).IntPart(), money.GBP).Display()
}
