package gbce

import (
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// Ledger is the append-only list of executed trades.
//
// Trades are kept in insertion order. Time-windowed reads sort a copy of the
// ledger from the most recent trade to the oldest first.
type Ledger struct {
	records []TradeRecord
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{records: make([]TradeRecord, 0)}
}

// Append appends a trade record to the ledger.
func (l *Ledger) Append(r TradeRecord) {
	l.records = append(l.records, r)
}

// Len returns the number of trades ever recorded.
func (l *Ledger) Len() int { return len(l.records) }

// All iterates over the trades in insertion order.
func (l *Ledger) All() iter.Seq[TradeRecord] {
	return slices.Values(l.records)
}

// Prices returns the unit price of every trade, in pence.
func (l *Ledger) Prices() []float64 {
	prices := make([]float64, 0, len(l.records))
	for _, r := range l.records {
		prices = append(prices, r.price.Float64())
	}
	return prices
}

// Sorted returns the records from the most recent to the oldest. The sort is
// stable: trades with equal timestamps keep their insertion order.
func (l *Ledger) Sorted() []TradeRecord {
	sorted := slices.Clone(l.records)
	slices.SortStableFunc(sorted, Compare)
	return sorted
}

// VolumeWeightedPrice returns sum(price*quantity)/sum(quantity) over the trades
// of kind whose timestamp is in [now-window, ...].
//
// It fails with ErrNoTrades if the ledger is empty, and with
// ErrNoTradesInWindow if no trade of kind falls within the window.
func (l *Ledger) VolumeWeightedPrice(kind Kind, now time.Time, window time.Duration) (float64, error) {
	if len(l.records) == 0 {
		return 0, fmt.Errorf("%w: volume weighted price needs one or more trades in the market", ErrNoTrades)
	}
	cutoff := now.Add(-window)

	// The scan stops at the first trade older than the cutoff, every following
	// trade is older still. Only true because the ledger is sorted right before.
	sorted := l.Sorted()

	numerator, denominator := decimal.Zero, int64(0)
	for _, r := range sorted {
		if r.timestamp.Before(cutoff) {
			break
		}
		if r.kind != kind {
			continue
		}
		numerator = numerator.Add(r.Value().value)
		denominator += int64(r.quantity)
	}
	if denominator == 0 {
		return 0, fmt.Errorf("%w: no %s trade since %s", ErrNoTradesInWindow, kind, cutoff.Format(time.RFC3339))
	}
	return numerator.Div(decimal.NewFromInt(denominator)).InexactFloat64(), nil
}

// AllShareIndex returns the geometric mean of every trade price in the ledger,
// whatever the kind or the time of the trade.
//
// The mean is computed from the sum of logarithms, so it does not overflow on
// large ledgers. It fails with ErrNoTrades if the ledger is empty.
func (l *Ledger) AllShareIndex() (float64, error) {
	if len(l.records) == 0 {
		return 0, fmt.Errorf("%w: all share index needs one or more trades in the market", ErrNoTrades)
	}
	if len(l.records) == 1 {
		return l.records[0].price.Float64(), nil
	}
	// Summing the logarithms in price order makes the result independent of the
	// ledger's current order.
	prices := l.Prices()
	slices.Sort(prices)
	return stat.GeometricMean(prices, nil), nil
}
