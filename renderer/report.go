// Package renderer renders market reports to markdown.
package renderer

import (
	"slices"
	"time"

	"github.com/etnz/gbce"
)

// SecurityLine is one security of a report, with its metrics at a quoted
// price when a quote is known.
type SecurityLine struct {
	Symbol        string
	Kind          gbce.Kind
	ParValue      gbce.Price
	LastDividend  gbce.Price
	FixedDividend float64
	HasFixed      bool

	Quote         float64 // 0 when unknown
	DividendYield Metric
	PERatio       Metric
}

// Metric is a computed value, or the reason it could not be computed.
type Metric struct {
	Value float64
	Err   error
}

// TradeLine is one trade of a report.
type TradeLine struct {
	Time      time.Time
	Symbol    string
	Kind      gbce.Kind
	Direction gbce.Direction
	Quantity  int
	Price     gbce.Price
	Value     gbce.Price
}

// KindLine is the volume weighted price of a kind of security.
type KindLine struct {
	Kind  gbce.Kind
	Price Metric
}

// Report is a snapshot of a market.
type Report struct {
	Time           time.Time
	Window         time.Duration
	Securities     []SecurityLine
	Trades         []TradeLine
	VolumeWeighted []KindLine
	AllShareIndex  Metric
	Accepted       int
	Rejected       int
}

// metric runs f and captures its outcome.
func metric(f func() (float64, error)) Metric {
	v, err := f()
	return Metric{Value: v, Err: err}
}

// NewSecurityLine describes s, with its metrics at quote when quote is positive.
func NewSecurityLine(s *gbce.Security, quote float64) SecurityLine {
	line := SecurityLine{
		Symbol:       s.Symbol(),
		Kind:         s.Kind(),
		ParValue:     s.ParValue(),
		LastDividend: s.LastDividend(),
	}
	line.FixedDividend, line.HasFixed = s.FixedDividend()
	if quote > 0 {
		line.Quote = quote
		line.DividendYield = metric(func() (float64, error) { return s.DividendYield(quote) })
		line.PERatio = metric(func() (float64, error) { return s.PriceEarningsRatio(quote) })
	}
	return line
}

// NewReport builds the report of m. quotes maps symbols to the price used to
// compute the dividend yield and P/E ratio of the security.
func NewReport(m *gbce.Market, quotes map[string]float64) *Report {
	r := &Report{
		Time:   m.Now(),
		Window: m.Window(),
	}
	for s := range m.Securities() {
		r.Securities = append(r.Securities, NewSecurityLine(s, quotes[s.Symbol()]))
	}
	for _, kind := range []gbce.Kind{gbce.Ordinary, gbce.Preferential} {
		r.VolumeWeighted = append(r.VolumeWeighted, KindLine{
			Kind:  kind,
			Price: metric(func() (float64, error) { return m.VolumeWeightedPrice(kind) }),
		})
	}
	r.AllShareIndex = metric(m.AllShareIndex)
	for t := range m.Trades() {
		r.Trades = append(r.Trades, TradeLine{
			Time:      t.Timestamp(),
			Symbol:    t.Symbol(),
			Kind:      t.Kind(),
			Direction: t.Direction(),
			Quantity:  t.Quantity(),
			Price:     t.Price(),
			Value:     t.Value(),
		})
	}
	// most recent first
	slices.SortStableFunc(r.Trades, func(a, b TradeLine) int { return b.Time.Compare(a.Time) })
	r.Accepted = m.TradeCount()
	return r
}
