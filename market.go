package gbce

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultWindow is the trailing time window of the volume weighted price.
const DefaultWindow = 15 * time.Minute

// Market holds the registered securities and the ledger of their trades.
//
// A Market performs no locking: concurrent callers must serialize access to
// it themselves.
type Market struct {
	securities []*Security
	index      map[string]*Security
	ledger     *Ledger
	clock      Clock
	window     time.Duration
	log        zerolog.Logger
}

// Option configures a Market.
type Option func(*Market)

// WithClock sets the time source used to timestamp trades and to compute the
// volume weighted price window.
func WithClock(c Clock) Option {
	return func(m *Market) {
		if c != nil {
			m.clock = c
		}
	}
}

// WithWindow sets the volume weighted price window. Non-positive durations
// keep DefaultWindow.
func WithWindow(d time.Duration) Option {
	return func(m *Market) {
		if d > 0 {
			m.window = d
		}
	}
}

// WithLogger sets the logger reporting rejected registrations and trades.
func WithLogger(log zerolog.Logger) Option {
	return func(m *Market) { m.log = log }
}

// NewMarket returns a new empty market.
func NewMarket(opts ...Option) *Market {
	m := &Market{
		securities: make([]*Security, 0),
		index:      make(map[string]*Security),
		ledger:     NewLedger(),
		clock:      SystemClock,
		window:     DefaultWindow,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RegisterSecurity adds s to the market. It returns false, and leaves the
// market unchanged, if s is nil or its symbol is already registered.
func (m *Market) RegisterSecurity(s *Security) bool {
	if err := m.register(s); err != nil {
		m.log.Warn().Err(err).Msg("security registration rejected")
		return false
	}
	return true
}

func (m *Market) register(s *Security) error {
	if s == nil {
		return fmt.Errorf("%w: nil security", ErrInvalidSecurity)
	}
	if s.terms == nil || strings.TrimSpace(s.symbol) == "" {
		return fmt.Errorf("%w: security %q was not built by a constructor", ErrInvalidSecurity, s.symbol)
	}
	if _, exists := m.index[s.symbol]; exists {
		return fmt.Errorf("%w: %q is already registered", ErrDuplicateSecurity, s.symbol)
	}
	m.securities = append(m.securities, s)
	m.index[s.symbol] = s
	m.log.Debug().Str("symbol", s.symbol).Stringer("kind", s.Kind()).Msg("security registered")
	return nil
}

// ExecuteTrade records a trade of quantity shares of symbol at price pence.
//
// The trade is timestamped now and records the kind of the security. It
// returns false, and records nothing, if the symbol is not registered or the
// quantity or price is not positive.
func (m *Market) ExecuteTrade(symbol string, quantity int, direction Direction, price float64) bool {
	if _, err := m.execute(symbol, quantity, direction, price); err != nil {
		m.log.Warn().Err(err).
			Str("symbol", symbol).
			Int("quantity", quantity).
			Stringer("direction", direction).
			Float64("price", price).
			Msg("trade rejected")
		return false
	}
	return true
}

func (m *Market) execute(symbol string, quantity int, direction Direction, price float64) (TradeRecord, error) {
	sec, ok := m.index[symbol]
	if !ok {
		return TradeRecord{}, fmt.Errorf("%w: %q is not traded in this market", ErrUnknownSecurity, symbol)
	}
	r, err := NewTradeRecord(m.clock.Now(), sec.Kind(), quantity, direction, price)
	if err != nil {
		return TradeRecord{}, err
	}
	r.symbol = sec.symbol
	m.ledger.Append(r)
	m.log.Debug().Str("symbol", symbol).Stringer("id", r.id).Msg("trade recorded")
	return r, nil
}

// SecurityCount returns the number of registered securities.
func (m *Market) SecurityCount() int { return len(m.securities) }

// TradeCount returns the number of trades ever executed.
func (m *Market) TradeCount() int { return m.ledger.Len() }

// Security returns the security registered with symbol.
func (m *Market) Security(symbol string) (*Security, bool) {
	s, ok := m.index[symbol]
	return s, ok
}

// Securities iterates over the securities in registration order.
func (m *Market) Securities() iter.Seq[*Security] {
	return slices.Values(m.securities)
}

// Trades iterates over the executed trades.
func (m *Market) Trades() iter.Seq[TradeRecord] { return m.ledger.All() }

// Window returns the volume weighted price window.
func (m *Market) Window() time.Duration { return m.window }

// Now returns the current time of the market's clock.
func (m *Market) Now() time.Time { return m.clock.Now() }

// VolumeWeightedPrice returns the volume weighted price, in pence, of the
// securities of kind traded within the market window.
func (m *Market) VolumeWeightedPrice(kind Kind) (float64, error) {
	return m.ledger.VolumeWeightedPrice(kind, m.clock.Now(), m.window)
}

// AllShareIndex returns the geometric mean of the price of every trade ever
// executed in the market.
func (m *Market) AllShareIndex() (float64, error) {
	return m.ledger.AllShareIndex()
}
