package gbce

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Direction tells whether a trade buys or sells.
type Direction int

const (
	Buy Direction = iota
	Sell
)

func (d Direction) String() string {
	switch d {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseDirection parses "buy" or "sell" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown trade direction: %q", s)
	}
}

// TradeRecord is one executed trade. It is immutable.
//
// The record keeps the kind of the traded security at trade time, not a
// reference to the security itself.
type TradeRecord struct {
	id        uuid.UUID
	timestamp time.Time
	symbol    string
	kind      Kind
	quantity  int
	direction Direction
	price     Price
}

// NewTradeRecord creates a trade record. quantity and unitPrice (in pence) must
// be greater than zero.
func NewTradeRecord(timestamp time.Time, kind Kind, quantity int, direction Direction, unitPrice float64) (TradeRecord, error) {
	if quantity <= 0 {
		return TradeRecord{}, fmt.Errorf("%w: trade quantity must be greater than zero, got %d", ErrInvalidTrade, quantity)
	}
	if !finite(unitPrice) || unitPrice <= 0 {
		return TradeRecord{}, fmt.Errorf("%w: trade price must be greater than zero, got %v", ErrInvalidTrade, unitPrice)
	}
	if direction != Buy && direction != Sell {
		return TradeRecord{}, fmt.Errorf("%w: unknown trade direction %d", ErrInvalidTrade, direction)
	}
	return TradeRecord{
		id:        uuid.New(),
		timestamp: timestamp,
		kind:      kind,
		quantity:  quantity,
		direction: direction,
		price:     P(unitPrice),
	}, nil
}

func (t TradeRecord) ID() uuid.UUID        { return t.id }
func (t TradeRecord) Timestamp() time.Time { return t.timestamp }
func (t TradeRecord) Symbol() string       { return t.symbol }
func (t TradeRecord) Kind() Kind           { return t.kind }
func (t TradeRecord) Quantity() int        { return t.quantity }
func (t TradeRecord) Direction() Direction { return t.direction }
func (t TradeRecord) Price() Price         { return t.price }

// Value is the traded amount, price times quantity.
func (t TradeRecord) Value() Price { return t.price.Mul(t.quantity) }

// Compare orders trade records from the most recent to the oldest.
//
// It returns the sign of b.Timestamp()-a.Timestamp(): negative when a is more
// recent than b. Records with equal timestamps compare equal.
func Compare(a, b TradeRecord) int {
	return b.timestamp.Compare(a.timestamp)
}
