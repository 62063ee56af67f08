package gbce

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind is the class of a security.
type Kind int

const (
	// Ordinary securities pay their last dividend and have no fixed dividend rate.
	Ordinary Kind = iota
	// Preferential securities always carry a fixed dividend rate.
	Preferential
)

func (k Kind) String() string {
	switch k {
	case Ordinary:
		return "ordinary"
	case Preferential:
		return "preferential"
	default:
		return "unknown"
	}
}

// ParseKind parses a string into a Kind. The usual market synonyms "common"
// and "preferred" are accepted.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ordinary", "common":
		return Ordinary, nil
	case "preferential", "preferred":
		return Preferential, nil
	default:
		return 0, fmt.Errorf("unknown security kind: %q", s)
	}
}

// dividendTerms is the sealed set of dividend terms a security can have.
//
// Ordinary terms carry nothing, preferential terms carry a mandatory rate, so a
// preferential security without a rate cannot be built.
type dividendTerms interface {
	kind() Kind
	// dividend returns the dividend paid by s under these terms, in pence.
	dividend(s *Security) decimal.Decimal
	fixedRate() (decimal.Decimal, bool)
}

type ordinaryTerms struct{}

func (ordinaryTerms) kind() Kind                           { return Ordinary }
func (ordinaryTerms) dividend(s *Security) decimal.Decimal { return s.lastDividend.value }
func (ordinaryTerms) fixedRate() (decimal.Decimal, bool)   { return decimal.Zero, false }

type preferentialTerms struct {
	rate decimal.Decimal
}

func (preferentialTerms) kind() Kind                             { return Preferential }
func (t preferentialTerms) dividend(s *Security) decimal.Decimal { return t.rate.Mul(s.parValue.value) }
func (t preferentialTerms) fixedRate() (decimal.Decimal, bool)   { return t.rate, true }

// Security describes a tradable instrument. It is immutable once constructed.
type Security struct {
	symbol       string
	parValue     Price
	lastDividend Price
	terms        dividendTerms
}

// NewSecurity creates an ordinary security.
//
// parValue must be greater than zero and lastDividend must not be negative,
// both in pence. A Preferential kind is rejected because it requires a fixed
// dividend rate, see NewSecurityWithFixedDividend.
func NewSecurity(symbol string, kind Kind, parValue, lastDividend float64) (*Security, error) {
	if kind == Preferential {
		return nil, fmt.Errorf("%w: preferential security %q must have a fixed dividend rate", ErrInvalidSecurity, symbol)
	}
	if kind != Ordinary {
		return nil, fmt.Errorf("%w: unknown kind %d for security %q", ErrInvalidSecurity, kind, symbol)
	}
	if err := checkSecurity(symbol, parValue, lastDividend); err != nil {
		return nil, err
	}
	return &Security{
		symbol:       symbol,
		parValue:     P(parValue),
		lastDividend: P(lastDividend),
		terms:        ordinaryTerms{},
	}, nil
}

// NewSecurityWithFixedDividend creates a security with a fixed dividend rate.
//
// The rate is a fraction (0.02 for 2%) and must be in (0, 1]. Only
// preferential securities carry a fixed dividend rate.
func NewSecurityWithFixedDividend(symbol string, kind Kind, parValue, lastDividend, fixedDividendRate float64) (*Security, error) {
	if err := checkSecurity(symbol, parValue, lastDividend); err != nil {
		return nil, err
	}
	if math.IsNaN(fixedDividendRate) || fixedDividendRate <= 0 {
		return nil, fmt.Errorf("%w: fixed dividend rate must be greater than zero, got %v", ErrInvalidSecurity, fixedDividendRate)
	}
	if fixedDividendRate > 1 {
		return nil, fmt.Errorf("%w: fixed dividend rate must not be greater than one, got %v", ErrInvalidSecurity, fixedDividendRate)
	}
	if kind != Preferential {
		return nil, fmt.Errorf("%w: %s security %q cannot have a fixed dividend rate", ErrInvalidSecurity, kind, symbol)
	}
	return &Security{
		symbol:       symbol,
		parValue:     P(parValue),
		lastDividend: P(lastDividend),
		terms:        preferentialTerms{rate: decimal.NewFromFloat(fixedDividendRate)},
	}, nil
}

func checkSecurity(symbol string, parValue, lastDividend float64) error {
	if strings.TrimSpace(symbol) == "" {
		return fmt.Errorf("%w: symbol cannot be empty", ErrInvalidSecurity)
	}
	if !finite(parValue) || parValue <= 0 {
		return fmt.Errorf("%w: par value must be greater than zero, got %v", ErrInvalidSecurity, parValue)
	}
	if !finite(lastDividend) || lastDividend < 0 {
		return fmt.Errorf("%w: last dividend must not be negative, got %v", ErrInvalidSecurity, lastDividend)
	}
	return nil
}

func (s *Security) Symbol() string      { return s.symbol }
func (s *Security) Kind() Kind          { return s.terms.kind() }
func (s *Security) ParValue() Price     { return s.parValue }
func (s *Security) LastDividend() Price { return s.lastDividend }

// FixedDividend returns the fixed dividend rate, if the security has one.
func (s *Security) FixedDividend() (float64, bool) {
	rate, ok := s.terms.fixedRate()
	return rate.InexactFloat64(), ok
}

// DividendYield returns the dividend yield at price (in pence).
//
// For ordinary securities it is lastDividend/price, for preferential ones
// fixedDividendRate*parValue/price.
func (s *Security) DividendYield(price float64) (float64, error) {
	if err := checkQueryPrice(price); err != nil {
		return 0, err
	}
	return s.terms.dividend(s).Div(decimal.NewFromFloat(price)).InexactFloat64(), nil
}

// PriceEarningsRatio returns price/fixedDividendRate. It is only defined for
// securities with a fixed dividend rate.
func (s *Security) PriceEarningsRatio(price float64) (float64, error) {
	if err := checkQueryPrice(price); err != nil {
		return 0, err
	}
	rate, ok := s.terms.fixedRate()
	if !ok {
		return 0, fmt.Errorf("%w: %s security %q has no fixed dividend rate, P/E ratio is undefined", ErrUnsupported, s.Kind(), s.symbol)
	}
	return decimal.NewFromFloat(price).Div(rate).InexactFloat64(), nil
}

func checkQueryPrice(price float64) error {
	if !finite(price) {
		return fmt.Errorf("%w: price must be a finite number, got %v", ErrInvalidQuery, price)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative, got %v", ErrInvalidQuery, price)
	}
	if price == 0 {
		return fmt.Errorf("%w: price must not be zero", ErrInvalidQuery)
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
