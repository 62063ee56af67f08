package gbce

import "errors"

// Error kinds returned by the market. Every error carries one of them and can
// be matched with errors.Is.
var (
	// ErrInvalidSecurity reports malformed security construction parameters.
	ErrInvalidSecurity = errors.New("invalid security")
	// ErrInvalidTrade reports a non-positive trade quantity or price.
	ErrInvalidTrade = errors.New("invalid trade")
	// ErrInvalidQuery reports a non-positive price given to a yield or ratio query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrUnsupported reports an operation undefined for the security's dividend terms.
	ErrUnsupported = errors.New("unsupported")
	// ErrNoTrades reports an empty ledger.
	ErrNoTrades = errors.New("no trades")
	// ErrNoTradesInWindow reports that no trade of the requested kind is in the time window.
	ErrNoTradesInWindow = errors.New("no trades in window")
	// ErrUnknownSecurity reports a trade on a symbol that is not registered.
	ErrUnknownSecurity = errors.New("unknown security")
	// ErrDuplicateSecurity reports a registration of an already registered symbol.
	ErrDuplicateSecurity = errors.New("duplicate security")
)
