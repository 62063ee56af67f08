package gbce

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// TradeRequest is a request to execute a trade, as read from a trade file.
type TradeRequest struct {
	Symbol    string
	Quantity  int
	Direction Direction
	Price     float64
	// At is the requested execution time, zero when unspecified.
	At time.Time
}

// DecodeTradeRequests reads trade requests from a JSONL stream, one JSON object
// per line. Blank lines are skipped.
//
//	{"symbol":"TEA","quantity":1,"direction":"buy","price":10,"at":"2025-01-01T10:00:00Z"}
//
// The "at" attribute is optional, and uses RFC 3339.
func DecodeTradeRequests(r io.Reader) ([]TradeRequest, error) {
	// jrequest is the object read from the stream using json parser.
	type jrequest struct {
		Symbol    string     `json:"symbol"`
		Quantity  int        `json:"quantity"`
		Direction string     `json:"direction"`
		Price     float64    `json:"price"`
		At        *time.Time `json:"at,omitempty"`
	}

	var requests []TradeRequest
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var jr jrequest
		if err := json.Unmarshal(line, &jr); err != nil {
			return nil, fmt.Errorf("format error on line %d: %w", lineno, err)
		}
		direction, err := ParseDirection(jr.Direction)
		if err != nil {
			return nil, fmt.Errorf("format error on line %d: %w", lineno, err)
		}
		req := TradeRequest{
			Symbol:    jr.Symbol,
			Quantity:  jr.Quantity,
			Direction: direction,
			Price:     jr.Price,
		}
		if jr.At != nil {
			req.At = *jr.At
		}
		requests = append(requests, req)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading trade requests: %w", err)
	}
	return requests, nil
}

// EncodeTradeRequest writes req as a single JSONL line.
func EncodeTradeRequest(w io.Writer, req TradeRequest) error {
	type jrequest struct {
		Symbol    string     `json:"symbol"`
		Quantity  int        `json:"quantity"`
		Direction string     `json:"direction"`
		Price     float64    `json:"price"`
		At        *time.Time `json:"at,omitempty"`
	}
	jr := jrequest{
		Symbol:    req.Symbol,
		Quantity:  req.Quantity,
		Direction: req.Direction.String(),
		Price:     req.Price,
	}
	if !req.At.IsZero() {
		jr.At = &req.At
	}
	return json.NewEncoder(w).Encode(jr)
}
