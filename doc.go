// Package gbce models a super simple stock market: a registry of tradable
// securities, the ledger of the trades executed on them, and the market-wide
// analytics computed from that ledger.
//
// The core functionalities include:
//   - Securities: ordinary and preferential securities, validated at
//     construction, with their dividend yield and P/E ratio.
//   - Ledger: an append-only record of executed trades, with the trailing
//     window volume weighted price per security kind.
//   - Market: the orchestration of registrations and trades, which never fails
//     the caller on a bad request, and the All Share Index, the geometric mean
//     of every traded price.
//
// Prices and dividends are expressed in pence.
//
// This package serves as the foundational logic for the `sssm` command-line
// tool.
package gbce
