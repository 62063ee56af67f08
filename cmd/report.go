package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/etnz/gbce"
	"github.com/etnz/gbce/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// replayClock is the clock of a replayed market. It stands still at the
// time it was set to, and follows the wall clock while unset.
type replayClock struct {
	at time.Time
}

func (c *replayClock) Now() time.Time {
	if c.at.IsZero() {
		return time.Now()
	}
	return c.at
}

type reportCmd struct {
	tradesFile string
	quotes     string
	at         string
	raw        bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "replay trades and report the market analytics" }
func (*reportCmd) Usage() string {
	return `sssm report -t <trades.jsonl> [-q SYM=PRICE,...] [-at <time>] [-raw]

  Registers the catalog securities, replays the trade requests of a JSONL file
  and prints the market report: volume weighted price per kind, All Share
  Index, securities metrics at the quoted prices, and the trades.

  Each trade request is a JSON object per line:

    {"symbol":"TEA","quantity":1,"direction":"buy","price":10,"at":"2025-06-02T10:00:00Z"}

  A request with an "at" time is executed at that time, otherwise now. The
  report is computed at -at (RFC 3339) when given, otherwise at the time of the
  last trade request. Use "-t -" to read the requests from stdin.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.tradesFile, "t", "", "Trade requests file, JSONL (required)")
	f.StringVar(&c.quotes, "q", "", "Quotes in pence, used to compute dividend yields, e.g. TEA=40,GIN=120")
	f.StringVar(&c.at, "at", "", "Report time, RFC 3339")
	f.BoolVar(&c.raw, "raw", false, "print raw markdown")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.tradesFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -t flag is required.")
		return subcommands.ExitUsageError
	}
	quotes, err := parseQuotes(c.quotes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	var at time.Time
	if c.at != "" {
		at, err = time.Parse(time.RFC3339, c.at)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -at: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	requests, err := readTradeRequests(c.tradesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	log := newLogger()
	clock := &replayClock{}
	market, err := newMarket(log, clock)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	rejected := replay(market, clock, requests, log)
	if !at.IsZero() {
		clock.at = at
	}

	report := renderer.NewReport(market, quotes)
	report.Rejected = rejected
	printMarkdown(renderer.ReportMarkdown(report), c.raw)
	return subcommands.ExitSuccess
}

// replay executes requests in order on m and returns the number of rejected requests.
func replay(m *gbce.Market, clock *replayClock, requests []gbce.TradeRequest, log zerolog.Logger) (rejected int) {
	for i, req := range requests {
		clock.at = req.At
		if !m.ExecuteTrade(req.Symbol, req.Quantity, req.Direction, req.Price) {
			rejected++
			log.Info().Int("request", i+1).Str("symbol", req.Symbol).Msg("trade request skipped")
		}
	}
	log.Info().Int("executed", len(requests)-rejected).Int("rejected", rejected).Msg("trades replayed")
	return rejected
}

func readTradeRequests(name string) ([]gbce.TradeRequest, error) {
	var r io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("could not open trades file: %w", err)
		}
		defer f.Close()
		r = f
	}
	requests, err := gbce.DecodeTradeRequests(r)
	if err != nil {
		return nil, fmt.Errorf("could not read trades file %q: %w", name, err)
	}
	return requests, nil
}
