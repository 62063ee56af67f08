package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/gbce"
	"github.com/etnz/gbce/renderer"
	"github.com/google/subcommands"
)

type yieldCmd struct {
	symbol string
	price  float64
	raw    bool
}

func (*yieldCmd) Name() string     { return "yield" }
func (*yieldCmd) Synopsis() string { return "compute the dividend yield and P/E ratio of a security" }
func (*yieldCmd) Usage() string {
	return `sssm yield -s <symbol> -p <price>

  Computes the dividend yield and the P/E ratio of a security at a given price
  in pence. The P/E ratio is only defined for securities with a fixed dividend.
`
}

func (c *yieldCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Security symbol (required)")
	f.Float64Var(&c.price, "p", 0, "Price in pence (required, greater than zero)")
	f.BoolVar(&c.raw, "raw", false, "print raw markdown")
}

func (c *yieldCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" {
		fmt.Fprintln(os.Stderr, "Error: -s flag is required.")
		return subcommands.ExitUsageError
	}
	if c.price <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -p must be greater than zero.")
		return subcommands.ExitUsageError
	}

	market, err := newMarket(newLogger(), gbce.SystemClock)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	sec, ok := market.Security(c.symbol)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: security %q is not in the catalog.\n", c.symbol)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.SecuritiesMarkdown([]renderer.SecurityLine{renderer.NewSecurityLine(sec, c.price)}), c.raw)
	return subcommands.ExitSuccess
}
