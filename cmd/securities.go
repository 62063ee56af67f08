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

type securitiesCmd struct {
	raw bool
}

func (*securitiesCmd) Name() string     { return "securities" }
func (*securitiesCmd) Synopsis() string { return "list the securities of the catalog" }
func (*securitiesCmd) Usage() string {
	return `sssm securities [-raw]

  Lists the securities declared in the catalog with their par value, last
  dividend and fixed dividend rate.
`
}

func (c *securitiesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "print raw markdown")
}

func (c *securitiesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	market, err := newMarket(newLogger(), gbce.SystemClock)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var lines []renderer.SecurityLine
	for s := range market.Securities() {
		lines = append(lines, renderer.NewSecurityLine(s, 0))
	}
	printMarkdown(renderer.SecuritiesMarkdown(lines), c.raw)
	return subcommands.ExitSuccess
}
