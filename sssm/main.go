// Command sssm is the super simple stock market command line.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/gbce/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// Shell completion exits here when the shell asked for it.
	complete.Complete(name, completion())

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion describes the commands and flags for shell completion.
func completion() *complete.Command {
	raw := map[string]complete.Predictor{"raw": predict.Nothing}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"catalog":   predict.Files("*.yaml"),
			"log-level": predict.Set{"debug", "info", "warn", "error", "disabled"},
			"window":    predict.Something,
		},
		Sub: map[string]*complete.Command{
			"securities": {Flags: raw},
			"yield": {Flags: map[string]complete.Predictor{
				"s":   predict.Set{"TEA", "POP", "ALE", "GIN", "JOE"},
				"p":   predict.Something,
				"raw": predict.Nothing,
			}},
			"report": {Flags: map[string]complete.Predictor{
				"t":   predict.Files("*.jsonl"),
				"q":   predict.Something,
				"at":  predict.Something,
				"raw": predict.Nothing,
			}},
		},
	}
}
