// Package cmd implements the CLI application of the super simple stock market.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/gbce"
	"github.com/etnz/gbce/config"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

const (
	EnvCatalogFile = "SSSM_CATALOG_FILE"
	EnvLogLevel    = "SSSM_LOG_LEVEL"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var catalogFile = flag.String("catalog", os.Getenv(EnvCatalogFile), "Path to the securities catalog (YAML). Uses the embedded GBCE catalog when empty.")
var logLevel = flag.String("log-level", envOr(EnvLogLevel, "warn"), "Log level (debug, info, warn, error, disabled)")
var window = flag.Duration("window", gbce.DefaultWindow, "Trailing window of the volume weighted price")

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&securitiesCmd{}, "securities")
	c.Register(&yieldCmd{}, "securities")

	c.Register(&reportCmd{}, "trades")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// newLogger returns a console logger on stderr at the global log level.
func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()
}

// loadCatalog loads the catalog from the global catalog file, or the embedded default.
func loadCatalog() (config.Catalog, error) {
	if *catalogFile == "" {
		return config.Default(), nil
	}
	return config.Load(*catalogFile)
}

// newMarket creates a market with every security of the catalog registered.
func newMarket(log zerolog.Logger, clock gbce.Clock) (*gbce.Market, error) {
	catalog, err := loadCatalog()
	if err != nil {
		return nil, fmt.Errorf("could not load catalog: %w", err)
	}
	securities, err := catalog.Securities()
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	m := gbce.NewMarket(gbce.WithClock(clock), gbce.WithWindow(*window), gbce.WithLogger(log))
	for _, s := range securities {
		m.RegisterSecurity(s)
	}
	return m, nil
}

// parseQuotes parses a "SYM=PRICE,SYM=PRICE" list of quotes.
func parseQuotes(s string) (map[string]float64, error) {
	quotes := make(map[string]float64)
	if strings.TrimSpace(s) == "" {
		return quotes, nil
	}
	for _, item := range strings.Split(s, ",") {
		symbol, price, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("invalid quote %q: expected SYMBOL=PRICE", item)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid quote %q: %w", item, err)
		}
		quotes[strings.TrimSpace(symbol)] = v
	}
	return quotes, nil
}

// printMarkdown prints md to stdout, rendered for the terminal unless raw.
func printMarkdown(md string, raw bool) {
	if raw {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
