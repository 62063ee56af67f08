// Package config loads the catalog of securities traded in the market.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/gbce"
	"gopkg.in/yaml.v3"
)

//go:embed gbce.yaml
var defaultCatalog []byte

// Catalog is the list of securities to register in a market.
type Catalog struct {
	Securities []SecurityConfig `yaml:"securities"`
}

// SecurityConfig describes one security. Amounts are in pence.
type SecurityConfig struct {
	Symbol       string   `yaml:"symbol"`
	Type         string   `yaml:"type"` // ordinary (common) or preferential (preferred)
	ParValue     float64  `yaml:"par_value"`
	LastDividend float64  `yaml:"last_dividend"`
	FixedDiv     *float64 `yaml:"fixed_dividend,omitempty"` // fraction, 0.02 for 2%
}

// Load reads a YAML catalog from path and validates it.
func Load(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML catalog.
func Parse(raw []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("parse yaml: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Default returns the embedded GBCE sample catalog.
func Default() Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic("invalid embedded catalog: " + err.Error())
	}
	return c
}

// Validate reports every structural problem of the catalog. Amount ranges are
// checked when the securities are built.
func (c Catalog) Validate() error {
	var errs error
	if len(c.Securities) == 0 {
		return errors.New("catalog has no securities")
	}
	seen := make(map[string]bool)
	for i, sc := range c.Securities {
		sym := strings.TrimSpace(sc.Symbol)
		if sym == "" {
			errs = errors.Join(errs, fmt.Errorf("securities[%d]: symbol is required", i))
			continue
		}
		if seen[sym] {
			errs = errors.Join(errs, fmt.Errorf("securities[%d]: symbol %s is declared twice", i, sym))
		}
		seen[sym] = true
		if _, err := gbce.ParseKind(sc.Type); err != nil {
			errs = errors.Join(errs, fmt.Errorf("securities[%d]: symbol %s: %w", i, sym, err))
		}
	}
	return errs
}

// Security builds the security described by sc.
func (sc SecurityConfig) Security() (*gbce.Security, error) {
	kind, err := gbce.ParseKind(sc.Type)
	if err != nil {
		return nil, err
	}
	symbol := strings.TrimSpace(sc.Symbol)
	if sc.FixedDiv != nil {
		return gbce.NewSecurityWithFixedDividend(symbol, kind, sc.ParValue, sc.LastDividend, *sc.FixedDiv)
	}
	return gbce.NewSecurity(symbol, kind, sc.ParValue, sc.LastDividend)
}

// Securities builds every security of the catalog, in declaration order.
func (c Catalog) Securities() ([]*gbce.Security, error) {
	var errs error
	out := make([]*gbce.Security, 0, len(c.Securities))
	for _, sc := range c.Securities {
		s, err := sc.Security()
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("security %s: %w", sc.Symbol, err))
			continue
		}
		out = append(out, s)
	}
	return out, errs
}
