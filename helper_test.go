package gbce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeClock is a Clock whose time only moves when told to.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// gbceSecurities returns the sample securities of the Global Beverage
// Corporation Exchange.
func gbceSecurities(t *testing.T) []*Security {
	t.Helper()
	tea, err := NewSecurity("TEA", Ordinary, 100, 0)
	require.NoError(t, err)
	pop, err := NewSecurity("POP", Ordinary, 100, 8)
	require.NoError(t, err)
	ale, err := NewSecurity("ALE", Ordinary, 60, 23)
	require.NoError(t, err)
	gin, err := NewSecurityWithFixedDividend("GIN", Preferential, 100, 8, 0.02)
	require.NoError(t, err)
	joe, err := NewSecurity("JOE", Ordinary, 250, 13)
	require.NoError(t, err)
	return []*Security{tea, pop, ale, gin, joe}
}

// newGBCEMarket returns a market with the sample securities registered.
func newGBCEMarket(t *testing.T, clock Clock) *Market {
	t.Helper()
	m := NewMarket(WithClock(clock))
	for _, s := range gbceSecurities(t) {
		require.True(t, m.RegisterSecurity(s), "registering %s", s.Symbol())
	}
	return m
}

// tradeStandardSet executes one buy per sample security, a second apart:
// TEA 1@10, POP 2@20, ALE 3@30, GIN 4@40, JOE 5@50.
func tradeStandardSet(t *testing.T, m *Market, clock *fakeClock) {
	t.Helper()
	for i, symbol := range []string{"TEA", "POP", "ALE", "GIN", "JOE"} {
		require.True(t, m.ExecuteTrade(symbol, i+1, Buy, float64(10*(i+1))), "trading %s", symbol)
		clock.Advance(time.Second)
	}
}
