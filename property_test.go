package gbce

import (
	"math"
	"testing"
	"time"

	"pgregory.net/rapid"
)

// Property: construction fails for every non-positive par value, whatever the kind.
func TestProperty_NonPositiveParValueIsInvalid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		par := -rapid.Float64Range(0, 1e9).Draw(t, "par")
		if _, err := NewSecurity("TEA", Ordinary, par, 0); err == nil {
			t.Fatalf("ordinary security created with par value %v", par)
		}
		if _, err := NewSecurityWithFixedDividend("GIN", Preferential, par, 0, 0.02); err == nil {
			t.Fatalf("preferential security created with par value %v", par)
		}
	})
}

// Property: fixed dividend rates outside (0, 1] are rejected.
func TestProperty_FixedDividendRateRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rate := rapid.Float64Range(-10, 10).Draw(t, "rate")
		_, err := NewSecurityWithFixedDividend("GIN", Preferential, 100, 8, rate)
		valid := rate > 0 && rate <= 1
		if valid && err != nil {
			t.Fatalf("rate %v rejected: %v", rate, err)
		}
		if !valid && err == nil {
			t.Fatalf("rate %v accepted", rate)
		}
	})
}

// Property: yield and ratio queries fail for every non-positive price.
func TestProperty_NonPositiveQueryPriceIsInvalid(t *testing.T) {
	gin, err := NewSecurityWithFixedDividend("GIN", Preferential, 100, 8, 0.02)
	if err != nil {
		t.Fatal(err)
	}
	rapid.Check(t, func(t *rapid.T) {
		price := -rapid.Float64Range(0, 1e9).Draw(t, "price")
		if _, err := gin.DividendYield(price); err == nil {
			t.Fatalf("dividend yield computed at price %v", price)
		}
		if _, err := gin.PriceEarningsRatio(price); err == nil {
			t.Fatalf("P/E ratio computed at price %v", price)
		}
	})
}

// Property: the later of two trades sorts first.
func TestProperty_LaterTradeSortsFirst(t *testing.T) {
	base := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	rapid.Check(t, func(t *rapid.T) {
		da := rapid.Int64Range(-1e12, 1e12).Draw(t, "da")
		db := rapid.Int64Range(-1e12, 1e12).Draw(t, "db")
		a, _ := NewTradeRecord(base.Add(time.Duration(da)), Ordinary, 1, Buy, 1)
		b, _ := NewTradeRecord(base.Add(time.Duration(db)), Ordinary, 1, Buy, 1)
		got := Compare(a, b)
		switch {
		case da > db && got >= 0:
			t.Fatalf("later a compares %d to earlier b", got)
		case da < db && got <= 0:
			t.Fatalf("earlier a compares %d to later b", got)
		case da == db && got != 0:
			t.Fatalf("equal timestamps compare %d", got)
		}
	})
}

// Property: the volume weighted price is within the traded price range, and
// repeated queries return identical results.
func TestProperty_VolumeWeightedPriceIsBoundedAndStable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		clock := newFakeClock()
		m := NewMarket(WithClock(clock))
		tea, _ := NewSecurity("TEA", Ordinary, 100, 0)
		m.RegisterSecurity(tea)

		n := rapid.IntRange(1, 30).Draw(t, "n")
		lo, hi := math.Inf(1), math.Inf(-1)
		for i := range n {
			price := float64(rapid.IntRange(1, 100000).Draw(t, "price"))
			quantity := rapid.IntRange(1, 1000).Draw(t, "quantity")
			if !m.ExecuteTrade("TEA", quantity, Buy, price) {
				t.Fatalf("trade %d rejected", i)
			}
			lo, hi = math.Min(lo, price), math.Max(hi, price)
			clock.Advance(time.Duration(rapid.IntRange(0, 10).Draw(t, "gap")) * time.Second)
		}

		got, err := m.VolumeWeightedPrice(Ordinary)
		if err != nil {
			t.Fatal(err)
		}
		if got < lo-1e-9 || got > hi+1e-9 {
			t.Fatalf("volume weighted price %v outside [%v, %v]", got, lo, hi)
		}
		again, err := m.VolumeWeightedPrice(Ordinary)
		if err != nil {
			t.Fatal(err)
		}
		if again != got {
			t.Fatalf("repeated query returned %v then %v", got, again)
		}
	})
}

// Property: the all share index matches the direct product definition.
func TestProperty_AllShareIndexMatchesProduct(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := NewMarket(WithClock(newFakeClock()))
		tea, _ := NewSecurity("TEA", Ordinary, 100, 0)
		m.RegisterSecurity(tea)

		prices := rapid.SliceOfN(rapid.Float64Range(1, 1000), 1, 20).Draw(t, "prices")
		product := 1.0
		for _, p := range prices {
			m.ExecuteTrade("TEA", 1, Sell, p)
			product *= p
		}
		want := math.Pow(product, 1/float64(len(prices)))

		got, err := m.AllShareIndex()
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got-want) > 1e-9*want {
			t.Fatalf("all share index %v, want %v", got, want)
		}
	})
}
