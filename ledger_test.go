package gbce

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTrade(t *testing.T, at time.Time, kind Kind, quantity int, price float64) TradeRecord {
	t.Helper()
	r, err := NewTradeRecord(at, kind, quantity, Buy, price)
	require.NoError(t, err)
	return r
}

func TestLedger_VolumeWeightedPrice(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	window := 15 * time.Minute

	testCases := []struct {
		name    string
		trades  []TradeRecord
		kind    Kind
		want    float64
		wantErr error
	}{
		{
			name:    "empty ledger",
			kind:    Ordinary,
			wantErr: ErrNoTrades,
		},
		{
			name: "several ordinary trades",
			trades: []TradeRecord{
				mustTrade(t, now.Add(-4*time.Second), Ordinary, 1, 10),
				mustTrade(t, now.Add(-3*time.Second), Ordinary, 2, 20),
				mustTrade(t, now.Add(-2*time.Second), Ordinary, 3, 30),
				mustTrade(t, now.Add(-1*time.Second), Preferential, 4, 40),
				mustTrade(t, now, Ordinary, 5, 50),
			},
			kind: Ordinary,
			want: (10.0*1 + 20.0*2 + 30.0*3 + 50.0*5) / (1 + 2 + 3 + 5),
		},
		{
			name: "single preferential trade",
			trades: []TradeRecord{
				mustTrade(t, now.Add(-4*time.Second), Ordinary, 1, 10),
				mustTrade(t, now.Add(-1*time.Second), Preferential, 4, 40),
			},
			kind: Preferential,
			want: 40,
		},
		{
			name: "trades older than the window are ignored",
			trades: []TradeRecord{
				mustTrade(t, now.Add(-20*time.Minute), Ordinary, 6, 60),
				mustTrade(t, now.Add(-time.Minute), Ordinary, 1, 10),
				mustTrade(t, now.Add(-16*time.Minute), Ordinary, 6, 60),
				mustTrade(t, now, Ordinary, 2, 20),
			},
			kind: Ordinary,
			want: 50.0 / 3,
		},
		{
			name: "trade exactly on the cutoff is included",
			trades: []TradeRecord{
				mustTrade(t, now.Add(-window), Ordinary, 1, 10),
				mustTrade(t, now.Add(-window-time.Nanosecond), Ordinary, 1, 1000),
			},
			kind: Ordinary,
			want: 10,
		},
		{
			name: "all trades outside the window",
			trades: []TradeRecord{
				mustTrade(t, now.Add(-16*time.Minute), Ordinary, 1, 10),
				mustTrade(t, now.Add(-time.Hour), Ordinary, 2, 20),
			},
			kind:    Ordinary,
			wantErr: ErrNoTradesInWindow,
		},
		{
			name: "no trade of the given kind",
			trades: []TradeRecord{
				mustTrade(t, now, Ordinary, 1, 10),
				mustTrade(t, now, Ordinary, 2, 20),
			},
			kind:    Preferential,
			wantErr: ErrNoTradesInWindow,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLedger()
			for _, r := range tc.trades {
				l.Append(r)
			}
			got, err := l.VolumeWeightedPrice(tc.kind, now, window)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
			assert.Equal(t, len(tc.trades), l.Len(), "a query must not drop any trade")
		})
	}
}

func TestLedger_SortIsStableAndDescending(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	l := NewLedger()
	first := mustTrade(t, now, Ordinary, 1, 10)
	second := mustTrade(t, now, Ordinary, 2, 20)
	older := mustTrade(t, now.Add(-time.Minute), Ordinary, 3, 30)
	newer := mustTrade(t, now.Add(time.Minute), Ordinary, 4, 40)
	l.Append(first)
	l.Append(older)
	l.Append(second)
	l.Append(newer)

	var ids []string
	for _, r := range l.Sorted() {
		ids = append(ids, r.ID().String())
	}
	assert.Equal(t, []string{
		newer.ID().String(),
		first.ID().String(),
		second.ID().String(),
		older.ID().String(),
	}, ids)
}

func TestLedger_QueriesKeepInsertionOrder(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	l := NewLedger()
	l.Append(mustTrade(t, now.Add(-time.Minute), Ordinary, 1, 10))
	l.Append(mustTrade(t, now, Ordinary, 1, 20))

	_, err := l.VolumeWeightedPrice(Ordinary, now, 15*time.Minute)
	require.NoError(t, err)
	_, err = l.AllShareIndex()
	require.NoError(t, err)

	var prices []float64
	for r := range l.All() {
		prices = append(prices, r.Price().Float64())
	}
	assert.Equal(t, []float64{10, 20}, prices)
}

func TestLedger_AllShareIndex(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	t.Run("empty ledger", func(t *testing.T) {
		_, err := NewLedger().AllShareIndex()
		assert.ErrorIs(t, err, ErrNoTrades)
	})

	t.Run("single trade", func(t *testing.T) {
		l := NewLedger()
		l.Append(mustTrade(t, now, Ordinary, 1, 10))
		got, err := l.AllShareIndex()
		require.NoError(t, err)
		assert.Equal(t, 10.0, got)
	})

	t.Run("several trades of any kind and time", func(t *testing.T) {
		l := NewLedger()
		for i, price := range []float64{10, 20, 30, 40, 50} {
			kind := Ordinary
			if i == 3 {
				kind = Preferential
			}
			l.Append(mustTrade(t, now.Add(-time.Duration(i)*time.Hour), kind, i+1, price))
		}
		got, err := l.AllShareIndex()
		require.NoError(t, err)
		assert.InDelta(t, math.Pow(10*20*30*40*50, 0.2), got, 1e-9)
	})

	t.Run("no overflow on large ledgers", func(t *testing.T) {
		l := NewLedger()
		for range 1000 {
			l.Append(mustTrade(t, now, Ordinary, 1, 1e6))
		}
		got, err := l.AllShareIndex()
		require.NoError(t, err)
		assert.InDelta(t, 1e6, got, 1e-3)
	})
}
