package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/epsdash/internal/classify"
	"github.com/wonny/epsdash/internal/contracts"
	"github.com/wonny/epsdash/internal/source"
)

func TestLoad(t *testing.T) {
	loader := newTestLoader(newMemSource())

	snap, err := loader.Load(context.Background(), "2024-01-05")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-05", snap.Date)
	assert.Len(t, snap.Candidates, 2)
	assert.Equal(t, 900, snap.Stats.TotalScreened)
	assert.Len(t, snap.Portfolio, 2)
	assert.Len(t, snap.Exited, 1)
	assert.False(t, snap.LoadedAt.IsZero())
}

func TestLoad_AllOrNothing(t *testing.T) {
	for _, part := range []string{PartScreening, PartStats, PartPortfolio, PartExited} {
		t.Run(part, func(t *testing.T) {
			src := newMemSource()
			src.fail = part
			loader := newTestLoader(src)

			snap, err := loader.Load(context.Background(), "2024-01-05")
			assert.Nil(t, snap, "no partial snapshot")
			require.Error(t, err)

			var le *LoadError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, part, le.Part)
			assert.Equal(t, "2024-01-05", le.Date)
			assert.True(t, errors.Is(err, errBoom))
		})
	}
}

func TestDefaultDate(t *testing.T) {
	tests := []struct {
		name     string
		dates    []string
		expected string
	}{
		{"newest first", []string{"2024-01-05", "2024-01-04"}, "2024-01-05"},
		{"ascending", []string{"2024-01-03", "2024-01-04", "2024-01-05"}, "2024-01-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newMemSource()
			src.dates = tt.dates

			got, err := newTestLoader(src).DefaultDate(context.Background())
			require.NoError(t, err)
			if got != tt.expected {
				t.Errorf("DefaultDate() = %v, want %v", got, tt.expected)
			}
		})
	}

	src := newMemSource()
	src.dates = nil
	_, err := newTestLoader(src).DefaultDate(context.Background())
	assert.True(t, errors.Is(err, source.ErrNotFound))
}

func TestPortfolio(t *testing.T) {
	loader := newTestLoader(newMemSource())

	page, err := loader.Portfolio(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2024-01-05", page.Date)
	require.Len(t, page.Result.Cumulative, 2)
	assert.Equal(t, 2.0, page.Result.Cumulative[0].Cumulative)
	assert.Equal(t, 1.0, page.Result.Cumulative[1].Cumulative)
	assert.Equal(t, 1.0, page.Result.TotalReturn)

	require.Len(t, page.Holdings.Positions, 1)
	assert.Equal(t, "NVDA", page.Holdings.Positions[0].Ticker)
	assert.InDelta(t, 2.0, page.Holdings.PortfolioUnrealized, 1e-9)
	assert.Len(t, page.Holdings.Exits, 1)
}

func TestPortfolio_HistoryFailure(t *testing.T) {
	src := newMemSource()
	src.fail = PartHistory

	page, err := newTestLoader(src).Portfolio(context.Background())
	assert.Nil(t, page)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, PartHistory, le.Part)
}

func TestTicker(t *testing.T) {
	src := newMemSource()
	src.ticker = []contracts.TickerHistory{
		{Date: "2024-01-03", Price: 100, MA60: 90, Part2Rank: intp(3)},
		{Date: "2024-01-04", Price: 105, MA60: 95},
		{Date: "2024-01-05", Price: 110, MA60: 100, Part2Rank: intp(1), AdjScore: 16.2},
	}

	detail, err := newTestLoader(src).Ticker(context.Background(), " nvda ")
	require.NoError(t, err)

	assert.Equal(t, "NVDA", detail.Ticker)
	require.NotNil(t, detail.Latest)
	assert.Equal(t, "2024-01-05", detail.Latest.Date)
	require.NotNil(t, detail.PriceVsMA60)
	assert.InDelta(t, 10.0, *detail.PriceVsMA60, 1e-9)
	assert.Equal(t, "3 -> 1", detail.Ranks)
	assert.Equal(t, classify.TierStrong, detail.ScoreTier)
}

func TestNewTickerDetail_Empty(t *testing.T) {
	detail := NewTickerDetail("NVDA", nil)
	assert.Nil(t, detail.Latest)
	assert.Empty(t, detail.ScoreTier)
}

func TestTicker_NoHistory(t *testing.T) {
	_, err := newTestLoader(newMemSource()).Ticker(context.Background(), "ZZZZ")
	assert.True(t, errors.Is(err, source.ErrNotFound))
}

func TestPriceVsMA(t *testing.T) {
	assert.Nil(t, PriceVsMA(100, 0))
	assert.Nil(t, PriceVsMA(100, -1))

	v := PriceVsMA(90, 100)
	require.NotNil(t, v)
	assert.InDelta(t, -10.0, *v, 1e-9)
}

func TestRecentRanks(t *testing.T) {
	history := make([]contracts.TickerHistory, 0, 15)
	for i := 1; i <= 15; i++ {
		history = append(history, contracts.TickerHistory{Part2Rank: intp(i)})
	}
	history = append(history, contracts.TickerHistory{})

	ranks := RecentRanks(history, 10)
	assert.Equal(t, []int{6, 7, 8, 9, 10, 11, 12, 13, 14, 15}, ranks)
	assert.Empty(t, RecentRanks(nil, 10))
}
