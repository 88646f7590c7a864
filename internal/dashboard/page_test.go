package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/epsdash/internal/classify"
	"github.com/wonny/epsdash/internal/contracts"
	"github.com/wonny/epsdash/internal/portfolio"
	"github.com/wonny/epsdash/internal/view"
)

func TestBuildPage(t *testing.T) {
	snap, err := newTestLoader(newMemSource()).Load(context.Background(), "2024-01-05")
	require.NoError(t, err)

	page := BuildPage(snap, view.DefaultQuery(), view.NewMemo(), portfolio.DefaultOptions())

	assert.Equal(t, "2024-01-05", page.Date)
	assert.Equal(t, "1/5 (금)", page.DateLabel)
	assert.Equal(t, 2, page.View.Total)
	require.Len(t, page.View.Groups, 2)
	assert.Equal(t, contracts.StatusVerified, page.View.Groups[0].Status)

	require.Len(t, page.TopIndustries, 2)
	assert.Equal(t, "반도체", page.TopIndustries[0].Industry)

	require.Len(t, page.Exited, 1)
	assert.Equal(t, []int{8, 10, 12}, ranksOf(page.Exited[0].Trajectory))
	assert.True(t, page.Exited[0].Trajectory.Points[3].Exit)

	assert.Len(t, page.Holdings.Positions, 1)
}

func ranksOf(tr view.Trajectory) []int {
	out := []int{}
	for _, p := range tr.Points {
		if p.Rank != nil {
			out = append(out, *p.Rank)
		}
	}
	return out
}

func TestBuildTradesPage(t *testing.T) {
	p, err := newTestLoader(newMemSource()).Portfolio(context.Background())
	require.NoError(t, err)

	tp := BuildTradesPage(p, view.ActionFilter(contracts.ActionExit), view.Asc)
	require.Len(t, tp.Trades, 2)
	assert.Equal(t, "MU", tp.Trades[0].Ticker)
	assert.Equal(t, "AMD", tp.Trades[1].Ticker)
	assert.Equal(t, "-5.00%", tp.Trades[1].ReturnLabel)
	assert.Equal(t, classify.WinRateTier(50), tp.WinRateTier)

	all := BuildTradesPage(p, view.FilterAll, view.Desc)
	assert.Len(t, all.Trades, 4)
	assert.Equal(t, "2024-01-05", all.Trades[0].Date)
}

func TestBuildMarketView(t *testing.T) {
	mv := BuildMarketView(&contracts.MarketStatus{
		HY:            &contracts.HYStatus{Quadrant: "Q1"},
		VIX:           &contracts.VIXStatus{VIXPercentile: 85},
		SignalDots:    &contracts.SignalDots{HYOK: true, VIXOK: false},
		FinalAction:   "적극 매수",
		PortfolioMode: "reduced",
	})

	require.NotNil(t, mv.VIX)
	assert.Equal(t, "상승경보", mv.VIX.Label)
	assert.Equal(t, "엇갈린 신호", mv.Signals.Label)
	assert.Equal(t, "봄 (회복국면)", mv.Season.Name)
	require.NotNil(t, mv.Mode)
	assert.Equal(t, "Top 3", mv.Mode.Label)
	assert.Equal(t, classify.TierStrong, mv.FinalActionTier)

	empty := BuildMarketView(&contracts.MarketStatus{PortfolioMode: "normal"})
	assert.Nil(t, empty.VIX)
	assert.Nil(t, empty.Mode)
	assert.Equal(t, "분석 중", empty.Season.Name)
	assert.Equal(t, "2/2 안정", empty.Signals.Label)
}
