package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/wonny/epsdash/internal/classify"
	"github.com/wonny/epsdash/internal/contracts"
	"github.com/wonny/epsdash/internal/format"
	"github.com/wonny/epsdash/internal/source"
)

const tickerRankWindow = 10

// TickerDetail is the per-ticker history page
type TickerDetail struct {
	Ticker  string                    `json:"ticker"`
	History []contracts.TickerHistory `json:"history"`
	Latest  *contracts.TickerHistory  `json:"latest"`
	// empty without history
	ScoreTier classify.Tier `json:"score_tier,omitempty"`
	// nil when ma60 <= 0
	PriceVsMA60 *float64 `json:"price_vs_ma60"`
	Ranks       string   `json:"ranks"` // 최근 10회 part2 순위, "3 -> 4 -> 1"
}

// Ticker loads the screening history of one ticker and derives its summary figures
func (l *Loader) Ticker(ctx context.Context, ticker string) (*TickerDetail, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	history, err := l.src.TickerHistory(ctx, ticker)
	if err != nil {
		return nil, &LoadError{Part: "ticker " + ticker, Err: err}
	}
	if len(history) == 0 {
		return nil, &LoadError{Part: "ticker " + ticker, Err: fmt.Errorf("no history: %w", source.ErrNotFound)}
	}

	return NewTickerDetail(ticker, history), nil
}

// NewTickerDetail derives the summary of an oldest-first history
func NewTickerDetail(ticker string, history []contracts.TickerHistory) *TickerDetail {
	d := &TickerDetail{Ticker: ticker, History: history}
	if len(history) == 0 {
		return d
	}

	latest := history[len(history)-1]
	d.Latest = &latest
	d.ScoreTier = classify.DetailScoreTier(latest.AdjScore)
	d.PriceVsMA60 = PriceVsMA(latest.Price, latest.MA60)
	d.Ranks = format.RankHistory(RecentRanks(history, tickerRankWindow))
	return d
}

// PriceVsMA returns (price - ma) / ma * 100, or nil when ma <= 0
func PriceVsMA(price, ma float64) *float64 {
	if ma <= 0 {
		return nil
	}
	v := (price - ma) / ma * 100
	return &v
}

// RecentRanks returns the last n non-null part2 ranks, oldest first
func RecentRanks(history []contracts.TickerHistory, n int) []int {
	ranks := make([]int, 0, n)
	for _, h := range history {
		if h.Part2Rank != nil {
			ranks = append(ranks, *h.Part2Rank)
		}
	}
	if len(ranks) > n {
		ranks = ranks[len(ranks)-n:]
	}
	return ranks
}
