// Package portfolio derives performance figures from the model portfolio log.
package portfolio

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/wonny/epsdash/internal/contracts"
)

// Options controls aggregation conventions
type Options struct {
	DefaultWeight float64 // 비중이 없을 때(0) 사용 (기본 0.2)
}

// DefaultOptions returns the 5-slot equal-weight convention
func DefaultOptions() Options {
	return Options{DefaultWeight: contracts.DefaultWeight}
}

func (o Options) weight() float64 {
	if o.DefaultWeight > 0 {
		return o.DefaultWeight
	}
	return contracts.DefaultWeight
}

// CumulativePoint is one realized trade on the cumulative return curve
type CumulativePoint struct {
	Date         string  `json:"date"`
	Ticker       string  `json:"ticker"`
	ReturnPct    float64 `json:"return_pct"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
	Cumulative   float64 `json:"cumulative"` // 소수점 2자리 반올림
}

// TradeStats summarizes realized trades (unrounded)
type TradeStats struct {
	TotalTrades int     `json:"total_trades"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"` // return 0 포함
	WinRate     float64 `json:"win_rate"`
	AvgReturn   float64 `json:"avg_return"`
	AvgWin      float64 `json:"avg_win"`
	AvgLoss     float64 `json:"avg_loss"`
}

// Result is the aggregation of a trade history
type Result struct {
	Cumulative  []CumulativePoint `json:"cumulative"`
	Stats       *TradeStats       `json:"stats"` // nil when there are no realized trades
	TotalReturn float64           `json:"total_return"`
}

// Realized returns exit rows with a known return, oldest first.
// Rows on the same date keep their input order.
func Realized(history []contracts.PortfolioEntry) []contracts.PortfolioEntry {
	out := make([]contracts.PortfolioEntry, 0)
	for _, e := range history {
		if e.IsRealized() {
			out = append(out, e)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

// Aggregate builds the cumulative return series and trade statistics.
// ⭐ SSOT: 누적 수익률 = Σ(return_pct × weight), 각 지점에서 2자리 반올림
func Aggregate(history []contracts.PortfolioEntry, opts Options) Result {
	trades := Realized(history)
	def := opts.weight()

	points := make([]CumulativePoint, 0, len(trades))
	running := decimal.Zero
	for _, e := range trades {
		ret := *e.ReturnPct
		w := e.EffectiveWeight(def)

		contribution := decimal.NewFromFloat(ret).Mul(decimal.NewFromFloat(w))
		running = running.Add(contribution)

		points = append(points, CumulativePoint{
			Date:         e.Date,
			Ticker:       e.Ticker,
			ReturnPct:    ret,
			Weight:       w,
			Contribution: contribution.InexactFloat64(),
			Cumulative:   running.Round(2).InexactFloat64(),
		})
	}

	result := Result{
		Cumulative: points,
		Stats:      Stats(trades),
	}
	if len(points) > 0 {
		result.TotalReturn = points[len(points)-1].Cumulative
	}
	return result
}

// Stats computes win/loss statistics over realized trades.
// Returns nil when there are none.
func Stats(trades []contracts.PortfolioEntry) *TradeStats {
	var (
		total, wins, losses     int
		sumAll, sumWin, sumLoss float64
	)

	for _, e := range trades {
		if !e.IsRealized() {
			continue
		}
		ret := *e.ReturnPct
		total++
		sumAll += ret
		if ret > 0 {
			wins++
			sumWin += ret
		} else {
			losses++
			sumLoss += ret
		}
	}

	if total == 0 {
		return nil
	}

	stats := &TradeStats{
		TotalTrades: total,
		Wins:        wins,
		Losses:      losses,
		WinRate:     float64(wins) / float64(total) * 100,
		AvgReturn:   sumAll / float64(total),
	}
	if wins > 0 {
		stats.AvgWin = sumWin / float64(wins)
	}
	if losses > 0 {
		stats.AvgLoss = sumLoss / float64(losses)
	}
	return stats
}
