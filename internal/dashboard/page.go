package dashboard

import (
	"github.com/wonny/epsdash/internal/classify"
	"github.com/wonny/epsdash/internal/contracts"
	"github.com/wonny/epsdash/internal/format"
	"github.com/wonny/epsdash/internal/portfolio"
	"github.com/wonny/epsdash/internal/view"
)

const topIndustries = 10

// ExitedRow is a death list entry with its parsed trajectory
type ExitedRow struct {
	Stock        contracts.ExitedStock `json:"stock"`
	PrevRankTier classify.Tier         `json:"prev_rank_tier"`
	Trajectory   view.Trajectory       `json:"trajectory"`
}

// Page is the derived dashboard of one snapshot
type Page struct {
	Date          string                    `json:"date"`
	DateLabel     string                    `json:"date_label"`
	View          view.CandidateView        `json:"view"`
	Stats         *contracts.ScreeningStats `json:"stats"`
	TopIndustries []contracts.IndustryCount `json:"top_industries"`
	Holdings      portfolio.HoldingsView    `json:"holdings"`
	Exited        []ExitedRow               `json:"exited"`
}

// BuildPage derives the dashboard of snap using memo for the candidate view
func BuildPage(snap *Snapshot, q view.Query, memo *view.Memo, opts portfolio.Options) Page {
	p := Page{
		Date:          snap.Date,
		DateLabel:     format.DateKR(snap.Date),
		View:          memo.View(snap.ID(), snap.Candidates, q),
		Stats:         snap.Stats,
		TopIndustries: []contracts.IndustryCount{},
		Holdings:      portfolio.Holdings(snap.Portfolio, opts),
		Exited:        ExitedRows(snap.Exited),
	}
	if snap.Stats != nil {
		p.TopIndustries = snap.Stats.TopIndustries(topIndustries)
	}
	if p.Holdings.Date == "" {
		p.Holdings.Date = snap.Date
	}
	return p
}

// ExitedRows attaches trajectories to exited stocks
func ExitedRows(exited []contracts.ExitedStock) []ExitedRow {
	rows := make([]ExitedRow, 0, len(exited))
	for _, e := range exited {
		rows = append(rows, ExitedRow{
			Stock:        e,
			PrevRankTier: classify.RankTier(e.PrevRank),
			Trajectory:   view.BuildTrajectory(e.RankHistory),
		})
	}
	return rows
}

// TradeRow is a formatted trade history row
type TradeRow struct {
	contracts.PortfolioEntry
	ActionLabel string        `json:"action_label"`
	ActionTier  classify.Tier `json:"action_tier"`
	ReturnLabel string        `json:"return_label"`
	ReturnTier  classify.Tier `json:"return_tier"`
}

// TradesPage is the performance page with a filtered and sorted trade table
type TradesPage struct {
	*PortfolioPage
	Filter      view.ActionFilter `json:"filter"`
	Direction   view.Direction    `json:"direction"`
	Trades      []TradeRow        `json:"trades"`
	WinRateTier classify.Tier     `json:"win_rate_tier,omitempty"`
}

// BuildTradesPage filters the history by action and sorts it by date then ticker
func BuildTradesPage(p *PortfolioPage, f view.ActionFilter, dir view.Direction) TradesPage {
	entries := view.SortTrades(view.FilterTrades(p.History, f), dir)

	rows := make([]TradeRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, TradeRow{
			PortfolioEntry: e,
			ActionLabel:    e.Action.Label(),
			ActionTier:     classify.ActionTier(e.Action),
			ReturnLabel:    format.SignedPercent(e.ReturnPct, 2),
			ReturnTier:     classify.ReturnTier(e.ReturnPct),
		})
	}

	tp := TradesPage{PortfolioPage: p, Filter: f, Direction: dir, Trades: rows}
	if p.Result.Stats != nil {
		tp.WinRateTier = classify.WinRateTier(p.Result.Stats.WinRate)
	}
	return tp
}

// MarketView is the market status with its classified badges
type MarketView struct {
	Status          *contracts.MarketStatus `json:"status"`
	VIX             *classify.Band          `json:"vix_band,omitempty"`
	Signals         classify.Band           `json:"signals"`
	Season          classify.Season         `json:"season"`
	Mode            *classify.Band          `json:"mode,omitempty"`
	FinalActionTier classify.Tier           `json:"final_action_tier,omitempty"`
}

// BuildMarketView classifies a market snapshot
func BuildMarketView(m *contracts.MarketStatus) MarketView {
	mv := MarketView{
		Status:  m,
		Signals: classify.SignalsOf(m.SignalDots),
		Season:  classify.SeasonFor(""),
	}
	if m.VIX != nil {
		b := classify.VIXBand(m.VIX.VIXPercentile)
		mv.VIX = &b
	}
	if m.HY != nil {
		mv.Season = classify.SeasonFor(m.HY.Quadrant)
	}
	if b, ok := classify.PortfolioMode(m.PortfolioMode); ok {
		mv.Mode = &b
	}
	if m.FinalAction != "" {
		mv.FinalActionTier = classify.FinalActionTier(m.FinalAction)
	}
	return mv
}
