package portfolio

import (
	"github.com/wonny/epsdash/internal/contracts"
)

// Position is an open position with its unrealized return
type Position struct {
	contracts.PortfolioEntry
	EffectiveWeight float64 `json:"effective_weight"`
	// nil when entry_price <= 0
	UnrealizedPct *float64 `json:"unrealized_pct"`
}

// HoldingsView splits one portfolio snapshot into open positions and exits
type HoldingsView struct {
	Date                string                     `json:"date"`
	Positions           []Position                 `json:"positions"`
	Exits               []contracts.PortfolioEntry `json:"exits"`
	PortfolioUnrealized float64                    `json:"portfolio_unrealized"`
}

// UnrealizedPct returns (price - entry) / entry * 100, or nil when entry_price <= 0
func UnrealizedPct(e contracts.PortfolioEntry) *float64 {
	if e.EntryPrice <= 0 {
		return nil
	}
	v := (e.Price - e.EntryPrice) / e.EntryPrice * 100
	return &v
}

// Holdings derives open positions and the weighted unrealized return.
// Positions without an unrealized value contribute 0.
func Holdings(entries []contracts.PortfolioEntry, opts Options) HoldingsView {
	def := opts.weight()
	view := HoldingsView{
		Positions: make([]Position, 0, len(entries)),
		Exits:     make([]contracts.PortfolioEntry, 0),
	}

	for _, e := range entries {
		if e.Date > view.Date {
			view.Date = e.Date
		}
		if !e.IsOpen() {
			view.Exits = append(view.Exits, e)
			continue
		}

		p := Position{
			PortfolioEntry:  e,
			EffectiveWeight: e.EffectiveWeight(def),
			UnrealizedPct:   UnrealizedPct(e),
		}
		if p.UnrealizedPct != nil {
			view.PortfolioUnrealized += *p.UnrealizedPct * p.EffectiveWeight
		}
		view.Positions = append(view.Positions, p)
	}
	return view
}

// Latest returns the entries of the most recent date in input order
func Latest(entries []contracts.PortfolioEntry) (string, []contracts.PortfolioEntry) {
	latest := ""
	for _, e := range entries {
		if e.Date > latest {
			latest = e.Date
		}
	}

	out := make([]contracts.PortfolioEntry, 0)
	for _, e := range entries {
		if e.Date == latest {
			out = append(out, e)
		}
	}
	return latest, out
}
