package contracts

// DefaultWeight is the equal-weight convention of the 5-slot model portfolio
const DefaultWeight = 0.2

// PortfolioEntry is one model portfolio log row
// ⭐ SSOT: 업스트림 /portfolio 응답 행
type PortfolioEntry struct {
	Date       string   `json:"date"`
	Ticker     string   `json:"ticker"`
	Action     Action   `json:"action"`
	Price      float64  `json:"price"`
	Weight     float64  `json:"weight"`
	EntryDate  string   `json:"entry_date"`
	EntryPrice float64  `json:"entry_price"`
	ExitPrice  *float64 `json:"exit_price"`
	ReturnPct  *float64 `json:"return_pct"` // 청산 시 실현 수익률 (%)
}

// IsOpen reports whether the entry is a held position
func (p *PortfolioEntry) IsOpen() bool {
	return p.Action != ActionExit
}

// IsRealized reports whether the entry is a closed trade with a known return
func (p *PortfolioEntry) IsRealized() bool {
	return p.Action == ActionExit && p.ReturnPct != nil
}

// EffectiveWeight returns the weight, or def when it is missing (zero).
// A negative weight is a short position and is kept.
func (p *PortfolioEntry) EffectiveWeight(def float64) float64 {
	if p.Weight == 0 {
		return def
	}
	return p.Weight
}
