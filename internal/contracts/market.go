package contracts

// MarketStatus is the market regime snapshot shown above the dashboard
type MarketStatus struct {
	HY            *HYStatus     `json:"hy,omitempty"`
	VIX           *VIXStatus    `json:"vix,omitempty"`
	Indices       []MarketIndex `json:"indices,omitempty"`
	SignalDots    *SignalDots   `json:"signal_dots,omitempty"`
	FinalAction   string        `json:"final_action,omitempty"`
	PortfolioMode string        `json:"portfolio_mode,omitempty"` // normal, caution, reduced, stop
}

// HYStatus is the high-yield spread regime
type HYStatus struct {
	HYSpread      float64 `json:"hy_spread"`
	Quadrant      string  `json:"quadrant"` // Q1..Q4
	QuadrantLabel string  `json:"quadrant_label"`
	QDays         int     `json:"q_days"`
	Direction     string  `json:"direction"`
}

// VIXStatus is the volatility regime
type VIXStatus struct {
	VIXCurrent    float64 `json:"vix_current"`
	VIXPercentile float64 `json:"vix_percentile"`
	RegimeLabel   string  `json:"regime_label"`
}

// MarketIndex is one index quote
type MarketIndex struct {
	Name      string  `json:"name"`
	Close     float64 `json:"close"`
	ChangePct float64 `json:"change_pct"`
}

// SignalDots are the two market health signals
type SignalDots struct {
	HYOK  bool `json:"hy_ok"`
	VIXOK bool `json:"vix_ok"`
}
