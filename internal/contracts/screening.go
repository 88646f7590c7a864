package contracts

import (
	"encoding/json"
	"sort"
)

// Candidate is one row of the daily Top 30 screening result
// ⭐ SSOT: 업스트림 /screening/{date} 응답 행
type Candidate struct {
	Ticker        string   `json:"ticker"`
	Part2Rank     int      `json:"part2_rank"`     // 1 = best
	CompositeRank *int     `json:"composite_rank"` // adj_gap 70% + rev_growth 30%
	Score         float64  `json:"score"`
	AdjScore      float64  `json:"adj_score"`
	AdjGap        float64  `json:"adj_gap"` // 음수 = 저평가
	Price         float64  `json:"price"`
	MA60          float64  `json:"ma60"`
	NTMCurrent    float64  `json:"ntm_current"`
	RevGrowth     *float64 `json:"rev_growth"`
	RevUp30       int      `json:"rev_up30"`
	RevDown30     int      `json:"rev_down30"`
	NumAnalysts   int      `json:"num_analysts"`

	// 재무 (구버전 DB에는 없음)
	MarketCap       *float64 `json:"market_cap"`
	ROE             *float64 `json:"roe"`
	DebtToEquity    *float64 `json:"debt_to_equity"`
	OperatingMargin *float64 `json:"operating_margin"`
	FreeCashflow    *float64 `json:"free_cashflow"`
	Beta            *float64 `json:"beta"`
	FwdPE           *float64 `json:"fwd_pe"`

	// NTM EPS 구간별 변화율 (%), seg1 = 최근 7일, seg4 = 90d→60d
	Seg1 float64 `json:"seg1"`
	Seg2 float64 `json:"seg2"`
	Seg3 float64 `json:"seg3"`
	Seg4 float64 `json:"seg4"`

	Trend       string `json:"trend"` // 날씨 아이콘 4개 (seg4 → seg1)
	Status      Status `json:"status"`
	RankHistory string `json:"rank_history"` // "3→4→1"

	Industry  string `json:"industry,omitempty"`
	ShortName string `json:"short_name,omitempty"`
}

// UnmarshalJSON accepts the backend field names (status_3d, trend_icons) as aliases.
// A candidate without any status is treated as a new entrant.
func (c *Candidate) UnmarshalJSON(data []byte) error {
	type plain Candidate
	var aux struct {
		plain
		Status     *Status `json:"status"`
		Status3D   *Status `json:"status_3d"`
		TrendIcons string  `json:"trend_icons"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*c = Candidate(aux.plain)
	switch {
	case aux.Status != nil:
		c.Status = *aux.Status
	case aux.Status3D != nil:
		c.Status = *aux.Status3D
	default:
		c.Status = StatusNew
	}
	if c.Trend == "" {
		c.Trend = aux.TrendIcons
	}
	return nil
}

// Segments returns seg1..seg4 in order
func (c *Candidate) Segments() [4]float64 {
	return [4]float64{c.Seg1, c.Seg2, c.Seg3, c.Seg4}
}

// TickerHistory is one day of screening data for a single ticker
type TickerHistory struct {
	Date          string   `json:"date"`
	Score         float64  `json:"score"`
	AdjScore      float64  `json:"adj_score"`
	AdjGap        float64  `json:"adj_gap"`
	Price         float64  `json:"price"`
	MA60          float64  `json:"ma60"`
	NTMCurrent    float64  `json:"ntm_current"`
	Part2Rank     *int     `json:"part2_rank"`
	CompositeRank *int     `json:"composite_rank"`
	RevGrowth     *float64 `json:"rev_growth"`
}

// ExitedStock is a ticker that left the Top 30 since the previous screening date
// ⭐ Death List 항목
type ExitedStock struct {
	Ticker      string `json:"ticker"`
	PrevDate    string `json:"prev_date,omitempty"`
	PrevRank    int    `json:"prev_rank"`
	CurrentRank *int   `json:"current_rank,omitempty"` // part2 밖이지만 여전히 스크리닝된 경우
	RankHistory string `json:"rank_history,omitempty"` // "8→10→12→OUT"
	ShortName   string `json:"short_name,omitempty"`
	IndustryKR  string `json:"industry_kr,omitempty"`
}

// UnmarshalJSON accepts the legacy yesterday_rank field
func (e *ExitedStock) UnmarshalJSON(data []byte) error {
	type plain ExitedStock
	var aux struct {
		plain
		YesterdayRank *int `json:"yesterday_rank"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*e = ExitedStock(aux.plain)
	if e.PrevRank == 0 && aux.YesterdayRank != nil {
		e.PrevRank = *aux.YesterdayRank
	}
	return nil
}

// ScreeningStats summarizes the screening funnel for one date
type ScreeningStats struct {
	Date                 string         `json:"date"`
	TotalScreened        int            `json:"total_screened"`
	TotalEligible        int            `json:"total_eligible"` // adj_score > 9
	Top30Count           int            `json:"top30_count"`
	VerifiedCount        int            `json:"verified_count"`
	NewCount             int            `json:"new_count"`
	IndustryDistribution map[string]int `json:"industry_distribution"`
}

// IndustryCount is one entry of the industry distribution
type IndustryCount struct {
	Industry string `json:"industry"`
	Count    int    `json:"count"`
}

// TopIndustries returns up to n industries by count desc, name asc.
// n <= 0 returns all of them.
func (s *ScreeningStats) TopIndustries(n int) []IndustryCount {
	out := make([]IndustryCount, 0, len(s.IndustryDistribution))
	for name, count := range s.IndustryDistribution {
		out = append(out, IndustryCount{Industry: name, Count: count})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Industry < out[j].Industry
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
