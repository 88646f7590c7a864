package view

import (
	"github.com/wonny/epsdash/internal/classify"
	"github.com/wonny/epsdash/internal/contracts"
	"github.com/wonny/epsdash/internal/format"
)

// Query selects how a candidate table is derived
type Query struct {
	Key       CandidateKey `json:"key"`
	Direction Direction    `json:"direction"`
	Status    StatusFilter `json:"status"`
	Grouped   bool         `json:"grouped"`
}

// DefaultQuery is the dashboard's initial table state: rank ascending, all statuses, grouped
func DefaultQuery() Query {
	return Query{Key: KeyRank, Direction: Asc, Status: FilterAll, Grouped: true}
}

// Normalize fills empty fields with defaults
func (q Query) Normalize() Query {
	if q.Key == "" {
		q.Key = KeyRank
	}
	if q.Direction == "" {
		q.Direction = DefaultDirection(q.Key)
	}
	if q.Status == "" {
		q.Status = FilterAll
	}
	return q
}

// CandidateDisplay holds the formatted columns of a row
type CandidateDisplay struct {
	Price       string `json:"price"`
	AdjScore    string `json:"adj_score"`
	AdjGap      string `json:"adj_gap"`
	RevGrowth   string `json:"rev_growth"`
	MarketCap   string `json:"market_cap"`
	FwdPE       string `json:"fwd_pe"`
	Composite   string `json:"composite_rank"`
	Industry    string `json:"industry"`
	StatusLabel string `json:"status_label"`
}

// CandidateRow is a candidate with display strings and tiers
type CandidateRow struct {
	Position   int                 `json:"position"` // 1-based, after sort and filter
	Candidate  contracts.Candidate `json:"candidate"`
	Display    CandidateDisplay    `json:"display"`
	GapTier    classify.Tier       `json:"gap_tier"`
	ScoreTier  classify.Tier       `json:"score_tier"`
	RankTier   classify.Tier       `json:"rank_tier"`
	Trend      string              `json:"trend"`
	TrendTip   string              `json:"trend_tooltip"`
	Emphasized bool                `json:"emphasized"`
	Trajectory Trajectory          `json:"trajectory"`
}

// RowGroup is a status bucket of rows
type RowGroup struct {
	Status   contracts.Status `json:"status"`
	Label    string           `json:"label"`
	Sublabel string           `json:"sublabel"`
	Rows     []CandidateRow   `json:"rows"`
}

// CandidateView is the derived candidate table
type CandidateView struct {
	Query  Query          `json:"query"`
	Total  int            `json:"total"` // before filtering
	Rows   []CandidateRow `json:"rows"`
	Groups []RowGroup     `json:"groups,omitempty"`
}

// BuildCandidateView filters, sorts and optionally groups records, then decorates each row
func BuildCandidateView(records []contracts.Candidate, q Query) CandidateView {
	q = q.Normalize()

	sorted := SortCandidates(FilterCandidates(records, q.Status), q.Key, q.Direction)

	rows := make([]CandidateRow, len(sorted))
	for i := range sorted {
		rows[i] = newCandidateRow(i, sorted[i])
	}

	v := CandidateView{Query: q, Total: len(records), Rows: rows}
	if !q.Grouped {
		return v
	}

	// 행 단위로 버킷팅 (ticker 중복이 있어도 행이 섞이지 않음)
	buckets := make(map[contracts.Status][]CandidateRow, len(contracts.Statuses))
	for _, r := range rows {
		st := bucketOf(r.Candidate.Status)
		buckets[st] = append(buckets[st], r)
	}

	v.Groups = []RowGroup{}
	for _, st := range contracts.Statuses {
		if len(buckets[st]) == 0 {
			continue
		}
		labels := groupLabels[st]
		v.Groups = append(v.Groups, RowGroup{
			Status:   st,
			Label:    labels[0],
			Sublabel: labels[1],
			Rows:     buckets[st],
		})
	}
	return v
}

func newCandidateRow(index int, c contracts.Candidate) CandidateRow {
	score, gap := c.AdjScore, c.AdjGap

	return CandidateRow{
		Position:  index + 1,
		Candidate: c,
		Display: CandidateDisplay{
			Price:       format.Price(c.Price),
			AdjScore:    format.Number(&score, 1),
			AdjGap:      format.Percent(&gap),
			RevGrowth:   format.Percent(c.RevGrowth),
			MarketCap:   format.MarketCap(c.MarketCap),
			FwdPE:       format.Number(c.FwdPE, 1),
			Composite:   format.Int(c.CompositeRank),
			Industry:    classify.IndustryKR(c.Industry),
			StatusLabel: c.Status.Label(),
		},
		GapTier:    classify.GapTier(c.AdjGap),
		ScoreTier:  classify.ScoreTier(c.AdjScore),
		RankTier:   classify.RankTier(c.Part2Rank),
		Trend:      classify.TrendIcons(c.Seg1, c.Seg2, c.Seg3, c.Seg4),
		TrendTip:   classify.TrendTooltip(c.Seg1, c.Seg2, c.Seg3, c.Seg4),
		Emphasized: classify.RowEmphasis(index),
		Trajectory: BuildTrajectory(c.RankHistory),
	}
}
