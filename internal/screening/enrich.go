package screening

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wonny/epsdash/internal/classify"
	"github.com/wonny/epsdash/internal/contracts"
)

const (
	segmentCap   = 100.0
	rankSep      = "→"
	missingRank  = "-"
	exitMarker   = "OUT"
	statusWindow = 3 // 3일 검증
)

// Pct returns the change from old to new in percent, capped to ±100.
// A missing or zero base yields 0.
func Pct(newV, oldV float64) float64 {
	if oldV == 0 {
		return 0
	}
	v := (newV - oldV) / math.Abs(oldV) * 100
	return math.Max(-segmentCap, math.Min(segmentCap, v))
}

// NTM is the NTM EPS estimate at the current date and 7/30/60/90 days back
type NTM struct {
	Current, D7, D30, D60, D90 float64
}

// Segments returns the four independent segment changes rounded to 2 decimals.
// seg1 = 7d→today, seg2 = 30d→7d, seg3 = 60d→30d, seg4 = 90d→60d.
func Segments(n NTM) [4]float64 {
	return [4]float64{
		round2(Pct(n.Current, n.D7)),
		round2(Pct(n.D7, n.D30)),
		round2(Pct(n.D30, n.D60)),
		round2(Pct(n.D60, n.D90)),
	}
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// ThreeDayStatus derives the verification status from the last part2 dates (newest first).
// Present on the last 3 → verified, on the last 2 → pending, otherwise new.
func ThreeDayStatus(ticker string, dates []string, ranks RankLookup) contracts.Status {
	present := ranks[ticker]
	onAll := func(n int) bool {
		if len(dates) < n {
			return false
		}
		for _, d := range dates[:n] {
			if _, ok := present[d]; !ok {
				return false
			}
		}
		return true
	}

	switch {
	case onAll(statusWindow):
		return contracts.StatusVerified
	case onAll(statusWindow - 1):
		return contracts.StatusPending
	default:
		return contracts.StatusNew
	}
}

// RankHistory renders ranks over dates (newest first) oldest first, e.g. "3→-→1"
func RankHistory(dates []string, ranks map[string]int) string {
	if len(dates) == 0 {
		return ""
	}

	parts := make([]string, 0, len(dates))
	for i := len(dates) - 1; i >= 0; i-- {
		if r, ok := ranks[dates[i]]; ok {
			parts = append(parts, strconv.Itoa(r))
		} else {
			parts = append(parts, missingRank)
		}
	}
	return strings.Join(parts, rankSep)
}

// RankLookup returns part2 ranks keyed by ticker then date
type RankLookup map[string]map[string]int

// Add records a rank
func (r RankLookup) Add(ticker, date string, rank int) {
	if r[ticker] == nil {
		r[ticker] = make(map[string]int)
	}
	r[ticker][date] = rank
}

// Enrich fills segments, trend icons, status and rank history of a candidate
func Enrich(c *contracts.Candidate, n NTM, dates []string, ranks RankLookup) {
	seg := Segments(n)
	c.Seg1, c.Seg2, c.Seg3, c.Seg4 = seg[0], seg[1], seg[2], seg[3]
	c.Trend = classify.TrendIcons(c.Seg1, c.Seg2, c.Seg3, c.Seg4)
	c.Status = ThreeDayStatus(c.Ticker, dates, ranks)
	c.RankHistory = RankHistory(dates, ranks[c.Ticker])
}

// ExitCandidate is a ticker ranked on the previous date
type ExitCandidate struct {
	Ticker    string
	PrevRank  int
	ShortName string
	Industry  string
}

// ExitDiff lists tickers of prev missing from today's ranked set, best previous rank first.
// history holds part2 dates up to and including prevDate (newest first) for the trajectory.
func ExitDiff(prevDate string, prev []ExitCandidate, today map[string]bool, current map[string]int, history []string, ranks RankLookup) []contracts.ExitedStock {
	sorted := make([]ExitCandidate, len(prev))
	copy(sorted, prev)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].PrevRank != sorted[j].PrevRank {
			return sorted[i].PrevRank < sorted[j].PrevRank
		}
		return sorted[i].Ticker < sorted[j].Ticker
	})

	exited := make([]contracts.ExitedStock, 0)
	for _, p := range sorted {
		if today[p.Ticker] {
			continue
		}

		e := contracts.ExitedStock{
			Ticker:      p.Ticker,
			PrevDate:    prevDate,
			PrevRank:    p.PrevRank,
			RankHistory: RankHistory(history, ranks[p.Ticker]) + rankSep + exitMarker,
			ShortName:   p.ShortName,
			IndustryKR:  classify.IndustryKR(p.Industry),
		}
		if r, ok := current[p.Ticker]; ok {
			rank := r
			e.CurrentRank = &rank
		}
		exited = append(exited, e)
	}
	return exited
}

// StatusCounts counts verified and new candidates
func StatusCounts(candidates []contracts.Candidate) (verified, newCount int) {
	for _, c := range candidates {
		switch c.Status {
		case contracts.StatusVerified:
			verified++
		case contracts.StatusNew:
			newCount++
		}
	}
	return verified, newCount
}

// IndustryDistribution counts candidates per Korean industry label
func IndustryDistribution(candidates []contracts.Candidate) map[string]int {
	dist := make(map[string]int)
	for _, c := range candidates {
		if c.Industry == "" {
			continue
		}
		dist[classify.IndustryKR(c.Industry)]++
	}
	return dist
}
