package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/epsdash/internal/classify"
	"github.com/wonny/epsdash/internal/contracts"
)

func TestPct(t *testing.T) {
	tests := []struct {
		name     string
		newV     float64
		oldV     float64
		expected float64
	}{
		{"increase", 110, 100, 10},
		{"decrease", 90, 100, -10},
		{"zero base", 5, 0, 0},
		{"capped up", 500, 100, 100},
		{"capped down", -500, 100, -100},
		{"negative base", -9, -10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pct(tt.newV, tt.oldV); got != tt.expected {
				t.Errorf("Pct(%v, %v) = %v, want %v", tt.newV, tt.oldV, got, tt.expected)
			}
		})
	}
}

func TestSegments(t *testing.T) {
	seg := Segments(NTM{Current: 12, D7: 10, D30: 10, D60: 0, D90: 8})

	assert.Equal(t, 20.0, seg[0])
	assert.Equal(t, 0.0, seg[1])
	assert.Equal(t, 0.0, seg[2], "zero base yields 0")
	assert.Equal(t, -100.0, seg[3])

	seg = Segments(NTM{Current: 10, D7: 3})
	assert.Equal(t, 100.0, seg[0])

	seg = Segments(NTM{Current: 10.1234, D7: 10})
	assert.Equal(t, 1.23, seg[0])
}

func lookup() RankLookup {
	r := make(RankLookup)
	// 최신순: 2025-01-08, 2025-01-07, 2025-01-06
	r.Add("NVDA", "2025-01-08", 1)
	r.Add("NVDA", "2025-01-07", 4)
	r.Add("NVDA", "2025-01-06", 3)
	r.Add("AMD", "2025-01-08", 2)
	r.Add("AMD", "2025-01-07", 5)
	r.Add("MU", "2025-01-08", 3)
	r.Add("MU", "2025-01-06", 2)
	r.Add("AVGO", "2025-01-07", 8)
	return r
}

var window = []string{"2025-01-08", "2025-01-07", "2025-01-06"}

func TestThreeDayStatus(t *testing.T) {
	ranks := lookup()

	tests := []struct {
		ticker   string
		dates    []string
		expected contracts.Status
	}{
		{"NVDA", window, contracts.StatusVerified},
		{"AMD", window, contracts.StatusPending},
		{"MU", window, contracts.StatusNew},
		{"TSLA", window, contracts.StatusNew},
		{"NVDA", window[:2], contracts.StatusPending},
		{"NVDA", nil, contracts.StatusNew},
	}

	for _, tt := range tests {
		if got := ThreeDayStatus(tt.ticker, tt.dates, ranks); got != tt.expected {
			t.Errorf("ThreeDayStatus(%s, %v) = %v, want %v", tt.ticker, tt.dates, got, tt.expected)
		}
	}
}

func TestRankHistory(t *testing.T) {
	ranks := lookup()

	assert.Equal(t, "3→4→1", RankHistory(window, ranks["NVDA"]))
	assert.Equal(t, "2→-→3", RankHistory(window, ranks["MU"]))
	assert.Equal(t, "-→-→-", RankHistory(window, nil))
	assert.Equal(t, "", RankHistory(nil, ranks["NVDA"]))
}

func TestEnrich(t *testing.T) {
	c := contracts.Candidate{Ticker: "NVDA", Part2Rank: 1}
	Enrich(&c, NTM{Current: 13, D7: 10, D30: 10, D60: 10, D90: 10}, window, lookup())

	assert.Equal(t, 30.0, c.Seg1)
	assert.Equal(t, 0.0, c.Seg4)
	assert.Equal(t, contracts.StatusVerified, c.Status)
	assert.Equal(t, "3→4→1", c.RankHistory)

	expected := classify.WeatherFlat.Icon + classify.WeatherFlat.Icon + classify.WeatherFlat.Icon + classify.WeatherHot.Icon
	assert.Equal(t, expected, c.Trend, "trend runs seg4 → seg1")
}

func TestExitDiff(t *testing.T) {
	ranks := make(RankLookup)
	history := []string{"2025-01-07", "2025-01-06", "2025-01-03"}
	ranks.Add("AVGO", "2025-01-03", 8)
	ranks.Add("AVGO", "2025-01-06", 10)
	ranks.Add("AVGO", "2025-01-07", 12)
	ranks.Add("MU", "2025-01-07", 3)

	prev := []ExitCandidate{
		{Ticker: "AVGO", PrevRank: 12, ShortName: "Broadcom", Industry: "Semiconductors"},
		{Ticker: "NVDA", PrevRank: 1},
		{Ticker: "MU", PrevRank: 3},
	}
	today := map[string]bool{"NVDA": true}
	current := map[string]int{"MU": 41}

	exited := ExitDiff("2025-01-07", prev, today, current, history, ranks)
	require.Len(t, exited, 2)

	assert.Equal(t, "MU", exited[0].Ticker, "ordered by previous rank")
	require.NotNil(t, exited[0].CurrentRank)
	assert.Equal(t, 41, *exited[0].CurrentRank)
	assert.Equal(t, "-→-→3→OUT", exited[0].RankHistory)

	assert.Equal(t, "AVGO", exited[1].Ticker)
	assert.Equal(t, "2025-01-07", exited[1].PrevDate)
	assert.Equal(t, 12, exited[1].PrevRank)
	assert.Nil(t, exited[1].CurrentRank)
	assert.Equal(t, "8→10→12→OUT", exited[1].RankHistory)
	assert.Equal(t, "Broadcom", exited[1].ShortName)
	assert.Equal(t, classify.IndustryKR("Semiconductors"), exited[1].IndustryKR)

	assert.Empty(t, ExitDiff("2025-01-07", nil, today, current, history, ranks))
}

func TestStatusCounts(t *testing.T) {
	candidates := []contracts.Candidate{
		{Ticker: "A", Status: contracts.StatusVerified},
		{Ticker: "B", Status: contracts.StatusVerified},
		{Ticker: "C", Status: contracts.StatusPending},
		{Ticker: "D", Status: contracts.StatusNew},
	}

	verified, newCount := StatusCounts(candidates)
	if verified != 2 || newCount != 1 {
		t.Errorf("StatusCounts() = (%d, %d), want (2, 1)", verified, newCount)
	}
}

func TestIndustryDistribution(t *testing.T) {
	candidates := []contracts.Candidate{
		{Ticker: "NVDA", Industry: "Semiconductors"},
		{Ticker: "AMD", Industry: "Semiconductors"},
		{Ticker: "MSFT", Industry: "Software - Infrastructure"},
		{Ticker: "XYZ"},
	}

	dist := IndustryDistribution(candidates)
	assert.Len(t, dist, 2)
	assert.Equal(t, 2, dist[classify.IndustryKR("Semiconductors")])
}
