package contracts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"✅", StatusVerified, false},
		{"⏳", StatusPending, false},
		{"\U0001f195", StatusNew, false},
		{"verified", StatusVerified, false},
		{"Pending", StatusPending, false},
		{" new ", StatusNew, false},
		{"⏳\ufe0f", StatusPending, false},
		{"", "", true},
		{"maybe", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStatus(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStatus_RoundTripEmoji(t *testing.T) {
	for _, s := range Statuses {
		got, err := ParseStatus(s.Emoji())
		require.NoError(t, err)
		assert.Equal(t, s, got)
		assert.True(t, s.Valid())
	}
	assert.False(t, Status("x").Valid())
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction("EXIT")
	require.NoError(t, err)
	assert.Equal(t, ActionExit, a)

	_, err = ParseAction("sell")
	assert.Error(t, err)
}

func TestCandidate_UnmarshalBackendShape(t *testing.T) {
	data := `{
		"ticker": "NVDA",
		"part2_rank": 1,
		"composite_rank": null,
		"rev_growth": 0.42,
		"status_3d": "✅",
		"trend": "🔥☀️☀️🌤️",
		"rank_history": "3→2→1"
	}`

	var c Candidate
	require.NoError(t, json.Unmarshal([]byte(data), &c))

	assert.Equal(t, "NVDA", c.Ticker)
	assert.Equal(t, 1, c.Part2Rank)
	assert.Nil(t, c.CompositeRank)
	require.NotNil(t, c.RevGrowth)
	assert.InDelta(t, 0.42, *c.RevGrowth, 1e-9)
	assert.Equal(t, StatusVerified, c.Status)
	assert.Equal(t, "🔥☀️☀️🌤️", c.Trend)
}

func TestCandidate_UnmarshalFrontendShape(t *testing.T) {
	data := `{"ticker": "AMD", "part2_rank": 2, "status": "⏳", "trend_icons": "☁️☁️☁️☁️"}`

	var c Candidate
	require.NoError(t, json.Unmarshal([]byte(data), &c))

	assert.Equal(t, StatusPending, c.Status)
	assert.Equal(t, "☁️☁️☁️☁️", c.Trend)
}

func TestCandidate_MissingStatusIsNew(t *testing.T) {
	var c Candidate
	require.NoError(t, json.Unmarshal([]byte(`{"ticker": "MU", "part2_rank": 3}`), &c))
	assert.Equal(t, StatusNew, c.Status)
}

func TestCandidate_UnknownStatusFails(t *testing.T) {
	var c Candidate
	err := json.Unmarshal([]byte(`{"ticker": "MU", "status": "❌"}`), &c)
	assert.Error(t, err)
}

func TestPortfolioEntry(t *testing.T) {
	ret := 12.5
	exit := PortfolioEntry{Action: ActionExit, ReturnPct: &ret}
	hold := PortfolioEntry{Action: ActionHold, Weight: 0.25}
	pendingExit := PortfolioEntry{Action: ActionExit}

	assert.True(t, exit.IsRealized())
	assert.False(t, exit.IsOpen())
	assert.False(t, pendingExit.IsRealized())
	assert.True(t, hold.IsOpen())

	assert.Equal(t, 0.25, hold.EffectiveWeight(DefaultWeight))
	assert.Equal(t, DefaultWeight, exit.EffectiveWeight(DefaultWeight))
	assert.Equal(t, -0.1, (&PortfolioEntry{Weight: -0.1}).EffectiveWeight(DefaultWeight))
}

func TestPortfolioEntry_RejectsUnknownAction(t *testing.T) {
	var p PortfolioEntry
	err := json.Unmarshal([]byte(`{"ticker": "NVDA", "action": "buy"}`), &p)
	assert.Error(t, err)
}

func TestExitedStock_LegacyYesterdayRank(t *testing.T) {
	var e ExitedStock
	require.NoError(t, json.Unmarshal([]byte(`{"ticker": "TSLA", "yesterday_rank": 7}`), &e))
	assert.Equal(t, 7, e.PrevRank)

	require.NoError(t, json.Unmarshal([]byte(`{"ticker": "TSLA", "prev_rank": 4, "prev_date": "2024-01-04"}`), &e))
	assert.Equal(t, 4, e.PrevRank)
	assert.Equal(t, "2024-01-04", e.PrevDate)
}

func TestScreeningStats_TopIndustries(t *testing.T) {
	stats := &ScreeningStats{
		IndustryDistribution: map[string]int{
			"반도체":  5,
			"응용SW": 3,
			"바이오":  3,
			"방산":   1,
		},
	}

	top := stats.TopIndustries(3)
	require.Len(t, top, 3)
	assert.Equal(t, IndustryCount{"반도체", 5}, top[0])
	// 동률은 이름 오름차순
	assert.Equal(t, "바이오", top[1].Industry)
	assert.Equal(t, "응용SW", top[2].Industry)

	assert.Len(t, stats.TopIndustries(0), 4)
	assert.Empty(t, (&ScreeningStats{}).TopIndustries(5))
}
