package classify

import (
	"strings"
	"testing"

	"github.com/wonny/epsdash/internal/contracts"
)

func TestGapTier(t *testing.T) {
	tests := []struct {
		gap  float64
		want Tier
	}{
		{-15, TierStrong},
		{-10, TierStrong},
		{-7, TierGood},
		{-5, TierGood},
		{-0.1, TierNeutral},
		{0, TierNeutral},
		{3, TierCaution},
		{5, TierCaution},
		{5.01, TierDanger},
	}

	for _, tt := range tests {
		if got := GapTier(tt.gap); got != tt.want {
			t.Errorf("GapTier(%v) = %v, want %v", tt.gap, got, tt.want)
		}
	}
}

func TestScoreTiers(t *testing.T) {
	tests := []struct {
		score  float64
		table  Tier
		detail Tier
	}{
		{30, TierStrong, TierStrong},
		{25, TierStrong, TierStrong},
		{15, TierGood, TierStrong},
		{12, TierCaution, TierCaution},
		{9, TierMuted, TierCaution},
		{5, TierMuted, TierDanger},
	}

	for _, tt := range tests {
		if got := ScoreTier(tt.score); got != tt.table {
			t.Errorf("ScoreTier(%v) = %v, want %v", tt.score, got, tt.table)
		}
		if got := DetailScoreTier(tt.score); got != tt.detail {
			t.Errorf("DetailScoreTier(%v) = %v, want %v", tt.score, got, tt.detail)
		}
	}
}

func TestReturnTier(t *testing.T) {
	pos, neg, zero := 3.2, -1.0, 0.0

	if got := ReturnTier(nil); got != TierMuted {
		t.Errorf("ReturnTier(nil) = %v, want %v", got, TierMuted)
	}
	if got := ReturnTier(&pos); got != TierStrong {
		t.Errorf("ReturnTier(+) = %v, want %v", got, TierStrong)
	}
	if got := ReturnTier(&neg); got != TierDanger {
		t.Errorf("ReturnTier(-) = %v, want %v", got, TierDanger)
	}
	if got := ReturnTier(&zero); got != TierNeutral {
		t.Errorf("ReturnTier(0) = %v, want %v", got, TierNeutral)
	}
}

func TestRankTierAndEmphasis(t *testing.T) {
	if RankTier(1) != TierStrong || RankTier(10) != TierStrong {
		t.Error("ranks 1..10 should be strong")
	}
	if RankTier(11) != TierCaution || RankTier(20) != TierCaution {
		t.Error("ranks 11..20 should be caution")
	}
	if RankTier(21) != TierMuted {
		t.Error("rank 21 should be muted")
	}

	if !RowEmphasis(0) || !RowEmphasis(19) {
		t.Error("first 20 rows should be emphasized")
	}
	if RowEmphasis(20) || RowEmphasis(-1) {
		t.Error("rows beyond 20 should not be emphasized")
	}
}

func TestActionTier(t *testing.T) {
	if got := ActionTier(contracts.ActionEnter); got != TierStrong {
		t.Errorf("ActionTier(enter) = %v", got)
	}
	if got := ActionTier(contracts.ActionHold); got != TierGood {
		t.Errorf("ActionTier(hold) = %v", got)
	}
	if got := ActionTier(contracts.ActionExit); got != TierDanger {
		t.Errorf("ActionTier(exit) = %v", got)
	}
}

func TestWeatherFor(t *testing.T) {
	tests := []struct {
		change float64
		want   string
	}{
		{25, "Hot"},
		{20, "Warm"},
		{5.5, "Warm"},
		{5, "Mild"},
		{1, "Flat"},
		{0, "Flat"},
		{-1, "Cold"},
		{-30, "Cold"},
	}

	for _, tt := range tests {
		if got := WeatherFor(tt.change).Label; got != tt.want {
			t.Errorf("WeatherFor(%v) = %v, want %v", tt.change, got, tt.want)
		}
	}
}

func TestTrendIcons_PastToPresent(t *testing.T) {
	// seg1 = 최근, seg4 = 가장 오래된 구간
	got := TrendIcons(25, 0, 0, -5)
	want := WeatherCold.Icon + WeatherFlat.Icon + WeatherFlat.Icon + WeatherHot.Icon
	if got != want {
		t.Errorf("TrendIcons() = %q, want %q", got, want)
	}
}

func TestTrendTooltip(t *testing.T) {
	got := TrendTooltip(12, 0, -3, 1.5)
	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Fatalf("TrendTooltip() lines = %d, want 4", len(lines))
	}
	if lines[0] != "S1: +12.0% (Warm)" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[2] != "S3: -3.0% (Cold)" {
		t.Errorf("line 2 = %q", lines[2])
	}
}

func TestVIXBand(t *testing.T) {
	tests := []struct {
		pct  float64
		key  string
		tier Tier
	}{
		{-5, "complacent", TierCaution},
		{9.9, "complacent", TierCaution},
		{10, "normal", TierStrong},
		{66.9, "normal", TierStrong},
		{67, "alert", TierCaution},
		{85, "elevated", TierWarning},
		{90, "crisis", TierDanger},
		{150, "crisis", TierDanger},
	}

	for _, tt := range tests {
		got := VIXBand(tt.pct)
		if got.Key != tt.key || got.Tier != tt.tier {
			t.Errorf("VIXBand(%v) = %+v, want key %v tier %v", tt.pct, got, tt.key, tt.tier)
		}
	}
}

func TestSignals(t *testing.T) {
	if got := Signals(true, true).Key; got != "stable" {
		t.Errorf("Signals(true, true) = %v", got)
	}
	if got := Signals(true, false).Key; got != "mixed" {
		t.Errorf("Signals(true, false) = %v", got)
	}
	if got := Signals(false, false).Key; got != "danger" {
		t.Errorf("Signals(false, false) = %v", got)
	}
	if got := SignalsOf(nil).Key; got != "stable" {
		t.Errorf("SignalsOf(nil) = %v", got)
	}
}

func TestSeasonFor(t *testing.T) {
	for q, key := range map[string]string{"Q1": "spring", "Q2": "summer", "q3": "autumn", "Q4": "winter", "": "unknown"} {
		if got := SeasonFor(q).Key; got != key {
			t.Errorf("SeasonFor(%q) = %v, want %v", q, got, key)
		}
	}
}

func TestPortfolioMode(t *testing.T) {
	if _, ok := PortfolioMode("normal"); ok {
		t.Error("normal mode should have no badge")
	}
	b, ok := PortfolioMode("stop")
	if !ok || b.Label != "매수중단" || b.Tier != TierDanger {
		t.Errorf("PortfolioMode(stop) = %+v, %v", b, ok)
	}
	if b, _ := PortfolioMode("reduced"); b.Label != "Top 3" {
		t.Errorf("PortfolioMode(reduced) = %+v", b)
	}
}

func TestFinalActionTier(t *testing.T) {
	if got := FinalActionTier("적극 투자"); got != TierStrong {
		t.Errorf("FinalActionTier() = %v", got)
	}
	if got := FinalActionTier("비중 줄이기"); got != TierDanger {
		t.Errorf("FinalActionTier() = %v", got)
	}
	if got := FinalActionTier("관망"); got != TierCaution {
		t.Errorf("FinalActionTier() = %v", got)
	}
}

func TestIndustryKR(t *testing.T) {
	if got := IndustryKR("Semiconductors"); got != "반도체" {
		t.Errorf("IndustryKR() = %v", got)
	}
	if got := IndustryKR("Space Mining"); got != "Space Mining" {
		t.Errorf("IndustryKR() unmapped = %v", got)
	}
	if got := IndustryKR(""); got != "" {
		t.Errorf("IndustryKR(\"\") = %v", got)
	}
}
