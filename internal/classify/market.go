package classify

import (
	"strings"

	"github.com/wonny/epsdash/internal/contracts"
)

// Band is a labeled tier
type Band struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Tier  Tier   `json:"tier"`
}

// VIXBand classifies the VIX percentile (clamped to 0..100)
func VIXBand(percentile float64) Band {
	p := ClampPercentile(percentile)
	switch {
	case p < 10:
		return Band{Key: "complacent", Label: "안일", Tier: TierCaution}
	case p < 67:
		return Band{Key: "normal", Label: "정상", Tier: TierStrong}
	case p < 80:
		return Band{Key: "alert", Label: "경계", Tier: TierCaution}
	case p < 90:
		return Band{Key: "elevated", Label: "상승경보", Tier: TierWarning}
	default:
		return Band{Key: "crisis", Label: "위기", Tier: TierDanger}
	}
}

// ClampPercentile limits p to [0, 100]
func ClampPercentile(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Signals summarizes the HY and VIX health dots
func Signals(hyOK, vixOK bool) Band {
	switch {
	case hyOK && vixOK:
		return Band{Key: "stable", Label: "2/2 안정", Tier: TierStrong}
	case !hyOK && !vixOK:
		return Band{Key: "danger", Label: "위험 신호", Tier: TierDanger}
	default:
		return Band{Key: "mixed", Label: "엇갈린 신호", Tier: TierCaution}
	}
}

// SignalsOf applies Signals to a market snapshot; missing dots count as ok
func SignalsOf(dots *contracts.SignalDots) Band {
	if dots == nil {
		return Signals(true, true)
	}
	return Signals(dots.HYOK, dots.VIXOK)
}

// Season describes the credit-cycle quadrant
type Season struct {
	Key  string `json:"key"`
	Icon string `json:"icon"`
	Name string `json:"name"`
}

// SeasonFor maps a HY quadrant (Q1..Q4) to its season
func SeasonFor(quadrant string) Season {
	switch strings.ToUpper(quadrant) {
	case "Q1":
		return Season{Key: "spring", Icon: "\U0001f338", Name: "봄 (회복국면)"}
	case "Q2":
		return Season{Key: "summer", Icon: "\u2600\ufe0f", Name: "여름 (확장국면)"}
	case "Q3":
		return Season{Key: "autumn", Icon: "\U0001f342", Name: "가을 (둔화국면)"}
	case "Q4":
		return Season{Key: "winter", Icon: "\u2744\ufe0f", Name: "겨울 (수축국면)"}
	default:
		return Season{Key: "unknown", Icon: "\U0001f4c8", Name: "분석 중"}
	}
}

// PortfolioMode returns the badge for a non-normal portfolio mode.
// ok is false for "normal" and unknown modes (no badge).
func PortfolioMode(mode string) (Band, bool) {
	switch mode {
	case "stop":
		return Band{Key: mode, Label: "매수중단", Tier: TierDanger}, true
	case "reduced":
		return Band{Key: mode, Label: "Top 3", Tier: TierWarning}, true
	case "caution":
		return Band{Key: mode, Label: "주의", Tier: TierCaution}, true
	default:
		return Band{}, false
	}
}

// FinalActionTier classifies the free-text final action by keyword
func FinalActionTier(action string) Tier {
	lower := strings.ToLower(action)
	for _, kw := range []string{"적극", "매수", "투자"} {
		if strings.Contains(lower, kw) {
			return TierStrong
		}
	}
	for _, kw := range []string{"중단", "줄이기", "위험", "매도"} {
		if strings.Contains(lower, kw) {
			return TierDanger
		}
	}
	return TierCaution
}
