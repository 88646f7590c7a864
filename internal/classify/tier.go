// Package classify maps screening figures to display tiers and labels.
// Every function is pure and total: any input yields a tier.
package classify

import (
	"github.com/wonny/epsdash/internal/contracts"
)

// Tier is a categorical visual bucket, strongest first
type Tier string

const (
	TierStrong  Tier = "strong"  // 진한 초록
	TierGood    Tier = "good"    // 초록 / 파랑
	TierNeutral Tier = "neutral" // 연한 초록
	TierCaution Tier = "caution" // 호박색
	TierWarning Tier = "warning" // 주황
	TierDanger  Tier = "danger"  // 빨강
	TierMuted   Tier = "muted"   // 회색
)

// EmphasizedRows is how many leading rows of a candidate table are highlighted
const EmphasizedRows = 20

// GapTier classifies adj_gap. Negative gap means undervalued.
func GapTier(gap float64) Tier {
	switch {
	case gap <= -10:
		return TierStrong
	case gap <= -5:
		return TierGood
	case gap <= 0:
		return TierNeutral
	case gap <= 5:
		return TierCaution
	default:
		return TierDanger
	}
}

// ScoreTier classifies the table score column
func ScoreTier(score float64) Tier {
	switch {
	case score >= 25:
		return TierStrong
	case score >= 15:
		return TierGood
	case score >= 10:
		return TierCaution
	default:
		return TierMuted
	}
}

// DetailScoreTier classifies adj_score on the ticker detail page
func DetailScoreTier(score float64) Tier {
	switch {
	case score >= 15:
		return TierStrong
	case score >= 9:
		return TierCaution
	default:
		return TierDanger
	}
}

// ReturnTier classifies a return or unrealized percentage
func ReturnTier(pct *float64) Tier {
	switch {
	case pct == nil:
		return TierMuted
	case *pct > 0:
		return TierStrong
	case *pct < 0:
		return TierDanger
	default:
		return TierNeutral
	}
}

// RankTier classifies a part2 rank
func RankTier(rank int) Tier {
	switch {
	case rank <= 10:
		return TierStrong
	case rank <= 20:
		return TierCaution
	default:
		return TierMuted
	}
}

// ExitTier is the tier of an exit marker
func ExitTier() Tier {
	return TierDanger
}

// RowEmphasis reports whether the row at index (0-based) is highlighted
func RowEmphasis(index int) bool {
	return index >= 0 && index < EmphasizedRows
}

// ActionTier classifies a portfolio action badge
func ActionTier(a contracts.Action) Tier {
	switch a {
	case contracts.ActionEnter:
		return TierStrong
	case contracts.ActionHold:
		return TierGood
	case contracts.ActionExit:
		return TierDanger
	default:
		return TierMuted
	}
}

// WinRateTier classifies a win rate in percent
func WinRateTier(winRate float64) Tier {
	if winRate >= 50 {
		return TierStrong
	}
	return TierDanger
}
