package view

import (
	"strconv"
	"strings"

	"github.com/wonny/epsdash/internal/classify"
)

const (
	trajectorySep      = "→"
	trajectorySepASCII = "->"

	exitWeight    = 2.0
	unknownWeight = 4.0
	minWeight     = 4.0
	maxWeight     = 16.0
)

// TrajectoryPoint is one day of a rank trajectory.
// Rank is nil for exit markers and unparseable tokens.
type TrajectoryPoint struct {
	Rank *int `json:"rank"`
	Exit bool `json:"exit"`
}

// TrajectoryBar is a point plus its derived display magnitude
type TrajectoryBar struct {
	TrajectoryPoint
	Weight float64       `json:"weight"`
	Tier   classify.Tier `json:"tier"`
}

// Trajectory is a parsed rank history string
type Trajectory struct {
	Raw    string            `json:"raw"`
	Points []TrajectoryPoint `json:"points"`
	Bars   []TrajectoryBar   `json:"bars"`
}

// ParseTrajectory parses "8→10→12→OUT" oldest first.
// Fewer than two tokens means no trajectory and yields an empty result.
func ParseTrajectory(s string) []TrajectoryPoint {
	s = strings.ReplaceAll(s, trajectorySepASCII, trajectorySep)
	tokens := strings.Split(s, trajectorySep)
	if len(tokens) < 2 {
		return []TrajectoryPoint{}
	}

	points := make([]TrajectoryPoint, 0, len(tokens))
	for _, tok := range tokens {
		points = append(points, parseToken(strings.TrimSpace(tok)))
	}
	return points
}

func parseToken(tok string) TrajectoryPoint {
	if tok == "OUT" || tok == "-" {
		return TrajectoryPoint{Exit: true}
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return TrajectoryPoint{}
	}
	return TrajectoryPoint{Rank: &n}
}

// Weight is the bar height of a point. Lower ranks weigh more; the result is in [2, 16].
func Weight(p TrajectoryPoint) float64 {
	switch {
	case p.Exit:
		return exitWeight
	case p.Rank == nil:
		return unknownWeight
	}

	w := 20 - 0.5*float64(*p.Rank)
	if w < minWeight {
		return minWeight
	}
	if w > maxWeight {
		return maxWeight
	}
	return w
}

// PointTier is the color tier of a point
func PointTier(p TrajectoryPoint) classify.Tier {
	switch {
	case p.Exit:
		return classify.ExitTier()
	case p.Rank == nil:
		return classify.TierMuted
	default:
		return classify.RankTier(*p.Rank)
	}
}

// BuildTrajectory parses s and derives bar weights and tiers
func BuildTrajectory(s string) Trajectory {
	points := ParseTrajectory(s)
	bars := make([]TrajectoryBar, len(points))
	for i, p := range points {
		bars[i] = TrajectoryBar{TrajectoryPoint: p, Weight: Weight(p), Tier: PointTier(p)}
	}
	return Trajectory{Raw: s, Points: points, Bars: bars}
}
