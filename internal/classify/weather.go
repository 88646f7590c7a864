package classify

import (
	"fmt"
	"strings"

	"github.com/wonny/epsdash/internal/format"
)

// Weather is the EPS trend icon for one segment
type Weather struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

var (
	WeatherHot  = Weather{Icon: "\U0001f525", Label: "Hot"}
	WeatherWarm = Weather{Icon: "\u2600\ufe0f", Label: "Warm"}
	WeatherMild = Weather{Icon: "\U0001f324\ufe0f", Label: "Mild"}
	WeatherFlat = Weather{Icon: "\u2601\ufe0f", Label: "Flat"}
	WeatherCold = Weather{Icon: "\U0001f327\ufe0f", Label: "Cold"}
)

// WeatherFor classifies a segment change (%) with strict thresholds
func WeatherFor(change float64) Weather {
	switch {
	case change > 20:
		return WeatherHot
	case change > 5:
		return WeatherWarm
	case change > 1:
		return WeatherMild
	case change > -1:
		return WeatherFlat
	default:
		return WeatherCold
	}
}

// TrendIcons renders four segments past to present (seg4 → seg1)
func TrendIcons(seg1, seg2, seg3, seg4 float64) string {
	var b strings.Builder
	for _, s := range []float64{seg4, seg3, seg2, seg1} {
		b.WriteString(WeatherFor(s).Icon)
	}
	return b.String()
}

// TrendTooltip describes each segment, e.g. "S1: +12.0% (Warm)", one per line
func TrendTooltip(seg1, seg2, seg3, seg4 float64) string {
	lines := make([]string, 0, 4)
	for i, s := range []float64{seg1, seg2, seg3, seg4} {
		v := s
		lines = append(lines, fmt.Sprintf("S%d: %s (%s)", i+1, format.Percent(&v), WeatherFor(s).Label))
	}
	return strings.Join(lines, "\n")
}
