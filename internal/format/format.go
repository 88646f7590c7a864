// Package format turns raw screening numbers into display strings.
// Missing values always render as "-".
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Missing is the placeholder for absent values
const Missing = "-"

const dateLayout = "2006-01-02"

var weekdaysKR = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// Number formats v with a fixed number of decimals
func Number(v *float64, decimals int) string {
	if v == nil {
		return Missing
	}
	return strconv.FormatFloat(*v, 'f', decimals, 64)
}

// Int formats an optional integer such as a rank
func Int(v *int) string {
	if v == nil {
		return Missing
	}
	return strconv.Itoa(*v)
}

// Percent formats a percentage with one decimal, "+" only when positive
func Percent(v *float64) string {
	return SignedPercent(v, 1)
}

// SignedPercent formats a percentage with the given decimals, "+" only when positive
func SignedPercent(v *float64, decimals int) string {
	if v == nil {
		return Missing
	}
	sign := ""
	if *v > 0 {
		sign = "+"
	}
	return sign + strconv.FormatFloat(*v, 'f', decimals, 64) + "%"
}

// MarketCap abbreviates a dollar market capitalization (T/B/M)
func MarketCap(v *float64) string {
	if v == nil {
		return Missing
	}

	switch c := *v; {
	case c >= 1e12:
		return fmt.Sprintf("$%.1fT", c/1e12)
	case c >= 1e9:
		return fmt.Sprintf("$%.1fB", c/1e9)
	case c >= 1e6:
		return fmt.Sprintf("$%.0fM", c/1e6)
	default:
		return Money(c)
	}
}

// Money renders a USD amount with thousands separators, e.g. "$523,456.00"
func Money(v float64) string {
	return usd(v).Display()
}

// Price renders a share price, e.g. "$12.34"
func Price(v float64) string {
	return Money(v)
}

// PriceOf renders an optional price
func PriceOf(v *float64) string {
	if v == nil {
		return Missing
	}
	return Price(*v)
}

// usd converts dollars to a go-money amount in cents
func usd(v float64) *money.Money {
	cents := decimal.NewFromFloat(v).Shift(2).Round(0).IntPart()
	return money.New(cents, money.USD)
}

// Weight renders a portfolio weight (0.2 → "20%")
func Weight(w float64) string {
	return strconv.FormatFloat(w*100, 'f', 0, 64) + "%"
}

// ShortDate renders "2024-01-05" as "1/5". Unparseable input is returned unchanged.
func ShortDate(s string) string {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%d/%d", int(d.Month()), d.Day())
}

// DateKR renders "2024-01-05" as "1/5 (금)"
func DateKR(s string) string {
	if s == "" {
		return ""
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%d/%d (%s)", int(d.Month()), d.Day(), weekdaysKR[d.Weekday()])
}

// RankHistory joins ranks oldest first, e.g. "3 -> 4 -> 1"
func RankHistory(ranks []int) string {
	parts := make([]string, len(ranks))
	for i, r := range ranks {
		parts[i] = strconv.Itoa(r)
	}
	return strings.Join(parts, " -> ")
}
