package format

import "testing"

func f(v float64) *float64 { return &v }

func TestNumber(t *testing.T) {
	tests := []struct {
		name     string
		v        *float64
		decimals int
		want     string
	}{
		{"nil", nil, 2, "-"},
		{"two decimals", f(12.346), 2, "12.35"},
		{"one decimal", f(9.96), 1, "10.0"},
		{"negative", f(-3.2), 1, "-3.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Number(tt.v, tt.decimals); got != tt.want {
				t.Errorf("Number() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInt(t *testing.T) {
	r := 7
	if got := Int(&r); got != "7" {
		t.Errorf("Int() = %q, want %q", got, "7")
	}
	if got := Int(nil); got != "-" {
		t.Errorf("Int(nil) = %q, want %q", got, "-")
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		v    *float64
		want string
	}{
		{nil, "-"},
		{f(12.34), "+12.3%"},
		{f(-5.06), "-5.1%"},
		{f(0), "0.0%"},
	}

	for _, tt := range tests {
		if got := Percent(tt.v); got != tt.want {
			t.Errorf("Percent(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}

	if got := SignedPercent(f(1.5), 2); got != "+1.50%" {
		t.Errorf("SignedPercent() = %q, want %q", got, "+1.50%")
	}
}

func TestMarketCap(t *testing.T) {
	tests := []struct {
		name string
		v    *float64
		want string
	}{
		{"nil", nil, "-"},
		{"trillion", f(1.23e12), "$1.2T"},
		{"billion", f(3.44e9), "$3.4B"},
		{"million", f(120.4e6), "$120M"},
		{"small", f(523456), "$523,456.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MarketCap(tt.v); got != tt.want {
				t.Errorf("MarketCap() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrice(t *testing.T) {
	if got := Price(12.34); got != "$12.34" {
		t.Errorf("Price() = %q, want %q", got, "$12.34")
	}
	if got := Price(1234.5); got != "$1,234.50" {
		t.Errorf("Price() = %q, want %q", got, "$1,234.50")
	}
	if got := PriceOf(nil); got != "-" {
		t.Errorf("PriceOf(nil) = %q, want %q", got, "-")
	}
}

func TestWeight(t *testing.T) {
	if got := Weight(0.2); got != "20%" {
		t.Errorf("Weight() = %q, want %q", got, "20%")
	}
	if got := Weight(0.25); got != "25%" {
		t.Errorf("Weight() = %q, want %q", got, "25%")
	}
}

func TestDates(t *testing.T) {
	if got := ShortDate("2024-01-05"); got != "1/5" {
		t.Errorf("ShortDate() = %q, want %q", got, "1/5")
	}
	if got := ShortDate("latest"); got != "latest" {
		t.Errorf("ShortDate() = %q, want input unchanged", got)
	}
	if got := DateKR("2024-01-05"); got != "1/5 (금)" {
		t.Errorf("DateKR() = %q, want %q", got, "1/5 (금)")
	}
	if got := DateKR(""); got != "" {
		t.Errorf("DateKR(\"\") = %q, want empty", got)
	}
}

func TestRankHistory(t *testing.T) {
	if got := RankHistory([]int{3, 4, 1}); got != "3 -> 4 -> 1" {
		t.Errorf("RankHistory() = %q, want %q", got, "3 -> 4 -> 1")
	}
	if got := RankHistory(nil); got != "" {
		t.Errorf("RankHistory(nil) = %q, want empty", got)
	}
}
