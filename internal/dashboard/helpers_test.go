package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/wonny/epsdash/internal/contracts"
	"github.com/wonny/epsdash/internal/portfolio"
	"github.com/wonny/epsdash/internal/source"
	"github.com/wonny/epsdash/pkg/logger"
)

var errBoom = errors.New("boom")

func floatp(v float64) *float64 { return &v }
func intp(v int) *int           { return &v }

// memSource serves fixed data; fail makes one part fail and gates block a date until released
type memSource struct {
	mu      sync.Mutex
	dates   []string
	history []contracts.PortfolioEntry
	ticker  []contracts.TickerHistory
	market  *contracts.MarketStatus
	fail    string
	gates   map[string]chan struct{}
}

func newMemSource() *memSource {
	return &memSource{
		dates: []string{"2024-01-05", "2024-01-04"},
		history: []contracts.PortfolioEntry{
			{Date: "2024-01-05", Ticker: "NVDA", Action: contracts.ActionHold, Price: 110, Weight: 0.2, EntryPrice: 100},
			{Date: "2024-01-05", Ticker: "AMD", Action: contracts.ActionExit, Price: 95, Weight: 0.2, EntryPrice: 100, ReturnPct: floatp(-5)},
			{Date: "2024-01-04", Ticker: "MU", Action: contracts.ActionExit, Price: 110, Weight: 0.2, EntryPrice: 100, ReturnPct: floatp(10)},
			{Date: "2024-01-04", Ticker: "NVDA", Action: contracts.ActionEnter, Price: 100, Weight: 0.2, EntryPrice: 100},
		},
		gates: map[string]chan struct{}{},
	}
}

func (m *memSource) gate(date string) chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan struct{})
	m.gates[date] = ch
	return ch
}

func (m *memSource) wait(ctx context.Context, part, date string) error {
	m.mu.Lock()
	ch := m.gates[date]
	fail := m.fail
	m.mu.Unlock()

	if ch != nil && part == PartScreening {
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if fail == part {
		return fmt.Errorf("%s: %w", part, errBoom)
	}
	return nil
}

func (m *memSource) Kind() string { return "mem" }

func (m *memSource) Dates(ctx context.Context) ([]string, error) {
	if err := m.wait(ctx, PartDates, ""); err != nil {
		return nil, err
	}
	return m.dates, nil
}

func (m *memSource) Screening(ctx context.Context, date string) ([]contracts.Candidate, error) {
	if err := m.wait(ctx, PartScreening, date); err != nil {
		return nil, err
	}
	return []contracts.Candidate{
		{Ticker: "NVDA", Part2Rank: 1, Status: contracts.StatusVerified, RankHistory: "3→2→1"},
		{Ticker: "AVGO", Part2Rank: 2, Status: contracts.StatusNew},
	}, nil
}

func (m *memSource) Stats(ctx context.Context, date string) (*contracts.ScreeningStats, error) {
	if err := m.wait(ctx, PartStats, date); err != nil {
		return nil, err
	}
	return &contracts.ScreeningStats{
		Date:                 date,
		TotalScreened:        900,
		IndustryDistribution: map[string]int{"반도체": 2, "인프라SW": 1},
	}, nil
}

func (m *memSource) Portfolio(ctx context.Context, date string) ([]contracts.PortfolioEntry, error) {
	if err := m.wait(ctx, PartPortfolio, date); err != nil {
		return nil, err
	}
	_, latest := portfolio.Latest(m.history)
	out := make([]contracts.PortfolioEntry, 0)
	for _, e := range m.history {
		if e.Date == date {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return latest, nil
	}
	return out, nil
}

func (m *memSource) PortfolioHistory(ctx context.Context) ([]contracts.PortfolioEntry, error) {
	if err := m.wait(ctx, PartHistory, ""); err != nil {
		return nil, err
	}
	return m.history, nil
}

func (m *memSource) TickerHistory(ctx context.Context, ticker string) ([]contracts.TickerHistory, error) {
	return m.ticker, nil
}

func (m *memSource) Exited(ctx context.Context, date string) ([]contracts.ExitedStock, error) {
	if err := m.wait(ctx, PartExited, date); err != nil {
		return nil, err
	}
	return []contracts.ExitedStock{{Ticker: "MU", PrevRank: 8, RankHistory: "8→10→12→OUT"}}, nil
}

func (m *memSource) MarketStatus(ctx context.Context) (*contracts.MarketStatus, error) {
	if m.market == nil {
		return nil, source.ErrUnavailable
	}
	return m.market, nil
}

func newTestLoader(src source.Source) *Loader {
	return NewLoader(src, portfolio.DefaultOptions(), logger.NewNop())
}
