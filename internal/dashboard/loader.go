// Package dashboard loads per-date dashboard snapshots and derives the page views.
package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wonny/epsdash/internal/contracts"
	"github.com/wonny/epsdash/internal/portfolio"
	"github.com/wonny/epsdash/internal/source"
	"github.com/wonny/epsdash/pkg/logger"
)

// Snapshot parts
const (
	PartScreening = "screening"
	PartStats     = "stats"
	PartPortfolio = "portfolio"
	PartExited    = "exited"
	PartDates     = "dates"
	PartHistory   = "history"
)

// LoadError is the single error of a failed load.
// Part names the first fetch that failed.
type LoadError struct {
	Date string
	Part string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Date == "" {
		return fmt.Sprintf("load %s: %v", e.Part, e.Err)
	}
	return fmt.Sprintf("load %s %s: %v", e.Part, e.Date, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Snapshot is everything the dashboard shows for one date.
// It is either complete or not returned at all.
type Snapshot struct {
	Date       string                     `json:"date"`
	Candidates []contracts.Candidate      `json:"candidates"`
	Stats      *contracts.ScreeningStats  `json:"stats"`
	Portfolio  []contracts.PortfolioEntry `json:"portfolio"`
	Exited     []contracts.ExitedStock    `json:"exited"`
	LoadedAt   time.Time                  `json:"loaded_at"`
}

// ID identifies this snapshot instance for view memoization
func (s *Snapshot) ID() string {
	return s.Date + "@" + strconv.FormatInt(s.LoadedAt.UnixNano(), 10)
}

// Loader fetches snapshots from a source
// ⭐ SSOT: 대시보드 데이터 로딩은 여기서만
type Loader struct {
	src    source.Source
	opts   portfolio.Options
	logger *logger.Logger
	now    func() time.Time
}

// NewLoader creates a new loader
func NewLoader(src source.Source, opts portfolio.Options, log *logger.Logger) *Loader {
	return &Loader{
		src:    src,
		opts:   opts,
		logger: log,
		now:    time.Now,
	}
}

// Source returns the underlying source
func (l *Loader) Source() source.Source {
	return l.src
}

// Options returns the portfolio options
func (l *Loader) Options() portfolio.Options {
	return l.opts
}

// Dates returns the available screening dates
func (l *Loader) Dates(ctx context.Context) ([]string, error) {
	dates, err := l.src.Dates(ctx)
	if err != nil {
		return nil, &LoadError{Part: PartDates, Err: err}
	}
	return dates, nil
}

// DefaultDate returns the latest available date
func (l *Loader) DefaultDate(ctx context.Context) (string, error) {
	dates, err := l.Dates(ctx)
	if err != nil {
		return "", err
	}

	latest := source.Latest(dates)
	if latest == "" {
		return "", &LoadError{Part: PartDates, Err: fmt.Errorf("no screening dates: %w", source.ErrNotFound)}
	}
	return latest, nil
}

// Load fetches screening, stats, portfolio and exited stocks of date concurrently.
// Any failure cancels the other fetches and no snapshot is returned.
func (l *Loader) Load(ctx context.Context, date string) (*Snapshot, error) {
	start := l.now()
	snap := &Snapshot{Date: date}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		candidates, err := l.src.Screening(gctx, date)
		if err != nil {
			return &LoadError{Date: date, Part: PartScreening, Err: err}
		}
		snap.Candidates = candidates
		return nil
	})

	g.Go(func() error {
		stats, err := l.src.Stats(gctx, date)
		if err != nil {
			return &LoadError{Date: date, Part: PartStats, Err: err}
		}
		snap.Stats = stats
		return nil
	})

	g.Go(func() error {
		entries, err := l.src.Portfolio(gctx, date)
		if err != nil {
			return &LoadError{Date: date, Part: PartPortfolio, Err: err}
		}
		snap.Portfolio = entries
		return nil
	})

	g.Go(func() error {
		exited, err := l.src.Exited(gctx, date)
		if err != nil {
			return &LoadError{Date: date, Part: PartExited, Err: err}
		}
		snap.Exited = exited
		return nil
	})

	if err := g.Wait(); err != nil {
		l.logger.WithError(err).WithField("date", date).Warn("Dashboard load failed")
		return nil, err
	}

	snap.LoadedAt = l.now()
	l.logger.WithFields(map[string]interface{}{
		"date":       date,
		"candidates": len(snap.Candidates),
		"exited":     len(snap.Exited),
		"elapsed_ms": snap.LoadedAt.Sub(start).Milliseconds(),
	}).Debug("Dashboard loaded")

	return snap, nil
}

// PortfolioPage is the model portfolio performance page
type PortfolioPage struct {
	Date     string                     `json:"date"`
	History  []contracts.PortfolioEntry `json:"history"`
	Result   portfolio.Result           `json:"result"`
	Holdings portfolio.HoldingsView     `json:"holdings"`
}

// Portfolio loads the trade history and dates in parallel, then the latest date's holdings
func (l *Loader) Portfolio(ctx context.Context) (*PortfolioPage, error) {
	var (
		history []contracts.PortfolioEntry
		dates   []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		h, err := l.src.PortfolioHistory(gctx)
		if err != nil {
			return &LoadError{Part: PartHistory, Err: err}
		}
		history = h
		return nil
	})
	g.Go(func() error {
		d, err := l.src.Dates(gctx)
		if err != nil {
			return &LoadError{Part: PartDates, Err: err}
		}
		dates = d
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	page := &PortfolioPage{
		History: history,
		Result:  portfolio.Aggregate(history, l.opts),
	}

	// 날짜 목록이 비어 있으면 히스토리의 마지막 날짜로 대체
	latest := source.Latest(dates)
	var current []contracts.PortfolioEntry
	if latest != "" {
		entries, err := l.src.Portfolio(ctx, latest)
		if err != nil {
			return nil, &LoadError{Date: latest, Part: PartPortfolio, Err: err}
		}
		current = entries
	} else {
		latest, current = portfolio.Latest(history)
	}

	page.Date = latest
	page.Holdings = portfolio.Holdings(current, l.opts)
	if page.Holdings.Date == "" {
		page.Holdings.Date = latest
	}
	return page, nil
}
