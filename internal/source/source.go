// Package source provides read access to screening snapshots.
// ⭐ SSOT: 대시보드 데이터는 Source 인터페이스를 통해서만 읽음
package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/wonny/epsdash/internal/contracts"
)

var (
	// ErrNotFound means the requested date or ticker does not exist upstream
	ErrNotFound = errors.New("not found")

	// ErrUnavailable means this source does not offer the requested data
	ErrUnavailable = errors.New("not available from this source")
)

// Source is a read-only collaborator that fetches immutable screening snapshots
type Source interface {
	// Kind names the backing source for health output
	Kind() string

	Dates(ctx context.Context) ([]string, error)
	Screening(ctx context.Context, date string) ([]contracts.Candidate, error)
	Stats(ctx context.Context, date string) (*contracts.ScreeningStats, error)
	Portfolio(ctx context.Context, date string) ([]contracts.PortfolioEntry, error)
	PortfolioHistory(ctx context.Context) ([]contracts.PortfolioEntry, error)
	TickerHistory(ctx context.Context, ticker string) ([]contracts.TickerHistory, error)
	Exited(ctx context.Context, date string) ([]contracts.ExitedStock, error)
	MarketStatus(ctx context.Context) (*contracts.MarketStatus, error)
}

// StatusError is a non-success upstream reply.
// Message is shown to users verbatim.
type StatusError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s returned %d: %s", e.URL, e.StatusCode, e.Message)
}

// Is makes a 404 reply match ErrNotFound
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// OrderHistory sorts portfolio history newest date first, then ticker ascending
func OrderHistory(entries []contracts.PortfolioEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].Ticker < entries[j].Ticker
	})
}
