package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/wonny/epsdash/internal/contracts"
	"github.com/wonny/epsdash/pkg/httputil"
	"github.com/wonny/epsdash/pkg/logger"
)

const maxErrorBody = 4 << 10

// REST reads snapshots from the screening REST API
// ⭐ SSOT: 업스트림 API 호출은 여기서만
type REST struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewREST creates a REST source rooted at baseURL (e.g. http://localhost:8000/api)
func NewREST(httpClient *httputil.Client, baseURL string, log *logger.Logger) *REST {
	return &REST{
		httpClient: httpClient,
		logger:     log,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Kind implements Source
func (r *REST) Kind() string {
	return "rest"
}

// Dates implements Source
func (r *REST) Dates(ctx context.Context) ([]string, error) {
	dates := []string{}
	if err := r.getJSON(ctx, "/dates", &dates); err != nil {
		return nil, fmt.Errorf("fetch dates: %w", err)
	}
	return dates, nil
}

// Screening implements Source
func (r *REST) Screening(ctx context.Context, date string) ([]contracts.Candidate, error) {
	candidates := []contracts.Candidate{}
	if err := r.getJSON(ctx, "/screening/"+url.PathEscape(date), &candidates); err != nil {
		return nil, fmt.Errorf("fetch screening %s: %w", date, err)
	}
	return candidates, nil
}

// Stats implements Source
func (r *REST) Stats(ctx context.Context, date string) (*contracts.ScreeningStats, error) {
	var stats contracts.ScreeningStats
	if err := r.getJSON(ctx, "/stats/"+url.PathEscape(date), &stats); err != nil {
		return nil, fmt.Errorf("fetch stats %s: %w", date, err)
	}
	if stats.Date == "" {
		stats.Date = date
	}
	return &stats, nil
}

// Portfolio implements Source
func (r *REST) Portfolio(ctx context.Context, date string) ([]contracts.PortfolioEntry, error) {
	entries := []contracts.PortfolioEntry{}
	if err := r.getJSON(ctx, "/portfolio/"+url.PathEscape(date), &entries); err != nil {
		return nil, fmt.Errorf("fetch portfolio %s: %w", date, err)
	}
	return entries, nil
}

// PortfolioHistory implements Source.
// The upstream answers either a flat array or an object keyed by date.
func (r *REST) PortfolioHistory(ctx context.Context) ([]contracts.PortfolioEntry, error) {
	var raw json.RawMessage
	if err := r.getJSON(ctx, "/portfolio/history", &raw); err != nil {
		return nil, fmt.Errorf("fetch portfolio history: %w", err)
	}

	entries, err := decodeHistory(raw)
	if err != nil {
		return nil, fmt.Errorf("decode portfolio history: %w", err)
	}
	return entries, nil
}

func decodeHistory(raw json.RawMessage) ([]contracts.PortfolioEntry, error) {
	trimmed := bytes.TrimSpace(raw)
	entries := []contracts.PortfolioEntry{}

	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		return entries, nil
	case trimmed[0] == '[':
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, err
		}
	case trimmed[0] == '{':
		var byDate map[string][]contracts.PortfolioEntry
		if err := json.Unmarshal(trimmed, &byDate); err != nil {
			return nil, err
		}
		for date, rows := range byDate {
			for _, e := range rows {
				if e.Date == "" {
					e.Date = date
				}
				entries = append(entries, e)
			}
		}
	default:
		return nil, fmt.Errorf("unexpected JSON shape")
	}

	OrderHistory(entries)
	return entries, nil
}

// TickerHistory implements Source
func (r *REST) TickerHistory(ctx context.Context, ticker string) ([]contracts.TickerHistory, error) {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	history := []contracts.TickerHistory{}
	if err := r.getJSON(ctx, "/ticker/"+url.PathEscape(t), &history); err != nil {
		return nil, fmt.Errorf("fetch ticker %s: %w", t, err)
	}
	return history, nil
}

// Exited implements Source
func (r *REST) Exited(ctx context.Context, date string) ([]contracts.ExitedStock, error) {
	exited := []contracts.ExitedStock{}
	if err := r.getJSON(ctx, "/exited/"+url.PathEscape(date), &exited); err != nil {
		return nil, fmt.Errorf("fetch exited %s: %w", date, err)
	}
	return exited, nil
}

// MarketStatus implements Source. Upstreams without a market endpoint yield ErrUnavailable.
func (r *REST) MarketStatus(ctx context.Context) (*contracts.MarketStatus, error) {
	var market contracts.MarketStatus
	if err := r.getJSON(ctx, "/market", &market); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("market status: %w", ErrUnavailable)
		}
		return nil, fmt.Errorf("fetch market status: %w", err)
	}
	return &market, nil
}

// getJSON performs a GET and decodes a 2xx JSON body into dest
func (r *REST) getJSON(ctx context.Context, path string, dest interface{}) error {
	fullURL := r.baseURL + path

	resp, err := r.httpClient.Get(ctx, fullURL)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, body),
			URL:        fullURL,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage extracts the upstream error text ("detail", "error" or "message")
func errorMessage(status int, body []byte) string {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range []string{"detail", "error", "message"} {
			if s, ok := payload[key].(string); ok && s != "" {
				return s
			}
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "{") {
		return text
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}
