package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/wonny/epsdash/internal/source"
	"github.com/wonny/epsdash/pkg/logger"
)

// RawHandler serves the source's records unchanged, in the shape of the screening backend
type RawHandler struct {
	src    source.Source
	logger *logger.Logger
}

// NewRawHandler creates a new raw passthrough handler
func NewRawHandler(src source.Source, log *logger.Logger) *RawHandler {
	return &RawHandler{
		src:    src,
		logger: log,
	}
}

// GetDates GET /api/raw/dates
func (h *RawHandler) GetDates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.src.Dates(r.Context())
	h.respond(w, dates, err)
}

// GetScreening GET /api/raw/screening/{date}
func (h *RawHandler) GetScreening(w http.ResponseWriter, r *http.Request) {
	h.dated(w, r, func(ctx context.Context, date string) (interface{}, error) {
		return h.src.Screening(ctx, date)
	})
}

// GetStats GET /api/raw/stats/{date}
func (h *RawHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	h.dated(w, r, func(ctx context.Context, date string) (interface{}, error) {
		return h.src.Stats(ctx, date)
	})
}

// GetPortfolio GET /api/raw/portfolio/{date}
func (h *RawHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	h.dated(w, r, func(ctx context.Context, date string) (interface{}, error) {
		return h.src.Portfolio(ctx, date)
	})
}

// GetExited GET /api/raw/exited/{date}
func (h *RawHandler) GetExited(w http.ResponseWriter, r *http.Request) {
	h.dated(w, r, func(ctx context.Context, date string) (interface{}, error) {
		return h.src.Exited(ctx, date)
	})
}

// GetPortfolioHistory GET /api/raw/portfolio/history
func (h *RawHandler) GetPortfolioHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.src.PortfolioHistory(r.Context())
	h.respond(w, history, err)
}

// GetTicker GET /api/raw/ticker/{ticker}
func (h *RawHandler) GetTicker(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(mux.Vars(r)["ticker"])
	if !tickerPattern.MatchString(ticker) {
		respondError(w, http.StatusBadRequest, "invalid ticker")
		return
	}

	history, err := h.src.TickerHistory(r.Context(), ticker)
	h.respond(w, history, err)
}

func (h *RawHandler) dated(w http.ResponseWriter, r *http.Request, fetch func(context.Context, string) (interface{}, error)) {
	date := mux.Vars(r)["date"]
	if !validDate(date) {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	data, err := fetch(r.Context(), date)
	h.respond(w, data, err)
}

func (h *RawHandler) respond(w http.ResponseWriter, data interface{}, err error) {
	if err != nil {
		respondLoadError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, data)
}
