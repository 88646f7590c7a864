package handlers

import (
	"net/http"

	"github.com/wonny/epsdash/internal/dashboard"
	"github.com/wonny/epsdash/internal/source"
	"github.com/wonny/epsdash/pkg/logger"
)

// MarketHandler handles the market status endpoint
type MarketHandler struct {
	src    source.Source
	logger *logger.Logger
}

// NewMarketHandler creates a new market handler
func NewMarketHandler(src source.Source, log *logger.Logger) *MarketHandler {
	return &MarketHandler{
		src:    src,
		logger: log,
	}
}

// GetMarket returns the market status with its classified badges
// GET /api/market
func (h *MarketHandler) GetMarket(w http.ResponseWriter, r *http.Request) {
	status, err := h.src.MarketStatus(r.Context())
	if err != nil {
		respondLoadError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, dashboard.BuildMarketView(status))
}
