package handlers

import (
	"net/http"

	"github.com/wonny/epsdash/internal/dashboard"
	"github.com/wonny/epsdash/internal/view"
	"github.com/wonny/epsdash/pkg/logger"
)

// PortfolioHandler handles the model portfolio endpoints
type PortfolioHandler struct {
	loader *dashboard.Loader
	logger *logger.Logger
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(loader *dashboard.Loader, log *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		loader: loader,
		logger: log,
	}
}

// GetPerformance returns the cumulative return series, trade statistics and holdings
// GET /api/portfolio/performance?action=&dir=
func (h *PortfolioHandler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	filter, err := view.ParseActionFilter(values.Get("action"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// 거래 내역 기본 정렬: 최신순
	dir, err := view.ParseDirection(values.Get("dir"), view.Desc)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.loader.Portfolio(r.Context())
	if err != nil {
		respondLoadError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, dashboard.BuildTradesPage(page, filter, dir))
}
