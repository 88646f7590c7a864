package handlers

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gorilla/mux"

	"github.com/wonny/epsdash/internal/dashboard"
	"github.com/wonny/epsdash/pkg/logger"
)

// 미국 티커: 영문/숫자, 클래스 구분자 '.' 또는 '-'
var tickerPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9.\-]{0,9}$`)

// TickerHandler handles the ticker detail endpoint
type TickerHandler struct {
	loader *dashboard.Loader
	logger *logger.Logger
}

// NewTickerHandler creates a new ticker handler
func NewTickerHandler(loader *dashboard.Loader, log *logger.Logger) *TickerHandler {
	return &TickerHandler{
		loader: loader,
		logger: log,
	}
}

// GetTicker returns the screening history of one ticker
// GET /api/ticker/{ticker}
func (h *TickerHandler) GetTicker(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(mux.Vars(r)["ticker"])
	if !tickerPattern.MatchString(ticker) {
		respondError(w, http.StatusBadRequest, "invalid ticker")
		return
	}

	detail, err := h.loader.Ticker(r.Context(), ticker)
	if err != nil {
		respondLoadError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, detail)
}
