package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/epsdash/internal/dashboard"
	"github.com/wonny/epsdash/internal/source"
	"github.com/wonny/epsdash/internal/view"
	"github.com/wonny/epsdash/pkg/logger"
)

// DashboardHandler handles the per-date dashboard endpoints
// ⭐ SSOT: 대시보드 API 핸들러는 이 구조체에서만
type DashboardHandler struct {
	loader *dashboard.Loader
	memo   *view.Memo
	cache  *snapshotCache
	logger *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler.
// Loaded snapshots are reused for ttl so re-sorting the same date reuses the derived view.
func NewDashboardHandler(loader *dashboard.Loader, memo *view.Memo, ttl time.Duration, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		loader: loader,
		memo:   memo,
		cache:  newSnapshotCache(ttl),
		logger: log,
	}
}

// GetDates returns the available screening dates
// GET /api/dates
func (h *DashboardHandler) GetDates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.loader.Dates(r.Context())
	if err != nil {
		respondLoadError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"dates":  dates,
		"latest": source.Latest(dates),
	})
}

// GetDashboard returns the dashboard of one date
// GET /api/dashboard/{date}?sort=&dir=&status=&grouped=
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	if !validDate(date) {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	h.serve(w, r, date)
}

// GetLatest returns the dashboard of the latest date
// GET /api/dashboard/latest
func (h *DashboardHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	date, err := h.loader.DefaultDate(r.Context())
	if err != nil {
		respondLoadError(w, h.logger, err)
		return
	}
	h.serve(w, r, date)
}

func (h *DashboardHandler) serve(w http.ResponseWriter, r *http.Request, date string) {
	q, err := parseViewQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := h.snapshot(r.Context(), date)
	if err != nil {
		respondLoadError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, dashboard.BuildPage(snap, q, h.memo, h.loader.Options()))
}

func (h *DashboardHandler) snapshot(ctx context.Context, date string) (*dashboard.Snapshot, error) {
	if snap := h.cache.get(date); snap != nil {
		return snap, nil
	}

	snap, err := h.loader.Load(ctx, date)
	if err != nil {
		return nil, err
	}
	h.cache.put(snap)
	return snap, nil
}

// GetTrajectory parses a raw rank history
// GET /api/trajectory?h=8→10→12→OUT
func (h *DashboardHandler) GetTrajectory(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("h")
	if raw == "" {
		respondError(w, http.StatusBadRequest, "h is required")
		return
	}
	respondJSON(w, http.StatusOK, view.BuildTrajectory(raw))
}

type cachedSnapshot struct {
	snap    *dashboard.Snapshot
	expires time.Time
}

// snapshotCache keeps loaded snapshots by date for a short time
type snapshotCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cachedSnapshot
	now     func() time.Time
}

func newSnapshotCache(ttl time.Duration) *snapshotCache {
	return &snapshotCache{
		ttl:     ttl,
		entries: make(map[string]cachedSnapshot),
		now:     time.Now,
	}
}

func (c *snapshotCache) get(date string) *dashboard.Snapshot {
	if c.ttl <= 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[date]
	if !ok {
		return nil
	}
	if c.now().After(e.expires) {
		delete(c.entries, date)
		return nil
	}
	return e.snap
}

func (c *snapshotCache) put(snap *dashboard.Snapshot) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for date, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, date)
		}
	}
	c.entries[snap.Date] = cachedSnapshot{snap: snap, expires: now.Add(c.ttl)}
}
