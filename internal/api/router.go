package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/wonny/epsdash/internal/api/handlers"
	"github.com/wonny/epsdash/internal/dashboard"
	"github.com/wonny/epsdash/internal/view"
	"github.com/wonny/epsdash/pkg/database"
	"github.com/wonny/epsdash/pkg/logger"
)

// Handlers groups the endpoint handlers
type Handlers struct {
	Dashboard *handlers.DashboardHandler
	Portfolio *handlers.PortfolioHandler
	Ticker    *handlers.TickerHandler
	Market    *handlers.MarketHandler
	Raw       *handlers.RawHandler

	// Database is set when reading the screening database directly
	Database DatabaseHealth
}

// DatabaseHealth reports the state of the screening database pool
type DatabaseHealth interface {
	HealthCheck(ctx context.Context) (*database.HealthStatus, error)
}

// NewHandlers wires every handler to one loader
func NewHandlers(loader *dashboard.Loader, memo *view.Memo, snapshotTTL time.Duration, log *logger.Logger) Handlers {
	return Handlers{
		Dashboard: handlers.NewDashboardHandler(loader, memo, snapshotTTL, log),
		Portfolio: handlers.NewPortfolioHandler(loader, log),
		Ticker:    handlers.NewTickerHandler(loader, log),
		Market:    handlers.NewMarketHandler(loader.Source(), log),
		Raw:       handlers.NewRawHandler(loader.Source(), log),
	}
}

// NewRouter creates and configures the HTTP router.
// metrics may be nil to disable /metrics.
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(h Handlers, sourceKind string, metrics *Metrics, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler(sourceKind, h.Database)).Methods("GET")
	if metrics != nil {
		r.Handle("/metrics", metrics.Handler()).Methods("GET")
	}

	api := r.PathPrefix("/api").Subrouter()

	// Dashboard
	api.HandleFunc("/dates", h.Dashboard.GetDates).Methods("GET")
	api.HandleFunc("/dashboard/latest", h.Dashboard.GetLatest).Methods("GET")
	api.HandleFunc("/dashboard/{date}", h.Dashboard.GetDashboard).Methods("GET")
	api.HandleFunc("/trajectory", h.Dashboard.GetTrajectory).Methods("GET")

	// Portfolio / ticker / market
	api.HandleFunc("/portfolio/performance", h.Portfolio.GetPerformance).Methods("GET")
	api.HandleFunc("/ticker/{ticker}", h.Ticker.GetTicker).Methods("GET")
	api.HandleFunc("/market", h.Market.GetMarket).Methods("GET")

	// Raw passthrough (스크리닝 백엔드와 같은 응답 형태)
	raw := api.PathPrefix("/raw").Subrouter()
	raw.HandleFunc("/dates", h.Raw.GetDates).Methods("GET")
	raw.HandleFunc("/screening/{date}", h.Raw.GetScreening).Methods("GET")
	raw.HandleFunc("/stats/{date}", h.Raw.GetStats).Methods("GET")
	raw.HandleFunc("/portfolio/history", h.Raw.GetPortfolioHistory).Methods("GET")
	raw.HandleFunc("/portfolio/{date}", h.Raw.GetPortfolio).Methods("GET")
	raw.HandleFunc("/ticker/{ticker}", h.Raw.GetTicker).Methods("GET")
	raw.HandleFunc("/exited/{date}", h.Raw.GetExited).Methods("GET")

	// Apply middleware
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(log, metrics))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status.
// With a database, an unhealthy pool answers 503.
func healthCheckHandler(sourceKind string, db DatabaseHealth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]interface{}{
			"status":  "ok",
			"service": "epsdash-api",
			"source":  sourceKind,
		}
		code := http.StatusOK

		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
			defer cancel()

			status, err := db.HealthCheck(ctx)
			if err != nil {
				body["status"] = "degraded"
				code = http.StatusServiceUnavailable
			}
			body["database"] = status
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(body)
	}
}

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestID returns the request id set by the middleware
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestIDMiddleware adds a short unique id to each request
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()[:8]
		}
		w.Header().Set("X-Request-ID", requestID)
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusRecorder captures the response status
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs HTTP requests and records their metrics
func loggingMiddleware(log *logger.Logger, metrics *Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			// Call next handler
			next.ServeHTTP(rec, r)

			route := r.URL.Path
			if cur := mux.CurrentRoute(r); cur != nil {
				if tpl, err := cur.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			elapsed := time.Since(start)
			if metrics != nil {
				metrics.Observe(route, r.Method, rec.status, elapsed.Seconds())
			}

			log.WithFields(map[string]interface{}{
				"request_id": RequestID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     rec.status,
				"duration":   elapsed,
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error":      err,
						"path":       r.URL.Path,
						"request_id": RequestID(r.Context()),
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
