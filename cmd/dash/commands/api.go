package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/epsdash/internal/api"
	"github.com/wonny/epsdash/internal/view"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `대시보드 REST API 서버를 시작합니다.

Endpoints:
  GET /health                        - Health check
  GET /metrics                       - Prometheus metrics
  GET /api/dates                     - 스크리닝 날짜 목록
  GET /api/dashboard/latest          - 최신 날짜 대시보드
  GET /api/dashboard/{date}          - 날짜별 대시보드 (?sort=&dir=&status=&grouped=)
  GET /api/portfolio/performance     - 누적 수익률, 거래 통계 (?action=&dir=)
  GET /api/ticker/{ticker}           - 종목 히스토리
  GET /api/market                    - 시장 상태
  GET /api/trajectory?h=             - 순위 궤적 파싱
  GET /api/raw/...                   - 원본 데이터 (스크리닝 백엔드 형태)

Example:
  go run ./cmd/dash api
  go run ./cmd/dash api --port 8090 --source postgres`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본값: PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== EPS Momentum Dashboard API ===")

	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	// Override port if flag is set
	if apiPort != "" {
		d.cfg.Port = apiPort
	}

	// Router
	memo := view.NewMemo()
	handlers := api.NewHandlers(d.loader, memo, d.cfg.Cache.LiveTTL, d.log)
	if d.db != nil {
		handlers.Database = d.db
	}

	var metrics *api.Metrics
	if d.cfg.MetricsEnabled {
		metrics = api.NewMetrics(memo)
	}
	router := api.NewRouter(handlers, d.cached.Kind(), metrics, d.log)

	server := api.New(d.cfg, d.log, router)

	// Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			d.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	d.log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s (source: %s)\n", d.cfg.Port, d.cached.Kind())
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	d.log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	d.log.Info("Server stopped")
	return nil
}
