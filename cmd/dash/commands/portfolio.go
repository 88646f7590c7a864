package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wonny/epsdash/internal/dashboard"
	"github.com/wonny/epsdash/internal/format"
	"github.com/wonny/epsdash/internal/portfolio"
	"github.com/wonny/epsdash/internal/view"
)

// portfolioCmd represents the portfolio command
var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "모델 포트폴리오 성과 조회",
	Long: `전체 매매 이력으로 누적 수익률, 매매 통계, 최신 보유 현황을 출력합니다.

액션 필터: all, enter, hold, exit

Example:
  go run ./cmd/dash portfolio
  go run ./cmd/dash portfolio --action exit --dir asc`,
	RunE: runPortfolio,
}

var (
	portfolioAction string
	portfolioDir    string
)

func init() {
	rootCmd.AddCommand(portfolioCmd)

	portfolioCmd.Flags().StringVar(&portfolioAction, "action", "all", "액션 필터")
	portfolioCmd.Flags().StringVar(&portfolioDir, "dir", "desc", "날짜 정렬 방향 (asc|desc)")
}

func runPortfolio(cmd *cobra.Command, args []string) error {
	filter, err := view.ParseActionFilter(portfolioAction)
	if err != nil {
		return err
	}
	dir, err := view.ParseDirection(portfolioDir, view.Desc)
	if err != nil {
		return err
	}

	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	page, err := d.loader.Portfolio(context.Background())
	if err != nil {
		return fmt.Errorf("load portfolio: %w", err)
	}

	renderTrades(os.Stdout, dashboard.BuildTradesPage(page, filter, dir))
	return nil
}

func renderTrades(w io.Writer, tp dashboard.TradesPage) {
	PrintHeader(w, "Model Portfolio")
	renderStats(w, tp.Result)

	if n := len(tp.Result.Cumulative); n > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "누적 수익률")
		cols := []string{"Date", "Ticker", "Return", "Weight", "Cumulative"}
		widths := []int{5, 6, 8, 6, 10}
		PrintTableHeader(w, cols, widths)
		for _, p := range tp.Result.Cumulative {
			ret, cum := p.ReturnPct, p.Cumulative
			PrintTableRow(w, []string{
				format.ShortDate(p.Date), p.Ticker,
				format.SignedPercent(&ret, 2),
				format.Weight(p.Weight),
				format.SignedPercent(&cum, 2),
			}, widths)
		}
	}

	fmt.Fprintln(w)
	renderHoldings(w, tp.Holdings)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "매매 이력 (%s) · %d\n", tp.Filter, len(tp.Trades))
	cols := []string{"Date", "Ticker", "Action", "Price", "Return"}
	widths := []int{5, 6, 6, 11, 8}
	PrintTableHeader(w, cols, widths)
	for _, t := range tp.Trades {
		PrintTableRow(w, []string{
			format.ShortDate(t.Date), t.Ticker, t.ActionLabel, format.Price(t.Price), t.ReturnLabel,
		}, widths)
	}
}

func renderStats(w io.Writer, r portfolio.Result) {
	total := r.TotalReturn
	PrintKeyValue(w, "Total Return", format.SignedPercent(&total, 2), 12)
	if r.Stats == nil {
		PrintKeyValue(w, "Trades", "0", 12)
		return
	}
	s := r.Stats
	winRate, avgWin, avgLoss := s.WinRate, s.AvgWin, s.AvgLoss
	PrintKeyValue(w, "Trades", strconv.Itoa(s.TotalTrades), 12)
	PrintKeyValue(w, "Win / Loss", fmt.Sprintf("%d / %d", s.Wins, s.Losses), 12)
	PrintKeyValue(w, "Win Rate", format.Number(&winRate, 1)+"%", 12)
	PrintKeyValue(w, "Avg Win", format.SignedPercent(&avgWin, 2), 12)
	PrintKeyValue(w, "Avg Loss", format.SignedPercent(&avgLoss, 2), 12)
}

func renderHoldings(w io.Writer, h portfolio.HoldingsView) {
	fmt.Fprintf(w, "보유 현황 · %s\n", format.DateKR(h.Date))
	if len(h.Positions) == 0 {
		PrintWarning(w, "보유 종목 없음")
	} else {
		cols := []string{"Ticker", "Action", "Entry", "Price", "Weight", "P&L"}
		widths := []int{6, 6, 11, 11, 6, 8}
		PrintTableHeader(w, cols, widths)
		for _, p := range h.Positions {
			PrintTableRow(w, []string{
				p.Ticker, p.Action.Label(),
				format.Price(p.EntryPrice), format.Price(p.Price),
				format.Weight(p.EffectiveWeight),
				format.SignedPercent(p.UnrealizedPct, 2),
			}, widths)
		}
		u := h.PortfolioUnrealized
		PrintKeyValue(w, "Unrealized", format.SignedPercent(&u, 2), 12)
	}
	for _, e := range h.Exits {
		fmt.Fprintf(w, "   청산 %s %s\n", e.Ticker, format.SignedPercent(e.ReturnPct, 2))
	}
}
