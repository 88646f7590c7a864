package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/epsdash/internal/dashboard"
	"github.com/wonny/epsdash/internal/format"
)

// tickerCmd represents the ticker command
var tickerCmd = &cobra.Command{
	Use:   "ticker <TICKER>",
	Short: "종목별 스크리닝 이력 조회",
	Long: `한 종목의 날짜별 스크리닝 이력과 최근 순위를 출력합니다.

Example:
  go run ./cmd/dash ticker NVDA`,
	Args: cobra.ExactArgs(1),
	RunE: runTicker,
}

func init() {
	rootCmd.AddCommand(tickerCmd)
}

func runTicker(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	detail, err := d.loader.Ticker(context.Background(), args[0])
	if err != nil {
		return err
	}

	renderTicker(os.Stdout, detail)
	return nil
}

func renderTicker(w io.Writer, d *dashboard.TickerDetail) {
	PrintHeader(w, d.Ticker)
	if d.Latest != nil {
		l := d.Latest
		PrintKeyValue(w, "Date", format.DateKR(l.Date), 10)
		PrintKeyValue(w, "Price", format.Price(l.Price), 10)
		PrintKeyValue(w, "vs MA60", format.SignedPercent(d.PriceVsMA60, 1), 10)
		PrintKeyValue(w, "Adj Score", fmt.Sprintf("%.1f (%s)", l.AdjScore, d.ScoreTier), 10)
		PrintKeyValue(w, "Adj Gap", fmt.Sprintf("%+.1f", l.AdjGap), 10)
		PrintKeyValue(w, "Rev Growth", format.SignedPercent(l.RevGrowth, 1), 10)
	}
	if d.Ranks != "" {
		PrintKeyValue(w, "Ranks", d.Ranks, 10)
	}

	fmt.Fprintln(w)
	cols := []string{"Date", "Rank", "Comp", "Score", "Gap", "Price"}
	widths := []int{10, 4, 4, 6, 7, 11}
	PrintTableHeader(w, cols, widths)
	for i := len(d.History) - 1; i >= 0; i-- {
		h := d.History[i]
		PrintTableRow(w, []string{
			h.Date,
			format.Int(h.Part2Rank),
			format.Int(h.CompositeRank),
			fmt.Sprintf("%.1f", h.AdjScore),
			fmt.Sprintf("%+.1f", h.AdjGap),
			format.Price(h.Price),
		}, widths)
	}
}
