package commands

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/epsdash/internal/dashboard"
	"github.com/wonny/epsdash/internal/format"
	"github.com/wonny/epsdash/internal/view"
)

// exitedCmd represents the exited command
var exitedCmd = &cobra.Command{
	Use:   "exited [date]",
	Short: "Death List (Top 30 이탈 종목) 조회",
	Long: `직전 스크리닝 날짜 대비 Top 30에서 빠진 종목과 순위 궤적을 출력합니다.

Example:
  go run ./cmd/dash exited
  go run ./cmd/dash exited 2025-01-08`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExited,
}

func init() {
	rootCmd.AddCommand(exitedCmd)
}

func runExited(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	ctx := context.Background()
	date, err := dateArg(ctx, d.loader, args)
	if err != nil {
		return err
	}

	exited, err := d.loader.Source().Exited(ctx, date)
	if err != nil {
		return fmt.Errorf("load exited %s: %w", date, err)
	}

	out := os.Stdout
	PrintHeader(out, "Death List · "+format.DateKR(date))
	if len(exited) == 0 {
		PrintSuccess(out, "이탈 종목 없음")
		return nil
	}
	renderExited(out, dashboard.ExitedRows(exited))
	return nil
}

var exitedColumns = []string{"Ticker", "Prev", "Now", "Industry", "Trajectory"}
var exitedWidths = []int{6, 4, 4, 14, 20}

func renderExited(w io.Writer, rows []dashboard.ExitedRow) {
	fmt.Fprintf(w, "Death List · %d\n", len(rows))
	PrintTableHeader(w, exitedColumns, exitedWidths)
	for _, r := range rows {
		PrintTableRow(w, []string{
			r.Stock.Ticker,
			strconv.Itoa(r.Stock.PrevRank),
			format.Int(r.Stock.CurrentRank),
			r.Stock.IndustryKR,
			trajectoryLine(r.Trajectory),
		}, exitedWidths)
	}
}

// trajectoryLine renders bars as block glyphs, "OUT" for exit points
func trajectoryLine(t view.Trajectory) string {
	if len(t.Bars) == 0 {
		return t.Raw
	}
	parts := make([]string, 0, len(t.Bars))
	for _, b := range t.Bars {
		if b.Exit {
			parts = append(parts, "OUT")
			continue
		}
		parts = append(parts, barGlyph(b.Weight))
	}
	return strings.Join(parts, " ") + "  " + t.Raw
}

var glyphs = []rune("▁▂▃▄▅▆▇█")

// barGlyph maps a weight in [2, 16] to one of eight block heights
func barGlyph(weight float64) string {
	i := int(math.Round((weight - 2) / 14 * float64(len(glyphs)-1)))
	if i < 0 {
		i = 0
	}
	if i >= len(glyphs) {
		i = len(glyphs) - 1
	}
	return string(glyphs[i])
}
