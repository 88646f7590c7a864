package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wonny/epsdash/internal/dashboard"
	"github.com/wonny/epsdash/internal/view"
)

// screeningCmd represents the screening command
var screeningCmd = &cobra.Command{
	Use:   "screening [date]",
	Short: "Top 30 스크리닝 결과 조회",
	Long: `날짜별 EPS 모멘텀 Top 30 후보를 표로 출력합니다.
날짜를 생략하면 최신 날짜를 사용합니다.

정렬 키: rank, composite, score, gap, rev_growth, price, fwd_pe
상태 필터: all, verified, pending, new

Example:
  go run ./cmd/dash screening
  go run ./cmd/dash screening 2025-01-08 --sort gap --status verified
  go run ./cmd/dash screening --grouped=false --sort score --dir asc`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScreening,
}

var (
	screeningSort    string
	screeningDir     string
	screeningStatus  string
	screeningGrouped bool
)

func init() {
	rootCmd.AddCommand(screeningCmd)

	screeningCmd.Flags().StringVar(&screeningSort, "sort", "rank", "정렬 키")
	screeningCmd.Flags().StringVar(&screeningDir, "dir", "", "정렬 방향 (asc|desc, 기본값: 키별 기본)")
	screeningCmd.Flags().StringVar(&screeningStatus, "status", "all", "상태 필터")
	screeningCmd.Flags().BoolVar(&screeningGrouped, "grouped", true, "상태별 그룹 표시")
}

func runScreening(cmd *cobra.Command, args []string) error {
	q, err := screeningQuery()
	if err != nil {
		return err
	}

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

	// 세션 단위 상태: 선택 날짜 + 스냅샷
	session := dashboard.NewSession(d.loader)
	snap, err := session.Select(ctx, date)
	if err != nil {
		return fmt.Errorf("load %s: %w", date, err)
	}

	page := dashboard.BuildPage(snap, q, view.NewMemo(), d.loader.Options())
	renderPage(os.Stdout, page)
	return nil
}

func screeningQuery() (view.Query, error) {
	key, err := view.ParseCandidateKey(screeningSort)
	if err != nil {
		return view.Query{}, err
	}
	dir, err := view.ParseDirection(screeningDir, view.DefaultDirection(key))
	if err != nil {
		return view.Query{}, err
	}
	status, err := view.ParseStatusFilter(screeningStatus)
	if err != nil {
		return view.Query{}, err
	}
	return view.Query{Key: key, Direction: dir, Status: status, Grouped: screeningGrouped}, nil
}

// dateArg returns args[0] or the latest screening date
func dateArg(ctx context.Context, loader *dashboard.Loader, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return loader.DefaultDate(ctx)
}

var candidateColumns = []string{"#", "Ticker", "Trend", "Score", "Gap", "RevG", "Price", "Comp", "Status", "History"}
var candidateWidths = []int{3, 6, 8, 6, 8, 8, 11, 4, 4, 12}

func renderPage(w io.Writer, page dashboard.Page) {
	PrintHeader(w, "EPS Momentum Top 30 · "+page.DateLabel)
	if page.Stats != nil {
		PrintKeyValue(w, "Screened", strconv.Itoa(page.Stats.TotalScreened), 9)
		PrintKeyValue(w, "Eligible", strconv.Itoa(page.Stats.TotalEligible), 9)
		PrintKeyValue(w, "Verified", strconv.Itoa(page.Stats.VerifiedCount), 9)
		PrintKeyValue(w, "New", strconv.Itoa(page.Stats.NewCount), 9)
	}
	PrintSeparator(w)

	v := page.View
	if len(v.Rows) == 0 {
		PrintWarning(w, "조건에 맞는 종목이 없습니다")
	} else if v.Query.Grouped {
		for _, g := range v.Groups {
			fmt.Fprintf(w, "\n%s %s · %d\n", g.Label, g.Sublabel, len(g.Rows))
			renderRows(w, g.Rows)
		}
	} else {
		renderRows(w, v.Rows)
	}

	if len(page.TopIndustries) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "업종 분포")
		for _, ic := range page.TopIndustries {
			PrintKeyValue(w, ic.Industry, strconv.Itoa(ic.Count), 12)
		}
	}

	if len(page.Exited) > 0 {
		fmt.Fprintln(w)
		renderExited(w, page.Exited)
	}
}

func renderRows(w io.Writer, rows []view.CandidateRow) {
	PrintTableHeader(w, candidateColumns, candidateWidths)
	for _, r := range rows {
		PrintTableRow(w, []string{
			strconv.Itoa(r.Candidate.Part2Rank),
			r.Candidate.Ticker,
			r.Trend,
			r.Display.AdjScore,
			r.Display.AdjGap,
			r.Display.RevGrowth,
			r.Display.Price,
			r.Display.Composite,
			r.Candidate.Status.Emoji(),
			r.Candidate.RankHistory,
		}, candidateWidths)
	}
}
