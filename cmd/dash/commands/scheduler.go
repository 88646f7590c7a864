package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/epsdash/internal/scheduler"
	"github.com/wonny/epsdash/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "캐시 워밍 스케줄러 관리",
	Long: `스크리닝 배치가 끝난 뒤 최신 날짜 스냅샷을 미리 캐시에 적재합니다.

Subcommands:
  start   - 스케줄러 시작
  list    - 등록된 작업 목록
  run     - 특정 작업 즉시 실행
  status  - 작업 실행 상태 조회

Example:
  go run ./cmd/dash scheduler start
  go run ./cmd/dash scheduler run warm_cache`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		Long: `스케줄러를 시작하고 등록된 모든 작업을 스케줄합니다.

등록되는 작업:
- warm_cache: WARM_SCHEDULE (기본 화~토 07:30)

스케줄러는 Ctrl+C로 종료할 수 있습니다.`,
		RunE: runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "등록된 작업 목록",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "특정 작업 즉시 실행",
		Args:  cobra.ExactArgs(1),
		RunE:  runJob,
	}

	schedulerStatusCmd = &cobra.Command{
		Use:   "status",
		Short: "작업 실행 상태 조회",
		RunE:  showStatus,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
	schedulerCmd.AddCommand(schedulerStatusCmd)
}

// initScheduler wires the warm cache job against the cached source
func initScheduler(d *deps) (*scheduler.Scheduler, error) {
	sched := scheduler.New(d.log)
	if err := sched.AddJob(jobs.NewWarmCacheJob(d.cached, d.cfg.WarmSchedule, d.log)); err != nil {
		return nil, fmt.Errorf("add warm job: %w", err)
	}
	return sched, nil
}

func runScheduler(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	if !d.redis.Enabled() {
		PrintWarning(os.Stdout, "REDIS_ENABLED=false: 워밍 결과가 저장되지 않습니다")
	}

	sched, err := initScheduler(d)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	sched.Start()

	PrintSuccess(os.Stdout, "Scheduler started")
	printJobs(os.Stdout, sched)
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down scheduler...")
	sched.Stop()
	fmt.Println("Scheduler stopped")

	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	sched, err := initScheduler(d)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	printJobs(os.Stdout, sched)
	return nil
}

func runJob(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	sched, err := initScheduler(d)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	fmt.Printf("Running job: %s\n", jobName)
	result, err := sched.RunNow(context.Background(), jobName)
	if err != nil {
		return err
	}

	renderResult(os.Stdout, result)
	if !result.Success {
		return fmt.Errorf("job %s failed: %s", jobName, result.Error)
	}
	return nil
}

func showStatus(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	sched, err := initScheduler(d)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	// 다음 실행 시각 계산을 위해 cron 시작
	sched.Start()
	defer sched.Stop()

	renderStatus(os.Stdout, sched.GetJobStats())
	return nil
}

func printJobs(w io.Writer, sched *scheduler.Scheduler) {
	fmt.Fprintln(w, "Registered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		fmt.Fprintf(w, "  - %s\n", jobName)
	}
}

func renderResult(w io.Writer, r scheduler.JobResult) {
	if r.Success {
		PrintSuccess(w, fmt.Sprintf("%s completed in %s (%s)", r.JobName, r.Duration.Round(time.Millisecond), r.Summary))
		return
	}
	PrintError(w, fmt.Sprintf("%s failed after %s: %s", r.JobName, r.Duration.Round(time.Millisecond), r.Error))
}

func renderStatus(w io.Writer, stats map[string]scheduler.JobStats) {
	PrintHeader(w, "Scheduler Status")
	for _, name := range sortedKeys(stats) {
		s := stats[name]
		fmt.Fprintf(w, "%s\n", s.JobName)
		PrintKeyValue(w, "Schedule", s.Schedule, 12)
		PrintKeyValue(w, "Runs", fmt.Sprintf("%d (ok %d / fail %d)", s.TotalRuns, s.SuccessCount, s.FailureCount), 12)
		PrintKeyValue(w, "Last Run", timeOrDash(s.LastRun), 12)
		if s.LastSummary != "" {
			PrintKeyValue(w, "Warmed", s.LastSummary, 12)
		}
		if s.LastError != "" {
			PrintKeyValue(w, "Last Error", s.LastError, 12)
		}
		PrintKeyValue(w, "Next Run", timeOrDash(s.NextRun), 12)
	}
}

func timeOrDash(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.RFC3339)
}

func sortedKeys(stats map[string]scheduler.JobStats) []string {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
