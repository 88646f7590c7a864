package scheduler

import (
	"context"
	"time"
)

// Job is a scheduled prefetch task
// ⭐ SSOT: 스케줄 작업 인터페이스는 여기서만 정의
type Job interface {
	// Name is the key used by `dash scheduler run <name>`
	Name() string

	// Schedule is a cron expression with seconds, e.g. "0 30 7 * * 2-6" (Tue-Sat 07:30)
	Schedule() string

	// Run executes the job once and returns a short summary for the history
	// (for the warm job, the screening date it loaded)
	Run(ctx context.Context) (string, error)
}

// JobResult is the outcome of one run
type JobResult struct {
	JobName   string        `json:"job_name"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	Success   bool          `json:"success"`
	Summary   string        `json:"summary,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// maxHistory is how many results are kept per job
const maxHistory = 100

// JobHistory keeps the most recent results of one job, oldest first.
// The scheduler guards it with its own lock.
type JobHistory struct {
	results []JobResult
}

// Add appends a result, dropping the oldest beyond maxHistory
func (h *JobHistory) Add(result JobResult) {
	h.results = append(h.results, result)
	if len(h.results) > maxHistory {
		h.results = append([]JobResult(nil), h.results[len(h.results)-maxHistory:]...)
	}
}

// Len returns the number of kept results
func (h *JobHistory) Len() int {
	return len(h.results)
}

// Latest returns a copy of the last n results, oldest first
func (h *JobHistory) Latest(n int) []JobResult {
	if n > len(h.results) {
		n = len(h.results)
	}
	if n <= 0 {
		return []JobResult{}
	}
	return append([]JobResult(nil), h.results[len(h.results)-n:]...)
}

// Last returns the most recent result matching keep, or nil
func (h *JobHistory) Last(keep func(JobResult) bool) *JobResult {
	for i := len(h.results) - 1; i >= 0; i-- {
		if keep == nil || keep(h.results[i]) {
			r := h.results[i]
			return &r
		}
	}
	return nil
}

// Counts returns successful and failed run counts
func (h *JobHistory) Counts() (ok, failed int) {
	for _, r := range h.results {
		if r.Success {
			ok++
		} else {
			failed++
		}
	}
	return ok, failed
}

// SuccessRate returns ok / total in [0, 1]; 0 without runs
func (h *JobHistory) SuccessRate() float64 {
	if len(h.results) == 0 {
		return 0
	}
	ok, _ := h.Counts()
	return float64(ok) / float64(len(h.results))
}

func succeeded(r JobResult) bool { return r.Success }
func failed(r JobResult) bool    { return !r.Success }
