package commands

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/epsdash/internal/source"
	"github.com/wonny/epsdash/pkg/database"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "데이터 소스 연결 점검",
	Long: `설정된 데이터 소스, Redis, 데이터베이스 연결 상태를 점검합니다.

Example:
  go run ./cmd/dash check
  go run ./cmd/dash check --source postgres`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	out := os.Stdout
	ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Upstream.Timeout+5*time.Second)
	defer cancel()

	PrintHeader(out, "EPS Dashboard Check")
	PrintKeyValue(out, "Env", d.cfg.Env, 8)
	PrintKeyValue(out, "Source", d.cached.Kind(), 8)
	if d.db != nil {
		PrintKeyValue(out, "Database", maskPassword(d.cfg.Database.URL), 8)
	} else {
		PrintKeyValue(out, "Upstream", d.cfg.Upstream.BaseURL, 8)
	}
	PrintSeparator(out)

	failed := false

	if d.db != nil {
		status, err := d.db.HealthCheck(ctx)
		if err != nil {
			PrintError(out, "Database: "+err.Error())
			failed = true
		} else {
			renderHealth(out, status)
		}
	}

	if d.redis.Enabled() {
		if err := d.redis.Redis().Ping(ctx).Err(); err != nil {
			PrintError(out, "Redis: "+err.Error())
			failed = true
		} else {
			PrintSuccess(out, "Redis ping OK ("+d.cfg.RedisAddr()+")")
		}
	} else {
		PrintWarning(out, "Redis disabled (pass-through)")
	}

	dates, err := d.loader.Dates(ctx)
	if err != nil {
		PrintError(out, "Dates: "+err.Error())
		failed = true
	} else {
		PrintSuccess(out, fmt.Sprintf("%d screening dates, latest %s", len(dates), source.Latest(dates)))
	}

	if failed {
		return fmt.Errorf("check failed")
	}
	return nil
}

func renderHealth(w io.Writer, status *database.HealthStatus) {
	PrintSuccess(w, "Database healthy ("+status.ResponseTime.Round(time.Microsecond).String()+")")
	PrintKeyValue(w, "Max Connections", strconv.Itoa(int(status.Stats.MaxConns)), 16)
	PrintKeyValue(w, "Total", strconv.Itoa(int(status.Stats.TotalConns)), 16)
	PrintKeyValue(w, "Acquired", strconv.Itoa(int(status.Stats.AcquiredConns)), 16)
	PrintKeyValue(w, "Idle", strconv.Itoa(int(status.Stats.IdleConns)), 16)
	PrintKeyValue(w, "Empty Acquires", strconv.FormatInt(status.Stats.EmptyAcquireCount, 10), 16)
	if !status.ReadOnly {
		PrintWarning(w, "세션이 읽기 전용이 아닙니다 (default_transaction_read_only)")
	}
}

// maskPassword hides the password of a database URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
