package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	dataSource string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dash",
	Short: "EPS Momentum 대시보드",
	Long: `EPS Momentum Dashboard CLI

NTM EPS 모멘텀 스크리닝 결과(Top 30)와 모델 포트폴리오 성과를 조회합니다.
데이터는 스크리닝 REST API 또는 스크리닝 DB(PostgreSQL)에서 읽습니다.

Usage:
  go run ./cmd/dash [command]

Examples:
  go run ./cmd/dash api
  go run ./cmd/dash screening --sort gap
  go run ./cmd/dash portfolio --action exit
  go run ./cmd/dash ticker NVDA
  go run ./cmd/dash scheduler start`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dataSource, "source", "", "data source override (rest|postgres)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logs)")
}
