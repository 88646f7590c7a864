// Package screening reads the EPS momentum screening database directly.
//
// Expected tables (mirrors of the screening batch output):
//
//	ntm_screening(date DATE, ticker TEXT, part2_rank INT, composite_rank INT, score, adj_score,
//	              adj_gap, price, ma60, ntm_current, ntm_7d, ntm_30d, ntm_60d, ntm_90d,
//	              rev_up30, rev_down30, num_analysts, rev_growth, market_cap, roe, ...)
//	portfolio_log(date DATE, ticker TEXT, action TEXT, price, weight, entry_date DATE,
//	              entry_price, exit_price, return_pct)
//
// Optional columns missing from older databases are detected at query time.
package screening

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/epsdash/internal/contracts"
	"github.com/wonny/epsdash/internal/source"
	"github.com/wonny/epsdash/pkg/logger"
)

const eligibleScore = 9 // adj_score > 9 = 적격

var (
	baseColumns = []string{
		"ticker", "part2_rank", "score", "adj_score", "adj_gap",
		"price", "ma60", "ntm_current", "ntm_7d", "ntm_30d", "ntm_60d", "ntm_90d",
		"rev_up30", "rev_down30", "num_analysts",
	}
	optionalColumns = []string{
		"composite_rank", "rev_growth", "market_cap", "roe",
		"debt_to_equity", "operating_margin", "free_cashflow", "beta",
		"fwd_pe", "industry", "short_name",
	}
)

// Store implements source.Source on top of PostgreSQL
// ⭐ SSOT: 스크리닝 DB 조회는 여기서만
type Store struct {
	pool   *pgxpool.Pool
	logger *logger.Logger
}

// NewStore creates a new screening store
func NewStore(pool *pgxpool.Pool, log *logger.Logger) *Store {
	return &Store{pool: pool, logger: log}
}

var _ source.Source = (*Store)(nil)

// Kind implements source.Source
func (s *Store) Kind() string {
	return "postgres"
}

// screeningRow is one ntm_screening row; pointer fields may be NULL or absent
type screeningRow struct {
	Ticker          string   `db:"ticker"`
	Part2Rank       int      `db:"part2_rank"`
	Score           *float64 `db:"score"`
	AdjScore        *float64 `db:"adj_score"`
	AdjGap          *float64 `db:"adj_gap"`
	Price           *float64 `db:"price"`
	MA60            *float64 `db:"ma60"`
	NTMCurrent      *float64 `db:"ntm_current"`
	NTM7d           *float64 `db:"ntm_7d"`
	NTM30d          *float64 `db:"ntm_30d"`
	NTM60d          *float64 `db:"ntm_60d"`
	NTM90d          *float64 `db:"ntm_90d"`
	RevUp30         *int     `db:"rev_up30"`
	RevDown30       *int     `db:"rev_down30"`
	NumAnalysts     *int     `db:"num_analysts"`
	CompositeRank   *int     `db:"composite_rank"`
	RevGrowth       *float64 `db:"rev_growth"`
	MarketCap       *float64 `db:"market_cap"`
	ROE             *float64 `db:"roe"`
	DebtToEquity    *float64 `db:"debt_to_equity"`
	OperatingMargin *float64 `db:"operating_margin"`
	FreeCashflow    *float64 `db:"free_cashflow"`
	Beta            *float64 `db:"beta"`
	FwdPE           *float64 `db:"fwd_pe"`
	Industry        *string  `db:"industry"`
	ShortName       *string  `db:"short_name"`
}

func val[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func (r screeningRow) candidate() (contracts.Candidate, NTM) {
	c := contracts.Candidate{
		Ticker:          r.Ticker,
		Part2Rank:       r.Part2Rank,
		CompositeRank:   r.CompositeRank,
		Score:           val(r.Score),
		AdjScore:        val(r.AdjScore),
		AdjGap:          val(r.AdjGap),
		Price:           val(r.Price),
		MA60:            val(r.MA60),
		NTMCurrent:      val(r.NTMCurrent),
		RevGrowth:       r.RevGrowth,
		RevUp30:         val(r.RevUp30),
		RevDown30:       val(r.RevDown30),
		NumAnalysts:     val(r.NumAnalysts),
		MarketCap:       r.MarketCap,
		ROE:             r.ROE,
		DebtToEquity:    r.DebtToEquity,
		OperatingMargin: r.OperatingMargin,
		FreeCashflow:    r.FreeCashflow,
		Beta:            r.Beta,
		FwdPE:           r.FwdPE,
		Industry:        val(r.Industry),
		ShortName:       val(r.ShortName),
	}
	ntm := NTM{
		Current: val(r.NTMCurrent),
		D7:      val(r.NTM7d),
		D30:     val(r.NTM30d),
		D60:     val(r.NTM60d),
		D90:     val(r.NTM90d),
	}
	return c, ntm
}

// Dates implements source.Source: dates with part2 data, newest first
func (s *Store) Dates(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT date::text
		FROM ntm_screening
		WHERE part2_rank IS NOT NULL
		ORDER BY 1 DESC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query dates: %w", err)
	}

	dates, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect dates: %w", err)
	}
	return dates, nil
}

// Screening implements source.Source: the ranked candidates of date, enriched
func (s *Store) Screening(ctx context.Context, date string) ([]contracts.Candidate, error) {
	cols, err := s.columns(ctx, "ntm_screening")
	if err != nil {
		return nil, err
	}

	selected := append([]string{}, baseColumns...)
	for _, c := range optionalColumns {
		if cols[c] {
			selected = append(selected, c)
		}
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM ntm_screening
		WHERE date = $1::date AND part2_rank IS NOT NULL
		ORDER BY part2_rank ASC
	`, strings.Join(selected, ", "))

	rows, err := s.pool.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query screening: %w", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[screeningRow])
	if err != nil {
		return nil, fmt.Errorf("failed to collect screening rows: %w", err)
	}
	if len(records) == 0 {
		if err := s.requireDate(ctx, date); err != nil {
			return nil, err
		}
		return []contracts.Candidate{}, nil
	}

	window, ranks, err := s.rankWindow(ctx, date, statusWindow)
	if err != nil {
		return nil, err
	}

	candidates := make([]contracts.Candidate, 0, len(records))
	for _, r := range records {
		c, ntm := r.candidate()
		Enrich(&c, ntm, window, ranks)
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// Stats implements source.Source
func (s *Store) Stats(ctx context.Context, date string) (*contracts.ScreeningStats, error) {
	stats := &contracts.ScreeningStats{Date: date}

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE adj_score > $2),
			COUNT(*) FILTER (WHERE part2_rank IS NOT NULL)
		FROM ntm_screening
		WHERE date = $1::date
	`
	err := s.pool.QueryRow(ctx, query, date, eligibleScore).Scan(
		&stats.TotalScreened,
		&stats.TotalEligible,
		&stats.Top30Count,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count screening: %w", err)
	}
	if stats.TotalScreened == 0 {
		return nil, fmt.Errorf("screening %s: %w", date, source.ErrNotFound)
	}

	candidates, err := s.Screening(ctx, date)
	if err != nil {
		return nil, err
	}
	stats.VerifiedCount, stats.NewCount = StatusCounts(candidates)
	stats.IndustryDistribution = IndustryDistribution(candidates)

	return stats, nil
}

// Portfolio implements source.Source
func (s *Store) Portfolio(ctx context.Context, date string) ([]contracts.PortfolioEntry, error) {
	return s.portfolioRows(ctx, "WHERE date = $1::date ORDER BY ticker", date)
}

// PortfolioHistory implements source.Source: newest date first, then ticker
func (s *Store) PortfolioHistory(ctx context.Context) ([]contracts.PortfolioEntry, error) {
	return s.portfolioRows(ctx, "ORDER BY date DESC, ticker")
}

func (s *Store) portfolioRows(ctx context.Context, clause string, args ...interface{}) ([]contracts.PortfolioEntry, error) {
	query := `
		SELECT date::text, ticker, action, COALESCE(price, 0), COALESCE(weight, 0),
		       COALESCE(entry_date::text, ''), COALESCE(entry_price, 0), exit_price, return_pct
		FROM portfolio_log
	` + clause

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio log: %w", err)
	}
	defer rows.Close()

	entries := make([]contracts.PortfolioEntry, 0)
	for rows.Next() {
		var e contracts.PortfolioEntry
		var action string
		if err := rows.Scan(&e.Date, &e.Ticker, &action, &e.Price, &e.Weight,
			&e.EntryDate, &e.EntryPrice, &e.ExitPrice, &e.ReturnPct); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio row: %w", err)
		}

		a, err := contracts.ParseAction(action)
		if err != nil {
			s.logger.WithField("ticker", e.Ticker).WithError(err).Warn("Skipping portfolio row")
			continue
		}
		e.Action = a
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio rows: %w", err)
	}
	return entries, nil
}

// TickerHistory implements source.Source: oldest date first
func (s *Store) TickerHistory(ctx context.Context, ticker string) ([]contracts.TickerHistory, error) {
	cols, err := s.columns(ctx, "ntm_screening")
	if err != nil {
		return nil, err
	}

	optional := func(name, cast string) string {
		if cols[name] {
			return name
		}
		return "NULL::" + cast
	}

	query := fmt.Sprintf(`
		SELECT date::text, COALESCE(score, 0), COALESCE(adj_score, 0), COALESCE(adj_gap, 0),
		       COALESCE(price, 0), COALESCE(ma60, 0), COALESCE(ntm_current, 0),
		       part2_rank, %s, %s
		FROM ntm_screening
		WHERE ticker = $1
		ORDER BY date
	`, optional("composite_rank", "int"), optional("rev_growth", "float8"))

	rows, err := s.pool.Query(ctx, query, strings.ToUpper(strings.TrimSpace(ticker)))
	if err != nil {
		return nil, fmt.Errorf("failed to query ticker history: %w", err)
	}
	defer rows.Close()

	history := make([]contracts.TickerHistory, 0)
	for rows.Next() {
		var h contracts.TickerHistory
		if err := rows.Scan(&h.Date, &h.Score, &h.AdjScore, &h.AdjGap, &h.Price, &h.MA60,
			&h.NTMCurrent, &h.Part2Rank, &h.CompositeRank, &h.RevGrowth); err != nil {
			return nil, fmt.Errorf("failed to scan ticker row: %w", err)
		}
		history = append(history, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ticker rows: %w", err)
	}
	return history, nil
}

// Exited implements source.Source: tickers ranked on the previous part2 date but not on date
func (s *Store) Exited(ctx context.Context, date string) ([]contracts.ExitedStock, error) {
	var prevDate string
	err := s.pool.QueryRow(ctx, `
		SELECT date::text
		FROM ntm_screening
		WHERE part2_rank IS NOT NULL AND date < $1::date
		GROUP BY date
		ORDER BY date DESC
		LIMIT 1
	`, date).Scan(&prevDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return []contracts.ExitedStock{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find previous date: %w", err)
	}

	cols, err := s.columns(ctx, "ntm_screening")
	if err != nil {
		return nil, err
	}
	text := func(name string) string {
		if cols[name] {
			return "COALESCE(" + name + ", '')"
		}
		return "''"
	}

	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT ticker, part2_rank, %s, %s
		FROM ntm_screening
		WHERE date = $1::date AND part2_rank IS NOT NULL
	`, text("short_name"), text("industry")), prevDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query previous ranks: %w", err)
	}
	prev, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ExitCandidate, error) {
		var e ExitCandidate
		err := row.Scan(&e.Ticker, &e.PrevRank, &e.ShortName, &e.Industry)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect previous ranks: %w", err)
	}

	today, current, err := s.todaySets(ctx, date, cols["composite_rank"])
	if err != nil {
		return nil, err
	}

	window, ranks, err := s.rankWindow(ctx, prevDate, statusWindow)
	if err != nil {
		return nil, err
	}

	return ExitDiff(prevDate, prev, today, current, window, ranks), nil
}

// todaySets returns tickers ranked on date and the composite rank of those screened without a part2 rank
func (s *Store) todaySets(ctx context.Context, date string, hasComposite bool) (map[string]bool, map[string]int, error) {
	composite := "NULL::int"
	if hasComposite {
		composite = "composite_rank"
	}

	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT ticker, part2_rank, %s
		FROM ntm_screening
		WHERE date = $1::date
	`, composite), date)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query today's screening: %w", err)
	}
	defer rows.Close()

	ranked := make(map[string]bool)
	current := make(map[string]int)
	for rows.Next() {
		var ticker string
		var part2, comp *int
		if err := rows.Scan(&ticker, &part2, &comp); err != nil {
			return nil, nil, fmt.Errorf("failed to scan today's row: %w", err)
		}
		switch {
		case part2 != nil:
			ranked[ticker] = true
		case comp != nil:
			current[ticker] = *comp
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating today's rows: %w", err)
	}
	return ranked, current, nil
}

// rankWindow returns the last n part2 dates up to date (newest first) and their ranks
func (s *Store) rankWindow(ctx context.Context, date string, n int) ([]string, RankLookup, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT date::text
		FROM ntm_screening
		WHERE part2_rank IS NOT NULL AND date <= $1::date
		ORDER BY 1 DESC
		LIMIT $2
	`, date, n)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query rank window: %w", err)
	}
	window, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to collect rank window: %w", err)
	}

	ranks := make(RankLookup)
	if len(window) == 0 {
		return window, ranks, nil
	}

	rows, err = s.pool.Query(ctx, `
		SELECT ticker, date::text, part2_rank
		FROM ntm_screening
		WHERE part2_rank IS NOT NULL AND date::text = ANY($1)
	`, window)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query window ranks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ticker, d string
		var rank int
		if err := rows.Scan(&ticker, &d, &rank); err != nil {
			return nil, nil, fmt.Errorf("failed to scan window rank: %w", err)
		}
		ranks.Add(ticker, d, rank)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating window ranks: %w", err)
	}
	return window, ranks, nil
}

// requireDate returns ErrNotFound when nothing was screened on date
func (s *Store) requireDate(ctx context.Context, date string) error {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM ntm_screening WHERE date = $1::date)`, date,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check date: %w", err)
	}
	if !exists {
		return fmt.Errorf("screening %s: %w", date, source.ErrNotFound)
	}
	return nil
}

// columns returns the column names of table
func (s *Store) columns(ctx context.Context, table string) (map[string]bool, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = $1
	`, table)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect columns of %s: %w", table, err)
	}

	cols := make(map[string]bool, len(names))
	for _, n := range names {
		cols[n] = true
	}
	return cols, nil
}

// MarketStatus implements source.Source. The screening database has no market data.
func (s *Store) MarketStatus(ctx context.Context) (*contracts.MarketStatus, error) {
	return nil, fmt.Errorf("market status: %w", source.ErrUnavailable)
}
