package screening

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/epsdash/internal/contracts"
	"github.com/wonny/epsdash/internal/source"
	"github.com/wonny/epsdash/pkg/logger"
)

const fixture = `
CREATE TEMP TABLE ntm_screening (
	date DATE, ticker TEXT, part2_rank INT, composite_rank INT,
	score DOUBLE PRECISION, adj_score DOUBLE PRECISION, adj_gap DOUBLE PRECISION,
	price DOUBLE PRECISION, ma60 DOUBLE PRECISION,
	ntm_current DOUBLE PRECISION, ntm_7d DOUBLE PRECISION, ntm_30d DOUBLE PRECISION,
	ntm_60d DOUBLE PRECISION, ntm_90d DOUBLE PRECISION,
	rev_up30 INT, rev_down30 INT, num_analysts INT,
	rev_growth DOUBLE PRECISION, industry TEXT, short_name TEXT
);
CREATE TEMP TABLE portfolio_log (
	date DATE, ticker TEXT, action TEXT, price DOUBLE PRECISION, weight DOUBLE PRECISION,
	entry_date DATE, entry_price DOUBLE PRECISION, exit_price DOUBLE PRECISION, return_pct DOUBLE PRECISION
);
INSERT INTO ntm_screening (date, ticker, part2_rank, composite_rank, score, adj_score, adj_gap, price, ma60,
	ntm_current, ntm_7d, ntm_30d, ntm_60d, ntm_90d, rev_up30, rev_down30, num_analysts, industry, short_name) VALUES
	('2025-01-06', 'NVDA', 1, 1, 30, 28, -10, 480, 450, 12, 10, 10, 10, 10, 20, 1, 40, 'Semiconductors', 'NVIDIA'),
	('2025-01-06', 'AVGO', 2, 2, 20, 18, -5, 1100, 1000, 10, 10, 10, 10, 10, 10, 2, 30, 'Semiconductors', 'Broadcom'),
	('2025-01-07', 'NVDA', 2, 2, 30, 28, -10, 480, 450, 12, 10, 10, 10, 10, 20, 1, 40, 'Semiconductors', 'NVIDIA'),
	('2025-01-07', 'AVGO', 1, 1, 20, 18, -5, 1100, 1000, 10, 10, 10, 10, 10, 10, 2, 30, 'Semiconductors', 'Broadcom'),
	('2025-01-08', 'NVDA', 1, 1, 30, 28, -10, 480, 450, 12, 10, 10, 10, 10, 20, 1, 40, 'Semiconductors', 'NVIDIA'),
	('2025-01-08', 'AVGO', NULL, 35, 20, 8, -5, 1100, 1000, 10, 10, 10, 10, 10, 10, 2, 30, 'Semiconductors', 'Broadcom');
INSERT INTO portfolio_log VALUES
	('2025-01-07', 'NVDA', 'enter', 480, 0.2, '2025-01-07', 480, NULL, NULL),
	('2025-01-08', 'NVDA', 'hold', 500, 0.2, '2025-01-07', 480, NULL, NULL),
	('2025-01-08', 'AVGO', 'exit', 1100, 0.2, '2025-01-06', 1000, 1100, 10);
`

func setupStore(t *testing.T) *Store {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" || testing.Short() {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	cfg, err := pgxpool.ParseConfig(url)
	require.NoError(t, err)
	// 임시 테이블은 커넥션 단위
	cfg.MaxConns = 1

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, fixture)
	require.NoError(t, err)

	return NewStore(pool, logger.NewNop())
}

func TestStoreDatesAndScreening(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	dates, err := store.Dates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-08", "2025-01-07", "2025-01-06"}, dates)

	candidates, err := store.Screening(ctx, "2025-01-08")
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	nvda := candidates[0]
	assert.Equal(t, "NVDA", nvda.Ticker)
	assert.Equal(t, contracts.StatusVerified, nvda.Status)
	assert.Equal(t, "1→2→1", nvda.RankHistory)
	assert.Equal(t, 20.0, nvda.Seg1)
	assert.Equal(t, "NVIDIA", nvda.ShortName)

	_, err = store.Screening(ctx, "2024-12-31")
	assert.True(t, errors.Is(err, source.ErrNotFound))
}

func TestStoreStats(t *testing.T) {
	store := setupStore(t)

	stats, err := store.Stats(context.Background(), "2025-01-08")
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalScreened)
	assert.Equal(t, 1, stats.TotalEligible)
	assert.Equal(t, 1, stats.Top30Count)
	assert.Equal(t, 1, stats.VerifiedCount)
	assert.Equal(t, 1, stats.IndustryDistribution["반도체"])
}

func TestStorePortfolio(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	entries, err := store.Portfolio(ctx, "2025-01-08")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "AVGO", entries[0].Ticker)
	assert.Equal(t, contracts.ActionExit, entries[0].Action)
	require.NotNil(t, entries[0].ReturnPct)
	assert.Equal(t, 10.0, *entries[0].ReturnPct)

	history, err := store.PortfolioHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "2025-01-08", history[0].Date)
	assert.Equal(t, "2025-01-07", history[2].Date)
}

func TestStoreTickerHistory(t *testing.T) {
	store := setupStore(t)

	history, err := store.TickerHistory(context.Background(), "avgo")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "2025-01-06", history[0].Date)
	assert.Nil(t, history[2].Part2Rank)
	require.NotNil(t, history[2].CompositeRank)
	assert.Equal(t, 35, *history[2].CompositeRank)
}

func TestStoreExited(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	exited, err := store.Exited(ctx, "2025-01-08")
	require.NoError(t, err)
	require.Len(t, exited, 1)

	e := exited[0]
	assert.Equal(t, "AVGO", e.Ticker)
	assert.Equal(t, "2025-01-07", e.PrevDate)
	assert.Equal(t, 1, e.PrevRank)
	require.NotNil(t, e.CurrentRank)
	assert.Equal(t, 35, *e.CurrentRank)
	assert.Equal(t, "2→1→OUT", e.RankHistory)

	first, err := store.Exited(ctx, "2025-01-06")
	require.NoError(t, err)
	assert.Empty(t, first)
}

func TestStoreMarketStatus(t *testing.T) {
	store := setupStore(t)

	_, err := store.MarketStatus(context.Background())
	assert.True(t, errors.Is(err, source.ErrUnavailable))
}
