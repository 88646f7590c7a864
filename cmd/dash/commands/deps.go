package commands

import (
	"fmt"
	"os"

	"github.com/wonny/epsdash/internal/dashboard"
	"github.com/wonny/epsdash/internal/portfolio"
	"github.com/wonny/epsdash/internal/screening"
	"github.com/wonny/epsdash/internal/source"
	"github.com/wonny/epsdash/pkg/config"
	"github.com/wonny/epsdash/pkg/database"
	"github.com/wonny/epsdash/pkg/httputil"
	"github.com/wonny/epsdash/pkg/logger"
	"github.com/wonny/epsdash/pkg/redis"
)

// deps holds the wired services shared by commands
type deps struct {
	cfg    *config.Config
	log    *logger.Logger
	db     *database.DB
	redis  *redis.Client
	cached *source.Cached
	loader *dashboard.Loader
}

// initDeps loads config and wires source → cache → loader
func initDeps() (*deps, error) {
	// 1. Load config
	if dataSource != "" {
		os.Setenv("DATA_SOURCE", dataSource)
	}
	if verbose {
		os.Setenv("LOG_LEVEL", "debug")
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)
	d := &deps{cfg: cfg, log: log}

	// 3. Screening source
	var src source.Source
	switch cfg.DataSource {
	case config.SourcePostgres:
		db, err := database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		d.db = db
		src = screening.NewStore(db.Pool, log)
	default:
		httpClient := httputil.New(cfg, log)
		src = source.NewREST(httpClient, cfg.Upstream.BaseURL, log)
	}

	// 4. Redis cache (비활성화 시 pass-through)
	rc, err := redis.New(cfg)
	if err != nil {
		d.close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	d.redis = rc
	d.cached = source.NewCached(
		src,
		redis.NewCache(rc, cfg.Cache.Prefix),
		source.CacheTTL{Snapshot: cfg.Cache.SnapshotTTL, Live: cfg.Cache.LiveTTL},
		log,
	)

	// 5. Loader
	d.loader = dashboard.NewLoader(d.cached, portfolio.Options{DefaultWeight: cfg.Portfolio.DefaultWeight}, log)

	log.WithFields(map[string]interface{}{
		"source": d.cached.Kind(),
		"env":    cfg.Env,
	}).Debug("Dependencies initialized")

	return d, nil
}

func (d *deps) close() {
	if d.redis != nil {
		d.redis.Close()
	}
	if d.db != nil {
		d.db.Close()
	}
}
