package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Source kinds
const (
	SourceREST     = "rest"
	SourcePostgres = "postgres"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// DataSource selects where screening data comes from (rest | postgres)
	DataSource string

	// Upstream screening API
	Upstream UpstreamConfig

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Cache
	Cache CacheConfig

	// Portfolio
	Portfolio PortfolioConfig

	// Scheduler
	WarmSchedule string

	// Logging
	LogLevel  string
	LogFormat string

	// Monitoring
	MetricsEnabled bool
}

// UpstreamConfig holds the screening REST API configuration
type UpstreamConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 = unlimited
	Burst     int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// DatabaseConfig holds PostgreSQL configuration.
// The screening database is only ever read.
type DatabaseConfig struct {
	URL string

	// 쿼리당 상한 (0 = 서버 기본값)
	StatementTimeout time.Duration

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// CacheConfig holds cache TTLs
type CacheConfig struct {
	Prefix      string
	SnapshotTTL time.Duration // 날짜별 스냅샷 (변하지 않음)
	LiveTTL     time.Duration // 날짜 목록, 히스토리, 시장 상태
}

// PortfolioConfig holds model portfolio conventions
type PortfolioConfig struct {
	DefaultWeight float64 // 5종목 균등 배분 = 0.2
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		DataSource: getEnv("DATA_SOURCE", SourceREST),

		Upstream: UpstreamConfig{
			BaseURL:   getEnv("UPSTREAM_BASE_URL", "http://localhost:8000/api"),
			Timeout:   getEnvAsDuration("UPSTREAM_TIMEOUT", "15s"),
			RateLimit: getEnvAsFloat("UPSTREAM_RATE_LIMIT", 10),
			Burst:     getEnvAsInt("UPSTREAM_BURST", 10),
		},

		// Database
		Database: DatabaseConfig{
			URL:              getEnv("DATABASE_URL", ""),
			StatementTimeout: getEnvAsDuration("DB_STATEMENT_TIMEOUT", "10s"),

			// 스냅샷 로드는 4개 쿼리를 병렬로 실행 → 요청 2개 동시 처리분
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 8),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 1),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "5m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		Cache: CacheConfig{
			Prefix:      getEnv("CACHE_PREFIX", "epsdash"),
			SnapshotTTL: getEnvAsDuration("CACHE_TTL_SNAPSHOT", "24h"),
			LiveTTL:     getEnvAsDuration("CACHE_TTL_LIVE", "1m"),
		},

		Portfolio: PortfolioConfig{
			DefaultWeight: getEnvAsFloat("PORTFOLIO_DEFAULT_WEIGHT", 0.2),
		},

		// 미국장 마감 후 스크리닝 배치가 끝난 뒤 (화~토 07:30)
		WarmSchedule: getEnv("WARM_SCHEDULE", "0 30 7 * * 2-6"),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		// Monitoring
		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	switch c.DataSource {
	case SourceREST:
		if c.Upstream.BaseURL == "" {
			return fmt.Errorf("UPSTREAM_BASE_URL is required when DATA_SOURCE=rest")
		}
	case SourcePostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when DATA_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("DATA_SOURCE must be one of: rest, postgres")
	}

	if c.Portfolio.DefaultWeight <= 0 || c.Portfolio.DefaultWeight > 1 {
		return fmt.Errorf("PORTFOLIO_DEFAULT_WEIGHT must be in (0, 1]")
	}

	return nil
}

// RedisAddr returns host:port for the Redis server
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
		"backend/.env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
