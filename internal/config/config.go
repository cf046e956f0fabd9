package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config はクライアント全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Backend
	BaseURL     string
	HTTPTimeout time.Duration

	// Pagination
	PageSize int

	// Rate Limit（バックエンドへの送信レート）
	RateLimitRPS int

	// Bid aggregate
	MaxConcurrentBidFetch int

	// Item image
	ImageMaxSize int64
	ImageTimeout time.Duration

	// Metrics（空文字列の場合はリスナーを起動しない）
	MetricsPort string
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.BaseURL = os.Getenv("YARD_BASE_URL")
	if cfg.BaseURL == "" {
		missing = append(missing, "YARD_BASE_URL")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.HTTPTimeout = getEnvDuration("HTTP_TIMEOUT", 10*time.Second)
	cfg.PageSize = getEnvInt("PAGE_SIZE", 10)
	cfg.RateLimitRPS = getEnvInt("RATE_LIMIT_RPS", 20)
	cfg.MaxConcurrentBidFetch = getEnvInt("MAX_CONCURRENT_BID_FETCH", 5)
	cfg.ImageMaxSize = getEnvInt64("IMAGE_MAX_SIZE", 2097152)
	cfg.ImageTimeout = getEnvDuration("IMAGE_TIMEOUT", 5*time.Second)
	cfg.MetricsPort = getEnvString("METRICS_PORT", "")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvInt64(key string, defaultVal int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
