package config

import (
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Server
	ServerPort string

	// CORS
	// 開発時は"*"（全オリジン許可）。外部公開前に必ず絞り込むこと。
	CORSAllowedOrigin string

	// Fetch
	FetchTimeout time.Duration
	FetchMaxSize int64
	UserAgent    string

	// 5chのサーバーはクライアント識別用のUser-Agentを要求する
	FivechUserAgent string

	// Rate Limit（req/min/クライアントIP）
	RateLimitGeneral int
}

// Load は環境変数からConfigを読み込む。
// すべての項目にデフォルト値があり、未設定でも起動できる。
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:        getEnvString("SERVER_PORT", "8000"),
		CORSAllowedOrigin: getEnvString("CORS_ALLOWED_ORIGIN", "*"),
		FetchTimeout:      getEnvDuration("FETCH_TIMEOUT", 30*time.Second),
		FetchMaxSize:      getEnvInt64("FETCH_MAX_SIZE", 5*1024*1024),
		UserAgent:         getEnvString("USER_AGENT", "Esuna/0.1 Accessible Reader"),
		FivechUserAgent:   getEnvString("FIVECH_USER_AGENT", "Mozilla/5.0 (compatible; EsunaBot/0.1)"),
		RateLimitGeneral:  getEnvInt("RATE_LIMIT_GENERAL", 120),
	}
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
