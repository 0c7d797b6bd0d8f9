package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	DatabaseURL string

	// FDC API
	FDCAPIKey       string
	FDCBaseURL      string // 空文字列の場合はクライアント既定の公式エンドポイント
	FDCTimeout      time.Duration
	FDCMaxAttempts  int
	FDCRateLimitRPS float64

	// Ollama
	OllamaURL     string
	OllamaModel   string
	OllamaTimeout time.Duration

	// Rate Limit（req/min）
	RateLimitGeneral  int
	RateLimitFeedback int

	// Server
	ServerPort      string
	ShutdownTimeout time.Duration

	// CORS
	CORSAllowedOrigin string
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.FDCAPIKey = os.Getenv("FDC_API_KEY")
	if cfg.FDCAPIKey == "" {
		missing = append(missing, "FDC_API_KEY")
	}

	cfg.OllamaModel = os.Getenv("OLLAMA_MODEL")
	if cfg.OllamaModel == "" {
		missing = append(missing, "OLLAMA_MODEL")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.DatabaseURL = getEnvString("DATABASE_URL", "sqlite://mealtrack.db")
	cfg.FDCBaseURL = getEnvString("FDC_BASE_URL", "")
	cfg.FDCTimeout = getEnvDuration("FDC_TIMEOUT", 10*time.Second)
	cfg.FDCMaxAttempts = getEnvInt("FDC_MAX_ATTEMPTS", 3)
	cfg.FDCRateLimitRPS = getEnvFloat("FDC_RATE_LIMIT_RPS", 2)
	cfg.OllamaURL = getEnvString("OLLAMA_URL", "http://localhost:11434")
	cfg.OllamaTimeout = getEnvDuration("OLLAMA_TIMEOUT", 30*time.Second)
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitFeedback = getEnvInt("RATE_LIMIT_FEEDBACK", 10)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	return cfg, nil
}

// Addr はHTTPサーバーのリッスンアドレスを返す。
func (c *Config) Addr() string {
	return ":" + c.ServerPort
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

func getEnvFloat(key string, defaultVal float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultVal
	}
	return f
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
