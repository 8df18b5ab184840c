package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	RedisAddr     string
	RedisPwd      string
	WebOrigin     string
	SessionTTL    time.Duration
	SweepInterval time.Duration
	Port          string
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func secondsEnv(k string, def time.Duration) time.Duration {
	if s := os.Getenv(k); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return def
}

func LoadConfig() Config {
	_ = godotenv.Load()
	return Config{
		RedisAddr:     getenv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:      os.Getenv("REDIS_PASSWORD"),
		WebOrigin:     getenv("WEB_ORIGIN", "http://localhost:5173"),
		SessionTTL:    secondsEnv("SESSION_TTL_SECONDS", 24*time.Hour),
		SweepInterval: secondsEnv("SWEEP_INTERVAL_SECONDS", 10*time.Minute),
		Port:          getenv("PORT", "3001"),
	}
}

// NewLogger builds the production zap logger; LOG_LEVEL=debug widens it.
func NewLogger() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	if os.Getenv("LOG_LEVEL") == "debug" {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, _ := cfg.Build()
	return l.Sugar()
}
