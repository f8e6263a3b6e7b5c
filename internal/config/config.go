package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	API  APIConfig
	Poll PollConfig
	Demo DemoConfig
}

type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests per second against the remote service
	RateBurst int
}

type PollConfig struct {
	Interval time.Duration
}

type DemoConfig struct {
	Offline bool   // run against the embedded stub instead of a real service
	TableQR string // QR payload the demo terminal binds to
}

func Load() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   getEnv("API_BASE_URL", "http://127.0.0.1:8080/api/v1"),
			Timeout:   getDuration("API_TIMEOUT", 10*time.Second),
			RateLimit: getFloat("API_RATE_LIMIT", 20),
			RateBurst: getInt("API_RATE_BURST", 10),
		},
		Poll: PollConfig{
			Interval: getDuration("POLL_INTERVAL", 30*time.Second),
		},
		Demo: DemoConfig{
			Offline: getBool("OFFLINE", false),
			TableQR: getEnv("TABLE_QR", "TBL-0001"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
