package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Server    ServerConfig
	Upstream  UpstreamConfig
	Poll      PollConfig
	Recording RecordingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string
	ReadTimeout        int
	WriteTimeout       int
	CORSAllowedOrigins string // comma-separated, or "*" for all (e.g. http://localhost:3000,http://localhost:3001)
}

// UpstreamConfig holds connection settings for the remote recording service.
type UpstreamConfig struct {
	BaseURL    string
	Token      string // bearer token sent on every upstream request
	TimeoutSec int
}

// PollConfig holds the recording-status poll cadence.
type PollConfig struct {
	IntervalSec int
}

// RecordingConfig holds defaults applied when a start request omits parameters.
type RecordingConfig struct {
	DurationSec        int
	DetectionThreshold float64
	AnalysisIterations int
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			ReadTimeout:        getEnvInt("READ_TIMEOUT_SEC", 30),
			WriteTimeout:       getEnvInt("WRITE_TIMEOUT_SEC", 30),
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001"),
		},
		Upstream: UpstreamConfig{
			BaseURL:    getEnv("UPSTREAM_BASE_URL", "http://localhost:5000"),
			Token:      getEnv("UPSTREAM_TOKEN", ""),
			TimeoutSec: getEnvInt("UPSTREAM_TIMEOUT_SEC", 15),
		},
		Poll: PollConfig{
			IntervalSec: getEnvInt("STATUS_POLL_INTERVAL_SEC", 5),
		},
		Recording: RecordingConfig{
			DurationSec:        getEnvInt("RECORDING_DURATION_SEC", 30),
			DetectionThreshold: getEnvFloat("RECORDING_DETECTION_THRESHOLD", 0.8),
			AnalysisIterations: getEnvInt("RECORDING_ANALYSIS_ITERATIONS", 1),
		},
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return fallback
}
