package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

type Config struct {
	Port           string
	CodeTTL        time.Duration
	Shards         int
	WriteRateLimit int
	AllowedOrigin  string
	MeetURL        string
	LandingURL     string
	InfoURL        string
	LogLevel       zerolog.Level
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadConfig reads .env, then the environment, then flags from args.
func LoadConfig(args []string) (*Config, error) {
	godotenv.Load()

	ttl, err := time.ParseDuration(getenv("CODE_TTL", "20m"))
	if err != nil {
		return nil, fmt.Errorf("CODE_TTL: %w", err)
	}
	shards, err := strconv.Atoi(getenv("SHARDS", "16"))
	if err != nil {
		return nil, fmt.Errorf("SHARDS: %w", err)
	}
	rateLimit, err := strconv.Atoi(getenv("WRITE_RATE_LIMIT", "30"))
	if err != nil {
		return nil, fmt.Errorf("WRITE_RATE_LIMIT: %w", err)
	}

	cfg := &Config{}
	var logLevel string
	flags := pflag.NewFlagSet("meet-url", pflag.ContinueOnError)
	flags.StringVar(&cfg.Port, "port", getenv("PORT", "8000"), "port to listen on")
	flags.DurationVar(&cfg.CodeTTL, "code-ttl", ttl, "how long a stored code stays live")
	flags.IntVar(&cfg.Shards, "shards", shards, "number of registry shards")
	flags.IntVar(&cfg.WriteRateLimit, "write-rate-limit", rateLimit, "code writes per minute per IP, 0 disables")
	flags.StringVar(&cfg.AllowedOrigin, "allowed-origin", getenv("ALLOWED_ORIGIN", "https://meet.google.com"), "origin allowed to call the API")
	flags.StringVar(&cfg.MeetURL, "meet-url", getenv("MEET_URL", "https://meet.google.com"), "base URL of meetings")
	flags.StringVar(&cfg.LandingURL, "landing-url", getenv("LANDING_URL", "https://meet.google.com/landing"), "redirect target for inactive rooms")
	flags.StringVar(&cfg.InfoURL, "info-url", getenv("INFO_URL", "https://github.com/71/meet-url"), "redirect target for /")
	flags.StringVar(&logLevel, "log-level", getenv("LOG_LEVEL", "info"), "zerolog level")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if cfg.CodeTTL <= 0 {
		return nil, fmt.Errorf("code ttl must be positive, got %v", cfg.CodeTTL)
	}
	if cfg.Shards < 1 {
		return nil, fmt.Errorf("shards must be at least 1, got %d", cfg.Shards)
	}
	if cfg.WriteRateLimit < 0 {
		return nil, fmt.Errorf("write rate limit must not be negative, got %d", cfg.WriteRateLimit)
	}
	cfg.LogLevel, err = zerolog.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoadConfig(args []string) *Config {
	cfg, err := LoadConfig(args)
	if err != nil {
		panic(err)
	}
	return cfg
}
