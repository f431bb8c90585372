package config

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            int
	LogLevel        string
	LogFormat       string
	LogFile         string
	DatabaseURL     string
	Seed            int64
	LeaderboardSize int
	Mute            bool
}

// Load reads configuration from the environment, after merging a .env file
// from the working directory when one exists. Variables already set in the
// environment win over .env entries.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to read .env", "error", err)
	}

	return &Config{
		Port:            getEnvInt("PORT", 8080),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		LogFile:         getEnv("LOG_FILE", ""),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		Seed:            int64(getEnvInt("SEED", 0)),
		LeaderboardSize: getEnvInt("LEADERBOARD_SIZE", 10),
		Mute:            getEnvBool("MUTE", false),
	}
}

// NewLogger builds the process logger from LogLevel and LogFormat.
func NewLogger(cfg *Config, w io.Writer) *slog.Logger {
	var h slog.Handler
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.LogLevel)}

	switch cfg.LogFormat {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}

	return slog.New(h)
}

// ParseLevel maps a LOG_LEVEL value to a slog level. Unknown values mean info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
