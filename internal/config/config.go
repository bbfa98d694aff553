package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultProfilesDir is where profiles live when LESSPASS_PROFILES_DIR is unset.
const DefaultProfilesDir = "~/.lesspass"

type Config struct {
	ProfilesDir string
	LogLevel    slog.Level
}

func Load() Config {
	return Config{
		ProfilesDir: expandHome(getEnv("LESSPASS_PROFILES_DIR", DefaultProfilesDir)),
		LogLevel:    parseLevel(getEnv("LESSPASS_LOG_LEVEL", "warn")),
	}
}

// expandHome replaces a leading "~" with the invoking user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		slog.Warn("cannot resolve home directory", "error", err)
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
