package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/terraincognita07/nibble/internal/db"
	"github.com/terraincognita07/nibble/internal/storage"
)

const (
	driverSQLite = "sqlite"
	driverBadger = "badger"
	driverMemory = "memory"
)

type config struct {
	DBPath       string
	Driver       string
	Port         string
	SecretKey    string
	Language     string
	WebDir       string
	LogLevel     string
	CookieSecure bool
	Location     *time.Location
}

// loadConfig reads the environment, after an optional .env file in the working directory.
func loadConfig() config {
	_ = godotenv.Load()

	return config{
		DBPath:       getEnv("NIBBLE_DB_PATH", ""),
		Driver:       strings.ToLower(getEnv("NIBBLE_DRIVER", driverSQLite)),
		Port:         getEnv("NIBBLE_PORT", "8080"),
		SecretKey:    getEnv("NIBBLE_SECRET_KEY", ""),
		Language:     getEnv("NIBBLE_LANGUAGE", "en"),
		WebDir:       getEnv("NIBBLE_WEB_DIR", filepath.Join("web", "static")),
		LogLevel:     getEnv("NIBBLE_LOG_LEVEL", "info"),
		CookieSecure: parseBoolEnv(getEnv("NIBBLE_COOKIE_SECURE", "false")),
		Location:     mustLoadLocation(getEnv("TZ", "Local")),
	}
}

func resolvePort(raw string) (string, error) {
	port, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid port %q", raw)
	}
	return strconv.Itoa(port), nil
}

// resolveDBPath returns the explicit path, or a driver-specific default under the user config dir.
func resolveDBPath(explicit string, driver string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	if driver == driverBadger {
		return filepath.Join(base, "nibble", "badger"), nil
	}
	return filepath.Join(base, "nibble", "nibble.db"), nil
}

// openStore opens the configured backend. The returned closer releases it.
func openStore(cfg config, logger *slog.Logger) (*storage.Store, func() error, error) {
	switch cfg.Driver {
	case driverMemory:
		return storage.New(storage.NewMemoryBackend(), logger), func() error { return nil }, nil
	case driverBadger:
		path, err := resolveDBPath(cfg.DBPath, cfg.Driver)
		if err != nil {
			return nil, nil, err
		}
		backend, err := db.OpenBadger(db.BadgerConfig{Path: path, SyncWrites: true, Logger: logger})
		if err != nil {
			return nil, nil, err
		}
		return storage.New(backend, logger), backend.Close, nil
	case driverSQLite, "":
		path, err := resolveDBPath(cfg.DBPath, driverSQLite)
		if err != nil {
			return nil, nil, err
		}
		backend, err := db.OpenKVBackend(path, logger)
		if err != nil {
			return nil, nil, err
		}
		return storage.New(backend, logger), backend.Close, nil
	default:
		return nil, nil, errors.New("unknown driver " + strconv.Quote(cfg.Driver))
	}
}

func newLogger(out io.Writer, level string) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: logLevel}))
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		slog.Warn("invalid TZ, falling back to UTC", "tz", name)
		return time.UTC
	}
	return location
}

func parseBoolEnv(raw string) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && value
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
