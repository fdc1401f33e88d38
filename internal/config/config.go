package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"sectiontoc/internal/service"
)

// Config holds all configuration for the application.
type Config struct {
	DBPath    string
	APIPort   string
	LogLevel  slog.Level
	LogFormat string

	// ContainerTypes is a comma-separated list of container type tags.
	ContainerTypes string
	// ContainerRegistryPath optionally points to a YAML container registry.
	ContainerRegistryPath string

	ContentDir          string
	ImportContainerType string

	TocMode              string
	TocIncludeColPos     string
	TocExcludeColPos     string
	TocMaxDepth          string
	TocUseAnchorOverride bool
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the rest.
// If a .env file exists in the current directory or one of its parents, it is loaded.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		DBPath:                getEnv("DB_PATH", "./data/sectiontoc.db"),
		APIPort:               getEnv("API_PORT", "9000"),
		LogFormat:             strings.ToLower(getEnv("LOG_FORMAT", "text")),
		ContainerTypes:        getEnv("CONTAINER_TYPES", ""),
		ContainerRegistryPath: getEnv("CONTAINER_REGISTRY_PATH", ""),
		ContentDir:            getEnv("CONTENT_DIR", ""),
		ImportContainerType:   getEnv("IMPORT_CONTAINER_TYPE", "section_container"),
		TocMode:               getEnv("TOC_MODE", ""),
		TocIncludeColPos:      getEnv("TOC_INCLUDE_COLPOS", ""),
		TocExcludeColPos:      getEnv("TOC_EXCLUDE_COLPOS", ""),
		TocMaxDepth:           getEnv("TOC_MAX_DEPTH", ""),
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if _, err := service.ParseMaxDepth(cfg.TocMaxDepth); err != nil {
		return nil, fmt.Errorf("TOC_MAX_DEPTH must be a valid integer: %w", err)
	}

	if v := getEnv("TOC_USE_ANCHOR_OVERRIDE", ""); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("TOC_USE_ANCHOR_OVERRIDE must be a boolean: %w", err)
		}
		cfg.TocUseAnchorOverride = b
	}

	if cfg.ContentDir != "" {
		info, err := os.Stat(cfg.ContentDir)
		if err != nil {
			return nil, fmt.Errorf("CONTENT_DIR is not accessible: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("CONTENT_DIR must be a directory: %s", cfg.ContentDir)
		}
	}

	// Create the data directory if it doesn't exist
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// TocDefaults returns the configured table of contents defaults.
func (c *Config) TocDefaults() service.Defaults {
	return service.Defaults{
		Mode:              c.TocMode,
		IncludeColPos:     c.TocIncludeColPos,
		ExcludeColPos:     c.TocExcludeColPos,
		MaxDepth:          c.TocMaxDepth,
		UseAnchorOverride: c.TocUseAnchorOverride,
	}
}

// NewLogger builds the process logger from the configured level and format.
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	var handler slog.Handler
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// loadDotEnv loads .env from the working directory, then from the nearest parent that has one.
func loadDotEnv() {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ { // Limit search depth
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return // Reached filesystem root
		}
		dir = parent
	}
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}
	return level, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
