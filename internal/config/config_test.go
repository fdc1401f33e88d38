package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

var envVars = []string{
	"DB_PATH", "API_PORT", "LOG_LEVEL", "LOG_FORMAT",
	"CONTAINER_TYPES", "CONTAINER_REGISTRY_PATH", "CONTENT_DIR", "IMPORT_CONTAINER_TYPE",
	"TOC_MODE", "TOC_INCLUDE_COLPOS", "TOC_EXCLUDE_COLPOS", "TOC_MAX_DEPTH", "TOC_USE_ANCHOR_OVERRIDE",
}

// isolate clears the configuration environment and moves into a directory without a .env file.
func isolate(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "data", "toc.db"))
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name:     "default values",
			setupEnv: func(t *testing.T) {},
			checkConfig: func(cfg *Config) bool {
				return cfg.APIPort == "9000" &&
					cfg.LogLevel == slog.LevelInfo &&
					cfg.LogFormat == "text" &&
					cfg.ImportContainerType == "section_container" &&
					cfg.ContainerTypes == "" &&
					cfg.TocMaxDepth == "" &&
					!cfg.TocUseAnchorOverride
			},
		},
		{
			name: "custom values",
			setupEnv: func(t *testing.T) {
				t.Setenv("API_PORT", "8080")
				t.Setenv("LOG_LEVEL", "debug")
				t.Setenv("LOG_FORMAT", "JSON")
				t.Setenv("CONTAINER_TYPES", "grid,tabs")
				t.Setenv("CONTENT_DIR", t.TempDir())
				t.Setenv("TOC_MODE", "all")
				t.Setenv("TOC_INCLUDE_COLPOS", "0,1")
				t.Setenv("TOC_MAX_DEPTH", "3")
				t.Setenv("TOC_USE_ANCHOR_OVERRIDE", "true")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.APIPort == "8080" &&
					cfg.LogLevel == slog.LevelDebug &&
					cfg.LogFormat == "json" &&
					cfg.ContainerTypes == "grid,tabs" &&
					cfg.ContentDir != "" &&
					cfg.TocMode == "all" &&
					cfg.TocIncludeColPos == "0,1" &&
					cfg.TocMaxDepth == "3" &&
					cfg.TocUseAnchorOverride
			},
		},
		{
			name:     "invalid LOG_LEVEL",
			setupEnv: func(t *testing.T) { t.Setenv("LOG_LEVEL", "loud") },
			wantErr:  true,
		},
		{
			name:     "invalid LOG_FORMAT",
			setupEnv: func(t *testing.T) { t.Setenv("LOG_FORMAT", "xml") },
			wantErr:  true,
		},
		{
			name:     "non-integer TOC_MAX_DEPTH",
			setupEnv: func(t *testing.T) { t.Setenv("TOC_MAX_DEPTH", "deep") },
			wantErr:  true,
		},
		{
			name:     "non-bool TOC_USE_ANCHOR_OVERRIDE",
			setupEnv: func(t *testing.T) { t.Setenv("TOC_USE_ANCHOR_OVERRIDE", "sometimes") },
			wantErr:  true,
		},
		{
			name: "missing CONTENT_DIR",
			setupEnv: func(t *testing.T) {
				t.Setenv("CONTENT_DIR", filepath.Join(t.TempDir(), "missing"))
			},
			wantErr: true,
		},
		{
			name: "CONTENT_DIR is a file",
			setupEnv: func(t *testing.T) {
				path := filepath.Join(t.TempDir(), "file.md")
				if err := os.WriteFile(path, []byte("# x"), 0o644); err != nil {
					t.Fatal(err)
				}
				t.Setenv("CONTENT_DIR", path)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			tt.setupEnv(t)

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			if tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config validation failed: %+v", cfg)
			}
		})
	}
}

func TestLoad_CreatesDataDirectory(t *testing.T) {
	isolate(t)
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "toc.db")
	t.Setenv("DB_PATH", dbPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if _, err := os.Stat(filepath.Dir(dbPath)); os.IsNotExist(err) {
		t.Errorf("Load() should create data directory: %v", err)
	}
	if cfg.DBPath != dbPath {
		t.Errorf("Load() DBPath = %v, want %v", cfg.DBPath, dbPath)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	isolate(t)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(wd, ".env"), []byte("TOC_MODE=sectionIndexOnly\nAPI_PORT=7000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("API_PORT", "7100")
	// godotenv skips variables that are present, even when empty.
	_ = os.Unsetenv("TOC_MODE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TocMode != "sectionIndexOnly" {
		t.Errorf("TocMode = %q, want value from .env", cfg.TocMode)
	}
	if cfg.APIPort != "7100" {
		t.Errorf("APIPort = %q, environment should win over .env", cfg.APIPort)
	}
}

func TestConfig_TocDefaults(t *testing.T) {
	cfg := &Config{
		TocMode:              "all",
		TocIncludeColPos:     "0",
		TocExcludeColPos:     "2",
		TocMaxDepth:          "4",
		TocUseAnchorOverride: true,
	}

	d := cfg.TocDefaults()
	if d.Mode != "all" || d.IncludeColPos != "0" || d.ExcludeColPos != "2" || d.MaxDepth != "4" || !d.UseAnchorOverride {
		t.Errorf("TocDefaults() = %+v", d)
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue string
		want         string
	}{
		{name: "env var set", value: "set-value", defaultValue: "default", want: "set-value"},
		{name: "empty env var uses default", value: "", defaultValue: "default", want: "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_ENV_VAR", tt.value)
			got := getEnv("TEST_ENV_VAR", tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv(%q, %q) = %q, want %q", "TEST_ENV_VAR", tt.defaultValue, got, tt.want)
			}
		})
	}
}
