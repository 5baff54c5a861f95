package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	// Spelling dictionaries: one subdirectory per language.
	DictionariesDir string

	// Published-name sources, in precedence order.
	NameServiceURL string
	NameServiceKey string
	NameDB         string
	NameListURL    string
	NameCacheFile  string

	// Defaults checker
	WarnRedundantDefaults bool

	// Statement images
	MaxImageKB int64

	// Audit pipeline
	WorkerCount int
	RunTTL      time.Duration

	// Serve mode
	Port   string
	APIKey string
}

func Load() Config {
	cfg := Config{
		DictionariesDir: envOr("DICTIONARIES_DIR", defaultDictionariesDir()),

		NameServiceURL: os.Getenv("NAME_SERVICE_URL"),
		NameServiceKey: os.Getenv("NAME_SERVICE_KEY"),
		NameDB:         os.Getenv("NAME_DB"),
		NameListURL:    os.Getenv("NAME_LIST_URL"),
		NameCacheFile:  os.Getenv("NAME_CACHE_FILE"),

		WarnRedundantDefaults: envBool("WARN_REDUNDANT_DEFAULTS", true),

		MaxImageKB: envInt64("MAX_IMAGE_KB", 200),

		WorkerCount: envInt("WORKER_COUNT", 1),
		RunTTL:      envDuration("RUN_TTL", 1*time.Hour),

		Port:   envOr("PORT", "8091"),
		APIKey: os.Getenv("PROBLEMCHECK_API_KEY"),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 1
	}
	if cfg.MaxImageKB <= 0 {
		cfg.MaxImageKB = 200
	}
	if cfg.RunTTL <= 0 {
		cfg.RunTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DictionariesDir == "" {
		return fmt.Errorf("DICTIONARIES_DIR is required")
	}
	return nil
}

// ValidateServe checks the extra settings serve mode needs.
func (c Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.APIKey == "" {
		return fmt.Errorf("PROBLEMCHECK_API_KEY is required")
	}
	return nil
}

func defaultDictionariesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "etc", "dictionaries")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
