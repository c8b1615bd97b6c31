// Package config loads the process environment and per-request BuildConfig
// files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// App holds process-level settings read from the environment.
type App struct {
	Env string
	// DBPath is the build history database. ":memory:" keeps history for
	// the lifetime of the process only.
	DBPath  string
	History bool
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first when present.
func Load() (*App, error) {
	_ = godotenv.Load()

	dbPath := os.Getenv("SPELLTREE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".spelltree", "history.db")
	}

	return &App{
		Env:     getEnv("SPELLTREE_ENV", "development"),
		DBPath:  dbPath,
		History: getEnvBool("SPELLTREE_HISTORY", true),
	}, nil
}

// IsProduction reports whether the process runs with production logging.
func (a *App) IsProduction() bool {
	return a.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
