package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultPreferredModels is the priority order used when picking a Gemini model.
var DefaultPreferredModels = []string{
	"gemini-2.5-flash",
	"gemini-2.0-flash",
	"gemini-1.5-flash-latest",
}

type Config struct {
	Port string

	// Credential file. Values in it never override the process environment.
	EnvFile string

	// Gemini
	APIKey          string
	DefaultModel    string
	PreferredModels []string

	// Upload limits
	MaxUploadBytes int64

	// LLM latency stats window
	StatsWindow time.Duration
}

// Load reads the credential file (if present) into the environment and then
// builds a Config from environment variables.
func Load() Config {
	envFile := envOr("ENV_FILE", ".env")
	if err := loadEnvFile(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
	}

	cfg := Config{
		Port:    envOr("PORT", "5000"),
		EnvFile: envFile,

		APIKey:          strings.TrimSpace(os.Getenv("API_KEY")),
		DefaultModel:    envOr("GEMINI_DEFAULT_MODEL", "gemini-1.5-flash-latest"),
		PreferredModels: envList("GEMINI_PREFERRED_MODELS", DefaultPreferredModels),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY not found in %s or environment", c.EnvFile)
	}
	return nil
}

// loadEnvFile is a no-op when the file does not exist.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
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

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return append([]string(nil), fallback...)
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), fallback...)
	}
	return out
}
