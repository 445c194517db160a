package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/northkevin/podcasts-cli/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains data directory and state file locations.
type Paths struct {
	DataDir      string `toml:"data_dir"`
	CatalogFile  string `toml:"catalog_file"`  // Default: <data_dir>/podcast_list.json
	IDCacheFile  string `toml:"id_cache_file"` // Default: <data_dir>/id_cache.json
	SettingsFile string `toml:"settings_file"` // Default: <data_dir>/config.json
	LogDir       string `toml:"log_dir"`       // Empty disables file logging
}

// YouTube contains configuration for the YouTube Data API and caption downloads.
type YouTube struct {
	APIKey          string `toml:"api_key"`
	BaseURL         string `toml:"base_url"`
	CaptionLanguage string `toml:"caption_language"`
	TimedTextURL    string `toml:"timedtext_url"`
}

// Vimeo contains configuration for scraping Vimeo pages.
type Vimeo struct {
	UserAgent string `toml:"user_agent"`
	BaseURL   string `toml:"base_url"`
}

// HTTP contains shared HTTP client settings.
type HTTP struct {
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Catalog contains catalog bookkeeping policy.
type Catalog struct {
	// IDCleanupPolicy selects what cleanup does to the identifier cache:
	// "reset_all" clears every counter, "decrement_one" releases only the
	// removed episode's identifier when it was the latest of its base.
	IDCleanupPolicy string `toml:"id_cleanup_policy"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"` // Zero keeps run logs forever
}

// Config encapsulates all installation-level configuration values.
//
// Output directory preferences (the Obsidian vault layout) live in the JSON
// settings file managed by the config command; see Settings.
type Config struct {
	Paths   Paths   `toml:"paths"`
	YouTube YouTube `toml:"youtube"`
	Vimeo   Vimeo   `toml:"vimeo"`
	HTTP    HTTP    `toml:"http"`
	Catalog Catalog `toml:"catalog"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("podcasts.toml")
	if err != nil {
		return "", false, err
	}

	if fileutil.Exists(defaultPath) {
		return defaultPath, true, nil
	}
	if fileutil.Exists(projectPath) {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data directory and, when file logging is
// enabled, the log directory.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.DataDir}
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		dirs = append(dirs, c.Paths.LogDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HTTPTimeout returns the per-request timeout for outbound HTTP calls.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
