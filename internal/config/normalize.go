package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/northkevin/podcasts-cli/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeYouTube()
	c.normalizeVimeo()
	if c.HTTP.TimeoutSeconds <= 0 {
		c.HTTP.TimeoutSeconds = defaultHTTPTimeout
	}
	c.Catalog.IDCleanupPolicy = strings.ToLower(strings.TrimSpace(c.Catalog.IDCleanupPolicy))
	if c.Catalog.IDCleanupPolicy == "" {
		c.Catalog.IDCleanupPolicy = PolicyResetAll
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.CatalogFile, err = c.dataFile(c.Paths.CatalogFile, defaultCatalogName); err != nil {
		return fmt.Errorf("paths.catalog_file: %w", err)
	}
	if c.Paths.IDCacheFile, err = c.dataFile(c.Paths.IDCacheFile, defaultIDCacheName); err != nil {
		return fmt.Errorf("paths.id_cache_file: %w", err)
	}
	if c.Paths.SettingsFile, err = c.dataFile(c.Paths.SettingsFile, defaultSettingsName); err != nil {
		return fmt.Errorf("paths.settings_file: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

// dataFile resolves a state file path, defaulting to name inside the data directory.
func (c *Config) dataFile(value, name string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return filepath.Join(c.Paths.DataDir, name), nil
	}
	return expandPath(value)
}

func (c *Config) normalizeYouTube() {
	c.YouTube.APIKey = strings.TrimSpace(c.YouTube.APIKey)
	if c.YouTube.APIKey == "" {
		if value, ok := os.LookupEnv("YOUTUBE_API_KEY"); ok {
			c.YouTube.APIKey = strings.TrimSpace(value)
		}
	}
	c.YouTube.BaseURL = strings.TrimSpace(c.YouTube.BaseURL)
	if c.YouTube.BaseURL == "" {
		c.YouTube.BaseURL = defaultYouTubeBaseURL
	}
	if !strings.HasSuffix(c.YouTube.BaseURL, "/") {
		c.YouTube.BaseURL += "/"
	}
	c.YouTube.CaptionLanguage = strings.ToLower(strings.TrimSpace(c.YouTube.CaptionLanguage))
	if c.YouTube.CaptionLanguage == "" {
		c.YouTube.CaptionLanguage = defaultCaptionLanguage
	}
	if code := language.Normalize(c.YouTube.CaptionLanguage); code != "" {
		c.YouTube.CaptionLanguage = code
	}
	c.YouTube.TimedTextURL = strings.TrimSpace(c.YouTube.TimedTextURL)
	if c.YouTube.TimedTextURL == "" {
		c.YouTube.TimedTextURL = defaultTimedTextURL
	}
}

func (c *Config) normalizeVimeo() {
	c.Vimeo.UserAgent = strings.TrimSpace(c.Vimeo.UserAgent)
	if c.Vimeo.UserAgent == "" {
		c.Vimeo.UserAgent = defaultVimeoUserAgent
	}
	c.Vimeo.BaseURL = strings.TrimRight(strings.TrimSpace(c.Vimeo.BaseURL), "/")
	if c.Vimeo.BaseURL == "" {
		c.Vimeo.BaseURL = defaultVimeoBaseURL
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
