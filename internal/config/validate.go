package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/northkevin/podcasts-cli/internal/language"
)

// Validate ensures the configuration is usable.
//
// The YouTube API key is deliberately not required here: it is only needed
// when a YouTube episode is fetched, and the fetcher reports its absence.
func (c *Config) Validate() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateURLs(); err != nil {
		return err
	}
	if language.Normalize(c.YouTube.CaptionLanguage) == "" {
		return fmt.Errorf("youtube.caption_language: unrecognized language %q", c.YouTube.CaptionLanguage)
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCatalog() error {
	switch c.Catalog.IDCleanupPolicy {
	case PolicyResetAll, PolicyDecrementOne:
		return nil
	default:
		return fmt.Errorf("catalog.id_cleanup_policy must be %q or %q, got %q", PolicyResetAll, PolicyDecrementOne, c.Catalog.IDCleanupPolicy)
	}
}

func (c *Config) validateURLs() error {
	for key, value := range map[string]string{
		"youtube.base_url":      c.YouTube.BaseURL,
		"youtube.timedtext_url": c.YouTube.TimedTextURL,
		"vimeo.base_url":        c.Vimeo.BaseURL,
	} {
		parsed, err := url.Parse(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("%s must be an http(s) URL, got %q", key, value)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	if c.Logging.RetentionDays < 0 {
		return fmt.Errorf("logging.retention_days must be >= 0; got %d", c.Logging.RetentionDays)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}
