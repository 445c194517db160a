package config

const (
	defaultConfigPath       = "~/.config/podcasts/config.toml"
	defaultDataDir          = "~/.local/share/podcasts"
	defaultCatalogName      = "podcast_list.json"
	defaultIDCacheName      = "id_cache.json"
	defaultSettingsName     = "config.json"
	defaultYouTubeBaseURL   = "https://youtube.googleapis.com/"
	defaultCaptionLanguage  = "en"
	defaultTimedTextURL     = "https://www.youtube.com/api/timedtext"
	defaultVimeoBaseURL     = "https://vimeo.com"
	defaultVimeoUserAgent   = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	defaultHTTPTimeout      = 30
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogRetentionDays = 30

	// PolicyResetAll clears the whole identifier cache after a cleanup.
	PolicyResetAll = "reset_all"
	// PolicyDecrementOne releases only the removed episode's identifier.
	PolicyDecrementOne = "decrement_one"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		YouTube: YouTube{
			BaseURL:         defaultYouTubeBaseURL,
			CaptionLanguage: defaultCaptionLanguage,
			TimedTextURL:    defaultTimedTextURL,
		},
		Vimeo: Vimeo{
			UserAgent: defaultVimeoUserAgent,
			BaseURL:   defaultVimeoBaseURL,
		},
		HTTP: HTTP{
			TimeoutSeconds: defaultHTTPTimeout,
		},
		Catalog: Catalog{
			IDCleanupPolicy: PolicyResetAll,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
