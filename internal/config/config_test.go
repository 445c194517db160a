package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/northkevin/podcasts-cli/internal/config"
)

func TestLoadDefaultConfigUsesEnvAPIKeyAndExpandsPaths(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "test-key")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "podcasts")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.CatalogFile != filepath.Join(wantData, "podcast_list.json") {
		t.Fatalf("unexpected catalog file: %q", cfg.Paths.CatalogFile)
	}
	if cfg.Paths.IDCacheFile != filepath.Join(wantData, "id_cache.json") {
		t.Fatalf("unexpected id cache file: %q", cfg.Paths.IDCacheFile)
	}
	if cfg.Paths.SettingsFile != filepath.Join(wantData, "config.json") {
		t.Fatalf("unexpected settings file: %q", cfg.Paths.SettingsFile)
	}
	if cfg.Paths.LogDir != "" {
		t.Fatalf("expected file logging disabled by default, got %q", cfg.Paths.LogDir)
	}
	if cfg.YouTube.APIKey != "test-key" {
		t.Fatalf("expected YouTube key from env, got %q", cfg.YouTube.APIKey)
	}
	if cfg.Catalog.IDCleanupPolicy != config.PolicyResetAll {
		t.Fatalf("expected reset_all policy by default, got %q", cfg.Catalog.IDCleanupPolicy)
	}
	if cfg.HTTPTimeout().Seconds() != 30 {
		t.Fatalf("unexpected http timeout: %s", cfg.HTTPTimeout())
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomConfigOverridesDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("YOUTUBE_API_KEY", "from-env")

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_dir = "~/podcast-data"
catalog_file = "~/elsewhere/catalog.json"
log_dir = "~/podcast-data/logs"

[youtube]
api_key = "from-file"
caption_language = "German"

[http]
timeout_seconds = 5

[catalog]
id_cleanup_policy = "Decrement_One"

[logging]
format = "JSON"
level = "debug"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}

	if cfg.Paths.DataDir != filepath.Join(tempHome, "podcast-data") {
		t.Fatalf("unexpected data dir: %q", cfg.Paths.DataDir)
	}
	if cfg.Paths.CatalogFile != filepath.Join(tempHome, "elsewhere", "catalog.json") {
		t.Fatalf("catalog file not redirected: %q", cfg.Paths.CatalogFile)
	}
	if cfg.Paths.IDCacheFile != filepath.Join(tempHome, "podcast-data", "id_cache.json") {
		t.Fatalf("unexpected id cache file: %q", cfg.Paths.IDCacheFile)
	}
	if cfg.YouTube.APIKey != "from-file" {
		t.Fatalf("file api key should win over env, got %q", cfg.YouTube.APIKey)
	}
	if cfg.YouTube.CaptionLanguage != "de" {
		t.Fatalf("expected normalized caption language, got %q", cfg.YouTube.CaptionLanguage)
	}
	if cfg.HTTP.TimeoutSeconds != 5 {
		t.Fatalf("unexpected timeout: %d", cfg.HTTP.TimeoutSeconds)
	}
	if cfg.Catalog.IDCleanupPolicy != config.PolicyDecrementOne {
		t.Fatalf("unexpected policy: %q", cfg.Catalog.IDCleanupPolicy)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q to exist", dir)
		}
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "unknown cleanup policy",
			content: "[catalog]\nid_cleanup_policy = \"forget\"\n",
			want:    "catalog.id_cleanup_policy",
		},
		{
			name:    "non-http endpoint",
			content: "[youtube]\nbase_url = \"ftp://example.com\"\n",
			want:    "youtube.base_url",
		},
		{
			name:    "unknown log level",
			content: "[logging]\nlevel = \"chatty\"\n",
			want:    "logging.level",
		},
		{
			name:    "unknown caption language",
			content: "[youtube]\ncaption_language = \"not a language\"\n",
			want:    "youtube.caption_language",
		},
		{
			name:    "malformed toml",
			content: "[paths\n",
			want:    "parse config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestCreateSampleProducesLoadableConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sample config is not valid TOML: %v", err)
	}
	if decoded.Catalog.IDCleanupPolicy != config.PolicyResetAll {
		t.Fatalf("sample should document reset_all policy, got %q", decoded.Catalog.IDCleanupPolicy)
	}

	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("Load(sample) returned error: %v", err)
	}
}

func TestLoadFallsBackToProjectConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	project := t.TempDir()
	t.Chdir(project)

	// A directory with the project file name is not a config file.
	if err := os.Mkdir(filepath.Join(project, "podcasts.toml"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, _, exists, err := config.Load(""); err != nil || exists {
		t.Fatalf("Load with directory = exists %v, err %v; want false, nil", exists, err)
	}
	if err := os.Remove(filepath.Join(project, "podcasts.toml")); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if err := os.WriteFile(filepath.Join(project, "podcasts.toml"), []byte("[logging]\nlevel = \"debug\"\n"), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}
	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || filepath.Base(resolved) != "podcasts.toml" {
		t.Fatalf("expected project config, got %q (exists=%v)", resolved, exists)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("project config not applied: %+v", cfg.Logging)
	}
}
