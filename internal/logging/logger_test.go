package logging_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/northkevin/podcasts-cli/internal/config"
	"github.com/northkevin/podcasts-cli/internal/logging"
)

func TestConsoleLoggerWritesComponentPrefix(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	noColor := false

	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
		Color:       &noColor,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "catalog").Info("saved catalog", logging.Int("entries", 3), logging.String("path", "/tmp/a b"))
	logger.Debug("hidden")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := strings.TrimSpace(string(content))
	if strings.Contains(line, "hidden") {
		t.Fatalf("debug line emitted at info level: %q", line)
	}
	if !strings.Contains(line, "INFO  catalog: saved catalog entries=3") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, `path="/tmp/a b"`) {
		t.Fatalf("expected quoted path value, got %q", line)
	}
	if strings.Contains(line, "\x1b[") {
		t.Fatalf("expected no ANSI escapes, got %q", line)
	}
}

func TestJSONLoggerRenamesKeys(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")

	logger, err := logging.New(logging.Options{Format: "json", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Warn("careful", logging.String(logging.FieldEpisodeID, "24_01_01_youtube_jane_doe_01"))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(content), &payload); err != nil {
		t.Fatalf("decode json line: %v", err)
	}
	if payload["level"] != "warn" {
		t.Fatalf("expected lower-case level, got %v", payload["level"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", payload)
	}
	if payload["episode_id"] != "24_01_01_youtube_jane_doe_01" {
		t.Fatalf("unexpected episode_id: %v", payload["episode_id"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for input, want := range cases {
		if got := logging.ParseLevel(input); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestNewFromConfigWritesRunLog(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Logging.Level = "error"

	stale := filepath.Join(cfg.Paths.LogDir, "podcasts-20000101T000000Z.log")
	if err := os.WriteFile(stale, []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("write stale log: %v", err)
	}
	old := time.Now().AddDate(0, 0, -90)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	run, err := logging.NewFromConfig(&cfg, logging.RunOptions{
		RunID: "0123456789abcdef",
		Now:   func() time.Time { return fixed },
	})
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	t.Cleanup(func() { _ = run.Close() })

	if want := filepath.Join(cfg.Paths.LogDir, "podcasts-20240102T030405Z-01234567.log"); run.LogPath != want {
		t.Fatalf("LogPath = %q, want %q", run.LogPath, want)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("expected stale run log to be pruned, stat err=%v", err)
	}

	// The run log records debug lines even though the console level is error.
	run.Logger.Debug("probe", logging.String("k", "v"))
	if err := run.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	file, err := os.Open(run.LogPath)
	if err != nil {
		t.Fatalf("open run log: %v", err)
	}
	defer file.Close()

	found := false
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var payload map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &payload); err != nil {
			t.Fatalf("decode run log line: %v", err)
		}
		if payload["msg"] == "probe" {
			found = true
			if payload[logging.FieldRunID] != "0123456789abcdef" {
				t.Fatalf("expected run_id on run log line, got %v", payload)
			}
		}
	}
	if !found {
		t.Fatal("expected probe line in run log")
	}
}

func TestNewFromConfigWithoutLogDir(t *testing.T) {
	cfg := config.Default()
	run, err := logging.NewFromConfig(&cfg, logging.RunOptions{Debug: true})
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	if run.LogPath != "" {
		t.Fatalf("expected no run log, got %q", run.LogPath)
	}
	if !run.Logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug enabled when Debug is set")
	}
	if err := run.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestRunIDContext(t *testing.T) {
	ctx, id := logging.WithRunID(context.Background())
	got, ok := logging.RunIDFromContext(ctx)
	if !ok || got != id || id == "" {
		t.Fatalf("RunIDFromContext = %q, %v; want %q", got, ok, id)
	}
	if _, ok := logging.RunIDFromContext(context.Background()); ok {
		t.Fatal("expected no run id on bare context")
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	logging.WarnWithContext(logger, "cache unreadable", "id_cache_corrupt", logging.String(logging.FieldImpact, "counters reset"))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload[logging.FieldEventType] != "id_cache_corrupt" {
		t.Fatalf("unexpected event_type: %v", payload)
	}
	if payload[logging.FieldErrorHint] == "" || payload[logging.FieldErrorHint] == nil {
		t.Fatalf("expected default error_hint, got %v", payload)
	}
	if payload[logging.FieldImpact] != "counters reset" {
		t.Fatalf("expected caller impact preserved, got %v", payload[logging.FieldImpact])
	}
}
