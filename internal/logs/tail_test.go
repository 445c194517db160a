package logs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/northkevin/podcasts-cli/internal/logs"
)

func writeLog(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
}

func TestTailLastLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "podcasts-20240101T000000Z.log")
	writeLog(t, path, "a\nb\nc\n")

	lines, err := logs.Tail(path, 2)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(lines) != 2 || lines[0] != "b" || lines[1] != "c" {
		t.Fatalf("unexpected lines: %#v", lines)
	}

	lines, err = logs.Tail(path, 10)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(lines) != 3 || lines[0] != "a" {
		t.Fatalf("unexpected lines: %#v", lines)
	}

	lines, err = logs.Tail(path, 0)
	if err != nil || len(lines) != 3 {
		t.Fatalf("Tail all: %#v err=%v", lines, err)
	}
}

func TestTailMissingFile(t *testing.T) {
	if _, err := logs.Tail(filepath.Join(t.TempDir(), "nope.log"), 5); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLatestSkipsExcluded(t *testing.T) {
	dir := t.TempDir()
	older := filepath.Join(dir, "podcasts-20240101T000000Z-aaaa.log")
	newer := filepath.Join(dir, "podcasts-20240102T000000Z-bbbb.log")
	writeLog(t, older, "old\n")
	writeLog(t, newer, "new\n")
	writeLog(t, filepath.Join(dir, "other.log"), "ignored\n")

	runs, err := logs.List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 || runs[0].Path != older || runs[1].Path != newer {
		t.Fatalf("unexpected runs: %+v", runs)
	}

	latest, err := logs.Latest(dir, "")
	if err != nil || latest.Path != newer {
		t.Fatalf("Latest = %+v, err=%v", latest, err)
	}
	latest, err = logs.Latest(dir, newer)
	if err != nil || latest.Path != older {
		t.Fatalf("Latest excluding newest = %+v, err=%v", latest, err)
	}
}

func TestLatestEmptyDir(t *testing.T) {
	_, err := logs.Latest(t.TempDir(), "")
	if !errors.Is(err, logs.ErrNoRunLogs) {
		t.Fatalf("expected ErrNoRunLogs, got %v", err)
	}
}
