package logs

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/northkevin/podcasts-cli/internal/logging"
)

// ErrNoRunLogs reports an empty or missing log directory.
var ErrNoRunLogs = errors.New("no run logs found")

// RunLog describes one run log file.
type RunLog struct {
	Path string
	Size int64
}

// List returns the run logs in dir, oldest first.
func List(dir string) ([]RunLog, error) {
	matches, err := filepath.Glob(filepath.Join(dir, logging.RunLogPattern))
	if err != nil {
		return nil, fmt.Errorf("list run logs: %w", err)
	}
	slices.Sort(matches)
	runs := make([]RunLog, 0, len(matches))
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat run log: %w", err)
		}
		if info.IsDir() {
			continue
		}
		runs = append(runs, RunLog{Path: path, Size: info.Size()})
	}
	return runs, nil
}

// Latest returns the newest run log in dir, skipping exclude (normally the
// log of the current invocation).
func Latest(dir, exclude string) (RunLog, error) {
	runs, err := List(dir)
	if err != nil {
		return RunLog{}, err
	}
	for i := len(runs) - 1; i >= 0; i-- {
		if runs[i].Path != exclude {
			return runs[i], nil
		}
	}
	return RunLog{}, fmt.Errorf("%w in %s", ErrNoRunLogs, dir)
}

// Tail returns the last limit lines of path. A limit <= 0 returns every line.
func Tail(path string, limit int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if limit <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log file: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, limit)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % limit
		if count < limit {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}

	lines := make([]string, count)
	if count == limit {
		for i := range count {
			lines[i] = ring[(idx+i)%limit]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}
