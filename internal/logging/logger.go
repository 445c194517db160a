package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/northkevin/podcasts-cli/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level       string
	Format      string
	OutputPaths []string
	Development bool
	// Color forces ANSI level colouring on or off. When nil, colour is used
	// only if the sole output is a terminal.
	Color *bool
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	levelVar := new(slog.LevelVar)
	levelVar.Set(ParseLevel(opts.Level))

	paths := opts.OutputPaths
	if len(paths) == 0 {
		paths = []string{"stderr"}
	}
	writer, err := openWriters(paths)
	if err != nil {
		return nil, err
	}

	addSource := opts.Development || levelVar.Level() <= slog.LevelDebug

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}

	var handler slog.Handler
	switch format {
	case "json":
		handler = newJSONHandler(writer, levelVar, addSource)
	case "console":
		color := len(paths) == 1 && isTerminal(writer)
		if opts.Color != nil {
			color = *opts.Color
		}
		handler = newConsoleHandler(writer, levelVar, addSource, color)
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	return slog.New(handler), nil
}

// RunOptions carries per-invocation settings for NewFromConfig.
type RunOptions struct {
	Debug bool
	RunID string
	// Now is used to name the run log file; defaults to time.Now.
	Now func() time.Time
}

// Run is a configured logger plus the location of its run log, if any.
type Run struct {
	Logger  *slog.Logger
	LogPath string
	closer  io.Closer
}

// Close releases the run log file.
func (r *Run) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// NewFromConfig creates the invocation logger. Console output goes to stderr
// in the configured format. When log_dir is set, a JSON run log tagged with
// the run id is written alongside and stale run logs are pruned.
func NewFromConfig(cfg *config.Config, opts RunOptions) (*Run, error) {
	level, format := "info", "console"
	var logDir string
	retention := 0
	if cfg != nil {
		level, format = cfg.Logging.Level, cfg.Logging.Format
		logDir = cfg.Paths.LogDir
		retention = cfg.Logging.RetentionDays
	}
	if opts.Debug {
		level = "debug"
	}

	levelVar := new(slog.LevelVar)
	levelVar.Set(ParseLevel(level))
	addSource := opts.Debug

	var console slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		console = newJSONHandler(os.Stderr, levelVar, addSource)
	case "", "console":
		console = newConsoleHandler(os.Stderr, levelVar, addSource, isTerminal(os.Stderr))
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", format)
	}

	run := &Run{}
	handlers := []slog.Handler{console}

	if logDir != "" {
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
		path := filepath.Join(logDir, runLogName(now(), opts.RunID))
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open run log %s: %w", path, err)
		}
		run.LogPath = path
		run.closer = file
		fileLevel := new(slog.LevelVar)
		fileLevel.Set(slog.LevelDebug)
		handlers = append(handlers, newRunIDHandler(newJSONHandler(file, fileLevel, true), opts.RunID))
	}

	run.Logger = slog.New(newTeeHandler(handlers...))
	if run.LogPath != "" {
		PruneRunLogs(run.Logger, logDir, retention, run.LogPath)
	}
	return run, nil
}

func runLogName(ts time.Time, runID string) string {
	name := "podcasts-" + ts.UTC().Format("20060102T150405Z")
	if len(runID) >= 8 {
		name += "-" + runID[:8]
	}
	return name + ".log"
}

// ParseLevel maps a textual level onto slog levels, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openWriters(paths []string) (io.Writer, error) {
	seen := map[string]struct{}{}
	var writers []io.Writer

	for _, path := range paths {
		trimmed := strings.TrimSpace(path)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}

		switch trimmed {
		case "stdout":
			writers = append(writers, os.Stdout)
		case "stderr":
			writers = append(writers, os.Stderr)
		default:
			if dir := filepath.Dir(trimmed); dir != "." && dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return nil, fmt.Errorf("ensure log directory: %w", err)
				}
			}
			file, err := os.OpenFile(trimmed, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
			if err != nil {
				return nil, fmt.Errorf("open log file %s: %w", trimmed, err)
			}
			writers = append(writers, file)
		}
	}

	switch len(writers) {
	case 0:
		return os.Stderr, nil
	case 1:
		return writers[0], nil
	default:
		return io.MultiWriter(writers...), nil
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	opts := slog.HandlerOptions{
		Level:     lvl,
		AddSource: addSource,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.TimeKey:
				attr.Key = "ts"
				if attr.Value.Kind() == slog.KindTime {
					attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
				}
			case slog.LevelKey:
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
			case slog.SourceKey:
				if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
					attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
				}
			}
			return attr
		},
	}
	return slog.NewJSONHandler(w, &opts)
}
