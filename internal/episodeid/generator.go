package episodeid

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/northkevin/podcasts-cli/internal/fileutil"
	"github.com/northkevin/podcasts-cli/internal/logging"
)

// ErrEmptyPlatform is returned when an identifier is requested without a platform.
var ErrEmptyPlatform = errors.New("platform cannot be empty")

// Generator issues identifiers and owns the counter cache file.
type Generator struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
	counts map[string]int
}

// NewGenerator loads the counter cache at path. A missing file starts empty;
// an unreadable or corrupt one also starts empty and logs a warning. An empty
// path keeps counters in memory only.
func NewGenerator(path string, logger *slog.Logger) *Generator {
	logger = logging.NewComponentLogger(logger, "episodeid")

	g := &Generator{
		path:   path,
		logger: logger,
		counts: make(map[string]int),
	}
	if path == "" {
		return g
	}

	if err := g.load(); err != nil {
		logging.WarnWithContext(logger, "failed to load id cache", "id_cache_load_failed",
			logging.String("path", path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "delete or repair the id cache file"),
			logging.String(logging.FieldImpact, "identifier counters restart at 01"))
		g.counts = make(map[string]int)
	}
	return g
}

// Generate increments the counter for the identifier's base key, persists the
// cache, and returns {base}_{count:02d}.
func (g *Generator) Generate(platform string, publishedAt time.Time, name string) (string, error) {
	if strings.TrimSpace(platform) == "" {
		return "", ErrEmptyPlatform
	}
	base := BaseKey(platform, publishedAt, name)

	g.mu.Lock()
	defer g.mu.Unlock()

	previous, had := g.counts[base]
	count := previous + 1
	g.counts[base] = count

	if err := g.save(); err != nil {
		if had {
			g.counts[base] = previous
		} else {
			delete(g.counts, base)
		}
		logging.ErrorWithContext(g.logger, "failed to persist id cache", "id_cache_write_failed",
			logging.String("path", g.path),
			logging.String("base", base),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check permissions on the data directory"))
		return "", fmt.Errorf("persist id cache: %w", err)
	}

	id := fmt.Sprintf("%s_%02d", base, count)
	g.logger.Debug("issued episode id",
		logging.String(logging.FieldEpisodeID, id),
		logging.Int("count", count))
	return id, nil
}

// Reset clears every counter and deletes the cache file.
func (g *Generator) Reset() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	cleared := len(g.counts)
	g.counts = make(map[string]int)

	if _, err := fileutil.RemoveIfExists(g.path); err != nil {
		logging.ErrorWithContext(g.logger, "failed to delete id cache", "id_cache_reset_failed",
			logging.String("path", g.path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "remove the id cache file manually"))
		return fmt.Errorf("delete id cache: %w", err)
	}

	g.logger.Info("id cache reset", logging.Int("bases_cleared", cleared))
	return nil
}

// Release gives back id when it is the most recently issued identifier for its
// base. Any other identifier leaves the counters untouched so earlier numbers
// are never handed out twice. It reports whether a counter changed.
func (g *Generator) Release(id string) (bool, error) {
	base, n, ok := SplitID(id)
	if !ok {
		return false, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	current := g.counts[base]
	if current != n {
		g.logger.Debug("id not latest for base; counter kept",
			logging.String(logging.FieldEpisodeID, id),
			logging.Int("count", current))
		return false, nil
	}

	if n == 1 {
		delete(g.counts, base)
	} else {
		g.counts[base] = n - 1
	}
	if err := g.save(); err != nil {
		g.counts[base] = current
		logging.ErrorWithContext(g.logger, "failed to persist id cache", "id_cache_write_failed",
			logging.String("path", g.path),
			logging.String("base", base),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check permissions on the data directory"))
		return false, fmt.Errorf("persist id cache: %w", err)
	}

	g.logger.Info("released episode id", logging.String(logging.FieldEpisodeID, id))
	return true, nil
}

// Count returns how many identifiers have been issued for base.
func (g *Generator) Count(base string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.counts[base]
}

// Snapshot returns a copy of every counter.
func (g *Generator) Snapshot() map[string]int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return maps.Clone(g.counts)
}

func (g *Generator) load() error {
	data, err := os.ReadFile(g.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read id cache: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	var counts map[string]int
	if err := json.Unmarshal(data, &counts); err != nil {
		return fmt.Errorf("parse id cache: %w", err)
	}
	for base, n := range counts {
		if n > 0 {
			g.counts[base] = n
		}
	}

	g.logger.Debug("loaded id cache",
		logging.Int("base_count", len(g.counts)),
		logging.String("path", g.path))
	return nil
}

func (g *Generator) save() error {
	if g.path == "" {
		return nil
	}
	// encoding/json sorts map keys, so output is deterministic.
	data, err := json.MarshalIndent(g.counts, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal id cache: %w", err)
	}
	return fileutil.WriteFileAtomic(g.path, append(data, '\n'), 0o644)
}
