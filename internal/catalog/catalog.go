package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/northkevin/podcasts-cli/internal/config"
	"github.com/northkevin/podcasts-cli/internal/fileutil"
	"github.com/northkevin/podcasts-cli/internal/logging"
)

// IDAllocator issues and recycles episode identifiers.
type IDAllocator interface {
	Generate(platform string, publishedAt time.Time, name string) (string, error)
	Reset() error
	Release(id string) (bool, error)
}

// Options locates the catalog and its artifact directories.
type Options struct {
	Path           string
	EpisodesDir    string
	TranscriptsDir string
	// CleanupPolicy is config.PolicyResetAll (the default) or config.PolicyDecrementOne.
	CleanupPolicy string
}

// EpisodePath returns the episode note path for id.
func (o Options) EpisodePath(id string) string {
	return filepath.Join(o.EpisodesDir, id+".md")
}

// TranscriptPath returns the transcript path for id.
func (o Options) TranscriptPath(id string) string {
	return filepath.Join(o.TranscriptsDir, id+"_transcript.md")
}

// maxGenerateAttempts bounds the search for an identifier not already in use.
const maxGenerateAttempts = 100

// Catalog is the in-memory view of the catalog file.
type Catalog struct {
	opts    Options
	ids     IDAllocator
	logger  *slog.Logger
	entries []Entry
}

// Open loads the catalog at opts.Path. It never fails: a missing file yields
// an empty catalog and an unreadable or malformed one is logged and replaced
// by an empty catalog on the next write. ids may be nil for callers that never
// add or remove entries.
func Open(opts Options, ids IDAllocator, logger *slog.Logger) *Catalog {
	c := &Catalog{
		opts:   opts,
		ids:    ids,
		logger: logging.NewComponentLogger(logger, "catalog"),
	}
	if err := c.load(); err != nil {
		logging.WarnWithContext(c.logger, "failed to load catalog", "catalog_load_failed",
			logging.String("path", opts.Path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "repair or remove the catalog file"),
			logging.String(logging.FieldImpact, "catalog starts empty; the next write replaces the file"))
		c.entries = nil
	}
	return c
}

// Path returns the catalog file location.
func (c *Catalog) Path() string {
	return c.opts.Path
}

// Options returns the options the catalog was opened with.
func (c *Catalog) Options() Options {
	return c.opts
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns a copy of every entry in catalog order.
func (c *Catalog) Entries() []Entry {
	return slices.Clone(c.entries)
}

// Get returns the first entry whose identifier is id.
func (c *Catalog) Get(id string) (Entry, bool) {
	if idx := c.index(id); idx >= 0 {
		return c.entries[idx], true
	}
	return Entry{}, false
}

// FindByURL returns the first entry catalogued for url.
func (c *Catalog) FindByURL(url string) (Entry, bool) {
	url = strings.TrimSpace(url)
	for _, entry := range c.entries {
		if entry.URL == url {
			return entry, true
		}
	}
	return Entry{}, false
}

// Add records a new entry built from meta and persists the catalog. When
// existingID is set it is reused and any entry already holding it is replaced;
// otherwise a fresh identifier is allocated. The entry starts pending.
func (c *Catalog) Add(url string, platform Platform, meta Metadata, existingID string) (Entry, error) {
	if err := platform.Validate(); err != nil {
		return Entry{}, err
	}
	url = strings.TrimSpace(url)
	if url == "" {
		url = strings.TrimSpace(meta.URL)
	}
	if url == "" {
		return Entry{}, errors.New("add entry: url is empty")
	}

	id := strings.TrimSpace(existingID)
	if id == "" {
		var err error
		if id, err = c.allocate(platform, meta); err != nil {
			return Entry{}, err
		}
	}

	entry := Entry{
		EpisodeID:       id,
		URL:             url,
		Platform:        platform,
		Title:           meta.Title,
		Description:     meta.Description,
		PublishedAt:     meta.PublishedAt,
		PodcastName:     meta.PodcastName,
		Interviewee:     meta.Interviewee,
		WebVTTURL:       meta.WebVTTURL,
		DurationSeconds: max(meta.DurationSeconds, 0),
		Status:          StatusPending,
		EpisodesFile:    c.opts.EpisodePath(id),
		TranscriptsFile: c.opts.TranscriptPath(id),
	}

	next := slices.DeleteFunc(slices.Clone(c.entries), func(e Entry) bool { return e.EpisodeID == id })
	overwrite := len(next) != len(c.entries)
	next = append(next, entry)

	if err := c.commit(next); err != nil {
		return Entry{}, err
	}

	c.logger.Info("catalog entry added",
		logging.String(logging.FieldEpisodeID, id),
		logging.String(logging.FieldPlatform, string(platform)),
		logging.Bool("overwrite", overwrite),
		logging.Int("entries", len(c.entries)))
	return entry, nil
}

func (c *Catalog) allocate(platform Platform, meta Metadata) (string, error) {
	if c.ids == nil {
		return "", errors.New("add entry: no identifier allocator configured")
	}
	for range maxGenerateAttempts {
		id, err := c.ids.Generate(string(platform), meta.PublishedAt, meta.Interviewee.Name)
		if err != nil {
			return "", fmt.Errorf("generate episode id: %w", err)
		}
		if c.index(id) < 0 {
			return id, nil
		}
		c.logger.Debug("generated id already catalogued; drawing next", logging.String(logging.FieldEpisodeID, id))
	}
	return "", fmt.Errorf("generate episode id: no free identifier after %d attempts", maxGenerateAttempts)
}

// Update applies patch to the entry with the given id and persists the
// catalog. An invalid patch returns an error wrapping ErrInvalidPatch and
// changes nothing. An unknown id is a no-op, whatever the patch holds. An
// empty patch returns the entry without writing.
func (c *Catalog) Update(id string, patch Patch) (Entry, bool, error) {
	idx := c.index(id)
	if idx < 0 {
		c.logger.Debug("update skipped; entry not found", logging.String(logging.FieldEpisodeID, id))
		return Entry{}, false, nil
	}
	if err := patch.Validate(); err != nil {
		return Entry{}, false, err
	}
	if patch.Empty() {
		return c.entries[idx], true, nil
	}

	updated := patch.Apply(c.entries[idx])
	if err := updated.validate(); err != nil {
		return Entry{}, false, fmt.Errorf("%w: %w", ErrInvalidPatch, err)
	}

	next := slices.Clone(c.entries)
	next[idx] = updated
	if err := c.commit(next); err != nil {
		return Entry{}, false, err
	}
	return updated, true, nil
}

// SetStatus records a status change. A non-empty errMsg is logged at error
// level and is not stored. An unknown id is a no-op.
func (c *Catalog) SetStatus(id string, status Status, errMsg string) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("%w: unknown status %q", ErrInvalidPatch, string(status))
	}
	idx := c.index(id)
	if idx < 0 {
		return false, nil
	}

	next := slices.Clone(c.entries)
	next[idx].Status = status
	if err := c.commit(next); err != nil {
		return false, err
	}

	if errMsg != "" {
		logging.ErrorWithContext(c.logger, "episode processing failed", "episode_failed",
			logging.String(logging.FieldEpisodeID, id),
			logging.String("error", errMsg),
			logging.String(logging.FieldErrorHint, "rerun "+next[idx].ProcessCommand()))
	} else {
		c.logger.Debug("episode status set",
			logging.String(logging.FieldEpisodeID, id),
			logging.String("status", string(status)))
	}
	return true, nil
}

// SaveState opens a fresh catalog and sets the status of id. It is the
// helper used between processing steps.
func SaveState(opts Options, logger *slog.Logger, id string, status Status, errMsg string) error {
	_, err := Open(opts, nil, logger).SetStatus(id, status, errMsg)
	return err
}

// RemoveResult describes what Remove deleted.
type RemoveResult struct {
	Entry        Entry
	RemovedFiles []string
	// IDReleased reports whether the identifier counter changed.
	IDReleased bool
}

// Remove deletes the entry's artifact files, drops it from the catalog,
// persists, and applies the identifier cleanup policy. It reports false
// when no entry has the given id.
func (c *Catalog) Remove(id string) (RemoveResult, bool, error) {
	idx := c.index(id)
	if idx < 0 {
		return RemoveResult{}, false, nil
	}
	entry := c.entries[idx]
	result := RemoveResult{Entry: entry}

	for _, path := range []string{entry.EpisodesFile, entry.TranscriptsFile} {
		removed, err := fileutil.RemoveIfExists(path)
		if err != nil {
			return result, true, fmt.Errorf("remove artifact %s: %w", path, err)
		}
		if removed {
			result.RemovedFiles = append(result.RemovedFiles, path)
			c.logger.Info("artifact removed",
				logging.String(logging.FieldEpisodeID, id),
				logging.String("path", path))
		}
	}

	next := slices.Delete(slices.Clone(c.entries), idx, idx+1)
	if err := c.commit(next); err != nil {
		return result, true, err
	}

	released, err := c.applyCleanupPolicy(id)
	result.IDReleased = released
	if err != nil {
		return result, true, err
	}

	c.logger.Info("catalog entry removed",
		logging.String(logging.FieldEpisodeID, id),
		logging.Int("files_removed", len(result.RemovedFiles)),
		logging.Int("entries", len(c.entries)))
	return result, true, nil
}

func (c *Catalog) applyCleanupPolicy(id string) (bool, error) {
	if c.ids == nil {
		return false, nil
	}
	switch c.opts.CleanupPolicy {
	case config.PolicyDecrementOne:
		released, err := c.ids.Release(id)
		if err != nil {
			return false, fmt.Errorf("release episode id: %w", err)
		}
		return released, nil
	default:
		if err := c.ids.Reset(); err != nil {
			return false, fmt.Errorf("reset id cache: %w", err)
		}
		return true, nil
	}
}

func (c *Catalog) index(id string) int {
	return slices.IndexFunc(c.entries, func(e Entry) bool { return e.EpisodeID == id })
}

// commit persists next and adopts it as the in-memory state on success.
func (c *Catalog) commit(next []Entry) error {
	if err := c.save(next); err != nil {
		logging.ErrorWithContext(c.logger, "failed to save catalog", "catalog_save_failed",
			logging.String("path", c.opts.Path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check permissions on the data directory"))
		return fmt.Errorf("save catalog: %w", err)
	}
	c.entries = next
	return nil
}

func (c *Catalog) load() error {
	if c.opts.Path == "" {
		return nil
	}
	data, err := os.ReadFile(c.opts.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read catalog: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse catalog: %w", err)
	}
	c.entries = entries

	c.logger.Debug("loaded catalog",
		logging.Int("entries", len(entries)),
		logging.String("path", c.opts.Path))
	return nil
}

func (c *Catalog) save(entries []Entry) error {
	if c.opts.Path == "" {
		return nil
	}
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	return fileutil.WriteFileAtomic(c.opts.Path, append(data, '\n'), 0o644)
}
