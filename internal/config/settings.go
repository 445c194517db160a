package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/northkevin/podcasts-cli/internal/fileutil"
)

const (
	// DefaultEpisodesDirName is offered when enabling Obsidian without an episodes directory.
	DefaultEpisodesDirName = "Podcast Episodes"
	// DefaultTranscriptsDirName is offered when enabling Obsidian without a transcripts directory.
	DefaultTranscriptsDirName = "Podcast Transcripts"
)

// Settings is the user-editable output layout stored as JSON next to the catalog.
type Settings struct {
	UseObsidian       bool   `json:"use_obsidian"`
	ObsidianVaultPath string `json:"obsidian_vault_path,omitempty"`
	EpisodesDir       string `json:"episodes_dir,omitempty"`
	TranscriptsDir    string `json:"transcripts_dir,omitempty"`
}

// Layout holds the resolved artifact directories.
type Layout struct {
	EpisodesDir    string
	TranscriptsDir string
}

// LoadSettings reads the settings file. A missing file yields the defaults with
// a nil error. An unreadable or malformed file also yields the defaults, along
// with an error the caller is expected to log rather than treat as fatal.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return Settings{}, nil
	}
	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	return settings, nil
}

// SaveSettings writes the settings file with two-space indentation.
func SaveSettings(path string, settings Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// ResetSettings deletes the settings file so defaults apply again.
func ResetSettings(path string) error {
	if _, err := fileutil.RemoveIfExists(path); err != nil {
		return fmt.Errorf("remove settings: %w", err)
	}
	return nil
}

// Validate reports settings that cannot be resolved into a layout.
func (s Settings) Validate() error {
	if !s.UseObsidian {
		return nil
	}
	if strings.TrimSpace(s.ObsidianVaultPath) == "" {
		return errors.New("obsidian_vault_path must be set when use_obsidian is true")
	}
	if strings.TrimSpace(s.EpisodesDir) == "" {
		return errors.New("episodes_dir must be set when use_obsidian is true")
	}
	if strings.TrimSpace(s.TranscriptsDir) == "" {
		return errors.New("transcripts_dir must be set when use_obsidian is true")
	}
	return nil
}

// Layout resolves the artifact directories: inside the Obsidian vault when
// enabled, otherwise episodes/ and transcripts/ under the data directory.
func (c *Config) Layout(settings Settings) (Layout, error) {
	if !settings.UseObsidian {
		return Layout{
			EpisodesDir:    filepath.Join(c.Paths.DataDir, "episodes"),
			TranscriptsDir: filepath.Join(c.Paths.DataDir, "transcripts"),
		}, nil
	}
	if err := settings.Validate(); err != nil {
		return Layout{}, err
	}
	vault, err := expandPath(strings.TrimSpace(settings.ObsidianVaultPath))
	if err != nil {
		return Layout{}, fmt.Errorf("obsidian_vault_path: %w", err)
	}
	return Layout{
		EpisodesDir:    filepath.Join(vault, settings.EpisodesDir),
		TranscriptsDir: filepath.Join(vault, settings.TranscriptsDir),
	}, nil
}

// Ensure creates both artifact directories.
func (l Layout) Ensure() error {
	for _, dir := range []string{l.EpisodesDir, l.TranscriptsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}
