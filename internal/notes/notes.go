package notes

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/northkevin/podcasts-cli/internal/catalog"
	"github.com/northkevin/podcasts-cli/internal/fileutil"
	"github.com/northkevin/podcasts-cli/internal/transcript"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// DefaultCardsPerHour is the notecard density requested by the atomic prompt.
const DefaultCardsPerHour = 5

// ErrUnknownPromptType reports a prompt style other than atomic or standard.
var ErrUnknownPromptType = errors.New("unknown prompt type")

// PromptType selects the analysis prompt embedded in an episode note.
type PromptType string

const (
	PromptAtomic   PromptType = "atomic"
	PromptStandard PromptType = "standard"
)

// ParsePromptType normalizes a user supplied prompt type. Empty means atomic.
func ParsePromptType(value string) (PromptType, error) {
	switch PromptType(strings.ToLower(strings.TrimSpace(value))) {
	case "", PromptAtomic:
		return PromptAtomic, nil
	case PromptStandard:
		return PromptStandard, nil
	default:
		return "", fmt.Errorf("%w: %q (want atomic or standard)", ErrUnknownPromptType, value)
	}
}

// PromptInput carries everything a prompt template references.
type PromptInput struct {
	Title           string
	PodcastName     string
	EpisodeID       string
	ShareURL        string
	TranscriptFile  string
	Platform        string
	Interviewee     catalog.Interviewee
	DurationSeconds int
	Stats           *transcript.Stats
	CardsPerHour    int
}

// InputFromEntry builds prompt input for a catalog entry. stats may be nil.
func InputFromEntry(entry catalog.Entry, stats *transcript.Stats) PromptInput {
	return PromptInput{
		Title:           entry.Title,
		PodcastName:     entry.PodcastName,
		EpisodeID:       entry.EpisodeID,
		ShareURL:        entry.URL,
		TranscriptFile:  entry.TranscriptsFile,
		Platform:        string(entry.Platform),
		Interviewee:     entry.Interviewee,
		DurationSeconds: entry.DurationSeconds,
		Stats:           stats,
		CardsPerHour:    DefaultCardsPerHour,
	}
}

var templates = template.Must(template.New("notes").Funcs(template.FuncMap{
	"clock":    FormatClock,
	"duration": FormatDuration,
	"comma":    func(n int) string { return humanize.Comma(int64(n)) },
	"minCards": MinCards,
	"title":    func(s string) string { return cases.Title(language.English).String(s) },
}).ParseFS(templateFS, "templates/*.tmpl"))

// Prompt renders the analysis prompt of the given type.
func Prompt(kind PromptType, in PromptInput) (string, error) {
	var name string
	switch kind {
	case PromptAtomic:
		name = "atomic.tmpl"
	case PromptStandard:
		name = "standard.tmpl"
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPromptType, string(kind))
	}
	if in.CardsPerHour <= 0 {
		in.CardsPerHour = DefaultCardsPerHour
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, in); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", kind, err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// MinCards is the notecard floor for an episode: hours times cards per hour,
// rounded down.
func MinCards(in PromptInput) int {
	return in.DurationSeconds * in.CardsPerHour / 3600
}

// EpisodeMarkdown renders the episode note embedding prompt.
func EpisodeMarkdown(entry catalog.Entry, prompt string) (string, error) {
	link := filepath.Base(entry.TranscriptsFile)
	if entry.TranscriptsFile == "" {
		link = entry.EpisodeID + "_transcript.md"
	}
	data := struct {
		Entry          catalog.Entry
		TranscriptLink string
		Prompt         string
	}{Entry: entry, TranscriptLink: link, Prompt: prompt}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "episode.tmpl", data); err != nil {
		return "", fmt.Errorf("render episode note: %w", err)
	}
	return buf.String(), nil
}

// WriteEpisode renders the episode note and writes it to path.
func WriteEpisode(path string, entry catalog.Entry, prompt string) error {
	content, err := EpisodeMarkdown(entry, prompt)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write episode note: %w", err)
	}
	return nil
}

// FormatClock renders seconds as HH:MM:SS.
func FormatClock(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}

// FormatDuration renders seconds as "H hours, M minutes".
func FormatDuration(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%d hours, %d minutes", seconds/3600, seconds%3600/60)
}

// FormatShort renders seconds as "Hh Mm".
func FormatShort(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%dh %dm", seconds/3600, seconds%3600/60)
}
