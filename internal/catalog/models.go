package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownPlatform reports a platform outside the supported set.
var ErrUnknownPlatform = errors.New("unknown platform")

// Platform identifies where an episode is hosted.
type Platform string

const (
	PlatformYouTube Platform = "youtube"
	PlatformVimeo   Platform = "vimeo"
)

// Platforms lists every supported platform in display order.
var Platforms = []Platform{PlatformYouTube, PlatformVimeo}

// ParsePlatform normalizes a user supplied platform name.
func ParsePlatform(value string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(value)))
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

// Validate reports whether p is a supported platform.
func (p Platform) Validate() error {
	switch p {
	case PlatformYouTube, PlatformVimeo:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPlatform, string(p))
	}
}

// Status is the processing state of an entry.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusComplete   Status = "complete"
	StatusError      Status = "error"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusComplete, StatusError:
		return true
	default:
		return false
	}
}

// Interviewee describes the guest of an episode.
type Interviewee struct {
	Name         string `json:"name"`
	Profession   string `json:"profession"`
	Organization string `json:"organization"`
}

// Metadata is the normalized description of an episode produced by a fetcher.
type Metadata struct {
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	PublishedAt     time.Time   `json:"published_at"`
	PodcastName     string      `json:"podcast_name"`
	Interviewee     Interviewee `json:"interviewee"`
	URL             string      `json:"url"`
	WebVTTURL       string      `json:"webvtt_url"`
	DurationSeconds int         `json:"duration_seconds"`
}

// Entry is one catalogued episode.
type Entry struct {
	EpisodeID       string      `json:"episode_id"`
	URL             string      `json:"url"`
	Platform        Platform    `json:"platform"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	PublishedAt     time.Time   `json:"published_at"`
	PodcastName     string      `json:"podcast_name"`
	Interviewee     Interviewee `json:"interviewee"`
	WebVTTURL       string      `json:"webvtt_url"`
	DurationSeconds int         `json:"duration_seconds"`
	Status          Status      `json:"status"`
	EpisodesFile    string      `json:"episodes_file"`
	TranscriptsFile string      `json:"transcripts_file"`
}

// ProcessCommand is the follow-up command that processes this entry.
func (e Entry) ProcessCommand() string {
	return "podcasts process-podcast --episode_id " + e.EpisodeID
}

// Duration returns the episode length.
func (e Entry) Duration() time.Duration {
	return time.Duration(e.DurationSeconds) * time.Second
}

// publishedLayouts are tried in order when reading published_at. Older
// catalogs store naive timestamps without a zone offset.
var publishedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// ParsePublished parses an ISO-8601 date-time; values without an offset are UTC.
func ParsePublished(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range publishedLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse published_at %q: unrecognized date-time", value)
}

// UnmarshalJSON accepts any layout understood by ParsePublished and applies
// the pending status default.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type plain Entry
	aux := struct {
		*plain
		PublishedAt string `json:"published_at"`
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.PublishedAt != "" {
		ts, err := ParsePublished(aux.PublishedAt)
		if err != nil {
			return err
		}
		e.PublishedAt = ts
	}
	if e.Status == "" {
		e.Status = StatusPending
	}
	return nil
}

func (e Entry) validate() error {
	if strings.TrimSpace(e.EpisodeID) == "" {
		return errors.New("episode_id is empty")
	}
	if strings.TrimSpace(e.URL) == "" {
		return errors.New("url is empty")
	}
	if err := e.Platform.Validate(); err != nil {
		return err
	}
	if !e.Status.Valid() {
		return fmt.Errorf("unknown status %q", e.Status)
	}
	if e.DurationSeconds < 0 {
		return fmt.Errorf("duration_seconds must be >= 0, got %d", e.DurationSeconds)
	}
	return nil
}
