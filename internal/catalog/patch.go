package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidPatch wraps every validation failure reported by Update.
var ErrInvalidPatch = errors.New("invalid patch")

// Patch is a partial update. Nil fields are left untouched. The episode
// identifier is not patchable.
type Patch struct {
	URL             *string
	Platform        *Platform
	Title           *string
	Description     *string
	PublishedAt     *time.Time
	PodcastName     *string
	Interviewee     *Interviewee
	WebVTTURL       *string
	DurationSeconds *int
	Status          *Status
	EpisodesFile    *string
	TranscriptsFile *string
}

// Ptr returns a pointer to v, for building patches inline.
func Ptr[T any](v T) *T {
	return &v
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p == Patch{}
}

// Validate checks every set field.
func (p Patch) Validate() error {
	if p.URL != nil && strings.TrimSpace(*p.URL) == "" {
		return fmt.Errorf("%w: url cannot be empty", ErrInvalidPatch)
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrInvalidPatch)
	}
	if p.Platform != nil {
		if err := p.Platform.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidPatch, err)
		}
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidPatch, string(*p.Status))
	}
	if p.DurationSeconds != nil && *p.DurationSeconds < 0 {
		return fmt.Errorf("%w: duration_seconds must be >= 0, got %d", ErrInvalidPatch, *p.DurationSeconds)
	}
	if p.PublishedAt != nil && p.PublishedAt.IsZero() {
		return fmt.Errorf("%w: published_at cannot be zero", ErrInvalidPatch)
	}
	return nil
}

// Apply returns a copy of e with the patch applied.
func (p Patch) Apply(e Entry) Entry {
	if p.URL != nil {
		e.URL = *p.URL
	}
	if p.Platform != nil {
		e.Platform = *p.Platform
	}
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.PublishedAt != nil {
		e.PublishedAt = *p.PublishedAt
	}
	if p.PodcastName != nil {
		e.PodcastName = *p.PodcastName
	}
	if p.Interviewee != nil {
		e.Interviewee = *p.Interviewee
	}
	if p.WebVTTURL != nil {
		e.WebVTTURL = *p.WebVTTURL
	}
	if p.DurationSeconds != nil {
		e.DurationSeconds = *p.DurationSeconds
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.EpisodesFile != nil {
		e.EpisodesFile = *p.EpisodesFile
	}
	if p.TranscriptsFile != nil {
		e.TranscriptsFile = *p.TranscriptsFile
	}
	return e
}
