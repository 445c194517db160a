package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/northkevin/podcasts-cli/internal/catalog"
	"github.com/northkevin/podcasts-cli/internal/logging"
	"github.com/northkevin/podcasts-cli/internal/notes"
)

const overwritePrompt = "Would you like to overwrite this entry? (y/N): "

// AddRequest describes one add-podcast invocation.
type AddRequest struct {
	Platform catalog.Platform
	URL      string
	// AssumeYes overwrites an already catalogued URL without asking.
	AssumeYes bool
}

// AddResult reports the outcome of AddPodcast.
type AddResult struct {
	Entry     catalog.Entry
	Added     bool
	Overwrote bool
}

// AddPodcast fetches metadata for a URL and records it in the catalog. When
// the URL is already catalogued the user is asked before the entry is
// overwritten; an overwrite keeps the existing episode id and restarts the
// entry at pending.
func (s *Service) AddPodcast(ctx context.Context, req AddRequest) (AddResult, error) {
	if err := req.Platform.Validate(); err != nil {
		return AddResult{}, err
	}
	url := strings.TrimSpace(req.URL)
	if url == "" {
		return AddResult{}, errors.New("url is required")
	}
	logger := s.logger.With(logging.String(logging.FieldPlatform, string(req.Platform)))

	existingID := ""
	if existing, ok := s.catalog.FindByURL(url); ok {
		proceed, err := s.confirmOverwrite(existing, req.AssumeYes)
		if err != nil || !proceed {
			return AddResult{}, err
		}
		existingID = existing.EpisodeID
	}

	src, err := s.sources.Source(ctx, req.Platform)
	if err != nil {
		return AddResult{}, err
	}
	meta, err := src.Metadata(ctx, url)
	if err != nil {
		return AddResult{}, fmt.Errorf("fetch %s metadata: %w", req.Platform, err)
	}

	storeURL := url
	if canonical := strings.TrimSpace(meta.URL); canonical != "" && canonical != url {
		storeURL = canonical
		if existingID == "" {
			if existing, ok := s.catalog.FindByURL(canonical); ok {
				proceed, err := s.confirmOverwrite(existing, req.AssumeYes)
				if err != nil || !proceed {
					return AddResult{}, err
				}
				existingID = existing.EpisodeID
			}
		}
	}

	entry, err := s.catalog.Add(storeURL, req.Platform, meta, existingID)
	if err != nil {
		return AddResult{}, err
	}
	logger.Info("podcast added",
		logging.String(logging.FieldEpisodeID, entry.EpisodeID),
		logging.Bool("overwrite", existingID != ""))

	s.printSummary(entry)
	return AddResult{Entry: entry, Added: true, Overwrote: existingID != ""}, nil
}

func (s *Service) confirmOverwrite(existing catalog.Entry, assumeYes bool) (bool, error) {
	s.printf("\nThis URL is already in the catalog:\n")
	s.printf("Episode ID: %s\n", existing.EpisodeID)
	s.printf("Title: %s\n", existing.Title)
	s.printf("Duration: %s\n", notes.FormatShort(existing.DurationSeconds))
	s.printf("Podcast: %s\n", existing.PodcastName)
	s.printf("Interviewee: %s\n", existing.Interviewee.Name)
	s.printf("Status: %s\n", existing.Status)
	s.printf("\nTo process this episode, run:\n%s\n\n", existing.ProcessCommand())

	if assumeYes {
		return true, nil
	}
	ok := false
	if s.confirm != nil {
		var err error
		if ok, err = s.confirm(overwritePrompt); err != nil {
			return false, fmt.Errorf("read confirmation: %w", err)
		}
	}
	if !ok {
		s.printf("Operation cancelled.\n")
		s.logger.Info("overwrite declined", logging.String(logging.FieldEpisodeID, existing.EpisodeID))
	}
	return ok, nil
}

func (s *Service) printSummary(entry catalog.Entry) {
	webvtt := entry.WebVTTURL
	if webvtt == "" {
		webvtt = "N/A"
	}
	s.printf("\nAdded podcast:\n")
	s.printf("Episode ID: %s\n", entry.EpisodeID)
	s.printf("Title: %s\n", entry.Title)
	s.printf("Duration: %s\n", notes.FormatShort(entry.DurationSeconds))
	s.printf("Podcast: %s\n", entry.PodcastName)
	s.printf("Interviewee: %s\n", entry.Interviewee.Name)
	s.printf("WebVTT URL: %s\n", webvtt)
	s.printf("\nRun next command:\n%s\n", entry.ProcessCommand())
}
