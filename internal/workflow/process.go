package workflow

import (
	"context"
	"fmt"

	"github.com/northkevin/podcasts-cli/internal/catalog"
	"github.com/northkevin/podcasts-cli/internal/logging"
	"github.com/northkevin/podcasts-cli/internal/notes"
	"github.com/northkevin/podcasts-cli/internal/transcript"
)

// ProcessPodcast fetches the transcript for a catalogued episode, writes the
// transcript and episode Markdown files, and records their paths. The entry
// moves to processing, then complete; any failure marks it error and the
// error is returned.
func (s *Service) ProcessPodcast(ctx context.Context, id string, kind notes.PromptType) (catalog.Entry, error) {
	entry, ok := s.catalog.Get(id)
	if !ok {
		return catalog.Entry{}, fmt.Errorf("%w: %s", ErrEpisodeNotFound, id)
	}
	logger := s.logger.With(
		logging.String(logging.FieldEpisodeID, id),
		logging.String(logging.FieldPlatform, string(entry.Platform)))

	if _, err := s.catalog.SetStatus(id, catalog.StatusProcessing, ""); err != nil {
		return entry, err
	}
	logger.Info("processing episode", logging.String("prompt_type", string(kind)))

	done, err := s.process(ctx, entry, kind)
	if err != nil {
		if _, saveErr := s.catalog.SetStatus(id, catalog.StatusError, err.Error()); saveErr != nil {
			logger.Warn("failed to record error status", logging.Error(saveErr))
		}
		return entry, err
	}
	if _, err := s.catalog.SetStatus(id, catalog.StatusComplete, ""); err != nil {
		return done, err
	}
	done.Status = catalog.StatusComplete

	logger.Info("episode processed",
		logging.String("episodes_file", done.EpisodesFile),
		logging.String("transcripts_file", done.TranscriptsFile))
	s.printf("\nProcessing completed successfully!\n")
	s.printf("Episode file: %s\n", done.EpisodesFile)
	s.printf("Transcript file: %s\n", done.TranscriptsFile)
	return done, nil
}

func (s *Service) process(ctx context.Context, entry catalog.Entry, kind notes.PromptType) (catalog.Entry, error) {
	if entry.Platform == catalog.PlatformVimeo && entry.WebVTTURL == "" {
		return entry, fmt.Errorf("%w: %s", ErrMissingTranscriptURL, entry.EpisodeID)
	}
	src, err := s.sources.Source(ctx, entry.Platform)
	if err != nil {
		return entry, err
	}
	raw, err := src.Transcript(ctx, entry)
	if err != nil {
		return entry, fmt.Errorf("fetch transcript: %w", err)
	}
	markdown, stats, err := transcript.Render(raw)
	if err != nil {
		return entry, fmt.Errorf("render transcript: %w", err)
	}

	opts := s.catalog.Options()
	transcriptPath := opts.TranscriptPath(entry.EpisodeID)
	if err := transcript.WriteFile(transcriptPath, markdown); err != nil {
		return entry, err
	}
	entry, _, err = s.catalog.Update(entry.EpisodeID, catalog.Patch{TranscriptsFile: catalog.Ptr(transcriptPath)})
	if err != nil {
		return entry, err
	}
	s.logger.Debug("transcript written",
		logging.String(logging.FieldEpisodeID, entry.EpisodeID),
		logging.Int("words", stats.Words),
		logging.Int("chars", stats.Chars))

	prompt, err := notes.Prompt(kind, notes.InputFromEntry(entry, &stats))
	if err != nil {
		return entry, err
	}
	episodePath := opts.EpisodePath(entry.EpisodeID)
	if err := notes.WriteEpisode(episodePath, entry, prompt); err != nil {
		return entry, err
	}
	entry, _, err = s.catalog.Update(entry.EpisodeID, catalog.Patch{EpisodesFile: catalog.Ptr(episodePath)})
	return entry, err
}
