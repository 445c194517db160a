package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/atotto/clipboard"

	"github.com/northkevin/podcasts-cli/internal/catalog"
	"github.com/northkevin/podcasts-cli/internal/logging"
)

var (
	// ErrEpisodeNotFound reports an episode id absent from the catalog.
	ErrEpisodeNotFound = errors.New("episode not found")
	// ErrMissingTranscriptURL reports a Vimeo entry recorded without a text track.
	ErrMissingTranscriptURL = errors.New("no transcript url recorded for episode")
)

// Source fetches metadata and transcripts from one hosting platform.
type Source interface {
	Metadata(ctx context.Context, url string) (catalog.Metadata, error)
	Transcript(ctx context.Context, entry catalog.Entry) ([]byte, error)
}

// SourceResolver returns the Source for a platform. Implementations may
// construct clients lazily so a missing credential for one platform does not
// affect the other.
type SourceResolver interface {
	Source(ctx context.Context, platform catalog.Platform) (Source, error)
}

// StaticSources resolves platforms from a fixed map.
type StaticSources map[catalog.Platform]Source

// Source implements SourceResolver.
func (s StaticSources) Source(_ context.Context, platform catalog.Platform) (Source, error) {
	src, ok := s[platform]
	if !ok || src == nil {
		return nil, fmt.Errorf("%w: %q", catalog.ErrUnknownPlatform, string(platform))
	}
	return src, nil
}

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(prompt string) (bool, error)

// Service runs the command-level flows against one catalog.
type Service struct {
	catalog   *catalog.Catalog
	sources   SourceResolver
	out       io.Writer
	logger    *slog.Logger
	confirm   ConfirmFunc
	clipboard func(string) error
}

// Option configures optional Service behavior.
type Option func(*Service)

// WithConfirm sets the overwrite confirmation callback. Without one, overwrites
// are declined unless the caller passes AssumeYes.
func WithConfirm(fn ConfirmFunc) Option {
	return func(s *Service) { s.confirm = fn }
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(fn func(string) error) Option {
	return func(s *Service) { s.clipboard = fn }
}

// New constructs a Service. out receives the user-facing summaries.
func New(cat *catalog.Catalog, sources SourceResolver, out io.Writer, logger *slog.Logger, opts ...Option) *Service {
	if out == nil {
		out = io.Discard
	}
	s := &Service{
		catalog:   cat,
		sources:   sources,
		out:       out,
		logger:    logging.NewComponentLogger(logger, "workflow"),
		clipboard: clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog exposes the underlying catalog.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

func (s *Service) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
