package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/sosodev/duration"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/northkevin/podcasts-cli/internal/catalog"
	"github.com/northkevin/podcasts-cli/internal/fetch"
	"github.com/northkevin/podcasts-cli/internal/language"
	"github.com/northkevin/podcasts-cli/internal/logging"
)

var (
	// ErrMissingAPIKey is returned by New when no Data API key is configured.
	ErrMissingAPIKey = errors.New("youtube api key not configured (set youtube.api_key or YOUTUBE_API_KEY)")
	// ErrNoVideoID means the URL does not name a YouTube video.
	ErrNoVideoID = errors.New("could not extract video id from url")
	// ErrVideoNotFound means the API returned no item for the video id.
	ErrVideoNotFound = errors.New("video not found")
	// ErrNoCaptions means the video lists no caption track to download.
	ErrNoCaptions = errors.New("no caption tracks available")
)

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?(?:[^#]*&)?v=|youtu\.be/)([A-Za-z0-9_-]+)`),
	regexp.MustCompile(`youtube\.com/(?:embed|v|shorts|live)/([A-Za-z0-9_-]+)`),
}

var bareVideoID = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// VideoID extracts the video identifier from a watch, short, embed, or
// youtu.be URL. A bare 11 character identifier is accepted as is.
func VideoID(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(rawURL); m != nil {
			return m[1], nil
		}
	}
	if bareVideoID.MatchString(rawURL) {
		return rawURL, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNoVideoID, rawURL)
}

// Options configures a Client.
type Options struct {
	APIKey          string
	BaseURL         string
	TimedTextURL    string
	CaptionLanguage string
	Timeout         time.Duration
	// HTTPClient downloads caption files; the Data API uses its own transport.
	HTTPClient *http.Client
}

// Client talks to the YouTube Data API.
type Client struct {
	service   *yt.Service
	http      *http.Client
	timedText string
	language  string
	timeout   time.Duration
	logger    *slog.Logger
}

// New builds a client. The API key is required.
func New(ctx context.Context, opts Options, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	clientOpts := []option.ClientOption{option.WithAPIKey(opts.APIKey)}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.BaseURL))
	}
	service, err := yt.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = fetch.NewHTTPClient(opts.Timeout)
	}
	lang := language.Normalize(opts.CaptionLanguage)
	if lang == "" {
		lang = "en"
	}
	timedText := opts.TimedTextURL
	if timedText == "" {
		timedText = "https://www.youtube.com/api/timedtext"
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = fetch.DefaultTimeout
	}

	return &Client{
		service:   service,
		http:      httpClient,
		timedText: timedText,
		language:  lang,
		timeout:   timeout,
		logger:    logging.NewComponentLogger(logger, "youtube"),
	}, nil
}

// Metadata fetches the video's snippet and duration and derives the podcast
// and interviewee details from its title and description.
func (c *Client) Metadata(ctx context.Context, rawURL string) (catalog.Metadata, error) {
	videoID, err := VideoID(rawURL)
	if err != nil {
		return catalog.Metadata{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.service.Videos.List([]string{"snippet", "contentDetails"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return catalog.Metadata{}, fmt.Errorf("youtube videos.list %s: %w", videoID, describeAPIError(err))
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return catalog.Metadata{}, fmt.Errorf("%w: %s", ErrVideoNotFound, videoID)
	}
	video := resp.Items[0]
	snippet := video.Snippet

	published, err := time.Parse(time.RFC3339, snippet.PublishedAt)
	if err != nil {
		return catalog.Metadata{}, fmt.Errorf("parse publishedAt %q: %w", snippet.PublishedAt, err)
	}

	seconds := 0
	if video.ContentDetails != nil && video.ContentDetails.Duration != "" {
		if seconds, err = ParseDuration(video.ContentDetails.Duration); err != nil {
			return catalog.Metadata{}, err
		}
	}

	meta := catalog.Metadata{
		Title:       snippet.Title,
		Description: snippet.Description,
		PublishedAt: published.UTC(),
		PodcastName: fetch.PodcastName(snippet.Title, snippet.ChannelTitle),
		Interviewee: catalog.Interviewee{
			Name:         fetch.IntervieweeName(snippet.Title),
			Profession:   fetch.Profession(snippet.Description),
			Organization: fetch.Organization(snippet.Description),
		},
		URL:             rawURL,
		DurationSeconds: seconds,
	}

	c.logger.Debug("fetched youtube metadata",
		logging.String("video_id", videoID),
		logging.String("title", meta.Title),
		logging.Int("duration_seconds", seconds))
	return meta, nil
}

// ParseDuration converts an ISO-8601 duration such as PT1H30M to whole seconds.
func ParseDuration(value string) (int, error) {
	d, err := duration.Parse(value)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", value, err)
	}
	return int(d.ToTimeDuration() / time.Second), nil
}

// Transcript downloads the best caption track for the entry's video as WebVTT.
func (c *Client) Transcript(ctx context.Context, entry catalog.Entry) ([]byte, error) {
	videoID, err := VideoID(entry.URL)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.service.Captions.List([]string{"snippet"}, videoID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("youtube captions.list %s: %w", videoID, describeAPIError(err))
	}
	track, ok := pickTrack(resp.Items, c.language)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoCaptions, videoID)
	}

	query := url.Values{}
	query.Set("v", videoID)
	query.Set("lang", track.Language)
	query.Set("fmt", "vtt")
	if strings.EqualFold(track.TrackKind, "asr") {
		query.Set("kind", "asr")
	}
	if track.Name != "" {
		query.Set("name", track.Name)
	}
	captionURL := c.timedText + "?" + query.Encode()

	body, err := fetch.Get(ctx, c.http, captionURL, nil)
	if err != nil {
		return nil, fmt.Errorf("download captions: %w", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, fmt.Errorf("%w: %s (empty caption download)", ErrNoCaptions, videoID)
	}

	c.logger.Debug("downloaded youtube captions",
		logging.String("video_id", videoID),
		logging.String("language", track.Language),
		logging.String("kind", track.TrackKind),
		logging.Int("bytes", len(body)))
	return body, nil
}

// pickTrack prefers, in order: a standard track in lang, an auto-generated
// track in lang, any standard track, then whatever is first.
func pickTrack(items []*yt.Caption, lang string) (*yt.CaptionSnippet, bool) {
	var snippets []*yt.CaptionSnippet
	for _, item := range items {
		if item != nil && item.Snippet != nil && item.Snippet.Language != "" {
			snippets = append(snippets, item.Snippet)
		}
	}
	if len(snippets) == 0 {
		return nil, false
	}

	matchesLang := func(s *yt.CaptionSnippet) bool { return language.Matches(s.Language, lang) }
	isASR := func(s *yt.CaptionSnippet) bool { return strings.EqualFold(s.TrackKind, "asr") }

	preferences := []func(*yt.CaptionSnippet) bool{
		func(s *yt.CaptionSnippet) bool { return matchesLang(s) && !isASR(s) },
		func(s *yt.CaptionSnippet) bool { return matchesLang(s) },
		func(s *yt.CaptionSnippet) bool { return !isASR(s) },
	}
	for _, prefer := range preferences {
		for _, s := range snippets {
			if prefer(s) {
				return s, true
			}
		}
	}
	return snippets[0], true
}

func describeAPIError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %w", ErrVideoNotFound, err)
	}
	return err
}
